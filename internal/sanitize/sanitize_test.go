package sanitize

import "testing"

func TestSanitizeStructName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"format_version", "FormatVersion"},
		{"id", "ID"},
		{"name", "Name"},
		{"title", "Title"},
		{"type", "Type"},
		{"url", "URL"},
		{"urls", "URLs"},
		{"api", "API"},
		{"ip", "IP"},
		{"cpu", "CPU"},
		{"ssl", "SSL"},
		{"tls", "TLS"},
		{"http", "HTTP"},
		{"ui", "UI"},
		{"json", "JSON"},
		{"dns", "DNS"},
		{"os", "OS"},
		{"policy_templates", "PolicyTemplates"},
		{"data_stream", "DataStream"},
		{"format-version", "FormatVersion"},
		{"a-wonderful_rust struct", "AWonderfulRustStruct"},
		{"@type", "AtType"},
		{"$type", "DollarType"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := SanitizeStructName(tt.input)
			if got != tt.want {
				t.Errorf("SanitizeStructName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// SanitizeProperty's "renamed" is true whenever the sanitized identifier
// differs from the raw JSON name — for Go that includes the ordinary
// case where capitalizing a field makes it differ from its (usually
// lowercase) JSON key, so callers should expect it set for nearly every
// property, not only the special-character/keyword-collision cases.
func TestSanitizeProperty(t *testing.T) {
	tests := []struct {
		raw         string
		wantName    string
		wantRenamed bool
	}{
		{"bar", "Bar", true},
		{"$schema", "DollarSchema", true},
		{"enum", "Enum_", true},
		{"@type", "AtType", true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			name, renamed := SanitizeProperty(tt.raw)
			if name != tt.wantName || renamed != tt.wantRenamed {
				t.Errorf("SanitizeProperty(%q) = (%q, %v), want (%q, %v)",
					tt.raw, name, renamed, tt.wantName, tt.wantRenamed)
			}
		})
	}
}

func TestSplitWords(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"format_version", []string{"format", "version"}},
		{"formatVersion", []string{"format", "Version"}},
		{"format-version", []string{"format", "version"}},
		{"URLParser", []string{"URL", "Parser"}},
		{"myURL", []string{"my", "URL"}},
		{"simple", []string{"simple"}},
		{"a_b_c", []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := splitWords(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("splitWords(%q) = %v (len %d), want %v (len %d)",
					tt.input, got, len(got), tt.want, len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("splitWords(%q)[%d] = %q, want %q",
						tt.input, i, got[i], tt.want[i])
				}
			}
		})
	}
}
