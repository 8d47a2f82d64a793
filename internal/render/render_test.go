package render

import (
	"strings"
	"testing"

	"github.com/go-schemakit/schemagen/internal/augment"
	"github.com/go-schemakit/schemagen/internal/generator"
)

func TestParseTypeRef(t *testing.T) {
	tests := []struct {
		in   string
		want typeRef
	}{
		{"Boolean", typeRef{builtin: "bool"}},
		{"Int64", typeRef{builtin: "int64"}},
		{"Float64", typeRef{builtin: "float64"}},
		{"String", typeRef{builtin: "string"}},
		{"Any", typeRef{builtin: "any"}},
		{"Foo", typeRef{named: "Foo"}},
	}
	for _, tt := range tests {
		got := parseTypeRef(tt.in)
		if got.builtin != tt.want.builtin || got.named != tt.want.named {
			t.Errorf("parseTypeRef(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

func TestParseTypeRefNested(t *testing.T) {
	opt := parseTypeRef("Optional<Foo>")
	if !opt.pointer || opt.named != "Foo" {
		t.Errorf("Optional<Foo> = %+v, want pointer named Foo", opt)
	}

	boxed := parseTypeRef("Boxed<Foo>")
	if !boxed.pointer || boxed.named != "Foo" {
		t.Errorf("Boxed<Foo> = %+v, want pointer named Foo", boxed)
	}

	seq := parseTypeRef("Sequence<String>")
	if !seq.slice || seq.element == nil || seq.element.builtin != "string" {
		t.Errorf("Sequence<String> = %+v, want slice of string", seq)
	}

	m := parseTypeRef("Mapping<String, Int64>")
	if !m.isMap || m.mapValue == nil || m.mapValue.builtin != "int64" {
		t.Errorf("Mapping<String, Int64> = %+v, want map to int64", m)
	}

	nested := parseTypeRef("Mapping<String, Sequence<Int64>>")
	if !nested.isMap || nested.mapValue == nil || !nested.mapValue.slice {
		t.Errorf("Mapping<String, Sequence<Int64>> = %+v, want map to slice", nested)
	}
}

func TestFilesRendersStructWithTags(t *testing.T) {
	records := []generator.RecordDescriptor{
		{
			Name: "Widget",
			Properties: []generator.PropertyDescriptor{
				{Name: "Name", Rename: "name", TypeRef: "String"},
				{Name: "Count", Rename: "count", TypeRef: "Optional<Int64>", SkipIfAbsent: true},
				{Name: "Tags", Rename: "tags", TypeRef: "Sequence<String>"},
			},
		},
	}

	out, err := Files(records, augment.Docs{}, map[string]string{}, "schemas")
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	src, ok := out["types.go"]
	if !ok {
		t.Fatalf("expected a types.go entry, got keys %v", keysOf(out))
	}

	s := string(src)
	for _, want := range []string{
		"package schemas",
		"type Widget struct",
		"Name  string",
		`json:"name"`,
		"Count *int64",
		`json:"count,omitempty"`,
		"Tags  []string",
		`json:"tags"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("rendered source missing %q; got:\n%s", want, s)
		}
	}
}

func TestFilesRespectsFileAssignment(t *testing.T) {
	records := []generator.RecordDescriptor{
		{Name: "A", Properties: []generator.PropertyDescriptor{{Name: "X", Rename: "x", TypeRef: "String"}}},
		{Name: "B", Properties: []generator.PropertyDescriptor{{Name: "Y", Rename: "y", TypeRef: "String"}}},
	}
	fileOf := map[string]string{"A": "a.go"}

	out, err := Files(records, augment.Docs{}, fileOf, "schemas")
	if err != nil {
		t.Fatalf("Files: %v", err)
	}
	if _, ok := out["a.go"]; !ok {
		t.Errorf("expected a.go, got keys %v", keysOf(out))
	}
	if _, ok := out["types.go"]; !ok {
		t.Errorf("expected types.go for the unassigned record B, got keys %v", keysOf(out))
	}
	if strings.Contains(string(out["a.go"]), "type B struct") {
		t.Error("B leaked into a.go")
	}
}

func keysOf(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
