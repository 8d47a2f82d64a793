// Package sanitize maps raw schema titles and property names onto legal,
// idiomatic Go identifiers. It is deliberately the only place in the
// compiler that knows about Go's identifier grammar and keyword list —
// everything upstream of it deals in raw schema strings.
package sanitize

import (
	"strings"
	"unicode"
)

// knownAbbreviations maps lowercase abbreviations to their Go-conventional
// uppercase forms. When a word segment matches one of these entries during
// identifier construction the uppercase form is used instead.
var knownAbbreviations = map[string]string{
	"id":    "ID",
	"ids":   "IDs",
	"url":   "URL",
	"urls":  "URLs",
	"uri":   "URI",
	"cpu":   "CPU",
	"ip":    "IP",
	"api":   "API",
	"ssl":   "SSL",
	"tls":   "TLS",
	"http":  "HTTP",
	"https": "HTTPS",
	"ui":    "UI",
	"json":  "JSON",
	"yaml":  "YAML",
	"xml":   "XML",
	"csv":   "CSV",
	"html":  "HTML",
	"css":   "CSS",
	"sql":   "SQL",
	"tcp":   "TCP",
	"udp":   "UDP",
	"dns":   "DNS",
	"ssh":   "SSH",
	"vm":    "VM",
	"os":    "OS",
	"ttl":   "TTL",
}

// goKeywords is the reserved-word list a sanitized identifier must never
// collide with. "enum" is not a Go keyword but is included alongside the
// real keywords, so a property called "enum" gets the same underscore
// suffix and carried rename as one named after a keyword.
var goKeywords = map[string]bool{
	"break": true, "case": true, "chan": true, "const": true, "continue": true,
	"default": true, "defer": true, "else": true, "fallthrough": true, "for": true,
	"func": true, "go": true, "goto": true, "if": true, "import": true,
	"interface": true, "map": true, "package": true, "range": true, "return": true,
	"select": true, "struct": true, "switch": true, "type": true, "var": true,
	"enum": true,
}

// SanitizeStructName converts a raw schema title into an exported Go type
// name, e.g. "a-wonderful_rust struct" -> "AWonderfulRustStruct".
func SanitizeStructName(raw string) string {
	words := splitWords(raw)
	var b strings.Builder
	for _, w := range words {
		if upper, ok := knownAbbreviations[strings.ToLower(w)]; ok {
			b.WriteString(upper)
		} else {
			b.WriteString(capitalize(w))
		}
	}
	name := b.String()
	if name == "" {
		return "Unknown"
	}
	if unicode.IsDigit(rune(name[0])) {
		name = "X" + name
	}
	return name
}

// SanitizeProperty converts a raw JSON property name into an exported Go
// field name. renamed reports whether the sanitized name differs from
// raw, in which case the generator must carry raw forward as the JSON
// rename annotation so decoding still finds the original key.
func SanitizeProperty(raw string) (name string, renamed bool) {
	sanitized := SanitizeStructName(raw)
	if goKeywords[strings.ToLower(raw)] {
		sanitized += "_"
	}
	return sanitized, sanitized != raw
}

// splitWords breaks an identifier string into its component words. It
// handles snake_case, kebab-case, dot-separated, @/$-prefixed, and
// camelCase boundaries.
func splitWords(s string) []string {
	s = strings.ReplaceAll(s, "@", " at ")
	s = strings.ReplaceAll(s, "$", " dollar ")

	var words []string
	var current strings.Builder

	flush := func() {
		if current.Len() > 0 {
			words = append(words, current.String())
			current.Reset()
		}
	}

	runes := []rune(s)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '_' || r == '-' || r == '.' || r == ' ':
			flush()
		case unicode.IsUpper(r):
			if current.Len() > 0 && i > 0 && unicode.IsLower(runes[i-1]) {
				flush()
			} else if current.Len() > 1 && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
				flush()
			}
			current.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			current.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return words
}

// capitalize returns s with its first rune uppercased and the rest
// lowercased.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	for i := 1; i < len(runes); i++ {
		runes[i] = unicode.ToLower(runes[i])
	}
	return string(runes)
}
