package render

import (
	"strings"

	jen "github.com/dave/jennifer/jen"
)

// typeRef is the Go-source-level counterpart of a generator.PropertyDescriptor's
// TypeRef string: a small tree of builtin/pointer/slice/map modifiers,
// bottoming out at either a predeclared Go type or a named record. It
// is the parsed form of a generator type-reference string — a tree-
// shaped type descriptor jennifer can render directly — rather than a
// walker over schemas itself.
type typeRef struct {
	builtin  string // "bool", "int64", "float64", "string", "any"
	named    string
	pointer  bool
	slice    bool
	isMap    bool
	element  *typeRef // Sequence<T>
	mapValue *typeRef // Mapping<String, T>
}

// parseTypeRef parses one of the generator's type-reference strings
// ("Optional<Foo>", "Sequence<String>", "Mapping<String, Int64>",
// "Boxed<Foo>", the five builtins, or a bare record name) into a typeRef.
func parseTypeRef(s string) typeRef {
	s = strings.TrimSpace(s)

	if generic, inner, ok := splitGeneric(s); ok {
		switch generic {
		case "Optional", "Boxed":
			t := parseTypeRef(inner)
			t.pointer = true
			return t
		case "Sequence":
			elem := parseTypeRef(inner)
			return typeRef{slice: true, element: &elem}
		case "Mapping":
			parts := splitTopLevelComma(inner)
			if len(parts) == 2 {
				val := parseTypeRef(parts[1])
				return typeRef{isMap: true, mapValue: &val}
			}
		}
	}

	switch s {
	case "Boolean":
		return typeRef{builtin: "bool"}
	case "Int64":
		return typeRef{builtin: "int64"}
	case "Float64":
		return typeRef{builtin: "float64"}
	case "String":
		return typeRef{builtin: "string"}
	case "Any":
		return typeRef{builtin: "any"}
	default:
		return typeRef{named: s}
	}
}

// splitGeneric splits "Name<inner>" into ("Name", "inner", true). s must
// end in '>' for the first '<' found, or ok is false.
func splitGeneric(s string) (name, inner string, ok bool) {
	idx := strings.IndexByte(s, '<')
	if idx < 0 || !strings.HasSuffix(s, ">") {
		return "", "", false
	}
	return s[:idx], s[idx+1 : len(s)-1], true
}

// splitTopLevelComma splits s on commas that are not nested inside a
// generic's angle brackets.
func splitTopLevelComma(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i, r := range s {
		switch r {
		case '<':
			depth++
		case '>':
			depth--
		case ',':
			if depth == 0 {
				parts = append(parts, strings.TrimSpace(s[start:i]))
				start = i + 1
			}
		}
	}
	parts = append(parts, strings.TrimSpace(s[start:]))
	return parts
}

// code renders the typeRef as a jennifer type expression.
func (t typeRef) code() *jen.Statement {
	var c *jen.Statement
	switch {
	case t.isMap:
		c = jen.Map(jen.String()).Add(t.mapValue.code())
	case t.slice:
		c = jen.Index().Add(t.element.code())
	case t.builtin != "":
		switch t.builtin {
		case "bool":
			c = jen.Bool()
		case "int64":
			c = jen.Int64()
		case "float64":
			c = jen.Float64()
		case "string":
			c = jen.String()
		default: // "any"
			c = jen.Id("any")
		}
	default:
		c = jen.Id(t.named)
	}

	if t.pointer {
		c = jen.Op("*").Add(c)
	}
	return c
}
