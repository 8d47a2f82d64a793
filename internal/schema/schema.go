// Package schema reads a JSON Schema document from disk and lowers it to
// the compact intermediate representation in internal/ir. Only the
// keywords that Schema declares a field for are decoded; minimum,
// pattern, uniqueItems, and the rest of the validation vocabulary have
// no field and are dropped during decoding.
package schema

import (
	"os"
	"sort"
	"strconv"

	gojson "github.com/goccy/go-json"

	"github.com/go-schemakit/schemagen/internal/ir"
	"github.com/go-schemakit/schemagen/internal/schemaerr"
)

// Schema is the raw, unlowered form of a JSON Schema document or
// sub-schema. A schema can also be a bare boolean (true accepts
// anything, false accepts nothing); BooleanSchema captures that case,
// and when it is non-nil every other field is meaningless.
type Schema struct {
	BooleanSchema *bool `json:"-"`

	Ref         string             `json:"$ref,omitempty"`
	Defs        map[string]*Schema `json:"$defs,omitempty"`
	Definitions map[string]*Schema `json:"definitions,omitempty"`

	Title       string              `json:"title,omitempty"`
	Description string              `json:"description,omitempty"`
	Type        SchemaType          `json:"type,omitempty"`
	Enum        []gojson.RawMessage `json:"enum,omitempty"`

	Properties        map[string]*Schema `json:"properties,omitempty"`
	PatternProperties map[string]*Schema `json:"patternProperties,omitempty"`
	Required          []string           `json:"required,omitempty"`

	Items *Schema `json:"items,omitempty"`

	AllOf []*Schema `json:"allOf,omitempty"`
	AnyOf []*Schema `json:"anyOf,omitempty"`
	OneOf []*Schema `json:"oneOf,omitempty"`
}

// UnmarshalJSON accepts either a JSON object or a bare boolean.
func (s *Schema) UnmarshalJSON(data []byte) error {
	var b bool
	if err := gojson.Unmarshal(data, &b); err == nil {
		s.BooleanSchema = &b
		return nil
	}

	type schemaAlias Schema
	var sa schemaAlias
	if err := gojson.Unmarshal(data, &sa); err != nil {
		return err
	}
	*s = Schema(sa)
	return nil
}

// IsBoolean reports whether this schema is a bare boolean value.
func (s *Schema) IsBoolean() bool { return s.BooleanSchema != nil }

// SchemaType handles the JSON Schema "type" keyword, which may be a
// single string or an array of strings; the compiler only ever acts on
// the single-type case, but both forms decode cleanly.
type SchemaType struct {
	values []string
}

func (t SchemaType) Single() string {
	if len(t.values) == 1 {
		return t.values[0]
	}
	return ""
}

func (t *SchemaType) UnmarshalJSON(data []byte) error {
	var single string
	if err := gojson.Unmarshal(data, &single); err == nil {
		t.values = []string{single}
		return nil
	}
	var arr []string
	if err := gojson.Unmarshal(data, &arr); err != nil {
		return err
	}
	t.values = arr
	return nil
}

func (t SchemaType) MarshalJSON() ([]byte, error) {
	if len(t.values) == 1 {
		return gojson.Marshal(t.values[0])
	}
	return gojson.Marshal(t.values)
}

func (s *Schema) hasProperties() bool { return len(s.Properties) > 0 }

// sortedKeys returns a map's keys in ascending order, giving the parser
// a deterministic traversal order independent of Go's randomized map
// iteration (the source compiler relied on a sorted map for the same
// reason).
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParseFile reads path (falling back to path+".json" if it does not
// exist), decodes it as JSON, and lowers it to an *ir.Root. Any I/O or
// JSON syntax failure is fatal: there is no partial-parse result to
// fall back to.
func ParseFile(path string) (*ir.Root, error) {
	resolved := path
	if _, err := os.Stat(resolved); err != nil {
		candidate := resolved + ".json"
		if _, err2 := os.Stat(candidate); err2 != nil {
			return nil, &schemaerr.FileNotFoundError{Path: path}
		}
		resolved = candidate
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, &schemaerr.FileNotFoundError{Path: path}
	}

	var s Schema
	if err := gojson.Unmarshal(data, &s); err != nil {
		return nil, &schemaerr.ParseError{Path: resolved, Detail: err}
	}

	return parseRoot(resolved, &s), nil
}

func parseRoot(file string, s *Schema) *ir.Root {
	defs := parseDefinitions(file, s)
	dt := parseType(file, s, nil, "")
	return &ir.Root{File: file, DataType: dt, Definitions: defs}
}

func parseDefinitions(file string, s *Schema) map[string]*ir.DataType {
	defs := make(map[string]*ir.DataType)

	for _, name := range sortedKeys(s.Defs) {
		src := file + "/$defs/" + name
		defs[name] = parseType(src, s.Defs[name], nil, name)
	}
	for _, name := range sortedKeys(s.Definitions) {
		src := file + "/definitions/" + name
		defs[name] = parseType(src, s.Definitions[name], nil, name)
	}

	return defs
}

// parseType is the recursive descent at the heart of the parser. src is
// this node's synthetic location; parent is the composition wrapper
// (oneOf/anyOf/allOf) this node was reached through, if any; propertyName
// is the name of the property this node was attached to, used as a title
// fallback.
func parseType(src string, s *Schema, parent *Schema, propertyName string) *ir.DataType {
	if s == nil {
		return ir.Any()
	}
	if s.IsBoolean() {
		return ir.Any()
	}

	if s.Ref != "" {
		return ir.Ref(s.Ref)
	}

	if len(s.OneOf) > 0 {
		return ir.OneOf(parseAlternatives(src, "oneOf", s.OneOf, s))
	}
	if len(s.AnyOf) > 0 {
		return ir.AnyOf(parseAlternatives(src, "anyOf", s.AnyOf, s))
	}
	if len(s.AllOf) > 0 {
		return ir.AllOf(parseAlternatives(src, "allOf", s.AllOf, s))
	}

	switch s.Type.Single() {
	case "null":
		return ir.PrimitiveWithEnum(ir.Null, mergedEnum(s, parent))
	case "boolean":
		return ir.PrimitiveWithEnum(ir.Boolean, mergedEnum(s, parent))
	case "integer":
		return ir.PrimitiveWithEnum(ir.Integer, mergedEnum(s, parent))
	case "number":
		return ir.PrimitiveWithEnum(ir.Number, mergedEnum(s, parent))
	case "string":
		return ir.PrimitiveWithEnum(ir.String, mergedEnum(s, parent))
	case "array":
		return parseArray(src, s)
	case "object":
		return parseObjectOrMap(src, s, parent, propertyName)
	}

	return ir.Any()
}

// mergedEnum unions a schema's own enum keyword with an enclosing
// composition parent's, as raw JSON text. Returns nil rather than an
// empty slice when there is nothing to report.
func mergedEnum(s, parent *Schema) []string {
	var values []string
	for _, v := range s.Enum {
		values = append(values, string(v))
	}
	if parent != nil {
		for _, v := range parent.Enum {
			values = append(values, string(v))
		}
	}
	return values
}

func parseAlternatives(src, keyword string, alts []*Schema, parent *Schema) []*ir.DataType {
	out := make([]*ir.DataType, len(alts))
	for i, alt := range alts {
		out[i] = parseType(src+"/"+keyword+"/"+strconv.Itoa(i), alt, parent, "")
	}
	return out
}

func parseArray(src string, s *Schema) *ir.DataType {
	if s.Items == nil {
		return ir.Array(ir.Any())
	}
	return ir.Array(parseType(src+"/items", s.Items, nil, ""))
}

func parseObjectOrMap(src string, s *Schema, parent *Schema, propertyName string) *ir.DataType {
	if len(s.PatternProperties) > 0 {
		keys := sortedKeys(s.PatternProperties)
		first := s.PatternProperties[keys[0]]
		return ir.Map(parseType(src+"/patternProperties", first, nil, ""))
	}
	if !s.hasProperties() {
		return ir.Map(ir.Any())
	}
	return parseObject(src, s, parent, propertyName)
}

func parseObject(src string, s *Schema, parent *Schema, propertyName string) *ir.DataType {
	name := objectName(s, parent, propertyName)

	required := append([]string{}, s.Required...)
	if parent != nil {
		required = append(required, parent.Required...)
	}
	isRequired := func(prop string) bool {
		for _, r := range required {
			if r == prop {
				return true
			}
		}
		return false
	}

	var props []ir.ObjectProperty
	for _, propName := range sortedKeys(s.Properties) {
		propSchema := s.Properties[propName]
		fallback := propSchema.Title
		if fallback == "" {
			fallback = propName
		}
		props = append(props, ir.ObjectProperty{
			Name:     propName,
			Required: isRequired(propName),
			DataType: parseType(src+"/properties/"+propName, propSchema, nil, fallback),
		})
	}

	return ir.MakeObject(ir.Object{Src: src, Name: name, Properties: props})
}

func objectName(s *Schema, parent *Schema, propertyName string) string {
	if s.Title != "" {
		return s.Title
	}
	if parent != nil && parent.Title != "" {
		return parent.Title
	}
	if propertyName != "" {
		return propertyName
	}
	return "Unknown"
}
