// Package ir defines the intermediate representation that the schema
// parser produces and the generator consumes. Values are immutable once
// constructed; sharing happens only through pointers, never by copying.
package ir

// PrimitiveKind enumerates the JSON Schema leaf types the compiler
// understands.
type PrimitiveKind int

const (
	Null PrimitiveKind = iota
	Boolean
	Integer
	Number
	String
)

func (k PrimitiveKind) String() string {
	switch k {
	case Null:
		return "null"
	case Boolean:
		return "boolean"
	case Integer:
		return "integer"
	case Number:
		return "number"
	case String:
		return "string"
	default:
		return "unknown"
	}
}

// Kind tags which variant of DataType a value holds.
type Kind int

const (
	KindPrimitive Kind = iota
	KindArray
	KindObject
	KindMap
	KindRef
	KindOneOf
	KindAnyOf
	KindAllOf
	KindAny
)

func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	case KindMap:
		return "map"
	case KindRef:
		return "ref"
	case KindOneOf:
		return "oneOf"
	case KindAnyOf:
		return "anyOf"
	case KindAllOf:
		return "allOf"
	case KindAny:
		return "any"
	default:
		return "unknown"
	}
}

// DataType is the sum type at the heart of the IR. Only the fields
// relevant to Kind are populated; the rest are zero.
type DataType struct {
	Kind Kind

	Primitive  PrimitiveKind // KindPrimitive
	EnumValues []string      // KindPrimitive; raw JSON text of permitted literals, own ∪ composition parent's

	Element *DataType // KindArray

	Object Object // KindObject

	MapValue *DataType // KindMap

	RefPath string // KindRef

	Alternatives []*DataType // KindOneOf / KindAnyOf / KindAllOf
}

// ObjectProperty is one field of a structural Object, in the order the
// parser encountered it.
type ObjectProperty struct {
	Name     string
	Required bool
	DataType *DataType
}

// Object describes a structural record: where it was defined (Src), what
// it should be called (Name, pre-sanitization), and its fields.
type Object struct {
	Src        string
	Name       string
	Properties []ObjectProperty
}

// Root is the parsed form of one schema file: its root type plus the
// flattened $defs/definitions namespace.
type Root struct {
	File        string
	DataType    *DataType
	Definitions map[string]*DataType
}

func Primitive(kind PrimitiveKind) *DataType {
	return &DataType{Kind: KindPrimitive, Primitive: kind}
}

// PrimitiveWithEnum is Primitive plus a hint listing the literal values
// (raw JSON text) the schema's enum keyword permits, for documentation
// purposes only.
func PrimitiveWithEnum(kind PrimitiveKind, enumValues []string) *DataType {
	return &DataType{Kind: KindPrimitive, Primitive: kind, EnumValues: enumValues}
}

func Array(element *DataType) *DataType {
	return &DataType{Kind: KindArray, Element: element}
}

func MakeObject(o Object) *DataType {
	return &DataType{Kind: KindObject, Object: o}
}

func Map(value *DataType) *DataType {
	return &DataType{Kind: KindMap, MapValue: value}
}

func Ref(path string) *DataType {
	return &DataType{Kind: KindRef, RefPath: path}
}

func OneOf(alts []*DataType) *DataType {
	return &DataType{Kind: KindOneOf, Alternatives: alts}
}

func AnyOf(alts []*DataType) *DataType {
	return &DataType{Kind: KindAnyOf, Alternatives: alts}
}

func AllOf(alts []*DataType) *DataType {
	return &DataType{Kind: KindAllOf, Alternatives: alts}
}

func Any() *DataType {
	return &DataType{Kind: KindAny}
}
