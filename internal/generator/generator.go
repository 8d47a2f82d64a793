// Package generator walks the parsed IR and materializes a deterministic,
// collision-free, cycle-safe set of named record descriptors. It is the
// only stateful component in the pipeline: a Generator owns the name
// registry, the record table, and (transitively, through the resolver)
// the cross-file Root cache for one generation run.
package generator

import (
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-schemakit/schemagen/internal/ir"
	"github.com/go-schemakit/schemagen/internal/resolver"
	"github.com/go-schemakit/schemagen/internal/sanitize"
	"github.com/go-schemakit/schemagen/internal/schema"
	"github.com/go-schemakit/schemagen/internal/schemaerr"
)

// fallbackSymbol is the type reference emitted at every site whose
// schema carries no structural information worth preserving: null,
// bare `{}`, and oneOf/anyOf/allOf usage sites.
const fallbackSymbol = "Any"

// RecordDescriptor is one named record in the generator's output: an
// abstract, target-language-independent description a downstream
// renderer turns into an actual type declaration.
type RecordDescriptor struct {
	Src        string
	Name       string
	Properties []PropertyDescriptor
}

// PropertyDescriptor is one field of a RecordDescriptor. Rename is set
// only when the sanitized Name differs from the schema's original
// property name; SkipIfAbsent is set for non-required properties.
type PropertyDescriptor struct {
	Name         string
	TypeRef      string
	Rename       string
	SkipIfAbsent bool
}

type recordSlot struct {
	position int
	record   RecordDescriptor
}

// Generator accumulates record descriptors as it walks DataType trees.
// It is single-owner and not reentrant: nothing here is safe to share
// across goroutines.
type Generator struct {
	resolver     *resolver.Resolver
	records      map[string]*recordSlot // by src
	nextPosition int
	namesInUse   map[string]string // src -> chosen final name

	// enumComments holds a documentation-only comment per property whose
	// schema carried an enum keyword, keyed by the owning record's src
	// and then the property's generated field name. It never influences
	// dedup, naming, or the type-reference grammar.
	enumComments map[string]map[string]string
}

// New returns an empty Generator ready to process one or more schema
// files.
func New() *Generator {
	return &Generator{
		resolver:     resolver.New(),
		records:      make(map[string]*recordSlot),
		namesInUse:   make(map[string]string),
		enumComments: make(map[string]map[string]string),
	}
}

// EnumComments returns the documentation-only enum hints collected
// during generation, keyed by record src and then by the property's
// generated field name. The downstream renderer consults this
// alongside augment.Docs; RecordDescriptor and PropertyDescriptor
// themselves carry no such field.
func (g *Generator) EnumComments() map[string]map[string]string {
	return g.enumComments
}

// AddFile parses path and starts generation at its root DataType.
func (g *Generator) AddFile(path string) error {
	root, err := schema.ParseFile(path)
	if err != nil {
		return err
	}
	_, err = g.Add(filepath.Dir(path), root, root.DataType)
	return err
}

// Add is the entry point used both for a fresh file and, recursively,
// for composition children registered purely for their side effect of
// being emitted. It returns the type reference for dt.
func (g *Generator) Add(baseDir string, root *ir.Root, dt *ir.DataType) (string, error) {
	return g.addType(baseDir, root, "", dt, true, nil)
}

// Finalize returns every record produced so far, ordered by the
// position at which it was first encountered.
func (g *Generator) Finalize() []RecordDescriptor {
	slots := make([]*recordSlot, 0, len(g.records))
	for _, s := range g.records {
		slots = append(slots, s)
	}
	sort.Slice(slots, func(i, j int) bool { return slots[i].position < slots[j].position })

	out := make([]RecordDescriptor, len(slots))
	for i, s := range slots {
		out[i] = s.record
	}
	return out
}

// addType is the central recursion: it turns one DataType node into a
// type-reference string, recursing into containers and delegating
// objects to addObject. baseDir is threaded through for relative-ref
// resolution but is never itself consulted here: the resolver derives a
// ref's join directory from root.File, not from this parameter — it is
// carried purely so a future caller with a different resolution
// strategy has it available.
func (g *Generator) addType(
	baseDir string,
	root *ir.Root,
	srcOverride string,
	dt *ir.DataType,
	required bool,
	visited []string,
) (string, error) {
	switch dt.Kind {
	case ir.KindPrimitive:
		return g.addPrimitive(dt.Primitive, required), nil

	case ir.KindArray:
		// The src override, if any, is forwarded into the element type
		// (unlike Map, below) so that a reference resolving to an array
		// of objects still renames the element's src correctly.
		elem, err := g.addType(baseDir, root, srcOverride, dt.Element, true, nil)
		if err != nil {
			return "", err
		}
		return "Sequence<" + elem + ">", nil

	case ir.KindObject:
		name, err := g.addObject(baseDir, root, srcOverride, dt.Object, visited)
		if err != nil {
			return "", err
		}
		return wrapOptional(name, required), nil

	case ir.KindMap:
		val, err := g.addType(baseDir, root, "", dt.MapValue, true, nil)
		if err != nil {
			return "", err
		}
		return "Mapping<String, " + val + ">", nil

	case ir.KindRef:
		result, err := g.resolver.Resolve(root, dt.RefPath)
		if err != nil {
			return "", err
		}
		src := result.Root.File
		if result.Path != "" {
			src = result.Root.File + "#" + result.Path
		}
		return g.addType(baseDir, result.Root, src, result.DataType, required, visited)

	case ir.KindOneOf, ir.KindAnyOf, ir.KindAllOf:
		for _, alt := range dt.Alternatives {
			if _, err := g.Add(baseDir, root, alt); err != nil {
				return "", err
			}
		}
		return fallbackSymbol, nil

	case ir.KindAny:
		return fallbackSymbol, nil
	}

	return "", &schemaerr.InvariantViolationError{Detail: "unhandled DataType kind"}
}

func (g *Generator) addPrimitive(kind ir.PrimitiveKind, required bool) string {
	switch kind {
	case ir.Null:
		return fallbackSymbol
	case ir.Boolean:
		return wrapOptional("Boolean", required)
	case ir.Integer:
		return wrapOptional("Int64", required)
	case ir.Number:
		return wrapOptional("Float64", required)
	case ir.String:
		return wrapOptional("String", required)
	default:
		return fallbackSymbol
	}
}

// wrapOptional applies the Optional<...> wrapping asymmetry: containers
// and the dynamic fallback already have a natural empty/absent
// representation and are never passed through here.
func wrapOptional(name string, required bool) string {
	if required {
		return name
	}
	return "Optional<" + name + ">"
}

// addObject decides cycles, dedup, and naming for one structural
// object: a src seen for the first time is assigned a position and a
// unique name before its properties are walked (so a cycle back into it
// finds the name already reserved); a src already in flight on the
// current traversal stack yields a boxed back-reference instead of
// recursing again.
func (g *Generator) addObject(
	baseDir string,
	root *ir.Root,
	srcOverride string,
	obj ir.Object,
	visited []string,
) (string, error) {
	src := obj.Src
	if srcOverride != "" {
		src = srcOverride
	}

	cycleDetected := containsString(visited, src)
	if cycleDetected {
		// A back-edge into an ancestor must not let stale cycle markers
		// leak into whatever unrelated subtree we descend into next.
		visited = nil
	}

	if name, ok := g.namesInUse[src]; ok {
		if cycleDetected {
			return "Boxed<" + name + ">", nil
		}
		return name, nil
	}

	position := g.nextPosition
	g.nextPosition++

	name := g.uniqueName(sanitize.SanitizeStructName(obj.Name))
	g.namesInUse[src] = name // recorded before recursing so cycles see it

	childVisited := make([]string, len(visited), len(visited)+1)
	copy(childVisited, visited)
	childVisited = append(childVisited, src)

	properties := make([]PropertyDescriptor, 0, len(obj.Properties))
	for _, p := range obj.Properties {
		propName, renamed := sanitize.SanitizeProperty(p.Name)

		typeRef, err := g.addType(baseDir, root, "", p.DataType, p.Required, childVisited)
		if err != nil {
			return "", err
		}

		pd := PropertyDescriptor{
			Name:         propName,
			TypeRef:      typeRef,
			SkipIfAbsent: !p.Required,
		}
		if renamed {
			pd.Rename = p.Name
		}
		properties = append(properties, pd)

		if p.DataType.Kind == ir.KindPrimitive && len(p.DataType.EnumValues) > 0 {
			if g.enumComments[src] == nil {
				g.enumComments[src] = make(map[string]string)
			}
			g.enumComments[src][propName] = "one of: " + strings.Join(p.DataType.EnumValues, ", ")
		}
	}

	g.records[src] = &recordSlot{
		position: position,
		record:   RecordDescriptor{Src: src, Name: name, Properties: properties},
	}

	return name, nil
}

// uniqueName picks name itself if free, otherwise the smallest
// "name1", "name2", ... suffix not already in use.
func (g *Generator) uniqueName(name string) string {
	if !g.nameInUse(name) {
		return name
	}
	for i := 1; ; i++ {
		candidate := name + strconv.Itoa(i)
		if !g.nameInUse(candidate) {
			return candidate
		}
	}
}

func (g *Generator) nameInUse(name string) bool {
	for _, v := range g.namesInUse {
		if v == name {
			return true
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
