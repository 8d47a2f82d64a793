// Package augment applies a YAML-driven set of rename and doc overrides
// on top of the generator's output, for the cases a schema's own titles
// and property names aren't the identifiers a hand-written consumer
// would want.
package augment

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/go-schemakit/schemagen/internal/generator"
)

// Config holds record and property overrides loaded from an augment.yml
// file, keyed by each record's generated name.
type Config struct {
	Types map[string]TypeOverride `yaml:"types"`
}

// TypeOverride holds overrides for a single record.
type TypeOverride struct {
	Rename string                    `yaml:"rename,omitempty"`
	Doc    string                    `yaml:"doc,omitempty"`
	Fields map[string]FieldOverride  `yaml:"fields,omitempty"`
}

// FieldOverride holds overrides for a single property, keyed by its
// original JSON name (PropertyDescriptor.Rename if set, else Name).
type FieldOverride struct {
	Rename string `yaml:"rename,omitempty"`
	Doc    string `yaml:"doc,omitempty"`
}

// Docs carries the doc-comment overrides Apply produces. RecordDescriptor
// itself has no room for a doc string, so the renderer consults Docs
// alongside the record list rather than finding it attached to the
// record.
type Docs struct {
	Record map[string]string            // record name -> doc
	Field  map[string]map[string]string // record name -> field name -> doc
}

// LoadConfig reads and parses an augment.yml file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading augment config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("parsing augment config: %w", err)
	}
	return &config, nil
}

// Apply renames records and properties per config and returns the
// updated record list alongside the doc overrides for the renderer.
// records is not modified in place; Apply returns a new slice.
func Apply(records []generator.RecordDescriptor, config *Config) ([]generator.RecordDescriptor, Docs) {
	docs := Docs{Record: map[string]string{}, Field: map[string]map[string]string{}}
	if config == nil {
		return records, docs
	}

	out := make([]generator.RecordDescriptor, len(records))
	copy(out, records)

	// Every record gets its own Properties slice, whether or not it has
	// an override, so rewriteTypeRefs below never mutates the caller's
	// backing arrays through a record that happened to have no overrides
	// of its own.
	for i := range out {
		props := make([]generator.PropertyDescriptor, len(out[i].Properties))
		copy(props, out[i].Properties)
		out[i].Properties = props
	}

	renames := map[string]string{} // old record name -> new record name
	for oldName, aug := range config.Types {
		if aug.Rename != "" && aug.Rename != oldName {
			renames[oldName] = aug.Rename
		}
	}

	for i, rec := range out {
		aug, ok := config.Types[rec.Name]
		if !ok {
			continue
		}

		finalName := rec.Name
		if aug.Rename != "" {
			finalName = aug.Rename
			out[i].Name = finalName
		}
		if aug.Doc != "" {
			docs.Record[finalName] = aug.Doc
		}

		props := out[i].Properties
		for j, p := range props {
			fieldAug, ok := aug.Fields[jsonKey(p)]
			if !ok {
				continue
			}
			if fieldAug.Rename != "" {
				props[j].Name = fieldAug.Rename
			}
			if fieldAug.Doc != "" {
				if docs.Field[finalName] == nil {
					docs.Field[finalName] = map[string]string{}
				}
				docs.Field[finalName][props[j].Name] = fieldAug.Doc
			}
		}
	}

	if len(renames) > 0 {
		rewriteTypeRefs(out, renames)
	}

	return out, docs
}

// jsonKey returns the original JSON property name a PropertyDescriptor
// was built from.
func jsonKey(p generator.PropertyDescriptor) string {
	if p.Rename != "" {
		return p.Rename
	}
	return p.Name
}

// rewriteTypeRefs substitutes every whole-identifier occurrence of a
// renamed record's old name inside TypeRef strings ("Optional<Foo>",
// "Sequence<Foo>", "Boxed<Foo>", "Mapping<String, Foo>") with its new
// name, across every record's properties.
func rewriteTypeRefs(records []generator.RecordDescriptor, renames map[string]string) {
	patterns := make(map[string]*regexp.Regexp, len(renames))
	for oldName := range renames {
		patterns[oldName] = regexp.MustCompile(`\b` + regexp.QuoteMeta(oldName) + `\b`)
	}

	for i := range records {
		for j := range records[i].Properties {
			ref := records[i].Properties[j].TypeRef
			for oldName, newName := range renames {
				ref = patterns[oldName].ReplaceAllString(ref, newName)
			}
			records[i].Properties[j].TypeRef = ref
		}
	}
}
