package augment

import (
	"testing"

	"github.com/go-schemakit/schemagen/internal/generator"
)

func TestApplyNilConfig(t *testing.T) {
	records := []generator.RecordDescriptor{{Name: "Foo"}}
	out, docs := Apply(records, nil)
	if len(out) != 1 || out[0].Name != "Foo" {
		t.Fatalf("expected records unchanged, got %+v", out)
	}
	if len(docs.Record) != 0 {
		t.Errorf("expected no doc overrides, got %+v", docs)
	}
}

func TestApplyRenameRecordAndRewritesReferences(t *testing.T) {
	records := []generator.RecordDescriptor{
		{
			Name: "Widget",
			Properties: []generator.PropertyDescriptor{
				{Name: "Name", Rename: "name", TypeRef: "String"},
			},
		},
		{
			Name: "Container",
			Properties: []generator.PropertyDescriptor{
				{Name: "Item", Rename: "item", TypeRef: "Optional<Widget>"},
				{Name: "Items", Rename: "items", TypeRef: "Sequence<Widget>"},
				{Name: "Loop", Rename: "loop", TypeRef: "Boxed<Widget>"},
			},
		},
	}
	config := &Config{
		Types: map[string]TypeOverride{
			"Widget": {Rename: "Gadget", Doc: "A gadget."},
		},
	}

	out, docs := Apply(records, config)

	if out[0].Name != "Gadget" {
		t.Errorf("Widget should have been renamed to Gadget, got %q", out[0].Name)
	}
	if docs.Record["Gadget"] != "A gadget." {
		t.Errorf("doc override missing for Gadget: %+v", docs)
	}

	container := out[1]
	want := []string{"Optional<Gadget>", "Sequence<Gadget>", "Boxed<Gadget>"}
	for i, p := range container.Properties {
		if p.TypeRef != want[i] {
			t.Errorf("Properties[%d].TypeRef = %q, want %q", i, p.TypeRef, want[i])
		}
	}
}

func TestApplyFieldRenameAndDoc(t *testing.T) {
	records := []generator.RecordDescriptor{
		{
			Name: "Widget",
			Properties: []generator.PropertyDescriptor{
				{Name: "Kind", Rename: "kind", TypeRef: "String"},
			},
		},
	}
	config := &Config{
		Types: map[string]TypeOverride{
			"Widget": {
				Fields: map[string]FieldOverride{
					"kind": {Rename: "Type", Doc: "The widget's kind."},
				},
			},
		},
	}

	out, docs := Apply(records, config)
	if out[0].Properties[0].Name != "Type" {
		t.Errorf("field should have been renamed to Type, got %q", out[0].Properties[0].Name)
	}
	if docs.Field["Widget"]["Type"] != "The widget's kind." {
		t.Errorf("field doc missing: %+v", docs)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	original := []generator.RecordDescriptor{{Name: "Widget"}}
	config := &Config{Types: map[string]TypeOverride{"Widget": {Rename: "Gadget"}}}

	Apply(original, config)

	if original[0].Name != "Widget" {
		t.Errorf("Apply mutated its input slice: %+v", original)
	}
}
