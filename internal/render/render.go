// Package render turns the generator's ordered record descriptors into
// Go source, grouped into one or more files. It is explicitly
// downstream of the core compiler: nothing in internal/schema,
// internal/resolver, or internal/generator imports it, and it never
// feeds back into their decisions.
package render

import (
	"bytes"
	"fmt"

	jen "github.com/dave/jennifer/jen"

	"github.com/go-schemakit/schemagen/internal/augment"
	"github.com/go-schemakit/schemagen/internal/filemap"
	"github.com/go-schemakit/schemagen/internal/generator"
)

// Files renders records into one Go source file per distinct output
// file named in fileOf (see filemap.AssignOutputFiles), keyed by file
// name. Records missing from fileOf fall back to filemap.DefaultFile.
// docs supplies the record/field doc-comment overrides augment.Apply
// produced; it may be the zero Docs value.
func Files(
	records []generator.RecordDescriptor,
	docs augment.Docs,
	fileOf map[string]string,
	packageName string,
) (map[string][]byte, error) {
	grouped := make(map[string][]generator.RecordDescriptor)
	var order []string
	for _, rec := range records {
		file := fileOf[rec.Name]
		if file == "" {
			file = filemap.DefaultFile
		}
		if _, seen := grouped[file]; !seen {
			order = append(order, file)
		}
		grouped[file] = append(grouped[file], rec)
	}

	out := make(map[string][]byte, len(grouped))
	for _, file := range order {
		src, err := renderFile(grouped[file], docs, packageName)
		if err != nil {
			return nil, fmt.Errorf("rendering %s: %w", file, err)
		}
		out[file] = src
	}
	return out, nil
}

func renderFile(records []generator.RecordDescriptor, docs augment.Docs, packageName string) ([]byte, error) {
	f := jen.NewFile(packageName)
	f.HeaderComment("Code generated by schemagen. DO NOT EDIT.")

	for _, rec := range records {
		if doc := docs.Record[rec.Name]; doc != "" {
			f.Comment(doc)
		}
		f.Type().Id(rec.Name).Struct(structFields(rec, docs)...)
	}

	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func structFields(rec generator.RecordDescriptor, docs augment.Docs) []jen.Code {
	fields := make([]jen.Code, 0, len(rec.Properties))
	fieldDocs := docs.Field[rec.Name]

	for _, p := range rec.Properties {
		if doc := fieldDocs[p.Name]; doc != "" {
			fields = append(fields, jen.Comment(doc))
		}

		t := parseTypeRef(p.TypeRef)
		jsonName := p.Name
		if p.Rename != "" {
			jsonName = p.Rename
		}
		tag := jsonName
		if p.SkipIfAbsent {
			tag += ",omitempty"
		}

		fields = append(fields, jen.Id(p.Name).Add(t.code()).Tag(map[string]string{"json": tag}))
	}

	return fields
}
