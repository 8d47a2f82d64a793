// Package filemap assigns generated records to output files, driven by
// an optional filemap.yml that groups related record names together.
package filemap

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/go-schemakit/schemagen/internal/generator"
)

// DefaultFile is the output file a record gets when no filemap entry
// names it.
const DefaultFile = "types.go"

// FileMap groups generated record names under the output file they
// should be written to, as declared in a filemap.yml.
type FileMap struct {
	Files map[string][]string `yaml:"files"` // output file -> record names it claims
}

// LoadFileMap reads and parses a filemap.yml file.
func LoadFileMap(path string) (*FileMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading filemap: %w", err)
	}

	var fm FileMap
	if err := yaml.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("parsing filemap: %w", err)
	}
	return &fm, nil
}

// AssignOutputFiles returns a record-name -> output-file map covering
// every record in records. Every record starts out assigned to
// DefaultFile; a record named under one of fm.Files' entries is then
// moved to that file instead. A filemap.yml entry naming a record that
// isn't part of this generation run is simply never consulted. fm may
// be nil, in which case every record keeps DefaultFile.
func (fm *FileMap) AssignOutputFiles(records []generator.RecordDescriptor) map[string]string {
	assignment := make(map[string]string, len(records))
	for _, rec := range records {
		assignment[rec.Name] = DefaultFile
	}

	if fm == nil {
		return assignment
	}
	for file, names := range fm.Files {
		for _, name := range names {
			if _, present := assignment[name]; present {
				assignment[name] = file
			}
		}
	}
	return assignment
}
