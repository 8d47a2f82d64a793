// Command schemagen reads a JSON Schema document and generates
// statically typed Go records for it.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/go-schemakit/schemagen/internal/augment"
	"github.com/go-schemakit/schemagen/internal/filemap"
	"github.com/go-schemakit/schemagen/internal/generator"
	"github.com/go-schemakit/schemagen/internal/render"
	"github.com/go-schemakit/schemagen/internal/resolver"
	"github.com/go-schemakit/schemagen/internal/schema"
)

var logger = log.New(os.Stderr)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "schemagen",
		Short:         "Generate statically typed Go records from a JSON Schema document",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	root.AddCommand(newGenerateCmd())
	root.AddCommand(newResolveCmd())
	return root
}

func newGenerateCmd() *cobra.Command {
	var (
		output      string
		packageName string
		augmentFile string
		filemapFile string
	)

	cmd := &cobra.Command{
		Use:   "generate <schema-file>",
		Short: "Generate Go source for the types reachable from a schema file",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return runGenerate(args[0], output, packageName, augmentFile, filemapFile)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", ".", "Directory to write generated Go files into")
	cmd.Flags().StringVarP(&packageName, "package", "p", "schemas", "Go package name for generated files")
	cmd.Flags().StringVar(&augmentFile, "augment", "", "Path to augment.yml (optional)")
	cmd.Flags().StringVar(&filemapFile, "filemap", "", "Path to filemap.yml (optional)")

	return cmd
}

func runGenerate(schemaPath, output, packageName, augmentFile, filemapFile string) error {
	logger.Info("generating types", "schema", schemaPath)

	g := generator.New()
	if err := g.AddFile(schemaPath); err != nil {
		logger.Error("generation failed", "schema", schemaPath, "err", err)
		return err
	}
	records := g.Finalize()
	logger.Info("resolved records", "count", len(records))

	var augConfig *augment.Config
	if augmentFile != "" {
		cfg, err := augment.LoadConfig(augmentFile)
		if err != nil {
			logger.Error("loading augment config failed", "path", augmentFile, "err", err)
			return err
		}
		augConfig = cfg
	}
	records, docs := augment.Apply(records, augConfig)
	mergeEnumComments(docs, records, g.EnumComments())

	var fm *filemap.FileMap
	if filemapFile != "" {
		loaded, err := filemap.LoadFileMap(filemapFile)
		if err != nil {
			logger.Error("loading filemap failed", "path", filemapFile, "err", err)
			return err
		}
		fm = loaded
	}
	fileOf := fm.AssignOutputFiles(records)

	files, err := render.Files(records, docs, fileOf, packageName)
	if err != nil {
		logger.Error("rendering failed", "err", err)
		return err
	}

	if err := os.MkdirAll(output, 0o755); err != nil {
		logger.Error("creating output directory failed", "path", output, "err", err)
		return fmt.Errorf("creating output directory %s: %w", output, err)
	}
	for name, src := range files {
		path := filepath.Join(output, name)
		if err := os.WriteFile(path, src, 0o644); err != nil {
			logger.Error("writing file failed", "path", path, "err", err)
			return fmt.Errorf("writing %s: %w", path, err)
		}
		logger.Info("wrote file", "path", path)
	}

	return nil
}

// mergeEnumComments folds the generator's documentation-only enum hints
// into docs.Field, without overriding an explicit augment.yml field doc.
// Matching is by record src (stable across augment renames) and the
// property's field name as the generator produced it; a property an
// augment.yml field override has since renamed is left without its hint.
func mergeEnumComments(docs augment.Docs, records []generator.RecordDescriptor, enumComments map[string]map[string]string) {
	for _, rec := range records {
		bySrc := enumComments[rec.Src]
		if len(bySrc) == 0 {
			continue
		}
		for _, p := range rec.Properties {
			comment, ok := bySrc[p.Name]
			if !ok {
				continue
			}
			if docs.Field[rec.Name] == nil {
				docs.Field[rec.Name] = map[string]string{}
			}
			if _, exists := docs.Field[rec.Name][p.Name]; !exists {
				docs.Field[rec.Name][p.Name] = comment
			}
		}
	}
}

func newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve <schema-file> <ref>",
		Short: "Resolve a single $ref against a schema file, for debugging the resolver",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			return runResolve(args[0], args[1])
		},
	}
	return cmd
}

func runResolve(schemaPath, ref string) error {
	root, err := schema.ParseFile(schemaPath)
	if err != nil {
		logger.Error("loading schema failed", "path", schemaPath, "err", err)
		return err
	}

	r := resolver.New()
	result, err := r.Resolve(root, ref)
	if err != nil {
		logger.Error("resolution failed", "ref", ref, "err", err)
		return err
	}

	fmt.Printf("file: %s\n", result.Root.File)
	fmt.Printf("path: %s\n", result.Path)
	fmt.Printf("kind: %v\n", result.DataType.Kind)
	return nil
}
