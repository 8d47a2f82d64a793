// Package resolver implements $ref resolution across schema files, with
// a Root cache so that every reference to the same textual path shares
// one parsed Root for the lifetime of a generation run.
package resolver

import (
	"path"
	"strings"

	"github.com/go-schemakit/schemagen/internal/ir"
	"github.com/go-schemakit/schemagen/internal/schema"
	"github.com/go-schemakit/schemagen/internal/schemaerr"
)

// Result is what Resolve hands back: the Root the target type lives in
// (which may be the same Root passed in), the local path fragment if
// any, and the resolved DataType itself.
type Result struct {
	Root     *ir.Root
	Path     string
	DataType *ir.DataType
}

// Resolver caches loaded Roots by the exact textual path they were
// joined from. Two differently-spelled paths to the same file (e.g. one
// reached through a "./" segment the other omits) are treated as
// distinct Roots; the cache key is never canonicalized, so a schema set
// that refers to one file under two different relative spellings pays
// for two parses of it and gets two independent definition namespaces.
type Resolver struct {
	cache map[string]*ir.Root
}

func New() *Resolver {
	return &Resolver{cache: make(map[string]*ir.Root)}
}

// Resolve follows ref relative to root (whose File gives the join base
// for a cross-file reference) and returns the type it points at.
func (r *Resolver) Resolve(root *ir.Root, ref string) (Result, error) {
	filePart, localPart, err := splitRef(ref)
	if err != nil {
		return Result{}, err
	}

	targetRoot := root
	if filePart != "" {
		joined := joinRelative(root.File, filePart)
		loaded, err := r.loadCached(joined)
		if err != nil {
			return Result{}, err
		}
		targetRoot = loaded
	}

	if localPart == "" {
		return Result{Root: targetRoot, Path: "", DataType: targetRoot.DataType}, nil
	}

	name, err := definitionName(ref, localPart)
	if err != nil {
		return Result{}, err
	}

	dt, ok := targetRoot.Definitions[name]
	if !ok {
		return Result{}, &schemaerr.MissingDefinitionError{Ref: ref, Name: name}
	}

	return Result{Root: targetRoot, Path: localPart, DataType: dt}, nil
}

// loadCached returns the cached Root for joinedPath, parsing and
// caching it on first use.
func (r *Resolver) loadCached(joinedPath string) (*ir.Root, error) {
	if root, ok := r.cache[joinedPath]; ok {
		return root, nil
	}
	root, err := schema.ParseFile(joinedPath)
	if err != nil {
		return nil, err
	}
	r.cache[joinedPath] = root
	return root, nil
}

// joinRelative joins filePart against the directory of contextFile.
// filePart is appended as written, without normalizing "." or ".."
// segments or repeated slashes, so that two textually different relative
// paths to the same file yield different cache keys (see Resolver's doc
// comment). The directory itself is the cleaned form path.Dir returns.
func joinRelative(contextFile, filePart string) string {
	dir := path.Dir(contextFile)
	if dir == "." {
		return filePart
	}
	return dir + "/" + filePart
}

// splitRef splits "[file]?('#' local)?" into its two halves. A ref with
// more than one '#' is malformed.
func splitRef(ref string) (filePart, localPart string, err error) {
	parts := strings.Split(ref, "#")
	switch len(parts) {
	case 1:
		return parts[0], "", nil
	case 2:
		return parts[0], parts[1], nil
	default:
		return "", "", &schemaerr.BadRefError{Ref: ref, Reason: "more than one '#'"}
	}
}

// definitionName validates that localPart is "/definitions/NAME" or
// "/$defs/NAME" and returns NAME.
func definitionName(ref, localPart string) (string, error) {
	if localPart == "" {
		return "", &schemaerr.BadRefError{Ref: ref, Reason: "empty local part"}
	}
	if !strings.HasPrefix(localPart, "/") {
		return "", &schemaerr.BadRefError{Ref: ref, Reason: "expected /definitions/NAME or /$defs/NAME"}
	}
	segments := strings.Split(localPart[1:], "/")
	if len(segments) != 2 {
		return "", &schemaerr.BadRefError{Ref: ref, Reason: "expected /definitions/NAME or /$defs/NAME"}
	}
	if segments[0] != "definitions" && segments[0] != "$defs" {
		return "", &schemaerr.BadRefError{Ref: ref, Reason: "local part must be under /definitions or /$defs"}
	}
	if segments[1] == "" {
		return "", &schemaerr.BadRefError{Ref: ref, Reason: "missing definition name"}
	}
	return segments[1], nil
}
