// Package schemaerr collects the fatal error kinds the compiler can
// raise. Every one of them aborts the whole generation run: this package
// has no partial-failure mode, matching the all-or-nothing contract the
// generator itself implements.
package schemaerr

import "fmt"

// FileNotFoundError is returned when a schema path does not exist, even
// after the ".json" suffix fallback.
type FileNotFoundError struct {
	Path string
}

func (e *FileNotFoundError) Error() string {
	return fmt.Sprintf("schema file not found: %s", e.Path)
}

// ParseError wraps a JSON syntax or structural decode failure.
type ParseError struct {
	Path   string
	Detail error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing %s: %v", e.Path, e.Detail)
}

func (e *ParseError) Unwrap() error { return e.Detail }

// BadRefError is returned for a malformed $ref: an empty file with empty
// fragment where one was required, or a fragment that is not rooted at
// /definitions or /$defs.
type BadRefError struct {
	Ref    string
	Reason string
}

func (e *BadRefError) Error() string {
	return fmt.Sprintf("bad $ref %q: %s", e.Ref, e.Reason)
}

// MissingDefinitionError is returned when a $ref's fragment is
// well-formed but names a definition absent from the target root.
type MissingDefinitionError struct {
	Ref  string
	Name string
}

func (e *MissingDefinitionError) Error() string {
	return fmt.Sprintf("$ref %q: no definition named %q", e.Ref, e.Name)
}

// InvariantViolationError is the safety net for internal assumptions
// that should be unreachable (an unhandled IR variant, for instance).
type InvariantViolationError struct {
	Detail string
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("internal invariant violated: %s", e.Detail)
}
