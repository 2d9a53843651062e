package replacer

import (
	"errors"
	"fmt"
)

// Error kinds for document processing. Loader-side kinds live in
// pkg/mapping; these cover everything past a loaded mapping.
var (
	// ErrNotFound indicates a missing input PDF
	ErrNotFound = errors.New("input PDF not found")
	// ErrIO indicates the input could not be opened or the output written
	ErrIO = errors.New("PDF open/save failure")
	// ErrProcessing indicates a failure while searching, redacting, or
	// inserting on a page
	ErrProcessing = errors.New("page processing failure")
)

// ReplaceError carries the error kind, the failing operation, and the file
// it failed on. errors.Is matches against the kind.
type ReplaceError struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *ReplaceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
}

func (e *ReplaceError) Unwrap() error {
	return e.Err
}

func (e *ReplaceError) Is(target error) bool {
	return target == e.Kind
}

func kindErr(kind error, op, path string, err error) *ReplaceError {
	return &ReplaceError{Kind: kind, Op: op, Path: path, Err: err}
}
