package rendering

import (
	"errors"
	"fmt"
)

// ErrNilDocument is returned when WriteDOCX is given no document.
var ErrNilDocument = errors.New("document is nil")

// TemplateError reports a WordprocessingML template that failed to parse or execute.
type TemplateError struct {
	Template string
	Cause    error
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("wordml template %s: %v", e.Template, e.Cause)
}

func (e *TemplateError) Unwrap() error {
	return e.Cause
}

// BlockError reports a document block that could not be serialised.
type BlockError struct {
	Index int
	Cause error
}

func (e *BlockError) Error() string {
	return fmt.Sprintf("block %d: %v", e.Index, e.Cause)
}

func (e *BlockError) Unwrap() error {
	return e.Cause
}

// PackageError reports a failure handling the .docx archive itself.
// Part is empty when the whole package is affected.
type PackageError struct {
	Op    string // open, read, add, write, close, parse
	Part  string
	Cause error
}

func (e *PackageError) Error() string {
	if e.Part == "" {
		return fmt.Sprintf("docx %s: %v", e.Op, e.Cause)
	}
	return fmt.Sprintf("docx %s %s: %v", e.Op, e.Part, e.Cause)
}

func (e *PackageError) Unwrap() error {
	return e.Cause
}
