package normalize

import (
	"errors"
	"sync"

	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
)

// State is a point-in-time view of an editing session.
type State struct {
	Data       types.ResumeData     `json:"data"`
	Employer   string               `json:"employer"`
	ParseError string               `json:"parseError,omitempty"`
	Warnings   []schemas.FieldError `json:"warnings,omitempty"`
}

// Editor holds the last good resume record for one editing session.
// It is safe for concurrent use.
type Editor struct {
	mu    sync.RWMutex
	state State
}

// NewEditor creates an editor seeded with initial and employer.
func NewEditor(initial types.ResumeData, employer string) *Editor {
	return &Editor{state: State{Data: initial.Clone(), Employer: employer}}
}

// Apply normalizes raw against the current record.
// On success the record, employer and warnings are replaced and the parse error is cleared.
// On malformed input the record is kept and ParseError is set; the error is still returned.
func (e *Editor) Apply(raw []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	result, err := Normalize(e.state.Data, raw)
	if err != nil {
		if errors.Is(err, ErrMalformedInput) {
			e.state.ParseError = ParseErrorMessage
		}
		return err
	}

	e.state = State{
		Data:     result.Data,
		Employer: result.Employer,
		Warnings: result.Warnings,
	}
	return nil
}

// Snapshot returns a copy of the current state.
func (e *Editor) Snapshot() State {
	e.mu.RLock()
	defer e.mu.RUnlock()

	out := e.state
	out.Data = e.state.Data.Clone()
	out.Warnings = append([]schemas.FieldError(nil), e.state.Warnings...)
	return out
}
