package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports an unknown identifier passed to a lookup.
	ErrNotFound = errors.New("not found")

	// ErrCalendarOverflow reports offset arithmetic whose result cannot be
	// represented. Month-end overflow is always recovered by clamping, so
	// this only fires when the computed date leaves the supported window.
	ErrCalendarOverflow = errors.New("calendar overflow")
)

// TemplateIntegrityError reports a malformed template. The template is
// excluded from the usable set; loading continues for the rest.
type TemplateIntegrityError struct {
	TemplateID  string
	BlueprintID string
	Reason      string
}

func (e *TemplateIntegrityError) Error() string {
	if e.BlueprintID != "" {
		return fmt.Sprintf("template %q: blueprint %q: %s", e.TemplateID, e.BlueprintID, e.Reason)
	}
	return fmt.Sprintf("template %q: %s", e.TemplateID, e.Reason)
}

// InstantiationError reports a template execution failure. No partial
// project is ever produced.
type InstantiationError struct {
	TemplateID string
	Cause      error
}

func (e *InstantiationError) Error() string {
	return fmt.Sprintf("instantiating template %q: %v", e.TemplateID, e.Cause)
}

func (e *InstantiationError) Unwrap() error { return e.Cause }

// PersistenceError reports a failed write-through to the persistence
// collaborator. The in-memory mutation has already been applied.
type PersistenceError struct {
	Op    string
	Cause error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence %s: %v", e.Op, e.Cause)
}

func (e *PersistenceError) Unwrap() error { return e.Cause }
