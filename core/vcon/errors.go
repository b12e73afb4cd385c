package vcon

import (
	"fmt"
	"strings"
)

// FieldError reports a single-field violation local to one entity: a bad
// enum literal, malformed URL, negative duration, encoding without body.
type FieldError struct {
	Path       string
	Constraint string
}

func (e *FieldError) Error() string {
	return e.Path + ": " + e.Constraint
}

// ReferenceError reports an index-based cross-reference that is out of
// bounds for its target collection, including the forward-reference case
// at append time.
type ReferenceError struct {
	Path   string
	Index  int
	Length int
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s: index %d out of range (collection length %d)", e.Path, e.Index, e.Length)
}

// ExclusivityError reports a body/url content-mode conflict: both set, or
// neither set on an entity that must carry content.
type ExclusivityError struct {
	Path string
	Both bool
}

func (e *ExclusivityError) Error() string {
	if e.Both {
		return e.Path + ": body and url are mutually exclusive"
	}
	return e.Path + ": exactly one of body or url is required"
}

// LineageError reports a redacted/appended/group violation, most notably a
// lineage reference pointing at the container's own uuid.
type LineageError struct {
	Path   string
	Reason string
}

func (e *LineageError) Error() string {
	return e.Path + ": " + e.Reason
}

// ValidationError is the accumulate-all result of Validate: every violation
// found over one pass, in check order. Any single violation renders the
// whole document invalid.
type ValidationError struct {
	Violations []error
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Violations) == 0 {
		return "invalid vcon"
	}
	parts := make([]string, len(e.Violations))
	for i, violation := range e.Violations {
		parts[i] = violation.Error()
	}
	return "invalid vcon: " + strings.Join(parts, "; ")
}

// Unwrap exposes the individual violations to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	return e.Violations
}

// MalformedDocumentError wraps any failure on the deserialization path: raw
// JSON parse errors, structural decode errors, and invariant violations.
// DecodeCanonical never returns a partially valid container alongside one.
type MalformedDocumentError struct {
	Err error
}

func (e *MalformedDocumentError) Error() string {
	if e == nil || e.Err == nil {
		return "malformed vcon document"
	}
	return "malformed vcon document: " + e.Err.Error()
}

func (e *MalformedDocumentError) Unwrap() error {
	return e.Err
}
