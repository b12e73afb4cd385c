package vcon

import (
	"fmt"

	"github.com/google/uuid"
)

type validateOptions struct {
	requireKnownVersion bool
}

// ValidateOption configures VCon.Validate.
type ValidateOption func(*validateOptions)

// WithRequireKnownVersion rejects format-version literals this library does
// not recognise. Default behavior accepts any MAJOR.MINOR.PATCH literal so
// documents from newer format revisions still validate.
func WithRequireKnownVersion() ValidateOption {
	return func(o *validateOptions) { o.requireKnownVersion = true }
}

// Validate re-checks every container invariant over a snapshot and
// accumulates all violations in check order: required top-level fields,
// then per-entity field and enum checks, then cross-reference bounds, then
// timestamp ordering, then lineage. It is pure and idempotent; a nil
// return means the document is valid. Partial validity does not exist: any
// single violation makes the whole document invalid.
func (v *VCon) Validate(opts ...ValidateOption) error {
	var o validateOptions
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	var violations []error

	// Required top-level fields.
	if v.UUID == "" {
		violations = append(violations, &FieldError{Path: "uuid", Constraint: "uuid is required"})
	} else if err := uuid.Validate(v.UUID); err != nil {
		violations = append(violations, &FieldError{Path: "uuid", Constraint: "must be a valid UUID"})
	}
	if v.CreatedAt.IsZero() {
		violations = append(violations, &FieldError{Path: "created_at", Constraint: "created_at is required"})
	}
	switch {
	case v.Vcon == "":
		violations = append(violations, &FieldError{Path: "vcon", Constraint: "format version is required"})
	case !v.Vcon.Wellformed():
		violations = append(violations, &FieldError{Path: "vcon", Constraint: "format version must be MAJOR.MINOR.PATCH"})
	case o.requireKnownVersion && !v.Vcon.Known():
		violations = append(violations, &FieldError{Path: "vcon", Constraint: fmt.Sprintf("unsupported format version %q", v.Vcon)})
	}

	// Per-entity field and enum checks.
	for i, party := range v.Parties {
		violations = append(violations, party.validate(fmt.Sprintf("parties[%d]", i))...)
	}
	for i, dialog := range v.Dialog {
		violations = append(violations, dialog.validate(fmt.Sprintf("dialog[%d]", i))...)
	}
	for i, analysis := range v.Analysis {
		violations = append(violations, analysis.validate(fmt.Sprintf("analysis[%d]", i))...)
	}
	for i, attachment := range v.Attachments {
		violations = append(violations, attachment.validate(fmt.Sprintf("attachments[%d]", i))...)
	}

	// Cross-reference bounds.
	partyCount, dialogCount := len(v.Parties), len(v.Dialog)
	for i, dialog := range v.Dialog {
		violations = append(violations, dialogRefViolations(dialog, fmt.Sprintf("dialog[%d]", i), partyCount, dialogCount)...)
	}
	for i, analysis := range v.Analysis {
		violations = append(violations, analysisRefViolations(analysis, fmt.Sprintf("analysis[%d]", i), dialogCount)...)
	}
	for i, attachment := range v.Attachments {
		violations = append(violations, attachmentRefViolations(attachment, fmt.Sprintf("attachments[%d]", i), partyCount, dialogCount)...)
	}

	// Timestamp ordering.
	if !v.CreatedAt.IsZero() && v.UpdatedAt != nil && v.UpdatedAt.Before(v.CreatedAt) {
		violations = append(violations, &FieldError{Path: "updated_at", Constraint: "must not precede created_at"})
	}

	// Lineage.
	violations = append(violations, v.lineageViolations()...)

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

func (v *VCon) lineageViolations() []error {
	var violations []error

	lineageModes := 0
	if v.Redacted != nil {
		lineageModes++
		violations = append(violations, v.Redacted.validate("redacted")...)
		if v.Redacted.UUID != "" && v.Redacted.UUID == v.UUID {
			violations = append(violations, &LineageError{Path: "redacted.uuid", Reason: "must reference a different vcon than this document"})
		}
	}
	if v.Appended != nil {
		lineageModes++
		violations = append(violations, v.Appended.validate("appended")...)
		if v.Appended.UUID != "" && v.Appended.UUID == v.UUID {
			violations = append(violations, &LineageError{Path: "appended.uuid", Reason: "must reference a different vcon than this document"})
		}
	}
	if len(v.Group) > 0 {
		lineageModes++
		for i, item := range v.Group {
			violations = append(violations, item.validate(fmt.Sprintf("group[%d]", i))...)
		}
	}
	if lineageModes > 1 {
		violations = append(violations, &LineageError{Path: "", Reason: "redacted, appended, and group are mutually exclusive"})
	}
	return violations
}

func dialogRefViolations(d Dialog, path string, partyCount, dialogCount int) []error {
	var violations []error
	for i, index := range d.Parties {
		if index < 0 || index >= partyCount {
			violations = append(violations, &ReferenceError{Path: fmt.Sprintf("%s.parties[%d]", path, i), Index: index, Length: partyCount})
		}
	}
	violations = appendIndexRef(violations, path+".originator", d.Originator, partyCount)
	for i, event := range d.PartyHistory {
		if event.Party < 0 || event.Party >= partyCount {
			violations = append(violations, &ReferenceError{Path: fmt.Sprintf("%s.party_history[%d].party", path, i), Index: event.Party, Length: partyCount})
		}
	}
	violations = appendIndexRef(violations, path+".transferee", d.Transferee, partyCount)
	violations = appendIndexRef(violations, path+".transferor", d.Transferor, partyCount)
	violations = appendIndexRef(violations, path+".transfer_target", d.TransferTarget, partyCount)
	violations = appendIndexRef(violations, path+".original", d.Original, dialogCount)
	violations = appendIndexRef(violations, path+".consultation", d.Consultation, dialogCount)
	violations = appendIndexRef(violations, path+".target_dialog", d.TargetDialog, dialogCount)
	return violations
}

func appendIndexRef(violations []error, path string, index *int, length int) []error {
	if index == nil {
		return violations
	}
	if *index < 0 || *index >= length {
		violations = append(violations, &ReferenceError{Path: path, Index: *index, Length: length})
	}
	return violations
}

func analysisRefViolations(a Analysis, path string, dialogCount int) []error {
	var violations []error
	for i, index := range a.Dialog {
		if index < 0 || index >= dialogCount {
			violations = append(violations, &ReferenceError{Path: fmt.Sprintf("%s.dialog[%d]", path, i), Index: index, Length: dialogCount})
		}
	}
	return violations
}

func attachmentRefViolations(a Attachment, path string, partyCount, dialogCount int) []error {
	var violations []error
	violations = appendIndexRef(violations, path+".party", a.Party, partyCount)
	violations = appendIndexRef(violations, path+".dialog", a.Dialog, dialogCount)
	return violations
}
