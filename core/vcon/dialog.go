package vcon

import (
	"encoding/json"
	"fmt"
	"time"
)

// Dialog is one exchange event: a recording, a text message, a transfer
// event, or a marker for an exchange that never completed. Party and dialog
// references are positional indices into the container's collections.
type Dialog struct {
	Type       DialogType `json:"type"`
	Start      time.Time  `json:"start"`
	Duration   *float64   `json:"duration,omitempty"`
	Parties    IndexList  `json:"parties,omitempty"`
	Originator *int       `json:"originator,omitempty"`
	MediaType  string     `json:"mediatype,omitempty"`
	Filename   string     `json:"filename,omitempty"`

	Body        string   `json:"body,omitempty"`
	Encoding    Encoding `json:"encoding,omitempty"`
	URL         string   `json:"url,omitempty"`
	ContentHash HashList `json:"content_hash,omitempty"`

	Disposition  Disposition    `json:"disposition,omitempty"`
	PartyHistory []PartyHistory `json:"party_history,omitempty"`

	// Transfer linkage: transferee/transferor/transfer_target index into
	// parties, original/consultation/target_dialog into dialog.
	Transferee     *int `json:"transferee,omitempty"`
	Transferor     *int `json:"transferor,omitempty"`
	TransferTarget *int `json:"transfer_target,omitempty"`
	Original       *int `json:"original,omitempty"`
	Consultation   *int `json:"consultation,omitempty"`
	TargetDialog   *int `json:"target_dialog,omitempty"`

	Campaign        string         `json:"campaign,omitempty"`
	InteractionType string         `json:"interaction_type,omitempty"`
	InteractionID   string         `json:"interaction_id,omitempty"`
	Skill           string         `json:"skill,omitempty"`
	Application     string         `json:"application,omitempty"`
	MessageID       string         `json:"message_id,omitempty"`
	Meta            map[string]any `json:"meta,omitzero"`
}

var knownDialogKeys = knownSet(
	"type", "start", "duration", "parties", "originator", "mediatype",
	"filename", "body", "encoding", "url", "content_hash", "disposition",
	"party_history", "transferee", "transferor", "transfer_target",
	"original", "consultation", "target_dialog", "campaign",
	"interaction_type", "interaction_id", "skill", "application",
	"message_id", "meta",
)

func (d *Dialog) UnmarshalJSON(data []byte) error {
	type alias Dialog
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	folded, err := foldUnknown(data, knownDialogKeys)
	if err != nil {
		return err
	}
	decoded.Meta = mergeMeta(decoded.Meta, folded)
	*d = Dialog(decoded)
	return nil
}

func (d Dialog) validate(path string) []error {
	var violations []error

	if d.Type == "" {
		violations = append(violations, &FieldError{Path: path + ".type", Constraint: "type is required"})
	} else if !d.Type.Known() {
		violations = append(violations, &FieldError{Path: path + ".type", Constraint: fmt.Sprintf("unknown dialog type %q", d.Type)})
	}
	if d.Start.IsZero() {
		violations = append(violations, &FieldError{Path: path + ".start", Constraint: "start is required"})
	}
	if d.Duration != nil && *d.Duration < 0 {
		violations = append(violations, &FieldError{Path: path + ".duration", Constraint: "duration must not be negative"})
	}
	if len(d.Parties) == 0 {
		violations = append(violations, &FieldError{Path: path + ".parties", Constraint: "at least one party index is required"})
	}

	hasBody := d.Body != ""
	if d.Type == DialogIncomplete {
		if d.Disposition == "" {
			violations = append(violations, &FieldError{Path: path + ".disposition", Constraint: "disposition is required for incomplete dialogs"})
		} else if !d.Disposition.Known() {
			violations = append(violations, &FieldError{Path: path + ".disposition", Constraint: fmt.Sprintf("unknown disposition %q", d.Disposition)})
		}
		if hasBody || d.URL != "" {
			violations = append(violations, &FieldError{Path: path, Constraint: "incomplete dialogs carry no body or url"})
		}
	} else {
		if d.Disposition != "" {
			violations = append(violations, &FieldError{Path: path + ".disposition", Constraint: "disposition applies only to incomplete dialogs"})
		}
		// Transfer entries mark call-flow events and may carry no content.
		neitherOK := d.Type == DialogTransfer
		violations = append(violations, contentViolations(path, d.Body, hasBody, d.Encoding, d.URL, d.ContentHash, neitherOK)...)
	}

	violations = append(violations, d.transferFieldViolations(path)...)

	for i, event := range d.PartyHistory {
		entryPath := fmt.Sprintf("%s.party_history[%d]", path, i)
		if event.Event == "" {
			violations = append(violations, &FieldError{Path: entryPath + ".event", Constraint: "event is required"})
		} else if !event.Event.Known() {
			violations = append(violations, &FieldError{Path: entryPath + ".event", Constraint: fmt.Sprintf("unknown party event %q", event.Event)})
		}
		if event.Time.IsZero() {
			violations = append(violations, &FieldError{Path: entryPath + ".time", Constraint: "time is required"})
		}
	}

	return violations
}

func (d Dialog) transferFieldViolations(path string) []error {
	fields := []struct {
		name     string
		value    *int
		required bool
	}{
		{"transferee", d.Transferee, true},
		{"transferor", d.Transferor, true},
		{"transfer_target", d.TransferTarget, true},
		{"original", d.Original, true},
		{"consultation", d.Consultation, false},
		{"target_dialog", d.TargetDialog, true},
	}

	var violations []error
	if d.Type == DialogTransfer {
		for _, field := range fields {
			if field.required && field.value == nil {
				violations = append(violations, &FieldError{Path: path + "." + field.name, Constraint: "required for transfer dialogs"})
			}
		}
		return violations
	}
	for _, field := range fields {
		if field.value != nil {
			violations = append(violations, &FieldError{Path: path + "." + field.name, Constraint: "applies only to transfer dialogs"})
		}
	}
	return violations
}
