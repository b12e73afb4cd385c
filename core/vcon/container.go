package vcon

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// VCon is the aggregate root: one versioned conversation document holding
// ordered entity collections plus lineage links to related documents.
// The uuid is immutable once assigned; every other field mutates only
// through operations that re-run validation.
//
// A VCon is not safe for concurrent mutation; callers serialize Add* and
// Redact on one instance. Validate and EncodeCanonical are read-only and
// may run concurrently on an otherwise-unmutated container.
type VCon struct {
	Vcon      Version    `json:"vcon"`
	UUID      string     `json:"uuid"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
	Subject   string     `json:"subject,omitempty"`

	Redacted *Redacted   `json:"redacted,omitempty"`
	Appended *Appended   `json:"appended,omitempty"`
	Group    []GroupItem `json:"group,omitempty"`

	Parties     []Party      `json:"parties,omitzero"`
	Dialog      []Dialog     `json:"dialog,omitzero"`
	Analysis    []Analysis   `json:"analysis,omitzero"`
	Attachments []Attachment `json:"attachments,omitzero"`

	Meta map[string]any `json:"meta,omitzero"`
}

var knownContainerKeys = knownSet(
	"vcon", "uuid", "created_at", "updated_at", "subject",
	"redacted", "appended", "group",
	"parties", "dialog", "analysis", "attachments", "meta",
)

func (v *VCon) UnmarshalJSON(data []byte) error {
	type alias VCon
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	folded, err := foldUnknown(data, knownContainerKeys)
	if err != nil {
		return err
	}
	decoded.Meta = mergeMeta(decoded.Meta, folded)
	*v = VCon(decoded)
	return nil
}

// BuildNew allocates a fresh container: new v4 uuid, current format
// version, creation time now, empty collections. It never fails.
func BuildNew() *VCon {
	return &VCon{
		Vcon:        Version002,
		UUID:        uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Parties:     []Party{},
		Dialog:      []Dialog{},
		Analysis:    []Analysis{},
		Attachments: []Attachment{},
	}
}

func (v *VCon) touch() {
	now := time.Now().UTC()
	v.UpdatedAt = &now
}

// AddParty appends a party and returns its index. On any field violation
// the container is left unchanged.
func (v *VCon) AddParty(p Party) (int, error) {
	path := fmt.Sprintf("parties[%d]", len(v.Parties))
	if violations := p.validate(path); len(violations) > 0 {
		return 0, violations[0]
	}
	v.Parties = append(v.Parties, p)
	v.touch()
	return len(v.Parties) - 1, nil
}

// AddDialog appends a dialog and returns its index. References are checked
// against the collections as they exist before the append: an entity may
// reference earlier entries, never itself or later ones. Any violation
// leaves the container unchanged.
func (v *VCon) AddDialog(d Dialog) (int, error) {
	path := fmt.Sprintf("dialog[%d]", len(v.Dialog))
	if violations := d.validate(path); len(violations) > 0 {
		return 0, violations[0]
	}
	if violations := dialogRefViolations(d, path, len(v.Parties), len(v.Dialog)); len(violations) > 0 {
		return 0, violations[0]
	}
	v.Dialog = append(v.Dialog, d)
	v.touch()
	return len(v.Dialog) - 1, nil
}

// AddAnalysis appends an analysis entry and returns its index; same
// fail-fast and backward-only reference rules as AddDialog.
func (v *VCon) AddAnalysis(a Analysis) (int, error) {
	path := fmt.Sprintf("analysis[%d]", len(v.Analysis))
	if violations := a.validate(path); len(violations) > 0 {
		return 0, violations[0]
	}
	if violations := analysisRefViolations(a, path, len(v.Dialog)); len(violations) > 0 {
		return 0, violations[0]
	}
	v.Analysis = append(v.Analysis, a)
	v.touch()
	return len(v.Analysis) - 1, nil
}

// AddAttachment appends an attachment and returns its index; same
// fail-fast and backward-only reference rules as AddDialog.
func (v *VCon) AddAttachment(a Attachment) (int, error) {
	path := fmt.Sprintf("attachments[%d]", len(v.Attachments))
	if violations := a.validate(path); len(violations) > 0 {
		return 0, violations[0]
	}
	if violations := attachmentRefViolations(a, path, len(v.Parties), len(v.Dialog)); len(violations) > 0 {
		return 0, violations[0]
	}
	v.Attachments = append(v.Attachments, a)
	v.touch()
	return len(v.Attachments) - 1, nil
}

// Redact produces the redacted successor: a fresh container whose redacted
// field points back at this container's uuid. The receiver is untouched;
// the caller supplies the reduced content through Add* on the result.
func (v *VCon) Redact(redactionType string) *VCon {
	successor := BuildNew()
	successor.Redacted = &Redacted{UUID: v.UUID, Type: redactionType}
	return successor
}

// FindPartyIndex returns the index of the first party whose named field
// equals value. Field names use the wire spelling (tel, mailto, name, ...).
func (v *VCon) FindPartyIndex(field, value string) (int, bool) {
	for i, party := range v.Parties {
		if partyField(party, field) == value {
			return i, true
		}
	}
	return 0, false
}

func partyField(p Party, field string) string {
	switch field {
	case "tel":
		return p.Tel
	case "stir":
		return p.Stir
	case "mailto":
		return p.Mailto
	case "name":
		return p.Name
	case "validation":
		return p.Validation
	case "gmlpos":
		return p.GMLPos
	case "uuid":
		return p.UUID
	case "role":
		return p.Role
	case "contact_list":
		return p.ContactList
	}
	return ""
}

// FindDialog returns the first dialog whose named field equals value, or
// nil. Supported fields: type, filename, url, campaign, interaction_id,
// skill, application, message_id.
func (v *VCon) FindDialog(field, value string) *Dialog {
	for i := range v.Dialog {
		if dialogField(v.Dialog[i], field) == value {
			return &v.Dialog[i]
		}
	}
	return nil
}

func dialogField(d Dialog, field string) string {
	switch field {
	case "type":
		return string(d.Type)
	case "filename":
		return d.Filename
	case "url":
		return d.URL
	case "campaign":
		return d.Campaign
	case "interaction_id":
		return d.InteractionID
	case "skill":
		return d.Skill
	case "application":
		return d.Application
	case "message_id":
		return d.MessageID
	}
	return ""
}

// FindAnalysisByType returns the first analysis entry of the given type.
func (v *VCon) FindAnalysisByType(analysisType string) *Analysis {
	for i := range v.Analysis {
		if v.Analysis[i].Type == analysisType {
			return &v.Analysis[i]
		}
	}
	return nil
}

// FindAttachmentByType returns the first attachment of the given type.
func (v *VCon) FindAttachmentByType(attachmentType string) *Attachment {
	for i := range v.Attachments {
		if v.Attachments[i].Type == attachmentType {
			return &v.Attachments[i]
		}
	}
	return nil
}

// AddTag sets a name/value tag, stored in a JSON-encoded "tags" attachment
// that is created on first use.
func (v *VCon) AddTag(name, value string) {
	attachment := v.FindAttachmentByType("tags")
	if attachment == nil {
		v.Attachments = append(v.Attachments, Attachment{
			Type:     "tags",
			Body:     map[string]any{},
			Encoding: EncodingJSON,
		})
		attachment = &v.Attachments[len(v.Attachments)-1]
	}
	tags, ok := attachment.Body.(map[string]any)
	if !ok {
		tags = map[string]any{}
	}
	tags[name] = value
	attachment.Body = tags
	v.touch()
}

// GetTag returns the value of a tag set via AddTag.
func (v *VCon) GetTag(name string) (string, bool) {
	attachment := v.FindAttachmentByType("tags")
	if attachment == nil {
		return "", false
	}
	tags, ok := attachment.Body.(map[string]any)
	if !ok {
		return "", false
	}
	value, ok := tags[name].(string)
	return value, ok
}
