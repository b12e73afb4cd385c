// Package projection flattens a validated container into relational row
// shapes: one document row plus one row per party, dialog, analysis, and
// attachment, each carrying the container uuid and its own position. The
// storage layer consuming these rows may assume every container invariant
// holds; Flatten refuses anything that fails validation.
package projection

import (
	"fmt"
	"time"

	"github.com/davidahmann/vconkit/core/vcon"
)

type Snapshot struct {
	VCon        VConRow         `json:"vcon"`
	Parties     []PartyRow      `json:"parties"`
	Dialogs     []DialogRow     `json:"dialogs"`
	Analyses    []AnalysisRow   `json:"analyses"`
	Attachments []AttachmentRow `json:"attachments"`
}

// VConRow is the primary table row: hoisted top-level columns plus the
// full canonical document.
type VConRow struct {
	UUID         string     `json:"uuid"`
	Version      string     `json:"version"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at,omitempty"`
	Subject      string     `json:"subject,omitempty"`
	RedactedUUID string     `json:"redacted_uuid,omitempty"`
	AppendedUUID string     `json:"appended_uuid,omitempty"`
	GroupSize    int        `json:"group_size"`
	Document     []byte     `json:"document"`
}

type PartyRow struct {
	VConUUID  string `json:"vcon_uuid"`
	Index     int    `json:"index"`
	Tel       string `json:"tel,omitempty"`
	Mailto    string `json:"mailto,omitempty"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	PartyUUID string `json:"party_uuid,omitempty"`
}

type DialogRow struct {
	VConUUID    string     `json:"vcon_uuid"`
	Index       int        `json:"index"`
	Type        string     `json:"type"`
	Start       time.Time  `json:"start"`
	Duration    *float64   `json:"duration,omitempty"`
	Parties     []int      `json:"parties,omitempty"`
	Originator  *int       `json:"originator,omitempty"`
	MediaType   string     `json:"mediatype,omitempty"`
	Filename    string     `json:"filename,omitempty"`
	URL         string     `json:"url,omitempty"`
	Disposition string     `json:"disposition,omitempty"`
	MessageID   string     `json:"message_id,omitempty"`
}

type AnalysisRow struct {
	VConUUID  string `json:"vcon_uuid"`
	Index     int    `json:"index"`
	Type      string `json:"type"`
	Vendor    string `json:"vendor,omitempty"`
	Product   string `json:"product,omitempty"`
	Schema    string `json:"schema,omitempty"`
	Dialogs   []int  `json:"dialogs,omitempty"`
	MediaType string `json:"mediatype,omitempty"`
	URL       string `json:"url,omitempty"`
}

type AttachmentRow struct {
	VConUUID  string     `json:"vcon_uuid"`
	Index     int        `json:"index"`
	Type      string     `json:"type"`
	Start     *time.Time `json:"start,omitempty"`
	Party     *int       `json:"party,omitempty"`
	Dialog    *int       `json:"dialog,omitempty"`
	MediaType string     `json:"mediatype,omitempty"`
	Filename  string     `json:"filename,omitempty"`
	URL       string     `json:"url,omitempty"`
}

// Flatten projects a container into row shapes. It validates first and
// never emits rows for an invalid container.
func Flatten(container *vcon.VCon) (Snapshot, error) {
	if err := container.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("refusing to project invalid container: %w", err)
	}
	document, err := container.EncodeCanonical()
	if err != nil {
		return Snapshot{}, fmt.Errorf("encode canonical document: %w", err)
	}

	snapshot := Snapshot{
		VCon: VConRow{
			UUID:      container.UUID,
			Version:   string(container.Vcon),
			CreatedAt: container.CreatedAt,
			UpdatedAt: container.UpdatedAt,
			Subject:   container.Subject,
			GroupSize: len(container.Group),
			Document:  document,
		},
		Parties:     make([]PartyRow, 0, len(container.Parties)),
		Dialogs:     make([]DialogRow, 0, len(container.Dialog)),
		Analyses:    make([]AnalysisRow, 0, len(container.Analysis)),
		Attachments: make([]AttachmentRow, 0, len(container.Attachments)),
	}
	if container.Redacted != nil {
		snapshot.VCon.RedactedUUID = container.Redacted.UUID
	}
	if container.Appended != nil {
		snapshot.VCon.AppendedUUID = container.Appended.UUID
	}

	for i, party := range container.Parties {
		snapshot.Parties = append(snapshot.Parties, PartyRow{
			VConUUID:  container.UUID,
			Index:     i,
			Tel:       party.Tel,
			Mailto:    party.Mailto,
			Name:      party.Name,
			Role:      party.Role,
			PartyUUID: party.UUID,
		})
	}
	for i, dialog := range container.Dialog {
		snapshot.Dialogs = append(snapshot.Dialogs, DialogRow{
			VConUUID:    container.UUID,
			Index:       i,
			Type:        string(dialog.Type),
			Start:       dialog.Start,
			Duration:    dialog.Duration,
			Parties:     dialog.Parties,
			Originator:  dialog.Originator,
			MediaType:   dialog.MediaType,
			Filename:    dialog.Filename,
			URL:         dialog.URL,
			Disposition: string(dialog.Disposition),
			MessageID:   dialog.MessageID,
		})
	}
	for i, analysis := range container.Analysis {
		snapshot.Analyses = append(snapshot.Analyses, AnalysisRow{
			VConUUID:  container.UUID,
			Index:     i,
			Type:      analysis.Type,
			Vendor:    analysis.Vendor,
			Product:   analysis.Product,
			Schema:    analysis.Schema,
			Dialogs:   analysis.Dialog,
			MediaType: analysis.MediaType,
			URL:       analysis.URL,
		})
	}
	for i, attachment := range container.Attachments {
		snapshot.Attachments = append(snapshot.Attachments, AttachmentRow{
			VConUUID:  container.UUID,
			Index:     i,
			Type:      attachment.Type,
			Start:     attachment.Start,
			Party:     attachment.Party,
			Dialog:    attachment.Dialog,
			MediaType: attachment.MediaType,
			Filename:  attachment.Filename,
			URL:       attachment.URL,
		})
	}
	return snapshot, nil
}
