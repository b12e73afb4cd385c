package vcon

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// CivicAddress carries the RFC 5139 civic location fields for a party.
type CivicAddress struct {
	Country string `json:"country,omitempty"`
	A1      string `json:"a1,omitempty"`
	A2      string `json:"a2,omitempty"`
	A3      string `json:"a3,omitempty"`
	A4      string `json:"a4,omitempty"`
	A5      string `json:"a5,omitempty"`
	A6      string `json:"a6,omitempty"`
	PRD     string `json:"prd,omitempty"`
	POD     string `json:"pod,omitempty"`
	STS     string `json:"sts,omitempty"`
	HNO     string `json:"hno,omitempty"`
	HNS     string `json:"hns,omitempty"`
	LMK     string `json:"lmk,omitempty"`
	LOC     string `json:"loc,omitempty"`
	FLR     string `json:"flr,omitempty"`
	NAM     string `json:"nam,omitempty"`
	PC      string `json:"pc,omitempty"`
}

func (a *CivicAddress) UnmarshalJSON(data []byte) error {
	type alias CivicAddress
	var decoded alias
	if err := strictDecode(data, &decoded); err != nil {
		return err
	}
	*a = CivicAddress(decoded)
	return nil
}

// PartyHistory is one join/drop/hold style event in a dialog, attributed to
// a party by index into the container's party collection.
type PartyHistory struct {
	Party int        `json:"party"`
	Event PartyEvent `json:"event"`
	Time  time.Time  `json:"time"`
}

func (h *PartyHistory) UnmarshalJSON(data []byte) error {
	type alias PartyHistory
	var decoded alias
	if err := strictDecode(data, &decoded); err != nil {
		return err
	}
	*h = PartyHistory(decoded)
	return nil
}

// Party is one conversation participant. Every field is optional: parties
// are identified by position in the container's party collection, not by a
// mandatory identifier.
type Party struct {
	Tel          string         `json:"tel,omitempty"`
	Stir         string         `json:"stir,omitempty"`
	Mailto       string         `json:"mailto,omitempty"`
	Name         string         `json:"name,omitempty"`
	Validation   string         `json:"validation,omitempty"`
	GMLPos       string         `json:"gmlpos,omitempty"`
	CivicAddress *CivicAddress  `json:"civicaddress,omitempty"`
	UUID         string         `json:"uuid,omitempty"`
	Role         string         `json:"role,omitempty"`
	ContactList  string         `json:"contact_list,omitempty"`
	Meta         map[string]any `json:"meta,omitzero"`
}

var knownPartyKeys = knownSet(
	"tel", "stir", "mailto", "name", "validation", "gmlpos",
	"civicaddress", "uuid", "role", "contact_list", "meta",
)

func (p *Party) UnmarshalJSON(data []byte) error {
	type alias Party
	var decoded alias
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	folded, err := foldUnknown(data, knownPartyKeys)
	if err != nil {
		return err
	}
	decoded.Meta = mergeMeta(decoded.Meta, folded)
	*p = Party(decoded)
	return nil
}

func (p Party) validate(path string) []error {
	var violations []error
	if p.UUID != "" {
		if err := uuid.Validate(p.UUID); err != nil {
			violations = append(violations, &FieldError{Path: path + ".uuid", Constraint: "must be a valid UUID"})
		}
	}
	return violations
}
