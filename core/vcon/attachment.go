package vcon

import "time"

// Attachment is supplementary content (a document, an image, tags) tied
// optionally to one party and/or one dialog by positional index.
type Attachment struct {
	Type      string     `json:"type"`
	Start     *time.Time `json:"start,omitempty"`
	Party     *int       `json:"party,omitempty"`
	MediaType string     `json:"mediatype,omitempty"`
	Filename  string     `json:"filename,omitempty"`
	Dialog    *int       `json:"dialog,omitempty"`

	Body        any      `json:"body,omitempty"`
	Encoding    Encoding `json:"encoding,omitempty"`
	URL         string   `json:"url,omitempty"`
	ContentHash HashList `json:"content_hash,omitempty"`
}

func (a *Attachment) UnmarshalJSON(data []byte) error {
	type alias Attachment
	var decoded alias
	if err := strictDecode(data, &decoded); err != nil {
		return err
	}
	*a = Attachment(decoded)
	return nil
}

func (a Attachment) validate(path string) []error {
	var violations []error
	if a.Type == "" {
		violations = append(violations, &FieldError{Path: path + ".type", Constraint: "type is required"})
	}
	hasBody := a.Body != nil
	violations = append(violations, contentViolations(path, a.Body, hasBody, a.Encoding, a.URL, a.ContentHash, false)...)
	return violations
}
