package vcon

// Analysis is derived data (transcript, sentiment, summary) about one or
// more dialogs, referenced by index into the container's dialog collection.
type Analysis struct {
	Type      string    `json:"type"`
	Dialog    IndexList `json:"dialog,omitempty"`
	MediaType string    `json:"mediatype,omitempty"`
	Filename  string    `json:"filename,omitempty"`
	Vendor    string    `json:"vendor,omitempty"`
	Product   string    `json:"product,omitempty"`
	Schema    string    `json:"schema,omitempty"`

	Body        any      `json:"body,omitempty"`
	Encoding    Encoding `json:"encoding,omitempty"`
	URL         string   `json:"url,omitempty"`
	ContentHash HashList `json:"content_hash,omitempty"`
}

func (a *Analysis) UnmarshalJSON(data []byte) error {
	type alias Analysis
	var decoded alias
	if err := strictDecode(data, &decoded); err != nil {
		return err
	}
	*a = Analysis(decoded)
	return nil
}

func (a Analysis) validate(path string) []error {
	var violations []error
	if a.Type == "" {
		violations = append(violations, &FieldError{Path: path + ".type", Constraint: "type is required"})
	}
	if a.Vendor == "" {
		violations = append(violations, &FieldError{Path: path + ".vendor", Constraint: "vendor is required"})
	}
	hasBody := a.Body != nil
	violations = append(violations, contentViolations(path, a.Body, hasBody, a.Encoding, a.URL, a.ContentHash, false)...)
	return violations
}
