package vcon

// Redacted points at the prior, less-redacted version of this container.
// The uuid is required and must differ from the referencing container's own.
type Redacted struct {
	UUID string `json:"uuid"`
	Type string `json:"type,omitempty"`

	Body        string   `json:"body,omitempty"`
	Encoding    Encoding `json:"encoding,omitempty"`
	URL         string   `json:"url,omitempty"`
	ContentHash HashList `json:"content_hash,omitempty"`
}

func (r *Redacted) UnmarshalJSON(data []byte) error {
	type alias Redacted
	var decoded alias
	if err := strictDecode(data, &decoded); err != nil {
		return err
	}
	*r = Redacted(decoded)
	return nil
}

// Appended points at the container this document extends, by uuid or by an
// embedded/external copy.
type Appended struct {
	UUID string `json:"uuid,omitempty"`

	Body        string   `json:"body,omitempty"`
	Encoding    Encoding `json:"encoding,omitempty"`
	URL         string   `json:"url,omitempty"`
	ContentHash HashList `json:"content_hash,omitempty"`
}

func (a *Appended) UnmarshalJSON(data []byte) error {
	type alias Appended
	var decoded alias
	if err := strictDecode(data, &decoded); err != nil {
		return err
	}
	*a = Appended(decoded)
	return nil
}

// GroupItem bundles another conversation into this container, by uuid, by
// inline JSON body, or by external reference.
type GroupItem struct {
	UUID string `json:"uuid,omitempty"`

	Body        string   `json:"body,omitempty"`
	Encoding    Encoding `json:"encoding,omitempty"`
	URL         string   `json:"url,omitempty"`
	ContentHash HashList `json:"content_hash,omitempty"`
}

func (g *GroupItem) UnmarshalJSON(data []byte) error {
	type alias GroupItem
	var decoded alias
	if err := strictDecode(data, &decoded); err != nil {
		return err
	}
	*g = GroupItem(decoded)
	return nil
}

func (r Redacted) validate(path string) []error {
	var violations []error
	if r.UUID == "" {
		violations = append(violations, &FieldError{Path: path + ".uuid", Constraint: "uuid is required"})
	}
	violations = append(violations, lineageContentViolations(path, r.Body, r.Encoding, r.URL, r.ContentHash)...)
	return violations
}

func (a Appended) validate(path string) []error {
	var violations []error
	if a.UUID == "" && a.Body == "" && a.URL == "" {
		violations = append(violations, &FieldError{Path: path, Constraint: "uuid, body, or url is required"})
	}
	violations = append(violations, lineageContentViolations(path, a.Body, a.Encoding, a.URL, a.ContentHash)...)
	return violations
}

func (g GroupItem) validate(path string) []error {
	var violations []error
	if g.UUID == "" && g.Body == "" && g.URL == "" {
		violations = append(violations, &FieldError{Path: path, Constraint: "uuid, body, or url is required"})
	}
	if g.Body != "" && g.Encoding != "" && g.Encoding != EncodingJSON {
		violations = append(violations, &FieldError{Path: path + ".encoding", Constraint: "group items embed whole documents, encoding must be \"json\""})
	}
	violations = append(violations, lineageContentViolations(path, g.Body, g.Encoding, g.URL, g.ContentHash)...)
	return violations
}

// lineageContentViolations is contentViolations with "neither" always
// allowed: lineage references may consist of a bare uuid.
func lineageContentViolations(path, body string, encoding Encoding, rawURL string, hashes HashList) []error {
	return contentViolations(path, body, body != "", encoding, rawURL, hashes, true)
}
