package vcon

import (
	"encoding/json"

	"github.com/davidahmann/vconkit/core/jcs"
)

// EncodeCanonical serializes the container to RFC 8785 canonical JSON.
// Collection order is preserved (it carries meaning: other fields reference
// entries by position), enums render as their literal spellings, timestamps
// as RFC 3339 with explicit offset, and fields never set are omitted while
// explicitly-set empty mappings are kept. Callers encode already-validated
// containers; EncodeCanonical does not re-run Validate.
func (v *VCon) EncodeCanonical() ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return jcs.CanonicalizeJSON(raw)
}

// EncodeIndent serializes the container as indented JSON for display. The
// canonical form is what external systems should store and hash.
func (v *VCon) EncodeIndent() ([]byte, error) {
	return json.MarshalIndent(v, "", "  ")
}

// DecodeCanonical parses a vCon document and validates it before returning.
// Every failure on this path, from a raw parse error to a single invariant
// violation, comes back as a *MalformedDocumentError; there is no partially
// valid result.
func DecodeCanonical(data []byte, opts ...ValidateOption) (*VCon, error) {
	var container VCon
	if err := json.Unmarshal(data, &container); err != nil {
		return nil, &MalformedDocumentError{Err: err}
	}
	if err := container.Validate(opts...); err != nil {
		return nil, &MalformedDocumentError{Err: err}
	}
	return &container, nil
}
