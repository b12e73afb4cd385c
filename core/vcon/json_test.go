package vcon

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	container := validContainer()
	container.Subject = "support call"
	if _, err := container.AddAnalysis(Analysis{Type: "transcript", Dialog: IndexList{0}, Vendor: "acme", Body: "hello", Encoding: EncodingNone}); err != nil {
		t.Fatalf("AddAnalysis: %v", err)
	}
	container.AddTag("team", "support")

	encoded, err := container.EncodeCanonical()
	if err != nil {
		t.Fatalf("EncodeCanonical: %v", err)
	}
	decoded, err := DecodeCanonical(encoded)
	if err != nil {
		t.Fatalf("DecodeCanonical: %v", err)
	}
	if diff := cmp.Diff(container, decoded); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeCanonicalIsDeterministic(t *testing.T) {
	container := validContainer()
	first, err := container.EncodeCanonical()
	if err != nil {
		t.Fatalf("first encode: %v", err)
	}
	second, err := container.EncodeCanonical()
	if err != nil {
		t.Fatalf("second encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatal("canonical encoding must be byte identical across calls")
	}
}

func TestEncodeOmitsAbsentCollectionsAndMeta(t *testing.T) {
	container := validContainer()
	container.Analysis = nil
	container.Attachments = nil

	encoded, err := container.EncodeCanonical()
	if err != nil {
		t.Fatalf("EncodeCanonical: %v", err)
	}
	if bytes.Contains(encoded, []byte(`"analysis"`)) {
		t.Fatalf("nil analysis collection must be omitted: %s", encoded)
	}
	if bytes.Contains(encoded, []byte(`"meta"`)) {
		t.Fatalf("unset meta must be omitted: %s", encoded)
	}

	container.Analysis = []Analysis{}
	container.Meta = map[string]any{}
	encoded, err = container.EncodeCanonical()
	if err != nil {
		t.Fatalf("EncodeCanonical: %v", err)
	}
	if !bytes.Contains(encoded, []byte(`"analysis":[]`)) {
		t.Fatalf("explicitly empty analysis collection must be kept: %s", encoded)
	}
	if !bytes.Contains(encoded, []byte(`"meta":{}`)) {
		t.Fatalf("explicitly empty meta must be kept: %s", encoded)
	}
}

func TestDecodeCanonicalRejectsInvalidJSON(t *testing.T) {
	_, err := DecodeCanonical([]byte(`{"vcon": "0.0.2",`))
	var malformedErr *MalformedDocumentError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("expected MalformedDocumentError, got %v", err)
	}
}

func TestDecodeCanonicalWrapsValidationFailures(t *testing.T) {
	document := []byte(`{
		"vcon": "0.0.2",
		"uuid": "0195e7a8-0000-7000-8000-000000000001",
		"created_at": "2024-01-01T00:00:00Z",
		"parties": [{"tel": "+1234567890"}],
		"dialog": [{
			"type": "text",
			"start": "2024-01-01T00:00:00Z",
			"parties": [0],
			"encoding": "base64url",
			"url": "https://example.com/audio.wav"
		}]
	}`)

	_, err := DecodeCanonical(document)
	var malformedErr *MalformedDocumentError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("expected MalformedDocumentError, got %v", err)
	}
	var fieldErr *FieldError
	if !errors.As(err, &fieldErr) {
		t.Fatalf("expected the underlying FieldError to be reachable, got %v", err)
	}
	if fieldErr.Path != "dialog[0].encoding" {
		t.Fatalf("unexpected violation path %q", fieldErr.Path)
	}
}

func TestDecodeFoldsUnknownKeysIntoMeta(t *testing.T) {
	document := []byte(`{
		"vcon": "0.0.2",
		"uuid": "0195e7a8-0000-7000-8000-000000000001",
		"created_at": "2024-01-01T00:00:00Z",
		"x_tenant": "acme",
		"parties": [{"tel": "+1234567890", "x_crm_id": "C-77"}],
		"dialog": [{
			"type": "text",
			"start": "2024-01-01T00:00:00Z",
			"parties": [0],
			"body": "hi",
			"encoding": "none",
			"x_channel": "sms"
		}]
	}`)

	container, err := DecodeCanonical(document)
	if err != nil {
		t.Fatalf("DecodeCanonical: %v", err)
	}
	if got := container.Meta["x_tenant"]; got != "acme" {
		t.Fatalf("expected top-level unknown key in meta, got %v", got)
	}
	if got := container.Parties[0].Meta["x_crm_id"]; got != "C-77" {
		t.Fatalf("expected party unknown key in meta, got %v", got)
	}
	if got := container.Dialog[0].Meta["x_channel"]; got != "sms" {
		t.Fatalf("expected dialog unknown key in meta, got %v", got)
	}
}

func TestDecodeExplicitMetaWinsOverFoldedKey(t *testing.T) {
	document := []byte(`{"tel": "+1234567890", "label": "folded", "meta": {"label": "explicit"}}`)

	var party Party
	if err := json.Unmarshal(document, &party); err != nil {
		t.Fatalf("unmarshal party: %v", err)
	}
	if got := party.Meta["label"]; got != "explicit" {
		t.Fatalf("explicitly set meta key must win, got %v", got)
	}
}

func TestDecodeRejectsUnknownAnalysisKey(t *testing.T) {
	document := []byte(`{
		"vcon": "0.0.2",
		"uuid": "0195e7a8-0000-7000-8000-000000000001",
		"created_at": "2024-01-01T00:00:00Z",
		"analysis": [{
			"type": "transcript",
			"vendor": "acme",
			"body": "hi",
			"encoding": "none",
			"surprise": true
		}]
	}`)

	_, err := DecodeCanonical(document)
	var malformedErr *MalformedDocumentError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("expected MalformedDocumentError for unknown analysis key, got %v", err)
	}
}

func TestDecodeCoercesScalarIndexAndHash(t *testing.T) {
	document := []byte(`{
		"type": "text",
		"start": "2024-01-01T00:00:00Z",
		"parties": 0,
		"url": "https://example.com/transcript.txt",
		"content_hash": "sha256-n4bQgYhMfWWaL-qgxVrQFaO_TxsrC4Is0V1sFbDwCgg"
	}`)

	var dialog Dialog
	if err := json.Unmarshal(document, &dialog); err != nil {
		t.Fatalf("unmarshal dialog: %v", err)
	}
	if diff := cmp.Diff(IndexList{0}, dialog.Parties); diff != "" {
		t.Fatalf("scalar party index must decode to a one-entry list:\n%s", diff)
	}
	if len(dialog.ContentHash) != 1 {
		t.Fatalf("scalar content hash must decode to a one-entry list, got %v", dialog.ContentHash)
	}
}

func TestEncodeIndentStaysParseable(t *testing.T) {
	encoded, err := validContainer().EncodeIndent()
	if err != nil {
		t.Fatalf("EncodeIndent: %v", err)
	}
	if _, err := DecodeCanonical(encoded); err != nil {
		t.Fatalf("indented output must decode: %v", err)
	}
}
