package vcon

import (
	"encoding/json"
	"testing"
)

func TestPartyValidateUUID(t *testing.T) {
	if violations := (Party{Tel: "+1234567890"}).validate("parties[0]"); len(violations) != 0 {
		t.Fatalf("party without uuid is valid, got %v", violations)
	}
	if violations := (Party{UUID: "0195e7a8-0000-7000-8000-000000000001"}).validate("parties[0]"); len(violations) != 0 {
		t.Fatalf("party with valid uuid is valid, got %v", violations)
	}
	if violations := (Party{UUID: "nope"}).validate("parties[0]"); len(violations) == 0 {
		t.Fatal("expected violation for malformed party uuid")
	}
}

func TestCivicAddressStrictDecode(t *testing.T) {
	valid := []byte(`{"country": "US", "a1": "CA", "a3": "Monterey", "pc": "93940"}`)
	var address CivicAddress
	if err := json.Unmarshal(valid, &address); err != nil {
		t.Fatalf("unmarshal civic address: %v", err)
	}
	if address.A3 != "Monterey" {
		t.Fatalf("unexpected a3 %q", address.A3)
	}

	if err := json.Unmarshal([]byte(`{"country": "US", "planet": "Earth"}`), &address); err == nil {
		t.Fatal("expected unknown civic address key to be rejected")
	}
}

func TestPartyHistoryStrictDecode(t *testing.T) {
	var event PartyHistory
	if err := json.Unmarshal([]byte(`{"party": 0, "event": "join", "time": "2024-01-01T00:00:00Z", "mood": "great"}`), &event); err == nil {
		t.Fatal("expected unknown party history key to be rejected")
	}
}

func TestAnalysisValidateRequiredFields(t *testing.T) {
	violations := (Analysis{Body: "hi", Encoding: EncodingNone}).validate("analysis[0]")
	paths := map[string]bool{}
	for _, violation := range violations {
		if fieldErr, ok := violation.(*FieldError); ok {
			paths[fieldErr.Path] = true
		}
	}
	if !paths["analysis[0].type"] || !paths["analysis[0].vendor"] {
		t.Fatalf("expected type and vendor violations, got %v", violations)
	}
}

func TestAttachmentContentHashRules(t *testing.T) {
	a := Attachment{
		Type:        "recording-ref",
		URL:         "https://example.com/call.wav",
		ContentHash: HashList{"sha256-n4bQgYhMfWWaL-qgxVrQFaO_TxsrC4Is0V1sFbDwCgg"},
	}
	if violations := a.validate("attachments[0]"); len(violations) != 0 {
		t.Fatalf("url with content hash is valid, got %v", violations)
	}

	a.ContentHash = HashList{"md5-abcd"}
	if violations := a.validate("attachments[0]"); len(violations) == 0 {
		t.Fatal("expected violation for unsupported hash algorithm")
	}

	a = Attachment{Type: "note", Body: "hello", Encoding: EncodingNone, ContentHash: HashList{"sha256-n4bQgYhMfWWaL-qgxVrQFaO_TxsrC4Is0V1sFbDwCgg"}}
	if violations := a.validate("attachments[0]"); len(violations) == 0 {
		t.Fatal("expected violation for content hash alongside an inline body")
	}
}
