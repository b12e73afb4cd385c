package vcon

import (
	"errors"
	"testing"
	"time"
)

var testStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func textDialog() Dialog {
	return Dialog{
		Type:     DialogText,
		Start:    testStart,
		Parties:  IndexList{0},
		Body:     "Hello, world!",
		Encoding: EncodingJSON,
	}
}

func TestDialogValidateAccepts(t *testing.T) {
	if violations := textDialog().validate("dialog[0]"); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func TestDialogRequiresTypeStartParties(t *testing.T) {
	violations := Dialog{}.validate("dialog[0]")
	if len(violations) == 0 {
		t.Fatal("expected violations for empty dialog")
	}
	paths := map[string]bool{}
	for _, violation := range violations {
		var fieldErr *FieldError
		if errors.As(violation, &fieldErr) {
			paths[fieldErr.Path] = true
		}
	}
	for _, want := range []string{"dialog[0].type", "dialog[0].start", "dialog[0].parties"} {
		if !paths[want] {
			t.Fatalf("expected violation at %s, got %v", want, violations)
		}
	}
}

func TestDialogBodyAndURLMutuallyExclusive(t *testing.T) {
	d := textDialog()
	d.URL = "https://example.com/recording.wav"
	violations := d.validate("dialog[0]")
	var exclusivityErr *ExclusivityError
	if !violationsContain(violations, &exclusivityErr) {
		t.Fatalf("expected ExclusivityError, got %v", violations)
	}
	if !exclusivityErr.Both {
		t.Fatal("expected the both-set form of the violation")
	}
}

func TestDialogNeitherBodyNorURL(t *testing.T) {
	d := textDialog()
	d.Body = ""
	d.Encoding = ""
	violations := d.validate("dialog[0]")
	var exclusivityErr *ExclusivityError
	if !violationsContain(violations, &exclusivityErr) {
		t.Fatalf("expected ExclusivityError for contentless text dialog, got %v", violations)
	}
}

func TestTransferDialogMayOmitContent(t *testing.T) {
	index := 0
	d := Dialog{
		Type:           DialogTransfer,
		Start:          testStart,
		Parties:        IndexList{0},
		Transferee:     &index,
		Transferor:     &index,
		TransferTarget: &index,
		Original:       &index,
		TargetDialog:   &index,
	}
	if violations := d.validate("dialog[1]"); len(violations) != 0 {
		t.Fatalf("expected no violations for contentless transfer, got %v", violations)
	}
}

func TestTransferDialogRequiresLinkage(t *testing.T) {
	d := Dialog{Type: DialogTransfer, Start: testStart, Parties: IndexList{0}}
	violations := d.validate("dialog[0]")
	if len(violations) != 5 {
		t.Fatalf("expected 5 missing transfer fields, got %v", violations)
	}
}

func TestNonTransferDialogForbidsLinkage(t *testing.T) {
	index := 0
	d := textDialog()
	d.Transferee = &index
	violations := d.validate("dialog[0]")
	var fieldErr *FieldError
	if !violationsContain(violations, &fieldErr) {
		t.Fatalf("expected FieldError, got %v", violations)
	}
	if fieldErr.Path != "dialog[0].transferee" {
		t.Fatalf("unexpected violation path %q", fieldErr.Path)
	}
}

func TestIncompleteDialogRequiresDisposition(t *testing.T) {
	d := Dialog{Type: DialogIncomplete, Start: testStart, Parties: IndexList{0}}
	violations := d.validate("dialog[0]")
	var fieldErr *FieldError
	if !violationsContain(violations, &fieldErr) {
		t.Fatalf("expected FieldError, got %v", violations)
	}
	if fieldErr.Path != "dialog[0].disposition" {
		t.Fatalf("unexpected violation path %q", fieldErr.Path)
	}

	d.Disposition = DispositionNoAnswer
	if violations := d.validate("dialog[0]"); len(violations) != 0 {
		t.Fatalf("expected no violations for incomplete dialog with disposition, got %v", violations)
	}
}

func TestIncompleteDialogForbidsContent(t *testing.T) {
	d := Dialog{
		Type:        DialogIncomplete,
		Start:       testStart,
		Parties:     IndexList{0},
		Disposition: DispositionBusy,
		Body:        "should not be here",
	}
	if violations := d.validate("dialog[0]"); len(violations) == 0 {
		t.Fatal("expected violation for incomplete dialog carrying a body")
	}
}

func TestCompletedDialogForbidsDisposition(t *testing.T) {
	d := textDialog()
	d.Disposition = DispositionBusy
	if violations := d.validate("dialog[0]"); len(violations) == 0 {
		t.Fatal("expected violation for disposition on a text dialog")
	}
}

func TestDialogEncodingRequiresBody(t *testing.T) {
	d := textDialog()
	d.Body = ""
	d.Encoding = EncodingBase64URL
	d.URL = "https://example.com/audio.wav"
	violations := d.validate("dialog[0]")
	var fieldErr *FieldError
	if !violationsContain(violations, &fieldErr) {
		t.Fatalf("expected FieldError for encoding without body, got %v", violations)
	}
	if fieldErr.Path != "dialog[0].encoding" {
		t.Fatalf("unexpected violation path %q", fieldErr.Path)
	}
}

func TestDialogBodyRequiresEncoding(t *testing.T) {
	d := textDialog()
	d.Encoding = ""
	if violations := d.validate("dialog[0]"); len(violations) == 0 {
		t.Fatal("expected violation for body without encoding")
	}
}

func TestDialogBase64URLBodyChecked(t *testing.T) {
	d := textDialog()
	d.Encoding = EncodingBase64URL
	d.Body = "not base64url!!"
	if violations := d.validate("dialog[0]"); len(violations) == 0 {
		t.Fatal("expected violation for body that is not base64url")
	}

	d.Body = "aGVsbG8"
	if violations := d.validate("dialog[0]"); len(violations) != 0 {
		t.Fatalf("expected no violations for base64url body, got %v", violations)
	}
}

func TestDialogNegativeDuration(t *testing.T) {
	duration := -3.5
	d := textDialog()
	d.Duration = &duration
	if violations := d.validate("dialog[0]"); len(violations) == 0 {
		t.Fatal("expected violation for negative duration")
	}
}

func TestDialogRelativeURLRejected(t *testing.T) {
	d := textDialog()
	d.Body = ""
	d.Encoding = ""
	d.URL = "recordings/call.wav"
	if violations := d.validate("dialog[0]"); len(violations) == 0 {
		t.Fatal("expected violation for relative url")
	}
}

func TestDialogPartyHistoryChecked(t *testing.T) {
	d := textDialog()
	d.PartyHistory = []PartyHistory{{Party: 0, Event: PartyEvent("waved"), Time: testStart}}
	if violations := d.validate("dialog[0]"); len(violations) == 0 {
		t.Fatal("expected violation for unknown party event")
	}

	d.PartyHistory = []PartyHistory{{Party: 0, Event: PartyEventJoin, Time: testStart}}
	if violations := d.validate("dialog[0]"); len(violations) != 0 {
		t.Fatalf("expected no violations, got %v", violations)
	}
}

func violationsContain[T error](violations []error, target *T) bool {
	for _, violation := range violations {
		if errors.As(violation, target) {
			return true
		}
	}
	return false
}
