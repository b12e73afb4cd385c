package main

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func TestRunDispatch(t *testing.T) {
	if code := run([]string{"vconkit"}); code != exitOK {
		t.Fatalf("run without args: expected %d got %d", exitOK, code)
	}
	if code := run([]string{"vconkit", "version"}); code != exitOK {
		t.Fatalf("run version: expected %d got %d", exitOK, code)
	}
	if code := run([]string{"vconkit", "unknown"}); code != exitInvalidInput {
		t.Fatalf("run unknown: expected %d got %d", exitInvalidInput, code)
	}
	if code := run([]string{"vconkit", "--explain"}); code != exitOK {
		t.Fatalf("run explain: expected %d got %d", exitOK, code)
	}
	for _, command := range []string{"new", "validate", "inspect", "redact", "hash"} {
		if code := run([]string{"vconkit", command, "--help"}); code != exitOK {
			t.Fatalf("run %s help: expected %d got %d", command, exitOK, code)
		}
		if code := run([]string{"vconkit", command, "--explain"}); code != exitOK {
			t.Fatalf("run %s explain: expected %d got %d", command, exitOK, code)
		}
	}
	for _, command := range []string{"validate", "inspect", "redact", "hash"} {
		if code := run([]string{"vconkit", command}); code != exitInvalidInput {
			t.Fatalf("run %s without --in: expected %d got %d", command, exitInvalidInput, code)
		}
	}
}

func TestMainEntrypoint(t *testing.T) {
	if os.Getenv("VCONKIT_TEST_MAIN") == "1" {
		os.Args = []string{"vconkit", "version"}
		main()
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestMainEntrypoint")
	cmd.Env = append(os.Environ(), "VCONKIT_TEST_MAIN=1")
	if err := cmd.Run(); err != nil {
		t.Fatalf("run child process: %v", err)
	}
}

func TestNewValidateRedactHashFlow(t *testing.T) {
	workDir := t.TempDir()
	documentPath := filepath.Join(workDir, "conversation.vcon.json")

	code := run([]string{"vconkit", "new",
		"--subject", "support call",
		"--party", "tel=+1234567890,name=John Doe",
		"--party", "mailto=agent@example.com,name=Jane Roe,role=agent",
		"--out", documentPath,
	})
	if code != exitOK {
		t.Fatalf("new: expected %d got %d", exitOK, code)
	}
	if _, err := os.Stat(documentPath); err != nil {
		t.Fatalf("stat written document: %v", err)
	}

	if code := run([]string{"vconkit", "validate", "--in", documentPath, "--strict", "--schema"}); code != exitOK {
		t.Fatalf("validate: expected %d got %d", exitOK, code)
	}
	if code := run([]string{"vconkit", "inspect", "--in", documentPath}); code != exitOK {
		t.Fatalf("inspect: expected %d got %d", exitOK, code)
	}
	if code := run([]string{"vconkit", "hash", "--in", documentPath, "--alg", "sha512"}); code != exitOK {
		t.Fatalf("hash: expected %d got %d", exitOK, code)
	}
	if code := run([]string{"vconkit", "hash", "--in", documentPath, "--alg", "md5"}); code != exitInvalidInput {
		t.Fatalf("hash md5: expected %d got %d", exitInvalidInput, code)
	}

	redactedPath := filepath.Join(workDir, "redacted.vcon.json")
	if code := run([]string{"vconkit", "redact", "--in", documentPath, "--type", "pii", "--keep-subject", "--out", redactedPath, "--json"}); code != exitOK {
		t.Fatalf("redact: expected %d got %d", exitOK, code)
	}
	if code := run([]string{"vconkit", "validate", "--in", redactedPath}); code != exitOK {
		t.Fatalf("validate redacted: expected %d got %d", exitOK, code)
	}
}

func TestValidateExitCodes(t *testing.T) {
	workDir := t.TempDir()

	missingPath := filepath.Join(workDir, "does-not-exist.vcon.json")
	if code := run([]string{"vconkit", "validate", "--in", missingPath}); code != exitIOFailure {
		t.Fatalf("validate missing file: expected %d got %d", exitIOFailure, code)
	}

	brokenPath := filepath.Join(workDir, "broken.vcon.json")
	if err := os.WriteFile(brokenPath, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write broken document: %v", err)
	}
	if code := run([]string{"vconkit", "validate", "--in", brokenPath}); code != exitMalformedDocument {
		t.Fatalf("validate broken json: expected %d got %d", exitMalformedDocument, code)
	}

	invalidPath := filepath.Join(workDir, "invalid.vcon.json")
	document := []byte(`{
		"vcon": "0.0.2",
		"uuid": "0195e7a8-0000-7000-8000-000000000001",
		"created_at": "2024-01-01T00:00:00Z",
		"dialog": [{"type": "text", "start": "2024-01-01T00:00:00Z", "parties": [4], "body": "hi", "encoding": "none"}]
	}`)
	if err := os.WriteFile(invalidPath, document, 0o600); err != nil {
		t.Fatalf("write invalid document: %v", err)
	}
	if code := run([]string{"vconkit", "validate", "--in", invalidPath}); code != exitValidationFailed {
		t.Fatalf("validate invalid document: expected %d got %d", exitValidationFailed, code)
	}
	if code := run([]string{"vconkit", "inspect", "--in", invalidPath}); code != exitValidationFailed {
		t.Fatalf("inspect invalid document: expected %d got %d", exitValidationFailed, code)
	}
}

func TestParsePartyFlag(t *testing.T) {
	party, err := parsePartyFlag("tel=+1234567890, name=John Doe, role=caller")
	if err != nil {
		t.Fatalf("parse party: %v", err)
	}
	if party.Tel != "+1234567890" || party.Name != "John Doe" || party.Role != "caller" {
		t.Fatalf("unexpected party %+v", party)
	}

	if _, err := parsePartyFlag("tel"); err == nil {
		t.Fatal("expected error for bare field without value")
	}
	if _, err := parsePartyFlag("shoe_size=12"); err == nil {
		t.Fatal("expected error for unsupported field")
	}
}
