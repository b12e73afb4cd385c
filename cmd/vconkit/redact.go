package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davidahmann/vconkit/core/fsx"
	"github.com/davidahmann/vconkit/core/vcon"
)

type redactOutput struct {
	OK           bool   `json:"ok"`
	UUID         string `json:"uuid,omitempty"`
	RedactedUUID string `json:"redacted_uuid,omitempty"`
	Path         string `json:"path,omitempty"`
	Error        string `json:"error,omitempty"`
}

func runRedact(arguments []string) int {
	if hasExplainFlag(arguments) {
		return writeExplain("Create the redacted successor of a vCon: a fresh container whose redacted field references the original uuid.")
	}
	flagSet := flag.NewFlagSet("redact", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var inPath string
	var outPath string
	var redactionType string
	var keepSubject bool
	var prettyOutput bool
	var jsonOutput bool
	var helpFlag bool

	flagSet.StringVar(&inPath, "in", "", "path to the original vCon document")
	flagSet.StringVar(&outPath, "out", "", "output file path for the successor (defaults to stdout)")
	flagSet.StringVar(&redactionType, "type", "", "redaction reason recorded on the successor, e.g. pii")
	flagSet.BoolVar(&keepSubject, "keep-subject", false, "carry the original subject onto the successor")
	flagSet.BoolVar(&prettyOutput, "pretty", false, "write indented instead of canonical JSON")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	flagSet.BoolVar(&helpFlag, "help", false, "show help")

	if err := flagSet.Parse(arguments); err != nil {
		return writeRedactOutput(jsonOutput, redactOutput{OK: false, Error: err.Error()}, exitInvalidInput)
	}
	if helpFlag {
		fmt.Println("Usage:")
		fmt.Println("  vconkit redact --in <path> [--type <reason>] [--keep-subject] [--out <path>] [--pretty] [--json]")
		return exitOK
	}
	if len(flagSet.Args()) > 0 {
		return writeRedactOutput(jsonOutput, redactOutput{OK: false, Error: "unexpected positional arguments"}, exitInvalidInput)
	}
	if strings.TrimSpace(inPath) == "" {
		return writeRedactOutput(jsonOutput, redactOutput{OK: false, Error: "missing required --in <path>"}, exitInvalidInput)
	}

	// #nosec G304 -- document path is explicit local user input.
	content, err := os.ReadFile(inPath)
	if err != nil {
		return writeRedactOutput(jsonOutput, redactOutput{OK: false, Error: err.Error()}, exitIOFailure)
	}
	original, err := vcon.DecodeCanonical(content)
	if err != nil {
		return writeRedactOutput(jsonOutput, redactOutput{OK: false, Error: err.Error()}, exitCodeForError(err, exitMalformedDocument))
	}

	successor := original.Redact(redactionType)
	if keepSubject {
		successor.Subject = original.Subject
	}
	if err := successor.Validate(); err != nil {
		return writeRedactOutput(jsonOutput, redactOutput{OK: false, Error: err.Error()}, exitCodeForError(err, exitValidationFailed))
	}
	encoded, err := encodeContainer(successor, prettyOutput)
	if err != nil {
		return writeRedactOutput(jsonOutput, redactOutput{OK: false, Error: err.Error()}, exitInternalFailure)
	}

	if outPath == "" {
		if jsonOutput {
			return writeRedactOutput(true, redactOutput{OK: true, UUID: successor.UUID, RedactedUUID: original.UUID}, exitOK)
		}
		fmt.Println(string(encoded))
		return exitOK
	}
	if err := fsx.WriteDocument(outPath, append(encoded, '\n'), 0o600); err != nil {
		return writeRedactOutput(jsonOutput, redactOutput{OK: false, Error: err.Error()}, exitIOFailure)
	}
	return writeRedactOutput(jsonOutput, redactOutput{OK: true, UUID: successor.UUID, RedactedUUID: original.UUID, Path: outPath}, exitOK)
}

func writeRedactOutput(jsonOutput bool, output redactOutput, exitCode int) int {
	if jsonOutput {
		return writeJSONOutput(output, exitCode)
	}
	if output.Error != "" {
		fmt.Printf("redact error: %s\n", output.Error)
		return exitCode
	}
	if output.Path != "" {
		fmt.Printf("redacted %s -> %s (%s)\n", output.RedactedUUID, output.UUID, output.Path)
	}
	return exitCode
}
