package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davidahmann/vconkit/core/projection"
	"github.com/davidahmann/vconkit/core/vcon"
)

type inspectOutput struct {
	OK       bool                 `json:"ok"`
	Path     string               `json:"path,omitempty"`
	Snapshot *projection.Snapshot `json:"snapshot,omitempty"`
	Error    string               `json:"error,omitempty"`
}

func runInspect(arguments []string) int {
	if hasExplainFlag(arguments) {
		return writeExplain("Summarize a vCon document: identity, subject, lineage, and per-collection rows.")
	}
	flagSet := flag.NewFlagSet("inspect", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var inPath string
	var jsonOutput bool
	var helpFlag bool

	flagSet.StringVar(&inPath, "in", "", "path to the vCon document")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	flagSet.BoolVar(&helpFlag, "help", false, "show help")

	if err := flagSet.Parse(arguments); err != nil {
		return writeInspectOutput(jsonOutput, inspectOutput{OK: false, Error: err.Error()}, exitInvalidInput)
	}
	if helpFlag {
		fmt.Println("Usage:")
		fmt.Println("  vconkit inspect --in <path> [--json]")
		return exitOK
	}
	if len(flagSet.Args()) > 0 {
		return writeInspectOutput(jsonOutput, inspectOutput{OK: false, Error: "unexpected positional arguments"}, exitInvalidInput)
	}
	if strings.TrimSpace(inPath) == "" {
		return writeInspectOutput(jsonOutput, inspectOutput{OK: false, Error: "missing required --in <path>"}, exitInvalidInput)
	}

	// #nosec G304 -- document path is explicit local user input.
	content, err := os.ReadFile(inPath)
	if err != nil {
		return writeInspectOutput(jsonOutput, inspectOutput{OK: false, Path: inPath, Error: err.Error()}, exitIOFailure)
	}
	container, err := vcon.DecodeCanonical(content)
	if err != nil {
		return writeInspectOutput(jsonOutput, inspectOutput{OK: false, Path: inPath, Error: err.Error()}, exitCodeForError(err, exitMalformedDocument))
	}
	snapshot, err := projection.Flatten(container)
	if err != nil {
		return writeInspectOutput(jsonOutput, inspectOutput{OK: false, Path: inPath, Error: err.Error()}, exitInternalFailure)
	}

	return writeInspectOutput(jsonOutput, inspectOutput{OK: true, Path: inPath, Snapshot: &snapshot}, exitOK)
}

func writeInspectOutput(jsonOutput bool, output inspectOutput, exitCode int) int {
	if jsonOutput {
		return writeJSONOutput(output, exitCode)
	}
	if output.Error != "" {
		fmt.Printf("inspect error: %s\n", output.Error)
		return exitCode
	}
	if output.Snapshot == nil {
		fmt.Println("inspect error: missing snapshot")
		return exitInternalFailure
	}

	row := output.Snapshot.VCon
	fmt.Printf("uuid: %s\n", row.UUID)
	fmt.Printf("vcon: %s\n", row.Version)
	fmt.Printf("created_at: %s\n", row.CreatedAt.Format("2006-01-02T15:04:05Z07:00"))
	if row.Subject != "" {
		fmt.Printf("subject: %s\n", row.Subject)
	}
	if row.RedactedUUID != "" {
		fmt.Printf("redacted: %s\n", row.RedactedUUID)
	}
	if row.AppendedUUID != "" {
		fmt.Printf("appended: %s\n", row.AppendedUUID)
	}
	if row.GroupSize > 0 {
		fmt.Printf("group: %d\n", row.GroupSize)
	}
	fmt.Printf("parties: %d, dialog: %d, analysis: %d, attachments: %d\n",
		len(output.Snapshot.Parties), len(output.Snapshot.Dialogs),
		len(output.Snapshot.Analyses), len(output.Snapshot.Attachments))
	for _, party := range output.Snapshot.Parties {
		fmt.Printf("- party[%d] name=%q tel=%q mailto=%q role=%q\n", party.Index, party.Name, party.Tel, party.Mailto, party.Role)
	}
	for _, dialog := range output.Snapshot.Dialogs {
		fmt.Printf("- dialog[%d] type=%s start=%s parties=%v\n", dialog.Index, dialog.Type, dialog.Start.Format("2006-01-02T15:04:05Z07:00"), dialog.Parties)
	}
	return exitCode
}
