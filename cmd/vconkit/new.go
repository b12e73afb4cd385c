package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/davidahmann/vconkit/core/fsx"
	"github.com/davidahmann/vconkit/core/vcon"
)

type newOutput struct {
	OK       bool            `json:"ok"`
	UUID     string          `json:"uuid,omitempty"`
	Path     string          `json:"path,omitempty"`
	Document json.RawMessage `json:"document,omitempty"`
	Error    string          `json:"error,omitempty"`
}

func runNew(arguments []string) int {
	if hasExplainFlag(arguments) {
		return writeExplain("Create a new vCon container with optional subject and parties and write its canonical JSON document.")
	}
	flagSet := flag.NewFlagSet("new", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var subject string
	var parties stringListFlag
	var outPath string
	var configPath string
	var prettyOutput bool
	var jsonOutput bool
	var helpFlag bool

	flagSet.StringVar(&subject, "subject", "", "conversation subject")
	flagSet.Var(&parties, "party", "party fields as key=value pairs separated by commas (tel, mailto, name, role); repeatable")
	flagSet.StringVar(&outPath, "out", "", "output file path (defaults to stdout, or the configured output dir)")
	flagSet.StringVar(&configPath, "config", "", "project config path (default "+`".vconkit/config.yaml"`+")")
	flagSet.BoolVar(&prettyOutput, "pretty", false, "write indented instead of canonical JSON")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	flagSet.BoolVar(&helpFlag, "help", false, "show help")

	if err := flagSet.Parse(arguments); err != nil {
		return writeNewOutput(jsonOutput, newOutput{OK: false, Error: err.Error()}, exitInvalidInput)
	}
	if helpFlag {
		fmt.Println("Usage:")
		fmt.Println("  vconkit new [--subject <text>] [--party tel=...,name=...]... [--out <path>] [--pretty] [--json]")
		return exitOK
	}
	if len(flagSet.Args()) > 0 {
		return writeNewOutput(jsonOutput, newOutput{OK: false, Error: "unexpected positional arguments"}, exitInvalidInput)
	}

	defaults, err := loadProjectDefaults(configPath)
	if err != nil {
		return writeNewOutput(jsonOutput, newOutput{OK: false, Error: err.Error()}, exitCodeForError(err, exitIOFailure))
	}
	if defaults.Output.Pretty {
		prettyOutput = true
	}

	container := vcon.BuildNew()
	container.Subject = subject
	for _, spec := range parties {
		party, err := parsePartyFlag(spec)
		if err != nil {
			return writeNewOutput(jsonOutput, newOutput{OK: false, Error: err.Error()}, exitInvalidInput)
		}
		if _, err := container.AddParty(party); err != nil {
			return writeNewOutput(jsonOutput, newOutput{OK: false, Error: err.Error()}, exitCodeForError(err, exitValidationFailed))
		}
	}

	encoded, err := encodeContainer(container, prettyOutput)
	if err != nil {
		return writeNewOutput(jsonOutput, newOutput{OK: false, Error: err.Error()}, exitInternalFailure)
	}

	if outPath == "" && defaults.Output.Dir != "" {
		outPath = filepath.Join(defaults.Output.Dir, container.UUID+".vcon.json")
	}
	if outPath == "" {
		if jsonOutput {
			return writeNewOutput(true, newOutput{OK: true, UUID: container.UUID, Document: encoded}, exitOK)
		}
		fmt.Println(string(encoded))
		return exitOK
	}
	if err := fsx.WriteDocument(outPath, append(encoded, '\n'), 0o600); err != nil {
		return writeNewOutput(jsonOutput, newOutput{OK: false, Error: err.Error()}, exitIOFailure)
	}
	return writeNewOutput(jsonOutput, newOutput{OK: true, UUID: container.UUID, Path: outPath}, exitOK)
}

// parsePartyFlag turns "tel=+1234567890,name=John Doe" into a Party.
func parsePartyFlag(spec string) (vcon.Party, error) {
	var party vcon.Party
	for _, pair := range strings.Split(spec, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return vcon.Party{}, fmt.Errorf("party field %q must be key=value", pair)
		}
		value = strings.TrimSpace(value)
		switch strings.TrimSpace(key) {
		case "tel":
			party.Tel = value
		case "stir":
			party.Stir = value
		case "mailto":
			party.Mailto = value
		case "name":
			party.Name = value
		case "validation":
			party.Validation = value
		case "gmlpos":
			party.GMLPos = value
		case "uuid":
			party.UUID = value
		case "role":
			party.Role = value
		case "contact_list":
			party.ContactList = value
		default:
			return vcon.Party{}, fmt.Errorf("unsupported party field %q", key)
		}
	}
	return party, nil
}

func encodeContainer(container *vcon.VCon, pretty bool) ([]byte, error) {
	if pretty {
		return container.EncodeIndent()
	}
	return container.EncodeCanonical()
}

func writeNewOutput(jsonOutput bool, output newOutput, exitCode int) int {
	if jsonOutput {
		return writeJSONOutput(output, exitCode)
	}
	if output.Error != "" {
		fmt.Printf("new error: %s\n", output.Error)
		return exitCode
	}
	if output.Path != "" {
		fmt.Printf("created %s (%s)\n", output.UUID, output.Path)
	}
	return exitCode
}
