package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davidahmann/vconkit/core/schema"
	"github.com/davidahmann/vconkit/core/vcon"
)

type validateOutput struct {
	OK         bool     `json:"ok"`
	Path       string   `json:"path,omitempty"`
	UUID       string   `json:"uuid,omitempty"`
	Version    string   `json:"version,omitempty"`
	Violations []string `json:"violations,omitempty"`
	Error      string   `json:"error,omitempty"`
}

func runValidate(arguments []string) int {
	if hasExplainFlag(arguments) {
		return writeExplain("Validate a vCon document: parse it, re-check every container invariant, and list all violations found.")
	}
	flagSet := flag.NewFlagSet("validate", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var inPath string
	var configPath string
	var strictVersion bool
	var schemaCheck bool
	var jsonOutput bool
	var helpFlag bool

	flagSet.StringVar(&inPath, "in", "", "path to the vCon document")
	flagSet.StringVar(&configPath, "config", "", "project config path (default "+`".vconkit/config.yaml"`+")")
	flagSet.BoolVar(&strictVersion, "strict", false, "reject format versions this build does not know")
	flagSet.BoolVar(&schemaCheck, "schema", false, "run the JSON Schema pre-check before model validation")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	flagSet.BoolVar(&helpFlag, "help", false, "show help")

	if err := flagSet.Parse(arguments); err != nil {
		return writeValidateOutput(jsonOutput, validateOutput{OK: false, Error: err.Error()}, exitInvalidInput)
	}
	if helpFlag {
		fmt.Println("Usage:")
		fmt.Println("  vconkit validate --in <path> [--strict] [--schema] [--json]")
		return exitOK
	}
	if len(flagSet.Args()) > 0 {
		return writeValidateOutput(jsonOutput, validateOutput{OK: false, Error: "unexpected positional arguments"}, exitInvalidInput)
	}
	if strings.TrimSpace(inPath) == "" {
		return writeValidateOutput(jsonOutput, validateOutput{OK: false, Error: "missing required --in <path>"}, exitInvalidInput)
	}

	defaults, err := loadProjectDefaults(configPath)
	if err != nil {
		return writeValidateOutput(jsonOutput, validateOutput{OK: false, Error: err.Error()}, exitCodeForError(err, exitIOFailure))
	}
	if defaults.Validate.Strict {
		strictVersion = true
	}
	if defaults.Validate.SchemaCheck {
		schemaCheck = true
	}

	// #nosec G304 -- document path is explicit local user input.
	content, err := os.ReadFile(inPath)
	if err != nil {
		return writeValidateOutput(jsonOutput, validateOutput{OK: false, Path: inPath, Error: err.Error()}, exitIOFailure)
	}

	if schemaCheck {
		if err := schema.ValidateDocument(content); err != nil {
			return writeValidateOutput(jsonOutput, validateOutput{
				OK:    false,
				Path:  inPath,
				Error: err.Error(),
			}, exitMalformedDocument)
		}
	}

	var opts []vcon.ValidateOption
	if strictVersion {
		opts = append(opts, vcon.WithRequireKnownVersion())
	}
	container, err := vcon.DecodeCanonical(content, opts...)
	if err != nil {
		return writeValidateOutput(jsonOutput, validateOutput{
			OK:         false,
			Path:       inPath,
			Violations: violationMessages(err),
			Error:      err.Error(),
		}, exitCodeForError(err, exitMalformedDocument))
	}

	return writeValidateOutput(jsonOutput, validateOutput{
		OK:      true,
		Path:    inPath,
		UUID:    container.UUID,
		Version: string(container.Vcon),
	}, exitOK)
}

func writeValidateOutput(jsonOutput bool, output validateOutput, exitCode int) int {
	if jsonOutput {
		return writeJSONOutput(output, exitCode)
	}
	if output.Error != "" {
		fmt.Printf("validate error: %s\n", output.Error)
		for _, violation := range output.Violations {
			fmt.Printf("- %s\n", violation)
		}
		return exitCode
	}
	fmt.Printf("valid %s (vcon %s)\n", output.UUID, output.Version)
	return exitCode
}
