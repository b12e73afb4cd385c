package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davidahmann/vconkit/core/jcs"
	"github.com/davidahmann/vconkit/core/vcon"
)

type hashOutput struct {
	OK          bool   `json:"ok"`
	UUID        string `json:"uuid,omitempty"`
	Algorithm   string `json:"algorithm,omitempty"`
	ContentHash string `json:"content_hash,omitempty"`
	Digest      string `json:"digest,omitempty"`
	Error       string `json:"error,omitempty"`
}

func runHash(arguments []string) int {
	if hasExplainFlag(arguments) {
		return writeExplain("Compute the content hash of a vCon document over its canonical JSON form.")
	}
	flagSet := flag.NewFlagSet("hash", flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)

	var inPath string
	var algorithm string
	var configPath string
	var jsonOutput bool
	var helpFlag bool

	flagSet.StringVar(&inPath, "in", "", "path to the vCon document")
	flagSet.StringVar(&algorithm, "alg", "", "hash algorithm: sha256 or sha512 (default sha256)")
	flagSet.StringVar(&configPath, "config", "", "project config path (default "+`".vconkit/config.yaml"`+")")
	flagSet.BoolVar(&jsonOutput, "json", false, "emit JSON output")
	flagSet.BoolVar(&helpFlag, "help", false, "show help")

	if err := flagSet.Parse(arguments); err != nil {
		return writeHashOutput(jsonOutput, hashOutput{OK: false, Error: err.Error()}, exitInvalidInput)
	}
	if helpFlag {
		fmt.Println("Usage:")
		fmt.Println("  vconkit hash --in <path> [--alg sha256|sha512] [--json]")
		return exitOK
	}
	if len(flagSet.Args()) > 0 {
		return writeHashOutput(jsonOutput, hashOutput{OK: false, Error: "unexpected positional arguments"}, exitInvalidInput)
	}
	if strings.TrimSpace(inPath) == "" {
		return writeHashOutput(jsonOutput, hashOutput{OK: false, Error: "missing required --in <path>"}, exitInvalidInput)
	}

	defaults, err := loadProjectDefaults(configPath)
	if err != nil {
		return writeHashOutput(jsonOutput, hashOutput{OK: false, Error: err.Error()}, exitCodeForError(err, exitIOFailure))
	}
	if algorithm == "" {
		algorithm = defaults.Hash.Algorithm
	}
	if algorithm == "" {
		algorithm = jcs.AlgSHA256
	}
	algorithm = strings.ToLower(strings.TrimSpace(algorithm))

	// #nosec G304 -- document path is explicit local user input.
	content, err := os.ReadFile(inPath)
	if err != nil {
		return writeHashOutput(jsonOutput, hashOutput{OK: false, Error: err.Error()}, exitIOFailure)
	}
	container, err := vcon.DecodeCanonical(content)
	if err != nil {
		return writeHashOutput(jsonOutput, hashOutput{OK: false, Error: err.Error()}, exitCodeForError(err, exitMalformedDocument))
	}
	canonical, err := container.EncodeCanonical()
	if err != nil {
		return writeHashOutput(jsonOutput, hashOutput{OK: false, Error: err.Error()}, exitInternalFailure)
	}

	token, err := jcs.ContentHash(algorithm, canonical)
	if err != nil {
		return writeHashOutput(jsonOutput, hashOutput{OK: false, Error: err.Error()}, exitInvalidInput)
	}
	digest, err := jcs.DigestJCS(canonical)
	if err != nil {
		return writeHashOutput(jsonOutput, hashOutput{OK: false, Error: err.Error()}, exitInternalFailure)
	}

	return writeHashOutput(jsonOutput, hashOutput{
		OK:          true,
		UUID:        container.UUID,
		Algorithm:   algorithm,
		ContentHash: token,
		Digest:      digest,
	}, exitOK)
}

func writeHashOutput(jsonOutput bool, output hashOutput, exitCode int) int {
	if jsonOutput {
		return writeJSONOutput(output, exitCode)
	}
	if output.Error != "" {
		fmt.Printf("hash error: %s\n", output.Error)
		return exitCode
	}
	fmt.Println(output.ContentHash)
	return exitCode
}
