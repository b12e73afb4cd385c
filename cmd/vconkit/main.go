package main

import (
	"fmt"
	"os"
)

// version is stamped at release time via ldflags; default stays dev for local builds.
var version = "0.0.0-dev"

const (
	exitOK                = 0
	exitInternalFailure   = 1
	exitInvalidInput      = 2
	exitValidationFailed  = 3
	exitMalformedDocument = 4
	exitIOFailure         = 5
)

func main() {
	os.Exit(run(os.Args))
}

func run(arguments []string) int {
	if len(arguments) < 2 {
		fmt.Println("vconkit", version)
		return exitOK
	}
	if arguments[1] == "--explain" {
		return writeExplain("Vconkit builds, validates, inspects, and redacts vCon conversation containers with deterministic canonical JSON output.")
	}

	switch arguments[1] {
	case "new":
		return runNew(arguments[2:])
	case "validate":
		return runValidate(arguments[2:])
	case "inspect":
		return runInspect(arguments[2:])
	case "redact":
		return runRedact(arguments[2:])
	case "hash":
		return runHash(arguments[2:])
	case "version", "--version", "-v":
		if hasExplainFlag(arguments[2:]) {
			return writeExplain("Print the CLI version.")
		}
		fmt.Println("vconkit", version)
		return exitOK
	default:
		printUsage()
		return exitInvalidInput
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  vconkit new [--subject <text>] [--party <fields>]... [--out <path>] [--pretty] [--json]")
	fmt.Println("  vconkit validate --in <path> [--strict] [--schema] [--json]")
	fmt.Println("  vconkit inspect --in <path> [--json]")
	fmt.Println("  vconkit redact --in <path> [--type <reason>] [--keep-subject] [--out <path>] [--json]")
	fmt.Println("  vconkit hash --in <path> [--alg sha256|sha512] [--json]")
	fmt.Println("  vconkit version")
}
