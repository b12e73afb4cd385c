package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	coreerrors "github.com/davidahmann/vconkit/core/errors"
	"github.com/davidahmann/vconkit/core/vcon"
)

func writeJSONOutput(output any, exitCode int) int {
	encoded, err := marshalOutputWithErrorEnvelope(output, exitCode)
	if err != nil {
		fmt.Println(`{"ok":false,"error":"failed to encode output","error_code":"encode_failed","error_category":"internal_failure","retryable":false}`)
		return exitInternalFailure
	}
	fmt.Println(string(encoded))
	return exitCode
}

func marshalOutputWithErrorEnvelope(output any, exitCode int) ([]byte, error) {
	encoded, err := json.Marshal(output)
	if err != nil {
		return nil, err
	}
	result := map[string]any{}
	if err := json.Unmarshal(encoded, &result); err != nil {
		return nil, err
	}
	errorText := strings.TrimSpace(asString(result["error"]))
	if errorText == "" {
		return json.Marshal(result)
	}
	if strings.TrimSpace(asString(result["error_code"])) == "" {
		result["error_code"] = defaultErrorCode(exitCode)
	}
	if strings.TrimSpace(asString(result["error_category"])) == "" {
		result["error_category"] = string(defaultErrorCategory(exitCode))
	}
	if _, exists := result["retryable"]; !exists {
		result["retryable"] = false
	}
	if strings.TrimSpace(asString(result["hint"])) == "" {
		result["hint"] = defaultHint(exitCode)
	}
	return json.Marshal(result)
}

// exitCodeForError maps the model's error taxonomy onto stable exit codes.
// Malformed-document wins over the violation categories it wraps.
func exitCodeForError(err error, fallbackExit int) int {
	if err == nil {
		return exitOK
	}

	var malformedErr *vcon.MalformedDocumentError
	if stderrors.As(err, &malformedErr) {
		var validationErr *vcon.ValidationError
		if stderrors.As(err, &validationErr) {
			return exitValidationFailed
		}
		return exitMalformedDocument
	}
	var validationErr *vcon.ValidationError
	if stderrors.As(err, &validationErr) {
		return exitValidationFailed
	}
	var refErr *vcon.ReferenceError
	var exclusivityErr *vcon.ExclusivityError
	var lineageErr *vcon.LineageError
	var fieldErr *vcon.FieldError
	if stderrors.As(err, &refErr) || stderrors.As(err, &exclusivityErr) || stderrors.As(err, &lineageErr) || stderrors.As(err, &fieldErr) {
		return exitValidationFailed
	}

	switch coreerrors.CategoryOf(err) {
	case coreerrors.CategoryInvalidInput:
		return exitInvalidInput
	case coreerrors.CategoryReference, coreerrors.CategoryExclusivity, coreerrors.CategoryLineage:
		return exitValidationFailed
	case coreerrors.CategoryMalformed:
		return exitMalformedDocument
	case coreerrors.CategoryIOFailure:
		return exitIOFailure
	case coreerrors.CategoryInternalFailure:
		return exitInternalFailure
	}
	return fallbackExit
}

func defaultErrorCategory(exitCode int) coreerrors.Category {
	switch exitCode {
	case exitInvalidInput:
		return coreerrors.CategoryInvalidInput
	case exitValidationFailed:
		return coreerrors.CategoryInvalidInput
	case exitMalformedDocument:
		return coreerrors.CategoryMalformed
	case exitIOFailure:
		return coreerrors.CategoryIOFailure
	default:
		return coreerrors.CategoryInternalFailure
	}
}

func defaultErrorCode(exitCode int) string {
	switch exitCode {
	case exitInvalidInput:
		return "invalid_input"
	case exitValidationFailed:
		return "validation_failed"
	case exitMalformedDocument:
		return "malformed_document"
	case exitIOFailure:
		return "io_failure"
	default:
		return "internal_failure"
	}
}

func defaultHint(exitCode int) string {
	switch exitCode {
	case exitInvalidInput:
		return "check command usage and flag values"
	case exitValidationFailed:
		return "inspect the listed violations and fix the document"
	case exitMalformedDocument:
		return "the input is not a parseable vCon document"
	case exitIOFailure:
		return "check file paths and permissions and retry"
	default:
		return "retry after checking local environment and logs"
	}
}

func asString(value any) string {
	text, _ := value.(string)
	return text
}

// violationMessages flattens the accumulate-all validation result into the
// per-violation strings the CLI reports, one line each.
func violationMessages(err error) []string {
	var validationErr *vcon.ValidationError
	if !stderrors.As(err, &validationErr) {
		return nil
	}
	messages := make([]string, 0, len(validationErr.Violations))
	for _, violation := range validationErr.Violations {
		messages = append(messages, violation.Error())
	}
	return messages
}
