// Package schema provides a structural JSON Schema check over raw vCon
// documents. It catches gross malformation (wrong types, bad enum
// literals, missing required keys) before the typed model decodes the
// document; cross-reference and lineage invariants stay in core/vcon.
package schema

import (
	_ "embed"
	"fmt"
	"sync"

	"github.com/kaptinlin/jsonschema"
)

//go:embed vcon.schema.json
var vconSchemaJSON []byte

var (
	compileOnce sync.Once
	compiled    *jsonschema.Schema
	compileErr  error
)

func documentSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.AssertFormat = true
		compiled, compileErr = compiler.Compile(vconSchemaJSON)
	})
	if compileErr != nil {
		return nil, fmt.Errorf("compile vcon schema: %w", compileErr)
	}
	return compiled, nil
}

// ValidateDocument checks raw document bytes against the embedded vCon
// schema.
func ValidateDocument(data []byte) error {
	documentSchemaCompiled, err := documentSchema()
	if err != nil {
		return err
	}
	result := documentSchemaCompiled.ValidateJSON(data)
	if result.IsValid() {
		return nil
	}
	return fmt.Errorf("schema validation failed: %v", result.Errors)
}
