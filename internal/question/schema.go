package question

import (
	"bytes"
	_ "embed"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

//go:embed bank.schema.json
var bankSchemaJSON []byte

const bankSchemaURL = "schema://ioequiz/bank.schema.json"

var (
	compileOnce    sync.Once
	compiledSchema *jsonschema.Schema
	compileErr     error
)

// bankSchema returns the compiled bank schema, compiling it on first use.
func bankSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(bankSchemaJSON))
		if err != nil {
			compileErr = fmt.Errorf("parse bank schema: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		if err := c.AddResource(bankSchemaURL, doc); err != nil {
			compileErr = fmt.Errorf("add resource: %w", err)
			return
		}

		compiledSchema, compileErr = c.Compile(bankSchemaURL)
		if compileErr != nil {
			compileErr = fmt.Errorf("compile bank schema: %w", compileErr)
		}
	})
	return compiledSchema, compileErr
}

// validateSchema checks raw bank JSON against the bank schema.
func validateSchema(data []byte) error {
	schema, err := bankSchema()
	if err != nil {
		return err
	}

	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}

	if err := schema.Validate(doc); err != nil {
		return fmt.Errorf("schema validation failed: %w", err)
	}
	return nil
}
