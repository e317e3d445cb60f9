package question

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed question.schema.json
var recordSchemaJSON string

const recordSchemaURL = "vireon://question.schema.json"

var (
	recordSchemaOnce sync.Once
	recordSchema     *jsonschema.Schema
	recordSchemaErr  error
)

// compiledRecordSchema compiles the embedded question record schema once.
func compiledRecordSchema() (*jsonschema.Schema, error) {
	recordSchemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(recordSchemaURL, strings.NewReader(recordSchemaJSON)); err != nil {
			recordSchemaErr = fmt.Errorf("add question schema: %w", err)
			return
		}
		recordSchema, recordSchemaErr = compiler.Compile(recordSchemaURL)
		if recordSchemaErr != nil {
			recordSchemaErr = fmt.Errorf("compile question schema: %w", recordSchemaErr)
		}
	})
	return recordSchema, recordSchemaErr
}

// validateRecord checks a decoded JSON value against the record schema.
func validateRecord(value interface{}) error {
	schema, err := compiledRecordSchema()
	if err != nil {
		return err
	}
	return schema.Validate(value)
}
