// Package schemas provides JSON Schema validation for the university catalog
// and the oracle's analysis response. Schemas are embedded at compile time.
package schemas

import (
	"embed"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Embedded schema names.
const (
	UniversityCatalog = "university_catalog.schema.json"
	OracleAnalysis    = "oracle_analysis.schema.json"
)

// ValidationError represents a schema validation failure with field paths.
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError represents errors loading or parsing the schema itself.
type SchemaLoadError struct {
	Name    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Name, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Name, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateBytes validates a JSON document against a named embedded schema.
// Returns *ValidationError when the document fails the schema and
// *SchemaLoadError when the schema or document cannot be processed at all.
func ValidateBytes(schemaName string, document []byte) error {
	schemaData, err := schemaFiles.ReadFile(schemaName)
	if err != nil {
		return &SchemaLoadError{Name: schemaName, Message: "schema not embedded", Cause: err}
	}

	schemaLoader := gojsonschema.NewBytesLoader(schemaData)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{Name: schemaName, Message: "validation could not run", Cause: err}
	}

	if result.Valid() {
		return nil
	}

	ve := &ValidationError{}
	for _, desc := range result.Errors() {
		ve.Errors = append(ve.Errors, FieldError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return ve
}

// ValidateFile validates a JSON file on disk against a named embedded schema.
func ValidateFile(schemaName, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ValidateBytes(schemaName, data)
}
