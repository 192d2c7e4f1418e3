// Package schemas provides JSON Schema validation for structured payloads
// accepted from outside the service: extracted résumé profiles and job
// posting documents from external feeds.
package schemas

import (
	"embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed resume_profile.schema.json job_posting.schema.json
var schemaFS embed.FS

// ValidationError represents a schema validation failure with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
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

// SchemaLoadError represents errors loading or parsing a schema itself
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

var (
	compileOnce  sync.Once
	compileErr   error
	resumeSchema *gojsonschema.Schema
	jobSchema    *gojsonschema.Schema
)

func compileSchemas() {
	resumeSchema, compileErr = compileSchema("resume_profile.schema.json")
	if compileErr != nil {
		return
	}
	jobSchema, compileErr = compileSchema("job_posting.schema.json")
}

func compileSchema(name string) (*gojsonschema.Schema, error) {
	content, err := schemaFS.ReadFile(name)
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "schema not embedded", Cause: err}
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(content))
	if err != nil {
		return nil, &SchemaLoadError{Name: name, Message: "schema failed to compile", Cause: err}
	}
	return schema, nil
}

// ValidateResumeProfile validates a résumé profile document against the
// embedded résumé profile schema.
func ValidateResumeProfile(document []byte) error {
	compileOnce.Do(compileSchemas)
	if compileErr != nil {
		return compileErr
	}
	return validate("resume_profile.schema.json", resumeSchema, document)
}

// ValidateJobPosting validates a job posting document against the embedded
// job posting schema.
func ValidateJobPosting(document []byte) error {
	compileOnce.Do(compileSchemas)
	if compileErr != nil {
		return compileErr
	}
	return validate("job_posting.schema.json", jobSchema, document)
}

func validate(name string, schema *gojsonschema.Schema, document []byte) error {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(document))
	if err != nil {
		return &SchemaLoadError{Name: name, Message: "document failed to load", Cause: err}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}
