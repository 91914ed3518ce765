package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_EmbeddedSchema(t *testing.T) {
	first, err := Load(ResumePayloadSchema)
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := Load(ResumePayloadSchema)
	require.NoError(t, err)
	assert.Same(t, first, second, "compiled schema should be cached")
}

func TestLoad_UnknownSchema(t *testing.T) {
	_, err := Load("does_not_exist")
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Contains(t, loadErr.Path, "does_not_exist")
}

func TestValidateResumePayload_Valid(t *testing.T) {
	raw := []byte(`{
		"employer": "Acme",
		"header": {"fullName": "Ada", "email": "ada@example.com"},
		"profile": "Engineer **Hire me**",
		"skills": [["Go:", "net/http"], ["Ops:", null]],
		"experience": [{"company": "Acme", "role": "Dev", "period": "2020", "description": "- one"}],
		"education": [{"school": "Uni", "degree": "BSc", "period": "2016", "description": ""}]
	}`)
	assert.NoError(t, ValidateResumePayload(raw))
}

func TestValidateResumePayload_EmptyObject(t *testing.T) {
	assert.NoError(t, ValidateResumePayload([]byte(`{}`)))
}

func TestValidateResumePayload_WrongShapes(t *testing.T) {
	raw := []byte(`{
		"employer": 42,
		"skills": "Go, Rust",
		"experience": [{"company": 7}, "not an object"]
	}`)

	err := ValidateResumePayload(raw)
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))

	fields := make([]string, 0, len(validationErr.Errors))
	for _, fe := range validationErr.Errors {
		fields = append(fields, fe.Field)
	}
	assert.Contains(t, fields, "employer")
	assert.Contains(t, fields, "skills")
	assert.Contains(t, fields, "experience.0.company")
	assert.Contains(t, fields, "experience.1")
}

func TestValidateJSONString_Valid(t *testing.T) {
	schema := `{"type": "object", "properties": {"name": {"type": "string"}}, "required": ["name"]}`
	assert.NoError(t, ValidateJSONString(schema, `{"name": "x"}`))
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schema := `{"type": "object", "properties": {"name": {"type": "string"}}, "required": ["name"]}`

	err := ValidateJSONString(schema, `{}`)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Equal(t, "(root)", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "skills", Message: "Invalid type. Expected: array, given: string"},
			{Field: "employer", Message: "Invalid type. Expected: string, given: integer"},
		},
	}

	msg := err.Error()
	assert.Contains(t, msg, "validation failed")
	assert.Contains(t, msg, "1. skills")
	assert.Contains(t, msg, "2. employer")
}

func TestFieldError_String(t *testing.T) {
	assert.Equal(t, "header.email: bad", FieldError{Field: "header.email", Message: "bad"}.String())
}
