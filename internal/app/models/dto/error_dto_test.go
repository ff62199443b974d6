package dto

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name  string `validate:"required"`
	Email string `validate:"omitempty,email"`
	Start int    `validate:"min=0,max=1439"`
}

func TestHandleValidationError_ListsFields(t *testing.T) {
	err := validator.New().Struct(sample{Email: "nope", Start: 2000})
	require.Error(t, err)

	detail := HandleValidationError(err)
	assert.Equal(t, ErrorCodeValidationFailed, detail.Code)

	fields, ok := detail.Details.([]ErrorDetail)
	require.True(t, ok)
	require.Len(t, fields, 3)
	assert.Equal(t, "name", fields[0].Field)
	assert.Equal(t, "is required", fields[0].Message)
	assert.Equal(t, "email", fields[1].Field)
	assert.Equal(t, "start", fields[2].Field)
	assert.Equal(t, "must be at most 1439", fields[2].Message)
}

func TestHandleValidationError_PlainError(t *testing.T) {
	detail := HandleValidationError(errors.New("unexpected EOF"))
	assert.Equal(t, "unexpected EOF", detail.Details)
}
