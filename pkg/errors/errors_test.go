package errors

import (
	"fmt"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromErrorPassthrough(t *testing.T) {
	conflict := Clone(ErrConflict, "nis already used")
	wrapped := fmt.Errorf("outer: %w", conflict)
	got := FromError(wrapped)
	assert.Equal(t, ErrConflict.Code, got.Code)
	assert.Equal(t, "nis already used", got.Message)
}

func TestFromErrorUnknownBecomesInternal(t *testing.T) {
	got := FromError(fmt.Errorf("boom"))
	assert.Equal(t, ErrInternal.Code, got.Code)
}

func TestFromValidationNamesFields(t *testing.T) {
	type payload struct {
		NIS   string `validate:"required"`
		Kelas string `validate:"oneof=X XI XII"`
	}
	err := validator.New().Struct(payload{Kelas: "XIII"})
	require.Error(t, err)

	got := FromValidation(err)
	assert.Equal(t, ErrValidation.Code, got.Code)
	require.Len(t, got.Fields, 2)
	assert.Contains(t, got.Fields[0], "NIS")
	assert.Contains(t, got.Fields[1], "Kelas")
}

func TestCloneDoesNotMutateOriginal(t *testing.T) {
	clone := Clone(ErrNotFound, "student not found")
	assert.Equal(t, "student not found", clone.Message)
	assert.Equal(t, "resource not found", ErrNotFound.Message)
}
