package apperrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCustomErrorUnwrapsToSentinel(t *testing.T) {
	err := NewValidationError("description too long")

	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, "description too long", err.Error())
}

func TestCustomErrorSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("submitting candidature: %w", NewConflictError("already reviewed"))

	assert.True(t, errors.Is(err, ErrConflict))
	assert.False(t, errors.Is(err, ErrValidationFailed))
}

func TestCustomErrorMessageFallsBackToSentinel(t *testing.T) {
	err := NewCustomError(ErrCandidatureNotFound, "")

	assert.Equal(t, ErrCandidatureNotFound.Error(), err.Error())
}
