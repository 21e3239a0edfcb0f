package errors_test

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/vytor/lirajourney/internal/errors"
)

func TestParseErrorWrapsCause(t *testing.T) {
	cause := stderrors.New("unexpected EOF")
	err := errors.NewParseError("data/characters/kent.json", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "PARSE_ERROR")
	assert.Contains(t, err.Error(), "kent.json")
}

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("load character: %w", errors.NewParseError("x.json", stderrors.New("bad")))

	assert.True(t, errors.HasCode(wrapped, errors.ErrCodeParse))
	assert.False(t, errors.HasCode(wrapped, errors.ErrCodeNotFound))
	assert.False(t, errors.HasCode(stderrors.New("plain"), errors.ErrCodeParse))
}

func TestValidationAndNotFoundMessages(t *testing.T) {
	assert.Equal(t, "VALIDATION_ERROR: validation failed for word: must not be empty",
		errors.NewValidationError("word", "must not be empty").Error())
	assert.Equal(t, "NOT_FOUND: character not found: edgar",
		errors.NewNotFoundError("character", "edgar").Error())
}
