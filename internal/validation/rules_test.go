package validation

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
)

func TestWrapValidationError(t *testing.T) {
	t.Run("Success_NilError", func(t *testing.T) {
		assert.NoError(t, WrapValidationError(nil))
	})

	t.Run("Success_WrapsAsInvalidInput", func(t *testing.T) {
		err := WrapValidationError(assert.AnError)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Contains(t, err.Error(), assert.AnError.Error())
	})
}

func TestNotBlank(t *testing.T) {
	assert.NoError(t, NotBlank.Validate("value"))
	assert.Error(t, NotBlank.Validate("   "))
	assert.Error(t, NotBlank.Validate(""))
}

func TestNoWhitespace(t *testing.T) {
	assert.NoError(t, NoWhitespace.Validate("value"))
	assert.Error(t, NoWhitespace.Validate(" value"))
	assert.Error(t, NoWhitespace.Validate("value "))
}

func TestUUID(t *testing.T) {
	assert.NoError(t, UUID.Validate(uuid.Must(uuid.NewV7()).String()))
	assert.Error(t, UUID.Validate("not-a-uuid"))
}

func TestCapabilityCode(t *testing.T) {
	assert.NoError(t, CapabilityCode.Validate("reservations.create"))
	assert.NoError(t, CapabilityCode.Validate("reservations.own.view"))
	assert.NoError(t, CapabilityCode.Validate("documents.all.export"))
	assert.Error(t, CapabilityCode.Validate("reservations"))
	assert.Error(t, CapabilityCode.Validate("reservations.some.view"))
	assert.Error(t, CapabilityCode.Validate("a.b.c.d"))
}
