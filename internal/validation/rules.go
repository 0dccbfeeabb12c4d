// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	catalogDomain "github.com/glennballman/Community-Canvas-sub004/internal/catalog/domain"
	apperrors "github.com/glennballman/Community-Canvas-sub004/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput.
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace.
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// UUID validates that a string is a well-formed UUID.
var UUID = validation.NewStringRuleWithError(
	func(s string) bool {
		_, err := uuid.Parse(s)
		return err == nil
	},
	validation.NewError("validation_uuid", "must be a valid UUID"),
)

// CapabilityCode validates the "domain.action" / "domain.{own|all}.action" code shape.
// Shape only: whether the code exists in the catalog is the engine's call, since an
// unknown capability is a Deny decision, not a malformed request.
var CapabilityCode = validation.NewStringRuleWithError(
	func(s string) bool {
		_, _, _, err := catalogDomain.ParseCode(s)
		return err == nil
	},
	validation.NewError("validation_capability_code", "must be a valid capability code"),
)
