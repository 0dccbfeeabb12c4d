// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	engineDomain "github.com/glennballman/Community-Canvas-sub004/internal/engine/domain"
	grantDto "github.com/glennballman/Community-Canvas-sub004/internal/grant/http/dto"
	customValidation "github.com/glennballman/Community-Canvas-sub004/internal/validation"
)

// AuthorizeRequest contains one authorization question.
type AuthorizeRequest struct {
	SessionID       string                   `json:"session_id,omitempty"`
	PrincipalID     string                   `json:"principal_id"`
	Capability      string                   `json:"capability"`
	Scope           grantDto.ScopeRefRequest `json:"scope"`
	ResourceOwnerID string                   `json:"resource_owner_id,omitempty"`
	AmountCents     *int64                   `json:"amount_cents,omitempty"`
}

// Validate checks if the authorize request is well formed. Whether the
// capability code names anything is the engine's call, not the transport's.
func (r *AuthorizeRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PrincipalID, validation.Required, customValidation.UUID),
		validation.Field(&r.Capability, validation.Required, customValidation.NotBlank),
		validation.Field(&r.Scope),
		validation.Field(&r.ResourceOwnerID,
			validation.When(r.ResourceOwnerID != "", customValidation.UUID),
		),
	)
}

// ToAuthorizeInput converts the request to the engine input. Call after Validate.
func (r *AuthorizeRequest) ToAuthorizeInput() engineDomain.AuthorizeInput {
	input := engineDomain.AuthorizeInput{
		SessionID:      r.SessionID,
		PrincipalID:    uuid.MustParse(r.PrincipalID),
		CapabilityCode: r.Capability,
		ScopeRef:       r.Scope.ToRef(),
		Request: engineDomain.RequestContext{
			AmountCents: r.AmountCents,
		},
	}
	if r.ResourceOwnerID != "" {
		ownerID := uuid.MustParse(r.ResourceOwnerID)
		input.Request.ResourceOwnerID = &ownerID
	}
	return input
}

// StartImpersonationRequest contains the parameters for starting an impersonation.
type StartImpersonationRequest struct {
	SessionID               string `json:"session_id"`
	OriginalPrincipalID     string `json:"original_principal_id"`
	ImpersonatedPrincipalID string `json:"impersonated_principal_id"`
}

// Validate checks if the start impersonation request is valid.
func (r *StartImpersonationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SessionID, validation.Required, customValidation.NotBlank),
		validation.Field(&r.OriginalPrincipalID, validation.Required, customValidation.UUID),
		validation.Field(&r.ImpersonatedPrincipalID, validation.Required, customValidation.UUID),
	)
}

// StopImpersonationRequest contains the parameters for stopping an impersonation.
type StopImpersonationRequest struct {
	SessionID string `json:"session_id"`
}

// Validate checks if the stop impersonation request is valid.
func (r *StopImpersonationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.SessionID, validation.Required, customValidation.NotBlank),
	)
}
