// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	grantUseCase "github.com/glennballman/Community-Canvas-sub004/internal/grant/usecase"
	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
	customValidation "github.com/glennballman/Community-Canvas-sub004/internal/validation"
)

// ScopeRefRequest names a scope either directly or as a tenant/resource path.
type ScopeRefRequest struct {
	ScopeID      string `json:"scope_id,omitempty"`
	TenantID     string `json:"tenant_id,omitempty"`
	ResourceType string `json:"resource_type,omitempty"`
	ResourceKey  string `json:"resource_key,omitempty"`
}

// Validate checks if the scope ref is well formed.
func (r *ScopeRefRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.ScopeID,
			validation.When(r.ScopeID != "", customValidation.UUID),
			validation.When(r.TenantID == "", validation.Required.Error("scope_id or tenant_id is required")),
		),
		validation.Field(&r.TenantID,
			validation.When(r.TenantID != "", customValidation.UUID),
		),
		validation.Field(&r.ResourceType,
			validation.When(r.ResourceKey != "", validation.Required.Error("resource_type is required with resource_key")),
		),
	)
}

// ToRef converts the request to a domain scope ref. Call after Validate.
func (r *ScopeRefRequest) ToRef() scopeDomain.Ref {
	var ref scopeDomain.Ref
	if r.ScopeID != "" {
		id := uuid.MustParse(r.ScopeID)
		ref.ScopeID = &id
	}
	if r.TenantID != "" {
		id := uuid.MustParse(r.TenantID)
		ref.TenantID = &id
	}
	ref.ResourceType = r.ResourceType
	ref.ResourceKey = r.ResourceKey
	return ref
}

// CreateGrantRequest contains the parameters for creating a grant.
type CreateGrantRequest struct {
	PrincipalID string          `json:"principal_id"`
	Scope       ScopeRefRequest `json:"scope"`
	Role        string          `json:"role,omitempty"`
	Capability  string          `json:"capability,omitempty"`
	Conditions  json.RawMessage `json:"conditions,omitempty"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
}

// Validate checks if the create grant request is valid.
func (r *CreateGrantRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PrincipalID, validation.Required, customValidation.UUID),
		validation.Field(&r.Scope),
		validation.Field(&r.Capability,
			validation.When(r.Capability != "", customValidation.CapabilityCode),
		),
	)
}

// ToCreateInput converts the request to the usecase input. Call after Validate.
func (r *CreateGrantRequest) ToCreateInput() grantUseCase.CreateGrantInput {
	return grantUseCase.CreateGrantInput{
		PrincipalID:    uuid.MustParse(r.PrincipalID),
		ScopeRef:       r.Scope.ToRef(),
		RoleName:       r.Role,
		CapabilityCode: r.Capability,
		Conditions:     r.Conditions,
		ExpiresAt:      r.ExpiresAt,
	}
}

// CreateResourceGrantRequest contains the parameters for creating a resource grant.
type CreateResourceGrantRequest struct {
	PrincipalID string          `json:"principal_id"`
	Scope       ScopeRefRequest `json:"scope"`
	Capability  string          `json:"capability"`
}

// Validate checks if the create resource grant request is valid.
func (r *CreateResourceGrantRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PrincipalID, validation.Required, customValidation.UUID),
		validation.Field(&r.Scope),
		validation.Field(&r.Capability, validation.Required, customValidation.CapabilityCode),
	)
}

// ToCreateInput converts the request to the usecase input. Call after Validate.
func (r *CreateResourceGrantRequest) ToCreateInput() grantUseCase.CreateResourceGrantInput {
	return grantUseCase.CreateResourceGrantInput{
		PrincipalID:    uuid.MustParse(r.PrincipalID),
		ScopeRef:       r.Scope.ToRef(),
		CapabilityCode: r.Capability,
	}
}
