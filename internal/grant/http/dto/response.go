// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"encoding/json"
	"time"

	grantDomain "github.com/glennballman/Community-Canvas-sub004/internal/grant/domain"
)

// GrantResponse represents a grant in API responses.
type GrantResponse struct {
	ID          string          `json:"id"`
	PrincipalID string          `json:"principal_id"`
	ScopeID     string          `json:"scope_id"`
	Role        string          `json:"role,omitempty"`
	Capability  string          `json:"capability,omitempty"`
	Conditions  json.RawMessage `json:"conditions,omitempty"`
	ExpiresAt   *time.Time      `json:"expires_at,omitempty"`
	RevokedAt   *time.Time      `json:"revoked_at,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

// MapGrantToResponse converts a domain grant to an API response.
func MapGrantToResponse(grant *grantDomain.Grant) GrantResponse {
	response := GrantResponse{
		ID:          grant.ID.String(),
		PrincipalID: grant.PrincipalID.String(),
		ScopeID:     grant.ScopeID.String(),
		Conditions:  grant.Conditions,
		ExpiresAt:   grant.ExpiresAt,
		RevokedAt:   grant.RevokedAt,
		CreatedAt:   grant.CreatedAt,
	}
	if grant.RoleName != nil {
		response.Role = *grant.RoleName
	}
	if grant.CapabilityCode != nil {
		response.Capability = *grant.CapabilityCode
	}
	return response
}

// ListGrantsResponse represents a paginated list of grants in API responses.
type ListGrantsResponse struct {
	Data []GrantResponse `json:"data"`
}

// MapGrantsToListResponse converts a slice of domain grants to a list response.
func MapGrantsToListResponse(grants []*grantDomain.Grant) ListGrantsResponse {
	data := make([]GrantResponse, 0, len(grants))
	for _, grant := range grants {
		data = append(data, MapGrantToResponse(grant))
	}
	return ListGrantsResponse{Data: data}
}

// ResourceGrantResponse represents a resource grant in API responses.
type ResourceGrantResponse struct {
	ID          string     `json:"id"`
	PrincipalID string     `json:"principal_id"`
	ScopeID     string     `json:"scope_id"`
	Capability  string     `json:"capability"`
	RevokedAt   *time.Time `json:"revoked_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// MapResourceGrantToResponse converts a domain resource grant to an API response.
func MapResourceGrantToResponse(grant *grantDomain.ResourceGrant) ResourceGrantResponse {
	return ResourceGrantResponse{
		ID:          grant.ID.String(),
		PrincipalID: grant.PrincipalID.String(),
		ScopeID:     grant.ScopeID.String(),
		Capability:  grant.CapabilityCode,
		RevokedAt:   grant.RevokedAt,
		CreatedAt:   grant.CreatedAt,
	}
}

// ListResourceGrantsResponse represents a paginated list of resource grants.
type ListResourceGrantsResponse struct {
	Data []ResourceGrantResponse `json:"data"`
}

// MapResourceGrantsToListResponse converts domain resource grants to a list response.
func MapResourceGrantsToListResponse(grants []*grantDomain.ResourceGrant) ListResourceGrantsResponse {
	data := make([]ResourceGrantResponse, 0, len(grants))
	for _, grant := range grants {
		data = append(data, MapResourceGrantToResponse(grant))
	}
	return ListResourceGrantsResponse{Data: data}
}
