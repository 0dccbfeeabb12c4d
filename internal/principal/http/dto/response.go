// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	principalDomain "github.com/glennballman/Community-Canvas-sub004/internal/principal/domain"
)

// PrincipalResponse represents a principal in API responses.
type PrincipalResponse struct {
	PrincipalID string    `json:"principal_id"`
	AccountID   string    `json:"account_id"`
	Kind        string    `json:"kind"`
	DisplayName string    `json:"display_name,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

// MapPrincipalToResponse converts a domain principal to an API response.
func MapPrincipalToResponse(principal *principalDomain.Principal) PrincipalResponse {
	return PrincipalResponse{
		PrincipalID: principal.ID.String(),
		AccountID:   principal.AccountRef,
		Kind:        string(principal.Kind),
		DisplayName: principal.DisplayName,
		Active:      principal.Active,
		CreatedAt:   principal.CreatedAt,
	}
}
