// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	machineDomain "github.com/glennballman/Community-Canvas-sub004/internal/machine/domain"
)

// ControlSessionResponse represents a control session in API responses.
type ControlSessionResponse struct {
	ID                  string     `json:"id"`
	MachinePrincipalID  string     `json:"machine_principal_id"`
	OperatorPrincipalID string     `json:"operator_principal_id"`
	Mode                string     `json:"mode"`
	Status              string     `json:"status"`
	StartedAt           time.Time  `json:"started_at"`
	EndedAt             *time.Time `json:"ended_at,omitempty"`
}

// MapControlSessionToResponse converts a domain control session to an API response.
func MapControlSessionToResponse(session *machineDomain.ControlSession) ControlSessionResponse {
	return ControlSessionResponse{
		ID:                  session.ID.String(),
		MachinePrincipalID:  session.MachinePrincipalID.String(),
		OperatorPrincipalID: session.OperatorPrincipalID.String(),
		Mode:                string(session.Mode),
		Status:              string(session.Status),
		StartedAt:           session.StartedAt,
		EndedAt:             session.EndedAt,
	}
}

// CertificationResponse represents a certification in API responses.
type CertificationResponse struct {
	ID                string     `json:"id"`
	PrincipalID       string     `json:"principal_id"`
	CertificationCode string     `json:"certification_code"`
	IssuedAt          time.Time  `json:"issued_at"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
}

// MapCertificationToResponse converts a domain certification to an API response.
func MapCertificationToResponse(certification *machineDomain.Certification) CertificationResponse {
	return CertificationResponse{
		ID:                certification.ID.String(),
		PrincipalID:       certification.PrincipalID.String(),
		CertificationCode: certification.CertificationCode,
		IssuedAt:          certification.IssuedAt,
		ExpiresAt:         certification.ExpiresAt,
	}
}
