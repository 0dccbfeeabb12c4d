// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	"time"

	"github.com/google/uuid"
	validation "github.com/jellydator/validation"

	machineDomain "github.com/glennballman/Community-Canvas-sub004/internal/machine/domain"
	machineUseCase "github.com/glennballman/Community-Canvas-sub004/internal/machine/usecase"
	customValidation "github.com/glennballman/Community-Canvas-sub004/internal/validation"
)

// StartSessionRequest contains the parameters for starting a control session.
type StartSessionRequest struct {
	MachinePrincipalID  string `json:"machine_principal_id"`
	OperatorPrincipalID string `json:"operator_principal_id"`
	Mode                string `json:"mode"`
}

// Validate checks if the start session request is valid.
func (r *StartSessionRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.MachinePrincipalID, validation.Required, customValidation.UUID),
		validation.Field(&r.OperatorPrincipalID, validation.Required, customValidation.UUID),
		validation.Field(&r.Mode, validation.Required, validation.In(
			string(machineDomain.ModeManualOnly),
			string(machineDomain.ModeTeleop),
			string(machineDomain.ModeSupervisedAutonomy),
			string(machineDomain.ModeAutonomous),
		)),
	)
}

// ToStartInput converts the request to the usecase input. Call after Validate.
func (r *StartSessionRequest) ToStartInput() machineUseCase.StartSessionInput {
	return machineUseCase.StartSessionInput{
		MachinePrincipalID:  uuid.MustParse(r.MachinePrincipalID),
		OperatorPrincipalID: uuid.MustParse(r.OperatorPrincipalID),
		Mode:                machineDomain.ControlMode(r.Mode),
	}
}

// GrantCertificationRequest contains the parameters for recording a certification.
type GrantCertificationRequest struct {
	PrincipalID       string     `json:"principal_id"`
	CertificationCode string     `json:"certification_code"`
	ExpiresAt         *time.Time `json:"expires_at,omitempty"`
}

// Validate checks if the grant certification request is valid.
func (r *GrantCertificationRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.PrincipalID, validation.Required, customValidation.UUID),
		validation.Field(&r.CertificationCode, validation.Required, customValidation.NotBlank),
	)
}
