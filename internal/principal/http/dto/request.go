// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	validation "github.com/jellydator/validation"

	principalDomain "github.com/glennballman/Community-Canvas-sub004/internal/principal/domain"
	customValidation "github.com/glennballman/Community-Canvas-sub004/internal/validation"
)

// ResolvePrincipalRequest contains the parameters for resolving a principal.
type ResolvePrincipalRequest struct {
	AccountID   string `json:"account_id"`
	Kind        string `json:"kind"`
	DisplayName string `json:"display_name"`
}

// Validate checks if the resolve principal request is valid.
func (r *ResolvePrincipalRequest) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AccountID,
			validation.Required,
			customValidation.NotBlank,
			customValidation.NoWhitespace,
			validation.Length(1, 255),
		),
		validation.Field(&r.Kind,
			validation.Required,
			validation.In(
				string(principalDomain.KindHuman),
				string(principalDomain.KindService),
				string(principalDomain.KindMachine),
				string(principalDomain.KindDelegate),
			),
		),
		validation.Field(&r.DisplayName,
			validation.Length(0, 255),
		),
	)
}

// ToResolveInput converts the request to the domain resolve input.
func (r *ResolvePrincipalRequest) ToResolveInput() principalDomain.ResolveInput {
	return principalDomain.ResolveInput{
		AccountRef:  r.AccountID,
		Kind:        principalDomain.Kind(r.Kind),
		DisplayName: r.DisplayName,
	}
}
