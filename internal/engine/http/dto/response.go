// Package dto provides data transfer objects for HTTP request and response handling.
package dto

import (
	engineDomain "github.com/glennballman/Community-Canvas-sub004/internal/engine/domain"
)

// AuthorizeResponse is the 200 body for an allowed call.
type AuthorizeResponse struct {
	Allow    bool   `json:"allow"`
	Reason   string `json:"reason"`
	HardFail bool   `json:"hard_fail"`
}

// DeniedResponse is the 403 body for a denied or hard-failed call.
type DeniedResponse struct {
	OK     bool   `json:"ok"`
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// MapDecisionToResponse converts an allowing decision to the 200 body.
func MapDecisionToResponse(decision *engineDomain.Decision) AuthorizeResponse {
	return AuthorizeResponse{
		Allow:    decision.Allowed(),
		Reason:   decision.Reason,
		HardFail: decision.HardFailed(),
	}
}

// MapDecisionToDeniedResponse converts a denying decision to the 403 body.
// NO_PRINCIPAL keeps its own error code; all other denials are NOT_AUTHORIZED
// and hard fails are HARD_FAIL. The internal reason code rides in detail for
// operators.
func MapDecisionToDeniedResponse(decision *engineDomain.Decision) DeniedResponse {
	errorCode := "NOT_AUTHORIZED"
	switch {
	case decision.HardFailed():
		errorCode = "HARD_FAIL"
	case decision.Reason == engineDomain.ReasonNoPrincipal:
		errorCode = "NO_PRINCIPAL"
	}
	return DeniedResponse{
		OK:     false,
		Error:  errorCode,
		Detail: decision.Reason,
	}
}

// CapabilitiesResponse lists a principal's effective capability codes at a scope.
type CapabilitiesResponse struct {
	Data []string `json:"data"`
}
