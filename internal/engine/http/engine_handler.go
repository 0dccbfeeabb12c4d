// Package http provides the authorization API: the authorize endpoint,
// effective-capability listing, and impersonation control.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glennballman/Community-Canvas-sub004/internal/engine/http/dto"
	engineUseCase "github.com/glennballman/Community-Canvas-sub004/internal/engine/usecase"
	"github.com/glennballman/Community-Canvas-sub004/internal/httputil"
	scopeDomain "github.com/glennballman/Community-Canvas-sub004/internal/scope/domain"
	customValidation "github.com/glennballman/Community-Canvas-sub004/internal/validation"
)

// EngineHandler handles HTTP requests for authorization decisions.
type EngineHandler struct {
	engineUseCase engineUseCase.Engine
	impersonation engineUseCase.Impersonation
	logger        *slog.Logger
}

// NewEngineHandler creates a new engine handler with required dependencies.
func NewEngineHandler(
	engineUseCase engineUseCase.Engine,
	impersonation engineUseCase.Impersonation,
	logger *slog.Logger,
) *EngineHandler {
	return &EngineHandler{
		engineUseCase: engineUseCase,
		impersonation: impersonation,
		logger:        logger,
	}
}

// AuthorizeHandler answers one authorization question.
// POST /v1/authorize
// Returns 200 with the decision on Allow, 403 on Deny/HardFail, 500 on
// infrastructure failure (never 200).
func (h *EngineHandler) AuthorizeHandler(c *gin.Context) {
	var req dto.AuthorizeRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	input := req.ToAuthorizeInput()
	input.Request.RequestID = c.GetHeader("X-Request-ID")

	decision, err := h.engineUseCase.Authorize(c.Request.Context(), input)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	if !decision.Allowed() {
		c.JSON(http.StatusForbidden, dto.MapDecisionToDeniedResponse(decision))
		return
	}

	c.JSON(http.StatusOK, dto.MapDecisionToResponse(decision))
}

// CapabilitiesHandler lists a principal's effective capability codes at a scope.
// Advisory for UI rendering; actions are still authorized per call.
// GET /v1/principals/:id/capabilities?scope_id= | ?tenant_id=&resource_type=&resource_key=
func (h *EngineHandler) CapabilitiesHandler(c *gin.Context) {
	principalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	ref, err := scopeRefFromQuery(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	codes, err := h.engineUseCase.ListEffectiveCapabilities(c.Request.Context(), principalID, ref)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.CapabilitiesResponse{Data: codes})
}

// StartImpersonationHandler starts impersonating a principal for a session.
// POST /v1/impersonation/start
// Returns 204 No Content; starting twice returns 409 Conflict.
func (h *EngineHandler) StartImpersonationHandler(c *gin.Context) {
	var req dto.StartImpersonationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	err := h.impersonation.Start(
		c.Request.Context(),
		req.SessionID,
		uuid.MustParse(req.OriginalPrincipalID),
		uuid.MustParse(req.ImpersonatedPrincipalID),
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// StopImpersonationHandler stops a session's impersonation.
// POST /v1/impersonation/stop
// Returns 204 No Content; stopping without an active impersonation returns 409.
func (h *EngineHandler) StopImpersonationHandler(c *gin.Context) {
	var req dto.StopImpersonationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	if err := h.impersonation.Stop(c.Request.Context(), req.SessionID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// scopeRefFromQuery builds a scope ref from query parameters.
func scopeRefFromQuery(c *gin.Context) (scopeDomain.Ref, error) {
	var ref scopeDomain.Ref

	if raw := c.Query("scope_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ref, err
		}
		ref.ScopeID = &id
		return ref, nil
	}

	if raw := c.Query("tenant_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return ref, err
		}
		ref.TenantID = &id
	}
	ref.ResourceType = c.Query("resource_type")
	ref.ResourceKey = c.Query("resource_key")

	if ref.IsZero() {
		return ref, scopeDomain.ErrInvalidScopeRef
	}
	return ref, nil
}
