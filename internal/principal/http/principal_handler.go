// Package http provides HTTP handlers for principal resolution.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glennballman/Community-Canvas-sub004/internal/httputil"
	"github.com/glennballman/Community-Canvas-sub004/internal/principal/http/dto"
	principalUseCase "github.com/glennballman/Community-Canvas-sub004/internal/principal/usecase"
	customValidation "github.com/glennballman/Community-Canvas-sub004/internal/validation"
)

// PrincipalHandler handles HTTP requests for principal resolution and lifecycle.
type PrincipalHandler struct {
	principalUseCase principalUseCase.Principal
	logger           *slog.Logger
}

// NewPrincipalHandler creates a new principal handler with required dependencies.
func NewPrincipalHandler(
	principalUseCase principalUseCase.Principal,
	logger *slog.Logger,
) *PrincipalHandler {
	return &PrincipalHandler{
		principalUseCase: principalUseCase,
		logger:           logger,
	}
}

// ResolveHandler resolves (or lazily creates) the principal for an account.
// POST /v1/principals/resolve
// Returns 200 OK with the principal; repeated calls for the same account return
// the same principal.
func (h *PrincipalHandler) ResolveHandler(c *gin.Context) {
	var req dto.ResolvePrincipalRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	principal, err := h.principalUseCase.Resolve(c.Request.Context(), req.ToResolveInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrincipalToResponse(principal))
}

// GetHandler retrieves a principal by ID.
// GET /v1/principals/:id
func (h *PrincipalHandler) GetHandler(c *gin.Context) {
	principalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	principal, err := h.principalUseCase.Get(c.Request.Context(), principalID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapPrincipalToResponse(principal))
}

// DeactivateHandler marks a principal inactive.
// POST /v1/principals/:id/deactivate
// Returns 204 No Content. The principal record remains for audit history.
func (h *PrincipalHandler) DeactivateHandler(c *gin.Context) {
	principalID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.principalUseCase.Deactivate(c.Request.Context(), principalID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}
