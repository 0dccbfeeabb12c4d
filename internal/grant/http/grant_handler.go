// Package http provides HTTP handlers for grant administration.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glennballman/Community-Canvas-sub004/internal/grant/http/dto"
	grantUseCase "github.com/glennballman/Community-Canvas-sub004/internal/grant/usecase"
	"github.com/glennballman/Community-Canvas-sub004/internal/httputil"
	customValidation "github.com/glennballman/Community-Canvas-sub004/internal/validation"
)

// GrantHandler handles HTTP requests for grant administration.
type GrantHandler struct {
	grantUseCase grantUseCase.Grant
	logger       *slog.Logger
}

// NewGrantHandler creates a new grant handler with required dependencies.
func NewGrantHandler(grantUseCase grantUseCase.Grant, logger *slog.Logger) *GrantHandler {
	return &GrantHandler{
		grantUseCase: grantUseCase,
		logger:       logger,
	}
}

// CreateHandler creates a grant.
// POST /v1/grants
// Returns 201 Created with the grant.
func (h *GrantHandler) CreateHandler(c *gin.Context) {
	var req dto.CreateGrantRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	grant, err := h.grantUseCase.CreateGrant(c.Request.Context(), req.ToCreateInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapGrantToResponse(grant))
}

// RevokeHandler revokes a grant.
// POST /v1/grants/:id/revoke
// Returns 204 No Content; revoking twice returns 409 Conflict.
func (h *GrantHandler) RevokeHandler(c *gin.Context) {
	grantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.grantUseCase.RevokeGrant(c.Request.Context(), grantID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListHandler lists grants for a principal.
// GET /v1/grants?principal_id=&offset=&limit=
func (h *GrantHandler) ListHandler(c *gin.Context) {
	principalID, err := uuid.Parse(c.Query("principal_id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid principal_id parameter"), h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	grants, err := h.grantUseCase.ListGrants(c.Request.Context(), principalID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapGrantsToListResponse(grants))
}

// CreateResourceGrantHandler creates a per-resource capability grant.
// POST /v1/resource-grants
// Returns 201 Created with the resource grant.
func (h *GrantHandler) CreateResourceGrantHandler(c *gin.Context) {
	var req dto.CreateResourceGrantRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	grant, err := h.grantUseCase.CreateResourceGrant(c.Request.Context(), req.ToCreateInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapResourceGrantToResponse(grant))
}

// RevokeResourceGrantHandler revokes a resource grant.
// POST /v1/resource-grants/:id/revoke
func (h *GrantHandler) RevokeResourceGrantHandler(c *gin.Context) {
	grantID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.grantUseCase.RevokeResourceGrant(c.Request.Context(), grantID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListResourceGrantsHandler lists resource grants for a principal.
// GET /v1/resource-grants?principal_id=&offset=&limit=
func (h *GrantHandler) ListResourceGrantsHandler(c *gin.Context) {
	principalID, err := uuid.Parse(c.Query("principal_id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, fmt.Errorf("invalid principal_id parameter"), h.logger)
		return
	}

	offset, limit, err := httputil.ParsePagination(c)
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	grants, err := h.grantUseCase.ListResourceGrants(c.Request.Context(), principalID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapResourceGrantsToListResponse(grants))
}
