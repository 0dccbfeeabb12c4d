// Package http provides HTTP handlers for the audit trail.
package http

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glennballman/Community-Canvas-sub004/internal/audit/http/dto"
	auditUseCase "github.com/glennballman/Community-Canvas-sub004/internal/audit/usecase"
	"github.com/glennballman/Community-Canvas-sub004/internal/httputil"
)

// AuditHandler handles HTTP requests for audit records.
type AuditHandler struct {
	auditUseCase auditUseCase.Audit
	logger       *slog.Logger
}

// NewAuditHandler creates a new audit handler with required dependencies.
func NewAuditHandler(auditUseCase auditUseCase.Audit, logger *slog.Logger) *AuditHandler {
	return &AuditHandler{
		auditUseCase: auditUseCase,
		logger:       logger,
	}
}

// ListHandler lists audit records for a principal, newest first.
// GET /v1/audit-records?principal_id=&offset=&limit=
func (h *AuditHandler) ListHandler(c *gin.Context) {
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

	records, err := h.auditUseCase.List(c.Request.Context(), principalID, offset, limit)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapRecordsToListResponse(records))
}
