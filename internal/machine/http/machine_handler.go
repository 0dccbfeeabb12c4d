// Package http provides HTTP handlers for machine control sessions and
// certifications.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/glennballman/Community-Canvas-sub004/internal/httputil"
	"github.com/glennballman/Community-Canvas-sub004/internal/machine/http/dto"
	machineUseCase "github.com/glennballman/Community-Canvas-sub004/internal/machine/usecase"
	customValidation "github.com/glennballman/Community-Canvas-sub004/internal/validation"
)

// MachineHandler handles HTTP requests for machine sessions and certifications.
type MachineHandler struct {
	machineUseCase machineUseCase.Machine
	logger         *slog.Logger
}

// NewMachineHandler creates a new machine handler with required dependencies.
func NewMachineHandler(machineUseCase machineUseCase.Machine, logger *slog.Logger) *MachineHandler {
	return &MachineHandler{
		machineUseCase: machineUseCase,
		logger:         logger,
	}
}

// StartSessionHandler starts a control session.
// POST /v1/machine-sessions
// Returns 201 Created with the session.
func (h *MachineHandler) StartSessionHandler(c *gin.Context) {
	var req dto.StartSessionRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	session, err := h.machineUseCase.StartSession(c.Request.Context(), req.ToStartInput())
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapControlSessionToResponse(session))
}

// GetSessionHandler retrieves a control session.
// GET /v1/machine-sessions/:id
func (h *MachineHandler) GetSessionHandler(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	session, err := h.machineUseCase.GetSession(c.Request.Context(), sessionID)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.MapControlSessionToResponse(session))
}

// EndSessionHandler ends a control session normally.
// POST /v1/machine-sessions/:id/end
// Returns 204 No Content; ending a finished session returns 409 Conflict.
func (h *MachineHandler) EndSessionHandler(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.machineUseCase.EndSession(c.Request.Context(), sessionID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// EmergencyStopHandler emergency-stops a control session.
// POST /v1/machine-sessions/:id/emergency-stop
// Returns 204 No Content.
func (h *MachineHandler) EmergencyStopHandler(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := h.machineUseCase.EmergencyStop(c.Request.Context(), sessionID); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.Status(http.StatusNoContent)
}

// GrantCertificationHandler records a certification for a principal.
// POST /v1/certifications
// Returns 201 Created with the certification.
func (h *MachineHandler) GrantCertificationHandler(c *gin.Context) {
	var req dto.GrantCertificationRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}

	if err := req.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, customValidation.WrapValidationError(err), h.logger)
		return
	}

	certification, err := h.machineUseCase.GrantCertification(
		c.Request.Context(),
		uuid.MustParse(req.PrincipalID),
		req.CertificationCode,
		req.ExpiresAt,
	)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.MapCertificationToResponse(certification))
}
