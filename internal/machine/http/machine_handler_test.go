package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	machineDomain "github.com/glennballman/Community-Canvas-sub004/internal/machine/domain"
	"github.com/glennballman/Community-Canvas-sub004/internal/machine/http/dto"
	"github.com/glennballman/Community-Canvas-sub004/internal/machine/http/mocks"
)

func setupTestHandler(t *testing.T) (*MachineHandler, *mocks.MockMachineUsecase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := new(mocks.MockMachineUsecase)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewMachineHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(method, path string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	var bodyReader io.Reader
	if body != nil {
		bodyBytes, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	return c, w
}

func TestMachineHandler_StartSessionHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		machineID := uuid.Must(uuid.NewV7())
		operatorID := uuid.Must(uuid.NewV7())

		session := &machineDomain.ControlSession{
			ID:                  uuid.Must(uuid.NewV7()),
			MachinePrincipalID:  machineID,
			OperatorPrincipalID: operatorID,
			Mode:                machineDomain.ModeTeleop,
			Status:              machineDomain.StatusActive,
			StartedAt:           time.Now().UTC(),
		}

		mockUseCase.On("StartSession", mock.Anything, mock.Anything).
			Return(session, nil).Once()

		request := dto.StartSessionRequest{
			MachinePrincipalID:  machineID.String(),
			OperatorPrincipalID: operatorID.String(),
			Mode:                "teleop",
		}
		c, w := createTestContext(http.MethodPost, "/v1/machine-sessions", request)

		handler.StartSessionHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.ControlSessionResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, session.ID.String(), response.ID)
		assert.Equal(t, "active", response.Status)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_UnknownMode", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.StartSessionRequest{
			MachinePrincipalID:  uuid.Must(uuid.NewV7()).String(),
			OperatorPrincipalID: uuid.Must(uuid.NewV7()).String(),
			Mode:                "warp",
		}
		c, w := createTestContext(http.MethodPost, "/v1/machine-sessions", request)

		handler.StartSessionHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "StartSession", mock.Anything, mock.Anything)
	})

	t.Run("Error_SelfOperation", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("StartSession", mock.Anything, mock.Anything).
			Return(nil, machineDomain.ErrSelfOperation).Once()

		id := uuid.Must(uuid.NewV7()).String()
		request := dto.StartSessionRequest{
			MachinePrincipalID:  id,
			OperatorPrincipalID: id,
			Mode:                "manual_only",
		}
		c, w := createTestContext(http.MethodPost, "/v1/machine-sessions", request)

		handler.StartSessionHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMachineHandler_EndSessionHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		sessionID := uuid.Must(uuid.NewV7())
		mockUseCase.On("EndSession", mock.Anything, sessionID).Return(nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/machine-sessions/"+sessionID.String()+"/end", nil)
		c.Params = gin.Params{{Key: "id", Value: sessionID.String()}}

		handler.EndSessionHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_AlreadyEnded", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		sessionID := uuid.Must(uuid.NewV7())
		mockUseCase.On("EndSession", mock.Anything, sessionID).
			Return(machineDomain.ErrSessionNotActive).Once()

		c, w := createTestContext(http.MethodPost, "/v1/machine-sessions/"+sessionID.String()+"/end", nil)
		c.Params = gin.Params{{Key: "id", Value: sessionID.String()}}

		handler.EndSessionHandler(c)

		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("Error_InvalidID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/machine-sessions/nope/end", nil)
		c.Params = gin.Params{{Key: "id", Value: "nope"}}

		handler.EndSessionHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMachineHandler_EmergencyStopHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		sessionID := uuid.Must(uuid.NewV7())
		mockUseCase.On("EmergencyStop", mock.Anything, sessionID).Return(nil).Once()

		c, w := createTestContext(
			http.MethodPost, "/v1/machine-sessions/"+sessionID.String()+"/emergency-stop", nil)
		c.Params = gin.Params{{Key: "id", Value: sessionID.String()}}

		handler.EmergencyStopHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		sessionID := uuid.Must(uuid.NewV7())
		mockUseCase.On("EmergencyStop", mock.Anything, sessionID).
			Return(machineDomain.ErrSessionNotFound).Once()

		c, w := createTestContext(
			http.MethodPost, "/v1/machine-sessions/"+sessionID.String()+"/emergency-stop", nil)
		c.Params = gin.Params{{Key: "id", Value: sessionID.String()}}

		handler.EmergencyStopHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMachineHandler_GetSessionHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		session := &machineDomain.ControlSession{
			ID:                  uuid.Must(uuid.NewV7()),
			MachinePrincipalID:  uuid.Must(uuid.NewV7()),
			OperatorPrincipalID: uuid.Must(uuid.NewV7()),
			Mode:                machineDomain.ModeSupervisedAutonomy,
			Status:              machineDomain.StatusEnded,
			StartedAt:           time.Now().UTC(),
		}

		mockUseCase.On("GetSession", mock.Anything, session.ID).Return(session, nil).Once()

		c, w := createTestContext(http.MethodGet, "/v1/machine-sessions/"+session.ID.String(), nil)
		c.Params = gin.Params{{Key: "id", Value: session.ID.String()}}

		handler.GetSessionHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ControlSessionResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "supervised_autonomy", response.Mode)
		assert.Equal(t, "ended", response.Status)
	})
}

func TestMachineHandler_GrantCertificationHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		principalID := uuid.Must(uuid.NewV7())
		certification := &machineDomain.Certification{
			ID:                uuid.Must(uuid.NewV7()),
			PrincipalID:       principalID,
			CertificationCode: "heavy_equipment",
			IssuedAt:          time.Now().UTC(),
		}

		mockUseCase.On("GrantCertification", mock.Anything, principalID, "heavy_equipment",
			(*time.Time)(nil)).Return(certification, nil).Once()

		request := dto.GrantCertificationRequest{
			PrincipalID:       principalID.String(),
			CertificationCode: "heavy_equipment",
		}
		c, w := createTestContext(http.MethodPost, "/v1/certifications", request)

		handler.GrantCertificationHandler(c)

		assert.Equal(t, http.StatusCreated, w.Code)

		var response dto.CertificationResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "heavy_equipment", response.CertificationCode)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_BlankCode", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		request := dto.GrantCertificationRequest{
			PrincipalID:       uuid.Must(uuid.NewV7()).String(),
			CertificationCode: "",
		}
		c, w := createTestContext(http.MethodPost, "/v1/certifications", request)

		handler.GrantCertificationHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "GrantCertification",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}
