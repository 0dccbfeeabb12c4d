package http

import (
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

	auditDomain "github.com/glennballman/Community-Canvas-sub004/internal/audit/domain"
	"github.com/glennballman/Community-Canvas-sub004/internal/audit/http/dto"
	"github.com/glennballman/Community-Canvas-sub004/internal/audit/http/mocks"
)

func setupTestHandler(t *testing.T) (*AuditHandler, *mocks.MockAuditUsecase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := new(mocks.MockAuditUsecase)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewAuditHandler(mockUseCase, logger), mockUseCase
}

func createTestContext(path string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	return c, w
}

func TestAuditHandler_ListHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		principalID := uuid.Must(uuid.NewV7())
		scopeID := uuid.Must(uuid.NewV7())
		records := []*auditDomain.Record{
			{
				ID:                  uuid.Must(uuid.NewV7()),
				PrincipalID:         principalID,
				OriginalPrincipalID: principalID,
				CapabilityCode:      "reservations.create",
				ScopeID:             &scopeID,
				Effect:              auditDomain.EffectDeny,
				Reason:              "CAPABILITY_NOT_GRANTED",
				CreatedAt:           time.Now().UTC(),
			},
		}

		mockUseCase.On("List", mock.Anything, principalID, 0, 50).
			Return(records, nil).Once()

		c, w := createTestContext("/v1/audit-records?principal_id=" + principalID.String())

		handler.ListHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.ListAuditRecordsResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Len(t, response.Data, 1)
		assert.Equal(t, "deny", response.Data[0].Effect)
		assert.Equal(t, "CAPABILITY_NOT_GRANTED", response.Data[0].Reason)
		assert.Equal(t, scopeID.String(), response.Data[0].ScopeID)
		mockUseCase.AssertExpectations(t)
	})

	t.Run("Error_MissingPrincipalID", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		c, w := createTestContext("/v1/audit-records")

		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUseCase.AssertNotCalled(t, "List",
			mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_InvalidPagination", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		principalID := uuid.Must(uuid.NewV7())
		c, w := createTestContext("/v1/audit-records?principal_id=" + principalID.String() + "&limit=-1")

		handler.ListHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
