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

	principalDomain "github.com/glennballman/Community-Canvas-sub004/internal/principal/domain"
	"github.com/glennballman/Community-Canvas-sub004/internal/principal/http/dto"
	"github.com/glennballman/Community-Canvas-sub004/internal/principal/http/mocks"
)

// setupTestHandler creates a test handler with mocked dependencies.
func setupTestHandler(t *testing.T) (*PrincipalHandler, *mocks.MockPrincipalUseCase) {
	t.Helper()

	gin.SetMode(gin.TestMode)

	mockUseCase := new(mocks.MockPrincipalUseCase)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return NewPrincipalHandler(mockUseCase, logger), mockUseCase
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

func TestPrincipalHandler_ResolveHandler(t *testing.T) {
	t.Run("Success_ValidRequest", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		principal := &principalDomain.Principal{
			ID:          uuid.Must(uuid.NewV7()),
			AccountRef:  "acct-1",
			Kind:        principalDomain.KindHuman,
			DisplayName: "Ada",
			Active:      true,
			CreatedAt:   time.Now().UTC(),
		}

		mockUseCase.On("Resolve", mock.Anything, principalDomain.ResolveInput{
			AccountRef:  "acct-1",
			Kind:        principalDomain.KindHuman,
			DisplayName: "Ada",
		}).Return(principal, nil).Once()

		request := dto.ResolvePrincipalRequest{
			AccountID:   "acct-1",
			Kind:        "human",
			DisplayName: "Ada",
		}
		c, w := createTestContext(http.MethodPost, "/v1/principals/resolve", request)

		handler.ResolveHandler(c)

		assert.Equal(t, http.StatusOK, w.Code)

		var response dto.PrincipalResponse
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, principal.ID.String(), response.PrincipalID)
		assert.Equal(t, "acct-1", response.AccountID)
		assert.True(t, response.Active)
	})

	t.Run("Error_InvalidKind", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		request := dto.ResolvePrincipalRequest{
			AccountID: "acct-1",
			Kind:      "alien",
		}
		c, w := createTestContext(http.MethodPost, "/v1/principals/resolve", request)

		handler.ResolveHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_MissingAccountID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		request := dto.ResolvePrincipalRequest{Kind: "human"}
		c, w := createTestContext(http.MethodPost, "/v1/principals/resolve", request)

		handler.ResolveHandler(c)

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	})

	t.Run("Error_UseCaseFailure", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		mockUseCase.On("Resolve", mock.Anything, mock.Anything).
			Return(nil, assert.AnError).Once()

		request := dto.ResolvePrincipalRequest{AccountID: "acct-1", Kind: "service"}
		c, w := createTestContext(http.MethodPost, "/v1/principals/resolve", request)

		handler.ResolveHandler(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestPrincipalHandler_DeactivateHandler(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		principalID := uuid.Must(uuid.NewV7())
		mockUseCase.On("Deactivate", mock.Anything, principalID).Return(nil).Once()

		c, w := createTestContext(http.MethodPost, "/v1/principals/"+principalID.String()+"/deactivate", nil)
		c.Params = gin.Params{{Key: "id", Value: principalID.String()}}

		handler.DeactivateHandler(c)
		c.Writer.WriteHeaderNow()

		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		handler, mockUseCase := setupTestHandler(t)

		principalID := uuid.Must(uuid.NewV7())
		mockUseCase.On("Deactivate", mock.Anything, principalID).
			Return(principalDomain.ErrPrincipalNotFound).Once()

		c, w := createTestContext(http.MethodPost, "/v1/principals/"+principalID.String()+"/deactivate", nil)
		c.Params = gin.Params{{Key: "id", Value: principalID.String()}}

		handler.DeactivateHandler(c)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("Error_MalformedID", func(t *testing.T) {
		handler, _ := setupTestHandler(t)

		c, w := createTestContext(http.MethodPost, "/v1/principals/nope/deactivate", nil)
		c.Params = gin.Params{{Key: "id", Value: "nope"}}

		handler.DeactivateHandler(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
