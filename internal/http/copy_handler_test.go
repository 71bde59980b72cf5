package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promoforge/promoforge/internal/domain"
	"github.com/promoforge/promoforge/internal/domain/mocks"
	apphttp "github.com/promoforge/promoforge/internal/http"
	"github.com/promoforge/promoforge/internal/http/middleware"
	"github.com/promoforge/promoforge/pkg/logger"
	"github.com/promoforge/promoforge/pkg/render"
)

func setupCopyHandlerTest(t *testing.T) (*mocks.MockCopyService, string, func()) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockCopyService(ctrl)

	auth := middleware.NewAuthMiddleware(testJWTSecret, "")
	handler := apphttp.NewCopyHandler(mockService, auth, logger.NewTestLogger(t))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	server := httptest.NewServer(mux)
	return mockService, server.URL, server.Close
}

func TestCopyHandler_Import(t *testing.T) {
	t.Run("imports copy", func(t *testing.T) {
		mockService, url, cleanup := setupCopyHandlerTest(t)
		defer cleanup()

		payload := []byte(`{"de": {"headline": "Hallo"}}`)
		mockService.EXPECT().ImportCopy(payload).Return(&domain.CopyImport{
			Copy: map[string]render.GeneratedCopy{"de": {Headline: "Hallo"}},
		}, nil)

		resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, url+"/api/copy.import", payload))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body domain.CopyImport
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "Hallo", body.Copy["de"].Headline)
	})

	t.Run("invalid payload returns 400", func(t *testing.T) {
		mockService, url, cleanup := setupCopyHandlerTest(t)
		defer cleanup()

		payload := []byte(`not json`)
		mockService.EXPECT().ImportCopy(payload).
			Return(nil, &domain.ValidationError{Message: "not valid JSON"})

		resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, url+"/api/copy.import", payload))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("rejects GET", func(t *testing.T) {
		_, url, cleanup := setupCopyHandlerTest(t)
		defer cleanup()

		resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodGet, url+"/api/copy.import", nil))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	})
}
