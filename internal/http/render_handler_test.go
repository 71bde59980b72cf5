package http_test

import (
	"encoding/json"
	"io"
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

func setupRenderHandlerTest(t *testing.T) (*mocks.MockRenderService, string, func()) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockRenderService(ctrl)

	auth := middleware.NewAuthMiddleware(testJWTSecret, "")
	handler := apphttp.NewRenderHandler(mockService, auth, logger.NewTestLogger(t))
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	server := httptest.NewServer(mux)
	return mockService, server.URL, server.Close
}

func previewPayload(t *testing.T) []byte {
	payload, err := json.Marshal(map[string]interface{}{
		"template_id": "tpl-1",
		"market_code": "de",
		"inputs": map[string]interface{}{
			"brand_key":   "lumina",
			"theme_color": "#19a981",
		},
	})
	require.NoError(t, err)
	return payload
}

func TestRenderHandler_Preview(t *testing.T) {
	t.Run("renders", func(t *testing.T) {
		mockService, url, cleanup := setupRenderHandlerTest(t)
		defer cleanup()

		mockService.EXPECT().RenderPreview(gomock.Any(), gomock.Any()).
			Return(&render.Result{HTML: "<table></table>", CSS: "a {}", AltBody: "alt"}, nil)

		resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, url+"/api/render.preview", previewPayload(t)))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body struct {
			Result render.Result `json:"result"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, "<table></table>", body.Result.HTML)
	})

	t.Run("missing market code returns 400", func(t *testing.T) {
		_, url, cleanup := setupRenderHandlerTest(t)
		defer cleanup()

		payload, _ := json.Marshal(map[string]interface{}{
			"template_id": "tpl-1",
			"inputs":      map[string]interface{}{"brand_key": "lumina"},
		})
		resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, url+"/api/render.preview", payload))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("missing template returns 404", func(t *testing.T) {
		mockService, url, cleanup := setupRenderHandlerTest(t)
		defer cleanup()

		mockService.EXPECT().RenderPreview(gomock.Any(), gomock.Any()).
			Return(nil, &domain.ErrTemplateNotFound{Message: "template not found"})

		resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, url+"/api/render.preview", previewPayload(t)))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestRenderHandler_Export(t *testing.T) {
	mockService, url, cleanup := setupRenderHandlerTest(t)
	defer cleanup()

	archive := []byte("PK\x03\x04fake")
	mockService.EXPECT().ExportZip(gomock.Any(), gomock.Any()).Return(archive, nil)

	payload, _ := json.Marshal(map[string]interface{}{
		"template_id": "tpl-1",
		"markets":     []string{"de", "fr"},
		"inputs":      map[string]interface{}{"brand_key": "lumina"},
	})
	resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, url+"/api/render.export", payload))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/zip", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "campaign-tpl-1-")

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, archive, body)
}

func TestRenderHandler_SendTest(t *testing.T) {
	t.Run("sends", func(t *testing.T) {
		mockService, url, cleanup := setupRenderHandlerTest(t)
		defer cleanup()

		mockService.EXPECT().SendTest(gomock.Any(), gomock.Any()).Return(nil)

		payload, _ := json.Marshal(map[string]interface{}{
			"template_id": "tpl-1",
			"market_code": "de",
			"to":          "operator@example.com",
			"inputs":      map[string]interface{}{"brand_key": "lumina"},
		})
		resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, url+"/api/render.test", payload))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("bad address returns 400", func(t *testing.T) {
		_, url, cleanup := setupRenderHandlerTest(t)
		defer cleanup()

		payload, _ := json.Marshal(map[string]interface{}{
			"template_id": "tpl-1",
			"market_code": "de",
			"to":          "not-an-email",
			"inputs":      map[string]interface{}{"brand_key": "lumina"},
		})
		resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, url+"/api/render.test", payload))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
