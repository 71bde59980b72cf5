package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promoforge/promoforge/internal/domain/mocks"
	apphttp "github.com/promoforge/promoforge/internal/http"
	"github.com/promoforge/promoforge/internal/http/middleware"
	"github.com/promoforge/promoforge/pkg/cache"
	"github.com/promoforge/promoforge/pkg/logger"
	"github.com/promoforge/promoforge/pkg/ratelimiter"
	"github.com/promoforge/promoforge/pkg/render"
)

const testPreviewSecret = "preview-secret"

func setupPreviewHandlerTest(t *testing.T) (*mocks.MockRenderService, string, func()) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockRenderService(ctrl)

	auth := middleware.NewAuthMiddleware(testJWTSecret, "")
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)

	limiter := ratelimiter.NewRateLimiter()
	limiter.SetPolicy("preview", 100, time.Minute)
	t.Cleanup(limiter.Stop)

	pageCache := cache.NewInMemoryCache(time.Minute)
	t.Cleanup(pageCache.Stop)

	handler := apphttp.NewPreviewHandler(mockService, auth, testPreviewSecret, server.URL,
		limiter, pageCache, logger.NewTestLogger(t))
	handler.RegisterRoutes(mux)

	return mockService, server.URL, server.Close
}

func TestPreviewHandler_ShareAndOpen(t *testing.T) {
	mockService, url, cleanup := setupPreviewHandlerTest(t)
	defer cleanup()

	resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, url+"/api/render.share", previewPayload(t)))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.True(t, strings.HasPrefix(body.URL, url+"/preview?"))

	// The share link works without any Authorization header
	mockService.EXPECT().RenderPreview(gomock.Any(), gomock.Any()).
		Return(&render.Result{HTML: "<table>shared</table>", CSS: ".hero {}"}, nil)

	previewResp, err := http.Get(body.URL)
	require.NoError(t, err)
	defer previewResp.Body.Close()
	require.Equal(t, http.StatusOK, previewResp.StatusCode)
	assert.Contains(t, previewResp.Header.Get("Content-Type"), "text/html")

	page, err := io.ReadAll(previewResp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(page), "<table>shared</table>")
	assert.Contains(t, string(page), ".hero {}")

	// A second open of the same link is served from cache; RenderPreview
	// is expected exactly once above.
	cachedResp, err := http.Get(body.URL)
	require.NoError(t, err)
	defer cachedResp.Body.Close()
	require.Equal(t, http.StatusOK, cachedResp.StatusCode)

	cached, err := io.ReadAll(cachedResp.Body)
	require.NoError(t, err)
	assert.Equal(t, string(page), string(cached))
}

func TestPreviewHandler_RateLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	mockService := mocks.NewMockRenderService(ctrl)

	auth := middleware.NewAuthMiddleware(testJWTSecret, "")
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	limiter := ratelimiter.NewRateLimiter()
	limiter.SetPolicy("preview", 2, time.Minute)
	t.Cleanup(limiter.Stop)

	handler := apphttp.NewPreviewHandler(mockService, auth, testPreviewSecret, server.URL,
		limiter, nil, logger.NewTestLogger(t))
	handler.RegisterRoutes(mux)

	// Both allowed opens fail signature verification, which still counts
	// against the limit
	for i := 0; i < 2; i++ {
		resp, err := http.Get(server.URL + "/preview?payload=e30&sig=0000000000000000")
		require.NoError(t, err)
		resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	}

	resp, err := http.Get(server.URL + "/preview?payload=e30&sig=0000000000000000")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
}

func TestPreviewHandler_Open(t *testing.T) {
	t.Run("tampered payload is rejected", func(t *testing.T) {
		_, url, cleanup := setupPreviewHandlerTest(t)
		defer cleanup()

		resp, err := http.DefaultClient.Do(authedRequest(t, http.MethodPost, url+"/api/render.share", previewPayload(t)))
		require.NoError(t, err)
		defer resp.Body.Close()

		var body struct {
			URL string `json:"url"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

		tampered := strings.Replace(body.URL, "payload=", "payload=x", 1)
		previewResp, err := http.Get(tampered)
		require.NoError(t, err)
		defer previewResp.Body.Close()
		assert.NotEqual(t, http.StatusOK, previewResp.StatusCode)
	})

	t.Run("missing signature returns 400", func(t *testing.T) {
		_, url, cleanup := setupPreviewHandlerTest(t)
		defer cleanup()

		resp, err := http.Get(url + "/preview?payload=abc")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("bad signature returns 403", func(t *testing.T) {
		_, url, cleanup := setupPreviewHandlerTest(t)
		defer cleanup()

		resp, err := http.Get(url + "/preview?payload=e30&sig=0000000000000000")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	})

	t.Run("share requires auth", func(t *testing.T) {
		_, url, cleanup := setupPreviewHandlerTest(t)
		defer cleanup()

		resp, err := http.Post(url+"/api/render.share", "application/json", strings.NewReader("{}"))
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	})
}
