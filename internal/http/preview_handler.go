package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/promoforge/promoforge/internal/domain"
	"github.com/promoforge/promoforge/internal/http/middleware"
	"github.com/promoforge/promoforge/pkg/cache"
	"github.com/promoforge/promoforge/pkg/crypto"
	"github.com/promoforge/promoforge/pkg/logger"
	"github.com/promoforge/promoforge/pkg/ratelimiter"
)

// Share URLs carry a truncated signature; 16 hex characters is plenty for
// links that only expose a render preview.
const previewSignatureLength = 16

// Namespace in the rate limiter for public preview opens.
const previewRateNamespace = "preview"

const previewCacheTTL = time.Minute

// PreviewHandler serves shareable preview links. An operator requests a
// signed URL over the authenticated API; anyone holding the URL can open
// the rendered preview without a session. The public endpoint is rate
// limited per client and rendered pages are cached briefly.
type PreviewHandler struct {
	service     domain.RenderService
	auth        *middleware.AuthConfig
	secret      string
	apiEndpoint string
	limiter     *ratelimiter.RateLimiter
	pageCache   cache.Cache
	logger      logger.Logger
}

func NewPreviewHandler(service domain.RenderService, auth *middleware.AuthConfig, secret, apiEndpoint string,
	limiter *ratelimiter.RateLimiter, pageCache cache.Cache, logger logger.Logger) *PreviewHandler {
	return &PreviewHandler{
		service:     service,
		auth:        auth,
		secret:      secret,
		apiEndpoint: apiEndpoint,
		limiter:     limiter,
		pageCache:   pageCache,
		logger:      logger,
	}
}

func (h *PreviewHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()

	mux.Handle("/api/render.share", requireAuth(http.HandlerFunc(h.handleShare)))
	// Public: authenticated by the HMAC signature in the URL itself
	mux.HandleFunc("/preview", h.handlePreview)
}

func (h *PreviewHandler) handleShare(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.RenderPreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	raw, err := json.Marshal(&req)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to encode preview payload")
		WriteJSONError(w, "Failed to create share link", http.StatusInternalServerError)
		return
	}

	payload := base64.RawURLEncoding.EncodeToString(raw)
	signature := crypto.ComputeHMAC256(raw, h.secret)[:previewSignatureLength]

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"url": fmt.Sprintf("%s/preview?payload=%s&sig=%s", h.apiEndpoint, payload, signature),
	})
}

func (h *PreviewHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if h.limiter != nil && !h.limiter.Allow(previewRateNamespace, clientIP(r)) {
		WriteJSONError(w, "Too many requests", http.StatusTooManyRequests)
		return
	}

	payload := r.URL.Query().Get("payload")
	signature := r.URL.Query().Get("sig")
	if payload == "" || signature == "" {
		WriteJSONError(w, "Missing payload or signature", http.StatusBadRequest)
		return
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		WriteJSONError(w, "Invalid payload encoding", http.StatusBadRequest)
		return
	}

	if !crypto.VerifyHMAC(h.secret, raw, signature, previewSignatureLength) {
		WriteJSONError(w, "Invalid signature", http.StatusForbidden)
		return
	}

	var req domain.RenderPreviewRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		WriteJSONError(w, "Invalid preview payload", http.StatusBadRequest)
		return
	}
	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	page, err := h.renderPage(r, payload+":"+signature, &req)
	if err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			WriteJSONError(w, "Template not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to render shared preview")
		WriteJSONError(w, "Failed to render preview", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, page)
}

// renderPage renders the shared preview, memoized per signed payload so
// repeated opens of a link do not re-run the renderer.
func (h *PreviewHandler) renderPage(r *http.Request, key string, req *domain.RenderPreviewRequest) (string, error) {
	render := func() (interface{}, error) {
		result, err := h.service.RenderPreview(r.Context(), req)
		if err != nil {
			return nil, err
		}
		page := fmt.Sprintf("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<style>\n%s\n</style>\n</head>\n<body style=\"margin:0\">\n%s\n</body>\n</html>\n", result.CSS, result.HTML)
		return page, nil
	}

	if h.pageCache == nil {
		page, err := render()
		if err != nil {
			return "", err
		}
		return page.(string), nil
	}

	page, err := h.pageCache.GetOrSet(key, previewCacheTTL, render)
	if err != nil {
		return "", err
	}
	return page.(string), nil
}

// clientIP extracts the caller address for rate limiting, honoring the
// first X-Forwarded-For hop when present.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		if i := strings.IndexByte(fwd, ','); i >= 0 {
			return strings.TrimSpace(fwd[:i])
		}
		return strings.TrimSpace(fwd)
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
