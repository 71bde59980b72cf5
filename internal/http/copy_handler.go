package http

import (
	"io"
	"net/http"

	"github.com/promoforge/promoforge/internal/domain"
	"github.com/promoforge/promoforge/internal/http/middleware"
	"github.com/promoforge/promoforge/pkg/logger"
)

// maxCopyPayload caps the copy import body at 1 MiB; pasted copy JSON is
// orders of magnitude smaller.
const maxCopyPayload = 1 << 20

type CopyHandler struct {
	service domain.CopyService
	auth    *middleware.AuthConfig
	logger  logger.Logger
}

func NewCopyHandler(service domain.CopyService, auth *middleware.AuthConfig, logger logger.Logger) *CopyHandler {
	return &CopyHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *CopyHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()

	mux.Handle("/api/copy.import", requireAuth(http.HandlerFunc(h.handleImport)))
}

func (h *CopyHandler) handleImport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxCopyPayload))
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to read request body")
		WriteJSONError(w, "Failed to read request body", http.StatusBadRequest)
		return
	}

	result, err := h.service.ImportCopy(raw)
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
