package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/promoforge/promoforge/internal/domain"
	"github.com/promoforge/promoforge/internal/http/middleware"
	"github.com/promoforge/promoforge/pkg/logger"
)

type RenderHandler struct {
	service domain.RenderService
	auth    *middleware.AuthConfig
	logger  logger.Logger
}

func NewRenderHandler(service domain.RenderService, auth *middleware.AuthConfig, logger logger.Logger) *RenderHandler {
	return &RenderHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *RenderHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()

	mux.Handle("/api/render.preview", requireAuth(http.HandlerFunc(h.handlePreview)))
	mux.Handle("/api/render.campaign", requireAuth(http.HandlerFunc(h.handleCampaign)))
	mux.Handle("/api/render.export", requireAuth(http.HandlerFunc(h.handleExport)))
	mux.Handle("/api/render.test", requireAuth(http.HandlerFunc(h.handleSendTest)))
}

func (h *RenderHandler) handlePreview(w http.ResponseWriter, r *http.Request) {
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

	result, err := h.service.RenderPreview(r.Context(), &req)
	if err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			WriteJSONError(w, "Template not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to render preview")
		WriteJSONError(w, "Failed to render preview", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"result": result,
	})
}

func (h *RenderHandler) handleCampaign(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := h.decodeCampaignRequest(w, r)
	if !ok {
		return
	}

	renders, err := h.service.RenderCampaign(r.Context(), req)
	if err != nil {
		h.writeCampaignError(w, err, "Failed to render campaign")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"renders": renders,
	})
}

func (h *RenderHandler) handleExport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	req, ok := h.decodeCampaignRequest(w, r)
	if !ok {
		return
	}

	archive, err := h.service.ExportZip(r.Context(), req)
	if err != nil {
		h.writeCampaignError(w, err, "Failed to export campaign")
		return
	}

	filename := fmt.Sprintf("campaign-%s-%s.zip", req.TemplateID, time.Now().UTC().Format("20060102-150405"))
	writeZIP(w, filename, archive)
}

func (h *RenderHandler) handleSendTest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.SendTestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.SendTest(r.Context(), &req); err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			WriteJSONError(w, "Template not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to send test email")
		WriteJSONError(w, "Failed to send test email", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "sent",
	})
}

func (h *RenderHandler) decodeCampaignRequest(w http.ResponseWriter, r *http.Request) (*domain.RenderCampaignRequest, bool) {
	var req domain.RenderCampaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return nil, false
	}

	if err := req.Validate(); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return nil, false
	}

	return &req, true
}

func (h *RenderHandler) writeCampaignError(w http.ResponseWriter, err error, fallbackMessage string) {
	if _, ok := err.(*domain.ErrTemplateNotFound); ok {
		WriteJSONError(w, "Template not found", http.StatusNotFound)
		return
	}
	h.logger.WithField("error", err.Error()).Error(fallbackMessage)
	WriteJSONError(w, err.Error(), http.StatusUnprocessableEntity)
}
