// Package http exposes the RPC-style JSON API: /api/templates.*,
// /api/render.* and /api/copy.*.
package http

import (
	"encoding/json"
	"net/http"

	"github.com/promoforge/promoforge/internal/domain"
	"github.com/promoforge/promoforge/internal/http/middleware"
	"github.com/promoforge/promoforge/pkg/logger"
)

type TemplateHandler struct {
	service domain.TemplateService
	auth    *middleware.AuthConfig
	logger  logger.Logger
}

func NewTemplateHandler(service domain.TemplateService, auth *middleware.AuthConfig, logger logger.Logger) *TemplateHandler {
	return &TemplateHandler{
		service: service,
		auth:    auth,
		logger:  logger,
	}
}

func (h *TemplateHandler) RegisterRoutes(mux *http.ServeMux) {
	requireAuth := h.auth.RequireAuth()

	// Register RPC-style endpoints with dot notation
	mux.Handle("/api/templates.list", requireAuth(http.HandlerFunc(h.handleList)))
	mux.Handle("/api/templates.get", requireAuth(http.HandlerFunc(h.handleGet)))
	mux.Handle("/api/templates.create", requireAuth(http.HandlerFunc(h.handleCreate)))
	mux.Handle("/api/templates.update", requireAuth(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("/api/templates.delete", requireAuth(http.HandlerFunc(h.handleDelete)))
}

func (h *TemplateHandler) handleList(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.GetTemplatesRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	templates, err := h.service.GetTemplates(r.Context(), req.Name)
	if err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to get templates")
		WriteJSONError(w, "Failed to get templates", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"templates": templates,
	})
}

func (h *TemplateHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.GetTemplateRequest
	if err := req.FromURLParams(r.URL.Query()); err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	template, err := h.service.GetTemplateByID(r.Context(), req.ID, req.Version)
	if err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			WriteJSONError(w, "Template not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to get template")
		WriteJSONError(w, "Failed to get template", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"template": template,
	})
}

func (h *TemplateHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.CreateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	template, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	template.CreatedBy = middleware.OperatorFromContext(r.Context())

	if err := h.service.CreateTemplate(r.Context(), template); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to create template")
		WriteJSONError(w, "Failed to create template", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"template": template,
	})
}

func (h *TemplateHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	template, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}
	template.CreatedBy = middleware.OperatorFromContext(r.Context())

	if err := h.service.UpdateTemplate(r.Context(), template); err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			WriteJSONError(w, "Template not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to update template")
		WriteJSONError(w, "Failed to update template", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"template": template,
	})
}

func (h *TemplateHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req domain.DeleteTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.WithField("error", err.Error()).Error("Failed to decode request body")
		WriteJSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id, err := req.Validate()
	if err != nil {
		WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.service.DeleteTemplate(r.Context(), id); err != nil {
		if _, ok := err.(*domain.ErrTemplateNotFound); ok {
			WriteJSONError(w, "Template not found", http.StatusNotFound)
			return
		}
		h.logger.WithField("error", err.Error()).Error("Failed to delete template")
		WriteJSONError(w, "Failed to delete template", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status": "deleted",
	})
}
