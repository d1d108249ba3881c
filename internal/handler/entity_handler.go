package handler

import (
	"net/http"
	"strings"

	"pdf-text-pipeline/internal/domain"
	"pdf-text-pipeline/internal/service"
)

// EntityHandler handles named-entity extraction requests.
type EntityHandler struct {
	entityService *service.EntityService
	logger        domain.Logger
}

// NewEntityHandler creates a new entity handler
func NewEntityHandler(entityService *service.EntityService, logger domain.Logger) *EntityHandler {
	return &EntityHandler{
		entityService: entityService,
		logger:        logger,
	}
}

// Extract returns entities in the posted text grouped by category.
func (h *EntityHandler) Extract(w http.ResponseWriter, r *http.Request) {
	var req domain.TextRequest
	if err := decodeJSONBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}

	entities, err := h.entityService.Extract(r.Context(), req.Text)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, entities)
}
