// Package handlers provides HTTP request handlers for the service's API endpoints.
package handlers

import (
	"net/http"

	"github.com/jsamuelsen11/content-render-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/content-render-service/internal/ports"
)

// ContentHandler handles HTTP requests for published-content lookup and
// index refresh operations.
type ContentHandler struct {
	svc ports.ContentService
}

// NewContentHandler creates a new ContentHandler with the given service port.
func NewContentHandler(svc ports.ContentService) *ContentHandler {
	return &ContentHandler{svc: svc}
}

// ListContent handles GET /api/v1/content.
func (h *ContentHandler) ListContent(w http.ResponseWriter, r *http.Request) {
	items, err := h.svc.List(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToContentListResponse(items))
}

// GetContent handles GET /api/v1/content/{key}.
func (h *ContentHandler) GetContent(w http.ResponseWriter, r *http.Request) {
	key, err := parseKey(r, "key")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	item, err := h.svc.GetByKey(r.Context(), key)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToContentResponse(item))
}

// GetChildren handles GET /api/v1/content/{key}/children.
func (h *ContentHandler) GetChildren(w http.ResponseWriter, r *http.Request) {
	key, err := parseKey(r, "key")
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	children, err := h.svc.Children(r.Context(), key)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToContentListResponse(children))
}

// RefreshIndex handles POST /api/v1/content/refresh.
func (h *ContentHandler) RefreshIndex(w http.ResponseWriter, r *http.Request) {
	indexed, err := h.svc.Refresh(r.Context())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.RefreshResponse{Indexed: indexed})
}
