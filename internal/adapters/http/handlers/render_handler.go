package handlers

import (
	"fmt"
	"net/http"

	"github.com/jsamuelsen11/content-render-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/content-render-service/internal/binding"
	"github.com/jsamuelsen11/content-render-service/internal/domain"
	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
)

// RenderHandler handles the catch-all render route and document preview:
// both bind a content item through the model resolver and serialize the
// resulting view model.
type RenderHandler struct {
	resolver *binding.Resolver
}

// NewRenderHandler creates a new RenderHandler with the given resolver.
func NewRenderHandler(resolver *binding.Resolver) *RenderHandler {
	return &RenderHandler{resolver: resolver}
}

// Render handles GET /* for routes resolved by the route-content middleware.
// A route with no published content yields 404; a binding failure yields
// the Problem Details mapping for the binding error.
func (h *RenderHandler) Render(w http.ResponseWriter, r *http.Request) {
	shape := binding.ModelShape()

	bound, ok, err := h.resolver.BindRequest(r, shape)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	if !ok {
		dto.WriteErrorResponse(w, r,
			fmt.Errorf("content at route %q: %w", r.URL.Path, domain.ErrNotFound))
		return
	}

	writeRenderResponse(w, r, r.URL.Path, shape, bound)
}

// Preview handles POST /api/v1/preview. The request body describes an
// unpublished document; it is materialized as an ephemeral node and bound
// through the same resolver as published content.
func (h *RenderHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	node, err := req.ToNode()
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}

	shape := binding.ModelShape()
	bound, ok, err := h.resolver.Resolve(r.Context(), node, shape)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	if !ok {
		dto.WriteErrorResponse(w, r,
			fmt.Errorf("preview document %q: %w", req.Route, domain.ErrNotFound))
		return
	}

	writeRenderResponse(w, r, req.Route, shape, bound)
}

// writeRenderResponse serializes a bound view model. The bound value always
// carries exactly one content item via the Wrapper capability; anything else
// indicates a resolver shape mismatch and surfaces as a 500.
func writeRenderResponse(w http.ResponseWriter, r *http.Request, route string, shape binding.Shape, bound any) {
	wrapper, ok := bound.(content.Wrapper)
	if !ok {
		dto.WriteErrorResponse(w, r,
			fmt.Errorf("bound value %T carries no content item: %w", bound, domain.ErrModelBinding))
		return
	}

	writeJSON(w, http.StatusOK, dto.ToRenderResponse(route, shape.TargetName(), wrapper.PublishedContent()))
}
