package handlers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jsamuelsen11/content-render-service/internal/adapters/http/dto"
	"github.com/jsamuelsen11/content-render-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/content-render-service/internal/domain"
	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
)

// serveWithKey dispatches through a chi router so URL params resolve.
func serveWithKey(h http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	r := chi.NewRouter()
	r.MethodFunc(method, "/api/v1/content/{key}", h)
	r.MethodFunc(method, "/api/v1/content/{key}/children", h)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(method, target, nil)
	r.ServeHTTP(rec, req)
	return rec
}

func TestListContent(t *testing.T) {
	t.Parallel()

	svc := &fakeContentService{
		listFn: func(context.Context) ([]content.Content, error) {
			return []content.Content{newTestNode(t, "/a"), newTestNode(t, "/b")}, nil
		},
	}
	h := handlers.NewContentHandler(svc)

	rec := httptest.NewRecorder()
	h.ListContent(rec, httptest.NewRequest(http.MethodGet, "/api/v1/content", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp dto.ContentListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 2 {
		t.Errorf("Count = %d, want 2", resp.Count)
	}
}

func TestGetContent(t *testing.T) {
	t.Parallel()

	node := newTestNode(t, "/a")
	svc := &fakeContentService{
		getByKeyFn: func(_ context.Context, key uuid.UUID) (content.Content, error) {
			if key != node.Key() {
				return nil, domain.ErrNotFound
			}
			return node, nil
		},
	}
	h := handlers.NewContentHandler(svc)

	rec := serveWithKey(h.GetContent, http.MethodGet, "/api/v1/content/"+node.Key().String())

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}

	var resp dto.ContentResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Key != node.Key().String() {
		t.Errorf("Key = %q, want %q", resp.Key, node.Key().String())
	}
}

func TestGetContent_InvalidKey(t *testing.T) {
	t.Parallel()

	h := handlers.NewContentHandler(&fakeContentService{})

	rec := serveWithKey(h.GetContent, http.MethodGet, "/api/v1/content/not-a-uuid")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Errorf("Content-Type = %q, want application/problem+json", ct)
	}
}

func TestGetContent_NotFound(t *testing.T) {
	t.Parallel()

	h := handlers.NewContentHandler(&fakeContentService{})

	rec := serveWithKey(h.GetContent, http.MethodGet, "/api/v1/content/"+uuid.NewString())

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestGetChildren(t *testing.T) {
	t.Parallel()

	parent := newTestNode(t, "/parent")
	svc := &fakeContentService{
		childrenFn: func(_ context.Context, key uuid.UUID) ([]content.Content, error) {
			if key != parent.Key() {
				return nil, domain.ErrNotFound
			}
			return []content.Content{newTestNode(t, "/parent/a")}, nil
		},
	}
	h := handlers.NewContentHandler(svc)

	rec := serveWithKey(h.GetChildren, http.MethodGet,
		"/api/v1/content/"+parent.Key().String()+"/children")

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200; body = %s", rec.Code, rec.Body.String())
	}

	var resp dto.ContentListResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Count != 1 {
		t.Errorf("Count = %d, want 1", resp.Count)
	}
}

func TestRefreshIndex(t *testing.T) {
	t.Parallel()

	svc := &fakeContentService{
		refreshFn: func(context.Context) (int, error) { return 7, nil },
	}
	h := handlers.NewContentHandler(svc)

	rec := httptest.NewRecorder()
	h.RefreshIndex(rec, httptest.NewRequest(http.MethodPost, "/api/v1/content/refresh", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var resp dto.RefreshResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Indexed != 7 {
		t.Errorf("Indexed = %d, want 7", resp.Indexed)
	}
}

func TestRefreshIndex_UpstreamUnavailable(t *testing.T) {
	t.Parallel()

	svc := &fakeContentService{
		refreshFn: func(context.Context) (int, error) {
			return 0, domain.ErrUnavailable
		},
	}
	h := handlers.NewContentHandler(svc)

	rec := httptest.NewRecorder()
	h.RefreshIndex(rec, httptest.NewRequest(http.MethodPost, "/api/v1/content/refresh", nil))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", rec.Code)
	}
}
