package handlers_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/content-render-service/internal/domain"
	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
	"github.com/jsamuelsen11/content-render-service/internal/ports"
)

// fakeContentService is a hand-rolled ports.ContentService with per-method
// function fields; unset fields return not-found or zero values.
type fakeContentService struct {
	getByRouteFn func(ctx context.Context, route string) (content.Content, error)
	getByKeyFn   func(ctx context.Context, key uuid.UUID) (content.Content, error)
	listFn       func(ctx context.Context) ([]content.Content, error)
	childrenFn   func(ctx context.Context, key uuid.UUID) ([]content.Content, error)
	refreshFn    func(ctx context.Context) (int, error)
}

var _ ports.ContentService = (*fakeContentService)(nil)

func (f *fakeContentService) GetByRoute(ctx context.Context, route string) (content.Content, error) {
	if f.getByRouteFn != nil {
		return f.getByRouteFn(ctx, route)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeContentService) GetByKey(ctx context.Context, key uuid.UUID) (content.Content, error) {
	if f.getByKeyFn != nil {
		return f.getByKeyFn(ctx, key)
	}
	return nil, domain.ErrNotFound
}

func (f *fakeContentService) List(ctx context.Context) ([]content.Content, error) {
	if f.listFn != nil {
		return f.listFn(ctx)
	}
	return nil, nil
}

func (f *fakeContentService) Children(ctx context.Context, key uuid.UUID) ([]content.Content, error) {
	if f.childrenFn != nil {
		return f.childrenFn(ctx, key)
	}
	return nil, nil
}

func (f *fakeContentService) Refresh(ctx context.Context) (int, error) {
	if f.refreshFn != nil {
		return f.refreshFn(ctx)
	}
	return 0, nil
}

// fakeRegistry is a hand-rolled ports.HealthRegistry returning fixed results.
type fakeRegistry struct {
	results map[string]error
}

var _ ports.HealthRegistry = (*fakeRegistry)(nil)

func (f *fakeRegistry) Register(_ ports.HealthChecker) {}

func (f *fakeRegistry) CheckAll(_ context.Context) map[string]error {
	if f.results == nil {
		return map[string]error{}
	}
	return f.results
}

func newTestNode(t *testing.T, route string) *content.Node {
	t.Helper()

	node, err := content.NewNode(content.NodeSpec{
		Key:         uuid.New(),
		Name:        "Node " + route,
		ContentType: "page",
		URLSegment:  route,
		Route:       route,
		Level:       1,
		Properties:  map[string]any{"title": "Hello"},
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		t.Fatalf("NewNode() error = %v", err)
	}
	return node
}
