// Package app provides application services that orchestrate use cases by
// coordinating between domain logic and infrastructure through port interfaces.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/content-render-service/internal/app/fanout"
	"github.com/jsamuelsen11/content-render-service/internal/domain"
	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
	"github.com/jsamuelsen11/content-render-service/internal/ports"
)

// defaultFanoutWorkers bounds concurrent upstream fetches when hydrating
// children and no explicit worker count is configured.
const defaultFanoutWorkers = 4

// Compile-time check that ContentService implements ports.ContentService.
var _ ports.ContentService = (*ContentService)(nil)

// ContentService implements ports.ContentService by serving reads from the
// in-memory index and falling back to the upstream content API for items
// the index does not hold. It contains orchestration only, no business logic.
type ContentService struct {
	index         ports.ContentIndex
	client        ports.ContentAPIClient
	logger        *slog.Logger
	fanoutWorkers int
}

// NewContentService creates a ContentService. fanoutWorkers bounds the
// concurrency of child hydration; values below 1 fall back to the default.
func NewContentService(index ports.ContentIndex, client ports.ContentAPIClient, fanoutWorkers int, logger *slog.Logger) *ContentService {
	if fanoutWorkers < 1 {
		fanoutWorkers = defaultFanoutWorkers
	}
	return &ContentService{
		index:         index,
		client:        client,
		logger:        logger,
		fanoutWorkers: fanoutWorkers,
	}
}

// GetByRoute returns the published content item at the given route path.
func (s *ContentService) GetByRoute(ctx context.Context, route string) (content.Content, error) {
	if c, ok := s.index.ByRoute(route); ok {
		return c, nil
	}
	return nil, fmt.Errorf("no content published at %q: %w", route, domain.ErrNotFound)
}

// GetByKey returns the published content item with the given key, checking
// the index first and falling back to the upstream API.
func (s *ContentService) GetByKey(ctx context.Context, key uuid.UUID) (content.Content, error) {
	if c, ok := s.index.ByKey(key); ok {
		return c, nil
	}

	c, err := s.client.FetchByKey(ctx, key)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch content",
			slog.String("operation", "GetByKey"),
			slog.String("key", key.String()),
			slog.Any("error", err),
		)
		return nil, err
	}
	return c, nil
}

// List returns all published content items, ordered by route.
func (s *ContentService) List(_ context.Context) ([]content.Content, error) {
	return s.index.All(), nil
}

// Children returns the direct children of the item with the given key.
// Child keys come from the upstream API; each child is then hydrated
// concurrently (index hit or upstream fetch) with bounded fan-out. Any
// single hydration failure fails the whole call.
func (s *ContentService) Children(ctx context.Context, key uuid.UUID) ([]content.Content, error) {
	if _, err := s.GetByKey(ctx, key); err != nil {
		return nil, fmt.Errorf("verifying parent: %w", err)
	}

	childKeys, err := s.client.FetchChildKeys(ctx, key)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch child keys",
			slog.String("operation", "Children"),
			slog.String("key", key.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	results := fanout.Run(ctx, s.fanoutWorkers, childKeys,
		func(ctx context.Context, childKey uuid.UUID) (content.Content, error) {
			return s.GetByKey(ctx, childKey)
		})

	children := make([]content.Content, len(results))
	for i, res := range results {
		if res.Err != nil {
			return nil, fmt.Errorf("hydrating child %s: %w", childKeys[i], res.Err)
		}
		children[i] = res.Value
	}
	return children, nil
}

// Refresh pulls the full published set from the upstream content API and
// atomically replaces the in-memory index.
func (s *ContentService) Refresh(ctx context.Context) (int, error) {
	s.logger.InfoContext(ctx, "refreshing content index")

	items, err := s.client.FetchPublished(ctx)
	if err != nil {
		s.logger.ErrorContext(ctx, "failed to fetch published content",
			slog.String("operation", "Refresh"),
			slog.Any("error", err),
		)
		return 0, err
	}

	s.index.Replace(items)

	s.logger.InfoContext(ctx, "content index refreshed", slog.Int("items", len(items)))
	return len(items), nil
}
