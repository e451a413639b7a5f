package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
)

// ContentService defines the service port for published-content operations.
// Implemented by the application layer; called by inbound adapters (handlers
// and the route-content middleware).
type ContentService interface {
	// GetByRoute returns the published content item at the given route path.
	// Returns domain.ErrNotFound if no item is published at that route.
	GetByRoute(ctx context.Context, route string) (content.Content, error)

	// GetByKey returns the published content item with the given key.
	// Returns domain.ErrNotFound if the key is unknown.
	GetByKey(ctx context.Context, key uuid.UUID) (content.Content, error)

	// List returns all published content items, ordered by route.
	List(ctx context.Context) ([]content.Content, error)

	// Children returns the direct children of the item with the given key,
	// hydrated from the upstream API concurrently. Returns
	// domain.ErrNotFound if the parent key is unknown.
	Children(ctx context.Context, key uuid.UUID) ([]content.Content, error)

	// Refresh pulls the full published set from the upstream content API
	// and atomically replaces the in-memory index. Returns the number of
	// items indexed.
	Refresh(ctx context.Context) (int, error)
}

// ContentIndex defines the port for the in-memory published-content index.
// Implemented by the memory store adapter; called by the application layer.
type ContentIndex interface {
	// ByRoute looks up an item by its route path.
	ByRoute(route string) (content.Content, bool)

	// ByKey looks up an item by its key.
	ByKey(key uuid.UUID) (content.Content, bool)

	// All returns every indexed item, ordered by route.
	All() []content.Content

	// Replace atomically swaps the whole index for the given items.
	Replace(items []content.Content)

	// Len returns the number of indexed items.
	Len() int
}
