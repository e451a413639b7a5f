package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
)

// ContentAPIClient defines the client port for the upstream content delivery
// API. Implemented by the ACL adapter; called by the application layer.
// The ACL translates between the upstream "document" representation and our
// domain content nodes.
type ContentAPIClient interface {
	// FetchPublished returns the full set of published documents.
	// Used by Refresh to rebuild the in-memory index.
	FetchPublished(ctx context.Context) ([]content.Content, error)

	// FetchByKey returns a single published document by key.
	// Returns domain.ErrNotFound if the upstream API returns 404.
	FetchByKey(ctx context.Context, key uuid.UUID) (content.Content, error)

	// FetchChildKeys returns the keys of the direct children of the
	// document with the given key, in tree order.
	// Returns domain.ErrNotFound if the parent does not exist.
	FetchChildKeys(ctx context.Context, key uuid.UUID) ([]uuid.UUID, error)
}
