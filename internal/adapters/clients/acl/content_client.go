package acl

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/content-render-service/internal/adapters/clients/acl/document"
	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
	"github.com/jsamuelsen11/content-render-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/content-render-service/internal/ports"
)

// Compile-time interface check.
var _ ports.ContentAPIClient = (*ContentClient)(nil)

// ContentClient is the outbound adapter for the upstream content delivery
// API. It implements [ports.ContentAPIClient].
//
// All methods translate the upstream document representation to domain
// nodes via the [document] subpackage. HTTP errors are mapped to domain
// errors (ErrNotFound, ErrUnavailable, etc.) by [TranslateHTTPError].
//
// The underlying [httpclient.Client] provides circuit breaking, retry with
// exponential backoff, OpenTelemetry tracing, and health checking
// ([ports.HealthChecker]) for every outbound call.
type ContentClient struct {
	req    *Requester
	logger *slog.Logger
}

// NewContentClient creates a ContentClient that sends requests through the
// given [httpclient.Client]. The client's BaseURL should point to the
// upstream delivery API root (e.g. "https://cms.example.com"). The logger
// is used for error-level diagnostics on failed or unexpected responses.
func NewContentClient(client *httpclient.Client, logger *slog.Logger) *ContentClient {
	return &ContentClient{
		req:    NewRequester(client, logger),
		logger: logger,
	}
}

// FetchPublished returns the full published document set from
// GET /api/v1/documents. Used to rebuild the in-memory index.
func (c *ContentClient) FetchPublished(ctx context.Context) ([]content.Content, error) {
	var dto document.DocumentListResponseDTO
	if err := c.req.Get(ctx, "/api/v1/documents", &dto); err != nil {
		return nil, err
	}
	return document.ToDomainContentList(dto)
}

// FetchByKey returns a single published document from
// GET /api/v1/documents/{key}. Returns [domain.ErrNotFound] if the upstream
// API returns 404.
func (c *ContentClient) FetchByKey(ctx context.Context, key uuid.UUID) (content.Content, error) {
	path := fmt.Sprintf("/api/v1/documents/%s", key)

	var dto document.DocumentDTO
	if err := c.req.Get(ctx, path, &dto); err != nil {
		return nil, err
	}
	return document.ToDomainContent(&dto)
}

// FetchChildKeys returns the keys of the direct children of a document from
// GET /api/v1/documents/{key}/children, in upstream tree order. Returns
// [domain.ErrNotFound] if the parent does not exist.
func (c *ContentClient) FetchChildKeys(ctx context.Context, key uuid.UUID) ([]uuid.UUID, error) {
	path := fmt.Sprintf("/api/v1/documents/%s/children", key)

	var dto document.ChildKeysResponseDTO
	if err := c.req.Get(ctx, path, &dto); err != nil {
		return nil, err
	}
	return document.ToDomainKeys(dto)
}
