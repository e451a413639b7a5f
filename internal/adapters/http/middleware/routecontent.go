package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/content-render-service/internal/app/reqcache"
	"github.com/jsamuelsen11/content-render-service/internal/binding"
	"github.com/jsamuelsen11/content-render-service/internal/domain"
	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
	"github.com/jsamuelsen11/content-render-service/internal/platform/logging"
	"github.com/jsamuelsen11/content-render-service/internal/ports"
)

// RouteContent returns middleware that resolves the request path to a
// published content item and stores it in the request context for the model
// binder. A path with no published content passes through with no route
// value; the handler decides what absence means.
//
// Lookups go through the request-scoped cache when RequestCache installed
// one, so a handler re-resolving the same route within the request does not
// hit the index twice.
func RouteContent(svc ports.ContentService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			item, err := lookupRoute(ctx, svc, r.URL.Path)
			switch {
			case err == nil:
				ctx = binding.WithRouteValue(ctx, item)
				r = r.WithContext(ctx)
			case !errors.Is(err, domain.ErrNotFound):
				logging.FromContext(ctx).WarnContext(ctx, "route content lookup failed",
					slog.String("route", r.URL.Path),
					slog.Any("error", err),
				)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// lookupRoute resolves the route, memoized per request when a cache is present.
func lookupRoute(ctx context.Context, svc ports.ContentService, route string) (content.Content, error) {
	fetch := func(ctx context.Context) (content.Content, error) {
		return svc.GetByRoute(ctx, route)
	}

	if rc, ok := reqcache.FromContext(ctx); ok {
		return reqcache.GetOrFetch(rc, "route:"+route, fetch)
	}
	return fetch(ctx)
}
