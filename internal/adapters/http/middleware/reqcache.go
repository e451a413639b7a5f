package middleware

import (
	"net/http"

	"github.com/jsamuelsen11/content-render-service/internal/app/reqcache"
)

// RequestCache returns middleware that creates a new request-scoped content
// cache for each HTTP request and stores it in the request context.
// Downstream handlers and application services retrieve it via
// reqcache.FromContext(ctx).
//
// This middleware should be registered after CorrelationID (so that the
// cache's embedded context carries request/correlation IDs) and before
// RouteContent (which memoizes its route lookup through the cache).
func RequestCache() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rc := reqcache.New(r.Context())
			ctx := reqcache.WithRequestContext(r.Context(), rc)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
