package binding

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
)

// routeValueKey is the well-known context key under which the route-content
// middleware stores the value resolved for the current request's route.
type routeValueKey struct{}

// WithRouteValue returns a new context carrying the route-resolved value.
// The value is stored untyped; BindRequest and RouteContentFromContext
// treat anything that is not a content item as "nothing to bind".
func WithRouteValue(ctx context.Context, v any) context.Context {
	return context.WithValue(ctx, routeValueKey{}, v)
}

// RouteContentFromContext extracts the route-resolved content item from the
// context. It returns false when the key is absent or the stored value is
// not a content item; neither case is an error.
func RouteContentFromContext(ctx context.Context) (content.Content, bool) {
	c, ok := ctx.Value(routeValueKey{}).(content.Content)
	return c, ok
}

// BindRequest is the request-pipeline entry point: it reads the
// route-resolved value from the request context and resolves it against the
// target shape. A missing or non-content route value yields
// (nil, false, nil), leaving the target unset.
//
// The work never suspends; the method exists so pipeline callers bind
// against the request rather than carrying the source value themselves.
func (r *Resolver) BindRequest(req *http.Request, shape Shape) (any, bool, error) {
	src, ok := RouteContentFromContext(req.Context())
	if !ok {
		return nil, false, nil
	}
	return r.Resolve(req.Context(), src, shape)
}

// sourceTypeName names a source value's dynamic type for diagnostics.
func sourceTypeName(source any) string {
	return fmt.Sprintf("%T", source)
}
