// Package memory provides the in-memory published-content index. The index
// is a read-optimized snapshot: lookups never lock each other, and Refresh
// replaces the whole snapshot atomically.
package memory

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/jsamuelsen11/content-render-service/internal/app/reqcache"
	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
	"github.com/jsamuelsen11/content-render-service/internal/ports"
)

// Compile-time interface checks.
var (
	_ ports.ContentIndex  = (*Store)(nil)
	_ ports.HealthChecker = (*Store)(nil)
)

// checkerName identifies the index in readiness probe output.
const checkerName = "content-index"

// errEmptyIndex is reported by HealthCheck until the first successful
// refresh has populated the index.
var errEmptyIndex = errors.New("content index is empty (no successful refresh yet)")

// snapshot is the immutable state the store publishes to readers. A new
// snapshot is built on every Replace; existing readers keep the one they
// already hold.
type snapshot struct {
	byRoute map[string]content.Content
	byKey   map[uuid.UUID]content.Content
	ordered []content.Content
}

// Store is the in-memory content index. Safe for concurrent use.
type Store struct {
	ref *reqcache.SafeRef[*snapshot]
}

// New creates an empty Store. It reports unhealthy until Replace has been
// called with at least one item.
func New() *Store {
	return &Store{
		ref: reqcache.NewRef(&snapshot{
			byRoute: map[string]content.Content{},
			byKey:   map[uuid.UUID]content.Content{},
		}),
	}
}

// Replace atomically swaps the whole index for the given items. Items are
// keyed by normalized route and by key; on duplicate routes the later item
// wins.
func (s *Store) Replace(items []content.Content) {
	next := &snapshot{
		byRoute: make(map[string]content.Content, len(items)),
		byKey:   make(map[uuid.UUID]content.Content, len(items)),
		ordered: make([]content.Content, len(items)),
	}

	copy(next.ordered, items)
	sort.Slice(next.ordered, func(i, j int) bool {
		return next.ordered[i].Route() < next.ordered[j].Route()
	})

	for _, item := range next.ordered {
		next.byRoute[NormalizeRoute(item.Route())] = item
		next.byKey[item.Key()] = item
	}

	s.ref.Set(next)
}

// ByRoute looks up an item by its route path. The route is normalized
// before lookup, so "/About/" and "/about" resolve to the same item.
func (s *Store) ByRoute(route string) (content.Content, bool) {
	c, ok := s.ref.Get().byRoute[NormalizeRoute(route)]
	return c, ok
}

// ByKey looks up an item by its key.
func (s *Store) ByKey(key uuid.UUID) (content.Content, bool) {
	c, ok := s.ref.Get().byKey[key]
	return c, ok
}

// All returns every indexed item, ordered by route. The returned slice is
// shared with the snapshot and must not be modified.
func (s *Store) All() []content.Content {
	return s.ref.Get().ordered
}

// Len returns the number of indexed items.
func (s *Store) Len() int {
	return len(s.ref.Get().ordered)
}

// Name implements ports.HealthChecker.
func (s *Store) Name() string {
	return checkerName
}

// HealthCheck reports healthy once the index holds at least one item.
func (s *Store) HealthCheck(_ context.Context) error {
	if s.Len() == 0 {
		return errEmptyIndex
	}
	return nil
}

// NormalizeRoute canonicalizes a route path for index lookups: lowercase,
// leading "/", no trailing "/" (except for the root route itself).
func NormalizeRoute(route string) string {
	route = strings.ToLower(strings.TrimSpace(route))
	if route == "" {
		return "/"
	}
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	if len(route) > 1 {
		route = strings.TrimRight(route, "/")
		if route == "" {
			route = "/"
		}
	}
	return route
}
