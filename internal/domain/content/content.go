// Package content defines the published-content domain: the Content
// capability implemented by every published node, the generic Node entity,
// and the Model wrapper types produced by model binding.
package content

import (
	"time"

	"github.com/google/uuid"
)

// Content is the capability implemented by every published content item.
// Implementations are immutable once published: resolution and binding only
// read or re-wrap them, never mutate.
type Content interface {
	// Key returns the stable unique identifier of the content item.
	Key() uuid.UUID

	// Name returns the editorial name of the content item.
	Name() string

	// ContentType returns the alias of the item's content type
	// (e.g. "page", "article").
	ContentType() string

	// URLSegment returns the item's own segment within its route
	// (e.g. "widget" for /products/widget).
	URLSegment() string

	// Route returns the absolute route path of the item, starting with "/".
	Route() string

	// Level returns the depth of the item in the content tree.
	// The root is level 1.
	Level() int

	// Property returns the value of the property with the given alias.
	// The second return value reports whether the property exists.
	Property(alias string) (any, bool)

	// UpdatedAt returns the publish timestamp of this version.
	UpdatedAt() time.Time
}

// Wrapper is the capability implemented by view models that carry exactly
// one published content item. The model binder uses it to extract the
// underlying node from an already-bound value.
type Wrapper interface {
	// PublishedContent returns the wrapped content item.
	PublishedContent() Content
}
