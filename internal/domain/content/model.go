package content

import (
	"errors"
	"fmt"
)

// ErrNilContent is returned when a wrapper is constructed around nil content.
var ErrNilContent = errors.New("content: nil content")

// Compile-time checks that both wrapper types implement Wrapper.
var (
	_ Wrapper = (*Model)(nil)
	_ Wrapper = (*ModelOf[Content])(nil)
)

// Model is the plain view-model wrapper: it carries exactly one published
// content item with no constraint on the item's concrete type.
type Model struct {
	content Content
}

// NewModel wraps the given content item. Returns ErrNilContent if c is nil.
func NewModel(c Content) (*Model, error) {
	if c == nil {
		return nil, ErrNilContent
	}
	return &Model{content: c}, nil
}

// PublishedContent returns the wrapped content item.
func (m *Model) PublishedContent() Content {
	return m.content
}

// ModelOf is the constrained view-model wrapper: it carries exactly one
// published content item that is statically known to satisfy T.
type ModelOf[T Content] struct {
	content T
}

// NewModelOf wraps the given content item as T. The constraint is checked
// before construction: a nil item returns ErrNilContent, and an item whose
// concrete type does not satisfy T is rejected.
func NewModelOf[T Content](c Content) (*ModelOf[T], error) {
	if c == nil {
		return nil, ErrNilContent
	}
	typed, ok := c.(T)
	if !ok {
		return nil, fmt.Errorf("content: %T does not satisfy the wrapper constraint", c)
	}
	return &ModelOf[T]{content: typed}, nil
}

// PublishedContent returns the wrapped content item.
func (m *ModelOf[T]) PublishedContent() Content {
	return m.content
}

// Typed returns the wrapped content item as T.
func (m *ModelOf[T]) Typed() T {
	return m.content
}
