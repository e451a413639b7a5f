package binding

import (
	typetostring "github.com/samber/go-type-to-string"

	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
)

// Kind identifies the variant of a binding target shape.
type Kind int

const (
	// KindContent requests the raw content item itself, optionally
	// constrained to a content subtype.
	KindContent Kind = iota

	// KindModel requests a plain *content.Model wrapper.
	KindModel

	// KindTypedModel requests a *content.ModelOf[T] wrapper constrained
	// to a content subtype.
	KindTypedModel

	// KindValue requests some other convertible type with no content-item
	// relationship of its own.
	KindValue
)

// Shape describes the value a binding attempt must produce. It is a closed
// set of variants built by the constructor functions below; the predicate
// and factory closures carry the target's static type so the resolver can
// dispatch without reflection.
type Shape struct {
	kind Kind
	name string

	// satisfies reports whether the source already is the target shape.
	satisfies func(src any) bool

	// accepts reports whether a content item meets the shape's subtype
	// constraint. Nil means unconstrained.
	accepts func(c content.Content) bool

	// wrap builds the target value around a content item that has already
	// passed the accepts check. Nil for KindValue.
	wrap func(c content.Content) (any, error)

	// convert is the last-resort conversion applied to the raw source when
	// no content item could be obtained. Nil for the content-backed kinds.
	convert func(src any) (any, bool)
}

// Kind returns the shape's variant.
func (s Shape) Kind() Kind { return s.kind }

// TargetName returns the target type name used in diagnostics
// (e.g. "*content.ModelOf[*testpage.Page]").
func (s Shape) TargetName() string { return s.name }

// ContentShape describes the "raw content item" target, constrained to T.
// Use ContentShape[content.Content]() for an unconstrained raw target.
func ContentShape[T content.Content]() Shape {
	return Shape{
		kind: KindContent,
		name: typetostring.GetType[T](),
		satisfies: func(src any) bool {
			_, ok := src.(T)
			return ok
		},
		accepts: func(c content.Content) bool {
			_, ok := c.(T)
			return ok
		},
		wrap: func(c content.Content) (any, error) {
			return c, nil
		},
	}
}

// ModelShape describes the plain *content.Model wrapper target. Any content
// item satisfies it.
func ModelShape() Shape {
	return Shape{
		kind: KindModel,
		name: typetostring.GetType[*content.Model](),
		satisfies: func(src any) bool {
			_, ok := src.(*content.Model)
			return ok
		},
		wrap: func(c content.Content) (any, error) {
			m, err := content.NewModel(c)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
	}
}

// ModelOfShape describes the *content.ModelOf[T] wrapper target. Only
// content items satisfying T bind to it.
func ModelOfShape[T content.Content]() Shape {
	return Shape{
		kind: KindTypedModel,
		name: typetostring.GetType[*content.ModelOf[T]](),
		satisfies: func(src any) bool {
			_, ok := src.(*content.ModelOf[T])
			return ok
		},
		accepts: func(c content.Content) bool {
			_, ok := c.(T)
			return ok
		},
		wrap: func(c content.Content) (any, error) {
			m, err := content.NewModelOf[T](c)
			if err != nil {
				return nil, err
			}
			return m, nil
		},
	}
}

// ValueShape describes a non-content target type T. A source that already is
// a T short-circuits; otherwise convert is consulted as the last resort.
// A nil convert leaves only the short-circuit path.
func ValueShape[T any](convert func(src any) (T, bool)) Shape {
	s := Shape{
		kind: KindValue,
		name: typetostring.GetType[T](),
		satisfies: func(src any) bool {
			_, ok := src.(T)
			return ok
		},
	}
	if convert != nil {
		s.convert = func(src any) (any, bool) {
			v, ok := convert(src)
			if !ok {
				return nil, false
			}
			return v, true
		}
	}
	return s
}
