// Package binding implements polymorphic content-model resolution: given a
// route-resolved source value and a target shape, it decides whether and how
// to produce a value of that shape, or surfaces a typed failure.
//
// Resolution is a pure, single-pass decision procedure with no retries and
// no I/O. The only side effect is the failure notification: registered
// observers are told about every failed attempt before the error is
// returned.
//
// Direct use:
//
//	resolver := binding.NewResolver(logger)
//	model, ok, err := resolver.Resolve(ctx, source, binding.ModelShape())
//
// Request-pipeline use (the route-content middleware stores the resolved
// node in the request context):
//
//	node, ok, err := resolver.BindRequest(r, binding.ContentShape[content.Content]())
package binding

import (
	"context"
	"log/slog"
	"reflect"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/content-render-service/internal/domain/content"
	"github.com/jsamuelsen11/content-render-service/internal/platform/telemetry"
)

// NodeConverter attempts a generic conversion of an arbitrary source value
// to a content item. Converters are consulted in registration order after
// the built-in content and wrapper checks fail.
type NodeConverter func(src any) (content.Content, bool)

// Resolver decides how to map source values onto target shapes. It is
// immutable after construction and safe for concurrent use: concurrent
// Resolve calls touch no shared mutable state.
type Resolver struct {
	logger     *slog.Logger
	observers  []Observer
	converters []NodeConverter
	metrics    *telemetry.Metrics
	onRestart  func()
}

// Option configures a Resolver at construction time.
type Option func(*Resolver)

// WithObserver registers a failure observer. Observers are notified in
// registration order, exactly once per failure.
func WithObserver(o Observer) Option {
	return func(r *Resolver) {
		r.observers = append(r.observers, o)
	}
}

// WithNodeConverter registers a generic source-to-content converter.
func WithNodeConverter(fn NodeConverter) Option {
	return func(r *Resolver) {
		r.converters = append(r.converters, fn)
	}
}

// WithMetrics enables recording of the binding.failure.total counter.
func WithMetrics(m *telemetry.Metrics) Option {
	return func(r *Resolver) {
		r.metrics = m
	}
}

// WithRestartHandler sets the hook invoked when an observer requests an
// application restart. The hook runs after all observers have been
// notified; the binding attempt fails regardless.
func WithRestartHandler(fn func()) Option {
	return func(r *Resolver) {
		r.onRestart = fn
	}
}

// NewResolver creates a Resolver. A nil logger disables resolver logging.
func NewResolver(logger *slog.Logger, opts ...Option) *Resolver {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	r := &Resolver{logger: logger}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve maps source onto the target shape. First match wins:
//
//  1. A nil source, including a typed nil pointer inside a non-nil
//     interface, yields (nil, false, nil) — nothing to bind, no error.
//  2. A source that already is the target shape is returned unchanged.
//  3. Otherwise the underlying content item is extracted from the source
//     (directly, through the Wrapper capability, or via a registered
//     converter) and wrapped per the shape variant, subject to the shape's
//     subtype constraint.
//  4. With no content item in hand, the shape's last-resort conversion is
//     attempted.
//
// Failures notify observers and return a *Error that unwraps to
// domain.ErrModelBinding. The source is never mutated.
func (r *Resolver) Resolve(ctx context.Context, source any, shape Shape) (any, bool, error) {
	if isNil(source) {
		return nil, false, nil
	}

	if shape.satisfies(source) {
		return source, true, nil
	}

	if node, ok := r.contentOf(source); ok {
		switch shape.kind {
		case KindContent:
			if shape.accepts != nil && !shape.accepts(node) {
				return nil, false, r.fail(ctx, source, shape, ReasonContentTypeMismatch, true, false)
			}
			return node, true, nil

		case KindModel, KindTypedModel:
			if shape.accepts != nil && !shape.accepts(node) {
				return nil, false, r.fail(ctx, source, shape, ReasonContentTypeMismatch, true, true)
			}
			wrapped, err := shape.wrap(node)
			if err != nil {
				// accepts already admitted the node, so a wrap failure means
				// the node does not actually satisfy the wrapper's constraint.
				// Observers are notified like any other failed attempt.
				r.logger.ErrorContext(ctx, "wrapper construction failed",
					slog.String("target_type", shape.name),
					slog.Any("error", err),
				)
				return nil, false, r.fail(ctx, source, shape, ReasonContentTypeMismatch, true, true)
			}
			return wrapped, true, nil
		}
	}

	if shape.convert != nil {
		if v, ok := shape.convert(source); ok {
			return v, true, nil
		}
	}

	return nil, false, r.fail(ctx, source, shape, ReasonUnsupportedConversion, false, false)
}

// isNil reports whether source carries no value at all: an untyped nil, or a
// typed nil pointer/map/slice boxed in a non-nil interface. Capability calls
// on such a source would dereference a nil receiver.
func isNil(source any) bool {
	if source == nil {
		return true
	}
	switch v := reflect.ValueOf(source); v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	default:
		return false
	}
}

// contentOf extracts the underlying content item from the source: the source
// itself, its Wrapper capability, or a registered converter.
func (r *Resolver) contentOf(source any) (content.Content, bool) {
	if c, ok := source.(content.Content); ok {
		return c, true
	}
	if w, ok := source.(content.Wrapper); ok {
		if c := w.PublishedContent(); c != nil {
			return c, true
		}
		return nil, false
	}
	for _, convert := range r.converters {
		if c, ok := convert(source); ok && c != nil {
			return c, true
		}
	}
	return nil, false
}

// fail composes the failure event, notifies observers, records telemetry,
// and returns the binding error carrying the final message.
func (r *Resolver) fail(ctx context.Context, source any, shape Shape, reason Reason, sourceIsContent, modelIsContent bool) error {
	sourceType := sourceTypeName(source)
	ev := newFailureEvent(reason, sourceType, shape.name, sourceIsContent, modelIsContent)

	for _, o := range r.observers {
		o.OnBindingFailure(ctx, ev)
	}

	if r.metrics != nil {
		r.metrics.BindingFailureTotal.Add(ctx, 1, metric.WithAttributes(
			telemetry.AttrBindingReason.String(reason.String()),
		))
	}

	if ev.RestartRequested() {
		r.logger.WarnContext(ctx, "binding failure observer requested restart",
			slog.String("source_type", sourceType),
			slog.String("target_type", shape.name),
		)
		if r.onRestart != nil {
			r.onRestart()
		}
	}

	return &Error{
		Reason:          reason,
		SourceType:      sourceType,
		TargetType:      shape.name,
		SourceIsContent: sourceIsContent,
		ModelIsContent:  modelIsContent,
		Restart:         ev.RestartRequested(),
		msg:             ev.Message(),
	}
}
