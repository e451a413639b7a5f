package binding

import (
	"context"
	"log/slog"
)

// Observer is notified exactly once per binding failure, before the failure
// is surfaced to the caller. Observers are notify-only: they may append to
// the event's message and request a restart, but the binding attempt fails
// regardless of what they do.
type Observer interface {
	OnBindingFailure(ctx context.Context, ev *FailureEvent)
}

// ObserverFunc adapts a function to the Observer interface.
type ObserverFunc func(ctx context.Context, ev *FailureEvent)

func (f ObserverFunc) OnBindingFailure(ctx context.Context, ev *FailureEvent) {
	f(ctx, ev)
}

// LogObserver returns an observer that records binding failures at ERROR
// level with the attempted source and target types.
func LogObserver(logger *slog.Logger) Observer {
	return ObserverFunc(func(ctx context.Context, ev *FailureEvent) {
		logger.ErrorContext(ctx, "model binding failed",
			slog.String("operation", "Resolve"),
			slog.String("reason", ev.Reason.String()),
			slog.String("source_type", ev.SourceType),
			slog.String("target_type", ev.TargetType),
		)
	})
}
