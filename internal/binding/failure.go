package binding

import (
	"strings"

	"github.com/jsamuelsen11/content-render-service/internal/domain"
)

// Reason classifies a binding failure. Both reasons are fatal to the current
// binding attempt; the resolver never retries.
type Reason int

const (
	// ReasonContentTypeMismatch means a content item was obtained but its
	// concrete type does not satisfy the target's subtype constraint.
	ReasonContentTypeMismatch Reason = iota

	// ReasonUnsupportedConversion means no recognized shape matched and the
	// last-resort conversion also failed.
	ReasonUnsupportedConversion
)

// String returns the reason name used in logs and metrics.
func (r Reason) String() string {
	switch r {
	case ReasonContentTypeMismatch:
		return "content_type_mismatch"
	case ReasonUnsupportedConversion:
		return "unsupported_conversion"
	default:
		return "unknown"
	}
}

// Error is the failure surfaced to callers when a binding attempt cannot
// produce a value. It unwraps to domain.ErrModelBinding.
type Error struct {
	Reason          Reason
	SourceType      string
	TargetType      string
	SourceIsContent bool
	ModelIsContent  bool

	// Restart reports whether an observer requested an application restart
	// while handling the failure notification. The resolver itself never
	// acts on it.
	Restart bool

	msg string
}

func (e *Error) Error() string {
	return e.msg
}

func (e *Error) Unwrap() error {
	return domain.ErrModelBinding
}

// FailureEvent is the notification passed to observers before a binding
// failure is surfaced. Observers may append to the message and request an
// application restart; they cannot suppress the failure.
type FailureEvent struct {
	Reason     Reason
	SourceType string
	TargetType string

	msg     strings.Builder
	restart bool
}

// newFailureEvent seeds the event's message with the standard failure text:
//
//	Cannot bind source [content] type {T} to model [content] type {U}.
//
// The word "content" appears only when the corresponding flag is set.
func newFailureEvent(reason Reason, sourceType, targetType string, sourceIsContent, modelIsContent bool) *FailureEvent {
	ev := &FailureEvent{
		Reason:     reason,
		SourceType: sourceType,
		TargetType: targetType,
	}

	ev.msg.WriteString("Cannot bind source ")
	if sourceIsContent {
		ev.msg.WriteString("content ")
	}
	ev.msg.WriteString("type ")
	ev.msg.WriteString(sourceType)
	ev.msg.WriteString(" to model ")
	if modelIsContent {
		ev.msg.WriteString("content ")
	}
	ev.msg.WriteString("type ")
	ev.msg.WriteString(targetType)
	ev.msg.WriteString(".")

	return ev
}

// AppendMessage adds observer-supplied text to the failure message,
// separated from the existing text by a single space.
func (e *FailureEvent) AppendMessage(text string) {
	if text == "" {
		return
	}
	e.msg.WriteString(" ")
	e.msg.WriteString(text)
}

// Message returns the composed failure message.
func (e *FailureEvent) Message() string {
	return e.msg.String()
}

// RequestRestart flags that the application should be restarted because its
// model types are out of sync with published content. The calling framework
// decides what acting on the flag means.
func (e *FailureEvent) RequestRestart() {
	e.restart = true
}

// RestartRequested reports whether any observer requested a restart.
func (e *FailureEvent) RestartRequested() bool {
	return e.restart
}
