package health

import (
	"context"
	"sync"

	"github.com/jsamuelsen11/content-render-service/internal/ports"
)

// Compile-time interface check.
var _ ports.HealthChecker = (*Flag)(nil)

// Flag is a manually tripped health checker. It reports healthy until Trip
// is called, after which every check fails with the given reason until
// Reset. It backs checks that reflect an application-level condition rather
// than a probed dependency, such as a requested restart.
type Flag struct {
	name string

	mu     sync.RWMutex
	reason error
}

// NewFlag creates a healthy Flag with the given checker name.
func NewFlag(name string) *Flag {
	return &Flag{name: name}
}

// Name returns the checker name used in readiness reports.
func (f *Flag) Name() string { return f.name }

// Trip marks the flag unhealthy with the given reason. A nil reason is
// ignored so a tripped flag always carries a cause.
func (f *Flag) Trip(reason error) {
	if reason == nil {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reason = reason
}

// Reset returns the flag to healthy.
func (f *Flag) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.reason = nil
}

// HealthCheck reports the tripped reason, or nil while healthy.
func (f *Flag) HealthCheck(_ context.Context) error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.reason
}
