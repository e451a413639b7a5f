package health_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jsamuelsen11/content-render-service/internal/platform/health"
)

func TestFlag_HealthyUntilTripped(t *testing.T) {
	t.Parallel()

	f := health.NewFlag("model-binding")

	if got := f.Name(); got != "model-binding" {
		t.Errorf("Name() = %q, want %q", got, "model-binding")
	}
	if err := f.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() = %v, want nil", err)
	}
}

func TestFlag_TripAndReset(t *testing.T) {
	t.Parallel()

	f := health.NewFlag("model-binding")
	reason := errors.New("restart requested")

	f.Trip(reason)
	if err := f.HealthCheck(context.Background()); !errors.Is(err, reason) {
		t.Errorf("HealthCheck() = %v, want %v", err, reason)
	}

	f.Reset()
	if err := f.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() after Reset = %v, want nil", err)
	}
}

func TestFlag_TripNilIgnored(t *testing.T) {
	t.Parallel()

	f := health.NewFlag("model-binding")
	f.Trip(nil)

	if err := f.HealthCheck(context.Background()); err != nil {
		t.Errorf("HealthCheck() = %v, want nil after Trip(nil)", err)
	}
}

func TestFlag_RegistersWithRegistry(t *testing.T) {
	t.Parallel()

	f := health.NewFlag("model-binding")
	r := health.New()
	r.Register(f)

	f.Trip(errors.New("restart requested"))

	results := r.CheckAll(context.Background())
	if results["model-binding"] == nil {
		t.Fatal("model-binding check = nil, want error after trip")
	}
}
