// Package telemetry collects wall-clock timings for the steps of a
// migration run. Collectors travel through the context so instrumentation
// stays out of function signatures and costs nothing when disabled:
//
//	collector := telemetry.NewCollector()
//	ctx := telemetry.WithCollector(context.Background(), collector)
//
//	stop := telemetry.FromContext(ctx).Start("purge transactions")
//	// ... work ...
//	stop()
//
//	collector.Report(os.Stderr)
package telemetry

import (
	"context"
	"sync"
	"time"
)

// contextKey is a private type for context keys to avoid collisions.
type contextKey struct{}

var collectorKey = contextKey{}

// Step is one timed operation.
type Step struct {
	Name     string
	Duration time.Duration
}

// Collector records step timings in completion order. The nil collector is
// valid and discards everything, which is what FromContext returns when no
// collector was installed.
type Collector struct {
	mu    sync.Mutex
	steps []Step
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{}
}

// WithCollector installs a collector in the context.
func WithCollector(ctx context.Context, c *Collector) context.Context {
	return context.WithValue(ctx, collectorKey, c)
}

// FromContext extracts the collector, or nil when none is installed.
// The result is always safe to call Start on.
func FromContext(ctx context.Context) *Collector {
	c, _ := ctx.Value(collectorKey).(*Collector)
	return c
}

// Start begins timing a step and returns the function that ends it.
func (c *Collector) Start(name string) func() {
	if c == nil {
		return func() {}
	}

	start := time.Now()
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.steps = append(c.steps, Step{Name: name, Duration: time.Since(start)})
	}
}

// Steps returns the recorded steps in completion order.
func (c *Collector) Steps() []Step {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Step(nil), c.steps...)
}
