package telemetry_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alecthomas/assert/v2"

	"github.com/robinvdvleuten/rollover/telemetry"
)

func TestCollectorRecordsSteps(t *testing.T) {
	collector := telemetry.NewCollector()

	stop := collector.Start("first")
	stop()
	stop = collector.Start("second")
	stop()

	steps := collector.Steps()
	assert.Equal(t, 2, len(steps))
	assert.Equal(t, "first", steps[0].Name)
	assert.Equal(t, "second", steps[1].Name)
	assert.True(t, steps[0].Duration >= 0)
}

func TestNilCollectorDiscards(t *testing.T) {
	var collector *telemetry.Collector

	stop := collector.Start("ignored")
	stop()

	assert.Equal(t, 0, len(collector.Steps()))
}

func TestFromContext(t *testing.T) {
	// Without a collector installed, Start must still be safe to call.
	collector := telemetry.FromContext(context.Background())
	assert.True(t, collector == nil)
	collector.Start("ignored")()

	installed := telemetry.NewCollector()
	ctx := telemetry.WithCollector(context.Background(), installed)
	assert.True(t, telemetry.FromContext(ctx) == installed)
}

func TestReport(t *testing.T) {
	collector := telemetry.NewCollector()
	stop := collector.Start("purge transactions")
	stop()

	var buf strings.Builder
	collector.Report(&buf)

	out := buf.String()
	assert.Contains(t, out, "purge transactions")
	assert.Contains(t, out, "total")
}

func TestReportEmptyIsSilent(t *testing.T) {
	var buf strings.Builder
	telemetry.NewCollector().Report(&buf)
	assert.Equal(t, "", buf.String())
}

func TestCollectorIsConcurrencySafe(t *testing.T) {
	collector := telemetry.NewCollector()

	done := make(chan struct{})
	for i := 0; i < 4; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			stop := collector.Start("step")
			time.Sleep(time.Millisecond)
			stop()
		}()
	}
	for i := 0; i < 4; i++ {
		<-done
	}

	assert.Equal(t, 4, len(collector.Steps()))
}
