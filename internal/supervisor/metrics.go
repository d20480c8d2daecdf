package supervisor

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// instrumentation holds the otel instruments the Supervisor reports
// through as it dispatches and completes tasks. A zero-value
// instrumentation (as produced by newNoopInstrumentation) is safe to use
// when no meter provider is configured.
type instrumentation struct {
	started   metric.Int64Counter
	completed metric.Int64Counter
	failed    metric.Int64Counter
	queueLen  metric.Int64ObservableGauge
}

// newInstrumentation registers the Supervisor's counters and queue-depth
// gauge against the global otel meter provider, under the
// "irisd.supervisor" meter. queueDepth is polled lazily by the gauge
// callback so it always reflects the Supervisor's current state.
func newInstrumentation(queueDepth func() int64) (*instrumentation, error) {
	meter := otel.Meter("irisd.supervisor")

	started, err := meter.Int64Counter("irisd.supervisor.tasks_started",
		metric.WithDescription("tasks handed to a worker slot"))
	if err != nil {
		return nil, err
	}
	completed, err := meter.Int64Counter("irisd.supervisor.tasks_completed",
		metric.WithDescription("tasks that finished successfully"))
	if err != nil {
		return nil, err
	}
	failed, err := meter.Int64Counter("irisd.supervisor.tasks_failed",
		metric.WithDescription("tasks that finished in error"))
	if err != nil {
		return nil, err
	}
	queueLen, err := meter.Int64ObservableGauge("irisd.supervisor.queue_depth",
		metric.WithDescription("tasks waiting for a free worker slot"),
		metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(queueDepth())
			return nil
		}))
	if err != nil {
		return nil, err
	}

	return &instrumentation{started: started, completed: completed, failed: failed, queueLen: queueLen}, nil
}
