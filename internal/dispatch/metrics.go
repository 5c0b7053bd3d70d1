package dispatch

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/mobilebiz/gps-message/internal/observability/metrics"
)

// Metrics holds the pipeline instruments.
type Metrics struct {
	outcomes     metric.Int64Counter
	sendFailures metric.Int64Counter
}

// NewMetrics registers the dispatch instruments on the meter.
func NewMetrics(m *metrics.Meter) (*Metrics, error) {
	outcomes, err := m.CreateCounter("dispatch_outcomes_total",
		"Terminal pipeline outcomes by result")
	if err != nil {
		return nil, err
	}
	sendFailures, err := m.CreateCounter("sms_send_failures_total",
		"SMS transport failures, counted even though dispatch proceeds")
	if err != nil {
		return nil, err
	}
	return &Metrics{outcomes: outcomes, sendFailures: sendFailures}, nil
}

func (m *Metrics) recordOutcome(ctx context.Context, r Result) {
	if m == nil {
		return
	}
	m.outcomes.Add(ctx, 1, metric.WithAttributes(
		attribute.String("outcome", r.String()),
	))
}

func (m *Metrics) recordSendFailure(ctx context.Context) {
	if m == nil {
		return
	}
	m.sendFailures.Add(ctx, 1)
}
