package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Outcome classifies how a console action ended.
type Outcome string

const (
	OutcomeSuccess  Outcome = "success"
	OutcomeInvalid  Outcome = "invalid"
	OutcomeFailed   Outcome = "failed"
	OutcomeDeclined Outcome = "declined"
)

type Metrics struct {
	actionsTotal   metric.Int64Counter
	actionDuration metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.actionsTotal, err = meter.Int64Counter(
		"console_actions_total",
		metric.WithDescription("Total number of console actions by outcome"),
		metric.WithUnit("{action}"),
	)
	if err != nil {
		return nil, fmt.Errorf("create console_actions_total counter: %w", err)
	}

	m.actionDuration, err = meter.Float64Histogram(
		"console_action_duration_seconds",
		metric.WithDescription("Duration of console actions including reloads"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create console_action_duration histogram: %w", err)
	}

	return m, nil
}

func (m *Metrics) RecordAction(ctx context.Context, action string, outcome Outcome) {
	m.actionsTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String("action", action),
		attribute.String("outcome", string(outcome)),
	))
}

func (m *Metrics) RecordActionDuration(ctx context.Context, action string, durationSeconds float64) {
	m.actionDuration.Record(ctx, durationSeconds, metric.WithAttributes(
		attribute.String("action", action),
	))
}
