package api

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type Metrics struct {
	requestDuration metric.Float64Histogram
}

func NewMetrics(meter metric.Meter) (*Metrics, error) {
	m := &Metrics{}

	var err error

	m.requestDuration, err = meter.Float64Histogram(
		"shop_api_request_duration_seconds",
		metric.WithDescription("Shop API request duration"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("create shop_api_request_duration histogram: %w", err)
	}

	return m, nil
}

// RecordRequest records one API call. status is "ok", the HTTP status code of
// a rejected call, or "transport_error".
func (m *Metrics) RecordRequest(ctx context.Context, operation, status string, durationSeconds float64) {
	m.requestDuration.Record(ctx, durationSeconds, metric.WithAttributes(
		attribute.String("operation", operation),
		attribute.String("status", status),
	))
}
