// Package telemetry records credit decision metrics through OpenTelemetry.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DecisionMetrics implements port.DecisionRecorder with an OpenTelemetry
// counter, exported as credit_eligibility_decisions_total.
type DecisionMetrics struct {
	decisions metric.Int64Counter
}

// NewDecisionMetrics registers the decision counter on meter.
func NewDecisionMetrics(meter metric.Meter) (*DecisionMetrics, error) {
	counter, err := meter.Int64Counter("credit_eligibility_decisions",
		metric.WithDescription("Eligibility evaluations by outcome and reason."),
	)
	if err != nil {
		return nil, fmt.Errorf("create decision counter: %w", err)
	}
	return &DecisionMetrics{decisions: counter}, nil
}

func (m *DecisionMetrics) RecordDecision(ctx context.Context, approved bool, reason string) {
	m.decisions.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("approved", approved),
		attribute.String("reason", reason),
	))
}
