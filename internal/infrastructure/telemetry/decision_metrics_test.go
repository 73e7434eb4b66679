package telemetry_test

import (
	"context"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urjitutjit/creditapprovalsystem/internal/infrastructure/telemetry"
	"github.com/urjitutjit/creditapprovalsystem/pkg/observability"
)

func TestDecisionMetrics_ExportedThroughPrometheus(t *testing.T) {
	provider, handler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: "credit-service"})
	require.NoError(t, err)
	defer func() { _ = provider.Shutdown(context.Background()) }()

	metrics, err := telemetry.NewDecisionMetrics(provider.Meter("credit"))
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordDecision(ctx, true, "approved at requested rate")
	metrics.RecordDecision(ctx, false, "credit score too low")
	metrics.RecordDecision(ctx, false, "credit score too low")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)

	out := string(body)
	assert.Contains(t, out, `credit_eligibility_decisions_total{approved="false",reason="credit score too low"} 2`)
	assert.Contains(t, out, `credit_eligibility_decisions_total{approved="true",reason="approved at requested rate"} 1`)
}
