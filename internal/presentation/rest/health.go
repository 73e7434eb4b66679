package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/urjitutjit/creditapprovalsystem/pkg/postgres"
)

const readinessTimeout = 2 * time.Second

// HealthHandler serves liveness and readiness checks over HTTP.
type HealthHandler struct {
	startedAt   time.Time
	db          postgres.Pinger
	logger      *slog.Logger
	serviceName string
}

func NewHealthHandler(serviceName string, db postgres.Pinger, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		startedAt:   time.Now(),
		db:          db,
		logger:      logger,
		serviceName: serviceName,
	}
}

type healthResponse struct {
	Checks  map[string]string `json:"checks,omitempty"`
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Uptime  string            `json:"uptime,omitempty"`
}

// RegisterRoutes attaches the health routes to mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.liveness)
	mux.HandleFunc("GET /readyz", h.readiness)
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{
		Status:  "ok",
		Service: h.serviceName,
		Uptime:  time.Since(h.startedAt).Round(time.Second).String(),
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
	defer cancel()

	resp := healthResponse{Status: "ready", Service: h.serviceName, Checks: map[string]string{"database": "ok"}}
	code := http.StatusOK
	if err := postgres.HealthCheck(ctx, h.db); err != nil {
		h.logger.WarnContext(ctx, "readiness check failed", "check", "database", "error", err)
		resp.Status = "not ready"
		resp.Checks["database"] = "unavailable"
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, resp)
}

// NewMux builds the HTTP surface traced with otelhttp: health checks and the
// Prometheus scrape endpoint stay unauthenticated, everything else goes to
// api. metrics and api may be nil.
func NewMux(health *HealthHandler, metrics, api http.Handler) http.Handler {
	mux := http.NewServeMux()
	health.RegisterRoutes(mux)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics)
	}
	if api != nil {
		mux.Handle("/", api)
	}
	return otelhttp.NewHandler(mux, "credit-http",
		otelhttp.WithFilter(func(r *http.Request) bool { return r.URL.Path != "/metrics" }),
	)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}
