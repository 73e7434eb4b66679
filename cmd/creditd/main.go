package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"golang.org/x/time/rate"
	"google.golang.org/grpc/credentials"

	"github.com/urjitutjit/creditapprovalsystem/internal/application/usecase"
	"github.com/urjitutjit/creditapprovalsystem/internal/domain/service"
	"github.com/urjitutjit/creditapprovalsystem/internal/infrastructure/config"
	"github.com/urjitutjit/creditapprovalsystem/internal/infrastructure/kafka"
	pgRepo "github.com/urjitutjit/creditapprovalsystem/internal/infrastructure/postgres"
	"github.com/urjitutjit/creditapprovalsystem/internal/infrastructure/telemetry"
	grpcPresentation "github.com/urjitutjit/creditapprovalsystem/internal/presentation/grpc"
	"github.com/urjitutjit/creditapprovalsystem/internal/presentation/rest"
	"github.com/urjitutjit/creditapprovalsystem/pkg/auth"
	pkgkafka "github.com/urjitutjit/creditapprovalsystem/pkg/kafka"
	"github.com/urjitutjit/creditapprovalsystem/pkg/observability"
	pkgpostgres "github.com/urjitutjit/creditapprovalsystem/pkg/postgres"
	"github.com/urjitutjit/creditapprovalsystem/pkg/tlsutil"
)

func main() {
	if err := run(); err != nil {
		slog.Error("credit-service exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger.Info("starting credit-service",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
	)

	// Tracing is optional.
	if cfg.Tracing.Endpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			Insecure:    cfg.Tracing.Insecure,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName:       cfg.ServiceName,
		RuntimeCollectors: true,
	})
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck
	otel.SetMeterProvider(meterProvider)

	// Database connection.
	dbCfg := pkgpostgres.Config{
		Host:     cfg.DB.Host,
		Port:     cfg.DB.Port,
		User:     cfg.DB.User,
		Password: cfg.DB.Password,
		Database: cfg.DB.Name,
		SSLMode:  cfg.DB.SSLMode,
		MaxConns: int32(cfg.DB.MaxConns), //nolint:gosec // bounded by config

		ApplicationName: cfg.ServiceName,
	}
	dbCtx, dbCancel := context.WithTimeout(ctx, 10*time.Second)
	pool, err := pkgpostgres.NewPool(dbCtx, dbCfg)
	dbCancel()
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()
	logger.Info("connected to database")

	if err := pkgpostgres.RunMigrations(dbCfg.DSN(), pgRepo.Migrations, pgRepo.MigrationsDir); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	// Infrastructure adapters.
	customerRepo := pgRepo.NewCustomerRepo(pool)
	loanRepo := pgRepo.NewLoanRepo(pool)

	producer, err := pkgkafka.NewProducer(pkgkafka.Config{
		Brokers:       cfg.Kafka.Brokers,
		TLS:           cfg.Kafka.TLS,
		SASLEnabled:   cfg.Kafka.SASLEnabled,
		SASLMechanism: cfg.Kafka.SASLMechanism,
		SASLUsername:  cfg.Kafka.SASLUsername,
		SASLPassword:  cfg.Kafka.SASLPassword,
	})
	if err != nil {
		return fmt.Errorf("create kafka producer: %w", err)
	}
	defer func() { _ = producer.Close() }() //nolint:errcheck
	publisher := kafka.NewEventPublisher(producer, cfg.Kafka.Topic, logger)

	decisions, err := telemetry.NewDecisionMetrics(meterProvider.Meter(cfg.ServiceName))
	if err != nil {
		return fmt.Errorf("register decision metrics: %w", err)
	}
	evaluator := service.NewEligibilityEvaluator(service.NewScoreCalculator(nil))

	// Use cases.
	uc := usecase.Set{
		RegisterCustomer:     usecase.NewRegisterCustomerUseCase(customerRepo, publisher),
		CheckEligibility:     usecase.NewCheckEligibilityUseCase(customerRepo, loanRepo, publisher, evaluator, decisions),
		CreateLoan:           usecase.NewCreateLoanUseCase(customerRepo, loanRepo, pgRepo.NewCustomerLock(pool), publisher, evaluator, decisions),
		ViewLoan:             usecase.NewGetLoanUseCase(loanRepo, customerRepo),
		ViewCustomerLoans:    usecase.NewListCustomerLoansUseCase(loanRepo, customerRepo),
		GetRepaymentSchedule: usecase.NewGetRepaymentScheduleUseCase(loanRepo),
		RecordRepayment:      usecase.NewRecordRepaymentUseCase(loanRepo, publisher),
		MarkLoanDefaulted:    usecase.NewMarkLoanDefaultedUseCase(loanRepo, publisher),
	}
	handler := grpcPresentation.NewCreditHandler(uc, logger)

	jwtSvc, err := newJWTService(cfg.Auth)
	if err != nil {
		return fmt.Errorf("initialize JWT service: %w", err)
	}

	var creds credentials.TransportCredentials
	if cfg.TLS.Enabled() {
		creds, err = tlsutil.ServerCredentials(cfg.TLS.CertFile, cfg.TLS.KeyFile, cfg.TLS.ClientCAFile)
		if err != nil {
			return fmt.Errorf("load gRPC TLS credentials: %w", err)
		}
	}

	grpcServer := grpcPresentation.NewServer(handler, logger, jwtSvc, grpcPresentation.ServerOptions{
		Creds:      creds,
		Reflection: cfg.Reflection,
	})

	var limiter *rate.Limiter
	if cfg.RateLimit.RPS > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RPS), cfg.RateLimit.Burst)
	}
	api := rest.NewAPI(uc, logger).Handler(jwtSvc, limiter)

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           rest.NewMux(rest.NewHealthHandler(cfg.ServiceName, pool, logger), metricsHandler, api),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("credit-service stopped")
	return serveErr
}

// newJWTService prefers a public key and falls back to a shared secret.
func newJWTService(cfg config.AuthConfig) (*auth.JWTService, error) {
	jwtCfg := auth.JWTConfig{Issuer: cfg.Issuer}
	switch {
	case cfg.PublicKeyPEM != "":
		jwtCfg.PublicKeyPEM = cfg.PublicKeyPEM
	case cfg.PublicKeyFile != "":
		keyData, err := auth.LoadKeyFromFile(cfg.PublicKeyFile)
		if err != nil {
			return nil, err
		}
		jwtCfg.PublicKeyPEM = string(keyData)
	default:
		jwtCfg.Secret = cfg.Secret
	}
	return auth.NewJWTService(jwtCfg)
}
