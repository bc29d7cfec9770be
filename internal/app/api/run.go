package api

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	ordersemail "github.com/devqueiroz/landing-orders/internal/domains/orders/adapters/email"
	ordersobs "github.com/devqueiroz/landing-orders/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/devqueiroz/landing-orders/internal/domains/orders/adapters/persistence/postgres"
	ordersapp "github.com/devqueiroz/landing-orders/internal/domains/orders/application"
	"github.com/devqueiroz/landing-orders/internal/domains/orders/ports"
	"github.com/devqueiroz/landing-orders/internal/httpapi"
	platformmigrations "github.com/devqueiroz/landing-orders/internal/platform/migrations"
	platformobservability "github.com/devqueiroz/landing-orders/internal/platform/observability"
	platformpostgres "github.com/devqueiroz/landing-orders/internal/platform/postgres"
	"github.com/devqueiroz/landing-orders/internal/report"
)

// Run boots the orders HTTP API with observability, the Postgres store, and
// the monthly report scheduler wired.
func Run(ctx context.Context) error {
	const serviceName = "landing-orders-api"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	cfg, err := LoadConfig()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	db, cleanup, err := platformpostgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer cleanup()
	if err := platformmigrations.Run(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.Info("postgres connection established")

	repo := orderspostgres.NewRepository(db)
	coreService := ordersapp.NewService(repo)
	orderService := ordersobs.New(
		coreService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.domains.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.domains.orders.application")),
	)

	scheduler := report.NewScheduler(repo, buildMailer(cfg, logger), report.WithLogger(logger))
	if err := scheduler.Start(); err != nil {
		return fmt.Errorf("failed to start report scheduler: %w", err)
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		scheduler.Stop(stopCtx)
	}()

	router := httpapi.NewRouter(
		httpapi.NewOrdersAPI(orderService),
		otelgin.Middleware(serviceName),
		httpapi.CORS(cfg.CORSOrigins),
	)
	addr := ":" + cfg.Port
	logger.Info("orders API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("orders API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildMailer constructs the SMTP report mailer, or nil with a warning when
// email credentials are absent. The API keeps serving either way; only the
// monthly report is disabled.
func buildMailer(cfg Config, logger *slog.Logger) ports.ReportMailer {
	if !cfg.MailerConfigured() {
		logger.Warn("EMAIL_USER/EMAIL_PASS not set, monthly report emails disabled")
		return nil
	}
	mailer, err := ordersemail.New(ordersemail.Config{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.EmailUser,
		Password:   cfg.EmailPass,
		Recipients: cfg.ReportRecipients,
	})
	if err != nil {
		logger.Warn("report mailer unavailable", slog.String("error", err.Error()))
		return nil
	}
	logger.Info("report mailer configured", slog.Int("recipients", len(cfg.ReportRecipients)))
	return mailer
}
