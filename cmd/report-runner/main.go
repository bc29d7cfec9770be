// Command report-runner triggers one completed-orders report cycle manually,
// outside the monthly cron. Useful for operations and for verifying SMTP
// configuration against a real mailbox.
package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/devqueiroz/landing-orders/internal/app/api"
	ordersemail "github.com/devqueiroz/landing-orders/internal/domains/orders/adapters/email"
	orderspostgres "github.com/devqueiroz/landing-orders/internal/domains/orders/adapters/persistence/postgres"
	platformpostgres "github.com/devqueiroz/landing-orders/internal/platform/postgres"
	"github.com/devqueiroz/landing-orders/internal/report"
)

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	cfg, err := api.LoadConfig()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if !cfg.MailerConfigured() {
		log.Fatal("EMAIL_USER and EMAIL_PASS must be set to send a report")
	}

	db, cleanup, err := platformpostgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer cleanup()

	mailer, err := ordersemail.New(ordersemail.Config{
		Host:       cfg.SMTPHost,
		Port:       cfg.SMTPPort,
		Username:   cfg.EmailUser,
		Password:   cfg.EmailPass,
		Recipients: cfg.ReportRecipients,
	})
	if err != nil {
		log.Fatalf("failed to configure mailer: %v", err)
	}

	scheduler := report.NewScheduler(orderspostgres.NewRepository(db), mailer, report.WithLogger(logger))
	if err := scheduler.RunCycle(ctx); err != nil {
		log.Fatalf("report cycle failed: %v", err)
	}
	log.Printf("report cycle completed")
}
