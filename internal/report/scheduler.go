// Package report implements the monthly completed-orders report cycle:
// fetch completed orders, email a summary, then purge the reported rows.
package report

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/devqueiroz/landing-orders/internal/domains/orders/domain"
	"github.com/devqueiroz/landing-orders/internal/domains/orders/ports"
)

// CronSpec fires at midnight on the first day of every month.
const CronSpec = "0 0 1 * *"

// cycleTimeout bounds one report cycle end to end.
const cycleTimeout = 5 * time.Minute

// Scheduler owns the monthly report trigger. It is either idle or running:
// a trigger arriving while a cycle is in flight is skipped, never queued.
type Scheduler struct {
	repo    ports.Repository
	mailer  ports.ReportMailer
	logger  *slog.Logger
	now     func() time.Time
	running atomic.Bool
	cron    *cron.Cron
}

type Option func(*Scheduler)

// WithLogger injects a slog logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scheduler) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for report headers.
func WithClock(now func() time.Time) Option {
	return func(s *Scheduler) {
		if now != nil {
			s.now = now
		}
	}
}

// NewScheduler creates a Scheduler. A nil mailer disables the cycle: triggers
// log a warning and no orders are purged, since purging is only allowed for
// orders that made it into a report email.
func NewScheduler(repo ports.Repository, mailer ports.ReportMailer, opts ...Option) *Scheduler {
	s := &Scheduler{
		repo:   repo,
		mailer: mailer,
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Start registers the monthly cron trigger and begins scheduling.
func (s *Scheduler) Start() error {
	if s.cron != nil {
		return fmt.Errorf("scheduler already started")
	}
	c := cron.New()
	if _, err := c.AddFunc(CronSpec, s.Trigger); err != nil {
		return fmt.Errorf("registering report cron: %w", err)
	}
	c.Start()
	s.cron = c
	s.logger.Info("report scheduler started", slog.String("cron", CronSpec))
	return nil
}

// Stop halts the cron and waits for an in-flight cycle to finish or the
// context to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	if s.cron == nil {
		return
	}
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
	case <-ctx.Done():
	}
	s.cron = nil
}

// Trigger runs one report cycle unless one is already in flight. Errors are
// logged and swallowed so a failed cycle never affects the next trigger.
func (s *Scheduler) Trigger() {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("report cycle already running, skipping trigger")
		return
	}
	defer s.running.Store(false)

	ctx, cancel := context.WithTimeout(context.Background(), cycleTimeout)
	defer cancel()
	if err := s.RunCycle(ctx); err != nil {
		s.logger.Error("report cycle failed", slog.String("error", err.Error()))
	}
}

// RunCycle executes one report cycle: fetch completed orders (newest first),
// email the summary, then delete each reported order. Deletion is best-effort:
// an individual failure is logged and the loop continues, so a reported order
// whose delete failed simply reappears in the next month's report.
func (s *Scheduler) RunCycle(ctx context.Context) error {
	if s.mailer == nil {
		s.logger.Warn("report mailer not configured, skipping report cycle")
		return nil
	}
	completed, err := s.repo.ListByStatus(ctx, domain.StatusCompleted)
	if err != nil {
		return fmt.Errorf("listing completed orders: %w", err)
	}
	if len(completed) == 0 {
		s.logger.Info("no completed orders, skipping report")
		return nil
	}

	subject, body := Compose(completed, s.now())
	if err := s.mailer.SendMonthlyReport(ctx, subject, body); err != nil {
		return fmt.Errorf("sending monthly report: %w", err)
	}
	s.logger.Info("monthly report sent", slog.Int("orders", len(completed)))

	var failed int
	for _, order := range completed {
		if err := s.repo.Delete(ctx, order.ID); err != nil {
			failed++
			s.logger.Error("failed to delete reported order",
				slog.String("order.id", order.ID),
				slog.String("error", err.Error()),
			)
		}
	}
	if failed > 0 {
		s.logger.Warn("report cleanup incomplete", slog.Int("failed", failed), slog.Int("total", len(completed)))
	}
	return nil
}

var ptMonths = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

// Compose builds the subject and plain-text body of the monthly report.
func Compose(orders []*domain.Order, when time.Time) (subject, body string) {
	period := fmt.Sprintf("%s de %d", ptMonths[when.Month()-1], when.Year())
	subject = "Relatório Mensal - " + period

	var b strings.Builder
	fmt.Fprintf(&b, "Relatório Mensal - %s\n", period)
	fmt.Fprintf(&b, "Pedidos concluídos: %d\n", len(orders))
	for i, order := range orders {
		fmt.Fprintf(&b, "\nPedido %d\n", i+1)
		fmt.Fprintf(&b, "- ID: %s\n", order.ID)
		fmt.Fprintf(&b, "- Cliente: %s\n", order.Details.String(domain.DetailName))
		fmt.Fprintf(&b, "- Plano: %s\n", order.Plan)
		fmt.Fprintf(&b, "- Preço: R$%d\n", order.Price)
		fmt.Fprintf(&b, "- Data: %s\n", order.CreatedAt.Format("02/01/2006"))
	}
	return subject, b.String()
}
