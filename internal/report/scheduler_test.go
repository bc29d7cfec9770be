package report

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/devqueiroz/landing-orders/internal/domains/orders/adapters/memory"
	"github.com/devqueiroz/landing-orders/internal/domains/orders/domain"
	"github.com/devqueiroz/landing-orders/internal/domains/orders/ports"
)

type fakeMailer struct {
	mu       sync.Mutex
	sent     int
	subjects []string
	bodies   []string
	err      error
}

func (f *fakeMailer) SendMonthlyReport(_ context.Context, subject, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent++
	f.subjects = append(f.subjects, subject)
	f.bodies = append(f.bodies, body)
	return nil
}

var _ ports.ReportMailer = (*fakeMailer)(nil)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seedRepo(t *testing.T) *memory.Repository {
	t.Helper()
	repo := memory.NewRepository()
	orders := []*domain.Order{
		{ID: "1", Details: domain.Details{domain.DetailName: "Ana"}, Plan: domain.PlanEssential, Price: 120, Status: domain.StatusCompleted, CreatedAt: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "2", Details: domain.Details{domain.DetailName: "Bruno"}, Plan: domain.PlanPremium, Price: 380, Status: domain.StatusCompleted, CreatedAt: time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)},
		{ID: "3", Details: domain.Details{domain.DetailName: "Carla"}, Plan: domain.PlanProfessional, Price: 200, Status: domain.StatusPending, CreatedAt: time.Date(2024, 5, 25, 0, 0, 0, 0, time.UTC)},
	}
	for _, order := range orders {
		_, err := repo.Save(context.Background(), order)
		require.NoError(t, err)
	}
	return repo
}

func TestRunCycle_EmailsAndPurgesCompletedOrders(t *testing.T) {
	repo := seedRepo(t)
	mailer := &fakeMailer{}
	s := NewScheduler(repo, mailer,
		WithLogger(quietLogger()),
		WithClock(func() time.Time { return time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC) }),
	)

	require.NoError(t, s.RunCycle(context.Background()))

	require.Equal(t, 1, mailer.sent)
	require.Equal(t, "Relatório Mensal - junho de 2024", mailer.subjects[0])
	require.Contains(t, mailer.bodies[0], "Pedidos concluídos: 2")
	require.Contains(t, mailer.bodies[0], "Cliente: Ana")
	require.Contains(t, mailer.bodies[0], "Cliente: Bruno")
	require.NotContains(t, mailer.bodies[0], "Carla")

	// Both completed orders were purged, the pending one survives.
	remaining, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	require.Equal(t, "3", remaining[0].ID)
}

func TestRunCycle_NoCompletedOrdersSendsNothing(t *testing.T) {
	repo := memory.NewRepository()
	mailer := &fakeMailer{}
	s := NewScheduler(repo, mailer, WithLogger(quietLogger()))

	require.NoError(t, s.RunCycle(context.Background()))
	require.Zero(t, mailer.sent)
}

func TestRunCycle_MailFailureKeepsOrders(t *testing.T) {
	repo := seedRepo(t)
	mailer := &fakeMailer{err: errors.New("smtp down")}
	s := NewScheduler(repo, mailer, WithLogger(quietLogger()))

	require.Error(t, s.RunCycle(context.Background()))

	remaining, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 3)
}

func TestRunCycle_NilMailerSkipsWithoutPurging(t *testing.T) {
	repo := seedRepo(t)
	s := NewScheduler(repo, nil, WithLogger(quietLogger()))

	require.NoError(t, s.RunCycle(context.Background()))

	remaining, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, remaining, 3)
}

// failingDeleteRepo wraps the memory repository and fails deletion of one id.
type failingDeleteRepo struct {
	*memory.Repository
	failID string
}

func (f *failingDeleteRepo) Delete(ctx context.Context, id string) error {
	if id == f.failID {
		return errors.New("delete refused")
	}
	return f.Repository.Delete(ctx, id)
}

func TestRunCycle_DeletionIsBestEffort(t *testing.T) {
	repo := &failingDeleteRepo{Repository: seedRepo(t), failID: "2"}
	mailer := &fakeMailer{}
	s := NewScheduler(repo, mailer, WithLogger(quietLogger()))

	require.NoError(t, s.RunCycle(context.Background()))
	require.Equal(t, 1, mailer.sent)

	// The failing row stays behind, the other completed order is gone.
	_, err := repo.GetByID(context.Background(), "1")
	require.ErrorIs(t, err, ports.ErrNotFound)
	order, err := repo.GetByID(context.Background(), "2")
	require.NoError(t, err)
	require.Equal(t, domain.StatusCompleted, order.Status)
}

// blockingRepo parks ListByStatus until released, to hold a cycle in flight.
type blockingRepo struct {
	*memory.Repository
	entered chan struct{}
	release chan struct{}
}

func (b *blockingRepo) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error) {
	close(b.entered)
	<-b.release
	return b.Repository.ListByStatus(ctx, status)
}

func TestTrigger_SkipsWhenCycleInFlight(t *testing.T) {
	repo := &blockingRepo{
		Repository: memory.NewRepository(),
		entered:    make(chan struct{}),
		release:    make(chan struct{}),
	}
	mailer := &fakeMailer{}
	s := NewScheduler(repo, mailer, WithLogger(quietLogger()))

	done := make(chan struct{})
	go func() {
		s.Trigger()
		close(done)
	}()
	<-repo.entered

	// A second trigger while the first is blocked must return immediately.
	s.Trigger()

	close(repo.release)
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("first trigger did not finish")
	}
	require.Zero(t, mailer.sent)
}

func TestCompose_FormatsPeriodAndRows(t *testing.T) {
	orders := []*domain.Order{
		{ID: "10", Details: domain.Details{domain.DetailName: "Ana"}, Plan: domain.PlanEssential, Price: 120, CreatedAt: time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)},
	}
	subject, body := Compose(orders, time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC))

	require.Equal(t, "Relatório Mensal - dezembro de 2024", subject)
	require.Contains(t, body, "- ID: 10")
	require.Contains(t, body, "- Plano: Essencial")
	require.Contains(t, body, "- Preço: R$120")
	require.Contains(t, body, "- Data: 10/05/2024")
}
