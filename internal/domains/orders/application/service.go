package application

import (
	"context"
	"strconv"
	"time"

	"github.com/devqueiroz/landing-orders/internal/domains/orders/domain"
	"github.com/devqueiroz/landing-orders/internal/domains/orders/ports"
)

// DeleteConfirmation is the fixed text returned after removing an order.
const DeleteConfirmation = "Pedido excluído com sucesso"

// Service orchestrates the order intake use cases.
type Service struct {
	repo ports.Repository
	now  func() time.Time
}

type Option func(*Service)

// WithClock overrides the time source, used by tests for deterministic ids
// and delivery dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func NewService(repo ports.Repository, opts ...Option) *Service {
	s := &Service{repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// SubmitOrder validates the submission, derives price and delivery date,
// persists the order as pending, and builds the pre-filled contact link.
func (s *Service) SubmitOrder(ctx context.Context, plan domain.Plan, details domain.Details) (*ports.Submission, error) {
	if err := domain.ValidateSubmission(plan, details); err != nil {
		return nil, mapError(err)
	}
	now := s.now()
	order := &domain.Order{
		ID:           strconv.FormatInt(now.UnixMilli(), 10),
		Details:      details,
		Plan:         plan,
		Price:        domain.Price(plan, details),
		Status:       domain.StatusPending,
		DeliveryDate: domain.DeliveryDate(plan, now),
	}
	saved, err := s.repo.Save(ctx, order)
	if err != nil {
		return nil, err
	}
	message := domain.ContactMessage(saved.Details, saved.Plan, saved.Price, saved.DeliveryDate)
	link := domain.ContactLink(saved.Details.String(domain.DetailWhatsApp), message)
	return &ports.Submission{Order: saved, ContactLink: link}, nil
}

// ListOrders returns all orders ordered by creation time ascending.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.repo.List(ctx)
}

// GetOrder fetches an order and regenerates its design brief from the stored
// details and plan.
func (s *Service) GetOrder(ctx context.Context, id string) (*domain.Order, string, error) {
	order, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, "", err
	}
	return order, domain.Brief(order.Details, order.Plan), nil
}

// UpdateOrder overwrites the four mutable fields of an order. Validation runs
// before any store call, so a rejected update never mutates state.
func (s *Service) UpdateOrder(ctx context.Context, id string, input ports.UpdateInput) (*domain.Order, error) {
	if !domain.ValidStatus(input.Status) {
		return nil, mapError(domain.ErrInvalidStatus)
	}
	if len(input.Details) == 0 || input.Price == 0 || input.DeliveryDate == "" {
		return nil, mapError(domain.ErrMissingDetails)
	}
	order := &domain.Order{
		ID:           id,
		Details:      input.Details,
		Price:        input.Price,
		Status:       input.Status,
		DeliveryDate: input.DeliveryDate,
	}
	return s.repo.Update(ctx, order)
}

// DeleteOrder removes the order. Deletion is idempotent at the store level,
// so an absent id still yields the confirmation message.
func (s *Service) DeleteOrder(ctx context.Context, id string) (string, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return "", err
	}
	return DeleteConfirmation, nil
}

var _ ports.Service = (*Service)(nil)
