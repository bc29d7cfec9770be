package ports

import (
	"context"

	"github.com/devqueiroz/landing-orders/internal/domains/orders/domain"
)

// Submission is the result of a successful order intake.
type Submission struct {
	Order       *domain.Order
	ContactLink string
}

// UpdateInput carries the four mutable fields of an order.
type UpdateInput struct {
	Details      domain.Details
	Price        int
	Status       domain.Status
	DeliveryDate string
}

// Service exposes the order intake use cases.
type Service interface {
	SubmitOrder(ctx context.Context, plan domain.Plan, details domain.Details) (*Submission, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
	// GetOrder returns the order plus a freshly generated design brief.
	GetOrder(ctx context.Context, id string) (*domain.Order, string, error)
	UpdateOrder(ctx context.Context, id string, input UpdateInput) (*domain.Order, error)
	// DeleteOrder removes the order and returns a fixed confirmation message.
	DeleteOrder(ctx context.Context, id string) (string, error)
}
