package ports

import (
	"context"
	"errors"

	"github.com/devqueiroz/landing-orders/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists orders. The store owns order lifetime: creation stamps
// CreatedAt, and Delete is idempotent (removing an absent id is not an error).
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// List returns all orders ordered by creation time ascending.
	List(ctx context.Context) ([]*domain.Order, error)
	// ListByStatus returns orders with the given status ordered by creation
	// time descending, the order the monthly report expects.
	ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Order, error)
	Update(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Delete(ctx context.Context, id string) error
}
