package application

import (
	"errors"
	"fmt"

	"github.com/devqueiroz/landing-orders/internal/domains/orders/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid order input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrInvalidPlan) ||
		errors.Is(err, domain.ErrInvalidStatus) ||
		errors.Is(err, domain.ErrMissingDetails) ||
		errors.Is(err, domain.ErrInvalidWhatsApp) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
