package repositories

import (
	"context"

	"github.com/centsible/centsible_app/internal/core/domain"
)

// PaymentMethodReader defines read operations for payment methods.
type PaymentMethodReader interface {
	// FindPaymentMethodByID retrieves a specific payment method.
	FindPaymentMethodByID(ctx context.Context, paymentMethodID string) (*domain.PaymentMethod, error)

	// FindPaymentMethodsByUser retrieves all of a user's payment methods.
	FindPaymentMethodsByUser(ctx context.Context, userID string) ([]domain.PaymentMethod, error)
}

// PaymentMethodWriter defines write operations for payment methods.
type PaymentMethodWriter interface {
	// SavePaymentMethod persists a new payment method.
	SavePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error

	// UpdatePaymentMethod updates an existing payment method.
	UpdatePaymentMethod(ctx context.Context, pm domain.PaymentMethod) error

	// DeactivatePaymentMethod soft-deletes a payment method; transactions keep
	// referencing it for history.
	DeactivatePaymentMethod(ctx context.Context, paymentMethodID string, updatedBy string) error
}

// PaymentMethodRepositoryFacade combines all payment method repository interfaces.
type PaymentMethodRepositoryFacade interface {
	PaymentMethodReader
	PaymentMethodWriter
}
