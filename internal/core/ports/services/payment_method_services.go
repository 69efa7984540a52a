package services

import (
	"context"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/centsible/centsible_app/internal/dto"
)

// PaymentMethodSvcFacade defines operations for managing payment methods.
type PaymentMethodSvcFacade interface {
	// CreatePaymentMethod registers a new payment method for the user.
	CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, userID string) (*domain.PaymentMethod, error)

	// GetPaymentMethodByID retrieves a payment method, enforcing ownership.
	GetPaymentMethodByID(ctx context.Context, paymentMethodID, requestingUserID string) (*domain.PaymentMethod, error)

	// ListPaymentMethods retrieves all of the user's payment methods.
	ListPaymentMethods(ctx context.Context, userID string) ([]domain.PaymentMethod, error)

	// UpdatePaymentMethod updates a payment method, enforcing ownership.
	UpdatePaymentMethod(ctx context.Context, paymentMethodID string, req dto.UpdatePaymentMethodRequest, requestingUserID string) (*domain.PaymentMethod, error)

	// DeactivatePaymentMethod soft-deletes a payment method, enforcing ownership.
	DeactivatePaymentMethod(ctx context.Context, paymentMethodID, requestingUserID string) error
}
