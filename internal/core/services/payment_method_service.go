package services

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/centsible/centsible_app/internal/apperrors"
	"github.com/centsible/centsible_app/internal/core/domain"
	portsrepo "github.com/centsible/centsible_app/internal/core/ports/repositories"
	"github.com/centsible/centsible_app/internal/dto"
	"github.com/centsible/centsible_app/internal/middleware"
	"github.com/google/uuid"
)

type paymentMethodService struct {
	pmRepo portsrepo.PaymentMethodRepositoryFacade
}

func NewPaymentMethodService(pmRepo portsrepo.PaymentMethodRepositoryFacade) *paymentMethodService {
	return &paymentMethodService{pmRepo: pmRepo}
}

func (s *paymentMethodService) CreatePaymentMethod(ctx context.Context, req dto.CreatePaymentMethodRequest, userID string) (*domain.PaymentMethod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	pm := domain.PaymentMethod{
		PaymentMethodID: uuid.NewString(),
		UserID:          userID,
		Name:            req.Name,
		Type:            domain.PaymentMethodType(req.Type),
		LastFourDigits:  req.LastFourDigits,
		Issuer:          req.Issuer,
		Active:          true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.pmRepo.SavePaymentMethod(ctx, pm); err != nil {
		logger.Error("Failed to save payment method", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment method created", slog.String("payment_method_id", pm.PaymentMethodID))
	return &pm, nil
}

func (s *paymentMethodService) GetPaymentMethodByID(ctx context.Context, paymentMethodID, requestingUserID string) (*domain.PaymentMethod, error) {
	pm, err := s.pmRepo.FindPaymentMethodByID(ctx, paymentMethodID)
	if err != nil {
		return nil, err
	}
	if pm.UserID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	return pm, nil
}

func (s *paymentMethodService) ListPaymentMethods(ctx context.Context, userID string) ([]domain.PaymentMethod, error) {
	return s.pmRepo.FindPaymentMethodsByUser(ctx, userID)
}

func (s *paymentMethodService) UpdatePaymentMethod(ctx context.Context, paymentMethodID string, req dto.UpdatePaymentMethodRequest, requestingUserID string) (*domain.PaymentMethod, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	pm, err := s.GetPaymentMethodByID(ctx, paymentMethodID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		pm.Name = *req.Name
	}
	if req.LastFourDigits != nil {
		pm.LastFourDigits = *req.LastFourDigits
	}
	if req.Issuer != nil {
		pm.Issuer = *req.Issuer
	}
	pm.LastUpdatedAt = time.Now()
	pm.LastUpdatedBy = requestingUserID

	if err := s.pmRepo.UpdatePaymentMethod(ctx, *pm); err != nil {
		logger.Error("Failed to update payment method", slog.String("error", err.Error()), slog.String("payment_method_id", paymentMethodID))
		return nil, err
	}

	return pm, nil
}

// DeactivatePaymentMethod soft-deletes a payment method. Transactions keep
// referencing it for history.
func (s *paymentMethodService) DeactivatePaymentMethod(ctx context.Context, paymentMethodID, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetPaymentMethodByID(ctx, paymentMethodID, requestingUserID); err != nil {
		return err
	}

	if err := s.pmRepo.DeactivatePaymentMethod(ctx, paymentMethodID, requestingUserID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to deactivate payment method", slog.String("error", err.Error()), slog.String("payment_method_id", paymentMethodID))
		}
		return err
	}

	logger.Info("Payment method deactivated", slog.String("payment_method_id", paymentMethodID))
	return nil
}
