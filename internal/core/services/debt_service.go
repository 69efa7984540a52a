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

type debtService struct {
	debtRepo portsrepo.DebtRepositoryFacade
	userRepo portsrepo.UserRepositoryFacade
}

func NewDebtService(debtRepo portsrepo.DebtRepositoryFacade, userRepo portsrepo.UserRepositoryFacade) *debtService {
	return &debtService{debtRepo: debtRepo, userRepo: userRepo}
}

// CreateDebt records a new debt owed by the user. The creditor must be an
// existing user.
func (s *debtService) CreateDebt(ctx context.Context, req dto.CreateDebtRequest, userID string) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(400, "debt amount must be positive", apperrors.ErrValidation)
	}
	if req.CreditorID == userID {
		return nil, apperrors.NewAppError(400, "cannot owe a debt to yourself", apperrors.ErrValidation)
	}
	if _, err := s.userRepo.FindUserByID(ctx, req.CreditorID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewAppError(400, "creditor not found", apperrors.ErrValidation)
		}
		return nil, err
	}

	now := time.Now()
	debt := domain.Debt{
		DebtID:      uuid.NewString(),
		UserID:      userID,
		CreditorID:  req.CreditorID,
		Description: req.Description,
		Amount:      req.Amount,
		StartDate:   req.StartDate,
		DueDate:     req.DueDate,
		Paid:        false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.debtRepo.SaveDebt(ctx, debt); err != nil {
		logger.Error("Failed to save debt", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Debt recorded", slog.String("debt_id", debt.DebtID))
	return &debt, nil
}

func (s *debtService) GetDebtByID(ctx context.Context, debtID, requestingUserID string) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	// Both sides of the debt may view it.
	if debt.UserID != requestingUserID && debt.CreditorID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	return debt, nil
}

func (s *debtService) ListDebts(ctx context.Context, userID string) ([]domain.Debt, error) {
	debts, err := s.debtRepo.FindDebtsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if debts == nil {
		return []domain.Debt{}, nil
	}
	return debts, nil
}

// MarkDebtPaid marks a debt as settled. Only the debtor can settle it.
func (s *debtService) MarkDebtPaid(ctx context.Context, debtID, requestingUserID string) (*domain.Debt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if debt.UserID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	if debt.Paid {
		return nil, apperrors.NewAppError(400, "debt is already settled", apperrors.ErrValidation)
	}

	debt.Paid = true
	debt.LastUpdatedAt = time.Now()
	debt.LastUpdatedBy = requestingUserID

	if err := s.debtRepo.UpdateDebt(ctx, *debt); err != nil {
		logger.Error("Failed to mark debt paid", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		return nil, err
	}

	logger.Info("Debt settled", slog.String("debt_id", debtID))
	return debt, nil
}

func (s *debtService) DeleteDebt(ctx context.Context, debtID, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return err
	}
	if debt.UserID != requestingUserID {
		return apperrors.ErrForbidden
	}

	if err := s.debtRepo.DeleteDebt(ctx, debtID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete debt", slog.String("error", err.Error()), slog.String("debt_id", debtID))
		}
		return err
	}

	logger.Info("Debt deleted", slog.String("debt_id", debtID))
	return nil
}
