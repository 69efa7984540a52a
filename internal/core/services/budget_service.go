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
	"github.com/shopspring/decimal"
)

type budgetService struct {
	budgetRepo portsrepo.BudgetRepositoryFacade
}

func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade) *budgetService {
	return &budgetService{budgetRepo: budgetRepo}
}

// CreateBudget creates a budget for a (category, month) pair. The month field
// is normalized to the first day of the month.
func (s *budgetService) CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.LimitAmount.IsPositive() {
		return nil, apperrors.NewAppError(400, "budget limit must be positive", apperrors.ErrValidation)
	}

	now := time.Now()
	budget := domain.Budget{
		BudgetID:      uuid.NewString(),
		UserID:        userID,
		Category:      domain.TransactionCategory(req.Category),
		LimitAmount:   req.LimitAmount,
		CurrentAmount: decimal.Zero,
		Month:         monthOf(req.Month),
		ExceededAlert: false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.budgetRepo.SaveBudget(ctx, budget); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(409, "budget already exists for this category and month", err)
		}
		logger.Error("Failed to save budget", slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Budget created", slog.String("budget_id", budget.BudgetID), slog.String("category", string(budget.Category)))
	return &budget, nil
}

func (s *budgetService) GetBudgetByID(ctx context.Context, budgetID, requestingUserID string) (*domain.Budget, error) {
	budget, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	if budget.UserID != requestingUserID {
		return nil, apperrors.ErrForbidden
	}
	return budget, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string, month time.Time) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.FindBudgetsByUser(ctx, userID, monthOf(month))
	if err != nil {
		return nil, err
	}
	if budgets == nil {
		return []domain.Budget{}, nil
	}
	return budgets, nil
}

func (s *budgetService) UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, requestingUserID string) (*domain.Budget, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	budget, err := s.GetBudgetByID(ctx, budgetID, requestingUserID)
	if err != nil {
		return nil, err
	}

	if req.LimitAmount != nil {
		if !req.LimitAmount.IsPositive() {
			return nil, apperrors.NewAppError(400, "budget limit must be positive", apperrors.ErrValidation)
		}
		budget.LimitAmount = *req.LimitAmount
		budget.ExceededAlert = budget.CurrentAmount.GreaterThan(budget.LimitAmount)
	}
	budget.LastUpdatedAt = time.Now()
	budget.LastUpdatedBy = requestingUserID

	if err := s.budgetRepo.UpdateBudget(ctx, *budget); err != nil {
		logger.Error("Failed to update budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		return nil, err
	}

	return budget, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, budgetID, requestingUserID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.GetBudgetByID(ctx, budgetID, requestingUserID); err != nil {
		return err
	}

	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete budget", slog.String("error", err.Error()), slog.String("budget_id", budgetID))
		}
		return err
	}

	logger.Info("Budget deleted", slog.String("budget_id", budgetID))
	return nil
}
