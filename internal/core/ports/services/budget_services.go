package services

import (
	"context"
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/centsible/centsible_app/internal/dto"
)

// BudgetSvcFacade defines operations for managing monthly category budgets.
type BudgetSvcFacade interface {
	// CreateBudget creates a budget for a (category, month) pair.
	CreateBudget(ctx context.Context, req dto.CreateBudgetRequest, userID string) (*domain.Budget, error)

	// GetBudgetByID retrieves a budget, enforcing ownership.
	GetBudgetByID(ctx context.Context, budgetID, requestingUserID string) (*domain.Budget, error)

	// ListBudgets retrieves the user's budgets for a month.
	ListBudgets(ctx context.Context, userID string, month time.Time) ([]domain.Budget, error)

	// UpdateBudget updates a budget, enforcing ownership.
	UpdateBudget(ctx context.Context, budgetID string, req dto.UpdateBudgetRequest, requestingUserID string) (*domain.Budget, error)

	// DeleteBudget removes a budget, enforcing ownership.
	DeleteBudget(ctx context.Context, budgetID, requestingUserID string) error
}
