package repositories

import (
	"context"
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetReader defines read operations for budgets.
type BudgetReader interface {
	// FindBudgetByID retrieves a specific budget.
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)

	// FindBudgetsByUser retrieves a user's budgets for the given month.
	FindBudgetsByUser(ctx context.Context, userID string, month time.Time) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for budgets.
type BudgetWriter interface {
	// SaveBudget persists a new budget.
	SaveBudget(ctx context.Context, budget domain.Budget) error

	// UpdateBudget updates an existing budget.
	UpdateBudget(ctx context.Context, budget domain.Budget) error

	// DeleteBudget removes a budget.
	DeleteBudget(ctx context.Context, budgetID string) error

	// AddToBudgetSpend bumps current_amount for the user's (category, month)
	// budget if one exists, updating the exceeded flag in the same statement.
	AddToBudgetSpend(ctx context.Context, userID string, category domain.TransactionCategory, month time.Time, amount decimal.Decimal) error
}

// BudgetRepositoryFacade combines all budget repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
