package repositories

import (
	"context"

	"github.com/centsible/centsible_app/internal/core/domain"
)

// DebtReader defines read operations for debts.
type DebtReader interface {
	// FindDebtByID retrieves a specific debt.
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)

	// FindDebtsByUser retrieves all debts owed by a user.
	FindDebtsByUser(ctx context.Context, userID string) ([]domain.Debt, error)
}

// DebtWriter defines write operations for debts.
type DebtWriter interface {
	// SaveDebt persists a new debt.
	SaveDebt(ctx context.Context, debt domain.Debt) error

	// UpdateDebt updates an existing debt.
	UpdateDebt(ctx context.Context, debt domain.Debt) error

	// DeleteDebt removes a debt.
	DeleteDebt(ctx context.Context, debtID string) error
}

// DebtRepositoryFacade combines all debt repository interfaces.
type DebtRepositoryFacade interface {
	DebtReader
	DebtWriter
}
