package services

import (
	"context"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/centsible/centsible_app/internal/dto"
)

// DebtSvcFacade defines operations for managing debts.
type DebtSvcFacade interface {
	// CreateDebt records a new debt owed by the user.
	CreateDebt(ctx context.Context, req dto.CreateDebtRequest, userID string) (*domain.Debt, error)

	// GetDebtByID retrieves a debt, enforcing ownership.
	GetDebtByID(ctx context.Context, debtID, requestingUserID string) (*domain.Debt, error)

	// ListDebts retrieves all debts owed by the user.
	ListDebts(ctx context.Context, userID string) ([]domain.Debt, error)

	// MarkDebtPaid marks a debt as settled.
	MarkDebtPaid(ctx context.Context, debtID, requestingUserID string) (*domain.Debt, error)

	// DeleteDebt removes a debt, enforcing ownership.
	DeleteDebt(ctx context.Context, debtID, requestingUserID string) error
}
