package dto

import (
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateBudgetRequest defines the payload for creating a monthly budget.
type CreateBudgetRequest struct {
	Category    string          `json:"category" binding:"required,txcategory"`
	LimitAmount decimal.Decimal `json:"limitAmount" binding:"required"`
	Month       time.Time       `json:"month" binding:"required"`
}

// UpdateBudgetRequest defines the data allowed for updating a budget.
type UpdateBudgetRequest struct {
	LimitAmount *decimal.Decimal `json:"limitAmount"`
}

// BudgetResponse is the public view of a budget.
type BudgetResponse struct {
	BudgetID      string          `json:"budgetID"`
	Category      string          `json:"category"`
	LimitAmount   decimal.Decimal `json:"limitAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Month         time.Time       `json:"month"`
	ExceededAlert bool            `json:"exceededAlert"`
}

// ToBudgetResponse converts a domain.Budget to its DTO.
func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		BudgetID:      b.BudgetID,
		Category:      string(b.Category),
		LimitAmount:   b.LimitAmount,
		CurrentAmount: b.CurrentAmount,
		Month:         b.Month,
		ExceededAlert: b.ExceededAlert,
	}
}

// ToBudgetListResponse converts a slice of budgets.
func ToBudgetListResponse(bs []domain.Budget) []BudgetResponse {
	out := make([]BudgetResponse, len(bs))
	for i := range bs {
		out[i] = ToBudgetResponse(&bs[i])
	}
	return out
}
