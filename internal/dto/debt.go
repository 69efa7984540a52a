package dto

import (
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateDebtRequest defines the payload for recording a debt.
type CreateDebtRequest struct {
	CreditorID  string          `json:"creditorID" binding:"required"`
	Description string          `json:"description" binding:"required,max=500"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	StartDate   time.Time       `json:"startDate" binding:"required"`
	DueDate     time.Time       `json:"dueDate" binding:"required"`
}

// DebtResponse is the public view of a debt.
type DebtResponse struct {
	DebtID      string          `json:"debtID"`
	CreditorID  string          `json:"creditorID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	StartDate   time.Time       `json:"startDate"`
	DueDate     time.Time       `json:"dueDate"`
	Paid        bool            `json:"paid"`
}

// ToDebtResponse converts a domain.Debt to its DTO.
func ToDebtResponse(d *domain.Debt) DebtResponse {
	return DebtResponse{
		DebtID:      d.DebtID,
		CreditorID:  d.CreditorID,
		Description: d.Description,
		Amount:      d.Amount,
		StartDate:   d.StartDate,
		DueDate:     d.DueDate,
		Paid:        d.Paid,
	}
}

// ToDebtListResponse converts a slice of debts.
func ToDebtListResponse(ds []domain.Debt) []DebtResponse {
	out := make([]DebtResponse, len(ds))
	for i := range ds {
		out[i] = ToDebtResponse(&ds[i])
	}
	return out
}
