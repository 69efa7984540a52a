package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a per-category spending limit for one calendar month.
type Budget struct {
	BudgetID      string              `json:"budgetID"`
	UserID        string              `json:"userID"`
	Category      TransactionCategory `json:"category"`
	LimitAmount   decimal.Decimal     `json:"limitAmount"`
	CurrentAmount decimal.Decimal     `json:"currentAmount"`
	Month         time.Time           `json:"month"` // First day of the budgeted month
	ExceededAlert bool                `json:"exceededAlert"`
	AuditFields
}
