package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget mirrors a row in the budgets table.
type Budget struct {
	BudgetID      string          `json:"budgetID"`
	UserID        string          `json:"userID"`
	Category      string          `json:"category"`
	LimitAmount   decimal.Decimal `json:"limitAmount"`
	CurrentAmount decimal.Decimal `json:"currentAmount"`
	Month         time.Time       `json:"month"`
	ExceededAlert bool            `json:"exceededAlert"`
	AuditFields
}
