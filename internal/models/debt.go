package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt mirrors a row in the debts table.
type Debt struct {
	DebtID      string          `json:"debtID"`
	UserID      string          `json:"userID"`
	CreditorID  string          `json:"creditorID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	StartDate   time.Time       `json:"startDate"`
	DueDate     time.Time       `json:"dueDate"`
	Paid        bool            `json:"paid"`
	AuditFields
}
