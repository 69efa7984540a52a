package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Debt is money owed by the user to another user.
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
