package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors a row in the transactions table.
type Transaction struct {
	TransactionID      string          `json:"transactionID"`
	UserID             string          `json:"userID"`
	Amount             decimal.Decimal `json:"amount"`
	Type               string          `json:"type"`
	Category           string          `json:"category"`
	Description        string          `json:"description"`
	PaymentMethodID    *string         `json:"paymentMethodID"`
	Date               time.Time       `json:"date"`
	IsScheduled        bool            `json:"isScheduled"`
	SourceObligationID *string         `json:"sourceObligationID"`
	OccurrenceDate     *time.Time      `json:"occurrenceDate"`
	AuditFields
}
