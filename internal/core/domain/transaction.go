package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType indicates the direction of a ledger entry.
type TransactionType string

const (
	Income  TransactionType = "INCOME"
	Expense TransactionType = "EXPENSE"
)

// TransactionCategory buckets ledger entries for budgeting and reporting.
type TransactionCategory string

const (
	CategoryFood          TransactionCategory = "FOOD"
	CategoryTransport     TransactionCategory = "TRANSPORT"
	CategoryUtilities     TransactionCategory = "UTILITIES"
	CategoryEntertainment TransactionCategory = "ENTERTAINMENT"
	CategoryHealthcare    TransactionCategory = "HEALTHCARE"
	CategoryEducation     TransactionCategory = "EDUCATION"
	CategoryShopping      TransactionCategory = "SHOPPING"
	CategoryHousing       TransactionCategory = "HOUSING"
	CategoryOther         TransactionCategory = "OTHER"
)

// ValidTransactionCategory reports whether c is one of the known categories.
func ValidTransactionCategory(c TransactionCategory) bool {
	switch c {
	case CategoryFood, CategoryTransport, CategoryUtilities, CategoryEntertainment,
		CategoryHealthcare, CategoryEducation, CategoryShopping, CategoryHousing, CategoryOther:
		return true
	}
	return false
}

// Transaction is a single ledger entry. Entries produced by the obligation
// scheduler carry SourceObligationID and OccurrenceDate; the pair is unique,
// which is what makes scheduled execution idempotent.
type Transaction struct {
	TransactionID      string              `json:"transactionID"`
	UserID             string              `json:"userID"`
	Amount             decimal.Decimal     `json:"amount"`
	Type               TransactionType     `json:"type"`
	Category           TransactionCategory `json:"category"`
	Description        string              `json:"description,omitempty"`
	PaymentMethodID    *string             `json:"paymentMethodID,omitempty"`
	Date               time.Time           `json:"date"`
	IsScheduled        bool                `json:"isScheduled"`
	SourceObligationID *string             `json:"sourceObligationID,omitempty"`
	OccurrenceDate     *time.Time          `json:"occurrenceDate,omitempty"`
	AuditFields
}
