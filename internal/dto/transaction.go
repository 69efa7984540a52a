package dto

import (
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the payload for recording a ledger entry.
type CreateTransactionRequest struct {
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Type            string          `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Category        string          `json:"category" binding:"required,txcategory"`
	Description     string          `json:"description" binding:"max=500"`
	PaymentMethodID *string         `json:"paymentMethodID"`
	Date            time.Time       `json:"date" binding:"required"`
}

// UpdateTransactionRequest defines the data allowed for updating an entry.
type UpdateTransactionRequest struct {
	Amount          *decimal.Decimal `json:"amount"`
	Type            *string          `json:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
	Category        *string          `json:"category" binding:"omitempty,txcategory"`
	Description     *string          `json:"description" binding:"omitempty,max=500"`
	PaymentMethodID *string          `json:"paymentMethodID"`
	Date            *time.Time       `json:"date"`
}

// ListTransactionsParams defines query parameters for listing entries.
type ListTransactionsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// TransactionResponse is the public view of a ledger entry.
type TransactionResponse struct {
	TransactionID      string          `json:"transactionID"`
	UserID             string          `json:"userID"`
	Amount             decimal.Decimal `json:"amount"`
	Type               string          `json:"type"`
	Category           string          `json:"category"`
	Description        string          `json:"description,omitempty"`
	PaymentMethodID    *string         `json:"paymentMethodID,omitempty"`
	Date               time.Time       `json:"date"`
	IsScheduled        bool            `json:"isScheduled"`
	SourceObligationID *string         `json:"sourceObligationID,omitempty"`
	OccurrenceDate     *time.Time      `json:"occurrenceDate,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:      t.TransactionID,
		UserID:             t.UserID,
		Amount:             t.Amount,
		Type:               string(t.Type),
		Category:           string(t.Category),
		Description:        t.Description,
		PaymentMethodID:    t.PaymentMethodID,
		Date:               t.Date,
		IsScheduled:        t.IsScheduled,
		SourceObligationID: t.SourceObligationID,
		OccurrenceDate:     t.OccurrenceDate,
	}
}

// ListTransactionsResponse wraps a page of entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// ToListTransactionsResponse converts a slice of domain transactions.
func ToListTransactionsResponse(txns []domain.Transaction) ListTransactionsResponse {
	out := make([]TransactionResponse, len(txns))
	for i := range txns {
		out[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: out}
}
