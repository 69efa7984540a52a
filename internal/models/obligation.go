package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Obligation mirrors a row in the obligations table. The active column is
// redundant with status and exists for the partial index behind due queries;
// the repository derives it from status on every write.
type Obligation struct {
	ObligationID    string          `json:"obligationID"`
	UserID          string          `json:"userID"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Description     string          `json:"description"`
	PaymentMethodID *string         `json:"paymentMethodID"`
	Frequency       string          `json:"frequency"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         *time.Time      `json:"endDate"`
	RepetitionLimit *int            `json:"repetitionLimit"`
	RepetitionsDone int             `json:"repetitionsDone"`
	LastExecution   *time.Time      `json:"lastExecution"`
	NextExecution   time.Time       `json:"nextExecution"`
	Status          string          `json:"status"`
	Active          bool            `json:"active"`
	NeedsReview     bool            `json:"needsReview"`
	ClaimedUntil    *time.Time      `json:"claimedUntil"`
	AuditFields
}

// ObligationChange mirrors a row in the append-only obligation_changes table.
type ObligationChange struct {
	ChangeID     string    `json:"changeID"`
	ObligationID string    `json:"obligationID"`
	UserID       string    `json:"userID"`
	ChangeType   string    `json:"changeType"`
	Details      []byte    `json:"details"` // JSONB payload
	ChangeDate   time.Time `json:"changeDate"`
}
