package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the recurrence cadence of an obligation. The set is closed;
// this is deliberately not a general cron expression.
type Frequency string

const (
	Daily   Frequency = "DAILY"
	Weekly  Frequency = "WEEKLY"
	Monthly Frequency = "MONTHLY"
	Yearly  Frequency = "YEARLY"
)

// ValidFrequency reports whether f is one of the supported cadences.
func ValidFrequency(f Frequency) bool {
	switch f {
	case Daily, Weekly, Monthly, Yearly:
		return true
	}
	return false
}

// ObligationStatus is the lifecycle state of an obligation.
type ObligationStatus string

const (
	ObligationActive    ObligationStatus = "ACTIVE"
	ObligationPaused    ObligationStatus = "PAUSED"
	ObligationCompleted ObligationStatus = "COMPLETED"
	ObligationCancelled ObligationStatus = "CANCELLED"
)

// Obligation is a recurring rule that periodically generates a ledger entry.
// NextExecution is the cursor of the schedule: always set while the obligation
// is live, monotonically non-decreasing, and advanced only by the executor.
type Obligation struct {
	ObligationID    string           `json:"obligationID"`
	UserID          string           `json:"userID"`
	Name            string           `json:"name"`
	Amount          decimal.Decimal  `json:"amount"`
	Category        TransactionCategory `json:"category"`
	Description     string           `json:"description,omitempty"`
	PaymentMethodID *string          `json:"paymentMethodID,omitempty"`
	Frequency       Frequency        `json:"frequency"`
	StartDate       time.Time        `json:"startDate"`
	EndDate         *time.Time       `json:"endDate,omitempty"`
	RepetitionLimit *int             `json:"repetitionLimit,omitempty"`
	RepetitionsDone int              `json:"repetitionsDone"`
	LastExecution   *time.Time       `json:"lastExecution,omitempty"`
	NextExecution   time.Time        `json:"nextExecution"`
	Status          ObligationStatus `json:"status"`
	NeedsReview     bool             `json:"needsReview"`
	ClaimedUntil    *time.Time       `json:"-"`
	AuditFields
}

// IsActive is the derived view of the status enum. The storage layer keeps a
// redundant active column in sync for indexing; domain code only looks here.
func (o Obligation) IsActive() bool {
	return o.Status == ObligationActive
}

// LimitReached reports whether the repetition limit is set and exhausted.
func (o Obligation) LimitReached() bool {
	return o.RepetitionLimit != nil && o.RepetitionsDone >= *o.RepetitionLimit
}

// PastEndDate reports whether the given occurrence falls beyond the hard cutoff.
func (o Obligation) PastEndDate(occurrence time.Time) bool {
	return o.EndDate != nil && occurrence.After(*o.EndDate)
}

// ChangeType labels an entry in an obligation's audit trail.
type ChangeType string

const (
	ChangeCreated         ChangeType = "CREATED"
	ChangeExecuted        ChangeType = "EXECUTED"
	ChangeEdited          ChangeType = "EDITED"
	ChangePaused          ChangeType = "PAUSED"
	ChangeResumed         ChangeType = "RESUMED"
	ChangeCancelled       ChangeType = "CANCELLED"
	ChangeCompleted       ChangeType = "COMPLETED"
	ChangeExecutionFailed ChangeType = "EXECUTION_FAILED"
)

// ObligationChange is one append-only audit record. Records are never mutated
// or deleted; replaying them reconstructs the obligation's full history.
type ObligationChange struct {
	ChangeID     string         `json:"changeID"`
	ObligationID string         `json:"obligationID"`
	UserID       string         `json:"userID"`
	ChangeType   ChangeType     `json:"changeType"`
	Details      map[string]any `json:"details"`
	ChangeDate   time.Time      `json:"changeDate"`
}
