package dto

import (
	"time"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateObligationRequest defines the payload for declaring a recurring
// obligation. Dates are calendar days; time-of-day is ignored.
type CreateObligationRequest struct {
	Name            string          `json:"name" binding:"required,max=100"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	Category        string          `json:"category" binding:"required,txcategory"`
	Description     string          `json:"description" binding:"max=500"`
	PaymentMethodID *string         `json:"paymentMethodID"`
	Frequency       string          `json:"frequency" binding:"required,obfrequency"`
	StartDate       time.Time       `json:"startDate" binding:"required"`
	EndDate         *time.Time      `json:"endDate"`
	RepetitionLimit *int            `json:"repetitionLimit" binding:"omitempty,min=1"`
}

// UpdateObligationRequest defines the data allowed for editing an obligation.
// Frequency and start date are immutable once created; cancel and recreate to
// change the cadence.
type UpdateObligationRequest struct {
	Name            *string          `json:"name" binding:"omitempty,max=100"`
	Amount          *decimal.Decimal `json:"amount"`
	Category        *string          `json:"category" binding:"omitempty,txcategory"`
	Description     *string          `json:"description" binding:"omitempty,max=500"`
	PaymentMethodID *string          `json:"paymentMethodID"`
	EndDate         *time.Time       `json:"endDate"`
	RepetitionLimit *int             `json:"repetitionLimit" binding:"omitempty,min=1"`
}

// ListObligationsParams defines query parameters for listing obligations.
type ListObligationsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ObligationResponse is the public view of an obligation.
type ObligationResponse struct {
	ObligationID    string          `json:"obligationID"`
	UserID          string          `json:"userID"`
	Name            string          `json:"name"`
	Amount          decimal.Decimal `json:"amount"`
	Category        string          `json:"category"`
	Description     string          `json:"description,omitempty"`
	PaymentMethodID *string         `json:"paymentMethodID,omitempty"`
	Frequency       string          `json:"frequency"`
	StartDate       time.Time       `json:"startDate"`
	EndDate         *time.Time      `json:"endDate,omitempty"`
	RepetitionLimit *int            `json:"repetitionLimit,omitempty"`
	RepetitionsDone int             `json:"repetitionsDone"`
	LastExecution   *time.Time      `json:"lastExecution,omitempty"`
	NextExecution   time.Time       `json:"nextExecution"`
	Status          string          `json:"status"`
	Active          bool            `json:"active"`
	NeedsReview     bool            `json:"needsReview"`
}

// ToObligationResponse converts a domain.Obligation to its DTO.
func ToObligationResponse(o *domain.Obligation) ObligationResponse {
	return ObligationResponse{
		ObligationID:    o.ObligationID,
		UserID:          o.UserID,
		Name:            o.Name,
		Amount:          o.Amount,
		Category:        string(o.Category),
		Description:     o.Description,
		PaymentMethodID: o.PaymentMethodID,
		Frequency:       string(o.Frequency),
		StartDate:       o.StartDate,
		EndDate:         o.EndDate,
		RepetitionLimit: o.RepetitionLimit,
		RepetitionsDone: o.RepetitionsDone,
		LastExecution:   o.LastExecution,
		NextExecution:   o.NextExecution,
		Status:          string(o.Status),
		Active:          o.IsActive(),
		NeedsReview:     o.NeedsReview,
	}
}

// ListObligationsResponse wraps a page of obligations.
type ListObligationsResponse struct {
	Obligations []ObligationResponse `json:"obligations"`
}

// ToListObligationsResponse converts a slice of domain obligations.
func ToListObligationsResponse(obs []domain.Obligation) ListObligationsResponse {
	out := make([]ObligationResponse, len(obs))
	for i := range obs {
		out[i] = ToObligationResponse(&obs[i])
	}
	return ListObligationsResponse{Obligations: out}
}

// ObligationChangeResponse is one audit record in an obligation's history.
type ObligationChangeResponse struct {
	ChangeID     string         `json:"changeID"`
	ObligationID string         `json:"obligationID"`
	ChangeType   string         `json:"changeType"`
	Details      map[string]any `json:"details"`
	ChangeDate   time.Time      `json:"changeDate"`
}

// ToObligationHistoryResponse converts an obligation's audit trail.
func ToObligationHistoryResponse(changes []domain.ObligationChange) []ObligationChangeResponse {
	out := make([]ObligationChangeResponse, len(changes))
	for i, c := range changes {
		out[i] = ObligationChangeResponse{
			ChangeID:     c.ChangeID,
			ObligationID: c.ObligationID,
			ChangeType:   string(c.ChangeType),
			Details:      c.Details,
			ChangeDate:   c.ChangeDate,
		}
	}
	return out
}
