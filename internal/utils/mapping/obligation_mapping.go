package mapping

import (
	"encoding/json"

	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/centsible/centsible_app/internal/models"
)

// ToModelObligation converts a domain Obligation to a model Obligation.
// The redundant active column is derived from status here so the two can
// never disagree on disk.
func ToModelObligation(d domain.Obligation) models.Obligation {
	return models.Obligation{
		ObligationID:    d.ObligationID,
		UserID:          d.UserID,
		Name:            d.Name,
		Amount:          d.Amount,
		Category:        string(d.Category),
		Description:     d.Description,
		PaymentMethodID: d.PaymentMethodID,
		Frequency:       string(d.Frequency),
		StartDate:       d.StartDate,
		EndDate:         d.EndDate,
		RepetitionLimit: d.RepetitionLimit,
		RepetitionsDone: d.RepetitionsDone,
		LastExecution:   d.LastExecution,
		NextExecution:   d.NextExecution,
		Status:          string(d.Status),
		Active:          d.IsActive(),
		NeedsReview:     d.NeedsReview,
		ClaimedUntil:    d.ClaimedUntil,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainObligation converts a model Obligation to a domain Obligation.
func ToDomainObligation(m models.Obligation) domain.Obligation {
	return domain.Obligation{
		ObligationID:    m.ObligationID,
		UserID:          m.UserID,
		Name:            m.Name,
		Amount:          m.Amount,
		Category:        domain.TransactionCategory(m.Category),
		Description:     m.Description,
		PaymentMethodID: m.PaymentMethodID,
		Frequency:       domain.Frequency(m.Frequency),
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		RepetitionLimit: m.RepetitionLimit,
		RepetitionsDone: m.RepetitionsDone,
		LastExecution:   m.LastExecution,
		NextExecution:   m.NextExecution,
		Status:          domain.ObligationStatus(m.Status),
		NeedsReview:     m.NeedsReview,
		ClaimedUntil:    m.ClaimedUntil,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainObligationSlice converts a slice of model Obligations.
func ToDomainObligationSlice(ms []models.Obligation) []domain.Obligation {
	ds := make([]domain.Obligation, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainObligation(m)
	}
	return ds
}

// ToModelObligationChange converts a domain change record, marshalling the
// details payload to JSON for the JSONB column.
func ToModelObligationChange(d domain.ObligationChange) (models.ObligationChange, error) {
	details := d.Details
	if details == nil {
		details = map[string]any{}
	}
	raw, err := json.Marshal(details)
	if err != nil {
		return models.ObligationChange{}, err
	}
	return models.ObligationChange{
		ChangeID:     d.ChangeID,
		ObligationID: d.ObligationID,
		UserID:       d.UserID,
		ChangeType:   string(d.ChangeType),
		Details:      raw,
		ChangeDate:   d.ChangeDate,
	}, nil
}

// ToDomainObligationChange converts a model change record.
func ToDomainObligationChange(m models.ObligationChange) domain.ObligationChange {
	details := map[string]any{}
	if len(m.Details) > 0 {
		// Corrupt details in an audit row are surfaced as an empty payload
		// rather than failing the read; the row itself is immutable.
		_ = json.Unmarshal(m.Details, &details)
	}
	return domain.ObligationChange{
		ChangeID:     m.ChangeID,
		ObligationID: m.ObligationID,
		UserID:       m.UserID,
		ChangeType:   domain.ChangeType(m.ChangeType),
		Details:      details,
		ChangeDate:   m.ChangeDate,
	}
}
