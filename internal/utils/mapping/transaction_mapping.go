package mapping

import (
	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/centsible/centsible_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:      d.TransactionID,
		UserID:             d.UserID,
		Amount:             d.Amount,
		Type:               string(d.Type),
		Category:           string(d.Category),
		Description:        d.Description,
		PaymentMethodID:    d.PaymentMethodID,
		Date:               d.Date,
		IsScheduled:        d.IsScheduled,
		SourceObligationID: d.SourceObligationID,
		OccurrenceDate:     d.OccurrenceDate,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:      m.TransactionID,
		UserID:             m.UserID,
		Amount:             m.Amount,
		Type:               domain.TransactionType(m.Type),
		Category:           domain.TransactionCategory(m.Category),
		Description:        m.Description,
		PaymentMethodID:    m.PaymentMethodID,
		Date:               m.Date,
		IsScheduled:        m.IsScheduled,
		SourceObligationID: m.SourceObligationID,
		OccurrenceDate:     m.OccurrenceDate,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
