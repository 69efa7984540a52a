package mapping

import (
	"github.com/centsible/centsible_app/internal/core/domain"
	"github.com/centsible/centsible_app/internal/models"
)

// ToModelPaymentMethod converts a domain PaymentMethod to its model.
func ToModelPaymentMethod(d domain.PaymentMethod) models.PaymentMethod {
	return models.PaymentMethod{
		PaymentMethodID: d.PaymentMethodID,
		UserID:          d.UserID,
		Name:            d.Name,
		Type:            string(d.Type),
		LastFourDigits:  d.LastFourDigits,
		Issuer:          d.Issuer,
		Active:          d.Active,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentMethod converts a model PaymentMethod to its domain form.
func ToDomainPaymentMethod(m models.PaymentMethod) domain.PaymentMethod {
	return domain.PaymentMethod{
		PaymentMethodID: m.PaymentMethodID,
		UserID:          m.UserID,
		Name:            m.Name,
		Type:            domain.PaymentMethodType(m.Type),
		LastFourDigits:  m.LastFourDigits,
		Issuer:          m.Issuer,
		Active:          m.Active,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelBudget converts a domain Budget to its model.
func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		BudgetID:      d.BudgetID,
		UserID:        d.UserID,
		Category:      string(d.Category),
		LimitAmount:   d.LimitAmount,
		CurrentAmount: d.CurrentAmount,
		Month:         d.Month,
		ExceededAlert: d.ExceededAlert,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBudget converts a model Budget to its domain form.
func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		BudgetID:      m.BudgetID,
		UserID:        m.UserID,
		Category:      domain.TransactionCategory(m.Category),
		LimitAmount:   m.LimitAmount,
		CurrentAmount: m.CurrentAmount,
		Month:         m.Month,
		ExceededAlert: m.ExceededAlert,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelGoal converts a domain Goal to its model.
func ToModelGoal(d domain.Goal) models.Goal {
	return models.Goal{
		GoalID:        d.GoalID,
		UserID:        d.UserID,
		Name:          d.Name,
		TargetAmount:  d.TargetAmount,
		CurrentAmount: d.CurrentAmount,
		StartDate:     d.StartDate,
		EndDate:       d.EndDate,
		Status:        string(d.Status),
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainGoal converts a model Goal to its domain form.
func ToDomainGoal(m models.Goal) domain.Goal {
	return domain.Goal{
		GoalID:        m.GoalID,
		UserID:        m.UserID,
		Name:          m.Name,
		TargetAmount:  m.TargetAmount,
		CurrentAmount: m.CurrentAmount,
		StartDate:     m.StartDate,
		EndDate:       m.EndDate,
		Status:        domain.GoalStatus(m.Status),
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelDebt converts a domain Debt to its model.
func ToModelDebt(d domain.Debt) models.Debt {
	return models.Debt{
		DebtID:      d.DebtID,
		UserID:      d.UserID,
		CreditorID:  d.CreditorID,
		Description: d.Description,
		Amount:      d.Amount,
		StartDate:   d.StartDate,
		DueDate:     d.DueDate,
		Paid:        d.Paid,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebt converts a model Debt to its domain form.
func ToDomainDebt(m models.Debt) domain.Debt {
	return domain.Debt{
		DebtID:      m.DebtID,
		UserID:      m.UserID,
		CreditorID:  m.CreditorID,
		Description: m.Description,
		Amount:      m.Amount,
		StartDate:   m.StartDate,
		DueDate:     m.DueDate,
		Paid:        m.Paid,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelFriend converts a domain Friend to its model.
func ToModelFriend(d domain.Friend) models.Friend {
	return models.Friend{
		ConnectionID:   d.ConnectionID,
		UserID:         d.UserID,
		FriendID:       d.FriendID,
		Status:         string(d.Status),
		ConnectionDate: d.ConnectionDate,
	}
}

// ToDomainFriend converts a model Friend to its domain form.
func ToDomainFriend(m models.Friend) domain.Friend {
	return domain.Friend{
		ConnectionID:   m.ConnectionID,
		UserID:         m.UserID,
		FriendID:       m.FriendID,
		Status:         domain.FriendStatus(m.Status),
		ConnectionDate: m.ConnectionDate,
	}
}
