package domain

// PaymentMethodType classifies how a payment method settles.
type PaymentMethodType string

const (
	PaymentMethodCash       PaymentMethodType = "CASH"
	PaymentMethodDebitCard  PaymentMethodType = "DEBIT_CARD"
	PaymentMethodCreditCard PaymentMethodType = "CREDIT_CARD"
	PaymentMethodTransfer   PaymentMethodType = "TRANSFER"
	PaymentMethodOther      PaymentMethodType = "OTHER"
)

// PaymentMethod is a user-owned payment instrument referenced by transactions.
type PaymentMethod struct {
	PaymentMethodID string            `json:"paymentMethodID"`
	UserID          string            `json:"userID"`
	Name            string            `json:"name"`
	Type            PaymentMethodType `json:"type"`
	LastFourDigits  string            `json:"lastFourDigits,omitempty"`
	Issuer          string            `json:"issuer,omitempty"`
	Active          bool              `json:"active"`
	AuditFields
}
