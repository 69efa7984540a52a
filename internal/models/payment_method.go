package models

// PaymentMethod mirrors a row in the payment_methods table.
type PaymentMethod struct {
	PaymentMethodID string `json:"paymentMethodID"`
	UserID          string `json:"userID"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	LastFourDigits  string `json:"lastFourDigits"`
	Issuer          string `json:"issuer"`
	Active          bool   `json:"active"`
	AuditFields
}
