package dto

import "github.com/centsible/centsible_app/internal/core/domain"

// CreatePaymentMethodRequest defines the payload for registering a payment method.
type CreatePaymentMethodRequest struct {
	Name           string `json:"name" binding:"required,max=100"`
	Type           string `json:"type" binding:"required,oneof=CASH DEBIT_CARD CREDIT_CARD TRANSFER OTHER"`
	LastFourDigits string `json:"lastFourDigits" binding:"omitempty,len=4,numeric"`
	Issuer         string `json:"issuer" binding:"omitempty,max=100"`
}

// UpdatePaymentMethodRequest defines the data allowed for updating a payment method.
type UpdatePaymentMethodRequest struct {
	Name           *string `json:"name" binding:"omitempty,max=100"`
	LastFourDigits *string `json:"lastFourDigits" binding:"omitempty,len=4,numeric"`
	Issuer         *string `json:"issuer" binding:"omitempty,max=100"`
}

// PaymentMethodResponse is the public view of a payment method.
type PaymentMethodResponse struct {
	PaymentMethodID string `json:"paymentMethodID"`
	Name            string `json:"name"`
	Type            string `json:"type"`
	LastFourDigits  string `json:"lastFourDigits,omitempty"`
	Issuer          string `json:"issuer,omitempty"`
	Active          bool   `json:"active"`
}

// ToPaymentMethodResponse converts a domain.PaymentMethod to its DTO.
func ToPaymentMethodResponse(pm *domain.PaymentMethod) PaymentMethodResponse {
	return PaymentMethodResponse{
		PaymentMethodID: pm.PaymentMethodID,
		Name:            pm.Name,
		Type:            string(pm.Type),
		LastFourDigits:  pm.LastFourDigits,
		Issuer:          pm.Issuer,
		Active:          pm.Active,
	}
}

// ToPaymentMethodListResponse converts a slice of payment methods.
func ToPaymentMethodListResponse(pms []domain.PaymentMethod) []PaymentMethodResponse {
	out := make([]PaymentMethodResponse, len(pms))
	for i := range pms {
		out[i] = ToPaymentMethodResponse(&pms[i])
	}
	return out
}
