package dto

import "github.com/google/uuid"

type CheckoutRequest struct {
	RegistrationId uuid.UUID `json:"registration_id" validate:"required"`
}

type CheckoutResponse struct {
	OrderId     string `json:"order_id"`
	SnapToken   string `json:"snap_token"`
	RedirectURL string `json:"redirect_url"`
}

// MidtransWebhookRequest mirrors the gateway notification payload.
type MidtransWebhookRequest struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	SignatureKey      string `json:"signature_key"`
	FraudStatus       string `json:"fraud_status"`
	PaymentType       string `json:"payment_type"`
}

type ReportPaymentResponse struct {
	RegistrationId uuid.UUID `json:"registration_id"`
	Status         string    `json:"status"`
	ReceiptURL     string    `json:"receipt_url"`
}
