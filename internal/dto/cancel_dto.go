package dto

import (
	"time"

	"github.com/google/uuid"
)

// CancelRegistrationRequest covers both refund and donation requests.
// Bank fields are schema-optional; the service enforces them for the
// refund type (donations keep the money, no account needed).
type CancelRegistrationRequest struct {
	RequestType       string `json:"request_type" validate:"required,oneof=refund donation"`
	Reason            string `json:"reason" validate:"required,min=10"`
	BankAccountNumber string `json:"bank_account_number" validate:"omitempty,min=6"`
	BankName          string `json:"bank_name" validate:"omitempty,min=2"`
	AccountHolderName string `json:"account_holder_name" validate:"omitempty,min=2"`
}

type CancelRequestResponse struct {
	Id          uuid.UUID `json:"id,omitempty"`
	RequestType string    `json:"request_type"`
	Status      string    `json:"status"`
	Message     string    `json:"message"`
}

type AdminCancelRequestResponse struct {
	Id           uuid.UUID               `json:"id"`
	User         AdminUserInfo           `json:"user"`
	Registration AdminRegistrationInfo   `json:"registration"`
	RequestType  string                  `json:"request_type"`
	Reason       string                  `json:"reason"`
	RefundAmount int64                   `json:"refund_amount"`
	BankInfo     *AdminCancelBankInfo    `json:"bank_info,omitempty"`
	Status       string                  `json:"status"`
	AdminNotes   string                  `json:"admin_notes,omitempty"`
	CreatedAt    time.Time               `json:"created_at"`
	ProcessedAt  *time.Time              `json:"processed_at,omitempty"`
}

type AdminUserInfo struct {
	Id       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
}

type AdminRegistrationInfo struct {
	Id          uuid.UUID `json:"id"`
	InvoiceCode string    `json:"invoice_code"`
	Status      string    `json:"status"`
	TotalAmount int64     `json:"total_amount"`
}

type AdminCancelBankInfo struct {
	BankAccountNumber string `json:"bank_account_number"`
	BankName          string `json:"bank_name"`
	AccountHolderName string `json:"account_holder_name"`
}

type AdminProcessCancelRequest struct {
	AdminNotes string `json:"admin_notes,omitempty"`
}
