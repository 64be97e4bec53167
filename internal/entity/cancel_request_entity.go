package entity

import (
	"time"

	"event-reg-be/internal/lifecycle"

	"github.com/google/uuid"
)

// CancelRequestType distinguishes a refund from a donation of the paid
// amount. Donations never create a request row; the registration is
// moved to the donation status directly.
type CancelRequestType string

const (
	CancelTypeRefund   CancelRequestType = "refund"
	CancelTypeDonation CancelRequestType = "donation"
)

type CancelRequestStatus string

const (
	CancelRequestPending  CancelRequestStatus = "pending"
	CancelRequestApproved CancelRequestStatus = "approved"
	CancelRequestRejected CancelRequestStatus = "rejected"
)

// CancelRequest is a pending refund tied to one registration. At most
// one pending request may exist per registration. PreviousStatus is
// recorded at creation so an admin rejection can restore it.
type CancelRequest struct {
	ID                uuid.UUID
	RegistrationID    uuid.UUID
	UserID            uuid.UUID
	Reason            string
	RequestType       CancelRequestType
	BankAccountNumber string
	BankName          string
	AccountHolderName string
	RefundAmount      int64
	Status            CancelRequestStatus
	PreviousStatus    lifecycle.Status
	AdminNotes        string
	ProcessedAt       *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time

	User         User
	Registration Registration
}
