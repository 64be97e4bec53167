package entity

import (
	"time"

	"github.com/google/uuid"
)

// ExpenseRequest is a spend request in the event finance ledger.
// Status moves through lifecycle.ExpenseTransitions.
type ExpenseRequest struct {
	ID            uuid.UUID
	EventConfigID uuid.UUID
	UserID        uuid.UUID
	Title         string
	Purpose       string
	Amount        int64
	Status        string
	Region        string
	AdminNotes    string
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	User User
}

// Donation is a pledged gift; status moves through
// lifecycle.DonationTransitions once the money arrives.
type Donation struct {
	ID            uuid.UUID
	EventConfigID uuid.UUID
	UserID        uuid.UUID
	DonorName     string
	ContactInfo   string
	Amount        int64
	Status        string
	Note          string
	ReceivedAt    *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IncomeSource is an expected inflow (sponsorship, grant) tracked
// against its due date; status moves through lifecycle.IncomeTransitions.
type IncomeSource struct {
	ID             uuid.UUID
	EventConfigID  uuid.UUID
	UserID         uuid.UUID
	Name           string
	ExpectedAmount int64
	ActualAmount   int64
	Status         string
	DueDate        *time.Time
	ReceivedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
