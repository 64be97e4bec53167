package entity

import (
	"time"

	"event-reg-be/internal/lifecycle"

	"github.com/google/uuid"
)

// Registration is one purchase: a primary participant plus companions
// sharing one invoice code and one payment lifecycle. InvoiceCode is
// immutable once assigned; TotalAmount is fixed at creation and never
// recomputed.
type Registration struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	EventConfigID    uuid.UUID
	InvoiceCode      string
	Status           lifecycle.Status
	TotalAmount      int64 // smallest currency unit (VND)
	ParticipantCount int
	Notes            string
	ReceiptURL       *string
	CreatedAt        time.Time
	UpdatedAt        time.Time

	Registrants []Registrant
}

// Registrant is one individual participant under a registration.
// Exactly one registrant per registration has IsPrimary set.
type Registrant struct {
	ID             uuid.UUID
	RegistrationID uuid.UUID
	FullName       string
	SaintName      string
	Gender         string
	AgeGroup       string
	Province       string
	Diocese        string
	ShirtSize      string
	IsPrimary      bool
	EventRoleID    *uuid.UUID
	EventTeamID    *uuid.UUID
	PortraitURL    *string
	IsCheckedIn    bool
	CheckedInAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Ticket is issued per registrant when the registration is confirmed.
type Ticket struct {
	ID             uuid.UUID
	RegistrationID uuid.UUID
	RegistrantID   uuid.UUID
	Code           string
	IssuedAt       time.Time
}
