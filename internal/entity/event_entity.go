package entity

import (
	"time"

	"github.com/google/uuid"
)

// EventConfig holds the per-event settings a registration binds to:
// the participation fee and the registration window.
type EventConfig struct {
	ID                uuid.UUID
	Name              string
	FeePerParticipant int64
	RegistrationOpen  bool
	StartDate         time.Time
	EndDate           time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// EventTeam groups registrants for the event; Capacity is enforced at
// assignment time.
type EventTeam struct {
	ID            uuid.UUID
	EventConfigID uuid.UUID
	Name          string
	Capacity      int
	Region        string
	MemberCount   int // derived, filled by repository counts
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EventRole is a badge role (participant, volunteer, leader...).
type EventRole struct {
	ID            uuid.UUID
	EventConfigID uuid.UUID
	Name          string
	Description   string
	CreatedAt     time.Time
}
