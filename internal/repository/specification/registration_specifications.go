package specification

import (
	"event-reg-be/internal/lifecycle"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ByUserID scopes rows to their owner.
type ByUserID struct {
	UserID uuid.UUID
}

func (s ByUserID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("user_id = ?", s.UserID)
}

// ByRegistrationID scopes child rows (registrants, tickets, cancel
// requests) to one registration.
type ByRegistrationID struct {
	RegistrationID uuid.UUID
}

func (s ByRegistrationID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("registration_id = ?", s.RegistrationID)
}

// ByStatus filters on a status column.
type ByStatus struct {
	Status string
}

func (s ByStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", s.Status)
}

// ByRegistrationStatus filters registrations on a lifecycle status.
type ByRegistrationStatus struct {
	Status lifecycle.Status
}

func (s ByRegistrationStatus) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("status = ?", string(s.Status))
}

// ByInvoiceCode looks up a registration by its human-readable key.
type ByInvoiceCode struct {
	Code string
}

func (s ByInvoiceCode) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("invoice_code = ?", s.Code)
}

// ByEmail looks up a user.
type ByEmail struct {
	Email string
}

func (s ByEmail) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("email = ?", s.Email)
}

// ByEventConfigID scopes ledger rows to one event.
type ByEventConfigID struct {
	EventConfigID uuid.UUID
}

func (s ByEventConfigID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_config_id = ?", s.EventConfigID)
}

// ByRegion scopes rows to a regional admin's territory.
type ByRegion struct {
	Region string
}

func (s ByRegion) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("region = ?", s.Region)
}

// Unassigned selects registrants with no team yet.
type Unassigned struct{}

func (s Unassigned) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_team_id IS NULL")
}

// ByTeamID selects registrants of one team.
type ByTeamID struct {
	TeamID uuid.UUID
}

func (s ByTeamID) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("event_team_id = ?", s.TeamID)
}
