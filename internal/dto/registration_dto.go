package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegistrantInput struct {
	FullName  string `json:"full_name" validate:"required,min=2"`
	SaintName string `json:"saint_name"`
	Gender    string `json:"gender" validate:"required,oneof=male female"`
	AgeGroup  string `json:"age_group"`
	Province  string `json:"province"`
	Diocese   string `json:"diocese"`
	ShirtSize string `json:"shirt_size" validate:"omitempty,oneof=XS S M L XL XXL"`
	IsPrimary bool   `json:"is_primary"`
}

type CreateRegistrationRequest struct {
	Registrants []RegistrantInput `json:"registrants" validate:"required,min=1,dive"`
	Notes       string            `json:"notes"`
}

type UpdateRegistrationRequest struct {
	Registrants []RegistrantInput `json:"registrants" validate:"required,min=1,dive"`
	Notes       string            `json:"notes"`
}

type RegistrantResponse struct {
	Id          uuid.UUID  `json:"id"`
	FullName    string     `json:"full_name"`
	SaintName   string     `json:"saint_name,omitempty"`
	Gender      string     `json:"gender"`
	AgeGroup    string     `json:"age_group,omitempty"`
	Province    string     `json:"province,omitempty"`
	Diocese     string     `json:"diocese,omitempty"`
	ShirtSize   string     `json:"shirt_size,omitempty"`
	IsPrimary   bool       `json:"is_primary"`
	EventTeamId *uuid.UUID `json:"event_team_id,omitempty"`
	EventRoleId *uuid.UUID `json:"event_role_id,omitempty"`
	PortraitURL *string    `json:"portrait_url,omitempty"`
	IsCheckedIn bool       `json:"is_checked_in"`
	CheckedInAt *time.Time `json:"checked_in_at,omitempty"`
}

type RegistrationResponse struct {
	Id               uuid.UUID            `json:"id"`
	InvoiceCode      string               `json:"invoice_code"`
	Status           string               `json:"status"`
	TotalAmount      int64                `json:"total_amount"`
	ParticipantCount int                  `json:"participant_count"`
	Notes            string               `json:"notes,omitempty"`
	ReceiptURL       *string              `json:"receipt_url,omitempty"`
	CreatedAt        time.Time            `json:"created_at"`
	Registrants      []RegistrantResponse `json:"registrants,omitempty"`
}

type TicketResponse struct {
	Id             uuid.UUID `json:"id"`
	RegistrantId   uuid.UUID `json:"registrant_id"`
	RegistrantName string    `json:"registrant_name"`
	Code           string    `json:"code"`
	IssuedAt       time.Time `json:"issued_at"`
}
