package model

import (
	"time"

	"github.com/google/uuid"
)

type Registration struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserID           uuid.UUID `gorm:"type:uuid;not null;index"`
	EventConfigID    uuid.UUID `gorm:"type:uuid;not null;index"`
	InvoiceCode      string    `gorm:"type:varchar(20);uniqueIndex;not null"`
	Status           string    `gorm:"type:varchar(50);not null;default:'pending';index"`
	TotalAmount      int64     `gorm:"not null"`
	ParticipantCount int       `gorm:"not null;default:1"`
	Notes            string    `gorm:"type:text"`
	ReceiptURL       *string   `gorm:"type:text"`
	CreatedAt        time.Time `gorm:"autoCreateTime"`
	UpdatedAt        time.Time `gorm:"autoUpdateTime"`

	Registrants []Registrant `gorm:"foreignKey:RegistrationID"`
}

func (Registration) TableName() string {
	return "registrations"
}

type Registrant struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RegistrationID uuid.UUID  `gorm:"type:uuid;not null;index"`
	FullName       string     `gorm:"type:varchar(255);not null"`
	SaintName      string     `gorm:"type:varchar(255)"`
	Gender         string     `gorm:"type:varchar(20)"`
	AgeGroup       string     `gorm:"type:varchar(50)"`
	Province       string     `gorm:"type:varchar(100)"`
	Diocese        string     `gorm:"type:varchar(100)"`
	ShirtSize      string     `gorm:"type:varchar(10)"`
	IsPrimary      bool       `gorm:"not null;default:false"`
	EventRoleID    *uuid.UUID `gorm:"type:uuid;index"`
	EventTeamID    *uuid.UUID `gorm:"type:uuid;index"`
	PortraitURL    *string    `gorm:"type:text"`
	IsCheckedIn    bool       `gorm:"not null;default:false"`
	CheckedInAt    *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (Registrant) TableName() string {
	return "registrants"
}

type Ticket struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RegistrationID uuid.UUID `gorm:"type:uuid;not null;index"`
	RegistrantID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Code           string    `gorm:"type:varchar(64);uniqueIndex;not null"`
	IssuedAt       time.Time `gorm:"not null"`
}

func (Ticket) TableName() string {
	return "tickets"
}
