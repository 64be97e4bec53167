package model

import (
	"time"

	"github.com/google/uuid"
)

type EventConfig struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name              string    `gorm:"type:varchar(255);not null"`
	FeePerParticipant int64     `gorm:"not null"`
	RegistrationOpen  bool      `gorm:"not null;default:true"`
	StartDate         time.Time
	EndDate           time.Time
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`
}

func (EventConfig) TableName() string {
	return "event_configs"
}

type EventTeam struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventConfigID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Capacity      int       `gorm:"not null"`
	Region        string    `gorm:"type:varchar(100)"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (EventTeam) TableName() string {
	return "event_teams"
}

type EventRole struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventConfigID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name          string    `gorm:"type:varchar(255);not null"`
	Description   string    `gorm:"type:text"`
	CreatedAt     time.Time `gorm:"autoCreateTime"`
}

func (EventRole) TableName() string {
	return "event_roles"
}
