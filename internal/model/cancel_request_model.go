package model

import (
	"time"

	"github.com/google/uuid"
)

type CancelRequest struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	RegistrationID    uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index"`
	Reason            string    `gorm:"type:text;not null"`
	RequestType       string    `gorm:"type:varchar(20);not null"`
	BankAccountNumber string    `gorm:"type:varchar(50)"`
	BankName          string    `gorm:"type:varchar(255)"`
	AccountHolderName string    `gorm:"type:varchar(255)"`
	RefundAmount      int64     `gorm:"not null;default:0"`
	Status            string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	PreviousStatus    string    `gorm:"type:varchar(50);not null"`
	AdminNotes        string    `gorm:"type:text"`
	ProcessedAt       *time.Time
	CreatedAt         time.Time `gorm:"autoCreateTime"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime"`

	User         User         `gorm:"foreignKey:UserID"`
	Registration Registration `gorm:"foreignKey:RegistrationID"`
}

func (CancelRequest) TableName() string {
	return "cancel_requests"
}
