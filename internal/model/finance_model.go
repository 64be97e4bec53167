package model

import (
	"time"

	"github.com/google/uuid"
)

type ExpenseRequest struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventConfigID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Title         string    `gorm:"type:varchar(255);not null"`
	Purpose       string    `gorm:"type:text"`
	Amount        int64     `gorm:"not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'submitted';index"`
	Region        string    `gorm:"type:varchar(100)"`
	AdminNotes    string    `gorm:"type:text"`
	ProcessedAt   *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`

	User User `gorm:"foreignKey:UserID"`
}

func (ExpenseRequest) TableName() string {
	return "expense_requests"
}

type Donation struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventConfigID uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index"`
	DonorName     string    `gorm:"type:varchar(255);not null"`
	ContactInfo   string    `gorm:"type:varchar(255)"`
	Amount        int64     `gorm:"not null"`
	Status        string    `gorm:"type:varchar(20);not null;default:'pledged';index"`
	Note          string    `gorm:"type:text"`
	ReceivedAt    *time.Time
	CreatedAt     time.Time `gorm:"autoCreateTime"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Donation) TableName() string {
	return "donations"
}

type IncomeSource struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EventConfigID  uuid.UUID `gorm:"type:uuid;not null;index"`
	UserID         uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(255);not null"`
	ExpectedAmount int64     `gorm:"not null"`
	ActualAmount   int64     `gorm:"not null;default:0"`
	Status         string    `gorm:"type:varchar(20);not null;default:'pending';index"`
	DueDate        *time.Time
	ReceivedAt     *time.Time
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (IncomeSource) TableName() string {
	return "income_sources"
}
