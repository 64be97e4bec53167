package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLog struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorID     *uuid.UUID     `gorm:"type:uuid;index"`
	Action      string         `gorm:"type:varchar(100);not null;index"`
	SubjectType string         `gorm:"type:varchar(50);not null"`
	SubjectID   string         `gorm:"type:varchar(64);index"`
	Details     datatypes.JSON `gorm:"type:jsonb"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
