package entity

import (
	"time"

	"github.com/google/uuid"
)

// AuditLog is a best-effort trail row. Writers must never fail their
// primary action because an audit append failed.
type AuditLog struct {
	ID          uuid.UUID
	ActorID     *uuid.UUID
	Action      string
	SubjectType string
	SubjectID   string
	Details     map[string]interface{}
	CreatedAt   time.Time
}
