package contract

import (
	"context"

	"event-reg-be/internal/entity"
	"event-reg-be/internal/repository/specification"

	"github.com/google/uuid"
)

// EventRepository covers the per-event configuration: fee settings,
// teams and badge roles.
type EventRepository interface {
	FindActiveConfig(ctx context.Context) (*entity.EventConfig, error)
	FindConfig(ctx context.Context, id uuid.UUID) (*entity.EventConfig, error)
	CreateConfig(ctx context.Context, config *entity.EventConfig) error
	UpdateConfig(ctx context.Context, config *entity.EventConfig) error

	CreateTeam(ctx context.Context, team *entity.EventTeam) error
	FindOneTeam(ctx context.Context, specs ...specification.Specification) (*entity.EventTeam, error)
	FindTeams(ctx context.Context, specs ...specification.Specification) ([]*entity.EventTeam, error)
	UpdateTeam(ctx context.Context, team *entity.EventTeam) error

	CreateRole(ctx context.Context, role *entity.EventRole) error
	FindRoles(ctx context.Context, specs ...specification.Specification) ([]*entity.EventRole, error)
}

type AuditLogRepository interface {
	Create(ctx context.Context, log *entity.AuditLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error)
}
