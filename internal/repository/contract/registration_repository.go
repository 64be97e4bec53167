package contract

import (
	"context"
	"time"

	"event-reg-be/internal/entity"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/repository/specification"

	"github.com/google/uuid"
)

// RegistrationRepository persists registrations. Status writes go
// through UpdateStatus so the column never leaves the closed set.
type RegistrationRepository interface {
	Create(ctx context.Context, registration *entity.Registration) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Registration, error)
	FindOneWithRegistrants(ctx context.Context, specs ...specification.Specification) (*entity.Registration, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Registration, error)
	Update(ctx context.Context, registration *entity.Registration) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status lifecycle.Status) error
	UpdateReceipt(ctx context.Context, id uuid.UUID, receiptURL string, status lifecycle.Status) error
	CountByStatus(ctx context.Context) (map[lifecycle.Status]int64, error)
}

type RegistrantRepository interface {
	Create(ctx context.Context, registrant *entity.Registrant) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Registrant, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Registrant, error)
	Update(ctx context.Context, registrant *entity.Registrant) error

	// MarkCheckedIn performs the conditional update
	// `SET is_checked_in=true, checked_in_at=? WHERE id=? AND is_checked_in=false`
	// and returns the number of affected rows. Zero means a concurrent
	// scan won the race; the caller re-reads and reports a soft failure.
	MarkCheckedIn(ctx context.Context, id uuid.UUID, at time.Time) (int64, error)

	// AssignTeam sets the team only when the registrant is still
	// unassigned, returning affected rows (zero = raced assignment).
	AssignTeam(ctx context.Context, id uuid.UUID, teamID uuid.UUID) (int64, error)

	CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error)
	CountCheckedIn(ctx context.Context) (int64, int64, error)
}

type TicketRepository interface {
	CreateBatch(ctx context.Context, tickets []*entity.Ticket) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ticket, error)
	CountByRegistration(ctx context.Context, registrationID uuid.UUID) (int64, error)
}
