package contract

import (
	"context"

	"event-reg-be/internal/entity"
	"event-reg-be/internal/repository/specification"
)

// CancelRequestRepository persists refund requests. The "at most one
// pending request per registration" invariant is checked by the service
// via FindOne(ByRegistrationID, ByStatus(pending)) before Create.
type CancelRequestRepository interface {
	Create(ctx context.Context, request *entity.CancelRequest) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CancelRequest, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CancelRequest, error)
	FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.CancelRequest, error)
	Update(ctx context.Context, request *entity.CancelRequest) error
}
