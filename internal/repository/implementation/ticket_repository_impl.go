package implementation

import (
	"context"

	"event-reg-be/internal/entity"
	"event-reg-be/internal/model"
	"event-reg-be/internal/repository/contract"
	"event-reg-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ticketRepositoryImpl struct {
	db *gorm.DB
}

func NewTicketRepository(db *gorm.DB) contract.TicketRepository {
	return &ticketRepositoryImpl{db: db}
}

func (r *ticketRepositoryImpl) CreateBatch(ctx context.Context, tickets []*entity.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}
	modelTickets := make([]*model.Ticket, 0, len(tickets))
	for _, t := range tickets {
		modelTickets = append(modelTickets, &model.Ticket{
			ID:             t.ID,
			RegistrationID: t.RegistrationID,
			RegistrantID:   t.RegistrantID,
			Code:           t.Code,
			IssuedAt:       t.IssuedAt,
		})
	}
	return r.db.WithContext(ctx).Create(modelTickets).Error
}

func (r *ticketRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ticket, error) {
	var modelTickets []*model.Ticket
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelTickets).Error; err != nil {
		return nil, err
	}

	var tickets []*entity.Ticket
	for _, mt := range modelTickets {
		tickets = append(tickets, &entity.Ticket{
			ID:             mt.ID,
			RegistrationID: mt.RegistrationID,
			RegistrantID:   mt.RegistrantID,
			Code:           mt.Code,
			IssuedAt:       mt.IssuedAt,
		})
	}
	return tickets, nil
}

func (r *ticketRepositoryImpl) CountByRegistration(ctx context.Context, registrationID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Ticket{}).
		Where("registration_id = ?", registrationID).
		Count(&count).Error
	return count, err
}
