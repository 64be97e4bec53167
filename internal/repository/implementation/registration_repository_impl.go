package implementation

import (
	"context"

	"event-reg-be/internal/entity"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/model"
	"event-reg-be/internal/repository/contract"
	"event-reg-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type registrationRepositoryImpl struct {
	db *gorm.DB
}

func NewRegistrationRepository(db *gorm.DB) contract.RegistrationRepository {
	return &registrationRepositoryImpl{db: db}
}

func (r *registrationRepositoryImpl) Create(ctx context.Context, registration *entity.Registration) error {
	modelReg := &model.Registration{
		ID:               registration.ID,
		UserID:           registration.UserID,
		EventConfigID:    registration.EventConfigID,
		InvoiceCode:      registration.InvoiceCode,
		Status:           string(registration.Status),
		TotalAmount:      registration.TotalAmount,
		ParticipantCount: registration.ParticipantCount,
		Notes:            registration.Notes,
		ReceiptURL:       registration.ReceiptURL,
	}
	return r.db.WithContext(ctx).Create(modelReg).Error
}

func (r *registrationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Registration, error) {
	var modelReg model.Registration
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelReg).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelReg), nil
}

func (r *registrationRepositoryImpl) FindOneWithRegistrants(ctx context.Context, specs ...specification.Specification) (*entity.Registration, error) {
	var modelReg model.Registration
	query := r.db.WithContext(ctx).Preload("Registrants")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelReg).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	reg := r.mapToEntity(&modelReg)
	for _, mr := range modelReg.Registrants {
		reg.Registrants = append(reg.Registrants, *mapRegistrantToEntity(&mr))
	}
	return reg, nil
}

func (r *registrationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Registration, error) {
	var modelRegs []*model.Registration
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelRegs).Error; err != nil {
		return nil, err
	}

	var regs []*entity.Registration
	for _, mr := range modelRegs {
		regs = append(regs, r.mapToEntity(mr))
	}
	return regs, nil
}

func (r *registrationRepositoryImpl) Update(ctx context.Context, registration *entity.Registration) error {
	// InvoiceCode is immutable, TotalAmount fixed at creation: neither
	// appears in the update set.
	return r.db.WithContext(ctx).Model(&model.Registration{}).
		Where("id = ?", registration.ID).
		Updates(map[string]interface{}{
			"status":            string(registration.Status),
			"participant_count": registration.ParticipantCount,
			"notes":             registration.Notes,
			"receipt_url":       registration.ReceiptURL,
		}).Error
}

func (r *registrationRepositoryImpl) UpdateStatus(ctx context.Context, id uuid.UUID, status lifecycle.Status) error {
	return r.db.WithContext(ctx).Model(&model.Registration{}).
		Where("id = ?", id).
		Update("status", string(status)).Error
}

func (r *registrationRepositoryImpl) UpdateReceipt(ctx context.Context, id uuid.UUID, receiptURL string, status lifecycle.Status) error {
	return r.db.WithContext(ctx).Model(&model.Registration{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"receipt_url": receiptURL,
			"status":      string(status),
		}).Error
}

func (r *registrationRepositoryImpl) CountByStatus(ctx context.Context) (map[lifecycle.Status]int64, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Registration{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[lifecycle.Status]int64, len(rows))
	for _, row := range rows {
		counts[lifecycle.Status(row.Status)] = row.Count
	}
	return counts, nil
}

func (r *registrationRepositoryImpl) mapToEntity(mr *model.Registration) *entity.Registration {
	return &entity.Registration{
		ID:               mr.ID,
		UserID:           mr.UserID,
		EventConfigID:    mr.EventConfigID,
		InvoiceCode:      mr.InvoiceCode,
		Status:           lifecycle.Status(mr.Status),
		TotalAmount:      mr.TotalAmount,
		ParticipantCount: mr.ParticipantCount,
		Notes:            mr.Notes,
		ReceiptURL:       mr.ReceiptURL,
		CreatedAt:        mr.CreatedAt,
		UpdatedAt:        mr.UpdatedAt,
	}
}
