package implementation

import (
	"context"

	"event-reg-be/internal/entity"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/model"
	"event-reg-be/internal/repository/contract"
	"event-reg-be/internal/repository/specification"

	"gorm.io/gorm"
)

type cancelRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewCancelRequestRepository(db *gorm.DB) contract.CancelRequestRepository {
	return &cancelRequestRepositoryImpl{db: db}
}

func (r *cancelRequestRepositoryImpl) Create(ctx context.Context, request *entity.CancelRequest) error {
	modelReq := &model.CancelRequest{
		ID:                request.ID,
		RegistrationID:    request.RegistrationID,
		UserID:            request.UserID,
		Reason:            request.Reason,
		RequestType:       string(request.RequestType),
		BankAccountNumber: request.BankAccountNumber,
		BankName:          request.BankName,
		AccountHolderName: request.AccountHolderName,
		RefundAmount:      request.RefundAmount,
		Status:            string(request.Status),
		PreviousStatus:    string(request.PreviousStatus),
		AdminNotes:        request.AdminNotes,
		ProcessedAt:       request.ProcessedAt,
	}
	return r.db.WithContext(ctx).Create(modelReq).Error
}

func (r *cancelRequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CancelRequest, error) {
	var modelReq model.CancelRequest
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.First(&modelReq).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}

	return r.mapToEntity(&modelReq), nil
}

func (r *cancelRequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CancelRequest, error) {
	var modelReqs []*model.CancelRequest
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelReqs).Error; err != nil {
		return nil, err
	}

	var requests []*entity.CancelRequest
	for _, mr := range modelReqs {
		requests = append(requests, r.mapToEntity(mr))
	}
	return requests, nil
}

// FindAllWithDetails returns requests with preloaded User and Registration
// relations for the admin review screen.
func (r *cancelRequestRepositoryImpl) FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.CancelRequest, error) {
	var modelReqs []*model.CancelRequest
	query := r.db.WithContext(ctx).
		Preload("User").
		Preload("Registration")

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelReqs).Error; err != nil {
		return nil, err
	}

	var requests []*entity.CancelRequest
	for _, mr := range modelReqs {
		request := r.mapToEntity(mr)
		request.User = entity.User{
			Id:       mr.User.Id,
			Email:    mr.User.Email,
			FullName: mr.User.FullName,
		}
		request.Registration = entity.Registration{
			ID:          mr.Registration.ID,
			InvoiceCode: mr.Registration.InvoiceCode,
			Status:      lifecycle.Status(mr.Registration.Status),
			TotalAmount: mr.Registration.TotalAmount,
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func (r *cancelRequestRepositoryImpl) Update(ctx context.Context, request *entity.CancelRequest) error {
	return r.db.WithContext(ctx).Model(&model.CancelRequest{}).
		Where("id = ?", request.ID).
		Updates(map[string]interface{}{
			"status":       string(request.Status),
			"admin_notes":  request.AdminNotes,
			"processed_at": request.ProcessedAt,
		}).Error
}

func (r *cancelRequestRepositoryImpl) mapToEntity(mr *model.CancelRequest) *entity.CancelRequest {
	return &entity.CancelRequest{
		ID:                mr.ID,
		RegistrationID:    mr.RegistrationID,
		UserID:            mr.UserID,
		Reason:            mr.Reason,
		RequestType:       entity.CancelRequestType(mr.RequestType),
		BankAccountNumber: mr.BankAccountNumber,
		BankName:          mr.BankName,
		AccountHolderName: mr.AccountHolderName,
		RefundAmount:      mr.RefundAmount,
		Status:            entity.CancelRequestStatus(mr.Status),
		PreviousStatus:    lifecycle.Status(mr.PreviousStatus),
		AdminNotes:        mr.AdminNotes,
		ProcessedAt:       mr.ProcessedAt,
		CreatedAt:         mr.CreatedAt,
		UpdatedAt:         mr.UpdatedAt,
	}
}
