package implementation

import (
	"context"

	"event-reg-be/internal/entity"
	"event-reg-be/internal/model"
	"event-reg-be/internal/repository/contract"
	"event-reg-be/internal/repository/specification"

	"gorm.io/gorm"
)

// --- Expense requests ---

type expenseRequestRepositoryImpl struct {
	db *gorm.DB
}

func NewExpenseRequestRepository(db *gorm.DB) contract.ExpenseRequestRepository {
	return &expenseRequestRepositoryImpl{db: db}
}

func (r *expenseRequestRepositoryImpl) Create(ctx context.Context, request *entity.ExpenseRequest) error {
	modelReq := &model.ExpenseRequest{
		ID:            request.ID,
		EventConfigID: request.EventConfigID,
		UserID:        request.UserID,
		Title:         request.Title,
		Purpose:       request.Purpose,
		Amount:        request.Amount,
		Status:        request.Status,
		Region:        request.Region,
		AdminNotes:    request.AdminNotes,
		ProcessedAt:   request.ProcessedAt,
	}
	return r.db.WithContext(ctx).Create(modelReq).Error
}

func (r *expenseRequestRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExpenseRequest, error) {
	var mr model.ExpenseRequest
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&mr).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapExpenseToEntity(&mr), nil
}

func (r *expenseRequestRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExpenseRequest, error) {
	var modelReqs []*model.ExpenseRequest
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&modelReqs).Error; err != nil {
		return nil, err
	}
	var requests []*entity.ExpenseRequest
	for _, mr := range modelReqs {
		requests = append(requests, mapExpenseToEntity(mr))
	}
	return requests, nil
}

func (r *expenseRequestRepositoryImpl) FindAllWithUser(ctx context.Context, specs ...specification.Specification) ([]*entity.ExpenseRequest, error) {
	var modelReqs []*model.ExpenseRequest
	query := r.db.WithContext(ctx).Preload("User")
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&modelReqs).Error; err != nil {
		return nil, err
	}
	var requests []*entity.ExpenseRequest
	for _, mr := range modelReqs {
		request := mapExpenseToEntity(mr)
		request.User = entity.User{
			Id:       mr.User.Id,
			Email:    mr.User.Email,
			FullName: mr.User.FullName,
		}
		requests = append(requests, request)
	}
	return requests, nil
}

func (r *expenseRequestRepositoryImpl) Update(ctx context.Context, request *entity.ExpenseRequest) error {
	return r.db.WithContext(ctx).Model(&model.ExpenseRequest{}).
		Where("id = ?", request.ID).
		Updates(map[string]interface{}{
			"status":       request.Status,
			"admin_notes":  request.AdminNotes,
			"processed_at": request.ProcessedAt,
		}).Error
}

func mapExpenseToEntity(mr *model.ExpenseRequest) *entity.ExpenseRequest {
	return &entity.ExpenseRequest{
		ID:            mr.ID,
		EventConfigID: mr.EventConfigID,
		UserID:        mr.UserID,
		Title:         mr.Title,
		Purpose:       mr.Purpose,
		Amount:        mr.Amount,
		Status:        mr.Status,
		Region:        mr.Region,
		AdminNotes:    mr.AdminNotes,
		ProcessedAt:   mr.ProcessedAt,
		CreatedAt:     mr.CreatedAt,
		UpdatedAt:     mr.UpdatedAt,
	}
}

// --- Donations ---

type donationRepositoryImpl struct {
	db *gorm.DB
}

func NewDonationRepository(db *gorm.DB) contract.DonationRepository {
	return &donationRepositoryImpl{db: db}
}

func (r *donationRepositoryImpl) Create(ctx context.Context, donation *entity.Donation) error {
	md := &model.Donation{
		ID:            donation.ID,
		EventConfigID: donation.EventConfigID,
		UserID:        donation.UserID,
		DonorName:     donation.DonorName,
		ContactInfo:   donation.ContactInfo,
		Amount:        donation.Amount,
		Status:        donation.Status,
		Note:          donation.Note,
		ReceivedAt:    donation.ReceivedAt,
	}
	return r.db.WithContext(ctx).Create(md).Error
}

func (r *donationRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Donation, error) {
	var md model.Donation
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&md).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapDonationToEntity(&md), nil
}

func (r *donationRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Donation, error) {
	var modelDonations []*model.Donation
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&modelDonations).Error; err != nil {
		return nil, err
	}
	var donations []*entity.Donation
	for _, md := range modelDonations {
		donations = append(donations, mapDonationToEntity(md))
	}
	return donations, nil
}

func (r *donationRepositoryImpl) Update(ctx context.Context, donation *entity.Donation) error {
	return r.db.WithContext(ctx).Model(&model.Donation{}).
		Where("id = ?", donation.ID).
		Updates(map[string]interface{}{
			"status":      donation.Status,
			"note":        donation.Note,
			"received_at": donation.ReceivedAt,
		}).Error
}

func mapDonationToEntity(md *model.Donation) *entity.Donation {
	return &entity.Donation{
		ID:            md.ID,
		EventConfigID: md.EventConfigID,
		UserID:        md.UserID,
		DonorName:     md.DonorName,
		ContactInfo:   md.ContactInfo,
		Amount:        md.Amount,
		Status:        md.Status,
		Note:          md.Note,
		ReceivedAt:    md.ReceivedAt,
		CreatedAt:     md.CreatedAt,
		UpdatedAt:     md.UpdatedAt,
	}
}

// --- Income sources ---

type incomeSourceRepositoryImpl struct {
	db *gorm.DB
}

func NewIncomeSourceRepository(db *gorm.DB) contract.IncomeSourceRepository {
	return &incomeSourceRepositoryImpl{db: db}
}

func (r *incomeSourceRepositoryImpl) Create(ctx context.Context, source *entity.IncomeSource) error {
	ms := &model.IncomeSource{
		ID:             source.ID,
		EventConfigID:  source.EventConfigID,
		UserID:         source.UserID,
		Name:           source.Name,
		ExpectedAmount: source.ExpectedAmount,
		ActualAmount:   source.ActualAmount,
		Status:         source.Status,
		DueDate:        source.DueDate,
		ReceivedAt:     source.ReceivedAt,
	}
	return r.db.WithContext(ctx).Create(ms).Error
}

func (r *incomeSourceRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IncomeSource, error) {
	var ms model.IncomeSource
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&ms).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapIncomeToEntity(&ms), nil
}

func (r *incomeSourceRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IncomeSource, error) {
	var modelSources []*model.IncomeSource
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&modelSources).Error; err != nil {
		return nil, err
	}
	var sources []*entity.IncomeSource
	for _, ms := range modelSources {
		sources = append(sources, mapIncomeToEntity(ms))
	}
	return sources, nil
}

func (r *incomeSourceRepositoryImpl) Update(ctx context.Context, source *entity.IncomeSource) error {
	return r.db.WithContext(ctx).Model(&model.IncomeSource{}).
		Where("id = ?", source.ID).
		Updates(map[string]interface{}{
			"status":        source.Status,
			"actual_amount": source.ActualAmount,
			"received_at":   source.ReceivedAt,
		}).Error
}

func mapIncomeToEntity(ms *model.IncomeSource) *entity.IncomeSource {
	return &entity.IncomeSource{
		ID:             ms.ID,
		EventConfigID:  ms.EventConfigID,
		UserID:         ms.UserID,
		Name:           ms.Name,
		ExpectedAmount: ms.ExpectedAmount,
		ActualAmount:   ms.ActualAmount,
		Status:         ms.Status,
		DueDate:        ms.DueDate,
		ReceivedAt:     ms.ReceivedAt,
		CreatedAt:      ms.CreatedAt,
		UpdatedAt:      ms.UpdatedAt,
	}
}
