package implementation

import (
	"context"
	"time"

	"event-reg-be/internal/entity"
	"event-reg-be/internal/model"
	"event-reg-be/internal/repository/contract"
	"event-reg-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type registrantRepositoryImpl struct {
	db *gorm.DB
}

func NewRegistrantRepository(db *gorm.DB) contract.RegistrantRepository {
	return &registrantRepositoryImpl{db: db}
}

func (r *registrantRepositoryImpl) Create(ctx context.Context, registrant *entity.Registrant) error {
	modelReg := &model.Registrant{
		ID:             registrant.ID,
		RegistrationID: registrant.RegistrationID,
		FullName:       registrant.FullName,
		SaintName:      registrant.SaintName,
		Gender:         registrant.Gender,
		AgeGroup:       registrant.AgeGroup,
		Province:       registrant.Province,
		Diocese:        registrant.Diocese,
		ShirtSize:      registrant.ShirtSize,
		IsPrimary:      registrant.IsPrimary,
		EventRoleID:    registrant.EventRoleID,
		EventTeamID:    registrant.EventTeamID,
		PortraitURL:    registrant.PortraitURL,
	}
	return r.db.WithContext(ctx).Create(modelReg).Error
}

func (r *registrantRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Registrant, error) {
	var mr model.Registrant
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

	return mapRegistrantToEntity(&mr), nil
}

func (r *registrantRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Registrant, error) {
	var modelRegs []*model.Registrant
	query := r.db.WithContext(ctx)

	for _, spec := range specs {
		query = spec.Apply(query)
	}

	if err := query.Find(&modelRegs).Error; err != nil {
		return nil, err
	}

	var registrants []*entity.Registrant
	for _, mr := range modelRegs {
		registrants = append(registrants, mapRegistrantToEntity(mr))
	}
	return registrants, nil
}

func (r *registrantRepositoryImpl) Update(ctx context.Context, registrant *entity.Registrant) error {
	return r.db.WithContext(ctx).Model(&model.Registrant{}).
		Where("id = ?", registrant.ID).
		Updates(map[string]interface{}{
			"full_name":     registrant.FullName,
			"saint_name":    registrant.SaintName,
			"gender":        registrant.Gender,
			"age_group":     registrant.AgeGroup,
			"province":      registrant.Province,
			"diocese":       registrant.Diocese,
			"shirt_size":    registrant.ShirtSize,
			"is_primary":    registrant.IsPrimary,
			"event_role_id": registrant.EventRoleID,
			"event_team_id": registrant.EventTeamID,
			"portrait_url":  registrant.PortraitURL,
		}).Error
}

// MarkCheckedIn is the single concurrency control of the whole system:
// the compound predicate guarantees only one concurrent scan of the
// same badge can win.
func (r *registrantRepositoryImpl) MarkCheckedIn(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Registrant{}).
		Where("id = ? AND is_checked_in = ?", id, false).
		Updates(map[string]interface{}{
			"is_checked_in": true,
			"checked_in_at": at,
		})
	return result.RowsAffected, result.Error
}

func (r *registrantRepositoryImpl) AssignTeam(ctx context.Context, id uuid.UUID, teamID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).Model(&model.Registrant{}).
		Where("id = ? AND event_team_id IS NULL", id).
		Update("event_team_id", teamID)
	return result.RowsAffected, result.Error
}

func (r *registrantRepositoryImpl) CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Registrant{}).
		Where("event_team_id = ?", teamID).
		Count(&count).Error
	return count, err
}

func (r *registrantRepositoryImpl) CountCheckedIn(ctx context.Context) (int64, int64, error) {
	var total, checkedIn int64
	if err := r.db.WithContext(ctx).Model(&model.Registrant{}).Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err := r.db.WithContext(ctx).Model(&model.Registrant{}).
		Where("is_checked_in = ?", true).
		Count(&checkedIn).Error; err != nil {
		return 0, 0, err
	}
	return total, checkedIn, nil
}

func mapRegistrantToEntity(mr *model.Registrant) *entity.Registrant {
	return &entity.Registrant{
		ID:             mr.ID,
		RegistrationID: mr.RegistrationID,
		FullName:       mr.FullName,
		SaintName:      mr.SaintName,
		Gender:         mr.Gender,
		AgeGroup:       mr.AgeGroup,
		Province:       mr.Province,
		Diocese:        mr.Diocese,
		ShirtSize:      mr.ShirtSize,
		IsPrimary:      mr.IsPrimary,
		EventRoleID:    mr.EventRoleID,
		EventTeamID:    mr.EventTeamID,
		PortraitURL:    mr.PortraitURL,
		IsCheckedIn:    mr.IsCheckedIn,
		CheckedInAt:    mr.CheckedInAt,
		CreatedAt:      mr.CreatedAt,
		UpdatedAt:      mr.UpdatedAt,
	}
}
