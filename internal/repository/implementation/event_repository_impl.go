package implementation

import (
	"context"
	"encoding/json"

	"event-reg-be/internal/entity"
	"event-reg-be/internal/model"
	"event-reg-be/internal/repository/contract"
	"event-reg-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type eventRepositoryImpl struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) contract.EventRepository {
	return &eventRepositoryImpl{db: db}
}

func (r *eventRepositoryImpl) FindActiveConfig(ctx context.Context) (*entity.EventConfig, error) {
	var mc model.EventConfig
	err := r.db.WithContext(ctx).
		Where("registration_open = ?", true).
		Order("created_at DESC").
		First(&mc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapConfigToEntity(&mc), nil
}

func (r *eventRepositoryImpl) FindConfig(ctx context.Context, id uuid.UUID) (*entity.EventConfig, error) {
	var mc model.EventConfig
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&mc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapConfigToEntity(&mc), nil
}

func (r *eventRepositoryImpl) CreateConfig(ctx context.Context, config *entity.EventConfig) error {
	mc := &model.EventConfig{
		ID:                config.ID,
		Name:              config.Name,
		FeePerParticipant: config.FeePerParticipant,
		RegistrationOpen:  config.RegistrationOpen,
		StartDate:         config.StartDate,
		EndDate:           config.EndDate,
	}
	return r.db.WithContext(ctx).Create(mc).Error
}

func (r *eventRepositoryImpl) UpdateConfig(ctx context.Context, config *entity.EventConfig) error {
	return r.db.WithContext(ctx).Model(&model.EventConfig{}).
		Where("id = ?", config.ID).
		Updates(map[string]interface{}{
			"name":                config.Name,
			"fee_per_participant": config.FeePerParticipant,
			"registration_open":   config.RegistrationOpen,
			"start_date":          config.StartDate,
			"end_date":            config.EndDate,
		}).Error
}

func (r *eventRepositoryImpl) CreateTeam(ctx context.Context, team *entity.EventTeam) error {
	mt := &model.EventTeam{
		ID:            team.ID,
		EventConfigID: team.EventConfigID,
		Name:          team.Name,
		Capacity:      team.Capacity,
		Region:        team.Region,
	}
	return r.db.WithContext(ctx).Create(mt).Error
}

func (r *eventRepositoryImpl) FindOneTeam(ctx context.Context, specs ...specification.Specification) (*entity.EventTeam, error) {
	var mt model.EventTeam
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.First(&mt).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return mapTeamToEntity(&mt), nil
}

func (r *eventRepositoryImpl) FindTeams(ctx context.Context, specs ...specification.Specification) ([]*entity.EventTeam, error) {
	var modelTeams []*model.EventTeam
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&modelTeams).Error; err != nil {
		return nil, err
	}
	var teams []*entity.EventTeam
	for _, mt := range modelTeams {
		teams = append(teams, mapTeamToEntity(mt))
	}
	return teams, nil
}

func (r *eventRepositoryImpl) UpdateTeam(ctx context.Context, team *entity.EventTeam) error {
	return r.db.WithContext(ctx).Model(&model.EventTeam{}).
		Where("id = ?", team.ID).
		Updates(map[string]interface{}{
			"name":     team.Name,
			"capacity": team.Capacity,
			"region":   team.Region,
		}).Error
}

func (r *eventRepositoryImpl) CreateRole(ctx context.Context, role *entity.EventRole) error {
	mr := &model.EventRole{
		ID:            role.ID,
		EventConfigID: role.EventConfigID,
		Name:          role.Name,
		Description:   role.Description,
	}
	return r.db.WithContext(ctx).Create(mr).Error
}

func (r *eventRepositoryImpl) FindRoles(ctx context.Context, specs ...specification.Specification) ([]*entity.EventRole, error) {
	var modelRoles []*model.EventRole
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&modelRoles).Error; err != nil {
		return nil, err
	}
	var roles []*entity.EventRole
	for _, mr := range modelRoles {
		roles = append(roles, &entity.EventRole{
			ID:            mr.ID,
			EventConfigID: mr.EventConfigID,
			Name:          mr.Name,
			Description:   mr.Description,
			CreatedAt:     mr.CreatedAt,
		})
	}
	return roles, nil
}

func mapConfigToEntity(mc *model.EventConfig) *entity.EventConfig {
	return &entity.EventConfig{
		ID:                mc.ID,
		Name:              mc.Name,
		FeePerParticipant: mc.FeePerParticipant,
		RegistrationOpen:  mc.RegistrationOpen,
		StartDate:         mc.StartDate,
		EndDate:           mc.EndDate,
		CreatedAt:         mc.CreatedAt,
		UpdatedAt:         mc.UpdatedAt,
	}
}

func mapTeamToEntity(mt *model.EventTeam) *entity.EventTeam {
	return &entity.EventTeam{
		ID:            mt.ID,
		EventConfigID: mt.EventConfigID,
		Name:          mt.Name,
		Capacity:      mt.Capacity,
		Region:        mt.Region,
		CreatedAt:     mt.CreatedAt,
		UpdatedAt:     mt.UpdatedAt,
	}
}

// --- Audit log ---

type auditLogRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) contract.AuditLogRepository {
	return &auditLogRepositoryImpl{db: db}
}

func (r *auditLogRepositoryImpl) Create(ctx context.Context, log *entity.AuditLog) error {
	var details datatypes.JSON
	if log.Details != nil {
		raw, err := json.Marshal(log.Details)
		if err != nil {
			return err
		}
		details = datatypes.JSON(raw)
	}
	ml := &model.AuditLog{
		ID:          log.ID,
		ActorID:     log.ActorID,
		Action:      log.Action,
		SubjectType: log.SubjectType,
		SubjectID:   log.SubjectID,
		Details:     details,
	}
	return r.db.WithContext(ctx).Create(ml).Error
}

func (r *auditLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error) {
	var modelLogs []*model.AuditLog
	query := r.db.WithContext(ctx)
	for _, spec := range specs {
		query = spec.Apply(query)
	}
	if err := query.Find(&modelLogs).Error; err != nil {
		return nil, err
	}

	var logs []*entity.AuditLog
	for _, ml := range modelLogs {
		var details map[string]interface{}
		if len(ml.Details) > 0 {
			_ = json.Unmarshal(ml.Details, &details)
		}
		logs = append(logs, &entity.AuditLog{
			ID:          ml.ID,
			ActorID:     ml.ActorID,
			Action:      ml.Action,
			SubjectType: ml.SubjectType,
			SubjectID:   ml.SubjectID,
			Details:     details,
			CreatedAt:   ml.CreatedAt,
		})
	}
	return logs, nil
}
