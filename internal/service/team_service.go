package service

import (
	"context"
	"errors"
	"fmt"

	"event-reg-be/internal/dto"
	"event-reg-be/internal/entity"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/pkg/logger"
	"event-reg-be/internal/repository/specification"
	"event-reg-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ITeamService interface {
	CreateTeam(ctx context.Context, actor lifecycle.Actor, req *dto.CreateTeamRequest) (*dto.TeamResponse, error)
	ListTeams(ctx context.Context, actor lifecycle.Actor) ([]*dto.TeamResponse, error)
	ListUnassigned(ctx context.Context, actor lifecycle.Actor) ([]*dto.RegistrantResponse, error)
	BulkAssign(ctx context.Context, actor lifecycle.Actor, teamId uuid.UUID, req *dto.BulkAssignRequest) (*dto.BulkAssignResponse, error)
	CreateRole(ctx context.Context, req *dto.CreateEventRoleRequest) (*dto.EventRoleResponse, error)
	ListRoles(ctx context.Context) ([]*dto.EventRoleResponse, error)
}

const teamListCacheKey = "teams:list"

type teamService struct {
	uowFactory unitofwork.RepositoryFactory
	// cache holds team lists with member counts; the roster view is hit
	// on every dashboard refresh while assignments change rarely.
	cache *cache.Cache
	log   logger.ILogger
}

func NewTeamService(uowFactory unitofwork.RepositoryFactory, teamCache *cache.Cache, log logger.ILogger) ITeamService {
	return &teamService{
		uowFactory: uowFactory,
		cache:      teamCache,
		log:        log,
	}
}

func (s *teamService) CreateTeam(ctx context.Context, actor lifecycle.Actor, req *dto.CreateTeamRequest) (*dto.TeamResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	config, err := uow.EventRepository().FindActiveConfig(ctx)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, fmt.Errorf("%w: no active event", ErrBadRequest)
	}

	region := req.Region
	if actor.Role == lifecycle.RoleRegionalAdmin {
		// Regional admins can only create teams in their own territory.
		region = actor.Region
	}

	team := &entity.EventTeam{
		ID:            uuid.New(),
		EventConfigID: config.ID,
		Name:          req.Name,
		Capacity:      req.Capacity,
		Region:        region,
	}
	if err := uow.EventRepository().CreateTeam(ctx, team); err != nil {
		return nil, err
	}

	s.cache.Delete(teamListCacheKey)

	return mapTeamToResponse(team), nil
}

func (s *teamService) ListTeams(ctx context.Context, actor lifecycle.Actor) ([]*dto.TeamResponse, error) {
	if actor.Role != lifecycle.RoleRegionalAdmin {
		if cached, ok := s.cache.Get(teamListCacheKey); ok {
			return cached.([]*dto.TeamResponse), nil
		}
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	var specs []specification.Specification
	if actor.Role == lifecycle.RoleRegionalAdmin {
		specs = append(specs, specification.ByRegion{Region: actor.Region})
	}
	specs = append(specs, specification.OrderBy{Field: "name", Desc: false})

	teams, err := uow.EventRepository().FindTeams(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.TeamResponse, 0, len(teams))
	for _, t := range teams {
		count, err := uow.RegistrantRepository().CountByTeam(ctx, t.ID)
		if err != nil {
			return nil, err
		}
		t.MemberCount = int(count)
		res = append(res, mapTeamToResponse(t))
	}

	if actor.Role != lifecycle.RoleRegionalAdmin {
		s.cache.Set(teamListCacheKey, res, cache.DefaultExpiration)
	}
	return res, nil
}

func (s *teamService) ListUnassigned(ctx context.Context, actor lifecycle.Actor) ([]*dto.RegistrantResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	registrants, err := uow.RegistrantRepository().FindAll(ctx,
		specification.Unassigned{},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	var res []*dto.RegistrantResponse
	for _, r := range registrants {
		res = append(res, mapRegistrantToResponse(r))
	}
	return res, nil
}

// BulkAssign applies the all-or-nothing gates first (every unassigned
// member of every touched registration must be named, and the batch
// must fit the team's free slots), then writes per registrant with the
// conditional update so a raced assignment surfaces as a per-item
// failure instead of a double booking. Registrants already on a team at
// read time are reported per item the same way.
func (s *teamService) BulkAssign(ctx context.Context, actor lifecycle.Actor, teamId uuid.UUID, req *dto.BulkAssignRequest) (*dto.BulkAssignResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	team, err := uow.EventRepository().FindOneTeam(ctx, specification.ByID{ID: teamId})
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, fmt.Errorf("%w: team", ErrNotFound)
	}
	if actor.Role == lifecycle.RoleRegionalAdmin && team.Region != actor.Region {
		return nil, fmt.Errorf("%w: team", ErrNotFound)
	}

	candidates := make([]*entity.Registrant, 0, len(req.RegistrantIds))
	candidateIds := make([]uuid.UUID, 0, len(req.RegistrantIds))
	var alreadyAssigned []dto.BulkAssignItem
	groupMembers := make(map[uuid.UUID][]lifecycle.AssignCandidate)
	seen := make(map[uuid.UUID]bool)

	for _, id := range req.RegistrantIds {
		registrant, err := uow.RegistrantRepository().FindOne(ctx, specification.ByID{ID: id})
		if err != nil {
			return nil, err
		}
		if registrant == nil {
			return nil, fmt.Errorf("%w: registrant %s", ErrNotFound, id)
		}
		if registrant.EventTeamID != nil {
			// Accumulated as a per-item failure; the rest of the batch
			// still runs.
			alreadyAssigned = append(alreadyAssigned, dto.BulkAssignItem{
				RegistrantId: registrant.ID,
				FullName:     registrant.FullName,
				Reason:       "already assigned to a team",
			})
			continue
		}
		candidates = append(candidates, registrant)
		candidateIds = append(candidateIds, registrant.ID)

		if seen[registrant.RegistrationID] {
			continue
		}
		seen[registrant.RegistrationID] = true

		members, err := uow.RegistrantRepository().FindAll(ctx,
			specification.ByRegistrationID{RegistrationID: registrant.RegistrationID},
			specification.Unassigned{},
		)
		if err != nil {
			return nil, err
		}
		for _, m := range members {
			groupMembers[registrant.RegistrationID] = append(groupMembers[registrant.RegistrationID], lifecycle.AssignCandidate{
				ID:             m.ID,
				RegistrationID: m.RegistrationID,
				FullName:       m.FullName,
			})
		}
	}

	memberCount, err := uow.RegistrantRepository().CountByTeam(ctx, team.ID)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.PlanBulkAssign(candidateIds, groupMembers, team.Capacity-int(memberCount)); err != nil {
		var incomplete *lifecycle.IncompleteGroupError
		var capacity *lifecycle.CapacityError
		if errors.As(err, &incomplete) || errors.As(err, &capacity) {
			return nil, fmt.Errorf("%w: %v", ErrConflict, err)
		}
		return nil, err
	}

	res := &dto.BulkAssignResponse{TeamId: team.ID}
	for _, item := range alreadyAssigned {
		res.Failed++
		res.Items = append(res.Items, item)
	}
	for _, registrant := range candidates {
		item := dto.BulkAssignItem{RegistrantId: registrant.ID, FullName: registrant.FullName}

		affected, err := uow.RegistrantRepository().AssignTeam(ctx, registrant.ID, team.ID)
		switch {
		case err != nil:
			item.Reason = "assignment failed"
			s.log.Warn("Team", "Assignment write failed", map[string]interface{}{
				"registrant_id": registrant.ID.String(),
				"error":         err.Error(),
			})
		case affected == 0:
			item.Reason = "already assigned by a concurrent request"
		default:
			item.Assigned = true
		}

		if item.Assigned {
			res.Assigned++
		} else {
			res.Failed++
		}
		res.Items = append(res.Items, item)
	}

	s.cache.Delete(teamListCacheKey)

	s.auditBulkAssign(ctx, uow, actor, team, res)
	return res, nil
}

func (s *teamService) auditBulkAssign(ctx context.Context, uow unitofwork.UnitOfWork, actor lifecycle.Actor, team *entity.EventTeam, res *dto.BulkAssignResponse) {
	err := uow.AuditLogRepository().Create(ctx, &entity.AuditLog{
		ID:          uuid.New(),
		ActorID:     &actor.UserID,
		Action:      "team.bulk_assign",
		SubjectType: "event_team",
		SubjectID:   team.ID.String(),
		Details: map[string]interface{}{
			"team_name": team.Name,
			"assigned":  res.Assigned,
			"failed":    res.Failed,
		},
	})
	if err != nil {
		s.log.Warn("Team", "Audit append failed", map[string]interface{}{"error": err.Error()})
	}
}

func (s *teamService) CreateRole(ctx context.Context, req *dto.CreateEventRoleRequest) (*dto.EventRoleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	config, err := uow.EventRepository().FindActiveConfig(ctx)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, fmt.Errorf("%w: no active event", ErrBadRequest)
	}

	role := &entity.EventRole{
		ID:            uuid.New(),
		EventConfigID: config.ID,
		Name:          req.Name,
		Description:   req.Description,
	}
	if err := uow.EventRepository().CreateRole(ctx, role); err != nil {
		return nil, err
	}

	return &dto.EventRoleResponse{Id: role.ID, Name: role.Name, Description: role.Description}, nil
}

func (s *teamService) ListRoles(ctx context.Context) ([]*dto.EventRoleResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	roles, err := uow.EventRepository().FindRoles(ctx, specification.OrderBy{Field: "name", Desc: false})
	if err != nil {
		return nil, err
	}

	var res []*dto.EventRoleResponse
	for _, r := range roles {
		res = append(res, &dto.EventRoleResponse{Id: r.ID, Name: r.Name, Description: r.Description})
	}
	return res, nil
}

func mapTeamToResponse(t *entity.EventTeam) *dto.TeamResponse {
	return &dto.TeamResponse{
		Id:          t.ID,
		Name:        t.Name,
		Capacity:    t.Capacity,
		Region:      t.Region,
		MemberCount: int64(t.MemberCount),
		CreatedAt:   t.CreatedAt,
	}
}
