package service

import (
	"context"
	"testing"
	"time"

	"event-reg-be/internal/dto"
	"event-reg-be/internal/entity"
	"event-reg-be/internal/lifecycle"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
)

func newTeamFixture() (*fakeUow, ITeamService) {
	uow := newFakeUow()
	uow.events.config = &entity.EventConfig{ID: uuid.New(), Name: "Đại Hội Giới Trẻ 2026"}
	svc := NewTeamService(&fakeFactory{uow: uow}, cache.New(time.Minute, time.Minute), nopLogger{})
	return uow, svc
}

func seedTeam(uow *fakeUow, capacity int, region string) *entity.EventTeam {
	team := &entity.EventTeam{
		ID:            uuid.New(),
		EventConfigID: uow.events.config.ID,
		Name:          "Đội 1",
		Capacity:      capacity,
		Region:        region,
	}
	uow.events.teams = append(uow.events.teams, team)
	return team
}

func seedUnassignedGroup(uow *fakeUow, size int) []*entity.Registrant {
	registrationId := uuid.New()
	out := make([]*entity.Registrant, 0, size)
	for i := 0; i < size; i++ {
		r := &entity.Registrant{
			ID:             uuid.New(),
			RegistrationID: registrationId,
			FullName:       "Thành viên",
			IsPrimary:      i == 0,
		}
		uow.registrants.items = append(uow.registrants.items, r)
		out = append(out, r)
	}
	return out
}

func assignReq(registrants ...*entity.Registrant) *dto.BulkAssignRequest {
	req := &dto.BulkAssignRequest{}
	for _, r := range registrants {
		req.RegistrantIds = append(req.RegistrantIds, r.ID)
	}
	return req
}

func superAdmin() lifecycle.Actor {
	return lifecycle.Actor{UserID: uuid.New(), Role: lifecycle.RoleSuperAdmin}
}

func TestBulkAssignWholeGroup(t *testing.T) {
	uow, svc := newTeamFixture()
	team := seedTeam(uow, 10, "north")
	group := seedUnassignedGroup(uow, 3)

	res, err := svc.BulkAssign(context.Background(), superAdmin(), team.ID, assignReq(group...))

	assert.NoError(t, err)
	assert.Equal(t, 3, res.Assigned)
	assert.Equal(t, 0, res.Failed)
	for _, r := range group {
		if assert.NotNil(t, r.EventTeamID) {
			assert.Equal(t, team.ID, *r.EventTeamID)
		}
	}
	assert.Len(t, uow.audits.items, 1)
	assert.Equal(t, "team.bulk_assign", uow.audits.items[0].Action)
}

func TestBulkAssignRejectsSplitGroup(t *testing.T) {
	uow, svc := newTeamFixture()
	team := seedTeam(uow, 10, "north")
	group := seedUnassignedGroup(uow, 3)

	// Naming only part of a registration's unassigned members would
	// split the group across teams.
	_, err := svc.BulkAssign(context.Background(), superAdmin(), team.ID, assignReq(group[0], group[1]))

	assert.ErrorIs(t, err, ErrConflict)
	for _, r := range group {
		assert.Nil(t, r.EventTeamID)
	}
}

func TestBulkAssignRejectsOverCapacity(t *testing.T) {
	uow, svc := newTeamFixture()
	team := seedTeam(uow, 2, "north")
	group := seedUnassignedGroup(uow, 3)

	_, err := svc.BulkAssign(context.Background(), superAdmin(), team.ID, assignReq(group...))

	assert.ErrorIs(t, err, ErrConflict)
	for _, r := range group {
		assert.Nil(t, r.EventTeamID)
	}
}

func TestBulkAssignAccumulatesAlreadyAssigned(t *testing.T) {
	uow, svc := newTeamFixture()
	team := seedTeam(uow, 10, "north")
	other := seedTeam(uow, 10, "south")
	group := seedUnassignedGroup(uow, 2)
	group[1].EventTeamID = &other.ID

	// An already-assigned registrant is a per-item failure; the rest of
	// the batch still goes through.
	res, err := svc.BulkAssign(context.Background(), superAdmin(), team.ID, assignReq(group...))

	assert.NoError(t, err)
	assert.Equal(t, 1, res.Assigned)
	assert.Equal(t, 1, res.Failed)
	if assert.Len(t, res.Items, 2) {
		assert.Equal(t, group[1].ID, res.Items[0].RegistrantId)
		assert.False(t, res.Items[0].Assigned)
		assert.Equal(t, "already assigned to a team", res.Items[0].Reason)
		assert.True(t, res.Items[1].Assigned)
	}
	if assert.NotNil(t, group[0].EventTeamID) {
		assert.Equal(t, team.ID, *group[0].EventTeamID)
	}
	assert.Equal(t, other.ID, *group[1].EventTeamID)
}

func TestBulkAssignRegionalScopeMiss(t *testing.T) {
	uow, svc := newTeamFixture()
	team := seedTeam(uow, 10, "south")
	group := seedUnassignedGroup(uow, 1)

	actor := lifecycle.Actor{UserID: uuid.New(), Role: lifecycle.RoleRegionalAdmin, Region: "north"}

	// A team outside the admin's territory looks like a missing team,
	// not a forbidden one.
	_, err := svc.BulkAssign(context.Background(), actor, team.ID, assignReq(group...))

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateTeamForcesRegionalAdminRegion(t *testing.T) {
	uow, svc := newTeamFixture()
	actor := lifecycle.Actor{UserID: uuid.New(), Role: lifecycle.RoleRegionalAdmin, Region: "central"}

	res, err := svc.CreateTeam(context.Background(), actor, &dto.CreateTeamRequest{
		Name:     "Đội 2",
		Capacity: 40,
		Region:   "north",
	})

	assert.NoError(t, err)
	assert.Equal(t, "central", res.Region)
	assert.Len(t, uow.events.teams, 1)
}

func TestListTeamsFillsMemberCounts(t *testing.T) {
	uow, svc := newTeamFixture()
	team := seedTeam(uow, 10, "north")
	group := seedUnassignedGroup(uow, 2)
	for _, r := range group {
		r.EventTeamID = &team.ID
	}

	res, err := svc.ListTeams(context.Background(), superAdmin())

	assert.NoError(t, err)
	if assert.Len(t, res, 1) {
		assert.Equal(t, int64(2), res[0].MemberCount)
	}
}
