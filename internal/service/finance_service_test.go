package service

import (
	"context"
	"testing"

	"event-reg-be/internal/dto"
	"event-reg-be/internal/entity"
	"event-reg-be/internal/lifecycle"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newFinanceFixture() (*fakeUow, IFinanceService) {
	uow := newFakeUow()
	uow.events.config = &entity.EventConfig{ID: uuid.New(), Name: "Đại Hội Giới Trẻ 2026"}
	svc := NewFinanceService(&fakeFactory{uow: uow}, nopLogger{})
	return uow, svc
}

func seedExpense(uow *fakeUow, status, region string) *entity.ExpenseRequest {
	expense := &entity.ExpenseRequest{
		ID:            uuid.New(),
		EventConfigID: uow.events.config.ID,
		UserID:        uuid.New(),
		Title:         "Thuê âm thanh",
		Purpose:       "Hệ thống âm thanh cho sân khấu chính",
		Amount:        15000000,
		Status:        status,
		Region:        region,
	}
	uow.expenses.items = append(uow.expenses.items, expense)
	return expense
}

func TestCreateExpenseForcesRegionalAdminRegion(t *testing.T) {
	uow, svc := newFinanceFixture()
	actor := lifecycle.Actor{UserID: uuid.New(), Role: lifecycle.RoleRegionalAdmin, Region: "north"}

	res, err := svc.CreateExpense(context.Background(), actor, &dto.CreateExpenseRequest{
		Title:   "Thuê âm thanh",
		Purpose: "Hệ thống âm thanh cho sân khấu chính",
		Amount:  15000000,
		Region:  "south",
	})

	assert.NoError(t, err)
	assert.Equal(t, lifecycle.ExpenseSubmitted, res.Status)
	assert.Len(t, uow.expenses.items, 1)
	assert.Equal(t, "north", uow.expenses.items[0].Region)
}

func TestUpdateExpenseStatusTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    string
		to      string
		role    lifecycle.Role
		wantErr error
	}{
		{"regional admin approves", lifecycle.ExpenseSubmitted, lifecycle.ExpenseApproved, lifecycle.RoleRegionalAdmin, nil},
		{"cashier transfers approved", lifecycle.ExpenseApproved, lifecycle.ExpenseTransferred, lifecycle.RoleCashier, nil},
		{"cashier cannot approve", lifecycle.ExpenseSubmitted, lifecycle.ExpenseApproved, lifecycle.RoleCashier, ErrForbidden},
		{"regional admin cannot transfer", lifecycle.ExpenseApproved, lifecycle.ExpenseTransferred, lifecycle.RoleRegionalAdmin, ErrForbidden},
		{"no skipping straight to closed", lifecycle.ExpenseSubmitted, lifecycle.ExpenseClosed, lifecycle.RoleSuperAdmin, ErrForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uow, svc := newFinanceFixture()
			expense := seedExpense(uow, tt.from, "north")
			actor := lifecycle.Actor{UserID: uuid.New(), Role: tt.role, Region: "north"}

			res, err := svc.UpdateExpenseStatus(context.Background(), actor, expense.ID, &dto.UpdateFinanceStatusRequest{Status: tt.to})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, tt.from, expense.Status)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.to, res.Status)
			assert.NotNil(t, expense.ProcessedAt)
		})
	}
}

func TestUpdateExpenseStatusRegionalScopeMiss(t *testing.T) {
	uow, svc := newFinanceFixture()
	expense := seedExpense(uow, lifecycle.ExpenseSubmitted, "south")
	actor := lifecycle.Actor{UserID: uuid.New(), Role: lifecycle.RoleRegionalAdmin, Region: "north"}

	_, err := svc.UpdateExpenseStatus(context.Background(), actor, expense.ID, &dto.UpdateFinanceStatusRequest{Status: lifecycle.ExpenseApproved})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListExpensesScoping(t *testing.T) {
	uow, svc := newFinanceFixture()
	north := seedExpense(uow, lifecycle.ExpenseSubmitted, "north")
	seedExpense(uow, lifecycle.ExpenseSubmitted, "south")

	regional := lifecycle.Actor{UserID: uuid.New(), Role: lifecycle.RoleRegionalAdmin, Region: "north"}
	res, err := svc.ListExpenses(context.Background(), regional)
	assert.NoError(t, err)
	if assert.Len(t, res.Items, 1) {
		assert.Equal(t, north.ID, res.Items[0].Id)
	}

	cashier := lifecycle.Actor{UserID: uuid.New(), Role: lifecycle.RoleCashier}
	res, err = svc.ListExpenses(context.Background(), cashier)
	assert.NoError(t, err)
	assert.Len(t, res.Items, 2)
}

func TestListExpensesStatsOnlyForLedgerViewers(t *testing.T) {
	uow, svc := newFinanceFixture()
	organizer := lifecycle.Actor{UserID: uuid.New(), Role: lifecycle.RoleEventOrganizer}
	own := seedExpense(uow, lifecycle.ExpenseSubmitted, "north")
	own.UserID = organizer.UserID
	seedExpense(uow, lifecycle.ExpenseSubmitted, "south")

	// Organizers only see their own rows, so aggregates over that slice
	// are withheld.
	res, err := svc.ListExpenses(context.Background(), organizer)
	assert.NoError(t, err)
	assert.Len(t, res.Items, 1)
	assert.Nil(t, res.Stats)

	cashier := lifecycle.Actor{UserID: uuid.New(), Role: lifecycle.RoleCashier}
	res, err = svc.ListExpenses(context.Background(), cashier)
	assert.NoError(t, err)
	if assert.NotNil(t, res.Stats) {
		assert.Equal(t, 2, res.Stats.TotalCount)
	}
}

func TestListDonationsScoping(t *testing.T) {
	uow, svc := newFinanceFixture()
	organizer := lifecycle.Actor{UserID: uuid.New(), Role: lifecycle.RoleEventOrganizer}
	own := &entity.Donation{
		ID:            uuid.New(),
		EventConfigID: uow.events.config.ID,
		UserID:        organizer.UserID,
		DonorName:     "Ân nhân A",
		Amount:        5000000,
		Status:        lifecycle.DonationPledged,
	}
	other := &entity.Donation{
		ID:            uuid.New(),
		EventConfigID: uow.events.config.ID,
		UserID:        uuid.New(),
		DonorName:     "Ân nhân B",
		Amount:        2000000,
		Status:        lifecycle.DonationReceived,
	}
	uow.donations.items = append(uow.donations.items, own, other)

	res, err := svc.ListDonations(context.Background(), organizer)
	assert.NoError(t, err)
	if assert.Len(t, res.Items, 1) {
		assert.Equal(t, own.ID, res.Items[0].Id)
	}
	assert.Nil(t, res.Stats)

	cashier := lifecycle.Actor{UserID: uuid.New(), Role: lifecycle.RoleCashier}
	res, err = svc.ListDonations(context.Background(), cashier)
	assert.NoError(t, err)
	assert.Len(t, res.Items, 2)
	if assert.NotNil(t, res.Stats) {
		assert.Equal(t, int64(7000000), res.Stats.TotalAmount)
	}
}

func TestListIncomeSourcesScoping(t *testing.T) {
	uow, svc := newFinanceFixture()
	regional := lifecycle.Actor{UserID: uuid.New(), Role: lifecycle.RoleRegionalAdmin, Region: "north"}
	own := &entity.IncomeSource{
		ID:             uuid.New(),
		EventConfigID:  uow.events.config.ID,
		UserID:         regional.UserID,
		Name:           "Tài trợ giáo xứ",
		ExpectedAmount: 10000000,
		Status:         lifecycle.IncomePending,
	}
	other := &entity.IncomeSource{
		ID:             uuid.New(),
		EventConfigID:  uow.events.config.ID,
		UserID:         uuid.New(),
		Name:           "Tài trợ doanh nghiệp",
		ExpectedAmount: 20000000,
		Status:         lifecycle.IncomePending,
	}
	uow.incomes.items = append(uow.incomes.items, own, other)

	// Income sources carry no region column, so regional admins are
	// owner-scoped here.
	res, err := svc.ListIncomeSources(context.Background(), regional)
	assert.NoError(t, err)
	if assert.Len(t, res.Items, 1) {
		assert.Equal(t, own.ID, res.Items[0].Id)
	}
	assert.Nil(t, res.Stats)

	super := lifecycle.Actor{UserID: uuid.New(), Role: lifecycle.RoleSuperAdmin}
	res, err = svc.ListIncomeSources(context.Background(), super)
	assert.NoError(t, err)
	assert.Len(t, res.Items, 2)
	assert.NotNil(t, res.Stats)
}
