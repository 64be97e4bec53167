package service

import (
	"context"
	"strings"
	"testing"

	"event-reg-be/internal/dto"
	"event-reg-be/internal/entity"
	"event-reg-be/internal/lifecycle"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newRegistrationFixture() (*fakeUow, IRegistrationService, *captureMailPublisher) {
	uow := newFakeUow()
	uow.events.config = &entity.EventConfig{
		ID:                uuid.New(),
		Name:              "Đại Hội Giới Trẻ 2026",
		FeePerParticipant: 350000,
		RegistrationOpen:  true,
	}
	mail := &captureMailPublisher{}
	svc := NewRegistrationService(&fakeFactory{uow: uow}, nil, mail, nil, nopLogger{})
	return uow, svc, mail
}

func createReq(registrants ...dto.RegistrantInput) *dto.CreateRegistrationRequest {
	return &dto.CreateRegistrationRequest{Registrants: registrants}
}

func TestCreateRegistration(t *testing.T) {
	uow, svc, mail := newRegistrationFixture()
	userId := uuid.New()
	uow.users.items = append(uow.users.items, &entity.User{
		Id:       userId,
		Email:    "owner@example.com",
		FullName: "Nguyễn Văn A",
	})

	res, err := svc.Create(context.Background(), userId, createReq(
		dto.RegistrantInput{FullName: "Nguyễn Văn A", Gender: "male", IsPrimary: true},
		dto.RegistrantInput{FullName: "Trần Thị B", Gender: "female"},
	))

	assert.NoError(t, err)
	assert.Equal(t, string(lifecycle.StatusPending), res.Status)
	assert.Equal(t, int64(700000), res.TotalAmount)
	assert.True(t, strings.HasPrefix(res.InvoiceCode, "DH"))
	assert.Len(t, res.InvoiceCode, 12)
	assert.Len(t, uow.registrants.items, 2)
	assert.Equal(t, 1, uow.committed)
	if assert.Len(t, mail.jobs, 1) {
		assert.Equal(t, MailRegistrationInvoice, mail.jobs[0].Kind)
		assert.Equal(t, int64(700000), mail.jobs[0].Amount)
	}
}

func TestCreateRegistrationRetriesTakenInvoiceCode(t *testing.T) {
	uow, svc, _ := newRegistrationFixture()
	uow.registrations.invoiceCollisions = 2

	res, err := svc.Create(context.Background(), uuid.New(), createReq(
		dto.RegistrantInput{FullName: "Nguyễn Văn A", Gender: "male", IsPrimary: true},
	))

	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(res.InvoiceCode, "DH"))
	assert.Equal(t, 0, uow.registrations.invoiceCollisions)
	assert.Len(t, uow.registrations.items, 1)
}

func TestCreateRegistrationGivesUpAfterRepeatedCollisions(t *testing.T) {
	uow, svc, _ := newRegistrationFixture()
	uow.registrations.invoiceCollisions = 5

	_, err := svc.Create(context.Background(), uuid.New(), createReq(
		dto.RegistrantInput{FullName: "Nguyễn Văn A", Gender: "male", IsPrimary: true},
	))

	assert.Error(t, err)
	assert.Empty(t, uow.registrations.items)
}

func TestCreateRegistrationRequiresExactlyOnePrimary(t *testing.T) {
	_, svc, _ := newRegistrationFixture()

	tests := []struct {
		name string
		req  *dto.CreateRegistrationRequest
	}{
		{"no primary", createReq(
			dto.RegistrantInput{FullName: "Nguyễn Văn A", Gender: "male"},
		)},
		{"two primaries", createReq(
			dto.RegistrantInput{FullName: "Nguyễn Văn A", Gender: "male", IsPrimary: true},
			dto.RegistrantInput{FullName: "Trần Thị B", Gender: "female", IsPrimary: true},
		)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), uuid.New(), tt.req)
			assert.ErrorIs(t, err, ErrBadRequest)
		})
	}
}

func TestCreateRegistrationWithoutActiveEvent(t *testing.T) {
	uow, svc, _ := newRegistrationFixture()
	uow.events.config = nil

	_, err := svc.Create(context.Background(), uuid.New(), createReq(
		dto.RegistrantInput{FullName: "Nguyễn Văn A", Gender: "male", IsPrimary: true},
	))

	assert.ErrorIs(t, err, ErrBadRequest)
}

func TestGetRegistrationOwnership(t *testing.T) {
	uow, svc, _ := newRegistrationFixture()
	registration, _ := seedConfirmedRegistration(uow)

	res, err := svc.Get(context.Background(), registration.UserID, lifecycle.RoleUser, registration.ID)
	assert.NoError(t, err)
	assert.Equal(t, registration.InvoiceCode, res.InvoiceCode)

	// Strangers see a 404, not a 403.
	_, err = svc.Get(context.Background(), uuid.New(), lifecycle.RoleUser, registration.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Admins can read any registration.
	_, err = svc.Get(context.Background(), uuid.New(), lifecycle.RoleSuperAdmin, registration.ID)
	assert.NoError(t, err)
}

func TestConfirmPaymentIssuesTickets(t *testing.T) {
	uow, svc, mail := newRegistrationFixture()
	registration, registrant := seedConfirmedRegistration(uow)
	registration.Status = lifecycle.StatusReportPaid
	registration.Registrants = []entity.Registrant{*registrant}
	uow.users.items = append(uow.users.items, &entity.User{
		Id:    registration.UserID,
		Email: "owner@example.com",
	})

	res, err := svc.ConfirmPayment(context.Background(), uuid.New(), registration.ID)

	assert.NoError(t, err)
	assert.Equal(t, string(lifecycle.StatusConfirmed), res.Status)
	assert.Len(t, uow.tickets.items, 1)
	assert.Equal(t, registrant.ID, uow.tickets.items[0].RegistrantID)
	if assert.Len(t, mail.jobs, 1) {
		assert.Equal(t, MailPaymentConfirmed, mail.jobs[0].Kind)
	}
}

func TestConfirmPaymentRequiresReportedPayment(t *testing.T) {
	uow, svc, _ := newRegistrationFixture()
	registration, _ := seedConfirmedRegistration(uow)
	registration.Status = lifecycle.StatusPending

	_, err := svc.ConfirmPayment(context.Background(), uuid.New(), registration.ID)

	assert.ErrorIs(t, err, ErrConflict)
	assert.Empty(t, uow.tickets.items)
}

func TestRejectPayment(t *testing.T) {
	uow, svc, mail := newRegistrationFixture()
	registration, _ := seedConfirmedRegistration(uow)
	registration.Status = lifecycle.StatusReportPaid
	uow.users.items = append(uow.users.items, &entity.User{
		Id:    registration.UserID,
		Email: "owner@example.com",
	})

	res, err := svc.RejectPayment(context.Background(), uuid.New(), registration.ID, "receipt image unreadable")

	assert.NoError(t, err)
	assert.Equal(t, string(lifecycle.StatusPaymentRejected), res.Status)
	assert.Equal(t, lifecycle.StatusPaymentRejected, registration.Status)
	if assert.Len(t, mail.jobs, 1) {
		assert.Equal(t, MailPaymentRejected, mail.jobs[0].Kind)
		assert.Equal(t, "receipt image unreadable", mail.jobs[0].Reason)
	}
}

func TestUpdateLockedAfterTicketsIssued(t *testing.T) {
	uow, svc, _ := newRegistrationFixture()
	registration, registrant := seedConfirmedRegistration(uow)
	registration.Status = lifecycle.StatusTempConfirmed
	registration.Registrants = []entity.Registrant{*registrant}
	uow.tickets.items = append(uow.tickets.items, &entity.Ticket{
		ID:             uuid.New(),
		RegistrationID: registration.ID,
		RegistrantID:   registrant.ID,
	})

	_, err := svc.Update(context.Background(), registration.UserID, registration.ID, &dto.UpdateRegistrationRequest{
		Registrants: []dto.RegistrantInput{
			{FullName: "Nguyễn Văn A", Gender: "male", IsPrimary: true},
		},
	})

	assert.ErrorIs(t, err, ErrConflict)
}
