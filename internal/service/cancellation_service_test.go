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

func newCancellationFixture() (*fakeUow, ICancellationService, *captureMailPublisher) {
	uow := newFakeUow()
	mail := &captureMailPublisher{}
	svc := NewCancellationService(&fakeFactory{uow: uow}, mail, nil, nopLogger{})
	return uow, svc, mail
}

func refundRequest() *dto.CancelRegistrationRequest {
	return &dto.CancelRegistrationRequest{
		RequestType:       "refund",
		Reason:            "Family emergency, cannot attend the event",
		BankAccountNumber: "0123456789",
		BankName:          "Vietcombank",
		AccountHolderName: "NGUYEN VAN A",
	}
}

func TestRequestCancellationDonationClosesImmediately(t *testing.T) {
	uow, svc, _ := newCancellationFixture()
	registration, _ := seedConfirmedRegistration(uow)

	res, err := svc.RequestCancellation(context.Background(), registration.UserID, registration.ID, &dto.CancelRegistrationRequest{
		RequestType: "donation",
		Reason:      "Cannot attend, please keep the fee",
	})

	assert.NoError(t, err)
	assert.Equal(t, string(lifecycle.StatusDonation), res.Status)
	assert.Equal(t, lifecycle.StatusDonation, registration.Status)
	// Donations skip admin review entirely.
	assert.Empty(t, uow.cancels.items)
}

func TestRequestCancellationRefundRequiresBankDetails(t *testing.T) {
	uow, svc, _ := newCancellationFixture()
	registration, _ := seedConfirmedRegistration(uow)

	req := refundRequest()
	req.BankAccountNumber = ""

	_, err := svc.RequestCancellation(context.Background(), registration.UserID, registration.ID, req)

	assert.ErrorIs(t, err, ErrBadRequest)
	assert.Equal(t, lifecycle.StatusConfirmed, registration.Status)
}

func TestRequestCancellationRefundCreatesPendingRequest(t *testing.T) {
	uow, svc, _ := newCancellationFixture()
	registration, _ := seedConfirmedRegistration(uow)

	res, err := svc.RequestCancellation(context.Background(), registration.UserID, registration.ID, refundRequest())

	assert.NoError(t, err)
	assert.Equal(t, string(entity.CancelRequestPending), res.Status)
	assert.Equal(t, lifecycle.StatusCancelPending, registration.Status)
	assert.Len(t, uow.cancels.items, 1)
	request := uow.cancels.items[0]
	assert.Equal(t, registration.TotalAmount, request.RefundAmount)
	assert.Equal(t, lifecycle.StatusConfirmed, request.PreviousStatus)
	assert.Equal(t, 1, uow.committed)
}

func TestRequestCancellationRejectsSecondPendingRequest(t *testing.T) {
	uow, svc, _ := newCancellationFixture()
	registration, _ := seedConfirmedRegistration(uow)
	uow.cancels.items = append(uow.cancels.items, &entity.CancelRequest{
		ID:             uuid.New(),
		RegistrationID: registration.ID,
		Status:         entity.CancelRequestPending,
	})

	_, err := svc.RequestCancellation(context.Background(), registration.UserID, registration.ID, refundRequest())

	assert.ErrorIs(t, err, ErrConflict)
}

func TestRequestCancellationOwnershipMissIsNotFound(t *testing.T) {
	uow, svc, _ := newCancellationFixture()
	registration, _ := seedConfirmedRegistration(uow)

	// A stranger probing someone else's registration gets the same
	// answer as a missing row.
	_, err := svc.RequestCancellation(context.Background(), uuid.New(), registration.ID, refundRequest())

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRequestCancellationIneligibleStatus(t *testing.T) {
	uow, svc, _ := newCancellationFixture()
	registration, _ := seedConfirmedRegistration(uow)
	registration.Status = lifecycle.StatusCheckedIn

	_, err := svc.RequestCancellation(context.Background(), registration.UserID, registration.ID, refundRequest())

	assert.ErrorIs(t, err, ErrConflict)
}

func seedPendingCancelRequest(uow *fakeUow) (*entity.Registration, *entity.CancelRequest) {
	registration, _ := seedConfirmedRegistration(uow)
	registration.Status = lifecycle.StatusCancelPending
	uow.users.items = append(uow.users.items, &entity.User{
		Id:       registration.UserID,
		Email:    "owner@example.com",
		FullName: "Nguyễn Văn A",
	})
	request := &entity.CancelRequest{
		ID:             uuid.New(),
		RegistrationID: registration.ID,
		UserID:         registration.UserID,
		RequestType:    entity.CancelTypeRefund,
		RefundAmount:   registration.TotalAmount,
		Status:         entity.CancelRequestPending,
		PreviousStatus: lifecycle.StatusConfirmed,
	}
	uow.cancels.items = append(uow.cancels.items, request)
	return registration, request
}

func TestApproveCancellation(t *testing.T) {
	uow, svc, mail := newCancellationFixture()
	registration, request := seedPendingCancelRequest(uow)

	res, err := svc.Approve(context.Background(), uuid.New(), request.ID, &dto.AdminProcessCancelRequest{AdminNotes: "refund wired"})

	assert.NoError(t, err)
	assert.Equal(t, string(entity.CancelRequestApproved), res.Status)
	assert.Equal(t, lifecycle.StatusCancelled, registration.Status)
	assert.NotNil(t, request.ProcessedAt)
	if assert.Len(t, mail.jobs, 1) {
		assert.Equal(t, MailCancelApproved, mail.jobs[0].Kind)
		assert.Equal(t, "owner@example.com", mail.jobs[0].To)
	}
}

func TestRejectCancellationRestoresPreviousStatus(t *testing.T) {
	uow, svc, mail := newCancellationFixture()
	registration, request := seedPendingCancelRequest(uow)

	res, err := svc.Reject(context.Background(), uuid.New(), request.ID, &dto.AdminProcessCancelRequest{AdminNotes: "receipt already verified"})

	assert.NoError(t, err)
	assert.Equal(t, string(entity.CancelRequestRejected), res.Status)
	assert.Equal(t, lifecycle.StatusConfirmed, registration.Status)
	if assert.Len(t, mail.jobs, 1) {
		assert.Equal(t, MailCancelRejected, mail.jobs[0].Kind)
	}
}

func TestProcessAlreadyHandledRequest(t *testing.T) {
	uow, svc, _ := newCancellationFixture()
	_, request := seedPendingCancelRequest(uow)
	request.Status = entity.CancelRequestApproved

	_, err := svc.Approve(context.Background(), uuid.New(), request.ID, &dto.AdminProcessCancelRequest{})

	assert.ErrorIs(t, err, ErrConflict)
}
