package service

import (
	"context"
	"fmt"
	"time"

	"event-reg-be/internal/dto"
	"event-reg-be/internal/entity"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/pkg/logger"
	"event-reg-be/internal/repository/specification"
	"event-reg-be/internal/repository/unitofwork"
	"event-reg-be/pkg/events"
	pktNats "event-reg-be/pkg/nats"

	"github.com/google/uuid"
)

type ICancellationService interface {
	RequestCancellation(ctx context.Context, userId uuid.UUID, registrationId uuid.UUID, req *dto.CancelRegistrationRequest) (*dto.CancelRequestResponse, error)
	ListPending(ctx context.Context) ([]*dto.AdminCancelRequestResponse, error)
	Approve(ctx context.Context, adminId uuid.UUID, requestId uuid.UUID, req *dto.AdminProcessCancelRequest) (*dto.CancelRequestResponse, error)
	Reject(ctx context.Context, adminId uuid.UUID, requestId uuid.UUID, req *dto.AdminProcessCancelRequest) (*dto.CancelRequestResponse, error)
}

type cancellationService struct {
	uowFactory     unitofwork.RepositoryFactory
	mailPublisher  IMailPublisher
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewCancellationService(
	uowFactory unitofwork.RepositoryFactory,
	mailPublisher IMailPublisher,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) ICancellationService {
	return &cancellationService{
		uowFactory:     uowFactory,
		mailPublisher:  mailPublisher,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

func (s *cancellationService) RequestCancellation(ctx context.Context, userId uuid.UUID, registrationId uuid.UUID, req *dto.CancelRegistrationRequest) (*dto.CancelRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	registration, err := uow.RegistrationRepository().FindOne(ctx, specification.ByID{ID: registrationId})
	if err != nil {
		return nil, err
	}
	if registration == nil || registration.UserID != userId {
		return nil, fmt.Errorf("%w: registration", ErrNotFound)
	}

	if !lifecycle.CanRequestCancellation(registration.Status) {
		return nil, fmt.Errorf("%w: registration cannot be cancelled in its current state", ErrConflict)
	}

	requestType := entity.CancelRequestType(req.RequestType)

	// Donation keeps the money: no request row, no admin review, the
	// registration closes immediately.
	if requestType == entity.CancelTypeDonation {
		if err := uow.RegistrationRepository().UpdateStatus(ctx, registration.ID, lifecycle.StatusDonation); err != nil {
			return nil, err
		}

		if s.eventPublisher != nil {
			evt := events.NewPaymentEvent(events.TypeDonationReceived, registration.ID.String(), registration.InvoiceCode)
			if err := s.eventPublisher.Publish(ctx, evt); err != nil {
				s.log.Warn("Cancellation", "Failed to publish donation event", map[string]interface{}{"error": err.Error()})
			}
		}

		return &dto.CancelRequestResponse{
			RequestType: req.RequestType,
			Status:      string(lifecycle.StatusDonation),
			Message:     "Registration converted to a donation. Thank you for your support.",
		}, nil
	}

	if req.BankAccountNumber == "" || req.BankName == "" || req.AccountHolderName == "" {
		return nil, fmt.Errorf("%w: bank details are required for a refund", ErrBadRequest)
	}

	existing, err := uow.CancelRequestRepository().FindOne(ctx,
		specification.ByRegistrationID{RegistrationID: registration.ID},
		specification.FilterBy{Field: "status", Value: string(entity.CancelRequestPending)},
	)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: a cancellation request is already pending for this registration", ErrConflict)
	}

	request := &entity.CancelRequest{
		ID:                uuid.New(),
		RegistrationID:    registration.ID,
		UserID:            userId,
		Reason:            req.Reason,
		RequestType:       entity.CancelTypeRefund,
		BankAccountNumber: req.BankAccountNumber,
		BankName:          req.BankName,
		AccountHolderName: req.AccountHolderName,
		RefundAmount:      registration.TotalAmount,
		Status:            entity.CancelRequestPending,
		PreviousStatus:    registration.Status,
	}

	// Request row and status flip land together so a crash cannot
	// leave a cancel_pending registration with no request behind it.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.CancelRequestRepository().Create(ctx, request); err != nil {
		return nil, err
	}
	if err := uow.RegistrationRepository().UpdateStatus(ctx, registration.ID, lifecycle.StatusCancelPending); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	if s.eventPublisher != nil {
		evt := events.NewPaymentEvent(events.TypeCancelRequested, registration.ID.String(), registration.InvoiceCode)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("Cancellation", "Failed to publish cancel event", map[string]interface{}{"error": err.Error()})
		}
	}

	return &dto.CancelRequestResponse{
		Id:          request.ID,
		RequestType: req.RequestType,
		Status:      string(entity.CancelRequestPending),
		Message:     "Cancellation request submitted and awaiting review.",
	}, nil
}

func (s *cancellationService) ListPending(ctx context.Context) ([]*dto.AdminCancelRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	requests, err := uow.CancelRequestRepository().FindAllWithDetails(ctx,
		specification.FilterBy{Field: "status", Value: string(entity.CancelRequestPending)},
		specification.OrderBy{Field: "created_at", Desc: false},
	)
	if err != nil {
		return nil, err
	}

	var res []*dto.AdminCancelRequestResponse
	for _, r := range requests {
		res = append(res, mapCancelRequestToAdminResponse(r))
	}
	return res, nil
}

func (s *cancellationService) Approve(ctx context.Context, adminId uuid.UUID, requestId uuid.UUID, req *dto.AdminProcessCancelRequest) (*dto.CancelRequestResponse, error) {
	return s.process(ctx, adminId, requestId, req.AdminNotes, true)
}

func (s *cancellationService) Reject(ctx context.Context, adminId uuid.UUID, requestId uuid.UUID, req *dto.AdminProcessCancelRequest) (*dto.CancelRequestResponse, error) {
	return s.process(ctx, adminId, requestId, req.AdminNotes, false)
}

func (s *cancellationService) process(ctx context.Context, adminId uuid.UUID, requestId uuid.UUID, adminNotes string, approve bool) (*dto.CancelRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	request, err := uow.CancelRequestRepository().FindOne(ctx, specification.ByID{ID: requestId})
	if err != nil {
		return nil, err
	}
	if request == nil {
		return nil, fmt.Errorf("%w: cancellation request", ErrNotFound)
	}
	if request.Status != entity.CancelRequestPending {
		return nil, fmt.Errorf("%w: request has already been processed", ErrConflict)
	}

	now := time.Now()
	request.AdminNotes = adminNotes
	request.ProcessedAt = &now

	var nextRegistrationStatus lifecycle.Status
	if approve {
		request.Status = entity.CancelRequestApproved
		nextRegistrationStatus = lifecycle.StatusCancelled
	} else {
		request.Status = entity.CancelRequestRejected
		// Rejection puts the registration back where it was before the
		// request was filed.
		nextRegistrationStatus = request.PreviousStatus
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.CancelRequestRepository().Update(ctx, request); err != nil {
		return nil, err
	}
	if err := uow.RegistrationRepository().UpdateStatus(ctx, request.RegistrationID, nextRegistrationStatus); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.notifyResult(ctx, uow, request, approve)
	s.audit(ctx, uow, adminId, request, approve)

	message := "Cancellation request approved. The refund will be transferred to the provided account."
	if !approve {
		message = "Cancellation request rejected."
	}
	return &dto.CancelRequestResponse{
		Id:          request.ID,
		RequestType: string(request.RequestType),
		Status:      string(request.Status),
		Message:     message,
	}, nil
}

func (s *cancellationService) notifyResult(ctx context.Context, uow unitofwork.UnitOfWork, request *entity.CancelRequest, approved bool) {
	user, _ := uow.UserRepository().FindOne(ctx, specification.ByID{ID: request.UserID})
	registration, _ := uow.RegistrationRepository().FindOne(ctx, specification.ByID{ID: request.RegistrationID})
	if user == nil || registration == nil {
		return
	}

	kind := MailCancelApproved
	if !approved {
		kind = MailCancelRejected
	}
	s.mailPublisher.PublishMail(MailJob{
		Kind:        kind,
		To:          user.Email,
		FullName:    user.FullName,
		InvoiceCode: registration.InvoiceCode,
	})
}

func (s *cancellationService) audit(ctx context.Context, uow unitofwork.UnitOfWork, adminId uuid.UUID, request *entity.CancelRequest, approved bool) {
	action := "cancel_request.approve"
	if !approved {
		action = "cancel_request.reject"
	}
	err := uow.AuditLogRepository().Create(ctx, &entity.AuditLog{
		ID:          uuid.New(),
		ActorID:     &adminId,
		Action:      action,
		SubjectType: "cancel_request",
		SubjectID:   request.ID.String(),
		Details: map[string]interface{}{
			"registration_id": request.RegistrationID.String(),
			"refund_amount":   request.RefundAmount,
		},
	})
	if err != nil {
		s.log.Warn("Cancellation", "Audit append failed", map[string]interface{}{"error": err.Error()})
	}
}

func mapCancelRequestToAdminResponse(r *entity.CancelRequest) *dto.AdminCancelRequestResponse {
	res := &dto.AdminCancelRequestResponse{
		Id: r.ID,
		User: dto.AdminUserInfo{
			Id:       r.User.Id,
			Email:    r.User.Email,
			FullName: r.User.FullName,
		},
		Registration: dto.AdminRegistrationInfo{
			Id:          r.Registration.ID,
			InvoiceCode: r.Registration.InvoiceCode,
			Status:      string(r.Registration.Status),
			TotalAmount: r.Registration.TotalAmount,
		},
		RequestType:  string(r.RequestType),
		Reason:       r.Reason,
		RefundAmount: r.RefundAmount,
		Status:       string(r.Status),
		AdminNotes:   r.AdminNotes,
		CreatedAt:    r.CreatedAt,
		ProcessedAt:  r.ProcessedAt,
	}
	if r.RequestType == entity.CancelTypeRefund {
		res.BankInfo = &dto.AdminCancelBankInfo{
			BankAccountNumber: r.BankAccountNumber,
			BankName:          r.BankName,
			AccountHolderName: r.AccountHolderName,
		}
	}
	return res
}
