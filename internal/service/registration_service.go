package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"mime/multipart"
	"time"

	"event-reg-be/internal/dto"
	"event-reg-be/internal/entity"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/pkg/logger"
	"event-reg-be/internal/repository/contract"
	"event-reg-be/internal/repository/specification"
	"event-reg-be/internal/repository/unitofwork"
	"event-reg-be/pkg/events"
	pktNats "event-reg-be/pkg/nats"
	"event-reg-be/pkg/storage"

	"github.com/google/uuid"
)

type IRegistrationService interface {
	Create(ctx context.Context, userId uuid.UUID, req *dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error)
	ListOwn(ctx context.Context, userId uuid.UUID) ([]*dto.RegistrationResponse, error)
	Get(ctx context.Context, actorId uuid.UUID, actorRole lifecycle.Role, id uuid.UUID) (*dto.RegistrationResponse, error)
	Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateRegistrationRequest) (*dto.RegistrationResponse, error)
	ReportPayment(ctx context.Context, userId uuid.UUID, id uuid.UUID, receipt *multipart.FileHeader) (*dto.ReportPaymentResponse, error)
	GetTickets(ctx context.Context, actorId uuid.UUID, actorRole lifecycle.Role, id uuid.UUID) ([]*dto.TicketResponse, error)

	ConfirmPayment(ctx context.Context, adminId uuid.UUID, id uuid.UUID) (*dto.RegistrationResponse, error)
	RejectPayment(ctx context.Context, adminId uuid.UUID, id uuid.UUID, reason string) (*dto.RegistrationResponse, error)
	TempConfirm(ctx context.Context, adminId uuid.UUID, id uuid.UUID) (*dto.RegistrationResponse, error)
}

type registrationService struct {
	uowFactory     unitofwork.RepositoryFactory
	fileStore      storage.FileStore
	mailPublisher  IMailPublisher
	eventPublisher *pktNats.Publisher
	log            logger.ILogger
}

func NewRegistrationService(
	uowFactory unitofwork.RepositoryFactory,
	fileStore storage.FileStore,
	mailPublisher IMailPublisher,
	eventPublisher *pktNats.Publisher,
	log logger.ILogger,
) IRegistrationService {
	return &registrationService{
		uowFactory:     uowFactory,
		fileStore:      fileStore,
		mailPublisher:  mailPublisher,
		eventPublisher: eventPublisher,
		log:            log,
	}
}

// generateInvoiceCode builds the human-readable payment reference:
// DH<YY><8 random digits>.
func generateInvoiceCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("DH%02d%08d", time.Now().Year()%100, n), nil
}

// nextInvoiceCode draws codes until one is unused. The unique index on
// invoice_code stays as the final guard against a concurrent draw of
// the same code.
func nextInvoiceCode(ctx context.Context, repo contract.RegistrationRepository) (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := generateInvoiceCode()
		if err != nil {
			return "", err
		}
		existing, err := repo.FindOne(ctx, specification.ByInvoiceCode{Code: code})
		if err != nil {
			return "", err
		}
		if existing == nil {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not allocate a unique invoice code")
}

func (s *registrationService) Create(ctx context.Context, userId uuid.UUID, req *dto.CreateRegistrationRequest) (*dto.RegistrationResponse, error) {
	primaryCount := 0
	for _, r := range req.Registrants {
		if r.IsPrimary {
			primaryCount++
		}
	}
	if primaryCount != 1 {
		return nil, fmt.Errorf("%w: exactly one primary registrant required", ErrBadRequest)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	eventConfig, err := uow.EventRepository().FindActiveConfig(ctx)
	if err != nil {
		return nil, err
	}
	if eventConfig == nil {
		return nil, fmt.Errorf("%w: registration is not open", ErrBadRequest)
	}

	invoiceCode, err := nextInvoiceCode(ctx, uow.RegistrationRepository())
	if err != nil {
		return nil, err
	}

	registration := &entity.Registration{
		ID:               uuid.New(),
		UserID:           userId,
		EventConfigID:    eventConfig.ID,
		InvoiceCode:      invoiceCode,
		Status:           lifecycle.StatusPending,
		TotalAmount:      eventConfig.FeePerParticipant * int64(len(req.Registrants)),
		ParticipantCount: len(req.Registrants),
		Notes:            req.Notes,
	}

	// Registration and registrants land in one transaction so the
	// one-primary invariant cannot be broken by a partial write.
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	if err := uow.RegistrationRepository().Create(ctx, registration); err != nil {
		return nil, err
	}

	for _, input := range req.Registrants {
		registrant := &entity.Registrant{
			ID:             uuid.New(),
			RegistrationID: registration.ID,
			FullName:       input.FullName,
			SaintName:      input.SaintName,
			Gender:         input.Gender,
			AgeGroup:       input.AgeGroup,
			Province:       input.Province,
			Diocese:        input.Diocese,
			ShirtSize:      input.ShirtSize,
			IsPrimary:      input.IsPrimary,
		}
		if err := uow.RegistrantRepository().Create(ctx, registrant); err != nil {
			return nil, err
		}
		registration.Registrants = append(registration.Registrants, *registrant)
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	// Invoice email is best-effort.
	user, _ := uow.UserRepository().FindOne(ctx, specification.ByID{ID: userId})
	if user != nil {
		s.mailPublisher.PublishMail(MailJob{
			Kind:        MailRegistrationInvoice,
			To:          user.Email,
			FullName:    user.FullName,
			InvoiceCode: registration.InvoiceCode,
			Amount:      registration.TotalAmount,
		})
	}

	return mapRegistrationToResponse(registration), nil
}

func (s *registrationService) ListOwn(ctx context.Context, userId uuid.UUID) ([]*dto.RegistrationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	registrations, err := uow.RegistrationRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	var res []*dto.RegistrationResponse
	for _, reg := range registrations {
		res = append(res, mapRegistrationToResponse(reg))
	}
	return res, nil
}

// loadOwned fetches a registration visible to the actor. Non-owners
// without an admin role get ErrNotFound, deliberately not ErrForbidden.
func (s *registrationService) loadOwned(ctx context.Context, uow unitofwork.UnitOfWork, actorId uuid.UUID, actorRole lifecycle.Role, id uuid.UUID) (*entity.Registration, error) {
	registration, err := uow.RegistrationRepository().FindOneWithRegistrants(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, fmt.Errorf("%w: registration", ErrNotFound)
	}
	if registration.UserID != actorId && !actorRole.IsAdmin() {
		return nil, fmt.Errorf("%w: registration", ErrNotFound)
	}
	return registration, nil
}

func (s *registrationService) Get(ctx context.Context, actorId uuid.UUID, actorRole lifecycle.Role, id uuid.UUID) (*dto.RegistrationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	registration, err := s.loadOwned(ctx, uow, actorId, actorRole, id)
	if err != nil {
		return nil, err
	}
	return mapRegistrationToResponse(registration), nil
}

func (s *registrationService) Update(ctx context.Context, userId uuid.UUID, id uuid.UUID, req *dto.UpdateRegistrationRequest) (*dto.RegistrationResponse, error) {
	primaryCount := 0
	for _, r := range req.Registrants {
		if r.IsPrimary {
			primaryCount++
		}
	}
	if primaryCount != 1 {
		return nil, fmt.Errorf("%w: exactly one primary registrant required", ErrBadRequest)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	registration, err := s.loadOwned(ctx, uow, userId, lifecycle.RoleUser, id)
	if err != nil {
		return nil, err
	}

	ticketCount, err := uow.TicketRepository().CountByRegistration(ctx, registration.ID)
	if err != nil {
		return nil, err
	}
	if !lifecycle.CanEdit(registration.Status, ticketCount > 0) {
		return nil, fmt.Errorf("%w: registration can no longer be edited", ErrConflict)
	}

	if len(req.Registrants) != len(registration.Registrants) {
		return nil, fmt.Errorf("%w: participant count is fixed after creation", ErrBadRequest)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	for i := range registration.Registrants {
		existing := &registration.Registrants[i]
		input := req.Registrants[i]
		existing.FullName = input.FullName
		existing.SaintName = input.SaintName
		existing.Gender = input.Gender
		existing.AgeGroup = input.AgeGroup
		existing.Province = input.Province
		existing.Diocese = input.Diocese
		existing.ShirtSize = input.ShirtSize
		existing.IsPrimary = input.IsPrimary
		if err := uow.RegistrantRepository().Update(ctx, existing); err != nil {
			return nil, err
		}
	}

	registration.Notes = req.Notes
	if err := uow.RegistrationRepository().Update(ctx, registration); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	return mapRegistrationToResponse(registration), nil
}

func (s *registrationService) ReportPayment(ctx context.Context, userId uuid.UUID, id uuid.UUID, receipt *multipart.FileHeader) (*dto.ReportPaymentResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	registration, err := s.loadOwned(ctx, uow, userId, lifecycle.RoleUser, id)
	if err != nil {
		return nil, err
	}

	if !lifecycle.CanReportPayment(registration.Status) {
		return nil, fmt.Errorf("%w: payment already reported or confirmed", ErrConflict)
	}

	receiptURL, err := s.fileStore.Save(receipt, "receipts")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	if err := uow.RegistrationRepository().UpdateReceipt(ctx, registration.ID, receiptURL, lifecycle.StatusReportPaid); err != nil {
		return nil, err
	}

	return &dto.ReportPaymentResponse{
		RegistrationId: registration.ID,
		Status:         string(lifecycle.StatusReportPaid),
		ReceiptURL:     receiptURL,
	}, nil
}

func (s *registrationService) GetTickets(ctx context.Context, actorId uuid.UUID, actorRole lifecycle.Role, id uuid.UUID) ([]*dto.TicketResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	registration, err := s.loadOwned(ctx, uow, actorId, actorRole, id)
	if err != nil {
		return nil, err
	}

	if !lifecycle.CanAccessTickets(registration.Status) {
		return nil, fmt.Errorf("%w: tickets are not available until payment is confirmed", ErrForbidden)
	}

	tickets, err := uow.TicketRepository().FindAll(ctx, specification.ByRegistrationID{RegistrationID: registration.ID})
	if err != nil {
		return nil, err
	}

	names := make(map[uuid.UUID]string, len(registration.Registrants))
	for _, r := range registration.Registrants {
		names[r.ID] = r.FullName
	}

	var res []*dto.TicketResponse
	for _, t := range tickets {
		res = append(res, &dto.TicketResponse{
			Id:             t.ID,
			RegistrantId:   t.RegistrantID,
			RegistrantName: names[t.RegistrantID],
			Code:           t.Code,
			IssuedAt:       t.IssuedAt,
		})
	}
	return res, nil
}

// ConfirmPayment moves a reported payment through confirm_paid to
// confirmed and issues one ticket per registrant, all in one
// transaction.
func (s *registrationService) ConfirmPayment(ctx context.Context, adminId uuid.UUID, id uuid.UUID) (*dto.RegistrationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	registration, err := uow.RegistrationRepository().FindOneWithRegistrants(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, fmt.Errorf("%w: registration", ErrNotFound)
	}
	if registration.Status != lifecycle.StatusReportPaid && registration.Status != lifecycle.StatusConfirmPaid {
		return nil, fmt.Errorf("%w: registration has no payment to confirm", ErrConflict)
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	now := time.Now()
	tickets := make([]*entity.Ticket, 0, len(registration.Registrants))
	for _, r := range registration.Registrants {
		tickets = append(tickets, &entity.Ticket{
			ID:             uuid.New(),
			RegistrationID: registration.ID,
			RegistrantID:   r.ID,
			Code:           uuid.New().String(),
			IssuedAt:       now,
		})
	}
	if err := uow.TicketRepository().CreateBatch(ctx, tickets); err != nil {
		return nil, err
	}

	registration.Status = lifecycle.StatusConfirmed
	if err := uow.RegistrationRepository().UpdateStatus(ctx, registration.ID, lifecycle.StatusConfirmed); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.afterPaymentReview(ctx, uow, adminId, registration, events.TypePaymentConfirmed, "")

	return mapRegistrationToResponse(registration), nil
}

func (s *registrationService) RejectPayment(ctx context.Context, adminId uuid.UUID, id uuid.UUID, reason string) (*dto.RegistrationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	registration, err := uow.RegistrationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, fmt.Errorf("%w: registration", ErrNotFound)
	}
	if registration.Status != lifecycle.StatusReportPaid {
		return nil, fmt.Errorf("%w: registration has no payment report to reject", ErrConflict)
	}

	registration.Status = lifecycle.StatusPaymentRejected
	if err := uow.RegistrationRepository().UpdateStatus(ctx, registration.ID, lifecycle.StatusPaymentRejected); err != nil {
		return nil, err
	}

	s.afterPaymentReview(ctx, uow, adminId, registration, events.TypePaymentRejected, reason)

	return mapRegistrationToResponse(registration), nil
}

func (s *registrationService) TempConfirm(ctx context.Context, adminId uuid.UUID, id uuid.UUID) (*dto.RegistrationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	registration, err := uow.RegistrationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, fmt.Errorf("%w: registration", ErrNotFound)
	}
	switch registration.Status {
	case lifecycle.StatusPending, lifecycle.StatusReportPaid, lifecycle.StatusPaymentRejected:
		// on-site override for registrations whose transfer has not
		// cleared yet
	default:
		return nil, fmt.Errorf("%w: registration cannot be temporarily confirmed", ErrConflict)
	}

	registration.Status = lifecycle.StatusTempConfirmed
	if err := uow.RegistrationRepository().UpdateStatus(ctx, registration.ID, lifecycle.StatusTempConfirmed); err != nil {
		return nil, err
	}

	s.audit(ctx, uow, adminId, "registration.temp_confirm", registration)

	return mapRegistrationToResponse(registration), nil
}

// afterPaymentReview fans out the non-critical side effects of an admin
// decision: result email, NATS event, audit row. All best-effort.
func (s *registrationService) afterPaymentReview(ctx context.Context, uow unitofwork.UnitOfWork, adminId uuid.UUID, registration *entity.Registration, eventType, reason string) {
	user, _ := uow.UserRepository().FindOne(ctx, specification.ByID{ID: registration.UserID})
	if user != nil {
		kind := MailPaymentConfirmed
		if eventType == events.TypePaymentRejected {
			kind = MailPaymentRejected
		}
		s.mailPublisher.PublishMail(MailJob{
			Kind:        kind,
			To:          user.Email,
			FullName:    user.FullName,
			InvoiceCode: registration.InvoiceCode,
			Reason:      reason,
		})
	}

	if s.eventPublisher != nil {
		if err := s.eventPublisher.Publish(ctx, events.NewPaymentEvent(eventType, registration.ID.String(), registration.InvoiceCode)); err != nil {
			s.log.Warn("Registration", "Failed to publish payment event", map[string]interface{}{"error": err.Error()})
		}
	}

	s.audit(ctx, uow, adminId, "registration."+eventType, registration)
}

func (s *registrationService) audit(ctx context.Context, uow unitofwork.UnitOfWork, actorId uuid.UUID, action string, registration *entity.Registration) {
	err := uow.AuditLogRepository().Create(ctx, &entity.AuditLog{
		ID:          uuid.New(),
		ActorID:     &actorId,
		Action:      action,
		SubjectType: "registration",
		SubjectID:   registration.ID.String(),
		Details: map[string]interface{}{
			"invoice_code": registration.InvoiceCode,
			"status":       string(registration.Status),
		},
	})
	if err != nil {
		s.log.Warn("Registration", "Audit append failed", map[string]interface{}{"error": err.Error()})
	}
}

func mapRegistrationToResponse(reg *entity.Registration) *dto.RegistrationResponse {
	res := &dto.RegistrationResponse{
		Id:               reg.ID,
		InvoiceCode:      reg.InvoiceCode,
		Status:           string(reg.Status),
		TotalAmount:      reg.TotalAmount,
		ParticipantCount: reg.ParticipantCount,
		Notes:            reg.Notes,
		ReceiptURL:       reg.ReceiptURL,
		CreatedAt:        reg.CreatedAt,
	}
	for _, r := range reg.Registrants {
		res.Registrants = append(res.Registrants, *mapRegistrantToResponse(&r))
	}
	return res
}

func mapRegistrantToResponse(r *entity.Registrant) *dto.RegistrantResponse {
	return &dto.RegistrantResponse{
		Id:          r.ID,
		FullName:    r.FullName,
		SaintName:   r.SaintName,
		Gender:      r.Gender,
		AgeGroup:    r.AgeGroup,
		Province:    r.Province,
		Diocese:     r.Diocese,
		ShirtSize:   r.ShirtSize,
		IsPrimary:   r.IsPrimary,
		EventTeamId: r.EventTeamID,
		EventRoleId: r.EventRoleID,
		PortraitURL: r.PortraitURL,
		IsCheckedIn: r.IsCheckedIn,
		CheckedInAt: r.CheckedInAt,
	}
}
