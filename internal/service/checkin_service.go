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

// ICheckInBroadcaster pushes live check-in activity to connected
// dashboards. Implemented by the websocket hub.
type ICheckInBroadcaster interface {
	BroadcastCheckIn(registrant *dto.RegistrantResponse)
}

type ICheckInService interface {
	CheckIn(ctx context.Context, staffId uuid.UUID, registrantId uuid.UUID) (*dto.CheckInResult, error)
	Stats(ctx context.Context) (*dto.CheckInStatsResponse, error)
}

type checkInService struct {
	uowFactory     unitofwork.RepositoryFactory
	eventPublisher *pktNats.Publisher
	broadcaster    ICheckInBroadcaster
	log            logger.ILogger
}

func NewCheckInService(
	uowFactory unitofwork.RepositoryFactory,
	eventPublisher *pktNats.Publisher,
	broadcaster ICheckInBroadcaster,
	log logger.ILogger,
) ICheckInService {
	return &checkInService{
		uowFactory:     uowFactory,
		eventPublisher: eventPublisher,
		broadcaster:    broadcaster,
		log:            log,
	}
}

const checkInTimeLayout = "15:04 02/01/2006"

func duplicateCheckInMessage(name string, at *time.Time) string {
	when := ""
	if at != nil {
		when = at.Format(checkInTimeLayout)
	}
	return fmt.Sprintf("%s đã check-in trước đó lúc %s", name, when)
}

// CheckIn is the gate scan path. The only write that decides the
// outcome is the conditional update in MarkCheckedIn; every scan of the
// same registrant after the first one loses there and is reported as a
// duplicate, never as a second success. Ineligible and duplicate scans
// come back as a nil-error soft failure so the kiosk gets a renderable
// message instead of an error page.
func (s *checkInService) CheckIn(ctx context.Context, staffId uuid.UUID, registrantId uuid.UUID) (*dto.CheckInResult, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	registrant, err := uow.RegistrantRepository().FindOne(ctx, specification.ByID{ID: registrantId})
	if err != nil {
		return nil, err
	}
	if registrant == nil {
		return nil, fmt.Errorf("%w: registrant", ErrNotFound)
	}

	registration, err := uow.RegistrationRepository().FindOne(ctx, specification.ByID{ID: registrant.RegistrationID})
	if err != nil {
		return nil, err
	}
	if registration == nil {
		return nil, fmt.Errorf("%w: registration", ErrNotFound)
	}

	switch lifecycle.EvalCheckIn(registration.Status, registrant.IsCheckedIn) {
	case lifecycle.CheckInAlreadyDone:
		return &dto.CheckInResult{
			Success:    false,
			Message:    duplicateCheckInMessage(registrant.FullName, registrant.CheckedInAt),
			Registrant: mapRegistrantToResponse(registrant),
		}, nil
	case lifecycle.CheckInNotEligible:
		return &dto.CheckInResult{
			Success:    false,
			Message:    fmt.Sprintf("Registration %s is not eligible for check-in (status: %s)", registration.InvoiceCode, registration.Status),
			Registrant: mapRegistrantToResponse(registrant),
		}, nil
	}

	now := time.Now()
	affected, err := uow.RegistrantRepository().MarkCheckedIn(ctx, registrant.ID, now)
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		// A concurrent scan won the race between our read and the
		// update. Re-read for the recorded time.
		fresh, err := uow.RegistrantRepository().FindOne(ctx, specification.ByID{ID: registrant.ID})
		if err == nil && fresh != nil {
			registrant = fresh
		}
		return &dto.CheckInResult{
			Success:    false,
			Message:    duplicateCheckInMessage(registrant.FullName, registrant.CheckedInAt),
			Registrant: mapRegistrantToResponse(registrant),
		}, nil
	}

	registrant.IsCheckedIn = true
	registrant.CheckedInAt = &now

	// Denormalized status on the registration row is best-effort; the
	// registrant row is the source of truth for check-in state.
	if registration.Status != lifecycle.StatusCheckedIn {
		if err := uow.RegistrationRepository().UpdateStatus(ctx, registration.ID, lifecycle.StatusCheckedIn); err != nil {
			s.log.Warn("CheckIn", "Failed to sync registration status", map[string]interface{}{
				"registration_id": registration.ID.String(),
				"error":           err.Error(),
			})
		}
	}

	s.fanOut(ctx, uow, staffId, registrant, registration, now)

	return &dto.CheckInResult{
		Success:    true,
		Registrant: mapRegistrantToResponse(registrant),
	}, nil
}

func (s *checkInService) fanOut(ctx context.Context, uow unitofwork.UnitOfWork, staffId uuid.UUID, registrant *entity.Registrant, registration *entity.Registration, at time.Time) {
	err := uow.AuditLogRepository().Create(ctx, &entity.AuditLog{
		ID:          uuid.New(),
		ActorID:     &staffId,
		Action:      "registrant.check_in",
		SubjectType: "registrant",
		SubjectID:   registrant.ID.String(),
		Details: map[string]interface{}{
			"registration_id": registration.ID.String(),
			"invoice_code":    registration.InvoiceCode,
			"full_name":       registrant.FullName,
		},
	})
	if err != nil {
		s.log.Warn("CheckIn", "Audit append failed", map[string]interface{}{"error": err.Error()})
	}

	if s.eventPublisher != nil {
		evt := events.NewCheckInEvent(registrant.ID.String(), registration.ID.String(), registrant.FullName, at)
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("CheckIn", "Failed to publish check-in event", map[string]interface{}{"error": err.Error()})
		}
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastCheckIn(mapRegistrantToResponse(registrant))
	}
}

func (s *checkInService) Stats(ctx context.Context) (*dto.CheckInStatsResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	total, checkedIn, err := uow.RegistrantRepository().CountCheckedIn(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.CheckInStatsResponse{
		TotalRegistrants: total,
		CheckedIn:        checkedIn,
		Remaining:        total - checkedIn,
		AsOf:             time.Now(),
	}, nil
}
