package service

import (
	"context"

	"event-reg-be/internal/entity"
	"event-reg-be/internal/pkg/logger"
	"event-reg-be/internal/repository/unitofwork"
	"event-reg-be/pkg/events"
	pktNats "event-reg-be/pkg/nats"

	"github.com/google/uuid"
)

// EventConsumerService mirrors the domain event stream into the audit
// trail. It runs as a durable JetStream consumer so events published
// while the process was down are still recorded.
type EventConsumerService struct {
	uowFactory unitofwork.RepositoryFactory
	subscriber *pktNats.Subscriber
	log        logger.ILogger
}

func NewEventConsumerService(uowFactory unitofwork.RepositoryFactory, subscriber *pktNats.Subscriber, log logger.ILogger) *EventConsumerService {
	return &EventConsumerService{
		uowFactory: uowFactory,
		subscriber: subscriber,
		log:        log,
	}
}

func (s *EventConsumerService) Start() error {
	return s.subscriber.Subscribe("reg.>", "audit-trail", s.handle)
}

func (s *EventConsumerService) handle(ctx context.Context, event events.Event) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	subjectType := "registration"
	subjectId := ""
	if id, ok := event.Payload()["registration_id"].(string); ok {
		subjectId = id
	}
	if event.EventType() == events.TypeCheckIn {
		subjectType = "registrant"
		if id, ok := event.Payload()["registrant_id"].(string); ok {
			subjectId = id
		}
	}

	err := uow.AuditLogRepository().Create(ctx, &entity.AuditLog{
		ID:          uuid.New(),
		Action:      "event." + event.EventType(),
		SubjectType: subjectType,
		SubjectID:   subjectId,
		Details:     event.Payload(),
	})
	if err != nil {
		s.log.Error("Events", "Failed to record event", map[string]interface{}{
			"type":  event.EventType(),
			"error": err.Error(),
		})
		return err
	}
	return nil
}
