package events

import "time"

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g. "CHECKIN").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

const (
	TypeCheckIn          = "CHECKIN"
	TypePaymentConfirmed = "PAYMENT_CONFIRMED"
	TypePaymentRejected  = "PAYMENT_REJECTED"
	TypeCancelRequested  = "CANCEL_REQUESTED"
	TypeDonationReceived = "DONATION_RECEIVED"
)

// NewCheckInEvent is published after a successful gate scan.
func NewCheckInEvent(registrantId, registrationId, fullName string, at time.Time) Event {
	return BaseEvent{
		Type: TypeCheckIn,
		Data: map[string]interface{}{
			"registrant_id":   registrantId,
			"registration_id": registrationId,
			"full_name":       fullName,
			"checked_in_at":   at.Format(time.RFC3339),
		},
		OccurredAt: at,
	}
}

// NewPaymentEvent covers confirm/reject outcomes of the admin review.
func NewPaymentEvent(eventType, registrationId, invoiceCode string) Event {
	return BaseEvent{
		Type: eventType,
		Data: map[string]interface{}{
			"registration_id": registrationId,
			"invoice_code":    invoiceCode,
		},
		OccurredAt: time.Now(),
	}
}
