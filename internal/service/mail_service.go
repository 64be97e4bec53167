package service

import (
	"encoding/json"

	"event-reg-be/internal/pkg/logger"
	"event-reg-be/internal/pkg/mailer"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"
)

// MailTopic is the in-process queue for outbound email. Senders publish
// and return immediately; delivery happens on the consumer goroutine so
// a slow SMTP server never blocks a request.
const MailTopic = "outbound_mail"

type MailKind string

const (
	MailRegistrationInvoice MailKind = "registration_invoice"
	MailPaymentConfirmed    MailKind = "payment_confirmed"
	MailPaymentRejected     MailKind = "payment_rejected"
	MailCancelApproved      MailKind = "cancel_approved"
	MailCancelRejected      MailKind = "cancel_rejected"
)

type MailJob struct {
	Kind        MailKind `json:"kind"`
	To          string   `json:"to"`
	FullName    string   `json:"full_name"`
	InvoiceCode string   `json:"invoice_code"`
	Amount      int64    `json:"amount,omitempty"`
	Reason      string   `json:"reason,omitempty"`
}

type IMailPublisher interface {
	PublishMail(job MailJob)
}

type mailPublisher struct {
	publisher message.Publisher
	log       logger.ILogger
}

func NewMailPublisher(publisher message.Publisher, log logger.ILogger) IMailPublisher {
	return &mailPublisher{publisher: publisher, log: log}
}

func (p *mailPublisher) PublishMail(job MailJob) {
	payload, err := json.Marshal(job)
	if err != nil {
		p.log.Warn("Mail", "Failed to marshal mail job", map[string]interface{}{"error": err.Error()})
		return
	}
	msg := message.NewMessage(uuid.NewString(), payload)
	if err := p.publisher.Publish(MailTopic, msg); err != nil {
		p.log.Warn("Mail", "Failed to enqueue mail job", map[string]interface{}{
			"kind":  string(job.Kind),
			"error": err.Error(),
		})
	}
}

// MailConsumer drains MailTopic and hands each job to the SMTP mailer.
type MailConsumer struct {
	subscriber message.Subscriber
	email      mailer.IEmailService
	log        logger.ILogger
}

func NewMailConsumer(subscriber message.Subscriber, email mailer.IEmailService, log logger.ILogger) *MailConsumer {
	return &MailConsumer{subscriber: subscriber, email: email, log: log}
}

// Start subscribes and processes messages until the subscriber closes.
// Run it on its own goroutine.
func (c *MailConsumer) Start(messages <-chan *message.Message) {
	for msg := range messages {
		var job MailJob
		if err := json.Unmarshal(msg.Payload, &job); err != nil {
			c.log.Warn("Mail", "Dropping malformed mail job", map[string]interface{}{"error": err.Error()})
			msg.Ack()
			continue
		}

		if err := c.deliver(job); err != nil {
			c.log.Warn("Mail", "Delivery failed", map[string]interface{}{
				"kind":  string(job.Kind),
				"to":    job.To,
				"error": err.Error(),
			})
		}
		// Mail is best-effort, a failed delivery is not retried.
		msg.Ack()
	}
}

func (c *MailConsumer) deliver(job MailJob) error {
	switch job.Kind {
	case MailRegistrationInvoice:
		return c.email.SendRegistrationInvoice(job.To, job.FullName, job.InvoiceCode, job.Amount)
	case MailPaymentConfirmed:
		return c.email.SendPaymentConfirmed(job.To, job.FullName, job.InvoiceCode)
	case MailPaymentRejected:
		return c.email.SendPaymentRejected(job.To, job.FullName, job.InvoiceCode, job.Reason)
	case MailCancelApproved:
		return c.email.SendCancelResult(job.To, job.FullName, job.InvoiceCode, true)
	case MailCancelRejected:
		return c.email.SendCancelResult(job.To, job.FullName, job.InvoiceCode, false)
	}
	return nil
}
