package mailer

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

type IEmailService interface {
	SendRegistrationInvoice(toEmail, fullName, invoiceCode string, totalAmount int64) error
	SendPaymentConfirmed(toEmail, fullName, invoiceCode string) error
	SendPaymentRejected(toEmail, fullName, invoiceCode, reason string) error
	SendCancelResult(toEmail, fullName, invoiceCode string, approved bool) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)
	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) send(toEmail, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send to %s: %v\n", toEmail, err)
		return err
	}
	return nil
}

func (s *emailService) SendRegistrationInvoice(toEmail, fullName, invoiceCode string, totalAmount int64) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Registration received</h2>
			<p>Hi %s, your registration has been recorded.</p>
			<p>Invoice code: <b>%s</b></p>
			<p>Amount due: <b>%d VND</b></p>
			<p>Please transfer the amount with the invoice code as the reference,
			then upload your receipt to complete the registration.</p>
		</div>
	`, fullName, invoiceCode, totalAmount)
	return s.send(toEmail, fmt.Sprintf("Registration %s received", invoiceCode), body)
}

func (s *emailService) SendPaymentConfirmed(toEmail, fullName, invoiceCode string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment confirmed</h2>
			<p>Hi %s, the payment for registration <b>%s</b> has been confirmed.</p>
			<p>Your tickets are now available in your account.</p>
		</div>
	`, fullName, invoiceCode)
	return s.send(toEmail, fmt.Sprintf("Payment confirmed for %s", invoiceCode), body)
}

func (s *emailService) SendPaymentRejected(toEmail, fullName, invoiceCode, reason string) error {
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Payment could not be verified</h2>
			<p>Hi %s, the payment report for registration <b>%s</b> was rejected.</p>
			<p>Reason: %s</p>
			<p>Please check your transfer and upload a new receipt.</p>
		</div>
	`, fullName, invoiceCode, reason)
	return s.send(toEmail, fmt.Sprintf("Payment issue for %s", invoiceCode), body)
}

func (s *emailService) SendCancelResult(toEmail, fullName, invoiceCode string, approved bool) error {
	outcome := "approved"
	if !approved {
		outcome = "rejected"
	}
	body := fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>Cancellation request %s</h2>
			<p>Hi %s, your cancellation request for registration <b>%s</b> has been %s.</p>
		</div>
	`, outcome, fullName, invoiceCode, outcome)
	return s.send(toEmail, fmt.Sprintf("Cancellation %s for %s", outcome, invoiceCode), body)
}
