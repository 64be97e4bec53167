package unitofwork

import (
	"context"

	"event-reg-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	RegistrationRepository() contract.RegistrationRepository
	RegistrantRepository() contract.RegistrantRepository
	TicketRepository() contract.TicketRepository
	CancelRequestRepository() contract.CancelRequestRepository
	ExpenseRequestRepository() contract.ExpenseRequestRepository
	DonationRepository() contract.DonationRepository
	IncomeSourceRepository() contract.IncomeSourceRepository
	EventRepository() contract.EventRepository
	AuditLogRepository() contract.AuditLogRepository
}
