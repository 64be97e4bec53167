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

	"github.com/google/uuid"
)

type IFinanceService interface {
	CreateExpense(ctx context.Context, actor lifecycle.Actor, req *dto.CreateExpenseRequest) (*dto.ExpenseRequestResponse, error)
	ListExpenses(ctx context.Context, actor lifecycle.Actor) (*dto.ExpenseListResponse, error)
	UpdateExpenseStatus(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, req *dto.UpdateFinanceStatusRequest) (*dto.ExpenseRequestResponse, error)

	CreateDonation(ctx context.Context, actor lifecycle.Actor, req *dto.CreateDonationRequest) (*dto.DonationResponse, error)
	ListDonations(ctx context.Context, actor lifecycle.Actor) (*dto.DonationListResponse, error)
	UpdateDonationStatus(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, req *dto.UpdateFinanceStatusRequest) (*dto.DonationResponse, error)

	CreateIncomeSource(ctx context.Context, actor lifecycle.Actor, req *dto.CreateIncomeSourceRequest) (*dto.IncomeSourceResponse, error)
	ListIncomeSources(ctx context.Context, actor lifecycle.Actor) (*dto.IncomeSourceListResponse, error)
	UpdateIncomeSourceStatus(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, req *dto.UpdateFinanceStatusRequest) (*dto.IncomeSourceResponse, error)
}

type financeService struct {
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewFinanceService(uowFactory unitofwork.RepositoryFactory, log logger.ILogger) IFinanceService {
	return &financeService{uowFactory: uowFactory, log: log}
}

// fullLedgerView reports whether the role reads every row of a ledger.
// Other roles get owner-scoped lists and no aggregates, so a partial
// slice never masquerades as event-wide numbers.
func fullLedgerView(role lifecycle.Role) bool {
	return role == lifecycle.RoleSuperAdmin || role == lifecycle.RoleCashier
}

// ownerScoped narrows a ledger query to the actor's own rows unless the
// role carries full ledger access. Donations and income sources have no
// region column, so regional admins are owner-scoped here like
// organizers.
func ownerScoped(actor lifecycle.Actor, specs []specification.Specification) []specification.Specification {
	if fullLedgerView(actor.Role) {
		return specs
	}
	return append(specs, specification.ByUserID{UserID: actor.UserID})
}

func (s *financeService) activeConfig(ctx context.Context, uow unitofwork.UnitOfWork) (*entity.EventConfig, error) {
	config, err := uow.EventRepository().FindActiveConfig(ctx)
	if err != nil {
		return nil, err
	}
	if config == nil {
		return nil, fmt.Errorf("%w: no active event", ErrBadRequest)
	}
	return config, nil
}

func (s *financeService) CreateExpense(ctx context.Context, actor lifecycle.Actor, req *dto.CreateExpenseRequest) (*dto.ExpenseRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	config, err := s.activeConfig(ctx, uow)
	if err != nil {
		return nil, err
	}

	region := req.Region
	if actor.Role == lifecycle.RoleRegionalAdmin {
		region = actor.Region
	}

	expense := &entity.ExpenseRequest{
		ID:            uuid.New(),
		EventConfigID: config.ID,
		UserID:        actor.UserID,
		Title:         req.Title,
		Purpose:       req.Purpose,
		Amount:        req.Amount,
		Status:        lifecycle.ExpenseSubmitted,
		Region:        region,
	}
	if err := uow.ExpenseRequestRepository().Create(ctx, expense); err != nil {
		return nil, err
	}

	return mapExpenseToResponse(expense, actor.Role), nil
}

func (s *financeService) ListExpenses(ctx context.Context, actor lifecycle.Actor) (*dto.ExpenseListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	specs := []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	}
	switch actor.Role {
	case lifecycle.RoleSuperAdmin, lifecycle.RoleCashier:
		// full ledger
	case lifecycle.RoleRegionalAdmin:
		specs = append(specs, specification.ByRegion{Region: actor.Region})
	default:
		specs = append(specs, specification.ByUserID{UserID: actor.UserID})
	}

	expenses, err := uow.ExpenseRequestRepository().FindAllWithUser(ctx, specs...)
	if err != nil {
		return nil, err
	}

	res := &dto.ExpenseListResponse{Items: []dto.ExpenseRequestResponse{}}
	stats := dto.FinanceStats{}
	for _, e := range expenses {
		res.Items = append(res.Items, *mapExpenseToResponse(e, actor.Role))
		stats.TotalCount++
		stats.TotalAmount += e.Amount
		switch e.Status {
		case lifecycle.ExpenseSubmitted, lifecycle.ExpenseApproved:
			stats.PendingCount++
			stats.PendingAmount += e.Amount
		case lifecycle.ExpenseTransferred, lifecycle.ExpenseClosed:
			stats.SettledCount++
			stats.SettledAmount += e.Amount
		}
	}
	if fullLedgerView(actor.Role) || actor.Role == lifecycle.RoleRegionalAdmin {
		res.Stats = &stats
	}
	return res, nil
}

func (s *financeService) UpdateExpenseStatus(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, req *dto.UpdateFinanceStatusRequest) (*dto.ExpenseRequestResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	expense, err := uow.ExpenseRequestRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if expense == nil {
		return nil, fmt.Errorf("%w: expense request", ErrNotFound)
	}
	if actor.Role == lifecycle.RoleRegionalAdmin && expense.Region != actor.Region {
		return nil, fmt.Errorf("%w: expense request", ErrNotFound)
	}

	if !lifecycle.ExpenseTransitions.Allowed(expense.Status, req.Status, actor.Role) {
		return nil, fmt.Errorf("%w: cannot move expense from %s to %s", ErrForbidden, expense.Status, req.Status)
	}

	now := time.Now()
	expense.Status = req.Status
	expense.AdminNotes = req.AdminNotes
	expense.ProcessedAt = &now
	if err := uow.ExpenseRequestRepository().Update(ctx, expense); err != nil {
		return nil, err
	}

	s.audit(ctx, uow, actor, "expense_request", expense.ID, req.Status)
	return mapExpenseToResponse(expense, actor.Role), nil
}

func (s *financeService) CreateDonation(ctx context.Context, actor lifecycle.Actor, req *dto.CreateDonationRequest) (*dto.DonationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	config, err := s.activeConfig(ctx, uow)
	if err != nil {
		return nil, err
	}

	donation := &entity.Donation{
		ID:            uuid.New(),
		EventConfigID: config.ID,
		UserID:        actor.UserID,
		DonorName:     req.DonorName,
		ContactInfo:   req.ContactInfo,
		Amount:        req.Amount,
		Status:        lifecycle.DonationPledged,
		Note:          req.Note,
	}
	if err := uow.DonationRepository().Create(ctx, donation); err != nil {
		return nil, err
	}

	return mapDonationToResponse(donation), nil
}

func (s *financeService) ListDonations(ctx context.Context, actor lifecycle.Actor) (*dto.DonationListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	donations, err := uow.DonationRepository().FindAll(ctx, ownerScoped(actor, []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	})...)
	if err != nil {
		return nil, err
	}

	res := &dto.DonationListResponse{Items: []dto.DonationResponse{}}
	stats := dto.FinanceStats{}
	for _, d := range donations {
		res.Items = append(res.Items, *mapDonationToResponse(d))
		stats.TotalCount++
		stats.TotalAmount += d.Amount
		if d.Status == lifecycle.DonationReceived {
			stats.SettledCount++
			stats.SettledAmount += d.Amount
		} else {
			stats.PendingCount++
			stats.PendingAmount += d.Amount
		}
	}
	if fullLedgerView(actor.Role) {
		res.Stats = &stats
	}
	return res, nil
}

func (s *financeService) UpdateDonationStatus(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, req *dto.UpdateFinanceStatusRequest) (*dto.DonationResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	donation, err := uow.DonationRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if donation == nil {
		return nil, fmt.Errorf("%w: donation", ErrNotFound)
	}

	if !lifecycle.DonationTransitions.Allowed(donation.Status, req.Status, actor.Role) {
		return nil, fmt.Errorf("%w: cannot move donation from %s to %s", ErrForbidden, donation.Status, req.Status)
	}

	donation.Status = req.Status
	if req.Status == lifecycle.DonationReceived {
		now := time.Now()
		donation.ReceivedAt = &now
	}
	if err := uow.DonationRepository().Update(ctx, donation); err != nil {
		return nil, err
	}

	s.audit(ctx, uow, actor, "donation", donation.ID, req.Status)
	return mapDonationToResponse(donation), nil
}

func (s *financeService) CreateIncomeSource(ctx context.Context, actor lifecycle.Actor, req *dto.CreateIncomeSourceRequest) (*dto.IncomeSourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	config, err := s.activeConfig(ctx, uow)
	if err != nil {
		return nil, err
	}

	source := &entity.IncomeSource{
		ID:             uuid.New(),
		EventConfigID:  config.ID,
		UserID:         actor.UserID,
		Name:           req.Name,
		ExpectedAmount: req.ExpectedAmount,
		Status:         lifecycle.IncomePending,
		DueDate:        req.DueDate,
	}
	if err := uow.IncomeSourceRepository().Create(ctx, source); err != nil {
		return nil, err
	}

	return mapIncomeSourceToResponse(source), nil
}

func (s *financeService) ListIncomeSources(ctx context.Context, actor lifecycle.Actor) (*dto.IncomeSourceListResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sources, err := uow.IncomeSourceRepository().FindAll(ctx, ownerScoped(actor, []specification.Specification{
		specification.OrderBy{Field: "created_at", Desc: true},
	})...)
	if err != nil {
		return nil, err
	}

	res := &dto.IncomeSourceListResponse{Items: []dto.IncomeSourceResponse{}}
	stats := dto.FinanceStats{}
	for _, src := range sources {
		res.Items = append(res.Items, *mapIncomeSourceToResponse(src))
		stats.TotalCount++
		stats.TotalAmount += src.ExpectedAmount
		if src.Status == lifecycle.IncomeReceived {
			stats.SettledCount++
			stats.SettledAmount += src.ActualAmount
		} else {
			stats.PendingCount++
			stats.PendingAmount += src.ExpectedAmount
		}
	}
	if fullLedgerView(actor.Role) {
		res.Stats = &stats
	}
	return res, nil
}

func (s *financeService) UpdateIncomeSourceStatus(ctx context.Context, actor lifecycle.Actor, id uuid.UUID, req *dto.UpdateFinanceStatusRequest) (*dto.IncomeSourceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	source, err := uow.IncomeSourceRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if source == nil {
		return nil, fmt.Errorf("%w: income source", ErrNotFound)
	}

	if !lifecycle.IncomeTransitions.Allowed(source.Status, req.Status, actor.Role) {
		return nil, fmt.Errorf("%w: cannot move income source from %s to %s", ErrForbidden, source.Status, req.Status)
	}

	source.Status = req.Status
	if req.Status == lifecycle.IncomeReceived {
		now := time.Now()
		source.ReceivedAt = &now
		if source.ActualAmount == 0 {
			source.ActualAmount = source.ExpectedAmount
		}
	}
	if err := uow.IncomeSourceRepository().Update(ctx, source); err != nil {
		return nil, err
	}

	s.audit(ctx, uow, actor, "income_source", source.ID, req.Status)
	return mapIncomeSourceToResponse(source), nil
}

func (s *financeService) audit(ctx context.Context, uow unitofwork.UnitOfWork, actor lifecycle.Actor, subjectType string, subjectId uuid.UUID, newStatus string) {
	err := uow.AuditLogRepository().Create(ctx, &entity.AuditLog{
		ID:          uuid.New(),
		ActorID:     &actor.UserID,
		Action:      subjectType + ".status",
		SubjectType: subjectType,
		SubjectID:   subjectId.String(),
		Details:     map[string]interface{}{"status": newStatus},
	})
	if err != nil {
		s.log.Warn("Finance", "Audit append failed", map[string]interface{}{"error": err.Error()})
	}
}

func mapExpenseToResponse(e *entity.ExpenseRequest, viewerRole lifecycle.Role) *dto.ExpenseRequestResponse {
	res := &dto.ExpenseRequestResponse{
		Id:          e.ID,
		Title:       e.Title,
		Purpose:     e.Purpose,
		Amount:      e.Amount,
		Status:      e.Status,
		Region:      e.Region,
		AdminNotes:  e.AdminNotes,
		NextActions: lifecycle.ExpenseTransitions.NextStatuses(e.Status, viewerRole),
		CreatedAt:   e.CreatedAt,
		ProcessedAt: e.ProcessedAt,
	}
	if e.User.Id != uuid.Nil {
		res.Requester = &dto.AdminUserInfo{
			Id:       e.User.Id,
			Email:    e.User.Email,
			FullName: e.User.FullName,
		}
	}
	return res
}

func mapDonationToResponse(d *entity.Donation) *dto.DonationResponse {
	return &dto.DonationResponse{
		Id:         d.ID,
		DonorName:  d.DonorName,
		Amount:     d.Amount,
		Status:     d.Status,
		Note:       d.Note,
		ReceivedAt: d.ReceivedAt,
		CreatedAt:  d.CreatedAt,
	}
}

func mapIncomeSourceToResponse(s *entity.IncomeSource) *dto.IncomeSourceResponse {
	return &dto.IncomeSourceResponse{
		Id:             s.ID,
		Name:           s.Name,
		ExpectedAmount: s.ExpectedAmount,
		ActualAmount:   s.ActualAmount,
		Status:         s.Status,
		DueDate:        s.DueDate,
		ReceivedAt:     s.ReceivedAt,
		CreatedAt:      s.CreatedAt,
	}
}
