package service

import (
	"context"
	"time"

	"event-reg-be/internal/dto"
	"event-reg-be/internal/entity"
	"event-reg-be/internal/lifecycle"
	"event-reg-be/internal/repository/contract"
	"event-reg-be/internal/repository/specification"
	"event-reg-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// In-memory repository fakes. Specifications are evaluated by
// type-switching on the concrete spec types the services actually use.

type fakeFactory struct {
	uow *fakeUow
}

func (f *fakeFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return f.uow
}

type fakeUow struct {
	users         *fakeUserRepo
	registrations *fakeRegistrationRepo
	registrants   *fakeRegistrantRepo
	tickets       *fakeTicketRepo
	cancels       *fakeCancelRepo
	expenses      *fakeExpenseRepo
	donations     *fakeDonationRepo
	incomes       *fakeIncomeRepo
	events        *fakeEventRepo
	audits        *fakeAuditRepo

	begun      int
	committed  int
	rolledBack int
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		users:         &fakeUserRepo{},
		registrations: &fakeRegistrationRepo{},
		registrants:   &fakeRegistrantRepo{},
		tickets:       &fakeTicketRepo{},
		cancels:       &fakeCancelRepo{},
		expenses:      &fakeExpenseRepo{},
		donations:     &fakeDonationRepo{},
		incomes:       &fakeIncomeRepo{},
		events:        &fakeEventRepo{},
		audits:        &fakeAuditRepo{},
	}
}

func (u *fakeUow) Begin(ctx context.Context) error { u.begun++; return nil }
func (u *fakeUow) Commit() error                   { u.committed++; return nil }
func (u *fakeUow) Rollback() error                 { u.rolledBack++; return nil }

func (u *fakeUow) UserRepository() contract.UserRepository                     { return u.users }
func (u *fakeUow) RegistrationRepository() contract.RegistrationRepository     { return u.registrations }
func (u *fakeUow) RegistrantRepository() contract.RegistrantRepository         { return u.registrants }
func (u *fakeUow) TicketRepository() contract.TicketRepository                 { return u.tickets }
func (u *fakeUow) CancelRequestRepository() contract.CancelRequestRepository   { return u.cancels }
func (u *fakeUow) ExpenseRequestRepository() contract.ExpenseRequestRepository { return u.expenses }
func (u *fakeUow) DonationRepository() contract.DonationRepository             { return u.donations }
func (u *fakeUow) IncomeSourceRepository() contract.IncomeSourceRepository     { return u.incomes }
func (u *fakeUow) EventRepository() contract.EventRepository                   { return u.events }
func (u *fakeUow) AuditLogRepository() contract.AuditLogRepository             { return u.audits }

// --- users ---

type fakeUserRepo struct {
	items []*entity.User
}

func (r *fakeUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.items = append(r.items, user)
	return nil
}

func (r *fakeUserRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.User, error) {
	for _, u := range r.items {
		if matchUser(u, specs) {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.User, error) {
	var out []*entity.User
	for _, u := range r.items {
		if matchUser(u, specs) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *entity.User) error { return nil }

func (r *fakeUserRepo) CreateProvider(ctx context.Context, provider *entity.UserProvider) error {
	return nil
}

func (r *fakeUserRepo) FindProvider(ctx context.Context, providerName, providerUserId string) (*entity.UserProvider, error) {
	return nil, nil
}

func matchUser(u *entity.User, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if u.Id != sp.ID {
				return false
			}
		case specification.ByEmail:
			if u.Email != sp.Email {
				return false
			}
		}
	}
	return true
}

// --- registrations ---

type fakeRegistrationRepo struct {
	items []*entity.Registration

	// invoiceCollisions makes the next N invoice-code lookups report a
	// taken code, regardless of the code drawn.
	invoiceCollisions int
}

func (r *fakeRegistrationRepo) Create(ctx context.Context, registration *entity.Registration) error {
	registration.CreatedAt = time.Now()
	r.items = append(r.items, registration)
	return nil
}

func matchRegistration(reg *entity.Registration, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if reg.ID != sp.ID {
				return false
			}
		case specification.ByUserID:
			if reg.UserID != sp.UserID {
				return false
			}
		case specification.ByInvoiceCode:
			if reg.InvoiceCode != sp.Code {
				return false
			}
		case specification.ByRegistrationStatus:
			if reg.Status != sp.Status {
				return false
			}
		}
	}
	return true
}

func (r *fakeRegistrationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Registration, error) {
	if r.invoiceCollisions > 0 {
		for _, s := range specs {
			if sp, ok := s.(specification.ByInvoiceCode); ok {
				r.invoiceCollisions--
				return &entity.Registration{ID: uuid.New(), InvoiceCode: sp.Code}, nil
			}
		}
	}
	for _, reg := range r.items {
		if matchRegistration(reg, specs) {
			return reg, nil
		}
	}
	return nil, nil
}

func (r *fakeRegistrationRepo) FindOneWithRegistrants(ctx context.Context, specs ...specification.Specification) (*entity.Registration, error) {
	return r.FindOne(ctx, specs...)
}

func (r *fakeRegistrationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Registration, error) {
	var out []*entity.Registration
	for _, reg := range r.items {
		if matchRegistration(reg, specs) {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (r *fakeRegistrationRepo) Update(ctx context.Context, registration *entity.Registration) error {
	return nil
}

func (r *fakeRegistrationRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status lifecycle.Status) error {
	for _, reg := range r.items {
		if reg.ID == id {
			reg.Status = status
			return nil
		}
	}
	return nil
}

func (r *fakeRegistrationRepo) UpdateReceipt(ctx context.Context, id uuid.UUID, receiptURL string, status lifecycle.Status) error {
	for _, reg := range r.items {
		if reg.ID == id {
			reg.ReceiptURL = &receiptURL
			reg.Status = status
			return nil
		}
	}
	return nil
}

func (r *fakeRegistrationRepo) CountByStatus(ctx context.Context) (map[lifecycle.Status]int64, error) {
	out := make(map[lifecycle.Status]int64)
	for _, reg := range r.items {
		out[reg.Status]++
	}
	return out, nil
}

// --- registrants ---

type fakeRegistrantRepo struct {
	items []*entity.Registrant

	// staleFirstRead, when set, is served by the next FindOne and then
	// cleared. Used to simulate a read racing a conditional update.
	staleFirstRead *entity.Registrant
}

func matchRegistrant(r *entity.Registrant, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if r.ID != sp.ID {
				return false
			}
		case specification.ByRegistrationID:
			if r.RegistrationID != sp.RegistrationID {
				return false
			}
		case specification.Unassigned:
			if r.EventTeamID != nil {
				return false
			}
		case specification.ByTeamID:
			if r.EventTeamID == nil || *r.EventTeamID != sp.TeamID {
				return false
			}
		}
	}
	return true
}

func (r *fakeRegistrantRepo) Create(ctx context.Context, registrant *entity.Registrant) error {
	registrant.CreatedAt = time.Now()
	r.items = append(r.items, registrant)
	return nil
}

func (r *fakeRegistrantRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Registrant, error) {
	if r.staleFirstRead != nil {
		stale := r.staleFirstRead
		r.staleFirstRead = nil
		return stale, nil
	}
	for _, reg := range r.items {
		if matchRegistrant(reg, specs) {
			return reg, nil
		}
	}
	return nil, nil
}

func (r *fakeRegistrantRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Registrant, error) {
	var out []*entity.Registrant
	for _, reg := range r.items {
		if matchRegistrant(reg, specs) {
			out = append(out, reg)
		}
	}
	return out, nil
}

func (r *fakeRegistrantRepo) Update(ctx context.Context, registrant *entity.Registrant) error {
	return nil
}

func (r *fakeRegistrantRepo) MarkCheckedIn(ctx context.Context, id uuid.UUID, at time.Time) (int64, error) {
	for _, reg := range r.items {
		if reg.ID == id && !reg.IsCheckedIn {
			reg.IsCheckedIn = true
			t := at
			reg.CheckedInAt = &t
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeRegistrantRepo) AssignTeam(ctx context.Context, id uuid.UUID, teamID uuid.UUID) (int64, error) {
	for _, reg := range r.items {
		if reg.ID == id && reg.EventTeamID == nil {
			t := teamID
			reg.EventTeamID = &t
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeRegistrantRepo) CountByTeam(ctx context.Context, teamID uuid.UUID) (int64, error) {
	var n int64
	for _, reg := range r.items {
		if reg.EventTeamID != nil && *reg.EventTeamID == teamID {
			n++
		}
	}
	return n, nil
}

func (r *fakeRegistrantRepo) CountCheckedIn(ctx context.Context) (int64, int64, error) {
	var total, checkedIn int64
	for _, reg := range r.items {
		total++
		if reg.IsCheckedIn {
			checkedIn++
		}
	}
	return total, checkedIn, nil
}

// --- tickets ---

type fakeTicketRepo struct {
	items []*entity.Ticket
}

func (r *fakeTicketRepo) CreateBatch(ctx context.Context, tickets []*entity.Ticket) error {
	r.items = append(r.items, tickets...)
	return nil
}

func (r *fakeTicketRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Ticket, error) {
	var out []*entity.Ticket
	for _, t := range r.items {
		keep := true
		for _, s := range specs {
			if sp, ok := s.(specification.ByRegistrationID); ok && t.RegistrationID != sp.RegistrationID {
				keep = false
			}
		}
		if keep {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTicketRepo) CountByRegistration(ctx context.Context, registrationID uuid.UUID) (int64, error) {
	var n int64
	for _, t := range r.items {
		if t.RegistrationID == registrationID {
			n++
		}
	}
	return n, nil
}

// --- cancel requests ---

type fakeCancelRepo struct {
	items []*entity.CancelRequest
}

func matchCancel(c *entity.CancelRequest, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if c.ID != sp.ID {
				return false
			}
		case specification.ByRegistrationID:
			if c.RegistrationID != sp.RegistrationID {
				return false
			}
		case specification.FilterBy:
			if sp.Field == "status" && string(c.Status) != sp.Value.(string) {
				return false
			}
		}
	}
	return true
}

func (r *fakeCancelRepo) Create(ctx context.Context, request *entity.CancelRequest) error {
	request.CreatedAt = time.Now()
	r.items = append(r.items, request)
	return nil
}

func (r *fakeCancelRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.CancelRequest, error) {
	for _, c := range r.items {
		if matchCancel(c, specs) {
			return c, nil
		}
	}
	return nil, nil
}

func (r *fakeCancelRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.CancelRequest, error) {
	var out []*entity.CancelRequest
	for _, c := range r.items {
		if matchCancel(c, specs) {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeCancelRepo) FindAllWithDetails(ctx context.Context, specs ...specification.Specification) ([]*entity.CancelRequest, error) {
	return r.FindAll(ctx, specs...)
}

func (r *fakeCancelRepo) Update(ctx context.Context, request *entity.CancelRequest) error {
	return nil
}

// --- expense requests ---

type fakeExpenseRepo struct {
	items []*entity.ExpenseRequest
}

func matchExpense(e *entity.ExpenseRequest, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if e.ID != sp.ID {
				return false
			}
		case specification.ByUserID:
			if e.UserID != sp.UserID {
				return false
			}
		case specification.ByRegion:
			if e.Region != sp.Region {
				return false
			}
		}
	}
	return true
}

func (r *fakeExpenseRepo) Create(ctx context.Context, request *entity.ExpenseRequest) error {
	request.CreatedAt = time.Now()
	r.items = append(r.items, request)
	return nil
}

func (r *fakeExpenseRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ExpenseRequest, error) {
	for _, e := range r.items {
		if matchExpense(e, specs) {
			return e, nil
		}
	}
	return nil, nil
}

func (r *fakeExpenseRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ExpenseRequest, error) {
	var out []*entity.ExpenseRequest
	for _, e := range r.items {
		if matchExpense(e, specs) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeExpenseRepo) FindAllWithUser(ctx context.Context, specs ...specification.Specification) ([]*entity.ExpenseRequest, error) {
	return r.FindAll(ctx, specs...)
}

func (r *fakeExpenseRepo) Update(ctx context.Context, request *entity.ExpenseRequest) error {
	return nil
}

// --- donations ---

type fakeDonationRepo struct {
	items []*entity.Donation
}

func matchDonation(d *entity.Donation, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if d.ID != sp.ID {
				return false
			}
		case specification.ByUserID:
			if d.UserID != sp.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeDonationRepo) Create(ctx context.Context, donation *entity.Donation) error {
	donation.CreatedAt = time.Now()
	r.items = append(r.items, donation)
	return nil
}

func (r *fakeDonationRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Donation, error) {
	for _, d := range r.items {
		if matchDonation(d, specs) {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeDonationRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Donation, error) {
	var out []*entity.Donation
	for _, d := range r.items {
		if matchDonation(d, specs) {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDonationRepo) Update(ctx context.Context, donation *entity.Donation) error {
	return nil
}

// --- income sources ---

type fakeIncomeRepo struct {
	items []*entity.IncomeSource
}

func matchIncome(src *entity.IncomeSource, specs []specification.Specification) bool {
	for _, s := range specs {
		switch sp := s.(type) {
		case specification.ByID:
			if src.ID != sp.ID {
				return false
			}
		case specification.ByUserID:
			if src.UserID != sp.UserID {
				return false
			}
		}
	}
	return true
}

func (r *fakeIncomeRepo) Create(ctx context.Context, source *entity.IncomeSource) error {
	source.CreatedAt = time.Now()
	r.items = append(r.items, source)
	return nil
}

func (r *fakeIncomeRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.IncomeSource, error) {
	for _, src := range r.items {
		if matchIncome(src, specs) {
			return src, nil
		}
	}
	return nil, nil
}

func (r *fakeIncomeRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.IncomeSource, error) {
	var out []*entity.IncomeSource
	for _, src := range r.items {
		if matchIncome(src, specs) {
			out = append(out, src)
		}
	}
	return out, nil
}

func (r *fakeIncomeRepo) Update(ctx context.Context, source *entity.IncomeSource) error {
	return nil
}

// --- event config / teams / roles ---

type fakeEventRepo struct {
	config *entity.EventConfig
	teams  []*entity.EventTeam
	roles  []*entity.EventRole
}

func (r *fakeEventRepo) FindActiveConfig(ctx context.Context) (*entity.EventConfig, error) {
	return r.config, nil
}

func (r *fakeEventRepo) FindConfig(ctx context.Context, id uuid.UUID) (*entity.EventConfig, error) {
	return r.config, nil
}

func (r *fakeEventRepo) CreateConfig(ctx context.Context, config *entity.EventConfig) error {
	r.config = config
	return nil
}

func (r *fakeEventRepo) UpdateConfig(ctx context.Context, config *entity.EventConfig) error {
	return nil
}

func (r *fakeEventRepo) CreateTeam(ctx context.Context, team *entity.EventTeam) error {
	r.teams = append(r.teams, team)
	return nil
}

func (r *fakeEventRepo) FindOneTeam(ctx context.Context, specs ...specification.Specification) (*entity.EventTeam, error) {
	for _, t := range r.teams {
		keep := true
		for _, s := range specs {
			if sp, ok := s.(specification.ByID); ok && t.ID != sp.ID {
				keep = false
			}
		}
		if keep {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeEventRepo) FindTeams(ctx context.Context, specs ...specification.Specification) ([]*entity.EventTeam, error) {
	return r.teams, nil
}

func (r *fakeEventRepo) UpdateTeam(ctx context.Context, team *entity.EventTeam) error { return nil }

func (r *fakeEventRepo) CreateRole(ctx context.Context, role *entity.EventRole) error {
	r.roles = append(r.roles, role)
	return nil
}

func (r *fakeEventRepo) FindRoles(ctx context.Context, specs ...specification.Specification) ([]*entity.EventRole, error) {
	return r.roles, nil
}

// --- audit log ---

type fakeAuditRepo struct {
	items []*entity.AuditLog
}

func (r *fakeAuditRepo) Create(ctx context.Context, log *entity.AuditLog) error {
	r.items = append(r.items, log)
	return nil
}

func (r *fakeAuditRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.AuditLog, error) {
	return r.items, nil
}

// --- collaborators ---

type nopLogger struct{}

func (nopLogger) Debug(module string, message string, details map[string]interface{}) {}
func (nopLogger) Info(module string, message string, details map[string]interface{})  {}
func (nopLogger) Warn(module string, message string, details map[string]interface{})  {}
func (nopLogger) Error(module string, message string, details map[string]interface{}) {}
func (nopLogger) Sync() error                                                         { return nil }

type captureMailPublisher struct {
	jobs []MailJob
}

func (p *captureMailPublisher) PublishMail(job MailJob) {
	p.jobs = append(p.jobs, job)
}

type captureBroadcaster struct {
	broadcasts int
}

func (b *captureBroadcaster) BroadcastCheckIn(registrant *dto.RegistrantResponse) {
	b.broadcasts++
}
