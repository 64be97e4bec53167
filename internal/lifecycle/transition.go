package lifecycle

import "github.com/google/uuid"

// Role is an actor role carried in the auth token.
type Role string

const (
	RoleUser           Role = "user"
	RoleEventOrganizer Role = "event_organizer"
	RoleRegionalAdmin  Role = "regional_admin"
	RoleCashier        Role = "cashier_role"
	RoleSuperAdmin     Role = "super_admin"
)

// IsAdmin reports whether the role may act on other users' data.
func (r Role) IsAdmin() bool {
	return r == RoleSuperAdmin || r == RoleRegionalAdmin || r == RoleEventOrganizer
}

// Actor is the acting identity extracted from the auth token.
type Actor struct {
	UserID uuid.UUID
	Role   Role
	Region string
}

// Rule allows moving an entity from one status to another when the actor
// holds one of the listed roles.
type Rule struct {
	From  string
	To    string
	Roles []Role
}

// Table is the full transition graph of one status-bearing entity.
// The expense/donation/income-source ledgers all share this shape: a
// closed status enum plus role-gated moves between them.
type Table []Rule

// Allowed reports whether actor may move an entity from one status to
// another according to the table. Unknown pairs are denied.
func (t Table) Allowed(from, to string, actor Role) bool {
	for _, rule := range t {
		if rule.From != from || rule.To != to {
			continue
		}
		for _, r := range rule.Roles {
			if r == actor {
				return true
			}
		}
	}
	return false
}

// NextStatuses lists the statuses actor may move the entity to from the
// given status. Used by the admin UI to render action buttons.
func (t Table) NextStatuses(from string, actor Role) []string {
	var next []string
	for _, rule := range t {
		if rule.From != from {
			continue
		}
		for _, r := range rule.Roles {
			if r == actor {
				next = append(next, rule.To)
				break
			}
		}
	}
	return next
}

// Expense request statuses.
const (
	ExpenseSubmitted   = "submitted"
	ExpenseApproved    = "approved"
	ExpenseRejected    = "rejected"
	ExpenseTransferred = "transferred"
	ExpenseClosed      = "closed"
)

// Donation pledge statuses.
const (
	DonationPledged  = "pledged"
	DonationReceived = "received"
)

// Income source statuses.
const (
	IncomePending  = "pending"
	IncomeReceived = "received"
	IncomeOverdue  = "overdue"
)

// ExpenseTransitions gates the expense-request ledger: admins decide,
// the cashier moves money, admins close the paper trail.
var ExpenseTransitions = Table{
	{From: ExpenseSubmitted, To: ExpenseApproved, Roles: []Role{RoleSuperAdmin, RoleRegionalAdmin}},
	{From: ExpenseSubmitted, To: ExpenseRejected, Roles: []Role{RoleSuperAdmin, RoleRegionalAdmin}},
	{From: ExpenseApproved, To: ExpenseTransferred, Roles: []Role{RoleCashier, RoleSuperAdmin}},
	{From: ExpenseTransferred, To: ExpenseClosed, Roles: []Role{RoleSuperAdmin, RoleRegionalAdmin}},
}

// DonationTransitions gates pledged donations.
var DonationTransitions = Table{
	{From: DonationPledged, To: DonationReceived, Roles: []Role{RoleCashier, RoleSuperAdmin}},
}

// IncomeTransitions gates expected income sources.
var IncomeTransitions = Table{
	{From: IncomePending, To: IncomeReceived, Roles: []Role{RoleCashier, RoleSuperAdmin}},
	{From: IncomePending, To: IncomeOverdue, Roles: []Role{RoleSuperAdmin, RoleRegionalAdmin}},
}
