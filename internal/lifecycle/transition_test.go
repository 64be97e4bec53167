package lifecycle

import (
	"testing"
)

func TestExpenseTransitions(t *testing.T) {
	tests := []struct {
		name  string
		from  string
		to    string
		actor Role
		want  bool
	}{
		{"super admin approves", ExpenseSubmitted, ExpenseApproved, RoleSuperAdmin, true},
		{"regional admin approves", ExpenseSubmitted, ExpenseApproved, RoleRegionalAdmin, true},
		{"regional admin rejects", ExpenseSubmitted, ExpenseRejected, RoleRegionalAdmin, true},
		{"cashier cannot approve", ExpenseSubmitted, ExpenseApproved, RoleCashier, false},
		{"user cannot approve", ExpenseSubmitted, ExpenseApproved, RoleUser, false},
		{"cashier transfers approved", ExpenseApproved, ExpenseTransferred, RoleCashier, true},
		{"super admin transfers approved", ExpenseApproved, ExpenseTransferred, RoleSuperAdmin, true},
		{"regional admin cannot transfer", ExpenseApproved, ExpenseTransferred, RoleRegionalAdmin, false},
		{"transfer only from approved", ExpenseSubmitted, ExpenseTransferred, RoleCashier, false},
		{"close transferred", ExpenseTransferred, ExpenseClosed, RoleSuperAdmin, true},
		{"no reopening", ExpenseClosed, ExpenseSubmitted, RoleSuperAdmin, false},
		{"unknown status denied", "drafted", ExpenseApproved, RoleSuperAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExpenseTransitions.Allowed(tt.from, tt.to, tt.actor); got != tt.want {
				t.Errorf("Allowed(%s, %s, %s) = %v, want %v", tt.from, tt.to, tt.actor, got, tt.want)
			}
		})
	}
}

func TestDonationAndIncomeTransitions(t *testing.T) {
	if !DonationTransitions.Allowed(DonationPledged, DonationReceived, RoleCashier) {
		t.Error("cashier should receive pledged donations")
	}
	if DonationTransitions.Allowed(DonationPledged, DonationReceived, RoleRegionalAdmin) {
		t.Error("regional admin must not mark donations received")
	}
	if !IncomeTransitions.Allowed(IncomePending, IncomeOverdue, RoleRegionalAdmin) {
		t.Error("regional admin should flag overdue income")
	}
	if IncomeTransitions.Allowed(IncomeReceived, IncomePending, RoleSuperAdmin) {
		t.Error("received income must not move back to pending")
	}
}

func TestNextStatuses(t *testing.T) {
	next := ExpenseTransitions.NextStatuses(ExpenseSubmitted, RoleRegionalAdmin)
	if len(next) != 2 {
		t.Fatalf("NextStatuses(submitted, regional_admin) = %v, want 2 entries", next)
	}
	if next[0] != ExpenseApproved || next[1] != ExpenseRejected {
		t.Errorf("NextStatuses order = %v", next)
	}
	if got := ExpenseTransitions.NextStatuses(ExpenseSubmitted, RoleUser); got != nil {
		t.Errorf("NextStatuses for plain user = %v, want nil", got)
	}
}
