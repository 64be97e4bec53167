package lifecycle

import (
	"testing"
)

func TestCanRequestCancellation(t *testing.T) {
	tests := []struct {
		status Status
		want   bool
	}{
		{StatusPending, true},
		{StatusConfirmed, true},
		{StatusReportPaid, true},
		{StatusConfirmPaid, true},
		{StatusPaymentRejected, false},
		{StatusTempConfirmed, false},
		{StatusCheckedIn, false},
		{StatusDonation, false},
		{StatusCancelPending, false},
		{StatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			if got := CanRequestCancellation(tt.status); got != tt.want {
				t.Errorf("CanRequestCancellation(%s) = %v, want %v", tt.status, got, tt.want)
			}
		})
	}
}

func TestCanEdit(t *testing.T) {
	tests := []struct {
		name       string
		status     Status
		hasTickets bool
		want       bool
	}{
		{"pending without tickets", StatusPending, false, true},
		{"report_paid without tickets", StatusReportPaid, false, true},
		{"confirmed is locked", StatusConfirmed, false, false},
		{"tickets lock any status", StatusPending, true, false},
		{"confirmed with tickets", StatusConfirmed, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanEdit(tt.status, tt.hasTickets); got != tt.want {
				t.Errorf("CanEdit(%s, %v) = %v, want %v", tt.status, tt.hasTickets, got, tt.want)
			}
		})
	}
}

func TestCanAccessTickets(t *testing.T) {
	allowed := []Status{StatusConfirmed, StatusTempConfirmed, StatusCheckedIn}
	for _, s := range allowed {
		if !CanAccessTickets(s) {
			t.Errorf("CanAccessTickets(%s) = false, want true", s)
		}
	}
	denied := []Status{StatusPending, StatusReportPaid, StatusConfirmPaid, StatusPaymentRejected, StatusCancelled, StatusDonation}
	for _, s := range denied {
		if CanAccessTickets(s) {
			t.Errorf("CanAccessTickets(%s) = true, want false", s)
		}
	}
}

func TestStatusIsValid(t *testing.T) {
	for s := range allStatuses {
		if !s.IsValid() {
			t.Errorf("IsValid(%s) = false", s)
		}
	}
	if Status("shipped").IsValid() {
		t.Error("IsValid(shipped) = true, want false")
	}
}

func TestEvalCheckIn(t *testing.T) {
	tests := []struct {
		name      string
		status    Status
		alreadyIn bool
		want      CheckInDecision
	}{
		{"confirmed fresh", StatusConfirmed, false, CheckInOK},
		{"temp_confirmed fresh", StatusTempConfirmed, false, CheckInOK},
		{"checked_in registration, new registrant", StatusCheckedIn, false, CheckInOK},
		{"already checked in wins over status", StatusPending, true, CheckInAlreadyDone},
		{"already checked in", StatusConfirmed, true, CheckInAlreadyDone},
		{"pending", StatusPending, false, CheckInNotEligible},
		{"payment_rejected", StatusPaymentRejected, false, CheckInNotEligible},
		{"cancelled", StatusCancelled, false, CheckInNotEligible},
		{"report_paid", StatusReportPaid, false, CheckInNotEligible},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := EvalCheckIn(tt.status, tt.alreadyIn); got != tt.want {
				t.Errorf("EvalCheckIn(%s, %v) = %v, want %v", tt.status, tt.alreadyIn, got, tt.want)
			}
		})
	}
}
