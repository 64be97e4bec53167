package lifecycle

// Status represents the payment/attendance state of a registration.
type Status string

const (
	StatusPending         Status = "pending"
	StatusReportPaid      Status = "report_paid"
	StatusConfirmPaid     Status = "confirm_paid"
	StatusPaymentRejected Status = "payment_rejected"
	StatusConfirmed       Status = "confirmed"
	StatusTempConfirmed   Status = "temp_confirmed"
	StatusCheckedIn       Status = "checked_in"
	StatusDonation        Status = "donation"
	StatusCancelPending   Status = "cancel_pending"
	StatusCancelled       Status = "cancelled"
	StatusCancelAccepted  Status = "cancel_accepted"
	StatusBeCancelled     Status = "be_cancelled"
)

var allStatuses = map[Status]struct{}{
	StatusPending:         {},
	StatusReportPaid:      {},
	StatusConfirmPaid:     {},
	StatusPaymentRejected: {},
	StatusConfirmed:       {},
	StatusTempConfirmed:   {},
	StatusCheckedIn:       {},
	StatusDonation:        {},
	StatusCancelPending:   {},
	StatusCancelled:       {},
	StatusCancelAccepted:  {},
	StatusBeCancelled:     {},
}

// IsValid reports whether s belongs to the closed status set.
func (s Status) IsValid() bool {
	_, ok := allStatuses[s]
	return ok
}

var cancellableStatuses = map[Status]struct{}{
	StatusPending:     {},
	StatusConfirmed:   {},
	StatusReportPaid:  {},
	StatusConfirmPaid: {},
}

// CanRequestCancellation reports whether a registration in status s may
// open a refund or donation request.
func CanRequestCancellation(s Status) bool {
	_, ok := cancellableStatuses[s]
	return ok
}

// CanEdit reports whether a registration may still be modified by its
// owner. Confirmed registrations and registrations with issued tickets
// are locked.
func CanEdit(s Status, hasIssuedTickets bool) bool {
	return s != StatusConfirmed && !hasIssuedTickets
}

var ticketAccessStatuses = map[Status]struct{}{
	StatusConfirmed:     {},
	StatusTempConfirmed: {},
	StatusCheckedIn:     {},
}

// CanAccessTickets reports whether tickets are visible for status s.
func CanAccessTickets(s Status) bool {
	_, ok := ticketAccessStatuses[s]
	return ok
}

// CanReportPayment reports whether the owner may (re-)submit a payment
// receipt. Rejected reports may be corrected and resubmitted.
func CanReportPayment(s Status) bool {
	return s == StatusPending || s == StatusPaymentRejected
}
