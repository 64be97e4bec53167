package lifecycle

// CheckInDecision is the outcome of evaluating a check-in attempt before
// any write is issued.
type CheckInDecision int

const (
	// CheckInOK means the registrant may be checked in now.
	CheckInOK CheckInDecision = iota
	// CheckInAlreadyDone means the registrant was checked in earlier.
	// This is a soft outcome, not an error: duplicate badge scans are
	// routine at the gates.
	CheckInAlreadyDone
	// CheckInNotEligible means the registration status does not permit
	// entry (unpaid, rejected, cancelled...).
	CheckInNotEligible
)

// EvalCheckIn applies the status gate for a check-in attempt.
// Eligibility is decided solely by the registration status plus the
// registrant's own checked-in flag; the caller must still perform the
// conditional update to win the concurrent-scan race.
func EvalCheckIn(s Status, alreadyCheckedIn bool) CheckInDecision {
	if alreadyCheckedIn {
		return CheckInAlreadyDone
	}
	if !CanAccessTickets(s) {
		return CheckInNotEligible
	}
	return CheckInOK
}
