package dto

import "github.com/google/uuid"

type AdminRejectPaymentRequest struct {
	Reason string `json:"reason" validate:"required,min=5"`
}

type AdminDashboardResponse struct {
	RegistrationsByStatus map[string]int64 `json:"registrations_by_status"`
	TotalRegistrants      int64            `json:"total_registrants"`
	CheckedIn             int64            `json:"checked_in"`
}

// FixPrimaryReport summarizes a run of the primary-registrant backfill.
type FixPrimaryReport struct {
	Scanned  int         `json:"scanned"`
	Repaired []uuid.UUID `json:"repaired"`
	Orphaned []uuid.UUID `json:"orphaned"`
}
