package dto

import (
	"time"

	"github.com/google/uuid"
)

type CheckInRequest struct {
	RegistrantId uuid.UUID `json:"registrant_id" validate:"required"`
}

// CheckInResult is returned with HTTP 200 for both hard successes and
// soft failures; Success tells the kiosk UI which message to render.
type CheckInResult struct {
	Success    bool                `json:"success"`
	Message    string              `json:"message,omitempty"`
	Registrant *RegistrantResponse `json:"registrant,omitempty"`
}

type CheckInStatsResponse struct {
	TotalRegistrants int64     `json:"total_registrants"`
	CheckedIn        int64     `json:"checked_in"`
	Remaining        int64     `json:"remaining"`
	AsOf             time.Time `json:"as_of"`
}
