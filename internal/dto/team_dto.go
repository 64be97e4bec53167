package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateTeamRequest struct {
	Name     string `json:"name" validate:"required,min=2"`
	Capacity int    `json:"capacity" validate:"required,gt=0"`
	Region   string `json:"region"`
}

type TeamResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Capacity    int       `json:"capacity"`
	Region      string    `json:"region,omitempty"`
	MemberCount int64     `json:"member_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateEventRoleRequest struct {
	Name        string `json:"name" validate:"required,min=2"`
	Description string `json:"description"`
}

type EventRoleResponse struct {
	Id          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
}

type BulkAssignRequest struct {
	RegistrantIds []uuid.UUID `json:"registrant_ids" validate:"required,min=1"`
}

// BulkAssignItem reports the outcome for one registrant. The batch only
// runs after the completeness and capacity gates pass; per-item failures
// (raced assignment, regional scope) are accumulated, not fatal.
type BulkAssignItem struct {
	RegistrantId uuid.UUID `json:"registrant_id"`
	FullName     string    `json:"full_name"`
	Assigned     bool      `json:"assigned"`
	Reason       string    `json:"reason,omitempty"`
}

type BulkAssignResponse struct {
	TeamId   uuid.UUID        `json:"team_id"`
	Assigned int              `json:"assigned"`
	Failed   int              `json:"failed"`
	Items    []BulkAssignItem `json:"items"`
}
