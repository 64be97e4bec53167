package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateExpenseRequest struct {
	Title   string `json:"title" validate:"required,min=3"`
	Purpose string `json:"purpose" validate:"required,min=10"`
	Amount  int64  `json:"amount" validate:"required,gt=0"`
	Region  string `json:"region"`
}

type UpdateFinanceStatusRequest struct {
	Status     string `json:"status" validate:"required"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

type ExpenseRequestResponse struct {
	Id          uuid.UUID      `json:"id"`
	Title       string         `json:"title"`
	Purpose     string         `json:"purpose"`
	Amount      int64          `json:"amount"`
	Status      string         `json:"status"`
	Region      string         `json:"region,omitempty"`
	Requester   *AdminUserInfo `json:"requester,omitempty"`
	AdminNotes  string         `json:"admin_notes,omitempty"`
	NextActions []string       `json:"next_actions,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	ProcessedAt *time.Time     `json:"processed_at,omitempty"`
}

type CreateDonationRequest struct {
	DonorName   string `json:"donor_name" validate:"required,min=2"`
	ContactInfo string `json:"contact_info"`
	Amount      int64  `json:"amount" validate:"required,gt=0"`
	Note        string `json:"note"`
}

type DonationResponse struct {
	Id         uuid.UUID  `json:"id"`
	DonorName  string     `json:"donor_name"`
	Amount     int64      `json:"amount"`
	Status     string     `json:"status"`
	Note       string     `json:"note,omitempty"`
	ReceivedAt *time.Time `json:"received_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type CreateIncomeSourceRequest struct {
	Name           string     `json:"name" validate:"required,min=2"`
	ExpectedAmount int64      `json:"expected_amount" validate:"required,gt=0"`
	DueDate        *time.Time `json:"due_date"`
}

type IncomeSourceResponse struct {
	Id             uuid.UUID  `json:"id"`
	Name           string     `json:"name"`
	ExpectedAmount int64      `json:"expected_amount"`
	ActualAmount   int64      `json:"actual_amount"`
	Status         string     `json:"status"`
	DueDate        *time.Time `json:"due_date,omitempty"`
	ReceivedAt     *time.Time `json:"received_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// FinanceStats is computed in memory over the fetched rows for
// privileged listings.
type FinanceStats struct {
	TotalCount    int   `json:"total_count"`
	TotalAmount   int64 `json:"total_amount"`
	PendingCount  int   `json:"pending_count"`
	PendingAmount int64 `json:"pending_amount"`
	SettledCount  int   `json:"settled_count"`
	SettledAmount int64 `json:"settled_amount"`
}

type ExpenseListResponse struct {
	Items []ExpenseRequestResponse `json:"items"`
	Stats *FinanceStats            `json:"stats,omitempty"`
}

type DonationListResponse struct {
	Items []DonationResponse `json:"items"`
	Stats *FinanceStats      `json:"stats,omitempty"`
}

type IncomeSourceListResponse struct {
	Items []IncomeSourceResponse `json:"items"`
	Stats *FinanceStats          `json:"stats,omitempty"`
}
