package models

import "time"

type Status string

const (
	StatusNotStarted Status = "Not Started"
	StatusInProgress Status = "In Progress"
	StatusDone       Status = "Done"
)

// Statuses lists the valid values in display order.
var Statuses = []Status{StatusNotStarted, StatusInProgress, StatusDone}

func (s Status) Valid() bool {
	switch s {
	case StatusNotStarted, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Ticket is one offboarding case. Status and CompletedAt are normally derived
// from the checklist; a direct PATCH may leave them out of sync until the next
// checklist mutation.
type Ticket struct {
	ID             int64      `json:"id"`
	EmployeeName   string     `json:"employee_name"`
	EmployeeID     string     `json:"employee_id"`
	Email          string     `json:"email"`
	Position       *string    `json:"position"`
	Manager        *string    `json:"manager"`
	LastWorkingDay *Date      `json:"last_working_day"`
	Status         Status     `json:"status"`
	CompletedAt    *time.Time `json:"completed_at"`
	CreatedAt      time.Time  `json:"created_at"`
	CreatedBy      *string    `json:"created_by"`
}

type ChecklistItem struct {
	ID           int64   `json:"id"`
	TicketID     int64   `json:"ticket_id"`
	Category     string  `json:"category"`
	Task         string  `json:"task"`
	Status       Status  `json:"status"`
	CompletedAt  *Date   `json:"completed_at"`
	EvidenceNote *string `json:"evidence_note"`
	SortOrder    int     `json:"sort_order"`
}

type TicketDetail struct {
	Ticket
	Checklist []ChecklistItem `json:"checklist"`
}
