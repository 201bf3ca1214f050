package service

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"offboard-checklist/internal/checklist"
	"offboard-checklist/internal/export"
	"offboard-checklist/internal/models"
	"offboard-checklist/internal/repository"
)

// Offboarding owns the ticket/checklist rules on top of a repository.Store.
type Offboarding struct {
	store    repository.Store
	template checklist.Template
	now      func() time.Time
	log      zerolog.Logger
}

func NewOffboarding(store repository.Store, tmpl checklist.Template, now func() time.Time, log zerolog.Logger) *Offboarding {
	if now == nil {
		now = time.Now
	}
	return &Offboarding{store: store, template: tmpl, now: now, log: log}
}

func (s *Offboarding) Ping(ctx context.Context) error { return s.store.Ping(ctx) }

func (s *Offboarding) ListTickets(ctx context.Context) ([]models.Ticket, error) {
	return s.store.List(ctx)
}

func (s *Offboarding) GetTicket(ctx context.Context, id int64) (*models.TicketDetail, error) {
	t, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTicketNotFound
	}
	items, err := s.store.ListItems(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.TicketDetail{Ticket: *t, Checklist: items}, nil
}

type CreateTicketInput struct {
	EmployeeName   string         `json:"employee_name"`
	EmployeeID     string         `json:"employee_id"`
	Email          string         `json:"email"`
	Position       *string        `json:"position"`
	Manager        *string        `json:"manager"`
	LastWorkingDay *models.Date   `json:"last_working_day"`
	Status         *models.Status `json:"status"`
	CreatedBy      *string        `json:"created_by"`
}

// CreateTicket stores a new ticket with a checklist seeded from the template.
// actor is used as created_by when the input leaves it blank.
func (s *Offboarding) CreateTicket(ctx context.Context, in CreateTicketInput, actor string) (*models.TicketDetail, error) {
	in.EmployeeName = strings.TrimSpace(in.EmployeeName)
	in.EmployeeID = strings.TrimSpace(in.EmployeeID)
	in.Email = strings.TrimSpace(in.Email)
	if in.EmployeeName == "" || in.EmployeeID == "" || in.Email == "" {
		return nil, invalid("employee_name, employee_id, email are required")
	}

	status := models.StatusNotStarted
	if in.Status != nil && *in.Status != "" {
		if !in.Status.Valid() {
			return nil, invalid("invalid status \"" + string(*in.Status) + "\"")
		}
		status = *in.Status
	}

	createdBy := blankToNil(in.CreatedBy)
	if createdBy == nil && actor != "" {
		createdBy = &actor
	}

	t := &models.Ticket{
		EmployeeName:   in.EmployeeName,
		EmployeeID:     in.EmployeeID,
		Email:          in.Email,
		Position:       blankToNil(in.Position),
		Manager:        blankToNil(in.Manager),
		LastWorkingDay: in.LastWorkingDay,
		Status:         status,
		CreatedBy:      createdBy,
	}
	items, err := s.store.Create(ctx, t, s.template.Items())
	if err != nil {
		return nil, err
	}
	s.log.Info().Int64("ticket_id", t.ID).Int("items", len(items)).Msg("ticket created")
	return &models.TicketDetail{Ticket: *t, Checklist: items}, nil
}

// UpdateTicket writes the patch as given. Status and completed_at are not
// checked against the checklist; the next checklist edit re-derives them.
func (s *Offboarding) UpdateTicket(ctx context.Context, id int64, p repository.TicketPatch) (*models.Ticket, error) {
	if p.Empty() {
		return nil, invalid("No valid fields to update")
	}
	if err := p.Validate(); err != nil {
		return nil, invalid(err.Error())
	}
	t, err := s.store.Update(ctx, id, p)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, ErrTicketNotFound
	}
	if p.Status.Set {
		s.log.Warn().Int64("ticket_id", id).Str("status", string(t.Status)).Msg("ticket status set directly")
	}
	return t, nil
}

func (s *Offboarding) UpdateChecklistItem(ctx context.Context, ticketID, itemID int64, p repository.ItemPatch) (*models.ChecklistItem, error) {
	if p.Empty() {
		return nil, invalid("No valid fields to update")
	}
	if err := p.Validate(); err != nil {
		return nil, invalid(err.Error())
	}
	it, err := s.store.UpdateItem(ctx, ticketID, itemID, p)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItemNotFound
	}
	if _, _, err := s.Rollup(ctx, ticketID); err != nil {
		return nil, err
	}
	return it, nil
}

// BulkUpdateChecklist applies one patch to many items of a ticket and returns
// how many rows matched.
func (s *Offboarding) BulkUpdateChecklist(ctx context.Context, ticketID int64, itemIDs []int64, p repository.ItemPatch) (int64, error) {
	if len(itemIDs) == 0 {
		return 0, invalid("item_ids must be a non-empty array")
	}
	if p.Empty() {
		return 0, invalid("Provide at least one of: status, completed_at, evidence_note")
	}
	if err := p.Validate(); err != nil {
		return 0, invalid(err.Error())
	}
	n, err := s.store.BulkUpdateItems(ctx, ticketID, itemIDs, p)
	if err != nil {
		return 0, err
	}
	if _, _, err := s.Rollup(ctx, ticketID); err != nil {
		return 0, err
	}
	return n, nil
}

// Rollup re-derives the ticket status from its checklist and stores it. It
// runs outside the checklist write, so concurrent edits race and the last
// write wins.
func (s *Offboarding) Rollup(ctx context.Context, ticketID int64) (models.Status, *time.Time, error) {
	statuses, err := s.store.ItemStatuses(ctx, ticketID)
	if err != nil {
		return "", nil, err
	}
	status, completedAt := DeriveStatus(statuses, s.now())
	if err := s.store.SetStatus(ctx, ticketID, status, completedAt); err != nil {
		return "", nil, err
	}
	s.log.Debug().Int64("ticket_id", ticketID).Str("status", string(status)).Int("items", len(statuses)).Msg("status rollup")
	return status, completedAt, nil
}

func (s *Offboarding) ExportTicket(ctx context.Context, id int64, format string) (*export.Document, error) {
	d, err := s.GetTicket(ctx, id)
	if err != nil {
		return nil, err
	}
	f, err := export.ParseFormat(format)
	if err != nil {
		return nil, invalid(err.Error())
	}
	return export.Render(d, f)
}

func blankToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
