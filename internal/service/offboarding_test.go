package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"offboard-checklist/internal/checklist"
	"offboard-checklist/internal/models"
	"offboard-checklist/internal/repository"
	"offboard-checklist/internal/repository/memory"
)

var testNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func newTestService(t *testing.T) *Offboarding {
	t.Helper()
	tmpl, err := checklist.Parse([]byte("- category: HR\n  tasks: [exit interview, final pay]\n- category: IT\n  tasks: [revoke accounts]\n"))
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	clock := func() time.Time { return testNow }
	return NewOffboarding(memory.New(clock), tmpl, clock, zerolog.Nop())
}

func createTicket(t *testing.T, s *Offboarding) *models.TicketDetail {
	t.Helper()
	d, err := s.CreateTicket(context.Background(), CreateTicketInput{
		EmployeeName: "Tran Thi B",
		EmployeeID:   "E100",
		Email:        "b@example.com",
	}, "")
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	return d
}

func TestCreateTicketSeedsChecklist(t *testing.T) {
	s := newTestService(t)
	d := createTicket(t, s)

	if len(d.Checklist) != 3 {
		t.Fatalf("checklist size: got=%d want=3", len(d.Checklist))
	}
	for i := 1; i < len(d.Checklist); i++ {
		if d.Checklist[i].SortOrder <= d.Checklist[i-1].SortOrder {
			t.Fatalf("sort_order not increasing at %d: %+v", i, d.Checklist)
		}
	}
	if d.Status != models.StatusNotStarted || d.CompletedAt != nil {
		t.Fatalf("new ticket status: %q %v", d.Status, d.CompletedAt)
	}
	if d.Position != nil || d.Manager != nil || d.LastWorkingDay != nil || d.CreatedBy != nil {
		t.Fatalf("omitted optionals should be nil: %+v", d.Ticket)
	}
}

func TestCreateTicketValidation(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	_, err := s.CreateTicket(ctx, CreateTicketInput{EmployeeName: "x", EmployeeID: " ", Email: "e"}, "")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	bad := models.Status("Finished")
	_, err = s.CreateTicket(ctx, CreateTicketInput{EmployeeName: "x", EmployeeID: "1", Email: "e", Status: &bad}, "")
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError for status, got %v", err)
	}
}

func TestCreateTicketDefaultsCreatedByToActor(t *testing.T) {
	s := newTestService(t)
	blank := "  "
	d, err := s.CreateTicket(context.Background(), CreateTicketInput{
		EmployeeName: "x", EmployeeID: "1", Email: "e", CreatedBy: &blank,
	}, "hr.admin")
	if err != nil {
		t.Fatalf("CreateTicket: %v", err)
	}
	if d.CreatedBy == nil || *d.CreatedBy != "hr.admin" {
		t.Fatalf("created_by: %v", d.CreatedBy)
	}
}

func TestLastItemDoneFlipsTicketDone(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	d := createTicket(t, s)

	done := repository.ItemPatch{Status: models.Some(models.StatusDone)}
	ids := []int64{d.Checklist[0].ID, d.Checklist[1].ID}
	if _, err := s.BulkUpdateChecklist(ctx, d.ID, ids, done); err != nil {
		t.Fatalf("BulkUpdateChecklist: %v", err)
	}
	got, _ := s.GetTicket(ctx, d.ID)
	if got.Status != models.StatusInProgress {
		t.Fatalf("after partial done: got=%q want=%q", got.Status, models.StatusInProgress)
	}

	if _, err := s.UpdateChecklistItem(ctx, d.ID, d.Checklist[2].ID, done); err != nil {
		t.Fatalf("UpdateChecklistItem: %v", err)
	}
	got, _ = s.GetTicket(ctx, d.ID)
	if got.Status != models.StatusDone || got.CompletedAt == nil || !got.CompletedAt.Equal(testNow) {
		t.Fatalf("after last done: status=%q completed_at=%v", got.Status, got.CompletedAt)
	}

	back := repository.ItemPatch{Status: models.Some(models.StatusNotStarted)}
	if _, err := s.BulkUpdateChecklist(ctx, d.ID, []int64{d.Checklist[0].ID, d.Checklist[1].ID, d.Checklist[2].ID}, back); err != nil {
		t.Fatalf("BulkUpdateChecklist: %v", err)
	}
	got, _ = s.GetTicket(ctx, d.ID)
	if got.Status != models.StatusNotStarted || got.CompletedAt != nil {
		t.Fatalf("after reset: status=%q completed_at=%v", got.Status, got.CompletedAt)
	}
}

func TestUpdateTicketIsDirectOverride(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	d := createTicket(t, s)

	got, err := s.UpdateTicket(ctx, d.ID, repository.TicketPatch{Status: models.Some(models.StatusDone)})
	if err != nil {
		t.Fatalf("UpdateTicket: %v", err)
	}
	if got.Status != models.StatusDone {
		t.Fatalf("direct status: got=%q", got.Status)
	}

	// The next checklist edit re-derives the status.
	note := repository.ItemPatch{EvidenceNote: models.Some("handed over")}
	if _, err := s.UpdateChecklistItem(ctx, d.ID, d.Checklist[0].ID, note); err != nil {
		t.Fatalf("UpdateChecklistItem: %v", err)
	}
	detail, _ := s.GetTicket(ctx, d.ID)
	if detail.Status != models.StatusNotStarted {
		t.Fatalf("status after rollup: got=%q", detail.Status)
	}
}

func TestServiceErrors(t *testing.T) {
	s := newTestService(t)
	ctx := context.Background()
	d := createTicket(t, s)
	var verr *ValidationError

	if _, err := s.GetTicket(ctx, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetTicket unknown: %v", err)
	}
	if _, err := s.UpdateTicket(ctx, 999, repository.TicketPatch{Email: models.Some("x@y")}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("UpdateTicket unknown: %v", err)
	}
	if _, err := s.UpdateTicket(ctx, d.ID, repository.TicketPatch{}); !errors.As(err, &verr) {
		t.Fatalf("UpdateTicket empty: %v", err)
	}
	if _, err := s.UpdateChecklistItem(ctx, d.ID, 999, repository.ItemPatch{EvidenceNote: models.Some("x")}); !errors.Is(err, ErrItemNotFound) {
		t.Fatalf("UpdateChecklistItem unknown: %v", err)
	}
	if _, err := s.BulkUpdateChecklist(ctx, d.ID, nil, repository.ItemPatch{EvidenceNote: models.Some("x")}); !errors.As(err, &verr) {
		t.Fatalf("Bulk empty ids: %v", err)
	}
	if _, err := s.BulkUpdateChecklist(ctx, d.ID, []int64{1}, repository.ItemPatch{}); !errors.As(err, &verr) {
		t.Fatalf("Bulk empty patch: %v", err)
	}
	if _, err := s.ExportTicket(ctx, 999, ""); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ExportTicket unknown: %v", err)
	}
	if _, err := s.ExportTicket(ctx, d.ID, "csv"); !errors.As(err, &verr) {
		t.Fatalf("ExportTicket csv: %v", err)
	}
}
