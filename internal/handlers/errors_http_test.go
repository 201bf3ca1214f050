package handlers_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"offboard-checklist/internal/checklist"
	"offboard-checklist/internal/config"
	"offboard-checklist/internal/models"
	"offboard-checklist/internal/repository/memory"
	"offboard-checklist/internal/router"
	"offboard-checklist/internal/service"
)

// brokenStore fails every read and write with the same error.
type brokenStore struct {
	*memory.Store
	err error
}

func (s brokenStore) List(context.Context) ([]models.Ticket, error) { return nil, s.err }

func (s brokenStore) Create(context.Context, *models.Ticket, []models.ChecklistItem) ([]models.ChecklistItem, error) {
	return nil, s.err
}

func TestStoreErrorsAre500WithMessage(t *testing.T) {
	var logs bytes.Buffer
	log := zerolog.New(&logs)
	store := brokenStore{Store: memory.New(time.Now), err: errors.New("connection refused")}
	svc := service.NewOffboarding(store, checklist.Default(), time.Now, log)
	h := router.New(log, svc, config.Config{})

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/tickets", ""},
		{http.MethodPost, "/api/tickets", minimalTicket},
		{http.MethodGet, "/api/reports/summary", ""},
	} {
		logs.Reset()
		rr := do(t, h, tc.method, tc.path, tc.body)
		expectStatus(t, rr, http.StatusInternalServerError)
		if got := decodeBody[map[string]string](t, rr)["error"]; got != "connection refused" {
			t.Fatalf("%s %s: error body got=%q", tc.method, tc.path, got)
		}
		if !strings.Contains(logs.String(), `"message":"request failed"`) {
			t.Fatalf("%s %s: 500 was not logged: %s", tc.method, tc.path, logs.String())
		}
	}
}

func TestBulkMalformedTicketIDIs404(t *testing.T) {
	h := newRouter(t, config.Config{})
	rr := do(t, h, http.MethodPatch, "/api/tickets/abc/checklist/bulk", `{"item_ids":[1],"status":"Done"}`)
	expectStatus(t, rr, http.StatusNotFound)
}

func TestTicketCompletedAtAcceptsBareDate(t *testing.T) {
	h := newRouter(t, config.Config{})
	tk := createTicket(t, h, minimalTicket)
	path := fmt.Sprintf("/api/tickets/%d", tk.ID)

	rr := do(t, h, http.MethodPatch, path, `{"completed_at":"2024-06-01"}`)
	expectStatus(t, rr, http.StatusOK)
	got := decodeBody[models.Ticket](t, rr)
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	if got.CompletedAt == nil || !got.CompletedAt.Equal(want) {
		t.Fatalf("completed_at: got=%v want=%v", got.CompletedAt, want)
	}

	rr = do(t, h, http.MethodPatch, path, `{"completed_at":"2024-06-01T09:30:00+07:00"}`)
	expectStatus(t, rr, http.StatusOK)

	rr = do(t, h, http.MethodPatch, path, `{"completed_at":"June 1st"}`)
	expectStatus(t, rr, http.StatusBadRequest)
	if msg := decodeBody[map[string]string](t, rr)["error"]; !strings.HasPrefix(msg, "invalid date") {
		t.Fatalf("expected a date error, got %q", msg)
	}

	item := fmt.Sprintf("/api/tickets/%d/checklist/%d", tk.ID, tk.Checklist[0].ID)
	rr = do(t, h, http.MethodPatch, item, `{"completed_at":""}`)
	expectStatus(t, rr, http.StatusBadRequest)
	if msg := decodeBody[map[string]string](t, rr)["error"]; !strings.HasPrefix(msg, "invalid date") {
		t.Fatalf("expected a date error for an empty item date, got %q", msg)
	}
}
