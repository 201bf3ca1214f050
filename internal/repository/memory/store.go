// Package memory is an in-process repository.Store for local runs and tests.
// State is lost on restart.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"offboard-checklist/internal/models"
	"offboard-checklist/internal/repository"
)

type Store struct {
	mu      sync.Mutex
	now     func() time.Time
	tickets map[int64]*models.Ticket
	items   map[int64]*models.ChecklistItem
	lastTID int64
	lastIID int64
}

var _ repository.Store = (*Store)(nil)

func New(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		now:     now,
		tickets: map[int64]*models.Ticket{},
		items:   map[int64]*models.ChecklistItem{},
	}
}

func (s *Store) List(_ context.Context) ([]models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Ticket, 0, len(s.tickets))
	for _, t := range s.tickets {
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *Store) Get(_ context.Context, id int64) (*models.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (s *Store) Create(_ context.Context, t *models.Ticket, items []models.ChecklistItem) ([]models.ChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastTID++
	t.ID = s.lastTID
	t.CreatedAt = s.now()
	if t.Status == "" {
		t.Status = models.StatusNotStarted
	}
	cp := *t
	s.tickets[t.ID] = &cp

	seeded := make([]models.ChecklistItem, 0, len(items))
	for _, it := range items {
		s.lastIID++
		it.ID = s.lastIID
		it.TicketID = t.ID
		if it.Status == "" {
			it.Status = models.StatusNotStarted
		}
		stored := it
		s.items[it.ID] = &stored
		seeded = append(seeded, it)
	}
	return seeded, nil
}

func (s *Store) Update(_ context.Context, id int64, p repository.TicketPatch) (*models.Ticket, error) {
	if p.Empty() {
		return nil, errors.New("empty ticket update")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tickets[id]
	if !ok {
		return nil, nil
	}
	p.Apply(t)
	cp := *t
	return &cp, nil
}

func (s *Store) SetStatus(_ context.Context, id int64, status models.Status, completedAt *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.tickets[id]; ok {
		t.Status = status
		t.CompletedAt = completedAt
	}
	return nil
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) ListItems(_ context.Context, ticketID int64) ([]models.ChecklistItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.itemsOf(ticketID), nil
}

func (s *Store) ItemStatuses(_ context.Context, ticketID int64) ([]models.Status, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.itemsOf(ticketID)
	out := make([]models.Status, len(items))
	for i, it := range items {
		out[i] = it.Status
	}
	return out, nil
}

func (s *Store) UpdateItem(_ context.Context, ticketID, itemID int64, p repository.ItemPatch) (*models.ChecklistItem, error) {
	if p.Empty() {
		return nil, errors.New("empty checklist update")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	it, ok := s.items[itemID]
	if !ok || it.TicketID != ticketID {
		return nil, nil
	}
	p.Apply(it)
	cp := *it
	return &cp, nil
}

func (s *Store) BulkUpdateItems(_ context.Context, ticketID int64, itemIDs []int64, p repository.ItemPatch) (int64, error) {
	if p.Empty() {
		return 0, errors.New("empty checklist update")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[int64]bool, len(itemIDs))
	var n int64
	for _, id := range itemIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		if it, ok := s.items[id]; ok && it.TicketID == ticketID {
			p.Apply(it)
			n++
		}
	}
	return n, nil
}

// itemsOf returns copies ordered by (sort_order, id). Caller holds mu.
func (s *Store) itemsOf(ticketID int64) []models.ChecklistItem {
	out := []models.ChecklistItem{}
	for _, it := range s.items {
		if it.TicketID == ticketID {
			out = append(out, *it)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].SortOrder != out[j].SortOrder {
			return out[i].SortOrder < out[j].SortOrder
		}
		return out[i].ID < out[j].ID
	})
	return out
}
