package repository

import (
	"context"
	"time"

	"offboard-checklist/internal/models"
)

// TicketRepository lookups return (nil, nil) when the row does not exist.
type TicketRepository interface {
	List(ctx context.Context) ([]models.Ticket, error)
	Get(ctx context.Context, id int64) (*models.Ticket, error)
	// Create inserts t and its checklist items atomically, filling in ids and
	// server-side defaults on both.
	Create(ctx context.Context, t *models.Ticket, items []models.ChecklistItem) ([]models.ChecklistItem, error)
	Update(ctx context.Context, id int64, p TicketPatch) (*models.Ticket, error)
	SetStatus(ctx context.Context, id int64, status models.Status, completedAt *time.Time) error
	Ping(ctx context.Context) error
}

type ChecklistRepository interface {
	ListItems(ctx context.Context, ticketID int64) ([]models.ChecklistItem, error)
	ItemStatuses(ctx context.Context, ticketID int64) ([]models.Status, error)
	UpdateItem(ctx context.Context, ticketID, itemID int64, p ItemPatch) (*models.ChecklistItem, error)
	BulkUpdateItems(ctx context.Context, ticketID int64, itemIDs []int64, p ItemPatch) (int64, error)
}

type Store interface {
	TicketRepository
	ChecklistRepository
}
