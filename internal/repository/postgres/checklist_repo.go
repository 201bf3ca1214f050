package postgres

import (
	"context"
	"errors"
	"time"

	"offboard-checklist/internal/models"
	"offboard-checklist/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const itemColumns = `id, ticket_id, category, task, status, completed_at, evidence_note, sort_order`

type ChecklistRepo struct{ db *pgxpool.Pool }

func NewChecklistRepo(db *pgxpool.Pool) *ChecklistRepo { return &ChecklistRepo{db: db} }

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func (r *ChecklistRepo) ListItems(ctx context.Context, ticketID int64) ([]models.ChecklistItem, error) {
	return listItems(ctx, r.db, ticketID)
}

func (r *ChecklistRepo) ItemStatuses(ctx context.Context, ticketID int64) ([]models.Status, error) {
	rows, err := r.db.Query(ctx,
		`SELECT status FROM checklist_items WHERE ticket_id = $1 ORDER BY sort_order, id`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Status
	for rows.Next() {
		var s string
		if err := rows.Scan(&s); err != nil {
			return nil, err
		}
		out = append(out, models.Status(s))
	}
	return out, rows.Err()
}

func (r *ChecklistRepo) UpdateItem(ctx context.Context, ticketID, itemID int64, p repository.ItemPatch) (*models.ChecklistItem, error) {
	set, args := setClause(p.Assignments(), 1)
	if set == "" {
		return nil, errors.New("empty checklist update")
	}
	args = append(args, itemID, ticketID)
	it, err := scanItem(r.db.QueryRow(ctx, `
		UPDATE checklist_items SET `+set+`
		WHERE id = $`+itoa(len(args)-1)+` AND ticket_id = $`+itoa(len(args))+`
		RETURNING `+itemColumns,
		args...,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return it, nil
}

// BulkUpdateItems applies the same patch to every listed item of the ticket.
// Ids that belong to another ticket are ignored.
func (r *ChecklistRepo) BulkUpdateItems(ctx context.Context, ticketID int64, itemIDs []int64, p repository.ItemPatch) (int64, error) {
	set, args := setClause(p.Assignments(), 1)
	if set == "" {
		return 0, errors.New("empty checklist update")
	}
	args = append(args, ticketID, itemIDs)
	ct, err := r.db.Exec(ctx, `
		UPDATE checklist_items SET `+set+`
		WHERE ticket_id = $`+itoa(len(args)-1)+` AND id = ANY($`+itoa(len(args))+`)`,
		args...,
	)
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}

func listItems(ctx context.Context, q querier, ticketID int64) ([]models.ChecklistItem, error) {
	rows, err := q.Query(ctx,
		`SELECT `+itemColumns+` FROM checklist_items WHERE ticket_id = $1 ORDER BY sort_order, id`, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.ChecklistItem{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *it)
	}
	return out, rows.Err()
}

func scanItem(row pgx.Row) (*models.ChecklistItem, error) {
	var (
		it     models.ChecklistItem
		status string
		done   *time.Time
	)
	if err := row.Scan(
		&it.ID, &it.TicketID, &it.Category, &it.Task, &status, &done, &it.EvidenceNote, &it.SortOrder,
	); err != nil {
		return nil, err
	}
	it.Status = models.Status(status)
	it.CompletedAt = models.DateFromTime(done)
	return &it, nil
}
