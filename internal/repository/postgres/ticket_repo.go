package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"offboard-checklist/internal/models"
	"offboard-checklist/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const ticketColumns = `id, employee_name, employee_id, email, position, manager,
	last_working_day, status, completed_at, created_at, created_by`

type TicketRepo struct{ db *pgxpool.Pool }

func NewTicketRepo(db *pgxpool.Pool) *TicketRepo { return &TicketRepo{db: db} }

// Store bundles both repositories over one pool.
type Store struct {
	*TicketRepo
	*ChecklistRepo
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{TicketRepo: NewTicketRepo(db), ChecklistRepo: NewChecklistRepo(db)}
}

var _ repository.Store = (*Store)(nil)

// -----------------------------------------------------------------------------
// Tickets
// -----------------------------------------------------------------------------

func (r *TicketRepo) List(ctx context.Context) ([]models.Ticket, error) {
	rows, err := r.db.Query(ctx, `SELECT `+ticketColumns+` FROM tickets ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

func (r *TicketRepo) Get(ctx context.Context, id int64) (*models.Ticket, error) {
	t, err := scanTicket(r.db.QueryRow(ctx, `SELECT `+ticketColumns+` FROM tickets WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

// Create inserts the ticket and its seeded checklist in a single transaction.
func (r *TicketRepo) Create(ctx context.Context, t *models.Ticket, items []models.ChecklistItem) ([]models.ChecklistItem, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	created, err := scanTicket(tx.QueryRow(ctx, `
		INSERT INTO tickets (employee_name, employee_id, email, position, manager, last_working_day, status, created_by)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
		RETURNING `+ticketColumns,
		t.EmployeeName, t.EmployeeID, t.Email, t.Position, t.Manager,
		t.LastWorkingDay.TimePtr(), string(t.Status), t.CreatedBy,
	))
	if err != nil {
		return nil, fmt.Errorf("insert ticket: %w", err)
	}
	*t = *created

	batch := &pgx.Batch{}
	for _, it := range items {
		batch.Queue(`
			INSERT INTO checklist_items (ticket_id, category, task, status, sort_order)
			VALUES ($1,$2,$3,$4,$5)`,
			t.ID, it.Category, it.Task, string(it.Status), it.SortOrder)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return nil, fmt.Errorf("insert checklist: %w", err)
	}

	seeded, err := listItems(ctx, tx, t.ID)
	if err != nil {
		return nil, err
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return seeded, nil
}

func (r *TicketRepo) Update(ctx context.Context, id int64, p repository.TicketPatch) (*models.Ticket, error) {
	set, args := setClause(p.Assignments(), 1)
	if set == "" {
		return nil, errors.New("empty ticket update")
	}
	args = append(args, id)
	t, err := scanTicket(r.db.QueryRow(ctx,
		`UPDATE tickets SET `+set+` WHERE id = $`+itoa(len(args))+` RETURNING `+ticketColumns,
		args...,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return t, nil
}

func (r *TicketRepo) SetStatus(ctx context.Context, id int64, status models.Status, completedAt *time.Time) error {
	_, err := r.db.Exec(ctx,
		`UPDATE tickets SET status = $1, completed_at = $2 WHERE id = $3`,
		string(status), completedAt, id)
	return err
}

func (r *TicketRepo) Ping(ctx context.Context) error { return r.db.Ping(ctx) }

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

// setClause compiles assignments into "col = $n, ..." starting at placeholder
// first. Column names come from the patch types' fixed set.
func setClause(as []repository.Assignment, first int) (string, []any) {
	parts := make([]string, 0, len(as))
	args := make([]any, 0, len(as))
	for i, a := range as {
		parts = append(parts, a.Column+" = $"+itoa(first+i))
		args = append(args, a.Value)
	}
	return strings.Join(parts, ", "), args
}

func scanTicket(row pgx.Row) (*models.Ticket, error) {
	var (
		t       models.Ticket
		status  string
		lastDay *time.Time
	)
	if err := row.Scan(
		&t.ID, &t.EmployeeName, &t.EmployeeID, &t.Email, &t.Position, &t.Manager,
		&lastDay, &status, &t.CompletedAt, &t.CreatedAt, &t.CreatedBy,
	); err != nil {
		return nil, err
	}
	t.Status = models.Status(status)
	t.LastWorkingDay = models.DateFromTime(lastDay)
	return &t, nil
}

func itoa(i int) string { return strconv.Itoa(i) }
