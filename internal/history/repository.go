package history

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/nerrad567/cuepad-core/internal/pad"
)

// Page size limits for List.
const (
	DefaultLimit = 50
	MaxLimit     = 500
)

// Press is one journaled pad press.
type Press struct {
	ID          string    `json:"id"`
	Pad         int       `json:"pad"`
	Profile     int       `json:"profile"`
	ProfileName string    `json:"profile_name"`
	Velocity    float64   `json:"velocity"`
	Actions     int       `json:"actions"`
	Source      string    `json:"source,omitempty"`
	PressedAt   time.Time `json:"pressed_at"`
}

// FromEvent converts a handled press into a journal row.
func FromEvent(ev pad.PressEvent) Press {
	return Press{
		Pad:         ev.Pad,
		Profile:     ev.Profile,
		ProfileName: ev.ProfileName,
		Velocity:    ev.Velocity,
		Actions:     ev.Actions,
		Source:      ev.Source,
		PressedAt:   ev.At,
	}
}

// Filter controls which presses List returns.
type Filter struct {
	Pad    *int   // optional: only this pad
	Source string // optional: only this input source
	Limit  int    // default 50, max 500
	Offset int
}

// ListResult is a page of presses, newest first.
type ListResult struct {
	Presses []Press `json:"presses"`
	Total   int     `json:"total"`
	Limit   int     `json:"limit"`
	Offset  int     `json:"offset"`
}

// PadCount is the number of recorded presses for one pad.
type PadCount struct {
	Pad   int `json:"pad"`
	Count int `json:"count"`
}

// Repository defines the press journal operations.
type Repository interface {
	Record(ctx context.Context, p *Press) error
	List(ctx context.Context, filter Filter) (*ListResult, error)
	CountByPad(ctx context.Context) ([]PadCount, error)
}

// SQLiteRepository stores presses in the presses table.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a press repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Record inserts a press. ID and PressedAt are generated when empty.
func (r *SQLiteRepository) Record(ctx context.Context, p *Press) error {
	if p.ID == "" {
		p.ID = "prs-" + uuid.NewString()
	}
	if p.PressedAt.IsZero() {
		p.PressedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO presses (id, pad, profile, profile_name, velocity, actions, source, pressed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Pad, p.Profile, p.ProfileName, p.Velocity, p.Actions, p.Source,
		p.PressedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting press: %w", err)
	}
	return nil
}

// List returns presses matching filter, most recent first.
func (r *SQLiteRepository) List(ctx context.Context, filter Filter) (*ListResult, error) {
	if filter.Limit <= 0 {
		filter.Limit = DefaultLimit
	}
	if filter.Limit > MaxLimit {
		filter.Limit = MaxLimit
	}
	if filter.Offset < 0 {
		filter.Offset = 0
	}

	var conditions []string
	var args []any
	if filter.Pad != nil {
		conditions = append(conditions, "pad = ?")
		args = append(args, *filter.Pad)
	}
	if filter.Source != "" {
		conditions = append(conditions, "source = ?")
		args = append(args, filter.Source)
	}
	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	countQuery := "SELECT COUNT(*) FROM presses " + where //nolint:gosec // WHERE built from parameterised conditions
	if err := r.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("counting presses: %w", err)
	}

	query := "SELECT id, pad, profile, profile_name, velocity, actions, source, pressed_at FROM presses " + //nolint:gosec // as above
		where + " ORDER BY pressed_at DESC, rowid DESC LIMIT ? OFFSET ?"
	rows, err := r.db.QueryContext(ctx, query, append(args, filter.Limit, filter.Offset)...)
	if err != nil {
		return nil, fmt.Errorf("querying presses: %w", err)
	}
	defer rows.Close()

	presses := []Press{}
	for rows.Next() {
		var p Press
		var at string
		if err := rows.Scan(&p.ID, &p.Pad, &p.Profile, &p.ProfileName,
			&p.Velocity, &p.Actions, &p.Source, &at); err != nil {
			return nil, fmt.Errorf("scanning press: %w", err)
		}
		if p.PressedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("parsing press timestamp %q: %w", at, err)
		}
		presses = append(presses, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating presses: %w", err)
	}

	return &ListResult{
		Presses: presses,
		Total:   total,
		Limit:   filter.Limit,
		Offset:  filter.Offset,
	}, nil
}

// CountByPad returns press totals per pad in pad order.
func (r *SQLiteRepository) CountByPad(ctx context.Context) ([]PadCount, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT pad, COUNT(*) FROM presses GROUP BY pad ORDER BY pad")
	if err != nil {
		return nil, fmt.Errorf("counting presses by pad: %w", err)
	}
	defer rows.Close()

	counts := []PadCount{}
	for rows.Next() {
		var c PadCount
		if err := rows.Scan(&c.Pad, &c.Count); err != nil {
			return nil, fmt.Errorf("scanning pad count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating pad counts: %w", err)
	}
	return counts, nil
}
