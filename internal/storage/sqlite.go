package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"outlay/internal/core"

	_ "modernc.org/sqlite"
)

// Store is the SQLite-backed cost store. One Store owns one connection
// pool; callers obtain it from Open and pass it to every consumer instead
// of relying on process-global state.
type Store struct {
	db *sql.DB
}

// Open creates (or reopens) the database at dbPath and brings its schema
// to the current version. Any failure here is fatal to all other
// operations and reported as StoreUnavailable.
func Open(dbPath string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, &Error{Kind: StoreUnavailable, Op: "open store", Err: fmt.Errorf("create db directory: %w", err)}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, &Error{Kind: StoreUnavailable, Op: "open store", Err: fmt.Errorf("open sqlite database: %w", err)}
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &Error{Kind: StoreUnavailable, Op: "open store", Err: fmt.Errorf("ping database: %w", err)}
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, &Error{Kind: StoreUnavailable, Op: "open store", Err: err}
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// AddCost implements CostWriter. The record is assumed to be validated at
// the boundary; the store assigns the ID and defaults a zero date to now.
func (s *Store) AddCost(ctx context.Context, rec core.CostRecord) (int64, error) {
	date := rec.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO costs (sum_cents, category, description, date) VALUES (?, ?, ?, ?)`,
		rec.Sum.Cents, string(rec.Category), rec.Description, date.Unix())
	if err != nil {
		return 0, &Error{Kind: WriteFailed, Op: "add cost", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &Error{Kind: WriteFailed, Op: "add cost", Err: fmt.Errorf("last insert id: %w", err)}
	}

	slog.InfoContext(ctx, "Cost saved",
		"id", id,
		"sum_cents", rec.Sum.Cents,
		"category", rec.Category,
		"date", date.Format("2006-01-02"))

	return id, nil
}

// CostsByDateRange implements CostReader. The bounds are normalized to
// the start and end of their days into fresh values; the caller-supplied
// times are left untouched. Scan order follows the date index ascending.
func (s *Store) CostsByDateRange(ctx context.Context, start, end time.Time) ([]core.CostRecord, error) {
	from := core.StartOfDay(start)
	to := core.EndOfDay(end)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, sum_cents, category, description, date
		   FROM costs
		  WHERE date BETWEEN ? AND ?
		  ORDER BY date ASC, id ASC`,
		from.Unix(), to.Unix())
	if err != nil {
		return nil, &Error{Kind: ReadFailed, Op: "costs by date range", Err: err}
	}
	defer rows.Close()

	records := []core.CostRecord{}
	for rows.Next() {
		var (
			rec      core.CostRecord
			category string
			unix     int64
		)
		if err := rows.Scan(&rec.ID, &rec.Sum.Cents, &category, &rec.Description, &unix); err != nil {
			return nil, &Error{Kind: ReadFailed, Op: "costs by date range", Err: fmt.Errorf("scan row: %w", err)}
		}
		rec.Category = core.Category(category)
		rec.Date = time.Unix(unix, 0).UTC()
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &Error{Kind: ReadFailed, Op: "costs by date range", Err: err}
	}

	return records, nil
}

// CostsByCategory implements CostReader by composing the range query and
// reducing its result.
func (s *Store) CostsByCategory(ctx context.Context, start, end time.Time) (map[core.Category]core.Money, error) {
	records, err := s.CostsByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return core.SummarizeByCategory(records), nil
}

// UpdateCost implements CostWriter. This is a full-record replace; an
// unknown ID creates a new record at that ID rather than failing.
func (s *Store) UpdateCost(ctx context.Context, rec core.CostRecord) error {
	date := rec.Date
	if date.IsZero() {
		date = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO costs (id, sum_cents, category, description, date)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		     sum_cents   = excluded.sum_cents,
		     category    = excluded.category,
		     description = excluded.description,
		     date        = excluded.date`,
		rec.ID, rec.Sum.Cents, string(rec.Category), rec.Description, date.Unix())
	if err != nil {
		return &Error{Kind: WriteFailed, Op: "update cost", Err: err}
	}

	slog.InfoContext(ctx, "Cost updated", "id", rec.ID, "sum_cents", rec.Sum.Cents, "category", rec.Category)
	return nil
}

// DeleteCost implements CostWriter. A missing ID is a silent no-op.
func (s *Store) DeleteCost(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM costs WHERE id = ?`, id)
	if err != nil {
		return &Error{Kind: WriteFailed, Op: "delete cost", Err: err}
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		slog.DebugContext(ctx, "Delete of missing cost ignored", "id", id)
	} else {
		slog.InfoContext(ctx, "Cost deleted", "id", id)
	}
	return nil
}

var _ CostStore = (*Store)(nil)
