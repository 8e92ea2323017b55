package storage

import (
	"context"
	"time"

	"outlay/internal/core"
)

// CostWriter persists mutations to the cost store.
type CostWriter interface {
	// AddCost persists a record without an ID and returns the assigned one.
	// A zero Date defaults to the current moment.
	AddCost(ctx context.Context, rec core.CostRecord) (int64, error)

	// UpdateCost replaces the stored record at rec.ID with the supplied
	// fields. An unknown ID silently creates a record at that ID.
	UpdateCost(ctx context.Context, rec core.CostRecord) error

	// DeleteCost removes the record with the given ID. Deleting a missing
	// ID is a silent no-op.
	DeleteCost(ctx context.Context, id int64) error
}

// CostReader serves range and aggregate queries over the cost store.
type CostReader interface {
	// CostsByDateRange returns all records whose date falls within the
	// inclusive day-granular range [start, end], in ascending date order.
	CostsByDateRange(ctx context.Context, start, end time.Time) ([]core.CostRecord, error)

	// CostsByCategory reduces the same range into per-category totals.
	CostsByCategory(ctx context.Context, start, end time.Time) (map[core.Category]core.Money, error)
}

// CostStore is the full contract implemented by the sqlite and memory stores.
type CostStore interface {
	CostWriter
	CostReader
	Close() error
}
