package storage

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlay/internal/core"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "costs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func day(year, month, d int) time.Time {
	return time.Date(year, time.Month(month), d, 0, 0, 0, 0, time.UTC)
}

func TestOpenIsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "costs.db")

	first, err := Open(dbPath)
	require.NoError(t, err)

	ctx := context.Background()
	id, err := first.AddCost(ctx, core.CostRecord{
		Sum: core.Money{Cents: 500}, Category: core.Food, Date: day(2024, 1, 5),
	})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// Reopening an existing database must succeed and keep its records.
	second, err := Open(dbPath)
	require.NoError(t, err)
	defer second.Close()

	records, err := second.CostsByDateRange(ctx, day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
}

func TestOpenFailureIsStoreUnavailable(t *testing.T) {
	// A directory path is not a usable database file.
	dir := t.TempDir()
	_, err := Open(dir)
	require.Error(t, err)
	assert.True(t, IsKind(err, StoreUnavailable), "expected StoreUnavailable, got %v", err)
}

func TestAddCostAssignsUniqueIDs(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	seen := make(map[int64]bool)
	for i := 0; i < 10; i++ {
		id, err := store.AddCost(ctx, core.CostRecord{
			Sum: core.Money{Cents: 100 + int64(i)}, Category: core.Other, Date: day(2024, 1, 5),
		})
		require.NoError(t, err)
		assert.False(t, seen[id], "id %d assigned twice", id)
		seen[id] = true
	}

	// Every inserted record is retrievable via a range covering its date.
	records, err := store.CostsByDateRange(ctx, day(2024, 1, 5), day(2024, 1, 5))
	require.NoError(t, err)
	assert.Len(t, records, 10)
}

func TestAddCostDefaultsDateToNow(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.AddCost(ctx, core.CostRecord{Sum: core.Money{Cents: 100}, Category: core.Food})
	require.NoError(t, err)

	now := time.Now().UTC()
	records, err := store.CostsByDateRange(ctx, now, now)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, core.SameDay(records[0].Date, now))
}

func TestCostsByDateRangeDayGranularity(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Same day, different times of day.
	morning := time.Date(2024, 3, 10, 8, 15, 0, 0, time.UTC)
	night := time.Date(2024, 3, 10, 23, 50, 0, 0, time.UTC)
	nextDay := time.Date(2024, 3, 11, 0, 5, 0, 0, time.UTC)

	for _, d := range []time.Time{morning, night, nextDay} {
		_, err := store.AddCost(ctx, core.CostRecord{Sum: core.Money{Cents: 100}, Category: core.Food, Date: d})
		require.NoError(t, err)
	}

	// A single-day range picks up records regardless of time of day.
	records, err := store.CostsByDateRange(ctx, day(2024, 3, 10), day(2024, 3, 10))
	require.NoError(t, err)
	assert.Len(t, records, 2)

	// Inclusive on both ends.
	records, err = store.CostsByDateRange(ctx, day(2024, 3, 10), day(2024, 3, 11))
	require.NoError(t, err)
	assert.Len(t, records, 3)
}

func TestCostsByDateRangeOrderingAndMaterialization(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	dates := []time.Time{day(2024, 1, 20), day(2024, 1, 5), day(2024, 1, 12)}
	for _, d := range dates {
		_, err := store.AddCost(ctx, core.CostRecord{
			Sum: core.Money{Cents: 100}, Category: core.Housing, Description: "rent", Date: d,
		})
		require.NoError(t, err)
	}

	records, err := store.CostsByDateRange(ctx, day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.False(t, records[i].Date.Before(records[i-1].Date), "records not in ascending date order")
	}
	assert.Equal(t, "rent", records[0].Description)
	assert.Equal(t, core.Housing, records[0].Category)
	assert.False(t, records[0].Date.IsZero(), "date must be materialized as a proper time value")
}

func TestCostsByDateRangeDoesNotMutateArguments(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 10, 30, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 11, 45, 0, 0, time.UTC)
	startCopy, endCopy := start, end

	_, err := store.CostsByDateRange(ctx, start, end)
	require.NoError(t, err)
	assert.True(t, start.Equal(startCopy))
	assert.True(t, end.Equal(endCopy))
}

func TestCostsByDateRangeEmpty(t *testing.T) {
	store := newTestStore(t)

	records, err := store.CostsByDateRange(context.Background(), day(2030, 1, 1), day(2030, 12, 31))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestCostsByCategoryScenario(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inserts := []core.CostRecord{
		{Sum: core.Money{Cents: 5000}, Category: core.Food, Date: day(2024, 1, 5)},
		{Sum: core.Money{Cents: 3000}, Category: core.Food, Date: day(2024, 1, 10)},
		{Sum: core.Money{Cents: 2000}, Category: core.Other, Date: day(2024, 2, 1)},
	}
	for _, rec := range inserts {
		_, err := store.AddCost(ctx, rec)
		require.NoError(t, err)
	}

	records, err := store.CostsByDateRange(ctx, day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, rec := range records {
		assert.Equal(t, core.Food, rec.Category)
	}

	totals, err := store.CostsByCategory(ctx, day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, map[core.Category]core.Money{core.Food: {Cents: 8000}}, totals)

	// Empty range yields an empty mapping, not zero-valued categories.
	totals, err = store.CostsByCategory(ctx, day(2023, 1, 1), day(2023, 12, 31))
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestCostsByCategoryMatchesRangeQuery(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	inserts := []core.CostRecord{
		{Sum: core.Money{Cents: 1200}, Category: core.Transportation, Date: day(2024, 5, 2)},
		{Sum: core.Money{Cents: 800}, Category: core.Transportation, Date: day(2024, 5, 9)},
		{Sum: core.Money{Cents: 4500}, Category: core.Healthcare, Date: day(2024, 5, 15)},
		{Sum: core.Money{Cents: 700}, Category: core.Entertainment, Date: day(2024, 5, 20)},
	}
	for _, rec := range inserts {
		_, err := store.AddCost(ctx, rec)
		require.NoError(t, err)
	}

	records, err := store.CostsByDateRange(ctx, day(2024, 5, 1), day(2024, 5, 31))
	require.NoError(t, err)
	totals, err := store.CostsByCategory(ctx, day(2024, 5, 1), day(2024, 5, 31))
	require.NoError(t, err)

	assert.Equal(t, core.SummarizeByCategory(records), totals)
}

func TestUpdateCostFullReplace(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddCost(ctx, core.CostRecord{
		Sum: core.Money{Cents: 5000}, Category: core.Food, Description: "groceries", Date: day(2024, 1, 5),
	})
	require.NoError(t, err)

	err = store.UpdateCost(ctx, core.CostRecord{
		ID: id, Sum: core.Money{Cents: 7500}, Category: core.Housing, Description: "utilities", Date: day(2024, 1, 6),
	})
	require.NoError(t, err)

	records, err := store.CostsByDateRange(ctx, day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, id, records[0].ID)
	assert.Equal(t, int64(7500), records[0].Sum.Cents)
	assert.Equal(t, core.Housing, records[0].Category)
	assert.Equal(t, "utilities", records[0].Description)

	// Aggregates reflect the update without reinitialization.
	totals, err := store.CostsByCategory(ctx, day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	assert.Equal(t, int64(7500), totals[core.Housing].Cents)
	_, hasFood := totals[core.Food]
	assert.False(t, hasFood)
}

func TestUpdateCostUnknownIDCreates(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.UpdateCost(ctx, core.CostRecord{
		ID: 424242, Sum: core.Money{Cents: 900}, Category: core.Other, Date: day(2024, 6, 1),
	})
	require.NoError(t, err)

	records, err := store.CostsByDateRange(ctx, day(2024, 6, 1), day(2024, 6, 1))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, int64(424242), records[0].ID)
}

func TestDeleteCostIdempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	id, err := store.AddCost(ctx, core.CostRecord{
		Sum: core.Money{Cents: 100}, Category: core.Food, Date: day(2024, 1, 5),
	})
	require.NoError(t, err)

	require.NoError(t, store.DeleteCost(ctx, id))

	records, err := store.CostsByDateRange(ctx, day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)
	assert.Empty(t, records)

	// Second delete succeeds as a no-op, as does deleting an unknown id.
	require.NoError(t, store.DeleteCost(ctx, id))
	require.NoError(t, store.DeleteCost(ctx, 99999))
}
