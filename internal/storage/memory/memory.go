// Package memory provides an in-memory cost store with the same range,
// upsert, and delete semantics as the SQLite store. It backs the memory
// data backend and the HTTP handler tests.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"outlay/internal/core"
	"outlay/internal/storage"
)

type Store struct {
	mu     sync.Mutex
	items  map[int64]core.CostRecord
	nextID int64
}

func New() *Store {
	return &Store{items: make(map[int64]core.CostRecord)}
}

// AddCost stores the record and returns the assigned id. A zero date
// defaults to the current moment, matching the SQLite store.
func (s *Store) AddCost(_ context.Context, rec core.CostRecord) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	rec.ID = s.nextID
	if rec.Date.IsZero() {
		rec.Date = time.Now().UTC()
	}
	s.items[rec.ID] = rec
	return rec.ID, nil
}

// CostsByDateRange returns records within the inclusive day-granular
// range in ascending date order, ids breaking ties.
func (s *Store) CostsByDateRange(_ context.Context, start, end time.Time) ([]core.CostRecord, error) {
	from := core.StartOfDay(start)
	to := core.EndOfDay(end)

	s.mu.Lock()
	defer s.mu.Unlock()

	records := []core.CostRecord{}
	for _, rec := range s.items {
		if rec.Date.Before(from) || rec.Date.After(to) {
			continue
		}
		records = append(records, rec)
	}
	sort.Slice(records, func(i, j int) bool {
		if !records[i].Date.Equal(records[j].Date) {
			return records[i].Date.Before(records[j].Date)
		}
		return records[i].ID < records[j].ID
	})
	return records, nil
}

func (s *Store) CostsByCategory(ctx context.Context, start, end time.Time) (map[core.Category]core.Money, error) {
	records, err := s.CostsByDateRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return core.SummarizeByCategory(records), nil
}

// UpdateCost replaces the record at rec.ID; an unknown id creates one.
func (s *Store) UpdateCost(_ context.Context, rec core.CostRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.Date.IsZero() {
		rec.Date = time.Now().UTC()
	}
	s.items[rec.ID] = rec
	if rec.ID > s.nextID {
		s.nextID = rec.ID
	}
	return nil
}

// DeleteCost removes the record if present; missing ids are a no-op.
func (s *Store) DeleteCost(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *Store) Close() error {
	return nil
}

var _ storage.CostStore = (*Store)(nil)
