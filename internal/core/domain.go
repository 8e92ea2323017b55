package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Food           Category = "Food"
	Transportation Category = "Transportation"
	Housing        Category = "Housing"
	Healthcare     Category = "Healthcare"
	Entertainment  Category = "Entertainment"
	Other          Category = "Other"
)

type (
	Category string

	Money struct {
		Cents int64
	}

	// CostRecord is one persisted expense entry. ID is assigned by the
	// store on creation and immutable afterwards.
	CostRecord struct {
		ID          int64
		Sum         Money
		Category    Category
		Description string
		Date        time.Time
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCategory = errors.New("invalid category")
)

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{Food, Transportation, Housing, Healthcare, Entertainment, Other}
}

// ParseCategory matches s against the fixed category set, ignoring case.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(s, string(c)) {
			return c, nil
		}
	}
	return "", ErrInvalidCategory
}

func (c Category) Valid() bool {
	_, err := ParseCategory(string(c))
	return err == nil
}

func (c Category) String() string {
	return string(c)
}

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

// Validate checks a record at the form boundary. The store itself assumes
// well-formed input and performs no validation. Description is free-form
// and optional; a zero Date is allowed because the store defaults it to
// the current moment on insert.
func (r CostRecord) Validate() error {
	if err := r.Sum.Validate(); err != nil {
		return err
	}
	if !r.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

// StartOfDay returns a fresh value at 00:00:00.000 UTC of t's calendar day.
// Caller-supplied times are never mutated.
func StartOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// EndOfDay returns a fresh value at 23:59:59.999999999 UTC of t's calendar day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).Add(24*time.Hour - time.Nanosecond)
}

// SameDay reports whether a and b fall on the same UTC calendar day.
func SameDay(a, b time.Time) bool {
	return StartOfDay(a).Equal(StartOfDay(b))
}
