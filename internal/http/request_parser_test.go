package http

import (
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"outlay/internal/core"
)

func TestParseCostForm(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		wantErr bool
		check   func(t *testing.T, rec core.CostRecord)
	}{
		{
			name: "valid full form",
			form: url.Values{
				"sum":         {"12.50"},
				"category":    {"Food"},
				"description": {"lunch"},
				"date":        {"2026-01-05"},
			},
			check: func(t *testing.T, rec core.CostRecord) {
				assert.Equal(t, int64(1250), rec.Sum.Cents)
				assert.Equal(t, core.Food, rec.Category)
				assert.Equal(t, "lunch", rec.Description)
				assert.Equal(t, 2026, rec.Date.Year())
			},
		},
		{
			name: "comma decimal separator",
			form: url.Values{"sum": {"12,50"}, "category": {"Transportation"}},
			check: func(t *testing.T, rec core.CostRecord) {
				assert.Equal(t, int64(1250), rec.Sum.Cents)
			},
		},
		{
			name: "category is case insensitive",
			form: url.Values{"sum": {"5"}, "category": {"hOuSiNg"}},
			check: func(t *testing.T, rec core.CostRecord) {
				assert.Equal(t, core.Housing, rec.Category)
			},
		},
		{
			name: "missing date stays zero",
			form: url.Values{"sum": {"5"}, "category": {"Other"}},
			check: func(t *testing.T, rec core.CostRecord) {
				assert.True(t, rec.Date.IsZero())
			},
		},
		{
			name: "description is trimmed and stripped of control chars",
			form: url.Values{"sum": {"5"}, "category": {"Other"}, "description": {"  a\x00b  "}},
			check: func(t *testing.T, rec core.CostRecord) {
				assert.Equal(t, "ab", rec.Description)
			},
		},
		{
			name:    "non-numeric sum",
			form:    url.Values{"sum": {"abc"}, "category": {"Food"}},
			wantErr: true,
		},
		{
			name:    "zero sum",
			form:    url.Values{"sum": {"0"}, "category": {"Food"}},
			wantErr: true,
		},
		{
			name:    "negative sum",
			form:    url.Values{"sum": {"-3"}, "category": {"Food"}},
			wantErr: true,
		},
		{
			name:    "unknown category",
			form:    url.Values{"sum": {"5"}, "category": {"Gadgets"}},
			wantErr: true,
		},
		{
			name:    "malformed date",
			form:    url.Values{"sum": {"5"}, "category": {"Food"}, "date": {"05/01/2026"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := ParseCostForm(tt.form)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, rec)
			}
		})
	}
}

func TestParseCostID(t *testing.T) {
	tests := []struct {
		name    string
		form    url.Values
		want    int64
		wantErr bool
	}{
		{name: "valid id", form: url.Values{"id": {"42"}}, want: 42},
		{name: "missing id", form: url.Values{}, wantErr: true},
		{name: "zero id", form: url.Values{"id": {"0"}}, wantErr: true},
		{name: "negative id", form: url.Values{"id": {"-1"}}, wantErr: true},
		{name: "non-numeric id", form: url.Values{"id": {"abc"}}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := parseCostID(tt.form)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestParseDateRange(t *testing.T) {
	t.Run("explicit range", func(t *testing.T) {
		start, end, err := parseDateRange(url.Values{
			"start": {"2026-01-01"},
			"end":   {"2026-01-31"},
		})
		require.NoError(t, err)
		assert.Equal(t, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), start)
		assert.Equal(t, time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC), end)
	})

	t.Run("defaults to current month", func(t *testing.T) {
		start, end, err := parseDateRange(url.Values{})
		require.NoError(t, err)
		now := time.Now().UTC()
		assert.Equal(t, 1, start.Day())
		assert.Equal(t, now.Month(), start.Month())
		assert.False(t, end.Before(start))
	})

	t.Run("single day range is valid", func(t *testing.T) {
		_, _, err := parseDateRange(url.Values{
			"start": {"2026-01-15"},
			"end":   {"2026-01-15"},
		})
		assert.NoError(t, err)
	})

	t.Run("inverted range", func(t *testing.T) {
		_, _, err := parseDateRange(url.Values{
			"start": {"2026-02-01"},
			"end":   {"2026-01-01"},
		})
		assert.Error(t, err)
	})

	t.Run("malformed start", func(t *testing.T) {
		_, _, err := parseDateRange(url.Values{"start": {"nope"}})
		assert.Error(t, err)
	})
}
