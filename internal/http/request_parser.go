// Package http provides the browser UI over the cost store.
//
// This file implements parsing and validation of cost form submissions.
package http

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"outlay/internal/core"
)

// ParseCostForm builds a CostRecord from form values, applying boundary
// validation. The returned record carries no ID; parseCostID handles
// that separately for update/delete forms. An empty date field leaves
// the record's date zero so the store can default it.
func ParseCostForm(form url.Values) (core.CostRecord, error) {
	sumStr := strings.TrimSpace(form.Get("sum"))
	cents, err := core.ParseDecimalToCents(sumStr)
	if err != nil {
		return core.CostRecord{}, fmt.Errorf("invalid sum %q: %w", sumStr, core.ErrInvalidAmount)
	}

	category, err := core.ParseCategory(form.Get("category"))
	if err != nil {
		return core.CostRecord{}, fmt.Errorf("invalid category %q: %w", form.Get("category"), err)
	}

	rec := core.CostRecord{
		Sum:         core.Money{Cents: cents},
		Category:    category,
		Description: sanitizeInput(form.Get("description")),
	}

	if v := strings.TrimSpace(form.Get("date")); v != "" {
		date, err := time.Parse(dateLayout, v)
		if err != nil {
			return core.CostRecord{}, fmt.Errorf("invalid date %q", v)
		}
		rec.Date = date
	}

	if err := rec.Validate(); err != nil {
		return core.CostRecord{}, err
	}

	return rec, nil
}

// parseCostID extracts a positive record id from form values.
func parseCostID(form url.Values) (int64, error) {
	v := strings.TrimSpace(form.Get("id"))
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid cost id %q", v)
	}
	return id, nil
}

// RequireMethod checks if the request method matches the expected method(s).
// Returns an error response builder if the method doesn't match.
func RequireMethod(r *http.Request, methods ...string) *HTMXResponseBuilder {
	for _, m := range methods {
		if r.Method == m {
			return nil
		}
	}
	return MethodNotAllowedError(strings.Join(methods, ", "))
}

// RequirePOST is a convenience function for POST-only handlers.
func RequirePOST(r *http.Request) *HTMXResponseBuilder {
	return RequireMethod(r, http.MethodPost)
}

// ParseFormOrFail parses the request form and returns an error response on failure.
// Returns nil on success.
func ParseFormOrFail(r *http.Request) *HTMXResponseBuilder {
	if err := r.ParseForm(); err != nil {
		return BadRequestError("Invalid request format")
	}
	return nil
}
