package http

import (
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"sort"
	"strings"

	"outlay/internal/core"
)

type chartSlice struct {
	Category core.Category
	Sum      string
	Percent  float64
	Color    string
}

var categoryColors = map[core.Category]string{
	core.Food:           "#e76f51",
	core.Transportation: "#f4a261",
	core.Housing:        "#2a9d8f",
	core.Healthcare:     "#e9c46a",
	core.Entertainment:  "#8ab17d",
	core.Other:          "#6c757d",
}

// handleChart renders the per-category breakdown partial for a date range,
// including a CSS conic-gradient pie built from the category shares.
func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	start, end, err := parseDateRange(r.URL.Query())
	if err != nil {
		slog.WarnContext(r.Context(), "Invalid chart range", "error", err)
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	totals, err := s.getChart(r.Context(), start, end)
	if err != nil {
		slog.ErrorContext(r.Context(), "Chart query error", "error", err,
			"start", start.Format(dateLayout), "end", end.Format(dateLayout))
		_, _ = w.Write([]byte(`<section id="chart" class="chart"><div class="placeholder">Could not load the chart</div></section>`))
		return
	}

	grand := core.GrandTotal(totals)

	var slices []chartSlice
	for _, cat := range core.Categories() {
		sum, ok := totals[cat]
		if !ok || sum.Cents == 0 {
			continue
		}
		pct := 0.0
		if grand.Cents > 0 {
			pct = float64(sum.Cents) / float64(grand.Cents) * 100
		}
		slices = append(slices, chartSlice{
			Category: cat,
			Sum:      formatAmount(sum),
			Percent:  pct,
			Color:    categoryColors[cat],
		})
	}
	sort.SliceStable(slices, func(i, j int) bool { return slices[i].Percent > slices[j].Percent })

	data := struct {
		Start    string
		End      string
		Slices   []chartSlice
		Total    string
		Gradient template.CSS
	}{
		Start:    start.Format(dateLayout),
		End:      end.Format(dateLayout),
		Slices:   slices,
		Total:    formatAmount(grand),
		Gradient: template.CSS(conicGradient(slices)),
	}

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="chart" class="chart"><div class="placeholder">Total: ` + data.Total + `</div></section>`))
		return
	}

	if err := s.templates.ExecuteTemplate(w, "chart.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "chart.html")
		_, _ = w.Write([]byte(`<section id="chart" class="chart"><div class="placeholder">Could not render the chart</div></section>`))
	}
}

func conicGradient(slices []chartSlice) string {
	if len(slices) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("conic-gradient(")
	cursor := 0.0
	for i, sl := range slices {
		if i > 0 {
			b.WriteString(", ")
		}
		next := cursor + sl.Percent
		if i == len(slices)-1 {
			next = 100
		}
		fmt.Fprintf(&b, "%s %.2f%% %.2f%%", sl.Color, cursor, next)
		cursor = next
	}
	b.WriteString(")")
	return b.String()
}
