package http

import (
	"log/slog"
	"net/http"

	"outlay/internal/core"
)

type reportRow struct {
	ID          int64
	Date        string
	Sum         string
	Category    core.Category
	Description string
}

// handleReport renders the date-range report partial: an ordered table
// of cost records with per-row edit and delete controls.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	start, end, err := parseDateRange(r.URL.Query())
	if err != nil {
		slog.WarnContext(r.Context(), "Invalid report range", "error", err)
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	records, err := s.getReport(r.Context(), start, end)
	if err != nil {
		slog.ErrorContext(r.Context(), "Report query error", "error", err,
			"start", start.Format(dateLayout), "end", end.Format(dateLayout))
		_, _ = w.Write([]byte(`<section id="report" class="report"><div class="placeholder">Could not load the report</div></section>`))
		return
	}

	data := struct {
		Start      string
		End        string
		Rows       []reportRow
		Total      string
		Categories []core.Category
	}{
		Start:      start.Format(dateLayout),
		End:        end.Format(dateLayout),
		Categories: core.Categories(),
	}

	var totalCents int64
	for _, rec := range records {
		totalCents += rec.Sum.Cents
		data.Rows = append(data.Rows, reportRow{
			ID:          rec.ID,
			Date:        rec.Date.Format(dateLayout),
			Sum:         formatAmount(rec.Sum),
			Category:    rec.Category,
			Description: rec.Description,
		})
	}
	data.Total = formatAmount(core.Money{Cents: totalCents})

	if s.templates == nil {
		_, _ = w.Write([]byte(`<section id="report" class="report"><div class="placeholder">Total: ` + data.Total + `</div></section>`))
		return
	}

	if err := s.templates.ExecuteTemplate(w, "report.html", data); err != nil {
		slog.ErrorContext(r.Context(), "Template execution error", "error", err, "template", "report.html")
		_, _ = w.Write([]byte(`<section id="report" class="report"><div class="placeholder">Could not render the report</div></section>`))
	}
}
