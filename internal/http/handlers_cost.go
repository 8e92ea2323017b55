package http

import (
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
)

func (s *Server) handleCreateCost(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	rec, err := ParseCostForm(r.Form)
	if err != nil {
		slog.WarnContext(r.Context(), "Cost form rejected", "error", err)
		UnprocessableEntityError("Invalid data: " + err.Error()).Write(w)
		return
	}

	id, err := s.writer.AddCost(r.Context(), rec)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to save cost",
			"error", err,
			"sum_cents", rec.Sum.Cents,
			"category", rec.Category)
		InternalServerError("Could not save the cost entry").Write(w)
		return
	}

	s.invalidateRanges()

	NewHTMXResponse().
		TriggerCostCreated(id).
		TriggerFormReset().
		BodyHTML(`<div class="success">Cost recorded (#` + strconv.FormatInt(id, 10) + `): ` +
			template.HTMLEscapeString(rec.Description) +
			`, ` + formatAmount(rec.Sum) +
			` (` + template.HTMLEscapeString(string(rec.Category)) + `)</div>`).
		Write(w)
}

func (s *Server) handleUpdateCost(w http.ResponseWriter, r *http.Request) {
	if resp := RequirePOST(r); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id, err := parseCostID(r.Form)
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	// Full replace: every field is resupplied by the row's edit form.
	rec, err := ParseCostForm(r.Form)
	if err != nil {
		slog.WarnContext(r.Context(), "Cost update form rejected", "id", id, "error", err)
		UnprocessableEntityError("Invalid data: " + err.Error()).Write(w)
		return
	}
	rec.ID = id

	if err := s.writer.UpdateCost(r.Context(), rec); err != nil {
		slog.ErrorContext(r.Context(), "Failed to update cost", "error", err, "id", id)
		InternalServerError("Could not update the cost entry").Write(w)
		return
	}

	s.invalidateRanges()

	NewHTMXResponse().
		TriggerCostUpdated(id).
		BodyHTML(`<div class="success">Cost #` + strconv.FormatInt(id, 10) + ` updated</div>`).
		Write(w)
}

func (s *Server) handleDeleteCost(w http.ResponseWriter, r *http.Request) {
	if resp := RequireMethod(r, http.MethodPost, http.MethodDelete); resp != nil {
		resp.Write(w)
		return
	}
	if resp := ParseFormOrFail(r); resp != nil {
		resp.Write(w)
		return
	}

	id, err := parseCostID(r.Form)
	if err != nil {
		UnprocessableEntityError(err.Error()).Write(w)
		return
	}

	// Deleting a missing id is a no-op by contract, so this only fails
	// on a storage-level abort.
	if err := s.writer.DeleteCost(r.Context(), id); err != nil {
		slog.ErrorContext(r.Context(), "Failed to delete cost", "error", err, "id", id)
		InternalServerError("Could not delete the cost entry").Write(w)
		return
	}

	s.invalidateRanges()

	NewHTMXResponse().
		TriggerCostDeleted(id).
		BodyHTML(`<div class="success">Cost #` + strconv.FormatInt(id, 10) + ` deleted</div>`).
		Write(w)
}
