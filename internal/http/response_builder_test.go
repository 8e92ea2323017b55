package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHTMXResponseBuilder_Basic(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		Status(http.StatusOK).
		BodyString("test").
		Write(w)

	if w.Code != http.StatusOK {
		t.Errorf("Status code = %d, want %d", w.Code, http.StatusOK)
	}
	if w.Body.String() != "test" {
		t.Errorf("Body = %q, want %q", w.Body.String(), "test")
	}
}

func TestHTMXResponseBuilder_Triggers(t *testing.T) {
	w := httptest.NewRecorder()

	NewHTMXResponse().
		TriggerCostCreated(7).
		TriggerFormReset().
		Write(w)

	trigger := w.Header().Get("HX-Trigger")
	if trigger == "" {
		t.Fatal("HX-Trigger header not set")
	}

	expectedParts := []string{
		`"cost:created"`,
		`"form:reset"`,
		`"id":7`,
	}
	for _, part := range expectedParts {
		if !strings.Contains(trigger, part) {
			t.Errorf("HX-Trigger missing %q: %s", part, trigger)
		}
	}
}

func TestHTMXResponseBuilder_UpdateAndDeleteTriggers(t *testing.T) {
	w := httptest.NewRecorder()
	NewHTMXResponse().TriggerCostUpdated(3).Write(w)
	if got := w.Header().Get("HX-Trigger"); !strings.Contains(got, `"cost:updated"`) {
		t.Errorf("HX-Trigger = %s, want cost:updated", got)
	}

	w = httptest.NewRecorder()
	NewHTMXResponse().TriggerCostDeleted(3).Write(w)
	if got := w.Header().Get("HX-Trigger"); !strings.Contains(got, `"cost:deleted"`) {
		t.Errorf("HX-Trigger = %s, want cost:deleted", got)
	}
}

func TestErrorResponseEscapesMessage(t *testing.T) {
	w := httptest.NewRecorder()
	ErrorResponse(http.StatusUnprocessableEntity, `<script>alert("x")</script>`).Write(w)

	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("Status code = %d, want 422", w.Code)
	}
	body := w.Body.String()
	if strings.Contains(body, "<script>") {
		t.Errorf("Body not escaped: %s", body)
	}
	if !strings.Contains(body, `class="error"`) {
		t.Errorf("Body missing error wrapper: %s", body)
	}
}

func TestMethodNotAllowedSetsAllowHeader(t *testing.T) {
	w := httptest.NewRecorder()
	MethodNotAllowedError("POST, DELETE").Write(w)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("Status code = %d, want 405", w.Code)
	}
	if got := w.Header().Get("Allow"); got != "POST, DELETE" {
		t.Errorf("Allow = %q, want %q", got, "POST, DELETE")
	}
}
