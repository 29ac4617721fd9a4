package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPracticeIDMissing(t *testing.T) {
	h := &PracticeHandler{}
	r := httptest.NewRequest(http.MethodGet, "/practice/session", nil)

	if _, ok := h.practiceID(r); ok {
		t.Error("expected no practice ID without a cookie")
	}
}

func TestPracticeIDFromCookie(t *testing.T) {
	h := &PracticeHandler{}
	r := httptest.NewRequest(http.MethodGet, "/practice/session", nil)
	r.AddCookie(&http.Cookie{Name: PracticeCookieName, Value: "abc123"})

	id, ok := h.practiceID(r)
	if !ok {
		t.Fatal("expected practice ID from cookie")
	}
	if id != "abc123" {
		t.Errorf("practiceID = %q, want %q", id, "abc123")
	}
}

func TestEnsurePracticeIDSetsCookie(t *testing.T) {
	h := &PracticeHandler{}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/practice/start/all", nil)

	id := h.ensurePracticeID(w, r)
	if id == "" {
		t.Fatal("expected a generated practice ID")
	}

	cookies := w.Result().Cookies()
	var found bool
	for _, c := range cookies {
		if c.Name == PracticeCookieName && c.Value == id {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s cookie with value %q, got %v", PracticeCookieName, id, cookies)
	}
}

func TestEnsurePracticeIDReusesExisting(t *testing.T) {
	h := &PracticeHandler{}
	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodPost, "/practice/start/all", nil)
	r.AddCookie(&http.Cookie{Name: PracticeCookieName, Value: "existing"})

	if id := h.ensurePracticeID(w, r); id != "existing" {
		t.Errorf("ensurePracticeID = %q, want existing ID reused", id)
	}
	if len(w.Result().Cookies()) != 0 {
		t.Error("expected no new cookie when one already exists")
	}
}
