package handlers

import (
	"bytes"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRespondWithErrorWritesStatusAndBody(t *testing.T) {
	recorder := httptest.NewRecorder()

	respondWithError(recorder, http.StatusNotFound, "Shortcut not found", "", nil)

	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected status %d, got %d", http.StatusNotFound, recorder.Code)
	}

	body := strings.TrimSpace(recorder.Body.String())
	if body != "Shortcut not found" {
		t.Fatalf("expected body 'Shortcut not found', got %q", body)
	}
}

func TestRespondWithErrorLogsCause(t *testing.T) {
	var buf bytes.Buffer
	logger := log.Default()
	originalOutput := logger.Writer()
	logger.SetOutput(&buf)
	defer logger.SetOutput(originalOutput)

	recorder := httptest.NewRecorder()
	cause := errors.New("sql: connection refused")

	respondWithError(recorder, http.StatusInternalServerError, ErrInternalServerError, "Error listing shortcuts", cause)

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Error listing shortcuts") {
		t.Fatalf("expected log to include the internal message, got %q", logOutput)
	}
	if !strings.Contains(logOutput, "connection refused") {
		t.Fatalf("expected log to include the cause, got %q", logOutput)
	}
	if strings.Contains(recorder.Body.String(), "connection refused") {
		t.Fatal("internal error detail leaked into the response body")
	}
}
