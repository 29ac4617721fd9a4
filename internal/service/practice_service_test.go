package service

import (
	"errors"
	"math/rand"
	"testing"
	"time"

	"avshort/internal/models"
	"avshort/internal/practice"
)

func TestResolveScopeAll(t *testing.T) {
	s := NewPracticeService(nil, nil, nil)

	scope, err := s.ResolveScope(AllScopeID)
	if err != nil {
		t.Fatalf("ResolveScope(%q) returned error: %v", AllScopeID, err)
	}
	if !scope.All {
		t.Error("expected All scope")
	}
	if scope.GroupID != 0 {
		t.Errorf("all scope should carry no group ID, got %d", scope.GroupID)
	}
	if scope.Name == "" {
		t.Error("expected a display name for the all scope")
	}
}

func TestFinishSessionAllScopeNotRecorded(t *testing.T) {
	// Nil repositories prove the ledger is never touched for the "all"
	// pseudo-group: any repository access would panic.
	s := NewPracticeService(nil, nil, nil)

	shortcuts := []models.Shortcut{
		{ID: 1, Term: "VFR", Meaning: "Visual Flight Rules"},
		{ID: 2, Term: "IFR", Meaning: "Instrument Flight Rules"},
		{ID: 3, Term: "ATC", Meaning: "Air Traffic Control"},
	}

	session, err := practice.NewSession(shortcuts, rand.New(rand.NewSource(42)))
	if err != nil {
		t.Fatalf("NewSession returned error: %v", err)
	}

	// Answer two correctly, miss one.
	for i := 0; i < len(shortcuts); i++ {
		current, err := session.Current()
		if err != nil {
			t.Fatalf("Current returned error: %v", err)
		}
		answer := current.Meaning
		if i == 2 {
			answer = "no idea"
		}
		if _, err := session.Submit(answer); err != nil {
			t.Fatalf("Submit returned error: %v", err)
		}
		if err := session.Advance(); err != nil {
			t.Fatalf("Advance returned error: %v", err)
		}
	}

	active := &practice.Active{
		Session:   session,
		Scope:     practice.Scope{All: true, Name: "All Shortcuts"},
		StartedAt: time.Now(),
	}

	score, newBest, err := s.FinishSession(active)
	if err != nil {
		t.Fatalf("FinishSession returned error: %v", err)
	}
	if score != 67 {
		t.Errorf("score = %d, want 67 (2 of 3 correct)", score)
	}
	if newBest {
		t.Error("all-scope session must never count as a new best")
	}
}

func TestResolveScopeInvalid(t *testing.T) {
	s := NewPracticeService(nil, nil, nil)

	tests := []struct {
		name    string
		scopeID string
	}{
		{"empty", ""},
		{"non-numeric", "vfr-basics"},
		{"mixed", "12abc"},
		{"uppercase all", "ALL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ResolveScope(tt.scopeID)
			if !errors.Is(err, ErrInvalidScope) {
				t.Errorf("ResolveScope(%q) = %v, want ErrInvalidScope", tt.scopeID, err)
			}
		})
	}
}
