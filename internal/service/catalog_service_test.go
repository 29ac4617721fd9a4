package service

import (
	"errors"
	"testing"

	"avshort/internal/validation"
)

// Validation happens before any repository access, so rejection paths
// are testable without a database.
func TestCreateShortcutValidation(t *testing.T) {
	s := NewCatalogService(nil, nil)

	tests := []struct {
		name    string
		term    string
		meaning string
	}{
		{"empty term", "", "visual flight rules"},
		{"whitespace term", "   ", "visual flight rules"},
		{"empty meaning", "VFR", ""},
		{"term too long", string(make([]byte, 51)), "meaning"},
		{"meaning too long", "VFR", string(make([]byte, 501))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreateShortcut(tt.term, tt.meaning)
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			var vErr validation.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("expected ValidationError, got %T: %v", err, err)
			}
		})
	}
}

func TestCreateGroupValidation(t *testing.T) {
	s := NewCatalogService(nil, nil)

	tests := []struct {
		name      string
		groupName string
	}{
		{"empty", ""},
		{"whitespace only", "  \t "},
		{"too long", string(make([]byte, 101))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.CreateGroup(tt.groupName); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}
