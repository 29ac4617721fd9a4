package practice

import (
	"strings"
	"testing"
)

func TestIsCorrect(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		expected  string
		want      bool
	}{
		{
			name:      "exact match",
			submitted: "Visual Flight Rules",
			expected:  "Visual Flight Rules",
			want:      true,
		},
		{
			name:      "case insensitive",
			submitted: "visual flight rules",
			expected:  "Visual Flight Rules",
			want:      true,
		},
		{
			name:      "surrounding whitespace ignored",
			submitted: "  before landing  ",
			expected:  "before landing",
			want:      true,
		},
		{
			name:      "wrong answer",
			submitted: "Instrument Flight Rules",
			expected:  "Visual Flight Rules",
			want:      false,
		},
		{
			name:      "empty submission is wrong, not an error",
			submitted: "",
			expected:  "after takeoff",
			want:      false,
		},
		{
			name:      "whitespace only submission",
			submitted: "   ",
			expected:  "after takeoff",
			want:      false,
		},
		{
			name:      "no partial credit",
			submitted: "visual flight",
			expected:  "Visual Flight Rules",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsCorrect(tt.submitted, tt.expected); got != tt.want {
				t.Errorf("IsCorrect(%q, %q) = %v, want %v", tt.submitted, tt.expected, got, tt.want)
			}
		})
	}
}

func TestIsCorrectNormalizationEquivalence(t *testing.T) {
	// IsCorrect(a, b) must agree with comparing pre-normalized inputs
	pairs := [][2]string{
		{"  Runway In Use ", "runway in use"},
		{"cleared for takeoff", "CLEARED FOR TAKEOFF  "},
		{"holding short", "go around"},
	}

	for _, pair := range pairs {
		a, b := pair[0], pair[1]
		normalized := IsCorrect(strings.ToUpper(strings.TrimSpace(a)), strings.ToUpper(strings.TrimSpace(b)))
		if got := IsCorrect(a, b); got != normalized {
			t.Errorf("IsCorrect(%q, %q) = %v, disagrees with normalized comparison %v", a, b, got, normalized)
		}
	}
}
