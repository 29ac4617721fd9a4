package practice

import (
	"errors"
	"math/rand"
	"testing"

	"avshort/internal/models"
)

func seededSession(t *testing.T, shortcuts []models.Shortcut) *Session {
	t.Helper()
	session, err := NewSession(shortcuts, rand.New(rand.NewSource(1)))
	if err != nil {
		t.Fatalf("NewSession() error = %v", err)
	}
	return session
}

// resolve answers the current question with the right or wrong meaning and advances
func resolve(t *testing.T, s *Session, correct bool) {
	t.Helper()
	current, err := s.Current()
	if err != nil {
		t.Fatalf("Current() error = %v", err)
	}
	answer := current.Meaning
	if !correct {
		answer = "definitely not " + current.Meaning
	}
	if _, err := s.Submit(answer); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if err := s.Advance(); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
}

func TestNewSessionRejectsEmptySet(t *testing.T) {
	session, err := NewSession(nil, rand.New(rand.NewSource(1)))
	if !errors.Is(err, ErrEmptySession) {
		t.Errorf("NewSession(nil) error = %v, want ErrEmptySession", err)
	}
	if session != nil {
		t.Error("NewSession(nil) should not create any session state")
	}
}

func TestSingleItemCorrectAnswer(t *testing.T) {
	session := seededSession(t, []models.Shortcut{
		{ID: 1, Term: "VFR", Meaning: "Visual Flight Rules"},
	})

	correct, err := session.Submit("visual flight rules")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if !correct {
		t.Error("Submit() = false, want correct")
	}
	if session.Complete() {
		t.Error("session complete before Advance()")
	}

	if err := session.Advance(); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}
	if !session.Complete() {
		t.Error("session not complete after final Advance()")
	}

	score, err := session.Score()
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score != 100 {
		t.Errorf("Score() = %d, want 100", score)
	}
}

func TestWrongAnswerAndSkipScoreZero(t *testing.T) {
	session := seededSession(t, []models.Shortcut{
		{ID: 1, Term: "ETA", Meaning: "Estimated Time of Arrival"},
		{ID: 2, Term: "ETD", Meaning: "Estimated Time of Departure"},
	})

	correct, err := session.Submit("wrong answer")
	if err != nil {
		t.Fatalf("Submit() error = %v", err)
	}
	if correct {
		t.Error("wrong answer judged correct")
	}
	if err := session.Advance(); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	if err := session.Skip(); err != nil {
		t.Fatalf("Skip() error = %v", err)
	}
	if err := session.Advance(); err != nil {
		t.Fatalf("Advance() error = %v", err)
	}

	attempts := session.Attempts()
	if len(attempts) != 2 {
		t.Fatalf("len(attempts) = %d, want 2", len(attempts))
	}
	for i, attempt := range attempts {
		if attempt.Correct {
			t.Errorf("attempt %d marked correct", i)
		}
	}
	if attempts[1].SubmittedAnswer != DontKnowAnswer {
		t.Errorf("skipped attempt recorded %q, want %q", attempts[1].SubmittedAnswer, DontKnowAnswer)
	}

	score, err := session.Score()
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	if score != 0 {
		t.Errorf("Score() = %d, want 0", score)
	}
}

func TestScoreRoundsHalfUp(t *testing.T) {
	tests := []struct {
		name    string
		total   int
		correct int
		want    int
	}{
		{name: "two of three", total: 3, correct: 2, want: 67},
		{name: "one of three", total: 3, correct: 1, want: 33},
		{name: "one of eight rounds half up", total: 8, correct: 1, want: 13},
		{name: "all correct", total: 4, correct: 4, want: 100},
		{name: "none correct", total: 4, correct: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session := seededSession(t, testShortcuts(tt.total))
			for i := 0; i < tt.total; i++ {
				resolve(t, session, i < tt.correct)
			}

			score, err := session.Score()
			if err != nil {
				t.Fatalf("Score() error = %v", err)
			}
			if score != tt.want {
				t.Errorf("Score() = %d, want %d", score, tt.want)
			}
		})
	}
}

func TestScoreIdempotent(t *testing.T) {
	session := seededSession(t, testShortcuts(3))
	resolve(t, session, true)
	resolve(t, session, false)
	resolve(t, session, true)

	first, err := session.Score()
	if err != nil {
		t.Fatalf("Score() error = %v", err)
	}
	for i := 0; i < 3; i++ {
		again, err := session.Score()
		if err != nil {
			t.Fatalf("Score() error on repeat call = %v", err)
		}
		if again != first {
			t.Errorf("Score() changed between calls: %d then %d", first, again)
		}
	}
}

func TestAttemptCountTracksPosition(t *testing.T) {
	session := seededSession(t, testShortcuts(5))

	for i := 0; i < 5; i++ {
		if _, err := session.Submit("anything"); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if err := session.Advance(); err != nil {
			t.Fatalf("Advance() error = %v", err)
		}

		answered, total := session.Progress()
		if answered != i+1 {
			t.Errorf("after question %d: answered = %d, want %d", i+1, answered, i+1)
		}
		if total != 5 {
			t.Errorf("total = %d, want 5", total)
		}
	}
}

func TestSessionShufflesSource(t *testing.T) {
	shortcuts := testShortcuts(50)
	session := seededSession(t, shortcuts)

	seen := make(map[int64]bool)
	moved := false
	for i := 0; i < 50; i++ {
		current, err := session.Current()
		if err != nil {
			t.Fatalf("Current() error = %v", err)
		}
		if seen[current.ID] {
			t.Fatalf("shortcut %d asked twice", current.ID)
		}
		seen[current.ID] = true
		if current.ID != shortcuts[i].ID {
			moved = true
		}
		resolve(t, session, true)
	}

	if len(seen) != 50 {
		t.Errorf("asked %d distinct shortcuts, want 50", len(seen))
	}
	if !moved {
		t.Error("seeded shuffle left every shortcut in place")
	}
}

func TestStateMachineGuards(t *testing.T) {
	t.Run("advance before answering", func(t *testing.T) {
		session := seededSession(t, testShortcuts(2))
		if err := session.Advance(); !errors.Is(err, ErrNoAttemptPending) {
			t.Errorf("Advance() error = %v, want ErrNoAttemptPending", err)
		}
	})

	t.Run("double submit without advancing", func(t *testing.T) {
		session := seededSession(t, testShortcuts(2))
		if _, err := session.Submit("x"); err != nil {
			t.Fatalf("Submit() error = %v", err)
		}
		if _, err := session.Submit("y"); !errors.Is(err, ErrAttemptPending) {
			t.Errorf("second Submit() error = %v, want ErrAttemptPending", err)
		}
		if err := session.Skip(); !errors.Is(err, ErrAttemptPending) {
			t.Errorf("Skip() after Submit() error = %v, want ErrAttemptPending", err)
		}
	})

	t.Run("operations after completion", func(t *testing.T) {
		session := seededSession(t, testShortcuts(1))
		resolve(t, session, true)

		if _, err := session.Current(); !errors.Is(err, ErrSessionComplete) {
			t.Errorf("Current() error = %v, want ErrSessionComplete", err)
		}
		if _, err := session.Submit("x"); !errors.Is(err, ErrSessionComplete) {
			t.Errorf("Submit() error = %v, want ErrSessionComplete", err)
		}
		if err := session.Advance(); !errors.Is(err, ErrSessionComplete) {
			t.Errorf("Advance() error = %v, want ErrSessionComplete", err)
		}
	})

	t.Run("score before completion", func(t *testing.T) {
		session := seededSession(t, testShortcuts(2))
		if _, err := session.Score(); !errors.Is(err, ErrSessionInProgress) {
			t.Errorf("Score() error = %v, want ErrSessionInProgress", err)
		}
	})
}

func TestLastAttemptForFeedback(t *testing.T) {
	session := seededSession(t, []models.Shortcut{
		{ID: 1, Term: "PAX", Meaning: "Passengers"},
	})

	if _, ok := session.LastAttempt(); ok {
		t.Error("LastAttempt() should report nothing before the first submit")
	}

	if _, err := session.Submit("passengers"); err != nil {
		t.Fatalf("Submit() error = %v", err)
	}

	attempt, ok := session.LastAttempt()
	if !ok {
		t.Fatal("LastAttempt() reported nothing after submit")
	}
	if !attempt.Correct || attempt.Term != "PAX" {
		t.Errorf("LastAttempt() = %+v, want correct PAX attempt", attempt)
	}
	if !session.Pending() {
		t.Error("Pending() = false while feedback is due")
	}
}
