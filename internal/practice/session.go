package practice

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"avshort/internal/models"
)

// DontKnowAnswer is the sentinel recorded when the user gives up on a
// question instead of typing an answer.
const DontKnowAnswer = "I don't know"

var (
	// ErrEmptySession is returned when a session is started with no shortcuts.
	ErrEmptySession = errors.New("practice session needs at least one shortcut")

	// ErrSessionComplete is returned when submitting or advancing past the end.
	ErrSessionComplete = errors.New("practice session is complete")

	// ErrSessionInProgress is returned when asking for a score before completion.
	ErrSessionInProgress = errors.New("practice session is still in progress")

	// ErrAttemptPending is returned when submitting twice without advancing.
	ErrAttemptPending = errors.New("current question already answered")

	// ErrNoAttemptPending is returned when advancing before answering.
	ErrNoAttemptPending = errors.New("current question not answered yet")
)

// Attempt records the outcome of one question: what was asked, what was
// expected, what the user typed (or the give-up sentinel) and whether it
// matched. Attempts are append-only.
type Attempt struct {
	Term            string
	ExpectedMeaning string
	SubmittedAnswer string
	Correct         bool
}

// Session is the practice state machine: a shuffled run over a fixed set
// of shortcuts with one attempt per question. All operations are
// synchronous in-memory state transitions; nothing is persisted here.
//
// Lifecycle: each question is resolved by Submit or Skip, which records
// the attempt and leaves the result pending so the caller can show
// feedback, then Advance moves on. After the last Advance the session is
// complete and Score becomes available.
type Session struct {
	shortcuts []models.Shortcut
	current   int
	attempts  []Attempt
	pending   bool
	complete  bool
}

// NewSession shuffles the given shortcuts and starts a session at the
// first question. A nil rng falls back to a time-seeded source; tests
// inject a seeded one. Returns ErrEmptySession for an empty set before
// any state is created.
func NewSession(shortcuts []models.Shortcut, rng *rand.Rand) (*Session, error) {
	if len(shortcuts) == 0 {
		return nil, ErrEmptySession
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	return &Session{
		shortcuts: Shuffle(shortcuts, rng),
		attempts:  make([]Attempt, 0, len(shortcuts)),
	}, nil
}

// Current returns the shortcut being asked.
func (s *Session) Current() (models.Shortcut, error) {
	if s.complete {
		return models.Shortcut{}, ErrSessionComplete
	}
	return s.shortcuts[s.current], nil
}

// Submit evaluates an answer for the current question and records the
// attempt. The session does not advance; the result stays pending until
// Advance so the caller can show correct/incorrect feedback first.
func (s *Session) Submit(answer string) (bool, error) {
	if s.complete {
		return false, ErrSessionComplete
	}
	if s.pending {
		return false, ErrAttemptPending
	}

	current := s.shortcuts[s.current]
	correct := IsCorrect(answer, current.Meaning)

	s.attempts = append(s.attempts, Attempt{
		Term:            current.Term,
		ExpectedMeaning: current.Meaning,
		SubmittedAnswer: answer,
		Correct:         correct,
	})
	s.pending = true

	return correct, nil
}

// Skip records a give-up attempt for the current question. Like Submit it
// leaves the result pending until Advance.
func (s *Session) Skip() error {
	if s.complete {
		return ErrSessionComplete
	}
	if s.pending {
		return ErrAttemptPending
	}

	current := s.shortcuts[s.current]
	s.attempts = append(s.attempts, Attempt{
		Term:            current.Term,
		ExpectedMeaning: current.Meaning,
		SubmittedAnswer: DontKnowAnswer,
		Correct:         false,
	})
	s.pending = true

	return nil
}

// Advance moves to the next question once the current one is resolved,
// marking the session complete after the last one.
func (s *Session) Advance() error {
	if s.complete {
		return ErrSessionComplete
	}
	if !s.pending {
		return ErrNoAttemptPending
	}

	s.pending = false
	s.current++
	if s.current == len(s.shortcuts) {
		s.complete = true
	}

	return nil
}

// Pending reports whether the current question has been resolved but not
// yet advanced past (feedback is being shown).
func (s *Session) Pending() bool {
	return s.pending
}

// LastAttempt returns the most recent attempt, for the feedback view.
func (s *Session) LastAttempt() (Attempt, bool) {
	if len(s.attempts) == 0 {
		return Attempt{}, false
	}
	return s.attempts[len(s.attempts)-1], true
}

// Complete reports whether every question has been answered and advanced past.
func (s *Session) Complete() bool {
	return s.complete
}

// Progress returns the number of resolved questions and the total.
func (s *Session) Progress() (answered, total int) {
	return len(s.attempts), len(s.shortcuts)
}

// Attempts returns the attempt log in question order.
func (s *Session) Attempts() []Attempt {
	return s.attempts
}

// CorrectCount returns how many attempts were correct so far.
func (s *Session) CorrectCount() int {
	count := 0
	for _, attempt := range s.attempts {
		if attempt.Correct {
			count++
		}
	}
	return count
}

// Score returns the final percentage of correct answers, rounded to the
// nearest integer with halves rounding up (7 of 12 is 58, 2 of 3 is 67).
// Only valid once the session is complete; repeated calls return the
// same value.
func (s *Session) Score() (int, error) {
	if !s.complete {
		return 0, ErrSessionInProgress
	}
	return int(math.Round(100 * float64(s.CorrectCount()) / float64(len(s.attempts)))), nil
}
