package service

import (
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"time"

	"avshort/internal/models"
	"avshort/internal/practice"
	"avshort/internal/repository"
)

// AllScopeID is the synthetic pseudo-group spanning the whole catalog.
// Sessions over it are never recorded in the score ledger.
const AllScopeID = "all"

var (
	ErrGroupNotFound = errors.New("group not found")
	ErrInvalidScope  = errors.New("invalid practice scope")
)

// PracticeService supplies shortcuts to practice sessions (from the whole
// catalog or one group) and records best scores when sessions complete.
type PracticeService struct {
	shortcutRepo *repository.ShortcutRepository
	groupRepo    *repository.GroupRepository
	scoreRepo    *repository.ScoreRepository
	newRand      func() *rand.Rand
}

// NewPracticeService creates a new practice service
func NewPracticeService(shortcutRepo *repository.ShortcutRepository, groupRepo *repository.GroupRepository, scoreRepo *repository.ScoreRepository) *PracticeService {
	return &PracticeService{
		shortcutRepo: shortcutRepo,
		groupRepo:    groupRepo,
		scoreRepo:    scoreRepo,
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}
}

// SetRandSource overrides the session random source, for deterministic tests
func (s *PracticeService) SetRandSource(newRand func() *rand.Rand) {
	s.newRand = newRand
}

// ResolveScope parses a scope identifier from the URL: the literal "all"
// or a numeric group ID.
func (s *PracticeService) ResolveScope(scopeID string) (practice.Scope, error) {
	if scopeID == AllScopeID {
		return practice.Scope{All: true, Name: "All Shortcuts"}, nil
	}

	groupID, err := strconv.ParseInt(scopeID, 10, 64)
	if err != nil {
		return practice.Scope{}, ErrInvalidScope
	}

	group, err := s.groupRepo.GetGroupByID(groupID)
	if err != nil {
		return practice.Scope{}, fmt.Errorf("failed to resolve group: %w", err)
	}
	if group == nil {
		return practice.Scope{}, ErrGroupNotFound
	}

	return practice.Scope{GroupID: group.ID, Name: group.Name}, nil
}

// LoadShortcuts resolves a scope's item set: every shortcut ordered by
// term for "all", membership order for a group. The catalog fetch is
// all-or-nothing; a failed query never yields a partial set.
func (s *PracticeService) LoadShortcuts(scope practice.Scope) ([]models.Shortcut, error) {
	if scope.All {
		return s.shortcutRepo.GetAllShortcuts()
	}
	return s.groupRepo.GetGroupShortcuts(scope.GroupID)
}

// StartSession resolves a scope, loads its shortcuts and starts a shuffled
// session over them. Empty scopes are rejected with
// practice.ErrEmptySession before any state exists.
func (s *PracticeService) StartSession(scopeID string) (*practice.Active, error) {
	scope, err := s.ResolveScope(scopeID)
	if err != nil {
		return nil, err
	}

	shortcuts, err := s.LoadShortcuts(scope)
	if err != nil {
		return nil, fmt.Errorf("failed to load shortcuts: %w", err)
	}

	session, err := practice.NewSession(shortcuts, s.newRand())
	if err != nil {
		return nil, err
	}

	return &practice.Active{
		Session:   session,
		Scope:     scope,
		StartedAt: time.Now(),
	}, nil
}

// FinishSession computes the final score of a completed session and
// records it in the ledger. Sessions over the "all" pseudo-group are
// never recorded; real groups only overwrite a strictly lower best.
// Returns the score and whether it set a new best.
func (s *PracticeService) FinishSession(active *practice.Active) (int, bool, error) {
	score, err := active.Session.Score()
	if err != nil {
		return 0, false, err
	}

	if active.Scope.All {
		return score, false, nil
	}

	previous, err := s.scoreRepo.GetBestScore(active.Scope.GroupID)
	if err != nil {
		return score, false, fmt.Errorf("failed to read best score: %w", err)
	}

	newBest := previous == nil || score > *previous
	if newBest {
		if err := s.scoreRepo.RecordScore(active.Scope.GroupID, score); err != nil {
			return score, false, fmt.Errorf("failed to record score: %w", err)
		}
	}

	return score, newBest, nil
}

// BestScore retrieves the recorded best score for a group, nil when absent
func (s *PracticeService) BestScore(groupID int64) (*int, error) {
	return s.scoreRepo.GetBestScore(groupID)
}
