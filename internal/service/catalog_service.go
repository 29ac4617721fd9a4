package service

import (
	"errors"
	"fmt"
	"strings"

	"avshort/internal/models"
	"avshort/internal/repository"
	"avshort/internal/validation"
)

var (
	ErrShortcutNotFound = errors.New("shortcut not found")
	ErrDuplicateTerm    = errors.New("a shortcut with this term already exists")
)

// CatalogService manages the shortcut catalog and its groups
type CatalogService struct {
	shortcutRepo *repository.ShortcutRepository
	groupRepo    *repository.GroupRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(shortcutRepo *repository.ShortcutRepository, groupRepo *repository.GroupRepository) *CatalogService {
	return &CatalogService{
		shortcutRepo: shortcutRepo,
		groupRepo:    groupRepo,
	}
}

// CreateShortcut validates and stores a new shortcut
func (s *CatalogService) CreateShortcut(term, meaning string) (*models.Shortcut, error) {
	term = strings.TrimSpace(term)
	meaning = strings.TrimSpace(meaning)

	if err := validation.ValidateTerm(term); err != nil {
		return nil, err
	}
	if err := validation.ValidateMeaning(meaning); err != nil {
		return nil, err
	}

	shortcut, err := s.shortcutRepo.CreateShortcut(term, meaning)
	if err != nil {
		return nil, fmt.Errorf("failed to create shortcut: %w", err)
	}
	return shortcut, nil
}

// GetShortcut retrieves a shortcut by ID
func (s *CatalogService) GetShortcut(id int64) (*models.Shortcut, error) {
	shortcut, err := s.shortcutRepo.GetShortcutByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get shortcut: %w", err)
	}
	if shortcut == nil {
		return nil, ErrShortcutNotFound
	}
	return shortcut, nil
}

// ListShortcuts returns the whole catalog ordered by term
func (s *CatalogService) ListShortcuts() ([]models.Shortcut, error) {
	return s.shortcutRepo.GetAllShortcuts()
}

// UpdateShortcut validates and applies edits to an existing shortcut
func (s *CatalogService) UpdateShortcut(id int64, term, meaning string) (*models.Shortcut, error) {
	term = strings.TrimSpace(term)
	meaning = strings.TrimSpace(meaning)

	if err := validation.ValidateTerm(term); err != nil {
		return nil, err
	}
	if err := validation.ValidateMeaning(meaning); err != nil {
		return nil, err
	}

	existing, err := s.shortcutRepo.GetShortcutByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get shortcut: %w", err)
	}
	if existing == nil {
		return nil, ErrShortcutNotFound
	}

	if err := s.shortcutRepo.UpdateShortcut(id, term, meaning); err != nil {
		return nil, fmt.Errorf("failed to update shortcut: %w", err)
	}

	existing.Term = term
	existing.Meaning = meaning
	return existing, nil
}

// DeleteShortcut removes a shortcut. Membership rows cascade, so groups
// simply shrink; a group emptied this way can no longer start a session.
func (s *CatalogService) DeleteShortcut(id int64) error {
	existing, err := s.shortcutRepo.GetShortcutByID(id)
	if err != nil {
		return fmt.Errorf("failed to get shortcut: %w", err)
	}
	if existing == nil {
		return ErrShortcutNotFound
	}
	return s.shortcutRepo.DeleteShortcut(id)
}

// CreateGroup validates and stores a new named group
func (s *CatalogService) CreateGroup(name string) (*models.Group, error) {
	name = strings.TrimSpace(name)
	if err := validation.ValidateGroupName(name); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.CreateGroup(name)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}
	return group, nil
}

// GetGroup retrieves a group and its member shortcuts
func (s *CatalogService) GetGroup(id int64) (*models.GroupWithShortcuts, error) {
	group, err := s.groupRepo.GetGroupByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}

	shortcuts, err := s.groupRepo.GetGroupShortcuts(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get group shortcuts: %w", err)
	}

	return &models.GroupWithShortcuts{Group: *group, Shortcuts: shortcuts}, nil
}

// ListGroups returns all groups with member counts and best scores
func (s *CatalogService) ListGroups() ([]models.GroupSummary, error) {
	return s.groupRepo.GetGroupSummaries()
}

// RenameGroup validates and applies a new group name
func (s *CatalogService) RenameGroup(id int64, name string) error {
	name = strings.TrimSpace(name)
	if err := validation.ValidateGroupName(name); err != nil {
		return err
	}

	group, err := s.groupRepo.GetGroupByID(id)
	if err != nil {
		return fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return ErrGroupNotFound
	}
	return s.groupRepo.RenameGroup(id, name)
}

// DeleteGroup removes a group, its memberships and its recorded score.
// The shortcuts themselves stay in the catalog.
func (s *CatalogService) DeleteGroup(id int64) error {
	group, err := s.groupRepo.GetGroupByID(id)
	if err != nil {
		return fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return ErrGroupNotFound
	}
	return s.groupRepo.DeleteGroup(id)
}

// AddToGroup links a shortcut into a group at the end of its ordering.
// Adding a shortcut that is already a member is a no-op.
func (s *CatalogService) AddToGroup(groupID, shortcutID int64) error {
	group, err := s.groupRepo.GetGroupByID(groupID)
	if err != nil {
		return fmt.Errorf("failed to get group: %w", err)
	}
	if group == nil {
		return ErrGroupNotFound
	}

	shortcut, err := s.shortcutRepo.GetShortcutByID(shortcutID)
	if err != nil {
		return fmt.Errorf("failed to get shortcut: %w", err)
	}
	if shortcut == nil {
		return ErrShortcutNotFound
	}

	member, err := s.groupRepo.IsShortcutInGroup(groupID, shortcutID)
	if err != nil {
		return fmt.Errorf("failed to check membership: %w", err)
	}
	if member {
		return nil
	}

	return s.groupRepo.AddShortcutToGroup(groupID, shortcutID)
}

// RemoveFromGroup unlinks a shortcut from a group
func (s *CatalogService) RemoveFromGroup(groupID, shortcutID int64) error {
	return s.groupRepo.RemoveShortcutFromGroup(groupID, shortcutID)
}

// AvailableShortcuts returns catalog shortcuts not yet in the given group
func (s *CatalogService) AvailableShortcuts(groupID int64) ([]models.Shortcut, error) {
	all, err := s.shortcutRepo.GetAllShortcuts()
	if err != nil {
		return nil, fmt.Errorf("failed to list shortcuts: %w", err)
	}

	members, err := s.groupRepo.GetGroupShortcuts(groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to get group shortcuts: %w", err)
	}

	inGroup := make(map[int64]bool, len(members))
	for _, m := range members {
		inGroup[m.ID] = true
	}

	available := make([]models.Shortcut, 0, len(all))
	for _, sc := range all {
		if !inGroup[sc.ID] {
			available = append(available, sc)
		}
	}
	return available, nil
}
