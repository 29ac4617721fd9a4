package repository

import (
	"database/sql"
	"fmt"
	"time"

	"avshort/internal/database"
	"avshort/internal/models"
)

// GroupRepository handles database operations for groups and their
// shortcut memberships
type GroupRepository struct {
	db *database.DB
}

// NewGroupRepository creates a new group repository
func NewGroupRepository(db *database.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

// CreateGroup creates a new named group
func (r *GroupRepository) CreateGroup(name string) (*models.Group, error) {
	id, err := r.db.ExecReturningID("INSERT INTO study_groups (name) VALUES (?)", name)
	if err != nil {
		return nil, fmt.Errorf("failed to create group: %w", err)
	}

	return &models.Group{
		ID:        id,
		Name:      name,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// GetGroupByID retrieves a group by ID
func (r *GroupRepository) GetGroupByID(id int64) (*models.Group, error) {
	query := "SELECT id, name, created_at, updated_at FROM study_groups WHERE id = ?"
	group := &models.Group{}
	err := r.db.QueryRow(query, id).Scan(&group.ID, &group.Name, &group.CreatedAt, &group.UpdatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get group: %w", err)
	}

	return group, nil
}

// GetAllGroups retrieves all groups ordered by name
func (r *GroupRepository) GetAllGroups() ([]models.Group, error) {
	query := "SELECT id, name, created_at, updated_at FROM study_groups ORDER BY name ASC"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query groups: %w", err)
	}
	defer rows.Close()

	var groups []models.Group
	for rows.Next() {
		var group models.Group
		if err := rows.Scan(&group.ID, &group.Name, &group.CreatedAt, &group.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan group: %w", err)
		}
		groups = append(groups, group)
	}
	return groups, rows.Err()
}

// GetGroupSummaries retrieves all groups with member counts and recorded
// best scores, for the overview page.
func (r *GroupRepository) GetGroupSummaries() ([]models.GroupSummary, error) {
	query := `
		SELECT g.id, g.name, g.created_at, g.updated_at,
		       COUNT(gs.shortcut_id), sc.best_score
		FROM study_groups g
		LEFT JOIN group_shortcuts gs ON gs.group_id = g.id
		LEFT JOIN group_scores sc ON sc.group_id = g.id
		GROUP BY g.id, g.name, g.created_at, g.updated_at, sc.best_score
		ORDER BY g.name ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query group summaries: %w", err)
	}
	defer rows.Close()

	var summaries []models.GroupSummary
	for rows.Next() {
		var summary models.GroupSummary
		var bestScore sql.NullInt64
		if err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.CreatedAt,
			&summary.UpdatedAt,
			&summary.ShortcutCount,
			&bestScore,
		); err != nil {
			return nil, fmt.Errorf("failed to scan group summary: %w", err)
		}
		if bestScore.Valid {
			score := int(bestScore.Int64)
			summary.BestScore = &score
		}
		summaries = append(summaries, summary)
	}
	return summaries, rows.Err()
}

// GetGroupShortcuts retrieves a group's shortcuts in membership order.
// The INNER JOIN through group_shortcuts is the join contract for the
// practice source: a membership row whose shortcut has been deleted
// simply produces no row, so dangling links are dropped silently.
func (r *GroupRepository) GetGroupShortcuts(groupID int64) ([]models.Shortcut, error) {
	query := `
		SELECT s.id, s.term, s.meaning, s.created_at, s.updated_at
		FROM group_shortcuts gs
		INNER JOIN shortcuts s ON s.id = gs.shortcut_id
		WHERE gs.group_id = ?
		ORDER BY gs.position ASC, gs.shortcut_id ASC
	`
	rows, err := r.db.Query(query, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to query group shortcuts: %w", err)
	}
	defer rows.Close()

	return scanShortcuts(rows)
}

// RenameGroup updates a group's name
func (r *GroupRepository) RenameGroup(id int64, name string) error {
	query := "UPDATE study_groups SET name = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, name, id); err != nil {
		return fmt.Errorf("failed to rename group: %w", err)
	}
	return nil
}

// DeleteGroup deletes a group; memberships and its score record go with
// it via ON DELETE CASCADE.
func (r *GroupRepository) DeleteGroup(id int64) error {
	if _, err := r.db.Exec("DELETE FROM study_groups WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}
	return nil
}

// AddShortcutToGroup links a shortcut into a group at the next position.
// Adding an existing member again is a no-op at the database level
// (primary key on group_id + shortcut_id).
func (r *GroupRepository) AddShortcutToGroup(groupID, shortcutID int64) error {
	var position int
	posQuery := "SELECT COALESCE(MAX(position), 0) + 1 FROM group_shortcuts WHERE group_id = ?"
	if err := r.db.QueryRow(posQuery, groupID).Scan(&position); err != nil {
		return fmt.Errorf("failed to determine position: %w", err)
	}

	query := "INSERT INTO group_shortcuts (group_id, shortcut_id, position) VALUES (?, ?, ?)"
	if _, err := r.db.Exec(query, groupID, shortcutID, position); err != nil {
		return fmt.Errorf("failed to add shortcut to group: %w", err)
	}
	return nil
}

// RemoveShortcutFromGroup unlinks a shortcut from a group
func (r *GroupRepository) RemoveShortcutFromGroup(groupID, shortcutID int64) error {
	query := "DELETE FROM group_shortcuts WHERE group_id = ? AND shortcut_id = ?"
	if _, err := r.db.Exec(query, groupID, shortcutID); err != nil {
		return fmt.Errorf("failed to remove shortcut from group: %w", err)
	}
	return nil
}

// IsShortcutInGroup reports whether the membership link exists
func (r *GroupRepository) IsShortcutInGroup(groupID, shortcutID int64) (bool, error) {
	var count int
	query := "SELECT COUNT(*) FROM group_shortcuts WHERE group_id = ? AND shortcut_id = ?"
	if err := r.db.QueryRow(query, groupID, shortcutID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check membership: %w", err)
	}
	return count > 0, nil
}
