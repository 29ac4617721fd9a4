package repository

import (
	"database/sql"
	"fmt"
	"time"

	"avshort/internal/database"
	"avshort/internal/models"
)

// ShortcutRepository handles database operations for the shortcut catalog
type ShortcutRepository struct {
	db *database.DB
}

// NewShortcutRepository creates a new shortcut repository
func NewShortcutRepository(db *database.DB) *ShortcutRepository {
	return &ShortcutRepository{db: db}
}

// CreateShortcut inserts a new shortcut into the catalog
func (r *ShortcutRepository) CreateShortcut(term, meaning string) (*models.Shortcut, error) {
	query := "INSERT INTO shortcuts (term, meaning) VALUES (?, ?)"
	id, err := r.db.ExecReturningID(query, term, meaning)
	if err != nil {
		return nil, fmt.Errorf("failed to create shortcut: %w", err)
	}

	return &models.Shortcut{
		ID:        id,
		Term:      term,
		Meaning:   meaning,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}, nil
}

// GetShortcutByID retrieves a shortcut by ID
func (r *ShortcutRepository) GetShortcutByID(id int64) (*models.Shortcut, error) {
	query := `
		SELECT id, term, meaning, created_at, updated_at
		FROM shortcuts
		WHERE id = ?
	`
	shortcut := &models.Shortcut{}
	err := r.db.QueryRow(query, id).Scan(
		&shortcut.ID,
		&shortcut.Term,
		&shortcut.Meaning,
		&shortcut.CreatedAt,
		&shortcut.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get shortcut: %w", err)
	}

	return shortcut, nil
}

// GetAllShortcuts retrieves the whole catalog ordered by term ascending,
// the canonical order the practice source uses before shuffling.
func (r *ShortcutRepository) GetAllShortcuts() ([]models.Shortcut, error) {
	query := `
		SELECT id, term, meaning, created_at, updated_at
		FROM shortcuts
		ORDER BY term ASC
	`
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query shortcuts: %w", err)
	}
	defer rows.Close()

	return scanShortcuts(rows)
}

// UpdateShortcut updates a shortcut's term and meaning
func (r *ShortcutRepository) UpdateShortcut(id int64, term, meaning string) error {
	query := "UPDATE shortcuts SET term = ?, meaning = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?"
	if _, err := r.db.Exec(query, term, meaning, id); err != nil {
		return fmt.Errorf("failed to update shortcut: %w", err)
	}
	return nil
}

// DeleteShortcut removes a shortcut. Group membership rows referencing it
// are removed by the ON DELETE CASCADE constraint.
func (r *ShortcutRepository) DeleteShortcut(id int64) error {
	if _, err := r.db.Exec("DELETE FROM shortcuts WHERE id = ?", id); err != nil {
		return fmt.Errorf("failed to delete shortcut: %w", err)
	}
	return nil
}

// CountShortcuts returns the catalog size
func (r *ShortcutRepository) CountShortcuts() (int, error) {
	var count int
	if err := r.db.QueryRow("SELECT COUNT(*) FROM shortcuts").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count shortcuts: %w", err)
	}
	return count, nil
}

// scanShortcuts reads shortcut rows into a slice
func scanShortcuts(rows *sql.Rows) ([]models.Shortcut, error) {
	var shortcuts []models.Shortcut
	for rows.Next() {
		var shortcut models.Shortcut
		if err := rows.Scan(
			&shortcut.ID,
			&shortcut.Term,
			&shortcut.Meaning,
			&shortcut.CreatedAt,
			&shortcut.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan shortcut: %w", err)
		}
		shortcuts = append(shortcuts, shortcut)
	}
	return shortcuts, rows.Err()
}
