package repository

import (
	"database/sql"
	"fmt"

	"avshort/internal/database"
	"avshort/internal/models"
)

// ScoreRepository persists the best score per group. The monotonic policy
// lives in the dialect upsert: an insert either creates the record or
// raises it, never lowers it.
type ScoreRepository struct {
	db *database.DB
}

// NewScoreRepository creates a new score repository
func NewScoreRepository(db *database.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// GetBestScore retrieves the recorded best score for a group, or nil when
// the group has never been completed.
func (r *ScoreRepository) GetBestScore(groupID int64) (*int, error) {
	var score int
	query := "SELECT best_score FROM group_scores WHERE group_id = ?"
	err := r.db.QueryRow(query, groupID).Scan(&score)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get best score: %w", err)
	}

	return &score, nil
}

// RecordScore stores a completed session's score for a group if it beats
// the current best. Equal or lower scores leave the record untouched.
func (r *ScoreRepository) RecordScore(groupID int64, score int) error {
	if score < 0 || score > 100 {
		return fmt.Errorf("score %d out of range [0, 100]", score)
	}

	query := r.db.Dialect.UpsertScoreQuery()
	if _, err := r.db.Exec(query, groupID, score); err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}
	return nil
}

// GetAllScores retrieves every recorded best score keyed by group
func (r *ScoreRepository) GetAllScores() ([]models.ScoreRecord, error) {
	query := "SELECT group_id, best_score, updated_at FROM group_scores ORDER BY group_id"
	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query scores: %w", err)
	}
	defer rows.Close()

	var records []models.ScoreRecord
	for rows.Next() {
		var record models.ScoreRecord
		if err := rows.Scan(&record.GroupID, &record.BestScore, &record.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}
