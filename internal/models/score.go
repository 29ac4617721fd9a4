package models

import "time"

// ScoreRecord is the persisted best score for one group.
// Best scores are monotonic: a completed session only overwrites the
// record when it beats the stored percentage.
type ScoreRecord struct {
	GroupID   int64
	BestScore int
	UpdatedAt time.Time
}
