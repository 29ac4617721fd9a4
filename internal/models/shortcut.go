package models

import "time"

// Shortcut represents one aviation shorthand flashcard: the notation and
// the meaning a practicing user has to recall.
type Shortcut struct {
	ID        int64
	Term      string
	Meaning   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Group is a named collection of shortcuts (a chapter in the course
// material or a user-assembled collection; the app treats both the same).
type Group struct {
	ID        int64
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// GroupWithShortcuts combines a group with its member shortcuts in
// membership order.
type GroupWithShortcuts struct {
	Group     Group
	Shortcuts []Shortcut
}

// GroupSummary extends Group with member count and the recorded best score
// for display on the group overview.
type GroupSummary struct {
	Group
	ShortcutCount int
	BestScore     *int
}
