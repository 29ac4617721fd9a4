package service

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"avshort/internal/database"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version    string           `json:"version"`
	ExportedAt time.Time        `json:"exported_at"`
	Users      []UserBackup     `json:"users"`
	Shortcuts  []ShortcutBackup `json:"shortcuts"`
	Groups     []GroupBackup    `json:"groups"`
	Scores     []ScoreBackup    `json:"scores"`
	Settings   []SettingBackup  `json:"settings"`
}

// UserBackup represents a user record for backup
type UserBackup struct {
	ID            int64     `json:"id"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"password_hash"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider"`
	OAuthSubject  string    `json:"oauth_subject"`
	IsAdmin       bool      `json:"is_admin"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ShortcutBackup represents a shortcut record for backup
type ShortcutBackup struct {
	ID        int64     `json:"id"`
	Term      string    `json:"term"`
	Meaning   string    `json:"meaning"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// GroupBackup represents a group and its memberships for backup
type GroupBackup struct {
	ID        int64                 `json:"id"`
	Name      string                `json:"name"`
	CreatedAt time.Time             `json:"created_at"`
	UpdatedAt time.Time             `json:"updated_at"`
	Members   []GroupMemberBackup   `json:"members"`
}

// GroupMemberBackup represents one group membership row
type GroupMemberBackup struct {
	ShortcutID int64 `json:"shortcut_id"`
	Position   int   `json:"position"`
}

// ScoreBackup represents a recorded best score for backup
type ScoreBackup struct {
	GroupID   int64     `json:"group_id"`
	BestScore int       `json:"best_score"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SettingBackup represents an application setting for backup
type SettingBackup struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// GetDB returns the database connection for direct queries
func (s *BackupService) GetDB() *database.DB {
	return s.db
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	if err := s.ExportToWriter(file); err != nil {
		return err
	}

	log.Printf("Database exported successfully to %s", outputPath)
	return nil
}

// ExportToWriter exports the database to an io.Writer (useful for HTTP responses)
func (s *BackupService) ExportToWriter(w io.Writer) error {
	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	if err := s.exportUsers(backup); err != nil {
		return fmt.Errorf("failed to export users: %w", err)
	}
	if err := s.exportShortcuts(backup); err != nil {
		return fmt.Errorf("failed to export shortcuts: %w", err)
	}
	if err := s.exportGroups(backup); err != nil {
		return fmt.Errorf("failed to export groups: %w", err)
	}
	if err := s.exportScores(backup); err != nil {
		return fmt.Errorf("failed to export scores: %w", err)
	}
	if err := s.exportSettings(backup); err != nil {
		return fmt.Errorf("failed to export settings: %w", err)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(backup)
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	log.Printf("Starting database import from %s...", inputPath)

	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup reader (for file uploads)
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	var backup BackupData
	decoder := json.NewDecoder(reader)
	if err := decoder.Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Import in order of dependencies
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importShortcuts(backup.Shortcuts); err != nil {
		return fmt.Errorf("failed to import shortcuts: %w", err)
	}
	if err := s.importGroups(backup.Groups); err != nil {
		return fmt.Errorf("failed to import groups: %w", err)
	}
	if err := s.importScores(backup.Scores); err != nil {
		return fmt.Errorf("failed to import scores: %w", err)
	}
	if err := s.importSettings(backup.Settings); err != nil {
		return fmt.Errorf("failed to import settings: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	query := "SELECT id, email, password_hash, name, COALESCE(oauth_provider, ''), COALESCE(oauth_subject, ''), is_admin, created_at, updated_at FROM users ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.OAuthProvider, &u.OAuthSubject, &u.IsAdmin, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportShortcuts(backup *BackupData) error {
	query := "SELECT id, term, meaning, created_at, updated_at FROM shortcuts ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sc ShortcutBackup
		if err := rows.Scan(&sc.ID, &sc.Term, &sc.Meaning, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return err
		}
		backup.Shortcuts = append(backup.Shortcuts, sc)
	}
	return rows.Err()
}

func (s *BackupService) exportGroups(backup *BackupData) error {
	query := "SELECT id, name, created_at, updated_at FROM study_groups ORDER BY id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var g GroupBackup
		if err := rows.Scan(&g.ID, &g.Name, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return err
		}

		memberQuery := "SELECT shortcut_id, position FROM group_shortcuts WHERE group_id = ? ORDER BY position"
		memberRows, err := s.db.Query(memberQuery, g.ID)
		if err != nil {
			return err
		}

		for memberRows.Next() {
			var m GroupMemberBackup
			if err := memberRows.Scan(&m.ShortcutID, &m.Position); err != nil {
				memberRows.Close()
				return err
			}
			g.Members = append(g.Members, m)
		}
		memberRows.Close()

		backup.Groups = append(backup.Groups, g)
	}
	return rows.Err()
}

func (s *BackupService) exportScores(backup *BackupData) error {
	query := "SELECT group_id, best_score, updated_at FROM group_scores ORDER BY group_id"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sc ScoreBackup
		if err := rows.Scan(&sc.GroupID, &sc.BestScore, &sc.UpdatedAt); err != nil {
			return err
		}
		backup.Scores = append(backup.Scores, sc)
	}
	return rows.Err()
}

func (s *BackupService) exportSettings(backup *BackupData) error {
	query := "SELECT key, value FROM settings ORDER BY key"
	rows, err := s.db.Query(query)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var st SettingBackup
		if err := rows.Scan(&st.Key, &st.Value); err != nil {
			return err
		}
		backup.Settings = append(backup.Settings, st)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	log.Printf("Importing %d users...", len(users))
	for _, u := range users {
		query := "INSERT INTO users (id, email, password_hash, name, oauth_provider, oauth_subject, is_admin, created_at, updated_at) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, u.ID, u.Email, u.PasswordHash, u.Name, nullIfEmpty(u.OAuthProvider), nullIfEmpty(u.OAuthSubject), u.IsAdmin, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import user %d: %w", u.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importShortcuts(shortcuts []ShortcutBackup) error {
	log.Printf("Importing %d shortcuts...", len(shortcuts))
	for _, sc := range shortcuts {
		query := "INSERT INTO shortcuts (id, term, meaning, created_at, updated_at) VALUES (?, ?, ?, ?, ?)"
		_, err := s.db.Exec(query, sc.ID, sc.Term, sc.Meaning, sc.CreatedAt, sc.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import shortcut %d: %w", sc.ID, err)
		}
	}
	return nil
}

func (s *BackupService) importGroups(groups []GroupBackup) error {
	log.Printf("Importing %d groups...", len(groups))
	for _, g := range groups {
		query := "INSERT INTO study_groups (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)"
		_, err := s.db.Exec(query, g.ID, g.Name, g.CreatedAt, g.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import group %d: %w", g.ID, err)
		}

		for _, m := range g.Members {
			memberQuery := "INSERT INTO group_shortcuts (group_id, shortcut_id, position) VALUES (?, ?, ?)"
			_, err := s.db.Exec(memberQuery, g.ID, m.ShortcutID, m.Position)
			if err != nil {
				return fmt.Errorf("failed to import membership %d for group %d: %w", m.ShortcutID, g.ID, err)
			}
		}
	}
	return nil
}

func (s *BackupService) importScores(scores []ScoreBackup) error {
	log.Printf("Importing %d scores...", len(scores))
	for _, sc := range scores {
		query := "INSERT INTO group_scores (group_id, best_score, updated_at) VALUES (?, ?, ?)"
		_, err := s.db.Exec(query, sc.GroupID, sc.BestScore, sc.UpdatedAt)
		if err != nil {
			return fmt.Errorf("failed to import score for group %d: %w", sc.GroupID, err)
		}
	}
	return nil
}

func (s *BackupService) importSettings(settings []SettingBackup) error {
	log.Printf("Importing %d settings...", len(settings))
	for _, st := range settings {
		if _, err := s.db.Exec(s.db.GetDialect().UpsertSettingQuery(), st.Key, st.Value); err != nil {
			return fmt.Errorf("failed to import setting %s: %w", st.Key, err)
		}
	}
	return nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
