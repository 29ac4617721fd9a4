package database

import (
	"strings"
	"testing"
)

func TestDialectSQLite(t *testing.T) {
	dialect := NewSQLiteDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "sqlite3" {
			t.Errorf("DriverName() = %v, want sqlite3", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for SQLite")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "sqlite" {
			t.Errorf("MigrationsSubdir() = %v, want sqlite", got)
		}
	})

	t.Run("RewriteQuery leaves placeholders alone", func(t *testing.T) {
		query := "SELECT * FROM shortcuts WHERE id = ? AND term = ?"
		if got := dialect.RewriteQuery(query); got != query {
			t.Errorf("RewriteQuery() = %v, want unchanged", got)
		}
	})

	t.Run("UpsertScoreQuery is guarded", func(t *testing.T) {
		if !strings.Contains(dialect.UpsertScoreQuery(), "excluded.best_score > group_scores.best_score") {
			t.Error("UpsertScoreQuery() should only overwrite strictly greater scores")
		}
	})
}

func TestDialectPostgreSQL(t *testing.T) {
	dialect := NewPostgresDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "postgres" {
			t.Errorf("DriverName() = %v, want postgres", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return false for PostgreSQL")
		}
	})

	t.Run("MigrationsSubdir", func(t *testing.T) {
		if got := dialect.MigrationsSubdir(); got != "postgres" {
			t.Errorf("MigrationsSubdir() = %v, want postgres", got)
		}
	})

	t.Run("RewriteQuery numbers placeholders", func(t *testing.T) {
		query := "INSERT INTO shortcuts (term, meaning) VALUES (?, ?)"
		expected := "INSERT INTO shortcuts (term, meaning) VALUES ($1, $2)"
		if got := dialect.RewriteQuery(query); got != expected {
			t.Errorf("RewriteQuery() = %v, want %v", got, expected)
		}
	})
}

func TestDialectMySQL(t *testing.T) {
	dialect := NewMySQLDialect()

	t.Run("DriverName", func(t *testing.T) {
		if got := dialect.DriverName(); got != "mysql" {
			t.Errorf("DriverName() = %v, want mysql", got)
		}
	})

	t.Run("SupportsLastInsertId", func(t *testing.T) {
		if !dialect.SupportsLastInsertId() {
			t.Error("SupportsLastInsertId() should return true for MySQL")
		}
	})

	t.Run("UpsertScoreQuery stays monotonic", func(t *testing.T) {
		if !strings.Contains(dialect.UpsertScoreQuery(), "GREATEST") {
			t.Error("UpsertScoreQuery() should use GREATEST to keep best scores monotonic")
		}
	})
}

func TestRewritePlaceholdersToNumbered(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		expected string
	}{
		{
			name:     "no placeholders",
			query:    "SELECT COUNT(*) FROM study_groups",
			expected: "SELECT COUNT(*) FROM study_groups",
		},
		{
			name:     "single placeholder",
			query:    "DELETE FROM study_groups WHERE id = ?",
			expected: "DELETE FROM study_groups WHERE id = $1",
		},
		{
			name:     "many placeholders",
			query:    "INSERT INTO group_shortcuts (group_id, shortcut_id, position) VALUES (?, ?, ?)",
			expected: "INSERT INTO group_shortcuts (group_id, shortcut_id, position) VALUES ($1, $2, $3)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rewritePlaceholdersToNumbered(tt.query); got != tt.expected {
				t.Errorf("rewritePlaceholdersToNumbered() = %v, want %v", got, tt.expected)
			}
		})
	}
}
