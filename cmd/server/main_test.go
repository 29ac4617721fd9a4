package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"avshort/internal/database"
	"avshort/internal/handlers"
	"avshort/internal/models"
	"avshort/internal/repository"
	"avshort/internal/security"
	"avshort/internal/service"
)

func TestLoadTemplates(t *testing.T) {
	if _, err := loadTemplates("../../web/templates"); err != nil {
		t.Fatalf("loadTemplates returned error: %v", err)
	}
}

// TestViewGroupRenders drives the group detail page end to end against a
// sqlite database and the real templates, checking the rendered title and
// view model fields.
func TestViewGroupRenders(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	dbPath := filepath.Join(t.TempDir(), "test_server.db")
	db, err := database.Initialize(dbPath)
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	templates, err := loadTemplates("../../web/templates")
	if err != nil {
		t.Fatalf("loadTemplates returned error: %v", err)
	}

	shortcutRepo := repository.NewShortcutRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	scoreRepo := repository.NewScoreRepository(db)

	catalogService := service.NewCatalogService(shortcutRepo, groupRepo)
	practiceService := service.NewPracticeService(shortcutRepo, groupRepo, scoreRepo)

	middleware := handlers.NewMiddleware(nil, security.NewCSRFTokenStore(time.Hour), security.NewRateLimiter(10, time.Minute))
	groupHandler := handlers.NewGroupHandler(catalogService, practiceService, middleware, templates)

	group, err := catalogService.CreateGroup("Radio Calls")
	if err != nil {
		t.Fatalf("CreateGroup returned error: %v", err)
	}
	shortcut, err := catalogService.CreateShortcut("WILCO", "Will comply")
	if err != nil {
		t.Fatalf("CreateShortcut returned error: %v", err)
	}
	if err := catalogService.AddToGroup(group.ID, shortcut.ID); err != nil {
		t.Fatalf("AddToGroup returned error: %v", err)
	}
	if err := scoreRepo.RecordScore(group.ID, 80); err != nil {
		t.Fatalf("RecordScore returned error: %v", err)
	}

	user := &models.User{ID: 1, Email: "pilot@example.com", Name: "Pilot"}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /groups/{id}", func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), handlers.UserContextKey, user)
		groupHandler.ViewGroup(w, r.WithContext(ctx))
	})

	req := httptest.NewRequest(http.MethodGet, "/groups/"+strconv.FormatInt(group.ID, 10), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("GET /groups/%d = %d, want %d", group.ID, rec.Code, http.StatusOK)
	}

	body := rec.Body.String()
	if !strings.Contains(body, "<title>Radio Calls - AvShort</title>") {
		t.Error("rendered page missing group title")
	}
	if strings.Contains(body, "AvShort - AvShort") {
		t.Error("page title suffix duplicated")
	}
	if !strings.Contains(body, "WILCO") {
		t.Error("rendered page missing group member term")
	}
	if !strings.Contains(body, "Best score: <strong>80%</strong>") {
		t.Error("rendered page missing best score")
	}
}
