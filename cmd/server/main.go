package main

import (
	"context"
	"fmt"
	"html/template"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"avshort/internal/config"
	"avshort/internal/database"
	"avshort/internal/handlers"
	"avshort/internal/practice"
	"avshort/internal/repository"
	"avshort/internal/security"
	"avshort/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Load templates
	templates, err := loadTemplates(cfg.TemplatesPath)
	if err != nil {
		log.Fatalf("Failed to load templates: %v", err)
	}

	log.Println("Templates loaded successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	shortcutRepo := repository.NewShortcutRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, settingsRepo, cfg.SessionDuration)
	catalogService := service.NewCatalogService(shortcutRepo, groupRepo)
	practiceService := service.NewPracticeService(shortcutRepo, groupRepo, scoreRepo)
	backupService := service.NewBackupService(db)

	emailService, err := service.NewEmailService(cfg.SESRegion, cfg.SESFromEmail, cfg.SESFromName, cfg.AppBaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize email service: %v", err)
	}

	// Server-side practice session state, keyed by a per-browser cookie
	practiceStore := practice.NewStore()

	// Initialize handlers
	csrfStore := security.NewCSRFTokenStore(12 * time.Hour)
	rateLimiter := security.NewRateLimiter(10, time.Minute)
	middleware := handlers.NewMiddleware(authService, csrfStore, rateLimiter)

	googleOAuth := handlers.NewGoogleOAuth(cfg.GoogleClientID, cfg.GoogleClientSecret, cfg.OAuthRedirectBaseURL)
	authHandler := handlers.NewAuthHandler(authService, emailService, templates, googleOAuth)
	shortcutHandler := handlers.NewShortcutHandler(catalogService, middleware, templates)
	groupHandler := handlers.NewGroupHandler(catalogService, practiceService, middleware, templates)
	practiceHandler := handlers.NewPracticeHandler(practiceService, catalogService, practiceStore, templates)
	adminHandler := handlers.NewAdminHandler(userRepo, settingsRepo, backupService, middleware, templates)

	// Setup routes
	mux := http.NewServeMux()

	// Static files
	mux.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.Dir(cfg.StaticFilesPath))))

	// Public routes
	mux.HandleFunc("GET /", authHandler.Home)
	mux.HandleFunc("GET /login", authHandler.ShowLogin)
	mux.HandleFunc("POST /login", middleware.RateLimit(authHandler.Login))
	mux.HandleFunc("GET /register", authHandler.ShowRegister)
	mux.HandleFunc("POST /register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /logout", authHandler.Logout)
	mux.HandleFunc("GET /auth/google/start", authHandler.StartOAuth)
	mux.HandleFunc("GET /auth/google/callback", authHandler.OAuthCallback)
	mux.HandleFunc("GET /auth/forgot-password", authHandler.ShowForgotPassword)
	mux.HandleFunc("POST /auth/forgot-password", middleware.RateLimit(authHandler.ForgotPassword))
	mux.HandleFunc("GET /auth/reset-password", authHandler.ShowResetPassword)
	mux.HandleFunc("POST /auth/reset-password", middleware.RateLimit(authHandler.ResetPassword))

	// Practice routes (no account needed)
	mux.HandleFunc("GET /practice", practiceHandler.ShowHome)
	mux.HandleFunc("POST /practice/start/{scope}", practiceHandler.StartPractice)
	mux.HandleFunc("GET /practice/session", practiceHandler.ShowQuestion)
	mux.HandleFunc("POST /practice/session/answer", practiceHandler.SubmitAnswer)
	mux.HandleFunc("POST /practice/session/skip", practiceHandler.Skip)
	mux.HandleFunc("GET /practice/session/feedback", practiceHandler.ShowFeedback)
	mux.HandleFunc("POST /practice/session/next", practiceHandler.Next)
	mux.HandleFunc("GET /practice/session/results", practiceHandler.ShowResults)
	mux.HandleFunc("POST /practice/exit", practiceHandler.ExitPractice)

	// Catalog routes (require an account)
	mux.HandleFunc("GET /shortcuts", middleware.RequireAuth(shortcutHandler.ShowShortcuts))
	mux.HandleFunc("GET /shortcuts/new", middleware.RequireAuth(shortcutHandler.ShowNewShortcut))
	mux.HandleFunc("POST /shortcuts/create", middleware.RequireAuth(middleware.CSRFProtect(shortcutHandler.CreateShortcut)))
	mux.HandleFunc("GET /shortcuts/{id}/edit", middleware.RequireAuth(shortcutHandler.ShowEditShortcut))
	mux.HandleFunc("POST /shortcuts/{id}/update", middleware.RequireAuth(middleware.CSRFProtect(shortcutHandler.UpdateShortcut)))
	mux.HandleFunc("POST /shortcuts/{id}/delete", middleware.RequireAuth(middleware.CSRFProtect(shortcutHandler.DeleteShortcut)))

	mux.HandleFunc("GET /groups", middleware.RequireAuth(groupHandler.ShowGroups))
	mux.HandleFunc("POST /groups/create", middleware.RequireAuth(middleware.CSRFProtect(groupHandler.CreateGroup)))
	mux.HandleFunc("GET /groups/{id}", middleware.RequireAuth(groupHandler.ViewGroup))
	mux.HandleFunc("POST /groups/{id}/rename", middleware.RequireAuth(middleware.CSRFProtect(groupHandler.RenameGroup)))
	mux.HandleFunc("POST /groups/{id}/delete", middleware.RequireAuth(middleware.CSRFProtect(groupHandler.DeleteGroup)))
	mux.HandleFunc("POST /groups/{id}/shortcuts/add", middleware.RequireAuth(middleware.CSRFProtect(groupHandler.AddShortcut)))
	mux.HandleFunc("POST /groups/{id}/shortcuts/{shortcutId}/remove", middleware.RequireAuth(middleware.CSRFProtect(groupHandler.RemoveShortcut)))

	// Admin routes
	mux.HandleFunc("GET /admin", middleware.RequireAdmin(adminHandler.ShowDashboard))
	mux.HandleFunc("POST /admin/invite-only", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.ToggleInviteOnlyMode)))
	mux.HandleFunc("POST /admin/users/{id}/delete", middleware.RequireAdmin(middleware.CSRFProtect(adminHandler.DeleteUser)))
	mux.HandleFunc("GET /admin/export", middleware.RequireAdmin(adminHandler.ExportDatabase))
	mux.HandleFunc("POST /admin/import", middleware.RequireAdmin(adminHandler.ImportDatabase))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start background cleanup
	go runCleanup(authService, practiceStore)

	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Shutdown error: %v", err)
	}
}

// loadTemplates loads all template files
func loadTemplates(templatesPath string) (*template.Template, error) {
	baseTemplate := filepath.Join(templatesPath, "base.tmpl")

	patterns := []string{
		filepath.Join(templatesPath, "auth/*.tmpl"),
		filepath.Join(templatesPath, "catalog/*.tmpl"),
		filepath.Join(templatesPath, "practice/*.tmpl"),
		filepath.Join(templatesPath, "admin/*.tmpl"),
	}

	var files []string
	files = append(files, baseTemplate)

	for _, pattern := range patterns {
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to glob pattern %s: %w", pattern, err)
		}
		files = append(files, matches...)
	}

	funcMap := template.FuncMap{
		"formatDate": func(t time.Time) string {
			return t.Format("Jan 2, 2006")
		},
		"add": func(a, b int) int {
			return a + b
		},
		"sub": func(a, b int) int {
			return a - b
		},
		"pct": func(part, whole int) int {
			if whole == 0 {
				return 0
			}
			return part * 100 / whole
		},
		"deref": func(n *int) int {
			if n == nil {
				return 0
			}
			return *n
		},
	}

	tmpl, err := template.New("").Funcs(funcMap).ParseFiles(files...)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return tmpl, nil
}

// runCleanup periodically removes expired sessions, reset tokens and
// abandoned practice state
func runCleanup(authService *service.AuthService, store *practice.Store) {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		if err := authService.CleanupExpiredSessions(); err != nil {
			log.Printf("Error cleaning up expired sessions: %v", err)
		}
		if err := authService.CleanupExpiredResetTokens(); err != nil {
			log.Printf("Error cleaning up expired reset tokens: %v", err)
		}
		if swept := store.Sweep(24 * time.Hour); swept > 0 {
			log.Printf("Swept %d abandoned practice sessions", swept)
		}
	}
}
