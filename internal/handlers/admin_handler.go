package handlers

import (
	"fmt"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"avshort/internal/repository"
	"avshort/internal/service"
)

// AdminHandler handles admin HTTP requests
type AdminHandler struct {
	userRepo      *repository.UserRepository
	settingsRepo  *repository.SettingsRepository
	backupService *service.BackupService
	middleware    *Middleware
	templates     *template.Template
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(userRepo *repository.UserRepository, settingsRepo *repository.SettingsRepository, backupService *service.BackupService, middleware *Middleware, templates *template.Template) *AdminHandler {
	return &AdminHandler{
		userRepo:      userRepo,
		settingsRepo:  settingsRepo,
		backupService: backupService,
		middleware:    middleware,
		templates:     templates,
	}
}

// ShowDashboard displays the admin dashboard
func (h *AdminHandler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	h.renderDashboard(w, r, "", "")
}

// ToggleInviteOnlyMode flips the invite-only registration setting
func (h *AdminHandler) ToggleInviteOnlyMode(w http.ResponseWriter, r *http.Request) {
	enabled := h.settingsRepo.IsInviteOnlyMode()
	if err := h.settingsRepo.SetInviteOnlyMode(!enabled); err != nil {
		h.renderDashboard(w, r, "Failed to update registration mode", "")
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// DeleteUser removes a user account
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	admin := GetUserFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid user ID", "", err)
		return
	}

	if admin != nil && admin.ID == id {
		h.renderDashboard(w, r, "You cannot delete your own account", "")
		return
	}

	if err := h.userRepo.DeleteUser(id); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error deleting user", err)
		return
	}

	http.Redirect(w, r, "/admin", http.StatusSeeOther)
}

// ExportDatabase streams a JSON backup of the whole database
func (h *AdminHandler) ExportDatabase(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("avshort_backup_%s.json", timestamp)
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))

	if err := h.backupService.ExportToWriter(w); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to export database", "Error exporting database", err)
		return
	}

	if user != nil {
		log.Printf("Database exported by admin user %s", user.Email)
	}
}

// ImportDatabase restores a database backup from an uploaded file
func (h *AdminHandler) ImportDatabase(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	// 10MB max upload
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondWithError(w, http.StatusBadRequest, "Failed to parse form", "", err)
		return
	}

	if !h.middleware.ValidateCSRF(r) {
		respondWithError(w, http.StatusForbidden, "Invalid CSRF token", "CSRF validation failed on import", nil)
		return
	}

	file, _, err := r.FormFile("backup_file")
	if err != nil {
		h.renderDashboard(w, r, "Please select a backup file", "")
		return
	}
	defer file.Close()

	clearData := r.FormValue("clear_data") == "true"
	if clearData {
		if user != nil {
			log.Printf("Admin %s requested database clear before import", user.Email)
		}
		if err := h.clearDatabase(); err != nil {
			log.Printf("Error clearing database: %v", err)
			h.renderDashboard(w, r, "Failed to clear database: "+err.Error(), "")
			return
		}
	}

	if err := h.backupService.ImportFromReader(file); err != nil {
		log.Printf("Error importing database: %v", err)
		h.renderDashboard(w, r, "Failed to import database: "+err.Error(), "")
		return
	}

	h.renderDashboard(w, r, "", "Database imported successfully!")
}

func (h *AdminHandler) renderDashboard(w http.ResponseWriter, r *http.Request, errMsg, successMsg string) {
	user := GetUserFromContext(r.Context())

	users, err := h.userRepo.GetAllUsers()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing users", err)
		return
	}

	stats, err := h.getDatabaseStats()
	if err != nil {
		log.Printf("Error getting database stats: %v", err)
		stats = &DatabaseStats{}
	}

	data := AdminDashboardViewData{
		Title:      "Admin - AvShort",
		User:       user,
		Users:      users,
		Stats:      stats,
		InviteOnly: h.settingsRepo.IsInviteOnlyMode(),
		CSRFToken:  h.getCSRFToken(r),
		Error:      errMsg,
		Success:    successMsg,
	}

	if err := h.templates.ExecuteTemplate(w, "admin_dashboard.tmpl", data); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error rendering admin template", err)
	}
}

func (h *AdminHandler) getDatabaseStats() (*DatabaseStats, error) {
	stats := &DatabaseStats{}
	db := h.backupService.GetDB()

	if err := db.QueryRow("SELECT COUNT(*) FROM users").Scan(&stats.Users); err != nil {
		return nil, err
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM shortcuts").Scan(&stats.Shortcuts); err != nil {
		return nil, err
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM study_groups").Scan(&stats.Groups); err != nil {
		return nil, err
	}
	if err := db.QueryRow("SELECT COUNT(*) FROM group_scores").Scan(&stats.Scores); err != nil {
		return nil, err
	}

	return stats, nil
}

func (h *AdminHandler) clearDatabase() error {
	db := h.backupService.GetDB()

	// Delete in reverse order of dependencies
	tables := []string{
		"group_scores",
		"group_shortcuts",
		"study_groups",
		"shortcuts",
		"password_reset_tokens",
		"sessions",
		"users",
		"settings",
	}

	for _, table := range tables {
		query := fmt.Sprintf("DELETE FROM %s", table)
		if _, err := db.Exec(query); err != nil {
			if !strings.Contains(err.Error(), "no such table") &&
				!strings.Contains(err.Error(), "doesn't exist") &&
				!strings.Contains(err.Error(), "does not exist") {
				return fmt.Errorf("failed to clear table %s: %w", table, err)
			}
		}
	}

	return nil
}

// getCSRFToken is a helper to get CSRF token from session
func (h *AdminHandler) getCSRFToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	token, _ := h.middleware.GetCSRFToken(cookie.Value)
	return token
}
