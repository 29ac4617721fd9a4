package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"

	"avshort/internal/models"
	"avshort/internal/service"
)

// ShortcutHandler handles shortcut catalog HTTP requests
type ShortcutHandler struct {
	catalogService *service.CatalogService
	middleware     *Middleware
	templates      *template.Template
}

// NewShortcutHandler creates a new shortcut handler
func NewShortcutHandler(catalogService *service.CatalogService, middleware *Middleware, templates *template.Template) *ShortcutHandler {
	return &ShortcutHandler{
		catalogService: catalogService,
		middleware:     middleware,
		templates:      templates,
	}
}

// ShowShortcuts displays the shortcut catalog
func (h *ShortcutHandler) ShowShortcuts(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	shortcuts, err := h.catalogService.ListShortcuts()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing shortcuts", err)
		return
	}

	data := ShortcutListViewData{
		Title:     "Shortcuts - AvShort",
		User:      user,
		Shortcuts: shortcuts,
		CSRFToken: h.getCSRFToken(r),
		Error:     r.URL.Query().Get("error"),
	}

	if err := h.templates.ExecuteTemplate(w, "shortcuts.tmpl", data); err != nil {
		log.Printf("Error rendering shortcuts template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// ShowNewShortcut renders the create-shortcut form
func (h *ShortcutHandler) ShowNewShortcut(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	data := ShortcutFormViewData{
		Title:     "New Shortcut - AvShort",
		User:      user,
		CSRFToken: h.getCSRFToken(r),
	}

	if err := h.templates.ExecuteTemplate(w, "shortcut_form.tmpl", data); err != nil {
		log.Printf("Error rendering shortcut form template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// CreateShortcut handles shortcut creation
func (h *ShortcutHandler) CreateShortcut(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	term := r.FormValue("term")
	meaning := r.FormValue("meaning")

	if _, err := h.catalogService.CreateShortcut(term, meaning); err != nil {
		h.renderFormError(w, r, "New Shortcut - AvShort", nil, err)
		return
	}

	http.Redirect(w, r, "/shortcuts", http.StatusSeeOther)
}

// ShowEditShortcut renders the edit form for one shortcut
func (h *ShortcutHandler) ShowEditShortcut(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid shortcut ID", "", err)
		return
	}

	shortcut, err := h.catalogService.GetShortcut(id)
	if err != nil {
		if errors.Is(err, service.ErrShortcutNotFound) {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error getting shortcut", err)
		return
	}

	data := ShortcutFormViewData{
		Title:     "Edit Shortcut - AvShort",
		User:      user,
		Shortcut:  shortcut,
		CSRFToken: h.getCSRFToken(r),
	}

	if err := h.templates.ExecuteTemplate(w, "shortcut_form.tmpl", data); err != nil {
		log.Printf("Error rendering shortcut form template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// UpdateShortcut handles shortcut edits
func (h *ShortcutHandler) UpdateShortcut(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid shortcut ID", "", err)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	term := r.FormValue("term")
	meaning := r.FormValue("meaning")

	if _, err := h.catalogService.UpdateShortcut(id, term, meaning); err != nil {
		if errors.Is(err, service.ErrShortcutNotFound) {
			http.NotFound(w, r)
			return
		}
		h.renderFormError(w, r, "Edit Shortcut - AvShort", &models.Shortcut{ID: id, Term: term, Meaning: meaning}, err)
		return
	}

	http.Redirect(w, r, "/shortcuts", http.StatusSeeOther)
}

// DeleteShortcut handles shortcut deletion
func (h *ShortcutHandler) DeleteShortcut(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid shortcut ID", "", err)
		return
	}

	if err := h.catalogService.DeleteShortcut(id); err != nil {
		if errors.Is(err, service.ErrShortcutNotFound) {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error deleting shortcut", err)
		return
	}

	http.Redirect(w, r, "/shortcuts", http.StatusSeeOther)
}

func (h *ShortcutHandler) renderFormError(w http.ResponseWriter, r *http.Request, title string, shortcut *models.Shortcut, formErr error) {
	user := GetUserFromContext(r.Context())

	data := ShortcutFormViewData{
		Title:     title,
		User:      user,
		Shortcut:  shortcut,
		CSRFToken: h.getCSRFToken(r),
		Error:     formErr.Error(),
	}

	w.WriteHeader(http.StatusBadRequest)
	if err := h.templates.ExecuteTemplate(w, "shortcut_form.tmpl", data); err != nil {
		log.Printf("Error rendering shortcut form template: %v", err)
	}
}

// getCSRFToken is a helper to get CSRF token from session
func (h *ShortcutHandler) getCSRFToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	token, _ := h.middleware.GetCSRFToken(cookie.Value)
	return token
}
