package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"avshort/internal/service"
)

// GroupHandler handles group management HTTP requests
type GroupHandler struct {
	catalogService  *service.CatalogService
	practiceService *service.PracticeService
	middleware      *Middleware
	templates       *template.Template
}

// NewGroupHandler creates a new group handler
func NewGroupHandler(catalogService *service.CatalogService, practiceService *service.PracticeService, middleware *Middleware, templates *template.Template) *GroupHandler {
	return &GroupHandler{
		catalogService:  catalogService,
		practiceService: practiceService,
		middleware:      middleware,
		templates:       templates,
	}
}

// ShowGroups displays all groups with counts and best scores
func (h *GroupHandler) ShowGroups(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	groups, err := h.catalogService.ListGroups()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing groups", err)
		return
	}

	data := GroupListViewData{
		Title:     "Groups - AvShort",
		User:      user,
		Groups:    groups,
		CSRFToken: h.getCSRFToken(r),
		Error:     r.URL.Query().Get("error"),
	}

	if err := h.templates.ExecuteTemplate(w, "groups.tmpl", data); err != nil {
		log.Printf("Error rendering groups template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// CreateGroup handles group creation
func (h *GroupHandler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	name := r.FormValue("name")

	group, err := h.catalogService.CreateGroup(name)
	if err != nil {
		http.Redirect(w, r, "/groups?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/groups/"+strconv.FormatInt(group.ID, 10), http.StatusSeeOther)
}

// ViewGroup displays a group with its member shortcuts
func (h *GroupHandler) ViewGroup(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())
	if user == nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", "", err)
		return
	}

	group, err := h.catalogService.GetGroup(id)
	if err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error getting group", err)
		return
	}

	available, err := h.catalogService.AvailableShortcuts(id)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing available shortcuts", err)
		return
	}

	bestScore, err := h.practiceService.BestScore(id)
	if err != nil {
		log.Printf("Error getting best score for group %d: %v", id, err)
	}

	data := GroupDetailViewData{
		Title:     group.Group.Name + " - AvShort",
		User:      user,
		Group:     group,
		Available: available,
		BestScore: bestScore,
		CSRFToken: h.getCSRFToken(r),
		Error:     r.URL.Query().Get("error"),
	}

	if err := h.templates.ExecuteTemplate(w, "group_detail.tmpl", data); err != nil {
		log.Printf("Error rendering group detail template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// RenameGroup handles group renaming
func (h *GroupHandler) RenameGroup(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", "", err)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	name := r.FormValue("name")
	if err := h.catalogService.RenameGroup(id, name); err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/groups/"+strconv.FormatInt(id, 10)+"?error="+url.QueryEscape(err.Error()), http.StatusSeeOther)
		return
	}

	http.Redirect(w, r, "/groups/"+strconv.FormatInt(id, 10), http.StatusSeeOther)
}

// DeleteGroup handles group deletion
func (h *GroupHandler) DeleteGroup(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", "", err)
		return
	}

	if err := h.catalogService.DeleteGroup(id); err != nil {
		if errors.Is(err, service.ErrGroupNotFound) {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error deleting group", err)
		return
	}

	http.Redirect(w, r, "/groups", http.StatusSeeOther)
}

// AddShortcut links a shortcut into a group
func (h *GroupHandler) AddShortcut(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", "", err)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	shortcutID, err := strconv.ParseInt(r.FormValue("shortcut_id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid shortcut ID", "", err)
		return
	}

	if err := h.catalogService.AddToGroup(groupID, shortcutID); err != nil {
		if errors.Is(err, service.ErrGroupNotFound) || errors.Is(err, service.ErrShortcutNotFound) {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error adding shortcut to group", err)
		return
	}

	http.Redirect(w, r, "/groups/"+strconv.FormatInt(groupID, 10), http.StatusSeeOther)
}

// RemoveShortcut unlinks a shortcut from a group
func (h *GroupHandler) RemoveShortcut(w http.ResponseWriter, r *http.Request) {
	groupID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid group ID", "", err)
		return
	}

	shortcutID, err := strconv.ParseInt(r.PathValue("shortcutId"), 10, 64)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid shortcut ID", "", err)
		return
	}

	if err := h.catalogService.RemoveFromGroup(groupID, shortcutID); err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error removing shortcut from group", err)
		return
	}

	http.Redirect(w, r, "/groups/"+strconv.FormatInt(groupID, 10), http.StatusSeeOther)
}

// getCSRFToken is a helper to get CSRF token from session
func (h *GroupHandler) getCSRFToken(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	token, _ := h.middleware.GetCSRFToken(cookie.Value)
	return token
}
