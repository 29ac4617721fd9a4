package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"
	"time"

	"avshort/internal/practice"
	"avshort/internal/security"
	"avshort/internal/service"
)

// PracticeHandler handles practice session HTTP requests. Session state
// lives server-side in the store, keyed by a per-browser cookie, so
// practicing does not require an account.
type PracticeHandler struct {
	practiceService *service.PracticeService
	catalogService  *service.CatalogService
	store           *practice.Store
	templates       *template.Template
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(practiceService *service.PracticeService, catalogService *service.CatalogService, store *practice.Store, templates *template.Template) *PracticeHandler {
	return &PracticeHandler{
		practiceService: practiceService,
		catalogService:  catalogService,
		store:           store,
		templates:       templates,
	}
}

// ShowHome displays the practice landing page with all practicable scopes
func (h *PracticeHandler) ShowHome(w http.ResponseWriter, r *http.Request) {
	user := GetUserFromContext(r.Context())

	groups, err := h.catalogService.ListGroups()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing groups", err)
		return
	}

	shortcuts, err := h.catalogService.ListShortcuts()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error listing shortcuts", err)
		return
	}

	data := PracticeHomeViewData{
		Title:         "Practice - AvShort",
		User:          user,
		Groups:        groups,
		ShortcutCount: len(shortcuts),
		Error:         r.URL.Query().Get("error"),
	}

	if err := h.templates.ExecuteTemplate(w, "practice_home.tmpl", data); err != nil {
		log.Printf("Error rendering practice home template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// StartPractice starts a new session over a scope ("all" or a group ID)
func (h *PracticeHandler) StartPractice(w http.ResponseWriter, r *http.Request) {
	scopeID := r.PathValue("scope")

	active, err := h.practiceService.StartSession(scopeID)
	if err != nil {
		switch {
		case errors.Is(err, practice.ErrEmptySession):
			http.Redirect(w, r, "/practice?error="+url.QueryEscape("Nothing to practice in that selection yet"), http.StatusSeeOther)
		case errors.Is(err, service.ErrGroupNotFound), errors.Is(err, service.ErrInvalidScope):
			http.NotFound(w, r)
		default:
			respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error starting practice session", err)
		}
		return
	}

	practiceID := h.ensurePracticeID(w, r)
	h.store.Put(practiceID, active)

	http.Redirect(w, r, "/practice/session", http.StatusSeeOther)
}

// ShowQuestion displays the current question
func (h *PracticeHandler) ShowQuestion(w http.ResponseWriter, r *http.Request) {
	active, ok := h.activeSession(r)
	if !ok {
		http.Redirect(w, r, "/practice", http.StatusSeeOther)
		return
	}

	if active.Session.Complete() {
		http.Redirect(w, r, "/practice/session/results", http.StatusSeeOther)
		return
	}
	if active.Session.Pending() {
		http.Redirect(w, r, "/practice/session/feedback", http.StatusSeeOther)
		return
	}

	current, err := active.Session.Current()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error getting current question", err)
		return
	}

	answered, total := active.Session.Progress()
	data := PracticeQuestionViewData{
		Title:     "Practice - AvShort",
		ScopeName: active.Scope.Name,
		Term:      current.Term,
		Answered:  answered,
		Total:     total,
		Correct:   active.Session.CorrectCount(),
	}

	if err := h.templates.ExecuteTemplate(w, "question.tmpl", data); err != nil {
		log.Printf("Error rendering question template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// SubmitAnswer records an answer for the current question
func (h *PracticeHandler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	active, ok := h.activeSession(r)
	if !ok {
		http.Redirect(w, r, "/practice", http.StatusSeeOther)
		return
	}

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	answer := r.FormValue("answer")
	if _, err := active.Session.Submit(answer); err != nil {
		if errors.Is(err, practice.ErrAttemptPending) {
			http.Redirect(w, r, "/practice/session/feedback", http.StatusSeeOther)
			return
		}
		if errors.Is(err, practice.ErrSessionComplete) {
			http.Redirect(w, r, "/practice/session/results", http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error submitting answer", err)
		return
	}

	http.Redirect(w, r, "/practice/session/feedback", http.StatusSeeOther)
}

// Skip records the current question as not known
func (h *PracticeHandler) Skip(w http.ResponseWriter, r *http.Request) {
	active, ok := h.activeSession(r)
	if !ok {
		http.Redirect(w, r, "/practice", http.StatusSeeOther)
		return
	}

	if err := active.Session.Skip(); err != nil {
		if errors.Is(err, practice.ErrAttemptPending) {
			http.Redirect(w, r, "/practice/session/feedback", http.StatusSeeOther)
			return
		}
		if errors.Is(err, practice.ErrSessionComplete) {
			http.Redirect(w, r, "/practice/session/results", http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error skipping question", err)
		return
	}

	http.Redirect(w, r, "/practice/session/feedback", http.StatusSeeOther)
}

// ShowFeedback displays the outcome of the last answered question
func (h *PracticeHandler) ShowFeedback(w http.ResponseWriter, r *http.Request) {
	active, ok := h.activeSession(r)
	if !ok {
		http.Redirect(w, r, "/practice", http.StatusSeeOther)
		return
	}

	attempt, ok := active.Session.LastAttempt()
	if !ok || !active.Session.Pending() {
		http.Redirect(w, r, "/practice/session", http.StatusSeeOther)
		return
	}

	answered, total := active.Session.Progress()
	data := PracticeFeedbackViewData{
		Title:     "Practice - AvShort",
		ScopeName: active.Scope.Name,
		Attempt:   attempt,
		Answered:  answered,
		Total:     total,
		Correct:   active.Session.CorrectCount(),
		IsLast:    answered == total,
	}

	if err := h.templates.ExecuteTemplate(w, "feedback.tmpl", data); err != nil {
		log.Printf("Error rendering feedback template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// Next advances past the feedback screen to the next question or results
func (h *PracticeHandler) Next(w http.ResponseWriter, r *http.Request) {
	active, ok := h.activeSession(r)
	if !ok {
		http.Redirect(w, r, "/practice", http.StatusSeeOther)
		return
	}

	if err := active.Session.Advance(); err != nil {
		if errors.Is(err, practice.ErrSessionComplete) {
			http.Redirect(w, r, "/practice/session/results", http.StatusSeeOther)
			return
		}
		if errors.Is(err, practice.ErrNoAttemptPending) {
			http.Redirect(w, r, "/practice/session", http.StatusSeeOther)
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error advancing session", err)
		return
	}

	if active.Session.Complete() {
		http.Redirect(w, r, "/practice/session/results", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/practice/session", http.StatusSeeOther)
}

// ShowResults displays the final score, records it in the ledger for
// group scopes, and discards the session state.
func (h *PracticeHandler) ShowResults(w http.ResponseWriter, r *http.Request) {
	practiceID, ok := h.practiceID(r)
	if !ok {
		http.Redirect(w, r, "/practice", http.StatusSeeOther)
		return
	}
	active := h.store.Get(practiceID)
	if active == nil {
		http.Redirect(w, r, "/practice", http.StatusSeeOther)
		return
	}

	if !active.Session.Complete() {
		http.Redirect(w, r, "/practice/session", http.StatusSeeOther)
		return
	}

	score, newBest, err := h.practiceService.FinishSession(active)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Error finishing session", err)
		return
	}

	_, total := active.Session.Progress()
	data := PracticeResultsViewData{
		Title:     "Results - AvShort",
		ScopeName: active.Scope.Name,
		Score:     score,
		Correct:   active.Session.CorrectCount(),
		Total:     total,
		NewBest:   newBest,
		Recorded:  !active.Scope.All,
		Attempts:  active.Session.Attempts(),
		GroupID:   active.Scope.GroupID,
		IsAll:     active.Scope.All,
	}

	h.store.Delete(practiceID)

	if err := h.templates.ExecuteTemplate(w, "results.tmpl", data); err != nil {
		log.Printf("Error rendering results template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// ExitPractice abandons the current session without recording anything
func (h *PracticeHandler) ExitPractice(w http.ResponseWriter, r *http.Request) {
	if practiceID, ok := h.practiceID(r); ok {
		h.store.Delete(practiceID)
	}
	http.Redirect(w, r, "/practice", http.StatusSeeOther)
}

func (h *PracticeHandler) activeSession(r *http.Request) (*practice.Active, bool) {
	practiceID, ok := h.practiceID(r)
	if !ok {
		return nil, false
	}
	active := h.store.Get(practiceID)
	return active, active != nil
}

func (h *PracticeHandler) practiceID(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(PracticeCookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

func (h *PracticeHandler) ensurePracticeID(w http.ResponseWriter, r *http.Request) string {
	if id, ok := h.practiceID(r); ok {
		return id
	}

	id := security.GenerateSessionID()
	http.SetCookie(w, &http.Cookie{
		Name:     PracticeCookieName,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		Secure:   security.IsSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(24 * time.Hour),
	})
	return id
}
