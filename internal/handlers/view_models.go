package handlers

import (
	"avshort/internal/models"
	"avshort/internal/practice"
)

type LoginViewData struct {
	Title    string
	OAuthURL string
	Error    string
	Email    string
	Success  string
}

type RegisterViewData struct {
	Title    string
	OAuthURL string
	Error    string
	Email    string
	Name     string
}

type ForgotPasswordViewData struct {
	Title   string
	Success string
	Error   string
}

type ResetPasswordViewData struct {
	Title string
	Token string
	Error string
}

type ShortcutListViewData struct {
	Title     string
	User      *models.User
	Shortcuts []models.Shortcut
	CSRFToken string
	Error     string
}

type ShortcutFormViewData struct {
	Title     string
	User      *models.User
	Shortcut  *models.Shortcut
	CSRFToken string
	Error     string
}

type GroupListViewData struct {
	Title     string
	User      *models.User
	Groups    []models.GroupSummary
	CSRFToken string
	Error     string
}

type GroupDetailViewData struct {
	Title     string
	User      *models.User
	Group     *models.GroupWithShortcuts
	Available []models.Shortcut
	BestScore *int
	CSRFToken string
	Error     string
}

type PracticeHomeViewData struct {
	Title         string
	User          *models.User
	Groups        []models.GroupSummary
	ShortcutCount int
	Error         string
}

type PracticeQuestionViewData struct {
	Title     string
	ScopeName string
	Term      string
	Answered  int
	Total     int
	Correct   int
}

type PracticeFeedbackViewData struct {
	Title     string
	ScopeName string
	Attempt   practice.Attempt
	Answered  int
	Total     int
	Correct   int
	IsLast    bool
}

type PracticeResultsViewData struct {
	Title     string
	ScopeName string
	Score     int
	Correct   int
	Total     int
	NewBest   bool
	Recorded  bool
	Attempts  []practice.Attempt
	GroupID   int64
	IsAll     bool
}

type AdminDashboardViewData struct {
	Title     string
	User      *models.User
	Users     []models.User
	Stats     *DatabaseStats
	InviteOnly bool
	CSRFToken string
	Error     string
	Success   string
}

// DatabaseStats summarises table row counts for the admin page
type DatabaseStats struct {
	Users     int
	Shortcuts int
	Groups    int
	Scores    int
}
