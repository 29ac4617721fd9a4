package handlers

const (
	SessionCookieName  = "session_id"
	PracticeCookieName = "practice_id"

	ErrInvalidFormData     = "Invalid form data"
	ErrUnauthorized        = "Unauthorized"
	ErrInternalServerError = "Internal server error"
)
