package handlers

import (
	"html/template"
	"log"
	"net/http"

	"avshort/internal/security"
	"avshort/internal/service"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService  *service.AuthService
	emailService *service.EmailService
	templates    *template.Template
	google       *GoogleOAuth
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService, templates *template.Template, google *GoogleOAuth) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		emailService: emailService,
		templates:    templates,
		google:       google,
	}
}

// ShowLogin renders the login page
func (h *AuthHandler) ShowLogin(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfLoggedIn(w, r) {
		return
	}

	h.renderLogin(w, LoginViewData{
		Title:    "Login - AvShort",
		OAuthURL: h.oauthStartURL(),
	})
}

// Login handles login form submission
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	session, _, err := h.authService.Login(email, password)
	if err != nil {
		h.renderLogin(w, LoginViewData{
			Title:    "Login - AvShort",
			OAuthURL: h.oauthStartURL(),
			Error:    "Invalid email or password",
			Email:    email,
		})
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/practice", http.StatusSeeOther)
}

// ShowRegister renders the registration page
func (h *AuthHandler) ShowRegister(w http.ResponseWriter, r *http.Request) {
	if h.redirectIfLoggedIn(w, r) {
		return
	}

	h.renderRegister(w, RegisterViewData{
		Title:    "Register - AvShort",
		OAuthURL: h.oauthStartURL(),
	})
}

// Register handles registration form submission
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")
	name := r.FormValue("name")

	_, err := h.authService.Register(email, password, name)
	if err != nil {
		h.renderRegister(w, RegisterViewData{
			Title:    "Register - AvShort",
			OAuthURL: h.oauthStartURL(),
			Error:    err.Error(),
			Email:    email,
			Name:     name,
		})
		return
	}

	if h.emailService != nil && h.emailService.IsEnabled() {
		if err := h.emailService.SendWelcomeEmail(r.Context(), email, name); err != nil {
			log.Printf("Failed to send welcome email to %s: %v", email, err)
		}
	}

	// Auto-login after registration
	session, _, err := h.authService.Login(email, password)
	if err != nil {
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, SessionCookieName, session.ID, session.ExpiresAt))
	http.Redirect(w, r, "/practice", http.StatusSeeOther)
}

// Logout handles logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		_ = h.authService.Logout(cookie.Value)
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, SessionCookieName))
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Home renders the home page
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, "/practice", http.StatusSeeOther)
}

// ShowForgotPassword renders the password reset request form
func (h *AuthHandler) ShowForgotPassword(w http.ResponseWriter, r *http.Request) {
	h.renderTemplate(w, "forgot_password.tmpl", ForgotPasswordViewData{
		Title: "Forgot Password - AvShort",
	})
}

// ForgotPassword handles the password reset request
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	email := r.FormValue("email")
	if err := h.authService.RequestPasswordReset(r.Context(), h.emailService, email); err != nil {
		log.Printf("Password reset request failed for %s: %v", email, err)
	}

	// Same response whether or not the address has an account
	h.renderTemplate(w, "forgot_password.tmpl", ForgotPasswordViewData{
		Title:   "Forgot Password - AvShort",
		Success: "If that email has an account, a reset link is on its way.",
	})
}

// ShowResetPassword renders the new-password form for a reset token
func (h *AuthHandler) ShowResetPassword(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")

	valid, err := h.authService.ValidatePasswordResetToken(token)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, "Failed to validate reset token", err)
		return
	}
	if !valid {
		h.renderLogin(w, LoginViewData{
			Title:    "Login - AvShort",
			OAuthURL: h.oauthStartURL(),
			Error:    "This reset link is invalid or has expired.",
		})
		return
	}

	h.renderTemplate(w, "reset_password.tmpl", ResetPasswordViewData{
		Title: "Reset Password - AvShort",
		Token: token,
	})
}

// ResetPassword applies a new password using a reset token
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, ErrInvalidFormData, "", err)
		return
	}

	token := r.FormValue("token")
	password := r.FormValue("password")
	confirm := r.FormValue("confirm_password")

	if password != confirm {
		h.renderTemplate(w, "reset_password.tmpl", ResetPasswordViewData{
			Title: "Reset Password - AvShort",
			Token: token,
			Error: "Passwords do not match",
		})
		return
	}

	if err := h.authService.ResetPassword(token, password); err != nil {
		h.renderTemplate(w, "reset_password.tmpl", ResetPasswordViewData{
			Title: "Reset Password - AvShort",
			Token: token,
			Error: err.Error(),
		})
		return
	}

	h.renderLogin(w, LoginViewData{
		Title:    "Login - AvShort",
		OAuthURL: h.oauthStartURL(),
		Success:  "Password updated. You can log in now.",
	})
}

func (h *AuthHandler) redirectIfLoggedIn(w http.ResponseWriter, r *http.Request) bool {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if _, err := h.authService.ValidateSession(cookie.Value); err == nil {
			http.Redirect(w, r, "/practice", http.StatusSeeOther)
			return true
		}
	}
	return false
}

func (h *AuthHandler) oauthStartURL() string {
	if h.google == nil || !h.google.Enabled() {
		return ""
	}
	return "/auth/google/start"
}

func (h *AuthHandler) renderLogin(w http.ResponseWriter, data LoginViewData) {
	h.renderTemplate(w, "login.tmpl", data)
}

func (h *AuthHandler) renderRegister(w http.ResponseWriter, data RegisterViewData) {
	h.renderTemplate(w, "register.tmpl", data)
}

func (h *AuthHandler) renderTemplate(w http.ResponseWriter, name string, data interface{}) {
	if err := h.templates.ExecuteTemplate(w, name, data); err != nil {
		log.Printf("Error rendering %s: %v", name, err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}
