package handler

import (
	"errors"
	"net/http"

	"github.com/templui/rincon/internal/ctxkeys"
	"github.com/templui/rincon/internal/metrics"
	"github.com/templui/rincon/internal/service"
	"github.com/templui/rincon/internal/ui"
	"github.com/templui/rincon/internal/ui/pages"
)

type AuthHandler struct {
	authService *service.AuthService
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

func (h *AuthHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.Login())
}

func (h *AuthHandler) ForgotPasswordPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.ForgotPassword())
}

func (h *AuthHandler) ResetPasswordPage(w http.ResponseWriter, r *http.Request) {
	ui.Render(w, r, pages.ResetPassword(r.PathValue("token")))
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		JSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.authService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		metrics.RecordAuth("register", metrics.OutcomeFailure)
		switch {
		case errors.Is(err, service.ErrDuplicateCredential):
			JSONError(w, "Email or username already registered", http.StatusBadRequest)
		case errors.Is(err, service.ErrInvalidUsername),
			errors.Is(err, service.ErrInvalidEmail),
			errors.Is(err, service.ErrWeakPassword):
			JSONError(w, err.Error(), http.StatusBadRequest)
		default:
			internalError(w, r, "failed to register user", err)
		}
		return
	}

	metrics.RecordAuth("register", metrics.OutcomeSuccess)
	h.authService.SetSessionCookie(w, session)
	writeJSON(w, http.StatusOK, session)
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		JSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		metrics.RecordAuth("login", metrics.OutcomeFailure)
		if errors.Is(err, service.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			JSONError(w, "Incorrect username or password", http.StatusUnauthorized)
			return
		}
		internalError(w, r, "failed to log in", err)
		return
	}

	metrics.RecordAuth("login", metrics.OutcomeSuccess)
	h.authService.SetSessionCookie(w, session)
	writeJSON(w, http.StatusOK, session)
}

// Logout clears the session cookie. Bearer tokens stay valid until they
// expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, messageResponse{Message: "Logged out"})
}

// LogoutPage is the form-post variant used by the page header.
func (h *AuthHandler) LogoutPage(w http.ResponseWriter, r *http.Request) {
	h.authService.ClearSessionCookie(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		JSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	message, err := h.authService.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		metrics.RecordAuth("forgot-password", metrics.OutcomeFailure)
		internalError(w, r, "failed to request password reset", err)
		return
	}

	metrics.RecordAuth("forgot-password", metrics.OutcomeSuccess)
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	err := decodeJSON(w, r, &req)
	if err != nil {
		JSONError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	message, err := h.authService.PerformPasswordReset(r.Context(), req.Token, req.NewPassword)
	if err != nil {
		metrics.RecordAuth("reset-password", metrics.OutcomeFailure)
		switch {
		case errors.Is(err, service.ErrUnknownToken):
			JSONError(w, "Invalid or expired token", http.StatusBadRequest)
		case errors.Is(err, service.ErrExpiredToken):
			JSONError(w, "Token has expired", http.StatusBadRequest)
		case errors.Is(err, service.ErrWeakPassword):
			JSONError(w, err.Error(), http.StatusBadRequest)
		default:
			internalError(w, r, "failed to reset password", err)
		}
		return
	}

	metrics.RecordAuth("reset-password", metrics.OutcomeSuccess)
	writeJSON(w, http.StatusOK, messageResponse{Message: message})
}

// Me returns the authenticated user.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ctxkeys.User(r.Context()))
}
