package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/templui/rincon/internal/model"
	"github.com/templui/rincon/internal/repository"
	"github.com/templui/rincon/internal/validation"
)

const (
	SessionCookieName = "auth_token"

	PasswordResetAck     = "If the email exists, a reset link will be sent"
	PasswordResetSuccess = "Password reset successful"
)

// AuthConfig carries the settings AuthService needs from the app config.
type AuthConfig struct {
	SessionTTL    time.Duration
	AppURL        string
	AppName       string
	SecureCookies bool
}

// Session is an issued session token.
type Session struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type AuthService struct {
	users     repository.UserRepository
	hasher    PasswordHasher
	tokens    *TokenService
	mailer    Mailer
	cfg       AuthConfig
	dummyHash string
}

func NewAuthService(
	users repository.UserRepository,
	hasher PasswordHasher,
	tokens *TokenService,
	mailer Mailer,
	cfg AuthConfig,
) (*AuthService, error) {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 60 * time.Minute
	}

	// Compared against on unknown usernames so login timing stays uniform
	dummyHash, err := hasher.Hash("rincon-login-timing-equalizer")
	if err != nil {
		return nil, fmt.Errorf("failed to prepare login hash: %w", err)
	}

	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		mailer:    mailer,
		cfg:       cfg,
		dummyHash: dummyHash,
	}, nil
}

// Register creates a user and returns a session for them.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	email = normalizeEmail(email)

	err := validation.ValidateUsername(username)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidUsername, err)
	}
	err = validation.ValidateEmail(email)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidEmail, err)
	}
	err = validation.ValidatePassword(password)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWeakPassword, err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
	}

	err = s.users.WithTx(ctx, func(repo repository.UserRepository) error {
		_, err := repo.ByUsernameOrEmail(ctx, username, email)
		if err == nil {
			return ErrDuplicateCredential
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return fmt.Errorf("failed to check existing user: %w", err)
		}

		err = repo.Create(ctx, user)
		if errors.Is(err, repository.ErrDuplicateUser) {
			return ErrDuplicateCredential
		}
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("user registered", "user_id", user.ID, "username", user.Username)
	return s.issueSession(user.Username)
}

// Login checks a username and password and returns a session.
func (s *AuthService) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)

	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return s.issueSession(user.Username)
}

// RequestPasswordReset emails a reset link when the address is registered.
// The returned acknowledgement is identical either way.
func (s *AuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	email = normalizeEmail(email)

	if validation.ValidateEmail(email) != nil {
		slog.Info("password reset requested for invalid email")
		return PasswordResetAck, nil
	}

	user, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Silently succeed to prevent email enumeration
			slog.Info("password reset requested for non-existent email")
			return PasswordResetAck, nil
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	token, err := s.tokens.IssueReset(ctx, user)
	if err != nil {
		return "", err
	}

	resetURL := fmt.Sprintf("%s/reset-password/%s", strings.TrimSuffix(s.cfg.AppURL, "/"), token)
	subject, body := passwordResetEmailTemplate(user.Username, resetURL, s.cfg.AppName, s.tokens.ResetTTL())

	err = s.mailer.Send(ctx, user.Email, subject, body)
	if err != nil {
		slog.Warn("failed to send password reset email", "error", err, "user_id", user.ID)
	} else {
		slog.Info("password reset link sent", "user_id", user.ID)
	}

	return PasswordResetAck, nil
}

// PerformPasswordReset sets a new password using a reset token.
func (s *AuthService) PerformPasswordReset(ctx context.Context, token, newPassword string) (string, error) {
	err := validation.ValidatePassword(newPassword)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrWeakPassword, err)
	}

	err = s.tokens.ConsumeReset(ctx, token, newPassword)
	if err != nil {
		return "", err
	}

	slog.Info("password reset completed")
	return PasswordResetSuccess, nil
}

// Authenticate resolves a session token to its user. The returned user
// carries no credential material.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	username, err := s.tokens.VerifySession(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}

	user, err := s.users.ByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return user.Public(), nil
}

func (s *AuthService) issueSession(username string) (*Session, error) {
	token, expiresAt, err := s.tokens.IssueSession(username, s.cfg.SessionTTL)
	if err != nil {
		return nil, err
	}

	return &Session{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *AuthService) SetSessionCookie(w http.ResponseWriter, session *Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    session.AccessToken,
		Expires:  session.ExpiresAt,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *AuthService) ClearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.cfg.SecureCookies,
		SameSite: http.SameSiteLaxMode,
	})
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
