package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/templui/rincon/internal/model"
	"github.com/templui/rincon/internal/repository"
)

const resetTokenBytes = 32

type TokenConfig struct {
	Secret   string
	ResetTTL time.Duration
	Issuer   string

	// Now overrides the clock, mainly in tests.
	Now func() time.Time
}

// TokenService issues signed session tokens and single-use reset tokens.
type TokenService struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	secret   []byte
	resetTTL time.Duration
	issuer   string
	now      func() time.Time
}

func NewTokenService(users repository.UserRepository, hasher PasswordHasher, cfg TokenConfig) *TokenService {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	resetTTL := cfg.ResetTTL
	if resetTTL <= 0 {
		resetTTL = time.Hour
	}

	return &TokenService{
		users:    users,
		hasher:   hasher,
		secret:   []byte(cfg.Secret),
		resetTTL: resetTTL,
		issuer:   cfg.Issuer,
		now:      now,
	}
}

// IssueSession signs a token for subject that expires after ttl.
func (s *TokenService) IssueSession(subject string, ttl time.Duration) (string, time.Time, error) {
	if subject == "" {
		return "", time.Time{}, errors.New("session subject is required")
	}

	now := s.now()
	expiresAt := now.Add(ttl)
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.issuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign session token: %w", err)
	}

	return tokenString, expiresAt, nil
}

// VerifySession returns the subject of a valid, unexpired session token.
func (s *TokenService) VerifySession(tokenString string) (string, error) {
	claims := &jwt.RegisteredClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}

	return claims.Subject, nil
}

// IssueReset stores a fresh reset token on user, replacing any pending one.
func (s *TokenService) IssueReset(ctx context.Context, user *model.User) (string, error) {
	token, err := generateResetToken()
	if err != nil {
		return "", fmt.Errorf("failed to generate reset token: %w", err)
	}

	expiry := s.now().Add(s.resetTTL).UTC()
	user.ResetToken = &token
	user.ResetTokenExpiry = &expiry

	err = s.users.Update(ctx, user)
	if err != nil {
		user.ResetToken = nil
		user.ResetTokenExpiry = nil
		return "", fmt.Errorf("failed to save reset token: %w", err)
	}

	return token, nil
}

// ConsumeReset sets a new password for the holder of token and clears the
// token. Expired tokens are rejected and left in place.
func (s *TokenService) ConsumeReset(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return ErrUnknownToken
	}

	return s.users.WithTx(ctx, func(repo repository.UserRepository) error {
		user, err := repo.ByResetToken(ctx, token)
		if errors.Is(err, repository.ErrResetTokenNotFound) {
			return ErrUnknownToken
		}
		if err != nil {
			return fmt.Errorf("failed to look up reset token: %w", err)
		}

		if user.ResetTokenExpiry == nil {
			return ErrUnknownToken
		}
		if s.now().After(*user.ResetTokenExpiry) {
			return ErrExpiredToken
		}

		hash, err := s.hasher.Hash(newPassword)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		err = repo.ConsumeResetToken(ctx, user.ID, token, hash)
		if errors.Is(err, repository.ErrResetTokenNotFound) {
			return ErrUnknownToken
		}
		if err != nil {
			return fmt.Errorf("failed to consume reset token: %w", err)
		}

		return nil
	})
}

// ResetTTL is how long a reset token stays valid.
func (s *TokenService) ResetTTL() time.Duration {
	return s.resetTTL
}

func generateResetToken() (string, error) {
	bytes := make([]byte, resetTokenBytes)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}
