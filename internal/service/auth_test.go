package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/templui/rincon/internal/repository"
)

var resetLinkPattern = regexp.MustCompile(`http://localhost:8000/reset-password/([A-Za-z0-9_-]+)`)

func resetTokenFromMail(t *testing.T, f *authFixture) string {
	t.Helper()
	sent := f.mailer.Sent()
	require.NotEmpty(t, sent)
	m := resetLinkPattern.FindStringSubmatch(sent[len(sent)-1].HTML)
	require.Len(t, m, 2, "reset link missing from email")
	return m[1]
}

func TestAuthService_Register(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	session, err := f.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, "bearer", session.TokenType)
	assert.Equal(t, f.clock.Now().Add(60*time.Minute), session.ExpiresAt)

	subject, err := f.tokens.VerifySession(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	user, err := f.users.ByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.NotEqual(t, "secret1", user.PasswordHash)
	assert.True(t, f.hasher.Verify("secret1", user.PasswordHash))
	assert.Nil(t, user.ResetToken)
}

func TestAuthService_RegisterNormalizesEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, " alice ", "  Alice@X.com ", "secret1")
	require.NoError(t, err)

	user, err := f.users.ByEmail(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestAuthService_RegisterDuplicate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"same username", "alice", "other@x.com"},
		{"same email", "bob", "alice@x.com"},
		{"same email different case", "bob", "ALICE@x.com"},
		{"both", "alice", "alice@x.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Register(ctx, tt.username, tt.email, "secret1")
			assert.ErrorIs(t, err, ErrDuplicateCredential)
		})
	}

	_, err = f.users.ByUsername(ctx, "bob")
	assert.ErrorIs(t, err, repository.ErrUserNotFound, "no record created on rejection")
}

func TestAuthService_RegisterValidation(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "al", "alice@x.com", "secret1")
	assert.ErrorIs(t, err, ErrInvalidUsername)

	_, err = f.auth.Register(ctx, "alice", "not-an-email", "secret1")
	assert.ErrorIs(t, err, ErrInvalidEmail)

	_, err = f.auth.Register(ctx, "alice", "alice@x.com", "abc")
	assert.ErrorIs(t, err, ErrWeakPassword)
}

func TestAuthService_Login(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	session, err := f.auth.Login(ctx, "alice", "secret1")
	require.NoError(t, err)
	subject, err := f.tokens.VerifySession(session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", subject)

	_, wrongPassword := f.auth.Login(ctx, "alice", "secret2")
	_, unknownUser := f.auth.Login(ctx, "nobody", "secret1")

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error(), "failures must be indistinguishable")
}

func TestAuthService_RequestPasswordResetUnknownEmail(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	ack, err := f.auth.RequestPasswordReset(ctx, "nobody@x.com")
	require.NoError(t, err)
	assert.Equal(t, "If the email exists, a reset link will be sent", ack)
	assert.Empty(t, f.mailer.Sent())

	user, err := f.users.ByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Nil(t, user.ResetToken, "no state change for other users")

	ack, err = f.auth.RequestPasswordReset(ctx, "garbage")
	require.NoError(t, err)
	assert.Equal(t, PasswordResetAck, ack)
}

func TestAuthService_RequestPasswordResetSendsLink(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	ack, err := f.auth.RequestPasswordReset(ctx, "Alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, PasswordResetAck, ack)

	sent := f.mailer.Sent()
	require.Len(t, sent, 1)
	assert.Equal(t, "alice@x.com", sent[0].To)
	assert.Equal(t, "Restablecer Contraseña", sent[0].Subject)
	assert.Contains(t, sent[0].HTML, "Hola alice")
	assert.Contains(t, sent[0].HTML, "1 hora")

	token := resetTokenFromMail(t, f)
	user, err := f.users.ByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user.ResetToken)
	assert.Equal(t, token, *user.ResetToken)
	assert.WithinDuration(t, f.clock.Now().Add(time.Hour), *user.ResetTokenExpiry, time.Second)
}

func TestAuthService_RequestPasswordResetMailFailureIsSwallowed(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()
	f.mailer.Err = errors.New("smtp down")

	_, err := f.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	ack, err := f.auth.RequestPasswordReset(ctx, "alice@x.com")
	require.NoError(t, err)
	assert.Equal(t, PasswordResetAck, ack)

	user, err := f.users.ByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.NotNil(t, user.ResetToken, "token stays issued when mail fails")
}

func TestAuthService_PasswordResetScenario(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	_, err = f.auth.RequestPasswordReset(ctx, "alice@x.com")
	require.NoError(t, err)
	token := resetTokenFromMail(t, f)

	msg, err := f.auth.PerformPasswordReset(ctx, token, "newpass1")
	require.NoError(t, err)
	assert.Equal(t, "Password reset successful", msg)

	_, err = f.auth.Login(ctx, "alice", "secret1")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.auth.Login(ctx, "alice", "newpass1")
	require.NoError(t, err)

	_, err = f.auth.PerformPasswordReset(ctx, token, "another1")
	assert.ErrorIs(t, err, ErrUnknownToken)
}

func TestAuthService_PerformPasswordResetErrors(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	_, err := f.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)
	_, err = f.auth.RequestPasswordReset(ctx, "alice@x.com")
	require.NoError(t, err)
	token := resetTokenFromMail(t, f)

	_, err = f.auth.PerformPasswordReset(ctx, "bogus", "newpass1")
	assert.ErrorIs(t, err, ErrUnknownToken)

	// A weak password does not burn the token
	_, err = f.auth.PerformPasswordReset(ctx, token, "abc")
	assert.ErrorIs(t, err, ErrWeakPassword)
	user, err := f.users.ByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, user.ResetToken)

	f.clock.Advance(2 * time.Hour)
	_, err = f.auth.PerformPasswordReset(ctx, token, "newpass1")
	assert.ErrorIs(t, err, ErrExpiredToken)
	assert.False(t, errors.Is(err, ErrUnknownToken))
}

func TestAuthService_Authenticate(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	session, err := f.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	user, err := f.auth.Authenticate(ctx, session.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "alice@x.com", user.Email)
	assert.Empty(t, user.PasswordHash)
	assert.Nil(t, user.ResetToken)

	_, err = f.auth.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, err, ErrInvalidToken)

	f.clock.Advance(61 * time.Minute)
	_, err = f.auth.Authenticate(ctx, session.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)
}

func TestAuthService_AuthenticateRemovedUser(t *testing.T) {
	f := newAuthFixture(t)
	ctx := context.Background()

	session, err := f.auth.Register(ctx, "alice", "alice@x.com", "secret1")
	require.NoError(t, err)

	user, err := f.users.ByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NoError(t, f.users.Delete(ctx, user.ID))

	_, err = f.auth.Authenticate(ctx, session.AccessToken)
	assert.ErrorIs(t, err, ErrUnauthenticated)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestAuthService_SessionCookies(t *testing.T) {
	f := newAuthFixture(t)
	session := &Session{AccessToken: "tok", TokenType: "bearer", ExpiresAt: f.clock.Now().Add(time.Hour)}

	rec := httptest.NewRecorder()
	f.auth.SetSessionCookie(rec, session)
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookieName, cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookies[0].SameSite)

	rec = httptest.NewRecorder()
	f.auth.ClearSessionCookie(rec)
	header := rec.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(header, SessionCookieName+"=;"))
	assert.Contains(t, header, "Max-Age=0")
}

func TestExpiryText(t *testing.T) {
	assert.Equal(t, "1 hora", expiryText(time.Hour))
	assert.Equal(t, "2 horas", expiryText(2*time.Hour))
	assert.Equal(t, "30 minutos", expiryText(30*time.Minute))
	assert.Equal(t, "90 minutos", expiryText(90*time.Minute))
}
