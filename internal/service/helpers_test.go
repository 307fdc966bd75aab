package service

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/templui/rincon/internal/repository"
	"github.com/templui/rincon/internal/testutil"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-with-at-least-32-chars"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type authFixture struct {
	auth   *AuthService
	tokens *TokenService
	users  repository.UserRepository
	hasher PasswordHasher
	mailer *testutil.RecordingMailer
	clock  *fakeClock
}

func newAuthFixture(t *testing.T) *authFixture {
	t.Helper()

	users := repository.NewUserRepository(testutil.NewDB(t))
	hasher := NewBcryptHasher(bcrypt.MinCost)
	clock := newFakeClock()
	tokens := NewTokenService(users, hasher, TokenConfig{
		Secret:   testSecret,
		ResetTTL: time.Hour,
		Now:      clock.Now,
	})
	mailer := &testutil.RecordingMailer{}

	auth, err := NewAuthService(users, hasher, tokens, mailer, AuthConfig{
		SessionTTL: 60 * time.Minute,
		AppURL:     "http://localhost:8000",
		AppName:    "El Rincón de la Sole",
	})
	require.NoError(t, err)

	return &authFixture{
		auth:   auth,
		tokens: tokens,
		users:  users,
		hasher: hasher,
		mailer: mailer,
		clock:  clock,
	}
}
