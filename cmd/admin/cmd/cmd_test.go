package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/rincon/internal/config"
	"github.com/templui/rincon/internal/repository"
	"github.com/templui/rincon/internal/testutil"
)

func testConfig() *config.Config {
	return &config.Config{
		AppName:                  "El Rincón de la Sole",
		AppEnv:                   "development",
		AppURL:                   "http://localhost:8000",
		JWTSecret:                "admin-test-secret-with-32-chars!!!",
		JWTExpiry:                time.Hour,
		TokenPasswordResetExpiry: time.Hour,
		BcryptCost:               4,
	}
}

func answers(values ...string) passwordReader {
	return func(string) (string, error) {
		if len(values) == 0 {
			return "", errors.New("no more input")
		}
		v := values[0]
		values = values[1:]
		return v, nil
	}
}

func TestCreateUser(t *testing.T) {
	users := repository.NewUserRepository(testutil.NewDB(t))
	auth, err := newAuthService(testConfig(), users)
	require.NoError(t, err)
	ctx := context.Background()

	var out bytes.Buffer
	err = createUser(ctx, auth, &out, "sole", " Sole@Example.com ", answers("mate-amargo", "mate-amargo"))
	require.NoError(t, err)
	assert.Equal(t, "created user sole <sole@example.com>\n", out.String())

	user, err := users.ByUsername(ctx, "sole")
	require.NoError(t, err)
	assert.Equal(t, "sole@example.com", user.Email)

	_, err = auth.Login(ctx, "sole", "mate-amargo")
	assert.NoError(t, err)

	t.Run("mismatch", func(t *testing.T) {
		err := createUser(ctx, auth, &out, "other", "other@example.com", answers("mate-amargo", "mate-dulce"))
		assert.ErrorIs(t, err, errPasswordMismatch)
	})

	t.Run("duplicate", func(t *testing.T) {
		err := createUser(ctx, auth, &out, "sole", "new@example.com", answers("mate-amargo", "mate-amargo"))
		assert.Error(t, err)
	})

	t.Run("weak password", func(t *testing.T) {
		err := createUser(ctx, auth, &out, "weak", "weak@example.com", answers("123", "123"))
		assert.Error(t, err)
	})
}

func TestPromptPassword_Lines(t *testing.T) {
	var prompt bytes.Buffer
	read := promptPassword(strings.NewReader("first\r\nsecond\n"), &prompt)

	v, err := read("Password: ")
	require.NoError(t, err)
	assert.Equal(t, "first", v)

	v, err = read("Confirm password: ")
	require.NoError(t, err)
	assert.Equal(t, "second", v)
	assert.Equal(t, "Password: Confirm password: ", prompt.String())

	_, err = read("Again: ")
	assert.Error(t, err)
}

func TestRunChecks(t *testing.T) {
	var out bytes.Buffer
	err := runChecks(context.Background(), &out, []check{
		{name: "good", run: func(context.Context) error { return nil }},
		{name: "bad", run: func(context.Context) error { return errors.New("boom") }},
	})
	require.EqualError(t, err, "1 of 2 checks failed")
	assert.Equal(t, "ok   good\nFAIL bad: boom\n", out.String())
}

func TestEnvironmentChecks(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "pages"), 0o755))

	cfg := testConfig()
	cfg.DBDriver = "sqlite"
	cfg.DBConnection = filepath.Join(dir, "data", "rincon.db")
	cfg.ContentPath = dir

	checks := environmentChecks(cfg, true)
	require.Len(t, checks, 2)

	var out bytes.Buffer
	err := runChecks(context.Background(), &out, checks)
	assert.Error(t, err)
	assert.Contains(t, out.String(), "FAIL database (sqlite)")
	assert.Contains(t, out.String(), "ok   content directory")
}
