package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/templui/rincon/internal/ctxkeys"
	"github.com/templui/rincon/internal/model"
	"github.com/templui/rincon/internal/repository"
	"github.com/templui/rincon/internal/service"
	"github.com/templui/rincon/internal/testutil"
)

const testSecret = "test-secret-key-with-at-least-32-chars"

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
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

type fixture struct {
	auth       *service.AuthService
	products   *service.ProductService
	siteConfig *service.SiteConfigService
	pages      *service.PageService
	mailer     *testutil.RecordingMailer
	storage    *testutil.MemoryStorage
	clock      *fakeClock
	contentDir string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	conn := testutil.NewDB(t)
	users := repository.NewUserRepository(conn)
	hasher := service.NewBcryptHasher(bcrypt.MinCost)
	clock := &fakeClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	tokens := service.NewTokenService(users, hasher, service.TokenConfig{
		Secret:   testSecret,
		ResetTTL: time.Hour,
		Now:      clock.Now,
	})
	mailer := &testutil.RecordingMailer{}
	auth, err := service.NewAuthService(users, hasher, tokens, mailer, service.AuthConfig{
		SessionTTL: time.Hour,
		AppURL:     "http://localhost:8000",
		AppName:    "El Rincón de la Sole",
	})
	require.NoError(t, err)

	store := testutil.NewMemoryStorage()
	files := service.NewFileService(repository.NewFileRepository(conn), store)
	contentDir := t.TempDir()

	return &fixture{
		auth:       auth,
		products:   service.NewProductService(repository.NewProductRepository(conn), files),
		siteConfig: service.NewSiteConfigService(repository.NewSiteConfigRepository(conn), "1121820759"),
		pages:      service.NewPageService(contentDir),
		mailer:     mailer,
		storage:    store,
		clock:      clock,
		contentDir: contentDir,
	}
}

func jsonRequest(t *testing.T, method, target string, body any) *http.Request {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(method, target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func withUser(req *http.Request, user *model.User) *http.Request {
	return req.WithContext(ctxkeys.WithUser(req.Context(), user))
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	data, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}
