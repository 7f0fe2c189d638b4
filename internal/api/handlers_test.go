package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"demo-pool/internal/auth"
	"demo-pool/internal/config"
	"demo-pool/internal/model"
	"demo-pool/internal/pool"
	"demo-pool/internal/storage"
)

// stubStore serves exactly the accounts it is given; no locking semantics.
type stubStore struct {
	available []*model.DemoAccount
	active    map[string]*model.DemoAccount
}

func newStubStore(available int) *stubStore {
	s := &stubStore{active: map[string]*model.DemoAccount{}}
	for i := 0; i < available; i++ {
		s.available = append(s.available, &model.DemoAccount{
			ID:    uuid.New(),
			Email: "demo_stub" + uuid.NewString()[:8] + "@demo.example.com",
			State: model.StateAvailable,
		})
	}
	return s
}

func (s *stubStore) AvailableCount(context.Context) (int, error) { return len(s.available), nil }
func (s *stubStore) ActiveCount(context.Context) (int, error)    { return len(s.active), nil }

func (s *stubStore) AccountByEmail(_ context.Context, email string) (*model.DemoAccount, error) {
	if a, ok := s.active[email]; ok {
		return a, nil
	}
	return nil, storage.ErrNoAvailable
}

func (s *stubStore) AcquireAvailable(context.Context) (*model.DemoAccount, error) {
	if len(s.available) == 0 {
		return nil, storage.ErrNoAvailable
	}
	a := s.available[0]
	s.available = s.available[1:]
	now := time.Now()
	a.State = model.StateActive
	a.LeasedAt = &now
	s.active[a.Email] = a
	return a, nil
}

func (s *stubStore) ReleaseExpired(context.Context, time.Duration) (int, error) { return 0, nil }
func (s *stubStore) ExpiredAccounts(context.Context, time.Duration) ([]model.DemoAccount, error) {
	return nil, nil
}
func (s *stubStore) AccountWorkspaces(context.Context, uuid.UUID) ([]uuid.UUID, error) {
	return nil, nil
}
func (s *stubStore) PurgePluginData(context.Context, uuid.UUID) error { return nil }
func (s *stubStore) DeleteAccount(context.Context, uuid.UUID, []uuid.UUID) error {
	return nil
}

type noSeeder struct{}

func (noSeeder) Seed(context.Context, int) (int, error) { return 0, storage.ErrNoAvailable }

func (noSeeder) SeedLeased(context.Context) (*model.DemoAccount, error) {
	return nil, storage.ErrNoAvailable
}

func newTestAPI(t *testing.T, available int, syncFallback bool) *API {
	t.Helper()
	cfg := config.Default()
	cfg.Database.URL = "unused"
	cfg.Demo.SyncFallback = syncFallback

	tokens := auth.NewTokenManager("api-test-secret", cfg.Demo.SessionTTL.Std())
	svc := pool.New(newStubStore(available), noSeeder{}, nil, tokens, cfg, zap.NewNop())
	return NewAPI(svc, cfg, zap.NewNop())
}

func postLogin(t *testing.T, a *API, email, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"email": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)
	return rec
}

func TestLoginWithDemoCredentials(t *testing.T) {
	a := newTestAPI(t, 1, true)

	rec := postLogin(t, a, a.Cfg.Demo.DisplayEmail, a.Cfg.Demo.Password)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/app", rec.Header().Get("Location"))

	var sessionSet bool
	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookie && c.Value != "" {
			sessionSet = true
		}
	}
	require.True(t, sessionSet, "session cookie must be set")
}

func TestLoginWithWrongCredentials(t *testing.T) {
	a := newTestAPI(t, 1, true)

	rec := postLogin(t, a, "someone@example.com", "hunter2")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLoginPoolExhausted(t *testing.T) {
	a := newTestAPI(t, 0, false)

	rec := postLogin(t, a, a.Cfg.Demo.DisplayEmail, a.Cfg.Demo.Password)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Contains(t, rec.Body.String(), "try again")
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestLoginDemoDisabled(t *testing.T) {
	a := newTestAPI(t, 1, true)
	a.Cfg.Demo.Enabled = false

	rec := postLogin(t, a, a.Cfg.Demo.DisplayEmail, a.Cfg.Demo.Password)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func TestPoolStatus(t *testing.T) {
	a := newTestAPI(t, 3, true)

	req := httptest.NewRequest(http.MethodGet, "/pool/status", nil)
	rec := httptest.NewRecorder()
	a.Router().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"available": 3, "active": 0, "target": 50}`, rec.Body.String())
}
