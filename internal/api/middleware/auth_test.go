package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/paintcompare/marketplace-api/internal/api"
	"github.com/paintcompare/marketplace-api/internal/api/middleware"
	"github.com/paintcompare/marketplace-api/internal/core/auth"
	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

type stubStore struct {
	users map[string]*domain.User
}

func newStubStore() *stubStore {
	return &stubStore{users: make(map[string]*domain.User)}
}

func (s *stubStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	return &clone, nil
}

func (s *stubStore) Create(_ context.Context, u *domain.User) (*domain.User, error) { return u, nil }

func (s *stubStore) UpdateLastLogin(_ context.Context, _ string, _ time.Time) error { return nil }

func (s *stubStore) List(_ context.Context, _, _ int64) ([]*domain.User, error) { return nil, nil }

func (s *stubStore) Update(_ context.Context, _ *domain.User) error { return nil }

func (s *stubStore) Delete(_ context.Context, _ string) error { return nil }

type authFixture struct {
	e       *echo.Echo
	tokens  *auth.TokenService
	store   *stubStore
	handler echo.HandlerFunc
}

func newAuthFixture() *authFixture {
	e := echo.New()
	e.HTTPErrorHandler = api.NewHTTPErrorHandler(zerolog.Nop())
	return &authFixture{
		e:      e,
		tokens: auth.NewTokenService("0123456789abcdef0123456789abcdef", auth.DefaultTokenTTL),
		store:  newStubStore(),
		handler: func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		},
	}
}

// do runs req through Authenticate (+ optional RequireRoles) and returns the
// recorder.
func (f *authFixture) do(t *testing.T, req *http.Request, mode auth.Mode, roles ...[]string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	c := f.e.NewContext(req, rec)

	h := f.handler
	for i := len(roles) - 1; i >= 0; i-- {
		h = middleware.RequireRoles(roles[i]...)(h)
	}
	h = middleware.Authenticate(f.tokens, auth.NewResolver(f.store), mode)(h)

	if err := h(c); err != nil {
		f.e.HTTPErrorHandler(err, c)
	}
	return rec
}

func (f *authFixture) seedUser(id, role string, active bool) string {
	f.store.users[id] = &domain.User{ID: id, Email: id + "@x.com", Role: role, IsActive: active}
	token, _ := f.tokens.Issue(id, id+"@x.com", role)
	return token
}

func TestAuthenticate_NoToken(t *testing.T) {
	f := newAuthFixture()
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	rec := f.do(t, req, auth.ModeStateless)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_InvalidToken(t *testing.T) {
	f := newAuthFixture()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")

	rec := f.do(t, req, auth.ModeStateless)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestAuthenticate_StatelessSetsIdentity(t *testing.T) {
	f := newAuthFixture()
	token := f.seedUser("u1", domain.RoleCustomer, true)

	f.handler = func(c echo.Context) error {
		identity := middleware.Identity(c)
		if identity == nil || identity.UserID != "u1" || identity.Role != domain.RoleCustomer {
			t.Fatalf("unexpected identity: %+v", identity)
		}
		return c.NoContent(http.StatusOK)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := f.do(t, req, auth.ModeStateless)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestAuthenticate_CookieCarriesToken(t *testing.T) {
	f := newAuthFixture()
	token := f.seedUser("u1", domain.RoleCustomer, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: token})
	rec := f.do(t, req, auth.ModeStateless)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

// A valid header token must be the one used even when a different (here:
// garbage) cookie token rides along.
func TestAuthenticate_HeaderBeatsCookie(t *testing.T) {
	f := newAuthFixture()
	token := f.seedUser("u1", domain.RoleCustomer, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.AddCookie(&http.Cookie{Name: middleware.SessionCookie, Value: "garbage"})
	rec := f.do(t, req, auth.ModeStateless)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 via header token, got %d", rec.Code)
	}
}

func TestAuthenticate_AuthoritativeRejectsDeletedUser(t *testing.T) {
	f := newAuthFixture()
	token := f.seedUser("u1", domain.RoleCustomer, true)
	delete(f.store.users, "u1")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := f.do(t, req, auth.ModeAuthoritative)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for deleted user, got %d", rec.Code)
	}
}

func TestAuthenticate_AuthoritativeRejectsInactive(t *testing.T) {
	f := newAuthFixture()
	token := f.seedUser("u1", domain.RoleCustomer, false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := f.do(t, req, auth.ModeAuthoritative)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for inactive account, got %d", rec.Code)
	}
}

func TestRequireRoles_ForbiddenVsUnauthorized(t *testing.T) {
	f := newAuthFixture()
	token := f.seedUser("u1", domain.RoleCustomer, true)

	// Authenticated but wrong role → 403.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := f.do(t, req, auth.ModeStateless, []string{domain.RoleAdmin})
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}

	// No identity at all → 401, so the client can redirect to login.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = f.do(t, req, auth.ModeStateless, []string{domain.RoleAdmin})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireRoles_EmptySetAdmitsAnyAuthenticated(t *testing.T) {
	f := newAuthFixture()
	token := f.seedUser("u1", domain.RoleSupplier, true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := f.do(t, req, auth.ModeStateless, []string{})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
