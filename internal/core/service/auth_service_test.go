package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/paintcompare/marketplace-api/internal/core/auth"
	"github.com/paintcompare/marketplace-api/internal/core/domain"
	"github.com/paintcompare/marketplace-api/internal/core/ports"
)

type stubStore struct {
	users  map[string]*domain.User
	nextID int
}

func newStubStore() *stubStore {
	return &stubStore{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (s *stubStore) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (s *stubStore) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (s *stubStore) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range s.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	s.nextID++
	clone := cloneUser(user)
	clone.ID = fmt.Sprintf("user_%d", s.nextID)
	s.users[clone.ID] = cloneUser(clone)
	return clone, nil
}

func (s *stubStore) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	if u, ok := s.users[id]; ok {
		u.LastLoginAt = at
	}
	return nil
}

func (s *stubStore) List(_ context.Context, _, _ int64) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (s *stubStore) Update(_ context.Context, user *domain.User) error {
	if _, ok := s.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	s.users[user.ID] = cloneUser(user)
	return nil
}

func (s *stubStore) Delete(_ context.Context, id string) error {
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

type stubThrottle struct {
	failures map[string]int
	limit    int
}

func newStubThrottle(limit int) *stubThrottle {
	return &stubThrottle{failures: make(map[string]int), limit: limit}
}

func (t *stubThrottle) TooManyFailures(_ context.Context, email string) (bool, error) {
	return t.failures[email] >= t.limit, nil
}

func (t *stubThrottle) RecordFailure(_ context.Context, email string) error {
	t.failures[email]++
	return nil
}

func (t *stubThrottle) Reset(_ context.Context, email string) error {
	delete(t.failures, email)
	return nil
}

type stubSink struct {
	activities []domain.LoginActivity
}

func (s *stubSink) Enqueue(a domain.LoginActivity) {
	s.activities = append(s.activities, a)
}

func newTestAuthService(store ports.CredentialStore) (*AuthService, *auth.TokenService, *stubSink) {
	tokens := auth.NewTokenService("0123456789abcdef0123456789abcdef", auth.DefaultTokenTTL)
	sink := &stubSink{}
	svc := NewAuthService(store, tokens, newStubThrottle(10), sink, zerolog.Nop())
	return svc, tokens, sink
}

func TestAuthService_Register_Success(t *testing.T) {
	svc, tokens, _ := newTestAuthService(newStubStore())

	token, user, err := svc.Register(context.Background(), "A@X.com", "Passw0rd!", "Alice", "")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.Email != "a@x.com" {
		t.Fatalf("email not normalized: %s", user.Email)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("expected customer role, got %s", user.Role)
	}
	if user.PasswordHash == "Passw0rd!" || user.PasswordHash == "" {
		t.Fatalf("password not hashed")
	}
	if !user.IsActive {
		t.Fatalf("new account should be active")
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Subject != user.ID || claims.Role != domain.RoleCustomer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc, _, _ := newTestAuthService(newStubStore())

	if _, _, err := svc.Register(context.Background(), "not-an-email", "Passw0rd!", "", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for bad email, got %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "b@x.com", "short", "", ""); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc, _, _ := newTestAuthService(newStubStore())

	if _, _, err := svc.Register(context.Background(), "a@x.com", "Passw0rd!", "", ""); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), "A@X.COM", "Different1!", "", ""); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_UnifiedInvalidCredentials(t *testing.T) {
	svc, _, _ := newTestAuthService(newStubStore())

	if _, _, err := svc.Register(context.Background(), "a@x.com", "Passw0rd!", "", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong password and unknown email must be indistinguishable.
	_, _, wrongPass := svc.Login(context.Background(), "a@x.com", "wrong")
	_, _, unknown := svc.Login(context.Background(), "ghost@x.com", "whatever")
	if !errors.Is(wrongPass, domain.ErrInvalidCredentials) {
		t.Fatalf("wrong password: expected ErrInvalidCredentials, got %v", wrongPass)
	}
	if !errors.Is(unknown, domain.ErrInvalidCredentials) {
		t.Fatalf("unknown email: expected ErrInvalidCredentials, got %v", unknown)
	}
}

func TestAuthService_Login_Inactive(t *testing.T) {
	store := newStubStore()
	svc, _, _ := newTestAuthService(store)

	_, user, err := svc.Register(context.Background(), "a@x.com", "Passw0rd!", "", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	store.users[user.ID].IsActive = false

	if _, _, err := svc.Login(context.Background(), "a@x.com", "Passw0rd!"); !errors.Is(err, domain.ErrInactiveAccount) {
		t.Fatalf("expected ErrInactiveAccount, got %v", err)
	}
}

func TestAuthService_Login_Throttled(t *testing.T) {
	store := newStubStore()
	tokens := auth.NewTokenService("0123456789abcdef0123456789abcdef", auth.DefaultTokenTTL)
	svc := NewAuthService(store, tokens, newStubThrottle(3), &stubSink{}, zerolog.Nop())

	if _, _, err := svc.Register(context.Background(), "a@x.com", "Passw0rd!", "", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	for range 3 {
		if _, _, err := svc.Login(context.Background(), "a@x.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials, got %v", err)
		}
	}

	// Threshold reached: even the correct password is refused now.
	if _, _, err := svc.Login(context.Background(), "a@x.com", "Passw0rd!"); !errors.Is(err, domain.ErrTooManyAttempts) {
		t.Fatalf("expected ErrTooManyAttempts, got %v", err)
	}
}

func TestAuthService_Login_EnqueuesActivity(t *testing.T) {
	store := newStubStore()
	svc, _, sink := newTestAuthService(store)

	_, user, err := svc.Register(context.Background(), "a@x.com", "Passw0rd!", "", "")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@x.com", "Passw0rd!"); err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if len(sink.activities) != 1 || sink.activities[0].UserID != user.ID {
		t.Fatalf("expected one activity for %s, got %+v", user.ID, sink.activities)
	}
}

// TestAuthService_PromotionScenario walks the full register → login → denied →
// promote → re-login → allowed path at the service/guard level.
func TestAuthService_PromotionScenario(t *testing.T) {
	store := newStubStore()
	svc, tokens, _ := newTestAuthService(store)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "a@x.com", "Passw0rd!", "", ""); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, user, err := svc.Login(ctx, "a@x.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.Role != domain.RoleCustomer {
		t.Fatalf("expected customer, got %s", user.Role)
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	resolver := auth.NewResolver(store)
	identity, err := resolver.Resolve(ctx, claims, auth.ModeAuthoritative)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if err := auth.Authorize(identity, domain.RoleAdmin); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("customer calling admin operation: expected ErrForbidden, got %v", err)
	}

	// Promote in the store, re-login, and the same operation passes.
	store.users[user.ID].Role = domain.RoleAdmin
	token, _, err = svc.Login(ctx, "a@x.com", "Passw0rd!")
	if err != nil {
		t.Fatalf("re-login failed: %v", err)
	}
	claims, err = tokens.Verify(token)
	if err != nil {
		t.Fatalf("verify failed: %v", err)
	}
	identity, err = resolver.Resolve(ctx, claims, auth.ModeAuthoritative)
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if err := auth.Authorize(identity, domain.RoleAdmin); err != nil {
		t.Fatalf("admin after promotion: expected nil, got %v", err)
	}
}
