package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/paintcompare/marketplace-api/internal/core/domain"
)

type recordingStore struct {
	mu     sync.Mutex
	logins map[string]time.Time
}

func (s *recordingStore) UpdateLastLogin(_ context.Context, id string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logins[id] = at
	return nil
}

func (s *recordingStore) FindByEmail(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *recordingStore) FindByID(context.Context, string) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}
func (s *recordingStore) Create(_ context.Context, u *domain.User) (*domain.User, error) {
	return u, nil
}
func (s *recordingStore) List(context.Context, int64, int64) ([]*domain.User, error) {
	return nil, nil
}
func (s *recordingStore) Update(context.Context, *domain.User) error { return nil }
func (s *recordingStore) Delete(context.Context, string) error       { return nil }

type recordingAudit struct {
	mu      sync.Mutex
	entries []domain.LoginActivity
}

func (a *recordingAudit) Record(_ context.Context, activity domain.LoginActivity) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, activity)
	return nil
}

func TestDispatcher_ProcessesActivity(t *testing.T) {
	store := &recordingStore{logins: make(map[string]time.Time)}
	audit := &recordingAudit{}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	d := NewDispatcher(2, store, audit, zerolog.Nop())
	d.Start(ctx)

	at := time.Now().UTC()
	d.Enqueue(domain.LoginActivity{UserID: "u1", Email: "a@x.com", At: at})
	d.Enqueue(domain.LoginActivity{UserID: "u2", Email: "b@x.com", At: at})

	deadline := time.After(2 * time.Second)
	for {
		store.mu.Lock()
		done := len(store.logins) == 2
		store.mu.Unlock()
		if done {
			break
		}
		select {
		case <-deadline:
			t.Fatalf("dispatcher did not process events in time")
		case <-time.After(10 * time.Millisecond):
		}
	}

	audit.mu.Lock()
	defer audit.mu.Unlock()
	if len(audit.entries) != 2 {
		t.Fatalf("expected 2 audit entries, got %d", len(audit.entries))
	}
}

func TestDispatcher_ShardingIsStable(t *testing.T) {
	d := NewDispatcher(4, &recordingStore{logins: map[string]time.Time{}}, &recordingAudit{}, zerolog.Nop())
	if d.shardIndex("user_42") != d.shardIndex("user_42") {
		t.Fatalf("shard index not deterministic")
	}
}
