package session

import (
	"context"
	"testing"
	"time"

	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", redislib.Nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.values, key)
	}
	return nil
}

type prefixKeyer struct{}

func (prefixKeyer) SessionKey(sessionID string) string { return "test:session:" + sessionID }

func newTestManager() (*Manager, *memoryStore) {
	store := newMemoryStore()
	return &Manager{store: store, keyer: prefixKeyer{}, ttl: time.Hour}, store
}

func TestCreateGetRoundTrip(t *testing.T) {
	t.Parallel()

	mgr, _ := newTestManager()
	id, err := mgr.Create(context.Background(), Record{
		AccessToken: "upstream-token",
		UserID:      "user-1",
		Email:       "jane@example.com",
		FullName:    "Jane Doe",
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	record, err := mgr.Get(context.Background(), id)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if record.AccessToken != "upstream-token" || record.FullName != "Jane Doe" {
		t.Fatalf("unexpected record %+v", record)
	}
}

func TestCreateRequiresAccessToken(t *testing.T) {
	t.Parallel()

	mgr, _ := newTestManager()
	if _, err := mgr.Create(context.Background(), Record{}); err == nil {
		t.Fatal("expected error for empty access token")
	}
}

func TestGetMissingSession(t *testing.T) {
	t.Parallel()

	mgr, _ := newTestManager()
	if _, err := mgr.Get(context.Background(), "nope"); err != ErrSessionNotFound {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	ok, err := mgr.HasSession(context.Background(), "nope")
	if err != nil || ok {
		t.Fatalf("expected no session, got ok=%v err=%v", ok, err)
	}
}

func TestRevokeDeletesSession(t *testing.T) {
	t.Parallel()

	mgr, _ := newTestManager()
	id, err := mgr.Create(context.Background(), Record{AccessToken: "tok"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := mgr.Revoke(context.Background(), id); err != nil {
		t.Fatalf("revoke failed: %v", err)
	}
	if ok, _ := mgr.HasSession(context.Background(), id); ok {
		t.Fatal("session should be gone after revoke")
	}
	if err := mgr.Revoke(context.Background(), id); err != nil {
		t.Fatalf("revoking twice should be a no-op, got %v", err)
	}
}
