package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T, ttl time.Duration) *SessionStore {
	t.Helper()
	s, err := Open(context.Background(), filepath.Join(t.TempDir(), "sessions.db"), ttl)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSessionStore_PutOverwritesAndDeletes(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, 0)

	if _, ok, err := s.Get(ctx, "u1", "pawsense_report"); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}

	if err := s.Put(ctx, "u1", "pawsense_report", []byte(`{"a":1}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := s.Put(ctx, "u1", "pawsense_report", []byte(`{"a":2}`)); err != nil {
		t.Fatalf("Put overwrite: %v", err)
	}

	got, ok, err := s.Get(ctx, "u1", "pawsense_report")
	if err != nil || !ok || string(got) != `{"a":2}` {
		t.Fatalf("Get: %q ok=%v err=%v", got, ok, err)
	}

	// otro namespace no ve la clave
	if _, ok, _ := s.Get(ctx, "u2", "pawsense_report"); ok {
		t.Fatalf("namespaces must be isolated")
	}

	if err := s.Delete(ctx, "u1", "pawsense_report"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "u1", "pawsense_report"); ok {
		t.Fatalf("expected key deleted")
	}
}

func TestSessionStore_ExpiresAfterTTL(t *testing.T) {
	ctx := context.Background()
	s := openTestStore(t, time.Minute)

	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	if err := s.Put(ctx, "u1", "k", []byte("v")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	now = now.Add(30 * time.Second)
	if _, ok, _ := s.Get(ctx, "u1", "k"); !ok {
		t.Fatalf("expected key alive before ttl")
	}

	now = now.Add(time.Minute)
	if _, ok, _ := s.Get(ctx, "u1", "k"); ok {
		t.Fatalf("expected key expired after ttl")
	}
}
