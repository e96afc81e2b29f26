package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestStoreKey(t *testing.T) {
	if got := storeKey("user-1", "pawsense_report"); got != "pawsense:user-1:pawsense_report" {
		t.Fatalf("unexpected key %q", got)
	}
}

// Necesita un Redis real: PAWSENSE_TEST_REDIS=localhost:6379
func TestSessionStore_RoundTrip(t *testing.T) {
	addr := os.Getenv("PAWSENSE_TEST_REDIS")
	if addr == "" {
		t.Skip("PAWSENSE_TEST_REDIS not set")
	}

	ctx := context.Background()
	s, err := Open(ctx, Options{Addr: addr, TTL: time.Minute})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer s.Close()

	ns := "test-" + uuid.NewString()
	if _, ok, err := s.Get(ctx, ns, "pawsense_report"); err != nil || ok {
		t.Fatalf("expected missing key, ok=%v err=%v", ok, err)
	}

	if err := s.Put(ctx, ns, "pawsense_report", []byte(`{"emotion":"Happy"}`)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	got, ok, err := s.Get(ctx, ns, "pawsense_report")
	if err != nil || !ok || string(got) != `{"emotion":"Happy"}` {
		t.Fatalf("Get: %q ok=%v err=%v", got, ok, err)
	}

	if err := s.Delete(ctx, ns, "pawsense_report"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := s.Get(ctx, ns, "pawsense_report"); ok {
		t.Fatalf("expected key deleted")
	}
}
