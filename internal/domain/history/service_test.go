package history

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	entries []ScanEntry
}

func (r *testRepo) Create(ctx context.Context, e ScanEntry) error {
	if e.ID == "" {
		return errors.New("repo: id required")
	}
	r.entries = append(r.entries, e)
	return nil
}

func (r *testRepo) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]ScanEntry, error) {
	out := make([]ScanEntry, 0)
	for _, e := range r.entries {
		if e.PetID == petID && filter.Matches(e) {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ScannedAt.After(out[j].ScannedAt) })
	if len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

func newTestService(start time.Time) (*Service, *testRepo) {
	repo := &testRepo{}
	svc := NewService(repo)
	now := start
	svc.now = func() time.Time {
		now = now.Add(time.Minute)
		return now
	}
	return svc, repo
}

func TestRecord_Validation(t *testing.T) {
	svc, _ := newTestService(time.Now())
	ctx := context.Background()

	if _, err := svc.Record(ctx, RecordInput{OwnerUserID: "u1", Kind: KindEmotion}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without pet, got %v", err)
	}
	if _, err := svc.Record(ctx, RecordInput{PetID: "p1", OwnerUserID: "u1", Kind: "vaccine"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown kind, got %v", err)
	}
}

func TestListByPet_NewestFirstWithFilters(t *testing.T) {
	start := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	svc, _ := newTestService(start)
	ctx := context.Background()

	for _, in := range []RecordInput{
		{PetID: "p1", OwnerUserID: "u1", Kind: KindEmotion, Label: "Happy", Confidence: 88},
		{PetID: "p1", OwnerUserID: "u1", Kind: KindHealth, Label: "ringworm", Confidence: 73, Escalated: true},
		{PetID: "p2", OwnerUserID: "u1", Kind: KindEmotion, Label: "Sad", Confidence: 40},
		{PetID: "p1", OwnerUserID: "u1", Kind: KindEmotion, Label: "Relaxed", Confidence: 65},
	} {
		if _, err := svc.Record(ctx, in); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	all, err := svc.ListByPet(ctx, "p1", ListFilter{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].Label != "Relaxed" || all[2].Label != "Happy" {
		t.Fatalf("unexpected order %+v", all)
	}

	health, _ := svc.ListByPet(ctx, "p1", ListFilter{Kinds: []Kind{KindHealth}})
	if len(health) != 1 || !health[0].Escalated {
		t.Fatalf("expected only the escalated health scan, got %+v", health)
	}

	from := start.Add(2 * time.Minute)
	recent, _ := svc.ListByPet(ctx, "p1", ListFilter{From: &from, Limit: 1})
	if len(recent) != 1 || recent[0].Label != "Relaxed" {
		t.Fatalf("expected limit+from to keep the newest, got %+v", recent)
	}
}
