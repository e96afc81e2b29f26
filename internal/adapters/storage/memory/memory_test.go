package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"pawsense/internal/domain/history"
	"pawsense/internal/domain/pets"

	"github.com/google/go-cmp/cmp"
)

func TestPetRepo_ListBySpeciesKeepsCreationOrder(t *testing.T) {
	repo := NewPetRepo()
	ctx := context.Background()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, p := range []pets.Pet{
		{ID: "b", OwnerUserID: "u1", Name: "Rex", Species: pets.SpeciesDog, CreatedAt: t0},
		{ID: "a", OwnerUserID: "u1", Name: "Milo", Species: pets.SpeciesDog, CreatedAt: t0},
		{ID: "c", OwnerUserID: "u1", Name: "Luna", Species: pets.SpeciesCat, CreatedAt: t0.Add(time.Hour)},
		{ID: "d", OwnerUserID: "u2", Name: "Toby", Species: pets.SpeciesDog, CreatedAt: t0},
	} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create %s: %v", p.ID, err)
		}
	}

	dogs, _ := repo.ListBySpecies(ctx, "u1", pets.SpeciesDog)
	var ids []string
	for _, p := range dogs {
		ids = append(ids, p.ID)
	}
	if diff := cmp.Diff([]string{"a", "b"}, ids); diff != "" {
		t.Fatalf("dogs mismatch (-want +got):\n%s", diff)
	}

	all, _ := repo.ListByOwner(ctx, "u1")
	if len(all) != 3 || all[2].ID != "c" {
		t.Fatalf("unexpected owner list %+v", all)
	}

	if err := repo.Create(ctx, pets.Pet{ID: "a", OwnerUserID: "u1"}); err == nil {
		t.Fatalf("expected duplicate id error")
	}
	if _, err := repo.GetByID(ctx, "zzz"); !errors.Is(err, pets.ErrNotFound) {
		t.Fatalf("expected pets.ErrNotFound, got %v", err)
	}
}

func TestScanRepo_FiltersAndLimit(t *testing.T) {
	repo := NewScanRepo()
	ctx := context.Background()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, k := range []history.Kind{history.KindEmotion, history.KindHealth, history.KindEmotion} {
		_ = repo.Create(ctx, history.ScanEntry{
			ID:        string(rune('a' + i)),
			PetID:     "p1",
			Kind:      k,
			ScannedAt: t0.Add(time.Duration(i) * time.Minute),
		})
	}

	got, _ := repo.ListByPet(ctx, "p1", history.ListFilter{Kinds: []history.Kind{history.KindEmotion}, Limit: 1})
	if len(got) != 1 || got[0].ID != "c" {
		t.Fatalf("expected newest emotion scan, got %+v", got)
	}
}

func TestSessionStore_CopiesValues(t *testing.T) {
	s := NewSessionStore()
	ctx := context.Background()

	v := []byte(`{"type":"emotion"}`)
	_ = s.Put(ctx, "u1", "pawsense_report", v)
	v[0] = 'X'

	got, ok, err := s.Get(ctx, "u1", "pawsense_report")
	if err != nil || !ok || string(got) != `{"type":"emotion"}` {
		t.Fatalf("unexpected get %q ok=%v err=%v", got, ok, err)
	}
	if _, ok, _ := s.Get(ctx, "u2", "pawsense_report"); ok {
		t.Fatalf("namespaces must be isolated")
	}

	_ = s.Delete(ctx, "u1", "pawsense_report")
	if _, ok, _ := s.Get(ctx, "u1", "pawsense_report"); ok {
		t.Fatalf("expected key deleted")
	}
}
