package pets

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
)

// -------------------------
// Test repo / media store
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(ctx context.Context, p Pet) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok {
		return Pet{}, errRepoNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) ListBySpecies(ctx context.Context, ownerUserID string, sp Species) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID && p.Species == sp {
			out = append(out, p)
		}
	}
	return out, nil
}

type testMedia struct {
	mu   sync.Mutex
	keys []string
	fail string // bucket que falla
}

func (m *testMedia) Put(ctx context.Context, bucket, key, contentType string, data []byte) (string, error) {
	if bucket == m.fail {
		return "", errors.New("media: unavailable")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.keys = append(m.keys, bucket+"/"+key)
	return "https://cdn.test/" + bucket + "/" + key, nil
}

func newTestService(media MediaStore) (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, media)
	svc.now = func() time.Time { return time.Unix(1700000000, 42) }
	return svc, repo
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	if _, err := svc.Create(ctx, "", CreateInput{Name: "Milo", Species: "dog"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without owner, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", CreateInput{Name: "  ", Species: "dog"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput without name, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", CreateInput{Name: "Milo", Species: "horse"}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for unknown species, got %v", err)
	}
	if _, err := svc.Create(ctx, "u1", CreateInput{Name: "Milo", Species: "dog", Image: &Upload{Filename: "a.jpg", Data: []byte{1}}}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput when uploads are not configured, got %v", err)
	}
}

func TestCreate_UploadsBothFiles(t *testing.T) {
	media := &testMedia{}
	svc, repo := newTestService(media)

	p, err := svc.Create(context.Background(), "u1", CreateInput{
		Name:          " Luna ",
		Species:       "CAT",
		Sex:           "female",
		Image:         &Upload{Filename: `C:\fotos\luna.png`, ContentType: "image/png", Data: []byte{1, 2}},
		MedicalReport: &Upload{Filename: "informe.pdf", Data: []byte{3}},
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name != "Luna" || p.Species != SpeciesCat || p.Sex != SexFemale {
		t.Fatalf("unexpected pet %+v", p)
	}
	wantImage := "https://cdn.test/pet-images/u1/1700000000000000042_luna.png"
	if p.ImageURL != wantImage {
		t.Fatalf("expected image url %q, got %q", wantImage, p.ImageURL)
	}
	if !strings.HasPrefix(p.MedicalReportURL, "https://cdn.test/medical-report/u1/") {
		t.Fatalf("unexpected report url %q", p.MedicalReportURL)
	}
	if _, ok := repo.byID[p.ID]; !ok {
		t.Fatalf("pet not persisted")
	}
}

func TestCreate_UploadFailureDoesNotPersist(t *testing.T) {
	svc, repo := newTestService(&testMedia{fail: BucketMedicalReport})

	_, err := svc.Create(context.Background(), "u1", CreateInput{
		Name:          "Milo",
		Species:       "dog",
		Image:         &Upload{Filename: "milo.jpg", Data: []byte{1}},
		MedicalReport: &Upload{Filename: "informe.pdf", Data: []byte{2}},
	})
	if err == nil {
		t.Fatalf("expected upload error")
	}
	if len(repo.byID) != 0 {
		t.Fatalf("pet must not be created when an upload fails")
	}
}

func TestListBySpeciesAndOwnership(t *testing.T) {
	svc, _ := newTestService(nil)
	ctx := context.Background()

	dog, _ := svc.Create(ctx, "u1", CreateInput{Name: "Milo", Species: "dog"})
	_, _ = svc.Create(ctx, "u1", CreateInput{Name: "Luna", Species: "cat"})
	_, _ = svc.Create(ctx, "u2", CreateInput{Name: "Rex", Species: "dog"})

	dogs, err := svc.ListBySpecies(ctx, "u1", SpeciesDog)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(dogs) != 1 || dogs[0].ID != dog.ID {
		t.Fatalf("expected only Milo, got %+v", dogs)
	}

	if _, err := svc.GetOwned(ctx, "u2", dog.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}
	if _, err := svc.GetOwned(ctx, "u1", dog.ID); err != nil {
		t.Fatalf("owner should read pet: %v", err)
	}
}

func TestParseSpecies_FallsBackToDog(t *testing.T) {
	if ParseSpecies(" Cat ") != SpeciesCat || ParseSpecies("parrot") != SpeciesDog || ParseSpecies("") != SpeciesDog {
		t.Fatalf("unexpected species parsing")
	}
	if IsKnownSpecies("parrot") || !IsKnownSpecies("DOG") {
		t.Fatalf("unexpected IsKnownSpecies")
	}
}
