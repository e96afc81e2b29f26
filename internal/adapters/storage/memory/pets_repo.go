package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pawsense/internal/domain/pets"
)

// petRepo indexa por dueño para que la pestaña de especie no recorra todo.
type petRepo struct {
	mu      sync.RWMutex
	byID    map[string]pets.Pet
	byOwner map[string][]string
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID:    make(map[string]pets.Pet),
		byOwner: make(map[string][]string),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if strings.TrimSpace(p.OwnerUserID) == "" {
		return errors.New("pet owner required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	r.byOwner[p.OwnerUserID] = append(r.byOwner[p.OwnerUserID], p.ID)
	return nil
}

func (r *petRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	return r.list(ownerUserID, func(pets.Pet) bool { return true }), nil
}

func (r *petRepo) ListBySpecies(ctx context.Context, ownerUserID string, sp pets.Species) ([]pets.Pet, error) {
	return r.list(ownerUserID, func(p pets.Pet) bool { return p.Species == sp }), nil
}

func (r *petRepo) list(ownerUserID string, keep func(pets.Pet) bool) []pets.Pet {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0, len(r.byOwner[ownerUserID]))
	for _, id := range r.byOwner[ownerUserID] {
		if p := r.byID[id]; keep(p) {
			out = append(out, p)
		}
	}

	// Mismo orden que Postgres: created_at asc, id asc.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}
