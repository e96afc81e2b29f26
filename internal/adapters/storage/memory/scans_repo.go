package memory

import (
	"context"
	"errors"
	"sort"
	"sync"

	"pawsense/internal/domain/history"
)

type scanRepo struct {
	mu    sync.RWMutex
	byPet map[string][]history.ScanEntry
}

func NewScanRepo() history.Repository {
	return &scanRepo{
		byPet: make(map[string][]history.ScanEntry),
	}
}

func (r *scanRepo) Create(ctx context.Context, e history.ScanEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e.ID == "" {
		return errors.New("scan id required")
	}
	r.byPet[e.PetID] = append(r.byPet[e.PetID], e)
	return nil
}

func (r *scanRepo) ListByPet(ctx context.Context, petID string, filter history.ListFilter) ([]history.ScanEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}

	out := make([]history.ScanEntry, 0)
	for _, e := range r.byPet[petID] {
		if filter.Matches(e) {
			out = append(out, e)
		}
	}

	// Más reciente primero; SliceStable conserva el orden de inserción en empates.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScannedAt.After(out[j].ScannedAt)
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
