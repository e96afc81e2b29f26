package history

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, e ScanEntry) error
	ListByPet(ctx context.Context, petID string, filter ListFilter) ([]ScanEntry, error)
}

type ListFilter struct {
	Kinds []Kind
	From  *time.Time
	To    *time.Time
	Limit int
}

// Matches se comparte entre repos que filtran en memoria.
func (f ListFilter) Matches(e ScanEntry) bool {
	if len(f.Kinds) > 0 {
		ok := false
		for _, k := range f.Kinds {
			if e.Kind == k {
				ok = true
				break
			}
		}
		if !ok {
			return false
		}
	}
	if f.From != nil && e.ScannedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && e.ScannedAt.After(*f.To) {
		return false
	}
	return true
}
