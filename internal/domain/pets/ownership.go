package pets

import (
	"context"
	"strings"
)

// GetOwned devuelve la mascota solo si pertenece a ownerUserID.
// Para quien no es dueño responde ErrNotFound (no filtramos existencia).
func (s *Service) GetOwned(ctx context.Context, ownerUserID, petID string) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" || strings.TrimSpace(petID) == "" {
		return Pet{}, ErrNotFound
	}
	p, err := s.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, ErrNotFound
	}
	if p.OwnerUserID != ownerUserID {
		return Pet{}, ErrNotFound
	}
	return p, nil
}
