package history

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type RecordInput struct {
	PetID       string
	OwnerUserID string
	Kind        Kind
	MediaKind   string
	Endpoint    string
	Label       string
	Confidence  float64
	Advice      string
	Escalated   bool
}

func (s *Service) Record(ctx context.Context, in RecordInput) (ScanEntry, error) {
	if strings.TrimSpace(in.PetID) == "" || strings.TrimSpace(in.OwnerUserID) == "" {
		return ScanEntry{}, ErrInvalidInput
	}
	if _, ok := parseKind(string(in.Kind)); !ok {
		return ScanEntry{}, ErrInvalidInput
	}

	e := ScanEntry{
		ID:          uuid.NewString(),
		PetID:       in.PetID,
		OwnerUserID: in.OwnerUserID,
		Kind:        in.Kind,
		MediaKind:   in.MediaKind,
		Endpoint:    in.Endpoint,
		Label:       in.Label,
		Confidence:  in.Confidence,
		Advice:      in.Advice,
		Escalated:   in.Escalated,
		ScannedAt:   s.now(),
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return ScanEntry{}, err
	}
	return e, nil
}

// ListByPet devuelve lo más reciente primero.
func (s *Service) ListByPet(ctx context.Context, petID string, filter ListFilter) ([]ScanEntry, error) {
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	return s.repo.ListByPet(ctx, petID, filter)
}
