package pets

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("pet not found")
)

type Service struct {
	repo  Repository
	media MediaStore
	now   func() time.Time
}

// NewService: media puede ser nil si no se aceptan archivos (se rechazan uploads).
func NewService(repo Repository, media MediaStore) *Service {
	return &Service{
		repo:  repo,
		media: media,
		now:   time.Now,
	}
}

// Upload es un archivo opcional adjunto al alta de la mascota.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type CreateInput struct {
	Name    string
	Species string
	Breed   string
	Sex     string
	Age     string
	Weight  string
	Notes   string

	Image         *Upload // foto de la mascota (opcional)
	MedicalReport *Upload // informe médico (opcional)
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, ErrInvalidInput
	}
	if strings.TrimSpace(in.Name) == "" {
		return Pet{}, ErrInvalidInput
	}
	// species es obligatoria al crear; el fallback a dog es solo para lectura.
	if !IsKnownSpecies(in.Species) {
		return Pet{}, ErrInvalidInput
	}

	now := s.now()
	p := Pet{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		Name:        strings.TrimSpace(in.Name),
		Species:     ParseSpecies(in.Species),
		Breed:       strings.TrimSpace(in.Breed),
		Sex:         parseSex(in.Sex),
		Age:         strings.TrimSpace(in.Age),
		Weight:      strings.TrimSpace(in.Weight),
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// Foto e informe se suben en paralelo; si falla uno no se crea la mascota.
	g, gctx := errgroup.WithContext(ctx)
	if in.Image != nil {
		g.Go(func() error {
			u, err := s.upload(gctx, BucketPetImages, ownerUserID, now, in.Image)
			if err != nil {
				return err
			}
			p.ImageURL = u
			return nil
		})
	}
	if in.MedicalReport != nil {
		g.Go(func() error {
			u, err := s.upload(gctx, BucketMedicalReport, ownerUserID, now, in.MedicalReport)
			if err != nil {
				return err
			}
			p.MedicalReportURL = u
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Pet{}, err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// upload guarda en <bucket>/<userID>/<unixnano>_<filename>.
func (s *Service) upload(ctx context.Context, bucket, ownerUserID string, now time.Time, up *Upload) (string, error) {
	if len(up.Data) == 0 {
		return "", fmt.Errorf("%w: empty file for %s", ErrInvalidInput, bucket)
	}
	if s.media == nil {
		return "", fmt.Errorf("%w: file uploads are not configured", ErrInvalidInput)
	}

	name := path.Base(strings.ReplaceAll(strings.TrimSpace(up.Filename), "\\", "/"))
	if name == "" || name == "." || name == "/" {
		name = "upload"
	}
	key := fmt.Sprintf("%s/%d_%s", ownerUserID, now.UnixNano(), name)

	ct := up.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}

	u, err := s.media.Put(ctx, bucket, key, ct, up.Data)
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", bucket, err)
	}
	return u, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Pet, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

// ListBySpecies es la lista que ve el dueño en la pestaña de especie.
func (s *Service) ListBySpecies(ctx context.Context, ownerUserID string, sp Species) ([]Pet, error) {
	return s.repo.ListBySpecies(ctx, ownerUserID, sp)
}
