package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id string) (Pet, error)
	ListByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	// ListBySpecies es la lista de la pestaña de especie del selector.
	ListBySpecies(ctx context.Context, ownerUserID string, sp Species) ([]Pet, error)
}

// Buckets donde se guardan los archivos de una mascota.
const (
	BucketPetImages     = "pet-images"
	BucketMedicalReport = "medical-report"
)

// MediaStore guarda archivos (foto, informe médico) y devuelve una URL pública.
type MediaStore interface {
	Put(ctx context.Context, bucket, key, contentType string, data []byte) (url string, err error)
}
