package postgres

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"pawsense/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, owner_user_id,
	name, species, breed, sex,
	age, weight, notes,
	image_url, medical_report_url,
	created_at, updated_at`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		string(p.Species),
		p.Breed,
		string(p.Sex),
		p.Age,
		p.Weight,
		p.Notes,
		p.ImageURL,
		p.MedicalReportURL,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return err
}

func (r *PetsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `SELECT `+petColumns+` FROM pets WHERE id = $1`, id)
	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}
	return r.list(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1
		ORDER BY created_at ASC, id ASC
	`, ownerUserID)
}

// ListBySpecies usa el índice (owner_user_id, species).
func (r *PetsRepo) ListBySpecies(ctx context.Context, ownerUserID string, sp pets.Species) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}
	return r.list(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1 AND species = $2
		ORDER BY created_at ASC, id ASC
	`, ownerUserID, string(sp))
}

func (r *PetsRepo) list(ctx context.Context, query string, args ...any) ([]pets.Pet, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var p pets.Pet
	var species, sex string
	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&species,
		&p.Breed,
		&sex,
		&p.Age,
		&p.Weight,
		&p.Notes,
		&p.ImageURL,
		&p.MedicalReportURL,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Species = pets.ParseSpecies(species)
	p.Sex = pets.Sex(sex)
	return p, nil
}
