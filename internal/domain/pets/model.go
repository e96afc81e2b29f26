package pets

import (
	"strings"
	"time"
)

// Species define las especies soportadas.
// @Enum dog, cat
type Species string

const (
	SpeciesDog Species = "dog"
	SpeciesCat Species = "cat"
)

// ParseSpecies normaliza ("Dog", " CAT ") y cae a dog para cualquier valor desconocido.
func ParseSpecies(s string) Species {
	switch Species(strings.ToLower(strings.TrimSpace(s))) {
	case SpeciesCat:
		return SpeciesCat
	default:
		return SpeciesDog
	}
}

// IsKnownSpecies distingue "cat"/"dog" explícitos de un valor que cayó al fallback.
func IsKnownSpecies(s string) bool {
	switch Species(strings.ToLower(strings.TrimSpace(s))) {
	case SpeciesDog, SpeciesCat:
		return true
	}
	return false
}

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

func parseSex(s string) Sex {
	switch Sex(strings.ToLower(strings.TrimSpace(s))) {
	case SexMale:
		return SexMale
	case SexFemale:
		return SexFemale
	default:
		return SexUnknown
	}
}

// Pet es el registro de mascota al que se atribuye cada escaneo.
// ID es la única clave estable; Name+Species pueden repetirse.
type Pet struct {
	ID          string
	OwnerUserID string

	Name    string
	Species Species
	Breed   string
	Sex     Sex

	Age    string // texto libre, como lo carga el dueño ("3 años")
	Weight string // idem ("12 kg")

	Notes string

	ImageURL         string
	MedicalReportURL string

	CreatedAt time.Time
	UpdatedAt time.Time
}
