package history

import "time"

// Kind distingue los dos tipos de escaneo que se registran.
// @Enum emotion, health
type Kind string

const (
	KindEmotion Kind = "emotion"
	KindHealth  Kind = "health"
)

func parseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindEmotion, KindHealth:
		return Kind(s), true
	}
	return "", false
}

// ScanEntry es un resultado publicado, atribuido a una mascota.
type ScanEntry struct {
	ID          string
	PetID       string
	OwnerUserID string

	Kind      Kind
	MediaKind string // image | audio
	Endpoint  string

	Label      string
	Confidence float64
	Advice     string

	Escalated bool
	ScannedAt time.Time
}
