package capture

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidMedia           = errors.New("invalid media")
	ErrRecordingAlreadyActive = errors.New("recording already active")
	ErrCaptureDenied          = errors.New("capture denied")

	// ErrUnsupportedMedia también es ErrInvalidMedia.
	ErrUnsupportedMedia = fmt.Errorf("%w: unsupported type", ErrInvalidMedia)
)

// Kind es el tipo de medio capturado.
// @Enum image, audio
type Kind string

const (
	KindImage Kind = "image"
	KindAudio Kind = "audio"
)

func ParseKind(s string) (Kind, bool) {
	switch Kind(s) {
	case KindImage, KindAudio:
		return Kind(s), true
	}
	return "", false
}

// MaxMediaBytes es el tope de un archivo o de una grabación completa.
const MaxMediaBytes = 25 << 20

// FileHandle es un archivo elegido por el usuario (upload).
type FileHandle struct {
	Name        string
	ContentType string
	Data        []byte
}

// CapturedMedia es lo que se envía a inferencia. Data no vacío.
type CapturedMedia struct {
	Kind       Kind
	Data       []byte
	MIME       string
	Filename   string
	PreviewRef string
}
