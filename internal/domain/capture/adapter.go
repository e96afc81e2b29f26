package capture

import (
	"context"
	"fmt"

	"pawsense/internal/platform/logger"
	"pawsense/internal/ports/capabilities"
)

// Adapter convierte archivos y grabaciones en CapturedMedia.
type Adapter struct {
	grants   capabilities.CapabilitiesResolver
	previews *PreviewRegistry
	log      logger.Logger
}

func NewAdapter(grants capabilities.CapabilitiesResolver, previews *PreviewRegistry, log logger.Logger) *Adapter {
	if previews == nil {
		previews = NewPreviewRegistry()
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Adapter{grants: grants, previews: previews, log: log}
}

func (a *Adapter) Previews() *PreviewRegistry { return a.previews }

func (a *Adapter) CaptureImage(fh FileHandle) (CapturedMedia, error) {
	return a.captureFile(KindImage, fh)
}

// CaptureAudioFile acepta un archivo de audio ya grabado.
func (a *Adapter) CaptureAudioFile(fh FileHandle) (CapturedMedia, error) {
	return a.captureFile(KindAudio, fh)
}

func (a *Adapter) captureFile(kind Kind, fh FileHandle) (CapturedMedia, error) {
	if len(fh.Data) == 0 {
		return CapturedMedia{}, fmt.Errorf("%w: empty %s file", ErrInvalidMedia, kind)
	}
	if len(fh.Data) > MaxMediaBytes {
		return CapturedMedia{}, fmt.Errorf("%w: %s file exceeds %d bytes", ErrInvalidMedia, kind, MaxMediaBytes)
	}

	mt := resolveMIME(kind, fh.Data, fh.ContentType)
	if mt == "" {
		return CapturedMedia{}, fmt.Errorf("%w: %s %q", ErrUnsupportedMedia, kind, fh.ContentType)
	}

	name := fh.Name
	if name == "" {
		name = defaultFilename(kind, mt)
	}

	return CapturedMedia{
		Kind:       kind,
		Data:       fh.Data,
		MIME:       mt,
		Filename:   name,
		PreviewRef: a.previews.Put(mt, fh.Data),
	}, nil
}

// checkMicrophone: rechazo o error de lookup => ErrCaptureDenied.
func (a *Adapter) checkMicrophone(ctx context.Context, userID string) error {
	if a.grants == nil {
		return nil
	}
	ok, err := a.grants.HasFeature(ctx, capabilities.CapabilityCheck{
		UserID:     userID,
		Capability: capabilities.Microphone,
	})
	if err != nil {
		a.log.Warn("microphone grant lookup failed", map[string]any{"user_id": userID, "error": err})
		return fmt.Errorf("%w: %v", ErrCaptureDenied, err)
	}
	if !ok {
		return ErrCaptureDenied
	}
	return nil
}

func defaultFilename(kind Kind, mt string) string {
	ext := map[string]string{
		"image/jpeg":  "jpg",
		"image/png":   "png",
		"image/webp":  "webp",
		"image/gif":   "gif",
		"image/bmp":   "bmp",
		"audio/wav":   "wav",
		"audio/x-wav": "wav",
		"audio/mpeg":  "mp3",
		"audio/ogg":   "ogg",
		"audio/webm":  "webm",
		"video/webm":  "webm",
		"audio/mp4":   "m4a",
		"audio/x-m4a": "m4a",
		"video/mp4":   "mp4",
		"audio/flac":  "flac",
		"audio/aac":   "aac",
	}[mt]
	if ext == "" {
		ext = "bin"
	}
	if kind == KindAudio {
		return "recording." + ext
	}
	return "capture." + ext
}
