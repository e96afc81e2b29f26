package capture

import (
	"maps"
	"mime"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

var allowedImage = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
	"image/bmp":  true,
}

var allowedAudio = map[string]bool{
	"audio/wav":    true,
	"audio/x-wav":  true,
	"audio/wave":   true,
	"audio/mpeg":   true,
	"audio/ogg":    true,
	"audio/webm":   true,
	"video/webm":   true, // MediaRecorder de los navegadores graba audio en contenedor webm
	"audio/mp4":    true,
	"audio/x-m4a":  true,
	"video/mp4":    true,
	"audio/flac":   true,
	"audio/x-flac": true,
	"audio/aac":    true,
}

// resolveMIME detecta el tipo por contenido y, si no se reconoce, usa el declarado.
// Devuelve "" si ninguno está permitido para kind.
func resolveMIME(kind Kind, data []byte, declared string) string {
	allowed := allowedImage
	if kind == KindAudio {
		allowed = allowedAudio
	}

	m := mimetype.Detect(data)
	if sniffed := baseType(m.String()); sniffed != "" && sniffed != "application/octet-stream" {
		return matchAllowed(m, allowed)
	}

	if d := baseType(declared); allowed[d] {
		return d
	}
	return ""
}

// matchAllowed sube por los padres del tipo detectado y acepta el primero que,
// por nombre o alias, esté en allowed.
func matchAllowed(m *mimetype.MIME, allowed map[string]bool) string {
	names := slices.Sorted(maps.Keys(allowed))
	for ; m != nil; m = m.Parent() {
		if mt := baseType(m.String()); allowed[mt] {
			return mt
		}
		for _, a := range names {
			if m.Is(a) {
				return a
			}
		}
	}
	return ""
}

func baseType(ct string) string {
	ct = strings.TrimSpace(ct)
	if ct == "" {
		return ""
	}
	mt, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return strings.ToLower(ct)
	}
	return mt
}
