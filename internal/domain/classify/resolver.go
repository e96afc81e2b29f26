package classify

import (
	"pawsense/internal/domain/capture"
	"pawsense/internal/domain/pets"
)

// EndpointID identifica un servicio de inferencia.
// @Enum dog-emotion, cat-emotion, audio-emotion, dog-skin, cat-skin
type EndpointID string

const (
	DogEmotion   EndpointID = "dog-emotion"
	CatEmotion   EndpointID = "cat-emotion"
	AudioEmotion EndpointID = "audio-emotion"
	DogSkin      EndpointID = "dog-skin"
	CatSkin      EndpointID = "cat-skin"
)

var endpointPaths = map[EndpointID]string{
	DogEmotion:   "/predict",
	CatEmotion:   "/predict_cat",
	AudioEmotion: "/predict_audio",
	DogSkin:      "/dog-skin",
	CatSkin:      "/cat-skin",
}

// Endpoints en orden estable (para listados).
func Endpoints() []EndpointID {
	return []EndpointID{DogEmotion, CatEmotion, AudioEmotion, DogSkin, CatSkin}
}

// ResolveEmotionEndpoint: el audio no depende de la especie.
// Una especie desconocida se trata como dog.
func ResolveEmotionEndpoint(kind capture.Kind, species pets.Species) EndpointID {
	if kind == capture.KindAudio {
		return AudioEmotion
	}
	if species == pets.SpeciesCat {
		return CatEmotion
	}
	return DogEmotion
}

func ResolveHealthEndpoint(species pets.Species) EndpointID {
	if species == pets.SpeciesCat {
		return CatSkin
	}
	return DogSkin
}

// EndpointPath devuelve la ruta HTTP relativa a la base del servicio.
func EndpointPath(id EndpointID) (string, bool) {
	p, ok := endpointPaths[id]
	return p, ok
}

func IsHealthEndpoint(id EndpointID) bool {
	return id == DogSkin || id == CatSkin
}

// MediaKindFor es el tipo de medio que acepta cada endpoint.
func MediaKindFor(id EndpointID) capture.Kind {
	if id == AudioEmotion {
		return capture.KindAudio
	}
	return capture.KindImage
}
