package classify

import (
	"math"
	"strings"
)

const (
	// Sentinel se muestra cuando no hay resultado válido.
	Sentinel = "—"

	UnknownCondition = "unknown"

	DefaultAdvice = "Consult a veterinarian for proper diagnosis and treatment."
	InitialAdvice = "Upload an image to receive AI-based health guidance."
	FailureAdvice = "Could not get a valid response from the server."

	ImageFailureMessage = "Failed to analyze image. Please try again."
	AudioFailureMessage = "Failed to analyze audio. Please try again."

	HighConfidenceThreshold = 60
)

// Emotions son las etiquetas que devuelve el clasificador de emociones.
var Emotions = []string{"Angry", "Happy", "Relaxed", "Sad", "Normal", "Scared"}

// Result es EmotionResult o ConditionResult.
type Result interface {
	// Percent es la confianza redondeada, como se muestra.
	Percent() int
	isResult()
}

type EmotionResult struct {
	Label      string
	Confidence float64
}

func (EmotionResult) isResult() {}

func (r EmotionResult) Percent() int { return roundPercent(r.Confidence) }

type ConditionResult struct {
	Label      string
	Confidence float64
	Advice     string
}

func (ConditionResult) isResult() {}

func (r ConditionResult) Percent() int { return roundPercent(r.Confidence) }

// SentinelEmotion y SentinelCondition son el estado tras un fallo de dispatch.
func SentinelEmotion() EmotionResult {
	return EmotionResult{Label: Sentinel}
}

func SentinelCondition() ConditionResult {
	return ConditionResult{Label: Sentinel, Advice: FailureAdvice}
}

// ClampConfidence lleva cualquier valor a [0,100]. Lo no numérico (incluye
// strings, nil, NaN) vale 0.
func ClampConfidence(v any) float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	case uint:
		f = float64(n)
	case uint32:
		f = float64(n)
	case uint64:
		f = float64(n)
	default:
		return 0
	}
	if math.IsNaN(f) {
		return 0
	}
	return math.Min(math.Max(f, 0), 100)
}

func roundPercent(c float64) int {
	return int(math.Round(ClampConfidence(c)))
}

// canonicalEmotion acepta mayúsculas/minúsculas; cualquier otra cosa es Sentinel.
func canonicalEmotion(s string) string {
	s = strings.TrimSpace(s)
	for _, e := range Emotions {
		if strings.EqualFold(s, e) {
			return e
		}
	}
	return Sentinel
}

// ConfidenceBand es el texto que acompaña al porcentaje.
func ConfidenceBand(percent int) string {
	if percent >= HighConfidenceThreshold {
		return "High Confidence"
	}
	return "Low Confidence"
}

var importantActions = map[string][]string{
	"ringworm": {
		"Highly contagious – isolate your pet immediately.",
		"Wash hands thoroughly after touching your pet.",
		"Disinfect bedding, toys, and living areas regularly.",
		"Visit a veterinarian for antifungal treatment.",
	},
	"fungal": {
		"Keep the affected area dry and clean.",
		"Do not apply home remedies or human creams.",
		"A veterinarian should prescribe antifungal medication.",
	},
	"dermatitis": {
		"Prevent your pet from scratching or licking the skin.",
		"Avoid using steroid creams without vet advice.",
		"Vet visit is important to find the exact cause.",
	},
	"hypersensitivity": {
		"Check for recent changes in food or environment.",
		"Do not give human allergy medicines.",
		"Consult a vet for allergy testing and safe treatment.",
	},
	"demodicosis": {
		"Do not shave or apply harsh chemicals to the skin.",
		"Requires vet-prescribed medication and monitoring.",
		"Follow-up visits are important until cleared.",
	},
	"healthy": {
		"Skin appears healthy based on the image.",
		"Continue regular grooming and hygiene.",
	},
}

// ImportantActions devuelve los pasos sugeridos para una condición.
func ImportantActions(label string) []string {
	if a, ok := importantActions[label]; ok {
		return append([]string(nil), a...)
	}
	return []string{DefaultAdvice}
}
