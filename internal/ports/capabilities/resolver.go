package capabilities

import "context"

// Capabilities conocidas del host.
const (
	// Microphone es el permiso para abrir un stream de audio en vivo.
	Microphone = "device:microphone"
)

// CapabilityCheck es la consulta: ¿este usuario tiene esta capability?
type CapabilityCheck struct {
	UserID     string
	Capability string
}

type CapabilitiesResolver interface {
	HasFeature(ctx context.Context, in CapabilityCheck) (bool, error)
}
