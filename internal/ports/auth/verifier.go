package auth

import "context"

// AuthVerifier verifica un bearer token y devuelve claims o error.
// nil en el router => modo dev (X-Debug-User-ID).
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
