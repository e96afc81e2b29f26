package sessionstore

import "context"

// Store es el almacenamiento persistente de sesión (equivalente al localStorage del cliente web).
// namespace suele ser el userID; key es una clave fija (p.ej. "pawsense_report").
type Store interface {
	Put(ctx context.Context, namespace, key string, value []byte) error
	// Get devuelve ok=false (sin error) si la clave no existe.
	Get(ctx context.Context, namespace, key string) (value []byte, ok bool, err error)
	Delete(ctx context.Context, namespace, key string) error
}
