package capture

import (
	"sync"

	"github.com/google/uuid"
)

type Preview struct {
	MIME string
	Data []byte
}

// PreviewRegistry guarda las vistas previas vivas por ref.
// Quien reemplaza o termina una sesión debe llamar Release.
type PreviewRegistry struct {
	mu    sync.RWMutex
	items map[string]Preview
}

func NewPreviewRegistry() *PreviewRegistry {
	return &PreviewRegistry{items: make(map[string]Preview)}
}

func (p *PreviewRegistry) Put(mime string, data []byte) string {
	ref := uuid.NewString()
	p.mu.Lock()
	p.items[ref] = Preview{MIME: mime, Data: data}
	p.mu.Unlock()
	return ref
}

func (p *PreviewRegistry) Get(ref string) (Preview, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.items[ref]
	return v, ok
}

// Release es idempotente.
func (p *PreviewRegistry) Release(ref string) {
	if ref == "" {
		return
	}
	p.mu.Lock()
	delete(p.items, ref)
	p.mu.Unlock()
}

func (p *PreviewRegistry) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.items)
}
