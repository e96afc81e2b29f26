package memory

import (
	"context"
	"sync"
)

// MediaStore guarda archivos en memoria. Las URLs son memory://bucket/key.
type MediaStore struct {
	mu      sync.RWMutex
	objects map[string]object
}

type object struct {
	contentType string
	data        []byte
}

func NewMediaStore() *MediaStore {
	return &MediaStore{objects: make(map[string]object)}
}

func (m *MediaStore) Put(ctx context.Context, bucket, key, contentType string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	u := "memory://" + bucket + "/" + key
	m.objects[u] = object{contentType: contentType, data: append([]byte(nil), data...)}
	return u, nil
}

// Object lo usan los tests para ver qué se subió.
func (m *MediaStore) Object(url string) (contentType string, data []byte, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	o, ok := m.objects[url]
	return o.contentType, o.data, ok
}
