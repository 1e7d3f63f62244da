package clientstate

import (
	"context"
	"sync"

	"fireworks-storefront/internal/domain"
)

type memoryRepo struct {
	mu      sync.RWMutex
	records map[string][]byte
}

// NewMemory returns a process-local Repository; nothing survives a restart.
func NewMemory() Repository {
	return &memoryRepo{records: make(map[string][]byte)}
}

func (r *memoryRepo) Load(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.records[key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	out := make([]byte, len(v))
	copy(out, v)
	return out, nil
}

func (r *memoryRepo) Save(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	r.mu.Lock()
	r.records[key] = stored
	r.mu.Unlock()
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	delete(r.records, key)
	r.mu.Unlock()
	return nil
}
