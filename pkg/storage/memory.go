package storage

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"
)

// MemoryStorage keeps blobs in a map. Test double for Provider.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

func (m *MemoryStorage) Upload(ctx context.Context, request *UploadRequest) (*UploadResponse, error) {
	data, err := io.ReadAll(request.Reader)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.blobs[request.Key] = data
	m.mu.Unlock()

	return &UploadResponse{
		Key:  request.Key,
		URL:  m.PublicURL(request.Key),
		Size: int64(len(data)),
	}, nil
}

func (m *MemoryStorage) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.blobs, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStorage) SignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return m.PublicURL(key), nil
}

func (m *MemoryStorage) PublicURL(key string) string {
	return fmt.Sprintf("memory://%s", key)
}

// Get returns a stored blob, for assertions in tests.
func (m *MemoryStorage) Get(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[key]
	return data, ok
}

var _ Provider = (*MemoryStorage)(nil)
