package objectstore

import (
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore is an in-memory ObjectStore for tests and local runs
// without a storage service.
type MemoryStore struct {
	base    string
	objects map[string][]byte
	mu      sync.RWMutex

	// UploadErr, when set, is returned by every Upload. Lets tests
	// exercise the upload-failure path.
	UploadErr error
}

// NewMemoryStore creates a MemoryStore whose public URLs are rooted at
// base (e.g. "https://storage.test").
func NewMemoryStore(base string) *MemoryStore {
	return &MemoryStore{
		base:    base,
		objects: make(map[string][]byte),
	}
}

// Upload stores the object bytes in memory, overwriting same-path objects.
func (s *MemoryStore) Upload(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	if s.UploadErr != nil {
		return s.UploadErr
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read object %s: %w", path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[path] = data
	return nil
}

// PublicURL returns the would-be public address of a stored object.
func (s *MemoryStore) PublicURL(path string) string {
	return s.base + "/" + path
}

// Object returns the stored bytes for a path, for test assertions.
func (s *MemoryStore) Object(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[path]
	return data, ok
}

// Len reports how many objects have been stored.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
