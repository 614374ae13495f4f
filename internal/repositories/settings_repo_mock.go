package repositories

import (
	"fmt"
	"sync"
)

// MockSettingsRepository is an in-memory implementation of SettingsRepository.
type MockSettingsRepository struct {
	docs map[string]string
	mu   sync.RWMutex
}

// NewMockSettingsRepository creates a new instance of MockSettingsRepository.
func NewMockSettingsRepository() *MockSettingsRepository {
	return &MockSettingsRepository{
		docs: make(map[string]string),
	}
}

// Fetch returns the raw payload of a settings document.
func (r *MockSettingsRepository) Fetch(key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payload, ok := r.docs[key]
	if !ok {
		return "", fmt.Errorf("settings document %s: %w", key, ErrSettingsNotFound)
	}
	return payload, nil
}

// Save upserts a settings document payload.
func (r *MockSettingsRepository) Save(key string, payload string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.docs[key] = payload
	return nil
}
