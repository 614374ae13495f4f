package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"berserkfit/internal/models"
	"berserkfit/internal/repositories"
)

// SettingsService reads and writes the store-wide settings document
// for the admin panel. The storefront itself only reads settings,
// through the CatalogService.
type SettingsService struct {
	repo repositories.SettingsRepository
}

// NewSettingsService creates a new SettingsService.
func NewSettingsService(repo repositories.SettingsRepository) *SettingsService {
	return &SettingsService{
		repo: repo,
	}
}

// Fetch returns the decoded settings document, falling back to
// defaults when the document is absent or carries no positive limit.
func (s *SettingsService) Fetch() (*models.Settings, error) {
	settings := &models.Settings{FeaturedProductsLimit: models.DefaultFeaturedProductsLimit}

	payload, err := s.repo.Fetch(models.SettingsKey)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingsNotFound) {
			return settings, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrSettingsRead, err)
	}

	if err := json.Unmarshal([]byte(payload), settings); err != nil {
		return nil, fmt.Errorf("%w: settings document %s: %v", ErrShapeMismatch, models.SettingsKey, err)
	}
	if settings.FeaturedProductsLimit <= 0 {
		settings.FeaturedProductsLimit = models.DefaultFeaturedProductsLimit
	}
	return settings, nil
}

// UpdateLimit persists a new featured-products limit.
func (s *SettingsService) UpdateLimit(limit int) error {
	if limit <= 0 {
		return fmt.Errorf("featured products limit must be positive, got %d", limit)
	}

	payload, err := json.Marshal(models.Settings{FeaturedProductsLimit: limit})
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := s.repo.Save(models.SettingsKey, string(payload)); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistenceFailure, err)
	}
	return nil
}
