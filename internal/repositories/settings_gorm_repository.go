package repositories

import (
	"fmt"

	"berserkfit/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMSettingsRepository is a GORM implementation of SettingsRepository.
type GORMSettingsRepository struct {
	db *gorm.DB
}

// NewGORMSettingsRepository creates a new instance of GORMSettingsRepository.
func NewGORMSettingsRepository(db *gorm.DB) *GORMSettingsRepository {
	return &GORMSettingsRepository{
		db: db,
	}
}

// Fetch retrieves the raw payload of a settings document.
func (r *GORMSettingsRepository) Fetch(key string) (string, error) {
	var doc models.SettingsDocument
	if err := r.db.First(&doc, "key = ?", key).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return "", fmt.Errorf("settings document %s: %w", key, ErrSettingsNotFound)
		}
		return "", fmt.Errorf("failed to fetch settings document %s: %w", key, err)
	}
	return doc.Payload, nil
}

// Save upserts a settings document payload.
func (r *GORMSettingsRepository) Save(key string, payload string) error {
	doc := models.SettingsDocument{Key: key, Payload: payload}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload"}),
	}).Create(&doc).Error
	if err != nil {
		return fmt.Errorf("failed to save settings document %s: %w", key, err)
	}
	return nil
}
