package models

// SettingsKey is the key of the single store-wide settings document.
const SettingsKey = "allSettings"

// DefaultFeaturedProductsLimit applies when the settings document is
// absent or carries no positive limit.
const DefaultFeaturedProductsLimit = 4

// Settings is the store-wide configuration document.
type Settings struct {
	FeaturedProductsLimit int `json:"featuredProductsLimit" validate:"gt=0"`
}

// SettingsDocument is the persisted form of a settings document: the
// payload is kept as raw JSON so malformed documents are caught when
// decoded, not when read.
type SettingsDocument struct {
	Key     string `json:"key" gorm:"primaryKey;type:varchar(100)"`
	Payload string `json:"payload" gorm:"type:text"`
}
