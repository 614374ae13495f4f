package models

import (
	"strings"

	"gorm.io/gorm"
)

// SizesDelimiter separates size labels in the persisted sizes string.
const SizesDelimiter = ","

// Product represents a sellable item in the store.
// Sizes are persisted as a comma-delimited string and split into a list
// for display; Image and HoverImage hold object-storage public URLs and
// either may be empty.
type Product struct {
	ID         string  `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,max=36"`
	Name       string  `json:"name" validate:"required,min=1,max=100"`
	Price      float64 `json:"price" validate:"gte=0"`
	Discount   float64 `json:"discount" validate:"gte=0,lte=100"`
	Sizes      string  `json:"sizes" validate:"omitempty,max=255"`
	Category   string  `json:"category" validate:"omitempty,max=100"`
	Image      string  `json:"image" validate:"omitempty,url"`
	HoverImage string  `json:"hoverImage" validate:"omitempty,url"`
	gorm.Model         // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// FeaturedProduct is the display-ready shape produced by the catalog
// pipeline: sizes split into a list and prices derived for rendering.
type FeaturedProduct struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	Discount      float64  `json:"discount"`
	Sizes         []string `json:"sizes"`
	Category      string   `json:"category"`
	Image         string   `json:"image"`
	HoverImage    string   `json:"hoverImage"`
	DisplayPrice  string   `json:"displayPrice"`
	OriginalPrice string   `json:"originalPrice,omitempty"` // set only when Discount > 0
}

// SplitSizes splits a delimited sizes string into trimmed, non-empty
// labels, preserving order.
func SplitSizes(s string) []string {
	sizes := make([]string, 0)
	for _, token := range strings.Split(s, SizesDelimiter) {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		sizes = append(sizes, token)
	}
	return sizes
}

// JoinSizes joins size labels back into the persisted form. Labels are
// trimmed and blanks dropped so that split and join round-trip to a
// canonical string.
func JoinSizes(sizes []string) string {
	return strings.Join(SplitSizes(strings.Join(sizes, SizesDelimiter)), SizesDelimiter)
}
