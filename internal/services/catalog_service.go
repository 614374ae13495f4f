package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"berserkfit/internal/models"
	"berserkfit/internal/notify"
	"berserkfit/internal/pricing"
	"berserkfit/internal/repositories"
)

// CatalogState is a snapshot of the storefront's featured-products
// display state.
type CatalogState struct {
	Loading  bool                     `json:"loading"`
	Limit    int                      `json:"limit"`
	Products []models.FeaturedProduct `json:"products"`
	Err      string                   `json:"error,omitempty"`
}

// CatalogService runs the product ingestion pipeline: settings read,
// product read, truncation to the featured limit, size normalization.
// It owns the display state; a failed refresh records an error message
// and leaves the previously displayed products and limit untouched.
type CatalogService struct {
	productRepo  repositories.ProductRepository
	settingsRepo repositories.SettingsRepository
	notifier     notify.Notifier

	mu       sync.RWMutex
	loading  bool
	limit    int
	products []models.FeaturedProduct
	lastErr  string
}

// NewCatalogService creates a new CatalogService with the default
// featured limit in effect until a settings read succeeds.
func NewCatalogService(productRepo repositories.ProductRepository, settingsRepo repositories.SettingsRepository, notifier notify.Notifier) *CatalogService {
	if notifier == nil {
		notifier = notify.NopNotifier{}
	}
	return &CatalogService{
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
		notifier:     notifier,
		limit:        models.DefaultFeaturedProductsLimit,
	}
}

// Refresh runs one pass of the ingestion pipeline. The reads are
// sequential: a settings failure aborts the whole pass, so the limit is
// only ever overwritten by a successful read. The loading flag covers
// the entire pass and is cleared on every exit path.
func (s *CatalogService) Refresh() error {
	s.setLoading(true)
	defer s.setLoading(false)

	limit, err := s.fetchLimit()
	if err != nil {
		s.recordFailure("Failed to fetch settings. Please try again.", err)
		return err
	}

	products, err := s.productRepo.GetAll()
	if err != nil {
		wrapped := fmt.Errorf("%w: %v", ErrProductRead, err)
		s.recordFailure("Failed to fetch products. Please try again.", wrapped)
		return wrapped
	}

	// Truncate before splitting sizes; records past the limit are
	// never parsed.
	if len(products) > limit {
		products = products[:limit]
	}

	formatted := make([]models.FeaturedProduct, 0, len(products))
	for _, p := range products {
		formatted = append(formatted, formatProduct(p))
	}

	s.mu.Lock()
	s.limit = limit
	s.products = formatted
	s.lastErr = ""
	s.mu.Unlock()
	return nil
}

// State returns a copy of the current display state.
func (s *CatalogService) State() CatalogState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]models.FeaturedProduct, len(s.products))
	copy(products, s.products)
	return CatalogState{
		Loading:  s.loading,
		Limit:    s.limit,
		Products: products,
		Err:      s.lastErr,
	}
}

// fetchLimit reads and decodes the settings document. An absent
// document or a non-positive limit falls back to the current limit
// (default 4 on first load); a read or decode failure is an error.
func (s *CatalogService) fetchLimit() (int, error) {
	payload, err := s.settingsRepo.Fetch(models.SettingsKey)
	if err != nil {
		if errors.Is(err, repositories.ErrSettingsNotFound) {
			s.mu.RLock()
			defer s.mu.RUnlock()
			return s.limit, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrSettingsRead, err)
	}

	var settings models.Settings
	if err := json.Unmarshal([]byte(payload), &settings); err != nil {
		return 0, fmt.Errorf("%w: settings document %s: %v", ErrShapeMismatch, models.SettingsKey, err)
	}
	if settings.FeaturedProductsLimit <= 0 {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return s.limit, nil
	}
	return settings.FeaturedProductsLimit, nil
}

func (s *CatalogService) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	s.mu.Unlock()
}

// recordFailure sets the inline error message without touching the
// displayed products or limit.
func (s *CatalogService) recordFailure(msg string, err error) {
	log.Printf("Error refreshing catalog: %v", err)
	s.notifier.Failure(msg)

	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}

// formatProduct converts a stored record into its display-ready form.
func formatProduct(p models.Product) models.FeaturedProduct {
	fp := models.FeaturedProduct{
		ID:           p.ID,
		Name:         p.Name,
		Price:        p.Price,
		Discount:     p.Discount,
		Sizes:        models.SplitSizes(p.Sizes),
		Category:     p.Category,
		Image:        p.Image,
		HoverImage:   p.HoverImage,
		DisplayPrice: pricing.DisplayUSD(p.Price, p.Discount),
	}
	if p.Discount > 0 {
		fp.OriginalPrice = pricing.OriginalUSD(p.Price)
	}
	return fp
}
