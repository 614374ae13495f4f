package repositories

import (
	"berserkfit/internal/models"
)

// ProductRepository defines the interface for product data access.
// GetAll returns products in creation order, oldest first, so the
// storefront's featured truncation is stable.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Delete(id string) error
}
