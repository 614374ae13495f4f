package handlers

import (
	"fmt"
	"log"

	"berserkfit/internal/services"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles the storefront's read-only HTTP surface.
type ProductHandler struct {
	catalogService  *services.CatalogService
	productService  *services.ProductService
	settingsService *services.SettingsService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(catalogService *services.CatalogService, productService *services.ProductService, settingsService *services.SettingsService) *ProductHandler {
	return &ProductHandler{
		catalogService:  catalogService,
		productService:  productService,
		settingsService: settingsService,
	}
}

// RegisterRoutes registers the storefront routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/featured", h.HandleGetFeatured)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	router.Get("/settings", h.HandleGetSettings)
}

// HandleGetFeatured refreshes and returns the featured display state.
// A failed refresh still answers 200: the state carries the inline
// error message and whatever list was displayed before, matching the
// storefront's keep-prior-state behavior.
func (h *ProductHandler) HandleGetFeatured(c *fiber.Ctx) error {
	if err := h.catalogService.Refresh(); err != nil {
		log.Printf("Error refreshing featured products: %v", err)
	}
	return c.JSON(h.catalogService.State())
}

// HandleGetProducts retrieves the full product list for the admin panel.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.productService.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve products",
			"error":   err.Error(),
		})
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.productService.GetProductByID(productID)
	if err != nil {
		log.Printf("Error getting product by ID %s: %v", productID, err)
		if err.Error() == fmt.Sprintf("product with ID %s not found", productID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %s not found", productID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve product",
			"error":   err.Error(),
		})
	}
	return c.JSON(product)
}

// HandleGetSettings returns the store settings document, with defaults
// applied when it is absent.
func (h *ProductHandler) HandleGetSettings(c *fiber.Ctx) error {
	settings, err := h.settingsService.Fetch()
	if err != nil {
		log.Printf("Error fetching settings: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not retrieve settings",
			"error":   err.Error(),
		})
	}
	return c.JSON(settings)
}
