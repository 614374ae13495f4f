package handlers

import (
	"errors"
	"fmt"
	"log"
	"strconv"

	"berserkfit/internal/models"
	"berserkfit/internal/services"
	"berserkfit/pkg/preview"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the admin panel's write surface: the product
// editor submission, deletion, settings and image previews.
type AdminHandler struct {
	editorService   *services.EditorService
	productService  *services.ProductService
	settingsService *services.SettingsService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(editorService *services.EditorService, productService *services.ProductService, settingsService *services.SettingsService) *AdminHandler {
	return &AdminHandler{
		editorService:   editorService,
		productService:  productService,
		settingsService: settingsService,
	}
}

// RegisterRoutes registers the admin routes with the Fiber app.
func (h *AdminHandler) RegisterRoutes(router fiber.Router) {
	adminRoutes := router.Group("/admin")
	adminRoutes.Post("/products", h.HandleSubmitProduct)
	adminRoutes.Post("/products/preview", h.HandlePreviewImage)
	adminRoutes.Put("/products/:id", h.HandleSubmitProduct)
	adminRoutes.Delete("/products/:id", h.HandleDeleteProduct)
	adminRoutes.Put("/settings", h.HandleUpdateSettings)
}

// HandleSubmitProduct runs one editor submission. The request is a
// multipart form with the product fields plus optional "image" and
// "hoverImage" files; POST creates, PUT with an id updates. Failures
// answer with a distinct message per kind and leave nothing reset, so
// the admin can retry the same form.
func (h *AdminHandler) HandleSubmitProduct(c *fiber.Ctx) error {
	req, closers, err := h.parseSubmitForm(c)
	defer func() {
		for _, closeFile := range closers {
			closeFile()
		}
	}()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid product form",
			"error":   err.Error(),
		})
	}

	// The required-fields guard the browser form enforces client-side.
	if req.Name == "" || c.FormValue("price") == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Name and price are required.",
		})
	}

	product, err := h.editorService.Submit(c.UserContext(), *req)
	if err != nil {
		return h.submitError(c, err)
	}

	status := fiber.StatusOK
	if c.Method() == fiber.MethodPost {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(product)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *AdminHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	productID := c.Params("id")
	if err := h.productService.DeleteProduct(productID); err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		if err.Error() == fmt.Sprintf("product with ID %s not found for deletion", productID) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": fmt.Sprintf("Product with ID %s not found", productID),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not delete product",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Product %s deleted successfully", productID),
	})
}

// HandlePreviewImage converts an uploaded file into a data URL so the
// editor can show a local preview without touching object storage.
func (h *AdminHandler) HandlePreviewImage(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "An image file is required for preview",
			"error":   err.Error(),
		})
	}

	file, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Could not open uploaded file",
			"error":   err.Error(),
		})
	}
	defer file.Close()

	dataURL, err := preview.DataURL(file, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		log.Printf("Error producing image preview: %v", err)
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"message": "Could not produce image preview",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"preview": dataURL,
	})
}

// SettingsUpdateRequest represents the request body for settings updates.
type SettingsUpdateRequest struct {
	FeaturedProductsLimit int `json:"featuredProductsLimit"`
}

// HandleUpdateSettings persists a new featured-products limit.
func (h *AdminHandler) HandleUpdateSettings(c *fiber.Ctx) error {
	var req SettingsUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing settings update body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.settingsService.UpdateLimit(req.FeaturedProductsLimit); err != nil {
		log.Printf("Error updating settings: %v", err)
		if errors.Is(err, services.ErrPersistenceFailure) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"message": "Could not save settings",
				"error":   err.Error(),
			})
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid settings",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"message": "Settings updated successfully",
	})
}

// parseSubmitForm extracts a SubmitRequest from the multipart form.
// The returned closers must be run after the submission finishes.
func (h *AdminHandler) parseSubmitForm(c *fiber.Ctx) (*services.SubmitRequest, []func(), error) {
	var closers []func()

	req := &services.SubmitRequest{
		ID:            c.Params("id"),
		Name:          c.FormValue("name"),
		Category:      c.FormValue("category"),
		Sizes:         models.SplitSizes(c.FormValue("sizes")),
		ImageURL:      c.FormValue("imageUrl"),
		HoverImageURL: c.FormValue("hoverImageUrl"),
	}

	if v := c.FormValue("price"); v != "" {
		price, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, closers, fmt.Errorf("invalid price %q", v)
		}
		req.Price = price
	}
	if v := c.FormValue("discount"); v != "" {
		discount, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return req, closers, fmt.Errorf("invalid discount %q", v)
		}
		req.Discount = discount
	}

	for _, slot := range []struct {
		field  string
		target **services.StagedFile
	}{
		{"image", &req.Image},
		{"hoverImage", &req.HoverImage},
	} {
		staged, closeFile, err := openStagedFile(c, slot.field)
		if err != nil {
			return req, closers, err
		}
		if staged == nil {
			continue
		}
		*slot.target = staged
		closers = append(closers, closeFile)
	}

	return req, closers, nil
}

// openStagedFile opens an optional multipart file field. A missing
// field is not an error; it simply means nothing was staged.
func openStagedFile(c *fiber.Ctx, field string) (*services.StagedFile, func(), error) {
	fileHeader, err := c.FormFile(field)
	if err != nil {
		return nil, nil, nil
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open %s file: %w", field, err)
	}
	return &services.StagedFile{
		Name:        fileHeader.Filename,
		Size:        fileHeader.Size,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Reader:      file,
	}, func() { file.Close() }, nil
}

// submitError maps an editor failure to a distinct, retryable response
// per failure kind.
func (h *AdminHandler) submitError(c *fiber.Ctx, err error) error {
	log.Printf("Error submitting product: %v", err)

	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, services.ErrSubmitInFlight):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{
			"message": "A submission for this product is already in progress.",
		})
	case errors.Is(err, services.ErrUploadFailure):
		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"message": "Image upload failed. Your changes were not saved; please retry.",
			"error":   err.Error(),
		})
	case errors.Is(err, services.ErrPersistenceFailure):
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Saving the product failed. Your changes were not saved; please retry.",
			"error":   err.Error(),
		})
	case errors.As(err, &validationErrors):
		errorMessages := make(map[string]string)
		for _, e := range validationErrors {
			errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Could not save product",
			"error":   err.Error(),
		})
	}
}
