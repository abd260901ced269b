package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"inventario/internal/models"
	"inventario/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service: service,
	}
}

// RegisterRoutes registers the product routes behind the given middleware.
// Fixed paths go before /:id so they are not captured as ids.
func (h *ProductHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	productRoutes := router.Group("/productos", mw...)
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Get("/ordenados-por-categoria", h.HandleGetProductsSortedByCategory)
	productRoutes.Get("/buscar-por-nombre/:nombre", h.HandleSearchProductsByName)
	productRoutes.Get("/por-proveedor/:id", h.HandleGetProductsBySupplier)
	productRoutes.Get("/por-categoria/:id", h.HandleGetProductsByCategory)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
	productRoutes.Post("/:id/stock/reducir", h.HandleReduceStock)
	productRoutes.Post("/:id/stock/aumentar", h.HandleIncreaseStock)
	productRoutes.Get("/:id/disponibilidad", h.HandleCheckAvailability)
	productRoutes.Get("/:id/precio-con-descuento", h.HandleQuoteDiscount)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}
	product, err := h.service.GetProductByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, fmt.Sprintf("Product with ID %d not found", id))
	}
	return c.JSON(product)
}

func (h *ProductHandler) HandleGetProductsSortedByCategory(c *fiber.Ctx) error {
	products, err := h.service.GetProductsSortedByCategory(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleSearchProductsByName(c *fiber.Ctx) error {
	products, err := h.service.SearchProductsByName(c.UserContext(), c.Params("nombre"))
	if err != nil {
		return respondError(c, err, "Could not search products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProductsBySupplier(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}
	products, err := h.service.GetProductsBySupplier(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

func (h *ProductHandler) HandleGetProductsByCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}
	products, err := h.service.GetProductsByCategory(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, "Could not retrieve products")
	}
	return c.JSON(products)
}

// HandleCreateProduct creates a new product and returns its flattened view.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	product, err := h.service.CreateProduct(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "Could not create product")
	}

	c.Location(fmt.Sprintf("%s/%d", strings.TrimSuffix(c.Path(), "/"), product.ID))
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}
	var in services.ProductInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	if _, err := h.service.UpdateProduct(c.UserContext(), id, in); err != nil {
		return respondError(c, err, fmt.Sprintf("Could not update product %d", id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteProduct deletes a product.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}
	if err := h.service.DeleteProduct(c.UserContext(), id); err != nil {
		return respondError(c, err, fmt.Sprintf("Could not delete product %d", id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleReduceStock takes units out of stock. Asking for more than is
// available leaves the stock as it was and still answers 200.
func (h *ProductHandler) HandleReduceStock(c *fiber.Ctx) error {
	return h.adjustStock(c, h.service.ReduceStock)
}

// HandleIncreaseStock puts units into stock.
func (h *ProductHandler) HandleIncreaseStock(c *fiber.Ctx) error {
	return h.adjustStock(c, h.service.IncreaseStock)
}

type stockAdjustFunc func(ctx context.Context, id uint, in services.StockAdjustmentInput) (*models.ProductView, error)

func (h *ProductHandler) adjustStock(c *fiber.Ctx, adjust stockAdjustFunc) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}
	var in services.StockAdjustmentInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	product, err := adjust(c.UserContext(), id, in)
	if err != nil {
		return respondError(c, err, fmt.Sprintf("Could not adjust stock of product %d", id))
	}
	return c.JSON(product)
}

// HandleCheckAvailability answers GET /:id/disponibilidad?cantidad=n. n
// defaults to 1.
func (h *ProductHandler) HandleCheckAvailability(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}
	requested := 1
	if raw := c.Query("cantidad"); raw != "" {
		requested, err = strconv.Atoi(raw)
		if err != nil || requested < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"message": "Invalid query parameter",
				"error":   fmt.Sprintf("cantidad must be a positive integer, got %q", raw),
			})
		}
	}

	availability, err := h.service.CheckAvailability(c.UserContext(), id, requested)
	if err != nil {
		return respondError(c, err, fmt.Sprintf("Product with ID %d not found", id))
	}
	return c.JSON(availability)
}

// HandleQuoteDiscount answers GET /:id/precio-con-descuento?porcentaje=p.
func (h *ProductHandler) HandleQuoteDiscount(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}
	raw := c.Query("porcentaje")
	percentage, err := decimal.NewFromString(raw)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid query parameter",
			"error":   fmt.Sprintf("porcentaje must be a number, got %q", raw),
		})
	}

	quote, err := h.service.QuoteDiscount(c.UserContext(), id, percentage)
	if err != nil {
		return respondError(c, err, "Could not apply discount")
	}
	return c.JSON(quote)
}
