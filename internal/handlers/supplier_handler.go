package handlers

import (
	"fmt"
	"strings"

	"inventario/internal/services"

	"github.com/gofiber/fiber/v2"
)

// SupplierHandler handles HTTP requests for suppliers.
type SupplierHandler struct {
	service *services.SupplierService
}

// NewSupplierHandler creates a new SupplierHandler.
func NewSupplierHandler(service *services.SupplierService) *SupplierHandler {
	return &SupplierHandler{
		service: service,
	}
}

// RegisterRoutes registers the supplier routes behind the given middleware.
func (h *SupplierHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	supplierRoutes := router.Group("/proveedores", mw...)
	supplierRoutes.Get("/", h.HandleGetSuppliers)
	supplierRoutes.Get("/:id", h.HandleGetSupplierByID)
	supplierRoutes.Post("/", h.HandleCreateSupplier)
	supplierRoutes.Put("/:id", h.HandleUpdateSupplier)
	supplierRoutes.Delete("/:id", h.HandleDeleteSupplier)
}

// HandleGetSuppliers retrieves all suppliers.
func (h *SupplierHandler) HandleGetSuppliers(c *fiber.Ctx) error {
	suppliers, err := h.service.GetAllSuppliers(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not retrieve suppliers")
	}
	return c.JSON(suppliers)
}

// HandleGetSupplierByID retrieves a single supplier by its ID.
func (h *SupplierHandler) HandleGetSupplierByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}
	supplier, err := h.service.GetSupplierByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, fmt.Sprintf("Supplier with ID %d not found", id))
	}
	return c.JSON(supplier)
}

// HandleCreateSupplier creates a new supplier.
func (h *SupplierHandler) HandleCreateSupplier(c *fiber.Ctx) error {
	var in services.SupplierInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	supplier, err := h.service.CreateSupplier(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "Could not create supplier")
	}

	c.Location(fmt.Sprintf("%s/%d", strings.TrimSuffix(c.Path(), "/"), supplier.ID))
	return c.Status(fiber.StatusCreated).JSON(supplier)
}

// HandleUpdateSupplier replaces legal name and contact of a supplier.
func (h *SupplierHandler) HandleUpdateSupplier(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}
	var in services.SupplierInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	if _, err := h.service.UpdateSupplier(c.UserContext(), id, in); err != nil {
		return respondError(c, err, fmt.Sprintf("Could not update supplier %d", id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteSupplier deletes a supplier that no product references.
func (h *SupplierHandler) HandleDeleteSupplier(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}
	if err := h.service.DeleteSupplier(c.UserContext(), id); err != nil {
		return respondError(c, err, fmt.Sprintf("Could not delete supplier %d", id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
