package handlers

import (
	"fmt"
	"strings"

	"inventario/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service *services.CategoryService
}

func NewCategoryHandler(service *services.CategoryService) *CategoryHandler {
	return &CategoryHandler{
		service: service,
	}
}

// RegisterRoutes registers the category routes behind the given middleware.
func (h *CategoryHandler) RegisterRoutes(router fiber.Router, mw ...fiber.Handler) {
	categoryRoutes := router.Group("/categorias", mw...)
	categoryRoutes.Get("/", h.HandleGetCategories)
	categoryRoutes.Get("/:id", h.HandleGetCategoryByID)
	categoryRoutes.Post("/", h.HandleCreateCategory)
	categoryRoutes.Put("/:id", h.HandleUpdateCategory)
	categoryRoutes.Delete("/:id", h.HandleDeleteCategory)
}

func (h *CategoryHandler) HandleGetCategories(c *fiber.Ctx) error {
	categories, err := h.service.GetAllCategories(c.UserContext())
	if err != nil {
		return respondError(c, err, "Could not retrieve categories")
	}
	return c.JSON(categories)
}

func (h *CategoryHandler) HandleGetCategoryByID(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}
	category, err := h.service.GetCategoryByID(c.UserContext(), id)
	if err != nil {
		return respondError(c, err, fmt.Sprintf("Category with ID %d not found", id))
	}
	return c.JSON(category)
}

func (h *CategoryHandler) HandleCreateCategory(c *fiber.Ctx) error {
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	category, err := h.service.CreateCategory(c.UserContext(), in)
	if err != nil {
		return respondError(c, err, "Could not create category")
	}

	c.Location(fmt.Sprintf("%s/%d", strings.TrimSuffix(c.Path(), "/"), category.ID))
	return c.Status(fiber.StatusCreated).JSON(category)
}

func (h *CategoryHandler) HandleUpdateCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}
	var in services.CategoryInput
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c, err)
	}

	if _, err := h.service.UpdateCategory(c.UserContext(), id, in); err != nil {
		return respondError(c, err, fmt.Sprintf("Could not update category %d", id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HandleDeleteCategory answers 409 while products still use the category.
func (h *CategoryHandler) HandleDeleteCategory(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return invalidID(c, err)
	}
	if err := h.service.DeleteCategory(c.UserContext(), id); err != nil {
		return respondError(c, err, fmt.Sprintf("Could not delete category %d", id))
	}
	return c.SendStatus(fiber.StatusNoContent)
}
