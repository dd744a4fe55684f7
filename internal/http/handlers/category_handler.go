package handlers

import (
	applog "catalogview/internal/log"
	"catalogview/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CategoryHandler serves GET /api/categories.
type CategoryHandler struct {
	Catalog *services.CatalogService
}

func (h *CategoryHandler) List(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "api.categories.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load categories"})
	}
	return c.JSON(cats)
}
