package handlers

import (
	"errors"

	"catalogview/internal/domain"
	applog "catalogview/internal/log"
	"catalogview/internal/services"
	"catalogview/internal/validate"

	"github.com/gofiber/fiber/v2"
)

// ProductHandler serves the /api/products endpoints.
type ProductHandler struct {
	Catalog *services.CatalogService
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	list, err := h.Catalog.ListProducts()
	if err != nil {
		applog.Error(c, "api.products.list.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load products"})
	}
	return c.JSON(list)
}

func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}
	p, err := h.Catalog.GetProduct(id)
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}
	if err != nil {
		applog.Error(c, "api.products.get.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not load product"})
	}
	return c.JSON(p)
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var np domain.NewProduct
	if err := c.BodyParser(&np); err != nil {
		applog.Security(c, "validation.fail", map[string]any{"body": "product"})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid JSON body"})
	}
	np.Name, _ = validate.Name(np.Name)

	p, err := h.Catalog.CreateProduct(np)
	var invalid *services.InvalidError
	if errors.As(err, &invalid) {
		applog.Security(c, "validation.fail", map[string]any{"reason": invalid.Reason})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": invalid.Reason})
	}
	if err != nil {
		applog.Error(c, "api.products.create.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not create product"})
	}
	applog.Audit(c, "api.products.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}
	err := h.Catalog.DeleteProduct(id)
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "Product not found"})
	}
	if err != nil {
		applog.Error(c, "api.products.delete.fail", err, map[string]any{"product_id": id})
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Could not delete product"})
	}
	applog.Audit(c, "api.products.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "Product deleted successfully"})
}
