package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/storefront/internal/config"
	"github.com/example/storefront/internal/services"
	"github.com/example/storefront/internal/utils"
)

// StorefrontHandler serves the catalog snapshot and product pricing.
type StorefrontHandler struct {
	storefront *services.Storefront
}

// NewStorefrontHandler constructs StorefrontHandler.
func NewStorefrontHandler(storefront *services.Storefront) *StorefrontHandler {
	return &StorefrontHandler{storefront: storefront}
}

// Health reports liveness and the catalog snapshot state.
func (h *StorefrontHandler) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"success": true, "data": h.storefront.Status()})
}

// LoadCollections fetches the requested collections and replaces the
// snapshot with them.
func (h *StorefrontHandler) LoadCollections(c *fiber.Ctx) error {
	raw := strings.TrimSpace(c.Query("ids"))
	if raw == "" {
		return fiber.NewError(fiber.StatusBadRequest, "ids query parameter is required")
	}
	ids := config.ParseIDs(raw)
	if len(ids) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "invalid ids")
	}

	collections, err := h.storefront.Load(c.UserContext(), ids)
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": collections})
}

// ListCollectionProducts returns a page of a loaded collection's products.
func (h *StorefrontHandler) ListCollectionProducts(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	collection, err := h.storefront.Collection(id)
	if err != nil {
		return toFiberError(err)
	}

	pg := utils.ParsePagination(c)
	total := len(collection.Products)
	start, end := pg.Bounds(total)

	return c.JSON(fiber.Map{
		"success":    true,
		"data":       collection.Products[start:end],
		"pagination": pg.Meta(total),
	})
}

// GetProduct returns a product with the options each feature offers.
func (h *StorefrontHandler) GetProduct(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	detail, err := h.storefront.ProductDetail(id)
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": detail})
}

// DefaultSelection returns the product's default selection and its price.
func (h *StorefrontHandler) DefaultSelection(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	quote, err := h.storefront.DefaultQuote(id)
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": quote})
}

// Quote prices the chosen options, modifiers and quantity.
func (h *StorefrontHandler) Quote(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var choice services.Choice
	if err := c.BodyParser(&choice); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	quote, err := h.storefront.Quote(id, choice)
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": quote})
}

// QuantityRange lists the quantities a customer may pick.
func (h *StorefrontHandler) QuantityRange(c *fiber.Ctx) error {
	r := h.storefront.QuantityRange()
	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"min":    r.Min,
		"max":    r.Max,
		"values": r.Values(),
	}})
}
