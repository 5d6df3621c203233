package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/example/storefront/internal/services"
)

// AuthHandler manages the catalog API session.
type AuthHandler struct {
	client *services.CatalogClient
}

// NewAuthHandler constructs AuthHandler.
func NewAuthHandler(client *services.CatalogClient) *AuthHandler {
	return &AuthHandler{client: client}
}

type loginRequest struct {
	Phone string `json:"phone"`
}

// Login signs in to the catalog API with a phone number and stores the token.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "phone is required")
	}

	cert, err := h.client.Login(c.UserContext(), req.Phone)
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": fiber.Map{
		"id":    cert.ID,
		"name":  cert.Name,
		"phone": cert.Phone,
		"email": cert.Email,
	}})
}

// Logout forgets the stored catalog API token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.client.Logout(c.UserContext()); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListProducts proxies the authenticated product list of the catalog API.
func (h *AuthHandler) ListProducts(c *fiber.Ctx) error {
	products, err := h.client.FetchProducts(c.UserContext())
	if err != nil {
		return toFiberError(err)
	}

	return c.JSON(fiber.Map{"success": true, "data": products})
}
