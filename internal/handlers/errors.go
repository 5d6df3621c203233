package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/example/storefront/internal/services"
)

// toFiberError maps service errors onto HTTP statuses. Upstream failures
// become 502 so callers treat the catalog as absent rather than partial.
func toFiberError(err error) error {
	var apiErr *services.APIError
	switch {
	case errors.Is(err, services.ErrInvalidChoice):
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrNotAuthenticated):
		return fiber.NewError(fiber.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrProductNotFound), errors.Is(err, services.ErrCollectionNotFound):
		return fiber.NewError(fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrCatalogUnavailable):
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, services.ErrSuperseded):
		return fiber.NewError(fiber.StatusConflict, err.Error())
	case errors.As(err, &apiErr):
		return fiber.NewError(fiber.StatusBadGateway, apiErr.Message)
	default:
		return fiber.NewError(fiber.StatusBadGateway, err.Error())
	}
}
