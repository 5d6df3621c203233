package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/storefront/internal/handlers"
	"github.com/example/storefront/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, storefront *services.Storefront, client *services.CatalogClient) {
	storefrontHandler := handlers.NewStorefrontHandler(storefront)
	authHandler := handlers.NewAuthHandler(client)

	api := app.Group("/api")
	api.Get("/health", storefrontHandler.Health)
	api.Get("/quantity", storefrontHandler.QuantityRange)

	collections := api.Group("/collections")
	collections.Get("/", storefrontHandler.LoadCollections)
	collections.Get("/:id/products", storefrontHandler.ListCollectionProducts)

	products := api.Group("/products")
	products.Get("/:id", storefrontHandler.GetProduct)
	products.Get("/:id/selection", storefrontHandler.DefaultSelection)
	products.Post("/:id/quote", storefrontHandler.Quote)

	auth := api.Group("/auth")
	auth.Post("/login", authHandler.Login)
	auth.Post("/logout", authHandler.Logout)

	admin := api.Group("/admin")
	admin.Get("/products", authHandler.ListProducts)
}
