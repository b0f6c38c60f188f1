package storeRoutes

import (
	storeController "madrasa/controllers/store"
	"madrasa/middleware"
	"madrasa/models"
	storeValidator "madrasa/validators/store"

	"github.com/gofiber/fiber/v2"
)

// SetupStoreRoutes sets up the public catalog and admin product management
func SetupStoreRoutes(app *fiber.App) {
	storeGroup := app.Group("/store")

	storeGroup.Get("/categories", storeController.GetCategories)
	storeGroup.Get("/products", storeController.GetProducts)
	storeGroup.Get("/products/:id", storeValidator.ProductDetail(), storeController.GetProductDetails)

	// Catalog management is admin-only
	storeGroup.Post("/products",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleAdmin),
		storeValidator.CreateProduct(),
		storeController.CreateProduct)
	storeGroup.Put("/products/:id",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleAdmin),
		storeValidator.UpdateProduct(),
		storeController.UpdateProduct)
}
