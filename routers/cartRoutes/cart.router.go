package cartRoutes

import (
	"madrasa/cart"
	cartController "madrasa/controllers/cart"
	cartValidator "madrasa/validators/cart"

	"github.com/gofiber/fiber/v2"
)

// SetupCartRoutes sets up the session cart endpoints. Carts work for
// guests and logged-in visitors alike.
func SetupCartRoutes(app *fiber.App, store *cart.Store) {
	cartGroup := app.Group("/cart")

	cartGroup.Get("/", cartController.ViewCart(store))
	cartGroup.Post("/add/:productId", cartValidator.AddToCart(), cartController.AddToCart(store))
	cartGroup.Post("/remove/:productId", cartValidator.RemoveFromCart(), cartController.RemoveFromCart(store))
}
