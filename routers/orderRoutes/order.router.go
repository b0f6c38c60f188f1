package orderRoutes

import (
	"madrasa/cart"
	orderController "madrasa/controllers/order"
	"madrasa/middleware"
	orderValidator "madrasa/validators/order"

	"github.com/gofiber/fiber/v2"
)

// SetupOrderRoutes sets up checkout, the order lifecycle and the payment
// webhook.
func SetupOrderRoutes(app *fiber.App, store *cart.Store) {
	orderGroup := app.Group("/orders")

	// Guests may check out; their orders have no owner.
	orderGroup.Post("/checkout", middleware.OptionalJWTMiddleware, orderController.Checkout(store))

	orderGroup.Get("/", middleware.JWTMiddleware, orderValidator.Pagination(), orderController.GetOrders)
	orderGroup.Post("/:id/pay", middleware.JWTMiddleware, orderValidator.OrderID(), orderController.PayOrder)
	orderGroup.Post("/:id/confirm", middleware.JWTMiddleware, orderValidator.OrderID(), orderController.ConfirmOrder)
	orderGroup.Post("/:id/cancel", middleware.JWTMiddleware, orderValidator.OrderID(), orderController.CancelOrder)

	// Authenticated by HMAC signature, not JWT
	app.Post("/payments/webhook", orderController.PaymentWebhook)
}
