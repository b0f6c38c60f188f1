package coreRoutes

import (
	contactController "madrasa/controllers/contact"
	contactValidator "madrasa/validators/contact"

	"github.com/gofiber/fiber/v2"
)

// SetupCoreRoutes sets up site-wide endpoints
func SetupCoreRoutes(app *fiber.App) {
	app.Post("/contact", contactValidator.Contact(), contactController.SubmitContact)
}
