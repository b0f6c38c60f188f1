package orderValidator

import (
	"madrasa/middleware"

	"github.com/gofiber/fiber/v2"
)

// OrderID validates the :id param.
func OrderID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		orderID, err := c.ParamsInt("id")
		if err != nil || orderID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid order id!", nil)
		}
		c.Locals("orderID", uint(orderID))
		return c.Next()
	}
}

// Pagination parses optional page/limit query params, defaulting to the
// first page of 20.
func Pagination() fiber.Handler {
	return func(c *fiber.Ctx) error {
		page := c.QueryInt("page", 1)
		limit := c.QueryInt("limit", 20)
		if page < 1 || limit < 1 || limit > 100 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid pagination!", nil)
		}
		c.Locals("page", page)
		c.Locals("limit", limit)
		return c.Next()
	}
}
