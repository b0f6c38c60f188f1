package cartValidator

import (
	"madrasa/middleware"

	"github.com/gofiber/fiber/v2"
)

type AddToCartRequest struct {
	Quantity int `json:"quantity"`
}

// AddToCart validates the product id param and the optional quantity body.
// A missing body means "add one unit".
func AddToCart() fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := c.ParamsInt("productId")
		if err != nil || productID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid product id!", nil)
		}

		reqData := &AddToCartRequest{Quantity: 1}
		if len(c.Body()) > 0 {
			if err := c.BodyParser(reqData); err != nil {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
			}
		}
		if reqData.Quantity < 1 {
			return middleware.ValidationErrorResponse(c, map[string]string{
				"quantity": "quantity must be at least 1!",
			})
		}

		c.Locals("productID", uint(productID))
		c.Locals("validatedAddToCart", reqData)
		return c.Next()
	}
}

// RemoveFromCart validates the product id param.
func RemoveFromCart() fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID, err := c.ParamsInt("productId")
		if err != nil || productID < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid product id!", nil)
		}

		c.Locals("productID", uint(productID))
		return c.Next()
	}
}
