package cartController

import (
	"madrasa/cart"
	"madrasa/config"
	"madrasa/database"
	"madrasa/middleware"
	"madrasa/models"
	cartValidator "madrasa/validators/cart"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// AddToCart increments a product's quantity in the session cart.
func AddToCart(store *cart.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID := c.Locals("productID").(uint)
		reqData := c.Locals("validatedAddToCart").(*cartValidator.AddToCartRequest)

		db := database.Database.Db

		var product models.Product
		if err := db.Where("id = ? AND available = ? AND is_deleted = ?", productID, true, false).
			First(&product).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Product not found or unavailable!", nil)
		}

		crt, sess, err := store.Load(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load cart!", nil)
		}

		// Stock is tracked on some products only; exceeding it is a warning,
		// not a failed request.
		if product.Stock != nil && crt.Quantity(productID)+reqData.Quantity > *product.Stock {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Requested quantity exceeds available stock.", fiber.Map{
				"product_id": productID,
				"quantity":   crt.Quantity(productID),
			})
		}

		stored := crt.Add(productID, reqData.Quantity)
		if err := store.Save(sess, crt); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save cart!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Product added to cart!", fiber.Map{
			"product_id": productID,
			"quantity":   stored,
		})
	}
}

// RemoveFromCart deletes a product's entry. Removing an absent product is
// reported as a harmless no-op.
func RemoveFromCart(store *cart.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		productID := c.Locals("productID").(uint)

		crt, sess, err := store.Load(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load cart!", nil)
		}

		if !crt.Remove(productID) {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Product was not in the cart.", nil)
		}
		if err := store.Save(sess, crt); err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save cart!", nil)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Product removed from cart!", nil)
	}
}

// ViewCart computes the cart lines and totals. Entries for missing or
// unavailable products are skipped.
func ViewCart(store *cart.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		crt, _, err := store.Load(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load cart!", nil)
		}

		lines, total, err := crt.Lines(database.Database.Db)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to compute cart!", nil)
		}

		data := fiber.Map{
			"items": lines,
			"total": total,
		}
		if rate := config.AppConfig.TaxRate; rate > 0 {
			tax := total.Mul(decimal.NewFromFloat(rate)).Round(2)
			data["tax"] = tax
			data["grand_total"] = total.Add(tax)
		}

		return middleware.JsonResponse(c, fiber.StatusOK, true, "Cart fetched successfully!", data)
	}
}
