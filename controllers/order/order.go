package orderController

import (
	"errors"
	"log"
	"time"

	"madrasa/cart"
	"madrasa/database"
	"madrasa/middleware"
	"madrasa/models"
	"madrasa/services"
	"madrasa/utils"

	"github.com/gofiber/fiber/v2"
)

// Checkout converts the session cart into order rows, one per cart line.
// Guests may check out; their orders simply have no owner.
func Checkout(store *cart.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var userID *uint
		if id, ok := c.Locals("userId").(uint); ok {
			userID = &id
		}

		crt, sess, err := store.Load(c)
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load cart!", nil)
		}

		db := database.Database.Db
		result, err := services.CheckoutCart(db, crt, userID)
		if err != nil {
			if errors.Is(err, services.ErrEmptyCart) {
				return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Your cart is empty!", nil)
			}
			log.Printf("Checkout failed: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create orders!", nil)
		}

		// Orders are durable; only now is the cart cleared so a replayed
		// checkout cannot duplicate them.
		crt.Clear()
		if err := store.Save(sess, crt); err != nil {
			log.Printf("Failed to clear cart after checkout: %v", err)
		}

		if email, ok := c.Locals("email").(string); ok && email != "" {
			go utils.SendOrderConfirmationEmail(email, result.OrderIDs, result.Total.StringFixed(2))
		}

		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Orders created successfully!", result)
	}
}

// GetOrders lists the authenticated user's orders.
func GetOrders(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	page := c.Locals("page").(int)
	limit := c.Locals("limit").(int)

	db := database.Database.Db.Model(&models.Order{}).
		Where("user_id = ?", userID).
		Preload("Product")

	var total int64
	db.Count(&total)

	var orders []models.Order
	if err := db.Offset((page - 1) * limit).Limit(limit).Order("created_at desc").Find(&orders).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch orders!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Orders fetched successfully!", fiber.Map{
		"orders": orders,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// loadOwnOrder fetches the order and enforces that the caller owns it.
// Another user's order is reported as not found, not forbidden.
func loadOwnOrder(c *fiber.Ctx) (*models.Order, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	orderID := c.Locals("orderID").(uint)

	var order models.Order
	if err := database.Database.Db.First(&order, orderID).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}
	if order.UserID == nil || *order.UserID != userID {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Order not found!", nil)
	}
	return &order, nil
}

// PayOrder transitions the caller's order to paid and, on a real
// transition, triggers enrollment activation.
func PayOrder(c *fiber.Ctx) error {
	order, errResp := loadOwnOrder(c)
	if order == nil {
		return errResp
	}

	db := database.Database.Db
	result, err := services.PayOrder(db, order.ID)
	if err != nil {
		log.Printf("Pay failed for order %d: %v", order.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process payment!", nil)
	}

	if !result.Changed {
		if result.Status == models.OrderStatusCanceled {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "A canceled order cannot be paid!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Order already paid.", fiber.Map{
			"order_id": order.ID,
			"status":   result.Status,
		})
	}

	applyPaidSideEffects(order, c.Locals("email"))

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment successful! Your course access has been activated.", fiber.Map{
		"order_id": order.ID,
		"status":   result.Status,
	})
}

// applyPaidSideEffects runs the best-effort consequences of a real
// new/confirmed -> paid transition. The paid status is already durable;
// nothing here may fail the request.
func applyPaidSideEffects(order *models.Order, emailLocal interface{}) {
	db := database.Database.Db

	activation := services.ActivateOrderBestEffort(db, order)

	go utils.SendPaymentNotification(order.ID, order.TotalPrice().StringFixed(2))

	if email, ok := emailLocal.(string); ok && email != "" && activation != nil {
		var course models.Course
		if err := db.First(&course, activation.CourseID).Error; err == nil {
			var endsAt *time.Time
			var enrollment models.Enrollment
			if err := db.First(&enrollment, activation.EnrollmentID).Error; err == nil {
				endsAt = enrollment.EndsAt
			}
			go utils.SendEnrollmentActivatedEmail(email, course.Title, endsAt)
		}
	}
}

// ConfirmOrder transitions the caller's order from new to confirmed.
func ConfirmOrder(c *fiber.Ctx) error {
	order, errResp := loadOwnOrder(c)
	if order == nil {
		return errResp
	}

	result, err := services.ConfirmOrder(database.Database.Db, order.ID)
	if err != nil {
		log.Printf("Confirm failed for order %d: %v", order.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to confirm order!", nil)
	}

	message := "Order confirmed!"
	if !result.Changed {
		message = "No change: order is " + result.Status + "."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"order_id": order.ID,
		"status":   result.Status,
	})
}

// CancelOrder cancels the caller's order unless it is already terminal.
// Canceling a paid order is a reported no-op; paid stays paid.
func CancelOrder(c *fiber.Ctx) error {
	order, errResp := loadOwnOrder(c)
	if order == nil {
		return errResp
	}

	result, err := services.CancelOrder(database.Database.Db, order.ID)
	if err != nil {
		log.Printf("Cancel failed for order %d: %v", order.ID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to cancel order!", nil)
	}

	message := "Order canceled."
	if !result.Changed {
		message = "No change: order is " + result.Status + "."
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, message, fiber.Map{
		"order_id": order.ID,
		"status":   result.Status,
	})
}
