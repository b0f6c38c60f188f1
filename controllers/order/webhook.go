package orderController

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log"
	"strconv"

	"madrasa/config"
	"madrasa/database"
	"madrasa/models"
	"madrasa/services"
	"madrasa/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const signatureHeader = "X-Pay-Signature"

// PaymentWebhook applies an external payment confirmation. The body is a
// form-encoded (order_id, status) pair; the signature header carries
// hex(HMAC-SHA256(secret, raw_body)). Deliveries are at-least-once, so an
// already-paid order is a harmless no-op.
func PaymentWebhook(c *fiber.Ctx) error {
	body := c.Body()

	mac := hmac.New(sha256.New, []byte(config.AppConfig.WebhookSecret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	// Constant-time compare; a mismatch reveals nothing about which part
	// of the signature was wrong.
	provided := c.Get(signatureHeader)
	if !hmac.Equal([]byte(provided), []byte(expected)) {
		return c.Status(fiber.StatusBadRequest).SendString("bad signature")
	}

	orderIDRaw := c.FormValue("order_id")
	status := c.FormValue("status")
	if orderIDRaw == "" || status != models.OrderStatusPaid {
		return c.Status(fiber.StatusBadRequest).SendString("bad payload")
	}
	orderID, err := strconv.ParseUint(orderIDRaw, 10, 32)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString("bad payload")
	}

	db := database.Database.Db

	var order models.Order
	if err := db.First(&order, uint(orderID)).Error; err != nil {
		return c.Status(fiber.StatusNotFound).SendString("order not found")
	}

	result, err := services.PayOrder(db, order.ID)
	if err != nil {
		if errors.Is(err, services.ErrOrderNotFound) {
			return c.Status(fiber.StatusNotFound).SendString("order not found")
		}
		log.Printf("Webhook pay failed for order %d: %v", order.ID, err)
		return c.Status(fiber.StatusInternalServerError).SendString("error")
	}

	recordPaymentEvent(order.ID, status, body, result.Changed)

	if result.Changed {
		services.ActivateOrderBestEffort(db, &order)
		go utils.SendPaymentNotification(order.ID, order.TotalPrice().StringFixed(2))
	}

	return c.Status(fiber.StatusOK).SendString("ok")
}

// recordPaymentEvent keeps an audit row per verified delivery. Failures are
// logged only; the acknowledgment to the gateway must not depend on it.
func recordPaymentEvent(orderID uint, status string, rawBody []byte, applied bool) {
	payload, err := json.Marshal(fiber.Map{
		"order_id": orderID,
		"status":   status,
		"raw":      string(rawBody),
	})
	if err != nil {
		payload = []byte("{}")
	}

	event := models.PaymentEvent{
		EventID: uuid.NewString(),
		OrderID: orderID,
		Status:  status,
		Payload: datatypes.JSON(payload),
		Applied: applied,
	}
	if err := database.Database.Db.Create(&event).Error; err != nil {
		log.Printf("Failed to record payment event for order %d: %v", orderID, err)
	}
}
