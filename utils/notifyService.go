package utils

import (
	"log"
	"time"

	"madrasa/config"

	"github.com/go-resty/resty/v2"
)

// SendPaymentNotification pings the external notification gateway after a
// successful payment. Best-effort: errors are logged, never returned to the
// payment path.
func SendPaymentNotification(orderID uint, amount string) {
	if config.AppConfig.NotifyApiURL == "" {
		return
	}

	client := resty.New().SetTimeout(10 * time.Second)
	resp, err := client.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.NotifyApiKey).
		SetBody(map[string]interface{}{
			"event":    "order.paid",
			"order_id": orderID,
			"amount":   amount,
		}).
		Post(config.AppConfig.NotifyApiURL)
	if err != nil {
		log.Printf("[NOTIFY] error notifying payment for order %d: %v", orderID, err)
		return
	}
	if resp.StatusCode() >= 400 {
		log.Printf("[NOTIFY] gateway rejected payment notification for order %d: %d", orderID, resp.StatusCode())
	}
}
