package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PaymentEvent is an audit row for every webhook payment confirmation that
// passed signature verification, including retried deliveries.
type PaymentEvent struct {
	gorm.Model
	EventID string         `json:"event_id" gorm:"uniqueIndex;not null"`
	OrderID uint           `json:"order_id" gorm:"index;not null"`
	Status  string         `json:"status"`
	Payload datatypes.JSON `json:"payload"`
	Applied bool           `json:"applied" gorm:"default:false"` // false when the order was already paid
}
