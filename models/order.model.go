package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Order statuses. Orders move new -> confirmed -> paid, or get canceled
// before payment. paid and canceled are terminal.
const (
	OrderStatusNew       = "new"
	OrderStatusConfirmed = "confirmed"
	OrderStatusPaid      = "paid"
	OrderStatusCanceled  = "canceled"
)

// Order is a single purchased line: one product, a quantity and the unit
// price captured when the order was created. Later catalog price changes
// never touch the snapshot.
type Order struct {
	gorm.Model
	UserID    *uint           `json:"user_id" gorm:"index"` // nil for guest orders
	ProductID uint            `json:"product_id" gorm:"index;not null"`
	Product   Product         `json:"product" gorm:"foreignKey:ProductID"`
	Quantity  int             `json:"quantity" gorm:"not null;default:1"`
	UnitPrice decimal.Decimal `json:"unit_price" gorm:"type:decimal(10,2);not null;default:0"`
	Status    string          `json:"status" gorm:"default:'new';index"`
}

// TotalPrice is the line total: unit price snapshot times quantity.
func (o *Order) TotalPrice() decimal.Decimal {
	return o.UnitPrice.Mul(decimal.NewFromInt(int64(o.Quantity)))
}

// IsTerminal reports whether the order can no longer transition.
func (o *Order) IsTerminal() bool {
	return o.Status == OrderStatusPaid || o.Status == OrderStatusCanceled
}
