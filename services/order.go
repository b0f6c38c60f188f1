// Package services holds the order lifecycle and enrollment activation
// logic shared by the HTTP controllers, the webhook and the schedulers.
package services

import (
	"errors"

	"madrasa/cart"
	"madrasa/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart     = errors.New("cart is empty")
	ErrOrderNotFound = errors.New("order not found")
)

// CheckoutResult reports the orders a checkout created.
type CheckoutResult struct {
	OrderIDs []uint          `json:"order_ids"`
	Total    decimal.Decimal `json:"total"`
}

// TransitionResult reports the outcome of a status transition attempt.
// Changed is false for idempotent no-ops (re-paying a paid order) and for
// rejected transitions (canceling a paid order); Status is the order's
// status after the call either way.
type TransitionResult struct {
	Changed bool
	Status  string
}

// CheckoutCart converts the cart into one order row per line, snapshotting
// the current catalog price. All rows are created in one transaction; the
// caller clears the cart only after this returns nil.
func CheckoutCart(db *gorm.DB, crt *cart.Cart, userID *uint) (*CheckoutResult, error) {
	lines, total, err := crt.Lines(db)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	result := &CheckoutResult{Total: total}
	err = db.Transaction(func(tx *gorm.DB) error {
		for _, line := range lines {
			order := models.Order{
				UserID:    userID,
				ProductID: line.Product.ID,
				Quantity:  line.Quantity,
				UnitPrice: line.UnitPrice,
				Status:    models.OrderStatusNew,
			}
			if err := tx.Create(&order).Error; err != nil {
				return err
			}
			result.OrderIDs = append(result.OrderIDs, order.ID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// transition applies a guarded status change as a single conditional UPDATE,
// so two concurrent calls cannot both observe the old status and double-apply.
// The UpdatedAt bump rides in the same statement.
func transition(db *gorm.DB, orderID uint, from []string, to string) (TransitionResult, error) {
	res := db.Model(&models.Order{}).
		Where("id = ? AND status IN ?", orderID, from).
		Update("status", to)
	if res.Error != nil {
		return TransitionResult{}, res.Error
	}
	if res.RowsAffected > 0 {
		return TransitionResult{Changed: true, Status: to}, nil
	}

	// No row matched: the order is missing or not in an eligible status.
	var order models.Order
	if err := db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TransitionResult{}, ErrOrderNotFound
		}
		return TransitionResult{}, err
	}
	return TransitionResult{Changed: false, Status: order.Status}, nil
}

// ConfirmOrder moves a new order to confirmed. Any other status is a no-op.
func ConfirmOrder(db *gorm.DB, orderID uint) (TransitionResult, error) {
	return transition(db, orderID, []string{models.OrderStatusNew}, models.OrderStatusConfirmed)
}

// PayOrder moves a new or confirmed order to paid. Paid and canceled orders
// are left untouched. When Changed is true the caller must trigger
// enrollment activation.
func PayOrder(db *gorm.DB, orderID uint) (TransitionResult, error) {
	return transition(db, orderID,
		[]string{models.OrderStatusNew, models.OrderStatusConfirmed},
		models.OrderStatusPaid)
}

// CancelOrder moves a new or confirmed order to canceled. Paid orders stay
// paid.
func CancelOrder(db *gorm.DB, orderID uint) (TransitionResult, error) {
	return transition(db, orderID,
		[]string{models.OrderStatusNew, models.OrderStatusConfirmed},
		models.OrderStatusCanceled)
}
