// Package cart holds the per-visitor shopping cart. The cart is an explicit
// value type living only in the visitor's session; nothing here is durable.
package cart

import (
	"sort"

	"madrasa/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Cart maps product ids to quantities. Quantities are clamped to [1, MaxQty]
// on every mutation.
type Cart struct {
	MaxQty int
	items  map[uint]int
}

// Line is one displayable cart row with its rounded subtotal.
type Line struct {
	Product   models.Product  `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// New returns an empty cart with the given quantity ceiling.
func New(maxQty int) *Cart {
	if maxQty < 1 {
		maxQty = 1
	}
	return &Cart{MaxQty: maxQty, items: make(map[uint]int)}
}

func (crt *Cart) clamp(qty int) int {
	if qty < 1 {
		return 1
	}
	if qty > crt.MaxQty {
		return crt.MaxQty
	}
	return qty
}

// Add adds qty units of a product (adding to an existing entry) and returns
// the stored quantity after clamping.
func (crt *Cart) Add(productID uint, qty int) int {
	if qty < 1 {
		qty = 1
	}
	stored := crt.clamp(crt.items[productID] + qty)
	crt.items[productID] = stored
	return stored
}

// Remove deletes a product's entry and reports whether it was present.
// Removing an absent product is a no-op, not an error.
func (crt *Cart) Remove(productID uint) bool {
	if _, ok := crt.items[productID]; !ok {
		return false
	}
	delete(crt.items, productID)
	return true
}

// Quantity returns the stored quantity for a product, 0 when absent.
func (crt *Cart) Quantity(productID uint) int {
	return crt.items[productID]
}

// Len is the number of distinct products in the cart.
func (crt *Cart) Len() int {
	return len(crt.items)
}

// Clear empties the cart. Called once checkout has durably created the
// order rows so the cart cannot be replayed into duplicate orders.
func (crt *Cart) Clear() {
	crt.items = make(map[uint]int)
}

// Quantities returns a copy of the product -> quantity map.
func (crt *Cart) Quantities() map[uint]int {
	out := make(map[uint]int, len(crt.items))
	for id, qty := range crt.items {
		out[id] = qty
	}
	return out
}

// Lines resolves the cart against the catalog. Entries whose product no
// longer exists or is unavailable are skipped rather than failing the view.
// Each subtotal is rounded half-up to 2 decimals before summing, and the
// grand total is rounded the same way.
func (crt *Cart) Lines(db *gorm.DB) ([]Line, decimal.Decimal, error) {
	ids := make([]uint, 0, len(crt.items))
	for id := range crt.items {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	lines := make([]Line, 0, len(ids))
	total := decimal.Zero
	for _, id := range ids {
		var product models.Product
		err := db.Where("id = ? AND available = ? AND is_deleted = ?", id, true, false).First(&product).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				continue
			}
			return nil, decimal.Zero, err
		}

		qty := crt.items[id]
		subtotal := product.Price.Mul(decimal.NewFromInt(int64(qty))).Round(2)
		lines = append(lines, Line{
			Product:   product,
			Quantity:  qty,
			UnitPrice: product.Price,
			Subtotal:  subtotal,
		})
		total = total.Add(subtotal)
	}

	return lines, total.Round(2), nil
}
