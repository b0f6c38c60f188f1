package services

import (
	"testing"

	"madrasa/cart"
	"madrasa/config"
	"madrasa/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Student{},
		&models.Category{}, &models.Product{},
		&models.Order{}, &models.Course{}, &models.Enrollment{},
	))
	return db
}

func createProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()
	category := models.Category{Name: "Courses"}
	require.NoError(t, db.Where(models.Category{Name: "Courses"}).FirstOrCreate(&category).Error)

	product := models.Product{
		Name:       name,
		Price:      decimal.RequireFromString(price),
		CategoryID: category.ID,
		Available:  true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestCheckoutEmptyCartCreatesNothing(t *testing.T) {
	db := setupTestDB(t)
	crt := cart.New(99)

	result, err := CheckoutCart(db, crt, nil)
	assert.ErrorIs(t, err, ErrEmptyCart)
	assert.Nil(t, result)

	var count int64
	require.NoError(t, db.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCheckoutCreatesOneOrderPerLine(t *testing.T) {
	db := setupTestDB(t)
	algebra := createProduct(t, db, "Algebra I", "100.00")
	physics := createProduct(t, db, "Physics", "49.50")

	crt := cart.New(99)
	crt.Add(algebra.ID, 2)
	crt.Add(physics.ID, 1)

	result, err := CheckoutCart(db, crt, nil)
	require.NoError(t, err)
	require.Len(t, result.OrderIDs, 2)
	assert.Equal(t, "249.50", result.Total.StringFixed(2))

	var orders []models.Order
	require.NoError(t, db.Order("product_id").Find(&orders).Error)
	require.Len(t, orders, 2)
	for _, order := range orders {
		assert.Equal(t, models.OrderStatusNew, order.Status)
		assert.Nil(t, order.UserID)
	}
}

func TestCheckoutSnapshotsUnitPrice(t *testing.T) {
	db := setupTestDB(t)
	product := createProduct(t, db, "Algebra I", "100.00")

	crt := cart.New(99)
	crt.Add(product.ID, 1)

	result, err := CheckoutCart(db, crt, nil)
	require.NoError(t, err)

	// Raising the catalog price must not touch existing orders.
	require.NoError(t, db.Model(&models.Product{}).Where("id = ?", product.ID).
		Update("price", decimal.RequireFromString("150.00")).Error)

	var order models.Order
	require.NoError(t, db.First(&order, result.OrderIDs[0]).Error)
	assert.Equal(t, "100.00", order.UnitPrice.StringFixed(2))
	assert.Equal(t, "100.00", order.TotalPrice().StringFixed(2))
}

func createOrder(t *testing.T, db *gorm.DB, status string, userID *uint) models.Order {
	t.Helper()
	product := createProduct(t, db, "Algebra I", "100.00")
	order := models.Order{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  1,
		UnitPrice: product.Price,
		Status:    status,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestConfirmThenPay(t *testing.T) {
	db := setupTestDB(t)
	order := createOrder(t, db, models.OrderStatusNew, nil)

	result, err := ConfirmOrder(db, order.ID)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, models.OrderStatusConfirmed, result.Status)

	result, err = PayOrder(db, order.ID)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, models.OrderStatusPaid, result.Status)
}

func TestPaySkipsConfirmation(t *testing.T) {
	db := setupTestDB(t)
	order := createOrder(t, db, models.OrderStatusNew, nil)

	result, err := PayOrder(db, order.ID)
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.Equal(t, models.OrderStatusPaid, result.Status)
}

func TestPayIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	order := createOrder(t, db, models.OrderStatusPaid, nil)

	result, err := PayOrder(db, order.ID)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, models.OrderStatusPaid, result.Status)
}

func TestCancelPaidOrderIsRejected(t *testing.T) {
	db := setupTestDB(t)
	order := createOrder(t, db, models.OrderStatusPaid, nil)

	result, err := CancelOrder(db, order.ID)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, models.OrderStatusPaid, result.Status)

	var fresh models.Order
	require.NoError(t, db.First(&fresh, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, fresh.Status)
}

func TestPayCanceledOrderIsRejected(t *testing.T) {
	db := setupTestDB(t)
	order := createOrder(t, db, models.OrderStatusCanceled, nil)

	result, err := PayOrder(db, order.ID)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, models.OrderStatusCanceled, result.Status)
}

func TestConfirmPaidOrderIsNoOp(t *testing.T) {
	db := setupTestDB(t)
	order := createOrder(t, db, models.OrderStatusPaid, nil)

	result, err := ConfirmOrder(db, order.ID)
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.Equal(t, models.OrderStatusPaid, result.Status)
}

func TestTransitionOnMissingOrder(t *testing.T) {
	db := setupTestDB(t)

	_, err := PayOrder(db, 4242)
	assert.ErrorIs(t, err, ErrOrderNotFound)
}
