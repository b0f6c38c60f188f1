package orderController

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strconv"
	"testing"

	"madrasa/config"
	"madrasa/database"
	"madrasa/middleware"
	"madrasa/models"
	orderValidator "madrasa/validators/order"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func setupOrderApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	database.RunMigrations(db)
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/orders/:id/pay", middleware.JWTMiddleware, orderValidator.OrderID(), PayOrder)
	app.Post("/orders/:id/confirm", middleware.JWTMiddleware, orderValidator.OrderID(), ConfirmOrder)
	app.Post("/orders/:id/cancel", middleware.JWTMiddleware, orderValidator.OrderID(), CancelOrder)
	return app, db
}

func createUserToken(t *testing.T, db *gorm.DB, email string) (models.User, string) {
	t.Helper()
	user := models.User{Name: "Sara", Email: email, Password: "x", Role: models.RoleStudent}
	require.NoError(t, db.Create(&user).Error)

	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return user, token
}

func createOwnedOrder(t *testing.T, db *gorm.DB, userID *uint, status string) models.Order {
	t.Helper()
	category := models.Category{Name: "Courses"}
	require.NoError(t, db.Where(models.Category{Name: "Courses"}).FirstOrCreate(&category).Error)
	product := models.Product{
		Name:       "Algebra I",
		Price:      decimal.RequireFromString("100.00"),
		CategoryID: category.ID,
		Available:  true,
	}
	require.NoError(t, db.Create(&product).Error)

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

func postOrderAction(t *testing.T, app *fiber.App, orderID uint, action, token string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest("POST", "/orders/"+strconv.Itoa(int(orderID))+"/"+action, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp.StatusCode, env
}

func TestPayOwnOrderActivatesEnrollment(t *testing.T) {
	app, db := setupOrderApp(t)
	user, token := createUserToken(t, db, "sara@example.com")
	order := createOwnedOrder(t, db, &user.ID, models.OrderStatusNew)

	code, env := postOrderAction(t, app, order.ID, "pay", token)
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, env.Status)

	var fresh models.Order
	require.NoError(t, db.First(&fresh, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, fresh.Status)

	var enrollment models.Enrollment
	require.NoError(t, db.First(&enrollment).Error)
	assert.Equal(t, models.EnrollmentActive, enrollment.Status)
}

func TestPaySomeoneElsesOrderIsNotFound(t *testing.T) {
	app, db := setupOrderApp(t)
	owner, _ := createUserToken(t, db, "owner@example.com")
	_, token := createUserToken(t, db, "intruder@example.com")
	order := createOwnedOrder(t, db, &owner.ID, models.OrderStatusNew)

	code, env := postOrderAction(t, app, order.ID, "pay", token)
	assert.Equal(t, fiber.StatusNotFound, code)
	assert.False(t, env.Status)

	var fresh models.Order
	require.NoError(t, db.First(&fresh, order.ID).Error)
	assert.Equal(t, models.OrderStatusNew, fresh.Status)
}

func TestPayWithoutTokenIsUnauthorized(t *testing.T) {
	app, db := setupOrderApp(t)
	user, _ := createUserToken(t, db, "sara@example.com")
	order := createOwnedOrder(t, db, &user.ID, models.OrderStatusNew)

	code, env := postOrderAction(t, app, order.ID, "pay", "")
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.False(t, env.Status)
}

func TestPayCanceledOrderConflicts(t *testing.T) {
	app, db := setupOrderApp(t)
	user, token := createUserToken(t, db, "sara@example.com")
	order := createOwnedOrder(t, db, &user.ID, models.OrderStatusCanceled)

	code, env := postOrderAction(t, app, order.ID, "pay", token)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "A canceled order cannot be paid!", env.Message)
}

func TestPayTwiceReportsAlreadyPaid(t *testing.T) {
	app, db := setupOrderApp(t)
	user, token := createUserToken(t, db, "sara@example.com")
	order := createOwnedOrder(t, db, &user.ID, models.OrderStatusNew)

	code, _ := postOrderAction(t, app, order.ID, "pay", token)
	require.Equal(t, fiber.StatusOK, code)

	code, env := postOrderAction(t, app, order.ID, "pay", token)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Order already paid.", env.Message)

	// The duplicate payment must not duplicate the enrollment.
	var count int64
	require.NoError(t, db.Model(&models.Enrollment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCancelPaidOrderReportsNoChange(t *testing.T) {
	app, db := setupOrderApp(t)
	user, token := createUserToken(t, db, "sara@example.com")
	order := createOwnedOrder(t, db, &user.ID, models.OrderStatusPaid)

	code, env := postOrderAction(t, app, order.ID, "cancel", token)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "No change: order is paid.", env.Message)

	var fresh models.Order
	require.NoError(t, db.First(&fresh, order.ID).Error)
	assert.Equal(t, models.OrderStatusPaid, fresh.Status)
}

func TestConfirmNewOrder(t *testing.T) {
	app, db := setupOrderApp(t)
	user, token := createUserToken(t, db, "sara@example.com")
	order := createOwnedOrder(t, db, &user.ID, models.OrderStatusNew)

	code, env := postOrderAction(t, app, order.ID, "confirm", token)
	assert.Equal(t, fiber.StatusOK, code)
	assert.Equal(t, "Order confirmed!", env.Message)
}
