package authController

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"madrasa/config"
	"madrasa/database"
	"madrasa/models"
	authValidator "madrasa/validators/auth"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type envelope struct {
	Status  bool                   `json:"status"`
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func setupAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	config.LoadConfig()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Student{}))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	app.Post("/auth/signup", authValidator.Signup(), Signup)
	app.Post("/auth/login", authValidator.Login(), Login)
	return app, db
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	require.NoError(t, json.Unmarshal(raw, &env))
	return resp.StatusCode, env
}

func TestSignupCreatesStudentWithProfile(t *testing.T) {
	app, db := setupAuthApp(t)

	code, env := postJSON(t, app, "/auth/signup",
		`{"name":"Sara","email":"sara@example.com","password":"secret123"}`)
	assert.Equal(t, fiber.StatusCreated, code)
	assert.True(t, env.Status)

	var user models.User
	require.NoError(t, db.Where("email = ?", "sara@example.com").First(&user).Error)
	assert.Equal(t, models.RoleStudent, user.Role)

	var profile models.Student
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&profile).Error)
}

func TestSignupTeacherRole(t *testing.T) {
	app, db := setupAuthApp(t)

	code, _ := postJSON(t, app, "/auth/signup",
		`{"name":"Omar","email":"omar@example.com","password":"secret123","role":"teacher"}`)
	assert.Equal(t, fiber.StatusCreated, code)

	var user models.User
	require.NoError(t, db.Where("email = ?", "omar@example.com").First(&user).Error)
	assert.Equal(t, models.RoleTeacher, user.Role)

	var count int64
	require.NoError(t, db.Model(&models.Student{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSignupDuplicateEmailConflicts(t *testing.T) {
	app, _ := setupAuthApp(t)

	body := `{"name":"Sara","email":"sara@example.com","password":"secret123"}`
	code, _ := postJSON(t, app, "/auth/signup", body)
	require.Equal(t, fiber.StatusCreated, code)

	code, env := postJSON(t, app, "/auth/signup", body)
	assert.Equal(t, fiber.StatusConflict, code)
	assert.Equal(t, "Email is already registered!", env.Message)
}

func TestSignupRejectsShortPassword(t *testing.T) {
	app, _ := setupAuthApp(t)

	code, env := postJSON(t, app, "/auth/signup",
		`{"name":"Sara","email":"sara@example.com","password":"abc"}`)
	assert.Equal(t, fiber.StatusUnprocessableEntity, code)
	assert.False(t, env.Status)
}

func TestLoginReturnsToken(t *testing.T) {
	app, _ := setupAuthApp(t)

	code, _ := postJSON(t, app, "/auth/signup",
		`{"name":"Sara","email":"sara@example.com","password":"secret123"}`)
	require.Equal(t, fiber.StatusCreated, code)

	code, env := postJSON(t, app, "/auth/login",
		`{"email":"sara@example.com","password":"secret123"}`)
	assert.Equal(t, fiber.StatusOK, code)
	assert.True(t, env.Status)
	token, _ := env.Data["token"].(string)
	assert.NotEmpty(t, token)
}

func TestLoginWrongPasswordIsUnauthorized(t *testing.T) {
	app, _ := setupAuthApp(t)

	code, _ := postJSON(t, app, "/auth/signup",
		`{"name":"Sara","email":"sara@example.com","password":"secret123"}`)
	require.Equal(t, fiber.StatusCreated, code)

	code, env := postJSON(t, app, "/auth/login",
		`{"email":"sara@example.com","password":"wrong-pass"}`)
	assert.Equal(t, fiber.StatusUnauthorized, code)
	assert.Equal(t, "Invalid email or password!", env.Message)
}
