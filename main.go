package main

import (
	"log"

	"madrasa/cart"
	"madrasa/config"
	"madrasa/database"
	authRoutes "madrasa/routers/authRoutes"
	cartRoutes "madrasa/routers/cartRoutes"
	coreRoutes "madrasa/routers/coreRoutes"
	orderRoutes "madrasa/routers/orderRoutes"
	storeRoutes "madrasa/routers/storeRoutes"
	studentRoutes "madrasa/routers/studentRoutes"
	teacherRoutes "madrasa/routers/teacherRoutes"
	"madrasa/scheduler"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",
		AllowHeaders: "Content-Type,Authorization,X-Pay-Signature",
	}))

	// Log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve static files from the public folder
	app.Static("/", "./public")

	cartStore := cart.NewStore(config.AppConfig.CartMaxQty)

	authRoutes.SetupAuthRoutes(app)
	storeRoutes.SetupStoreRoutes(app)
	cartRoutes.SetupCartRoutes(app, cartStore)
	orderRoutes.SetupOrderRoutes(app, cartStore)
	studentRoutes.SetupStudentRoutes(app)
	teacherRoutes.SetupTeacherRoutes(app)
	coreRoutes.SetupCoreRoutes(app)

	scheduler.InitializeEnrollmentScheduler()

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
