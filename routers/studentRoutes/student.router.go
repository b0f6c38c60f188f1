package studentRoutes

import (
	studentController "madrasa/controllers/student"
	"madrasa/middleware"
	"madrasa/models"

	"github.com/gofiber/fiber/v2"
)

// SetupStudentRoutes sets up the student dashboard and its sub-views
func SetupStudentRoutes(app *fiber.App) {
	studentGroup := app.Group("/student",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleStudent))

	studentGroup.Get("/dashboard", studentController.Dashboard)
	studentGroup.Get("/courses", studentController.MyCourses)
	studentGroup.Get("/exams", studentController.MyExams)
	studentGroup.Get("/certificates", studentController.MyCertificates)
	studentGroup.Get("/resources", studentController.MyResources)
}
