package teacherRoutes

import (
	teacherController "madrasa/controllers/teacher"
	"madrasa/middleware"
	"madrasa/models"
	courseValidator "madrasa/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupTeacherRoutes sets up course authoring and grading for teachers
func SetupTeacherRoutes(app *fiber.App) {
	teacherGroup := app.Group("/teacher",
		middleware.JWTMiddleware,
		middleware.RequireRole(models.RoleTeacher, models.RoleAdmin))

	teacherGroup.Get("/dashboard", teacherController.Dashboard)

	teacherGroup.Get("/courses", teacherController.GetCourses)
	teacherGroup.Post("/courses", courseValidator.CreateCourse(), teacherController.CreateCourse)
	teacherGroup.Put("/courses/:id", courseValidator.UpdateCourse(), teacherController.UpdateCourse)

	teacherGroup.Post("/courses/:id/exams", courseValidator.CreateExam(), teacherController.CreateExam)
	teacherGroup.Post("/exams/:id/results", courseValidator.RecordExamResult(), teacherController.RecordExamResult)

	teacherGroup.Post("/courses/:id/resources", courseValidator.CreateResource(), teacherController.CreateResource)
	teacherGroup.Post("/courses/:id/certificates", courseValidator.IssueCertificate(), teacherController.IssueCertificate)
}
