package studentController

import (
	"time"

	"madrasa/database"
	"madrasa/middleware"
	"madrasa/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// getStudent returns (creating if needed) the caller's student profile.
func getStudent(c *fiber.Ctx) (*models.Student, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var student models.Student
	if err := database.Database.Db.
		Where(models.Student{UserID: userID}).
		FirstOrCreate(&student).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to load student profile!", nil)
	}
	return &student, nil
}

// visibleResources scopes resources to public ones plus those of courses
// the student is enrolled in.
func visibleResources(db *gorm.DB, studentID uint) *gorm.DB {
	enrolledCourses := db.Model(&models.Enrollment{}).
		Select("course_id").
		Where("student_id = ?", studentID)
	return db.Model(&models.Resource{}).
		Where(db.Where("is_public = ?", true).Or("course_id IN (?)", enrolledCourses)).
		Preload("Course")
}

// Dashboard aggregates the student's enrollments, results, certificates
// and resources with counters.
func Dashboard(c *fiber.Ctx) error {
	student, errResp := getStudent(c)
	if student == nil {
		return errResp
	}

	db := database.Database.Db

	var enrollments []models.Enrollment
	if err := db.Where("student_id = ?", student.ID).
		Preload("Course").Order("joined_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	var certificates []models.Certificate
	if err := db.Where("student_id = ?", student.ID).
		Preload("Course").Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	var resources []models.Resource
	if err := visibleResources(db, student.ID).Order("title").Find(&resources).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch resources!", nil)
	}

	var examCount int64
	db.Model(&models.ExamResult{}).Where("student_id = ?", student.ID).Count(&examCount)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"student":      student,
		"now":          time.Now(),
		"enrollments":  enrollments,
		"certificates": certificates,
		"resources":    resources,
		"counters": fiber.Map{
			"enrollments":  len(enrollments),
			"exams":        examCount,
			"certificates": len(certificates),
			"resources":    len(resources),
		},
	})
}

// MyCourses lists the student's enrollments with their courses.
func MyCourses(c *fiber.Ctx) error {
	student, errResp := getStudent(c)
	if student == nil {
		return errResp
	}

	var enrollments []models.Enrollment
	if err := database.Database.Db.Where("student_id = ?", student.ID).
		Preload("Course").Order("joined_at desc").Find(&enrollments).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch enrollments!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", enrollments)
}

// MyExams lists the student's exam results.
func MyExams(c *fiber.Ctx) error {
	student, errResp := getStudent(c)
	if student == nil {
		return errResp
	}

	var results []models.ExamResult
	if err := database.Database.Db.Where("student_id = ?", student.ID).
		Preload("Exam").Preload("Exam.Course").Order("graded_at desc").Find(&results).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch exam results!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Exam results fetched successfully!", results)
}

// MyCertificates lists the student's certificates.
func MyCertificates(c *fiber.Ctx) error {
	student, errResp := getStudent(c)
	if student == nil {
		return errResp
	}

	var certificates []models.Certificate
	if err := database.Database.Db.Where("student_id = ?", student.ID).
		Preload("Course").Order("issued_at desc").Find(&certificates).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", certificates)
}

// MyResources lists public resources plus those of the student's courses.
func MyResources(c *fiber.Ctx) error {
	student, errResp := getStudent(c)
	if student == nil {
		return errResp
	}

	var resources []models.Resource
	if err := visibleResources(database.Database.Db, student.ID).
		Order("title").Find(&resources).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch resources!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Resources fetched successfully!", resources)
}
