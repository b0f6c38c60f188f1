package teacherController

import (
	"errors"
	"log"
	"time"

	"madrasa/database"
	"madrasa/middleware"
	"madrasa/models"
	courseValidator "madrasa/validators/course"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// loadOwnCourse fetches a course and enforces that the caller authored it.
func loadOwnCourse(c *fiber.Ctx, courseID uint) (*models.Course, error) {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var course models.Course
	if err := database.Database.Db.First(&course, courseID).Error; err != nil {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if course.TeacherID == nil || *course.TeacherID != userID {
		return nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	return &course, nil
}

func parseDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return &t
}

// Dashboard aggregates the teacher's courses, their enrollments and exams.
func Dashboard(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	db := database.Database.Db

	var courses []models.Course
	if err := db.Where("teacher_id = ?", userID).Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	courseIDs := make([]uint, len(courses))
	for i, course := range courses {
		courseIDs[i] = course.ID
	}

	var enrollmentCount, examCount int64
	if len(courseIDs) > 0 {
		db.Model(&models.Enrollment{}).Where("course_id IN ?", courseIDs).Count(&enrollmentCount)
		db.Model(&models.Exam{}).Where("course_id IN ?", courseIDs).Count(&examCount)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard fetched successfully!", fiber.Map{
		"courses": courses,
		"counters": fiber.Map{
			"courses":     len(courses),
			"enrollments": enrollmentCount,
			"exams":       examCount,
		},
	})
}

// GetCourses lists the teacher's own courses.
func GetCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var courses []models.Course
	if err := database.Database.Db.Where("teacher_id = ?", userID).
		Order("created_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", courses)
}

// CreateCourse adds a course owned by the calling teacher. The slug is
// derived from the title, with numeric suffixes on collision.
func CreateCourse(c *fiber.Ctx) error {
	userID := c.Locals("userId").(uint)
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	isActive := true
	if reqData.IsActive != nil {
		isActive = *reqData.IsActive
	}

	course := models.Course{
		Title:         reqData.Title,
		TeacherID:     &userID,
		IsActive:      isActive,
		StartDate:     parseDate(reqData.StartDate),
		EndDate:       parseDate(reqData.EndDate),
		DurationDays:  reqData.DurationDays,
		MeetingLink:   reqData.MeetingLink,
		CoverImageURL: reqData.CoverImageURL,
	}

	if err := database.Database.Db.Create(&course).Error; err != nil {
		log.Printf("Error creating course: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully!", course)
}

// UpdateCourse edits the caller's course. The slug stays stable across
// title edits so purchased links keep working.
func UpdateCourse(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedCourse").(*courseValidator.CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, errResp := loadOwnCourse(c, courseID)
	if course == nil {
		return errResp
	}

	course.Title = reqData.Title
	course.StartDate = parseDate(reqData.StartDate)
	course.EndDate = parseDate(reqData.EndDate)
	if reqData.DurationDays > 0 {
		course.DurationDays = reqData.DurationDays
	}
	course.MeetingLink = reqData.MeetingLink
	course.CoverImageURL = reqData.CoverImageURL
	if reqData.IsActive != nil {
		course.IsActive = *reqData.IsActive
	}

	if err := database.Database.Db.Save(course).Error; err != nil {
		log.Printf("Error updating course %d: %v", courseID, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully!", course)
}

// CreateExam adds an exam to the caller's course.
func CreateExam(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedExam").(*courseValidator.ExamRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, errResp := loadOwnCourse(c, courseID)
	if course == nil {
		return errResp
	}

	date, err := time.Parse(time.RFC3339, reqData.Date)
	if err != nil {
		return middleware.ValidationErrorResponse(c, map[string]string{
			"date": "date must be an RFC3339 timestamp!",
		})
	}

	exam := models.Exam{
		CourseID: course.ID,
		Title:    reqData.Title,
		Date:     date,
	}
	if err := database.Database.Db.Create(&exam).Error; err != nil {
		log.Printf("Error creating exam: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create exam!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Exam created successfully!", exam)
}

// RecordExamResult upserts a student's score for an exam on the caller's
// course. One row per (student, exam); re-grading overwrites the score.
func RecordExamResult(c *fiber.Ctx) error {
	examID := c.Locals("examID").(uint)
	reqData, ok := c.Locals("validatedExamResult").(*courseValidator.ExamResultRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var exam models.Exam
	if err := db.First(&exam, examID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Exam not found!", nil)
	}
	course, errResp := loadOwnCourse(c, exam.CourseID)
	if course == nil {
		return errResp
	}

	var student models.Student
	if err := db.First(&student, reqData.StudentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	score, _ := decimal.NewFromString(reqData.Score)

	var result models.ExamResult
	err := db.Where("student_id = ? AND exam_id = ?", student.ID, exam.ID).First(&result).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error looking up exam result: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record result!", nil)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		result = models.ExamResult{
			StudentID: student.ID,
			ExamID:    exam.ID,
			Score:     score,
		}
		if err := db.Create(&result).Error; err != nil {
			log.Printf("Error recording exam result: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record result!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusCreated, true, "Result recorded successfully!", result)
	}

	result.Score = score
	result.GradedAt = time.Now()
	if err := db.Save(&result).Error; err != nil {
		log.Printf("Error updating exam result: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update result!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Result updated successfully!", result)
}

// CreateResource attaches material to the caller's course.
func CreateResource(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedResource").(*courseValidator.ResourceRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, errResp := loadOwnCourse(c, courseID)
	if course == nil {
		return errResp
	}

	resource := models.Resource{
		CourseID:     &course.ID,
		Title:        reqData.Title,
		Kind:         reqData.Kind,
		FileURL:      reqData.FileURL,
		ExternalLink: reqData.ExternalLink,
		Note:         reqData.Note,
		IsPublic:     reqData.IsPublic,
	}
	if err := database.Database.Db.Create(&resource).Error; err != nil {
		log.Printf("Error creating resource: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create resource!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Resource created successfully!", resource)
}

// IssueCertificate issues a certificate to an enrolled student. Re-issuing
// returns the existing certificate instead of minting a duplicate.
func IssueCertificate(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(uint)
	reqData, ok := c.Locals("validatedCertificate").(*courseValidator.CertificateRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	course, errResp := loadOwnCourse(c, courseID)
	if course == nil {
		return errResp
	}

	db := database.Database.Db

	var student models.Student
	if err := db.First(&student, reqData.StudentID).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var enrollment models.Enrollment
	if err := db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		First(&enrollment).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Student is not enrolled in this course!", nil)
	}

	var existing models.Certificate
	if err := db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate already issued.", existing)
	}

	certificate := models.Certificate{
		StudentID: student.ID,
		CourseID:  course.ID,
		Serial:    uuid.NewString(),
		FileURL:   reqData.FileURL,
	}
	if err := db.Create(&certificate).Error; err != nil {
		log.Printf("Error issuing certificate: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to issue certificate!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Certificate issued successfully!", certificate)
}
