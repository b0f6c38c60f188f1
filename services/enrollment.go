package services

import (
	"errors"
	"log"
	"time"

	"madrasa/config"
	"madrasa/models"
	"madrasa/utils"

	"gorm.io/gorm"
)

// ActivationResult reports what enrollment activation actually did, so
// callers and tests can tell a first activation from an idempotent rerun.
type ActivationResult struct {
	StudentID         uint
	CourseID          uint
	EnrollmentID      uint
	CreatedCourse     bool
	CreatedEnrollment bool
	Updated           bool // any field changed on an existing enrollment
}

// NothingNew reports whether the run was a pure no-op.
func (r *ActivationResult) NothingNew() bool {
	return r != nil && !r.CreatedCourse && !r.CreatedEnrollment && !r.Updated
}

// ActivateForOrder guarantees the order's buyer has an active enrollment in
// the course behind the purchased product. Guest orders are a no-op (nil
// result). The whole sequence is idempotent; the (student, course) unique
// index collapses concurrent duplicate attempts.
func ActivateForOrder(db *gorm.DB, order *models.Order) (*ActivationResult, error) {
	if order.UserID == nil {
		return nil, nil
	}

	var student models.Student
	if err := db.Where(models.Student{UserID: *order.UserID}).FirstOrCreate(&student).Error; err != nil {
		return nil, err
	}

	var product models.Product
	if err := db.First(&product, order.ProductID).Error; err != nil {
		return nil, err
	}

	course, createdCourse, err := resolveCourse(db, &product)
	if err != nil {
		return nil, err
	}

	result := &ActivationResult{
		StudentID:     student.ID,
		CourseID:      course.ID,
		CreatedCourse: createdCourse,
	}

	var enrollment models.Enrollment
	err = db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).
		First(&enrollment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		enrollment = models.Enrollment{
			StudentID: student.ID,
			CourseID:  course.ID,
			Status:    models.EnrollmentActive,
		}
		if createErr := db.Create(&enrollment).Error; createErr != nil {
			// A concurrent activation may have won the unique-index race;
			// the existing row is exactly what we wanted anyway.
			if err := db.Where("student_id = ? AND course_id = ?", student.ID, course.ID).
				First(&enrollment).Error; err != nil {
				return nil, createErr
			}
		} else {
			result.CreatedEnrollment = true
		}
	} else if err != nil {
		return nil, err
	}

	changed := applyActivationDefaults(&enrollment, course)
	if changed {
		if err := db.Model(&enrollment).Updates(map[string]interface{}{
			"status":       enrollment.Status,
			"starts_at":    enrollment.StartsAt,
			"ends_at":      enrollment.EndsAt,
			"meeting_link": enrollment.MeetingLink,
		}).Error; err != nil {
			return nil, err
		}
		if !result.CreatedEnrollment {
			result.Updated = true
		}
	}

	result.EnrollmentID = enrollment.ID
	return result, nil
}

// applyActivationDefaults fills missing window fields and forces the
// enrollment active. Fields already set are never overwritten.
func applyActivationDefaults(enrollment *models.Enrollment, course *models.Course) bool {
	changed := false

	if enrollment.StartsAt == nil {
		now := time.Now()
		enrollment.StartsAt = &now
		changed = true
	}
	if enrollment.EndsAt == nil {
		days := course.DurationDays
		if days <= 0 {
			days = config.AppConfig.DefaultCourseDays
		}
		ends := enrollment.StartsAt.AddDate(0, 0, days)
		enrollment.EndsAt = &ends
		changed = true
	}
	if enrollment.MeetingLink == "" && course.MeetingLink != "" {
		enrollment.MeetingLink = course.MeetingLink
		changed = true
	}
	if enrollment.Status != models.EnrollmentActive {
		enrollment.Status = models.EnrollmentActive
		changed = true
	}

	return changed
}

// resolveCourse finds the course a product sells access to. Catalog and
// course authoring evolve independently, so the chain tolerates products
// that were never explicitly wired up: direct link, then title match, then
// slug match, then auto-create from the product.
func resolveCourse(db *gorm.DB, product *models.Product) (*models.Course, bool, error) {
	var course models.Course

	if product.CourseID != nil {
		if err := db.First(&course, *product.CourseID).Error; err == nil {
			return &course, false, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
	}

	if err := db.Where("title = ?", product.Name).First(&course).Error; err == nil {
		return &course, false, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	if slug := utils.Slugify(product.Name); slug != "" {
		if err := db.Where("slug = ?", slug).First(&course).Error; err == nil {
			return &course, false, nil
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, err
		}
	}

	course = models.Course{
		Title:        product.Name,
		IsActive:     true,
		DurationDays: config.AppConfig.DefaultCourseDays,
		MeetingLink:  product.MeetingLink,
	}
	if err := db.Create(&course).Error; err != nil {
		return nil, false, err
	}
	return &course, true, nil
}

// ActivateOrderBestEffort runs activation for a just-paid order without
// letting a failure surface to the payment path: the paid status is the
// durable truth, enrollment is recoverable via ReconcilePaidOrders.
func ActivateOrderBestEffort(db *gorm.DB, order *models.Order) *ActivationResult {
	result, err := ActivateForOrder(db, order)
	if err != nil {
		log.Printf("[ENROLLMENT] activation failed for order %d: %v (reconcile job will retry)", order.ID, err)
		return nil
	}
	return result
}

// ReconcilePaidOrders re-runs idempotent activation for paid, user-owned
// orders. Orders whose enrollment already exists come back as no-ops, so
// the sweep only repairs activations that failed after payment. Returns
// the number of enrollments created.
func ReconcilePaidOrders(db *gorm.DB) (int, error) {
	var orders []models.Order
	if err := db.Where("status = ? AND user_id IS NOT NULL", models.OrderStatusPaid).
		Find(&orders).Error; err != nil {
		return 0, err
	}

	created := 0
	for i := range orders {
		result, err := ActivateForOrder(db, &orders[i])
		if err != nil {
			log.Printf("[ENROLLMENT] reconcile failed for order %d: %v", orders[i].ID, err)
			continue
		}
		if result != nil && result.CreatedEnrollment {
			created++
		}
	}
	return created, nil
}

// ExpireEnrollments marks active enrollments whose window has closed as
// expired. Returns the number of rows flipped.
func ExpireEnrollments(db *gorm.DB, now time.Time) (int64, error) {
	res := db.Model(&models.Enrollment{}).
		Where("status = ? AND ends_at IS NOT NULL AND ends_at < ?", models.EnrollmentActive, now).
		Update("status", models.EnrollmentExpired)
	return res.RowsAffected, res.Error
}
