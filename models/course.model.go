package models

import (
	"fmt"
	"time"

	"madrasa/utils"

	"gorm.io/gorm"
)

const courseSlugMaxLen = 64

// Course is a unit of paid learning content. Courses are normally authored
// by teachers, but enrollment activation may auto-create one from a product
// that was never wired to a course.
type Course struct {
	gorm.Model
	Title         string     `json:"title" gorm:"not null;index"`
	Slug          string     `json:"slug" gorm:"uniqueIndex;not null"`
	TeacherID     *uint      `json:"teacher_id" gorm:"index"` // authoring user, nil for auto-created courses
	IsActive      bool       `json:"is_active" gorm:"index"`
	StartDate     *time.Time `json:"start_date"`
	EndDate       *time.Time `json:"end_date"`
	DurationDays  int        `json:"duration_days" gorm:"default:30"`
	MeetingLink   string     `json:"meeting_link"` // HTTPS only, validated on input
	CoverImageURL string     `json:"cover_image_url"`
}

// BeforeCreate derives a unique slug from the title when none was provided.
func (crs *Course) BeforeCreate(tx *gorm.DB) error {
	if crs.DurationDays <= 0 {
		crs.DurationDays = 30
	}
	if crs.Slug != "" {
		return nil
	}
	slug, err := UniqueCourseSlug(tx, crs.Title)
	if err != nil {
		return err
	}
	crs.Slug = slug
	return nil
}

// IsWithinWindow reports whether the course date window (if any) covers now.
func (crs *Course) IsWithinWindow(now time.Time) bool {
	if crs.StartDate != nil && now.Before(*crs.StartDate) {
		return false
	}
	if crs.EndDate != nil && now.After(*crs.EndDate) {
		return false
	}
	return true
}

// UniqueCourseSlug slugifies base and appends -2, -3, ... until the slug is
// free. Collisions are expected when products share names with courses.
func UniqueCourseSlug(tx *gorm.DB, base string) (string, error) {
	raw := utils.Slugify(base)
	if raw == "" {
		raw = "course"
	}
	if len(raw) > courseSlugMaxLen {
		raw = raw[:courseSlugMaxLen]
	}

	candidate := raw
	for i := 2; ; i++ {
		var count int64
		if err := tx.Model(&Course{}).Where("slug = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		suffix := fmt.Sprintf("-%d", i)
		trimmed := raw
		if len(trimmed)+len(suffix) > courseSlugMaxLen {
			trimmed = trimmed[:courseSlugMaxLen-len(suffix)]
		}
		candidate = trimmed + suffix
	}
}
