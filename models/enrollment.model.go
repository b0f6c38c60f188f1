package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	EnrollmentActive  = "active"
	EnrollmentPending = "pending"
	EnrollmentExpired = "expired"
)

// Enrollment grants a student access to a course inside a time window.
// The (student, course) unique index is what keeps concurrent activation
// attempts from creating duplicates.
type Enrollment struct {
	gorm.Model
	StudentID   uint            `json:"student_id" gorm:"not null;uniqueIndex:uq_enrollment_student_course"`
	CourseID    uint            `json:"course_id" gorm:"not null;uniqueIndex:uq_enrollment_student_course"`
	Student     Student         `json:"-" gorm:"foreignKey:StudentID"`
	Course      Course          `json:"course" gorm:"foreignKey:CourseID"`
	Status      string          `json:"status" gorm:"default:'active';index"`
	JoinedAt    time.Time       `json:"joined_at"`
	StartsAt    *time.Time      `json:"starts_at"`
	EndsAt      *time.Time      `json:"ends_at"`
	Progress    decimal.Decimal `json:"progress" gorm:"type:decimal(5,2);default:0"`
	MeetingLink string          `json:"meeting_link"` // overrides the course link when set
}

func (e *Enrollment) BeforeCreate(tx *gorm.DB) error {
	if e.JoinedAt.IsZero() {
		e.JoinedAt = time.Now()
	}
	return nil
}

// BeforeSave keeps progress inside 0..100.
func (e *Enrollment) BeforeSave(tx *gorm.DB) error {
	hundred := decimal.NewFromInt(100)
	if e.Progress.IsNegative() {
		e.Progress = decimal.Zero
	}
	if e.Progress.GreaterThan(hundred) {
		e.Progress = hundred
	}
	return nil
}

// EffectiveMeetingLink falls back to the course link when the enrollment
// has no override.
func (e *Enrollment) EffectiveMeetingLink() string {
	if e.MeetingLink != "" {
		return e.MeetingLink
	}
	return e.Course.MeetingLink
}

// IsWithinWindow reports whether the access window covers now.
func (e *Enrollment) IsWithinWindow(now time.Time) bool {
	if e.StartsAt != nil && now.Before(*e.StartsAt) {
		return false
	}
	if e.EndsAt != nil && now.After(*e.EndsAt) {
		return false
	}
	return true
}
