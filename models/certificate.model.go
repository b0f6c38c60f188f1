package models

import (
	"time"

	"gorm.io/gorm"
)

// Certificate is issued by a teacher to an enrolled student.
type Certificate struct {
	gorm.Model
	StudentID uint      `json:"student_id" gorm:"index;not null"`
	CourseID  uint      `json:"course_id" gorm:"index;not null"`
	Student   Student   `json:"-" gorm:"foreignKey:StudentID"`
	Course    Course    `json:"course" gorm:"foreignKey:CourseID"`
	Serial    string    `json:"serial" gorm:"uniqueIndex;not null"`
	IssuedAt  time.Time `json:"issued_at"`
	FileURL   string    `json:"file_url"` // HTTPS only, validated on input
}

func (ct *Certificate) BeforeCreate(tx *gorm.DB) error {
	if ct.IssuedAt.IsZero() {
		ct.IssuedAt = time.Now()
	}
	return nil
}
