package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Exam belongs to a course
type Exam struct {
	gorm.Model
	CourseID uint      `json:"course_id" gorm:"index;not null"`
	Course   Course    `json:"course" gorm:"foreignKey:CourseID"`
	Title    string    `json:"title" gorm:"not null"`
	Date     time.Time `json:"date" gorm:"index"`
}

// ExamResult is a student's score for an exam, one row per (student, exam)
type ExamResult struct {
	gorm.Model
	StudentID uint            `json:"student_id" gorm:"not null;uniqueIndex:uq_examresult_student_exam"`
	ExamID    uint            `json:"exam_id" gorm:"not null;uniqueIndex:uq_examresult_student_exam"`
	Student   Student         `json:"-" gorm:"foreignKey:StudentID"`
	Exam      Exam            `json:"exam" gorm:"foreignKey:ExamID"`
	Score     decimal.Decimal `json:"score" gorm:"type:decimal(5,2);not null"`
	GradedAt  time.Time       `json:"graded_at"`
}

func (r *ExamResult) BeforeCreate(tx *gorm.DB) error {
	if r.GradedAt.IsZero() {
		r.GradedAt = time.Now()
	}
	return nil
}
