package models

import "gorm.io/gorm"

// Student is the learner profile, one per user account. It is created
// lazily the first time a student-scoped view or enrollment activation
// needs one.
type Student struct {
	gorm.Model
	UserID uint   `json:"user_id" gorm:"uniqueIndex;not null"`
	User   User   `json:"user" gorm:"foreignKey:UserID"`
	Phone  string `json:"phone"`
	City   string `json:"city"`
}
