package models

import "gorm.io/gorm"

// ContactMessage stores "contact us" submissions
type ContactMessage struct {
	gorm.Model
	Name    string `json:"name" gorm:"not null"`
	Email   string `json:"email" gorm:"not null"`
	Message string `json:"message" gorm:"not null"`
}
