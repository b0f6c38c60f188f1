package models

import "gorm.io/gorm"

// Category groups store products
type Category struct {
	gorm.Model
	Name      string `json:"name" gorm:"uniqueIndex;not null"`
	IsDeleted bool   `json:"-" gorm:"default:false"`
}
