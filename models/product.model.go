package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Product is a purchasable store item. A product may optionally be linked to
// a course; paying for it then activates the buyer's enrollment.
type Product struct {
	gorm.Model
	Name        string          `json:"name" gorm:"not null;index"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(10,2);not null"`
	CategoryID  uint            `json:"category_id" gorm:"index;not null"`
	Category    Category        `json:"category" gorm:"foreignKey:CategoryID"`
	Available   bool            `json:"available" gorm:"index"`
	Stock       *int            `json:"stock"` // nil means stock is not tracked
	ImageURL    string          `json:"image_url"`
	MeetingLink string          `json:"meeting_link"` // HTTPS only, copied to auto-created courses
	CourseID    *uint           `json:"course_id" gorm:"index"`
	IsDeleted   bool            `json:"-" gorm:"default:false"`
}
