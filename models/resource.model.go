package models

import "gorm.io/gorm"

const (
	ResourceKindFile = "file"
	ResourceKindLink = "link"
	ResourceKindNote = "note"
)

// Resource is shared course material: an uploaded file URL, an external
// link or a plain note. Public resources are visible to every student;
// course-bound ones only to enrolled students.
type Resource struct {
	gorm.Model
	CourseID     *uint  `json:"course_id" gorm:"index"`
	Course       Course `json:"course" gorm:"foreignKey:CourseID"`
	Title        string `json:"title" gorm:"not null"`
	Kind         string `json:"kind" gorm:"default:'file';index"` // file, link, note
	FileURL      string `json:"file_url"`
	ExternalLink string `json:"external_link"` // HTTPS only, validated on input
	Note         string `json:"note"`
	IsPublic     bool   `json:"is_public" gorm:"default:false;index"`
}
