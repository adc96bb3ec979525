package models

import "gorm.io/gorm"

type Testimonial struct {
	gorm.Model

	ClientName    string `gorm:"not null"`
	ClientCompany string
	Content       string `gorm:"type:text;not null"`
	Rating        int    `gorm:"not null;default:5"` // 1..5
	IsPublished   bool   `gorm:"not null;default:true"`
}
