package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PortfolioProject is public marketing content, visible only when published.
type PortfolioProject struct {
	gorm.Model

	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Category    string
	TechStack   datatypes.JSON `gorm:"type:jsonb"` // array of technology names
	ImageURL    string
	LiveURL     string
	Featured    bool `gorm:"not null;default:false"`
	IsPublished bool `gorm:"not null;default:true"`
	Views       int  `gorm:"not null;default:0"` // best-effort counter, incremented on read
}
