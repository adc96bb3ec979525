package models

import "gorm.io/gorm"

type Notification struct {
	gorm.Model

	UserID    uint   `gorm:"not null;index"`
	Type      string `gorm:"not null"` // "message", "milestone", "file", "payment", "inquiry", "deadline"
	Title     string `gorm:"not null"`
	Message   string `gorm:"type:text"`
	RelatedID *uint
	IsRead    bool `gorm:"not null;default:false"`

	// Relationships
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
