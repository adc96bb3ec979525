package models

import "gorm.io/gorm"

type Inquiry struct {
	gorm.Model

	Name              string `gorm:"not null"`
	Email             string `gorm:"not null;index"`
	Phone             string
	Company           string
	ServiceInterested string `gorm:"not null"`
	BudgetRange       string
	Description       string `gorm:"type:text;not null"`
	PreferredTimeline string
	Status            string `gorm:"not null;default:new;index"` // "new", "contacted", "in_discussion", "converted", "declined"
	InternalNotes     string `gorm:"type:text"`

	// Set when the inquiry is promoted into an engagement.
	ProjectID *uint `gorm:"index"`
}
