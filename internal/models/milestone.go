package models

import (
	"time"

	"gorm.io/gorm"
)

// Milestone is a child row of a ClientProject, ordered by Position.
type Milestone struct {
	gorm.Model

	ProjectID     uint   `gorm:"not null;index"`
	Position      int    `gorm:"not null"`
	Name          string `gorm:"not null"`
	Description   string
	Status        string `gorm:"not null;default:not_started"` // "not_started", "in_progress", "completed", "on_hold"
	ExpectedDate  *time.Time
	CompletedDate *time.Time

	// Relationships
	Project ClientProject `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
