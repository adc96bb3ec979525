package models

import (
	"time"

	"gorm.io/gorm"
)

// PaymentStatus tracks admin-set payment bookkeeping for a project.
// Flags are never derived from milestone state.
type PaymentStatus struct {
	TotalAmount   float64
	DepositAmount float64
	DepositPaid   bool `gorm:"not null;default:false"`
	FinalAmount   float64
	FinalPaid     bool `gorm:"not null;default:false"`
}

type ClientProject struct {
	gorm.Model

	ClientID           uint   `gorm:"not null;index"`
	ProjectName        string `gorm:"not null"`
	Description        string `gorm:"type:text"`
	ServiceType        string `gorm:"not null"`
	Budget             float64
	Timeline           string
	Status             string `gorm:"not null;default:inquiry"` // "inquiry", "in_progress", "completed", "on_hold"
	CurrentMilestone   string
	ProgressPercentage int `gorm:"not null;default:0"`
	CompletedAt        *time.Time

	Payment PaymentStatus `gorm:"embedded;embeddedPrefix:payment_"`

	// Relationships
	Client            User               `gorm:"foreignKey:ClientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Milestones        []Milestone        `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	PaymentMilestones []PaymentMilestone `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Messages          []Message          `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Files             []FileRecord       `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
