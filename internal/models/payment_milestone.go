package models

import (
	"time"

	"gorm.io/gorm"
)

type PaymentMilestone struct {
	gorm.Model

	ProjectID   uint    `gorm:"not null;index"`
	Description string  `gorm:"not null"`
	Amount      float64 `gorm:"not null"`
	IsPaid      bool    `gorm:"not null;default:false"`
	DueDate     *time.Time

	// Relationships
	Project ClientProject `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
}
