package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Message is an immutable entry in a project's thread. Only IsRead is ever
// updated, and only by the counterpart role's bulk mark-read.
type Message struct {
	gorm.Model

	ProjectID   uint           `gorm:"not null;index"`
	SenderID    uint           `gorm:"not null;index"`
	SenderRole  string         `gorm:"not null"` // role captured at send time
	Content     string         `gorm:"type:text;not null"`
	Attachments datatypes.JSON `gorm:"type:jsonb"` // array of attachment URLs
	IsRead      bool           `gorm:"not null;default:false"`

	// Relationships
	Project ClientProject `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Sender  User          `gorm:"foreignKey:SenderID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
