package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	Name         string `gorm:"not null"`
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	Role         string `gorm:"not null;default:client"` // "client" or "admin"
	Phone        string
	Company      string

	// Relationships
	Projects      []ClientProject `gorm:"foreignKey:ClientID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Notifications []Notification  `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
