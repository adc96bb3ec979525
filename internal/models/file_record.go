package models

import "gorm.io/gorm"

// FileRecord is the metadata index over an externally stored binary asset.
// The blob itself lives behind the BlobStore; this row is the source of truth
// for the portal UI.
type FileRecord struct {
	gorm.Model

	ProjectID    uint   `gorm:"not null;index"`
	UploadedBy   uint   `gorm:"not null;index"`
	UploaderRole string `gorm:"not null"`
	FileName     string `gorm:"not null"`
	FileURL      string `gorm:"not null"`
	FileType     string
	FileSize     int64
	Category     string `gorm:"not null;default:other"` // "requirement", "deliverable", "asset", "other"

	// Relationships
	Project  ClientProject `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE" json:"-"`
	Uploader User          `gorm:"foreignKey:UploadedBy;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
