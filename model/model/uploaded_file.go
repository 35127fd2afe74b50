package model

import (
	"time"
)

const (
	FileCategoryPhoto    = "photo"
	FileCategoryDocument = "document"
)

// UploadedFile is a site photo or document attached to an assessment.
// The binary lives in the configured file store; the row records where.
type UploadedFile struct {
	ID uint64 `gorm:"primary_key:true" json:"id"`

	AssessmentID uint64 `gorm:"not null;index" json:"assessment_id"`
	UserID       string `gorm:"type:varchar(255);not null;index" json:"user_id"`

	Category     string `gorm:"type:varchar(50);default:'document'" json:"category"`
	OriginalName string `gorm:"type:varchar(255)" json:"original_name"`
	StoredName   string `gorm:"type:varchar(255)" json:"stored_name"`
	ContentType  string `gorm:"type:varchar(100)" json:"content_type"`
	SizeBytes    int64  `json:"size_bytes"`
	StoragePath  string `gorm:"type:varchar(500)" json:"storage_path"`

	CreatedAt time.Time `json:"created_at"`
}

func IsValidFileCategory(category string) bool {
	return category == FileCategoryPhoto || category == FileCategoryDocument
}
