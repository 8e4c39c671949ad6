package models

import (
	"time"
)

// SocietyDocument represents a statutory document uploaded during
// registration. Rows are written once and never updated; they disappear only
// when the owning society is deleted.
type SocietyDocument struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SocietyID   uint      `gorm:"not null;index" json:"society_id"`
	Kind        string    `gorm:"size:30;not null" json:"kind"`
	FileName    string    `gorm:"not null" json:"file_name"`
	FilePath    string    `gorm:"not null" json:"-"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`

	// Associations
	Society *Society `gorm:"foreignKey:SocietyID" json:"-"`
}

// TableName specifies the table name for SocietyDocument
func (SocietyDocument) TableName() string {
	return "society_documents"
}

// Document kind constants
const (
	DocumentKindRegistrationCertificate = "registration_certificate"
	DocumentKindBylaws                  = "bylaws"
	DocumentKindAdditional              = "additional"
)

// SocietyDocumentResponse is the JSON response format for documents
type SocietyDocumentResponse struct {
	ID          uint      `json:"id"`
	Kind        string    `json:"kind"`
	FileName    string    `json:"file_name"`
	FileSize    int64     `json:"file_size"`
	ContentType string    `json:"content_type"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToResponse converts SocietyDocument to SocietyDocumentResponse
func (d *SocietyDocument) ToResponse() SocietyDocumentResponse {
	return SocietyDocumentResponse{
		ID:          d.ID,
		Kind:        d.Kind,
		FileName:    d.FileName,
		FileSize:    d.FileSize,
		ContentType: d.ContentType,
		CreatedAt:   d.CreatedAt,
	}
}
