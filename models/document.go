package models

import (
	"time"

	"gorm.io/gorm"
)

// Document owner types.
const (
	DocumentOwnerContractor = "contractor"
	DocumentOwnerSupplier   = "supplier"
)

// DocumentStatus is the review state of an uploaded verification document.
type DocumentStatus string

const (
	DocumentPendingReview DocumentStatus = "PENDING_REVIEW"
	DocumentApproved      DocumentStatus = "APPROVED"
	DocumentRejected      DocumentStatus = "REJECTED"
)

// Document represents a verification document (license, registration
// certificate, tax clearance) uploaded by a contractor or supplier.
type Document struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	OwnerType    string         `gorm:"not null;index:idx_documents_owner" json:"owner_type"` // "contractor" or "supplier"
	OwnerID      uint           `gorm:"not null;index:idx_documents_owner" json:"owner_id"`
	DocumentType string         `gorm:"not null" json:"document_type"` // e.g. license, registration, tax_clearance
	FileName     string         `gorm:"not null" json:"file_name"`
	S3Key        string         `gorm:"not null" json:"s3_key"`
	FileURL      string         `gorm:"-" json:"file_url,omitempty"` // computed field, presigned URL
	Status       DocumentStatus `gorm:"not null;default:'PENDING_REVIEW'" json:"status"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Document model
func (Document) TableName() string {
	return "documents"
}
