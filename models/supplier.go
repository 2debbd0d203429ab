package models

import (
	"time"

	"gorm.io/gorm"
)

// Supplier represents a material supplier that responds to quotation
// requests with quotes.
type Supplier struct {
	ID                         uint               `gorm:"primaryKey" json:"id"`
	Auth0ID                    string             `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	CompanyName                string             `gorm:"not null" json:"company_name"`
	BusinessRegistrationNumber string             `gorm:"uniqueIndex;not null" json:"business_registration_number"`
	ContactPerson              string             `json:"contact_person"`
	Email                      string             `gorm:"uniqueIndex;not null" json:"email"`
	Phone                      string             `json:"phone"`
	Website                    string             `json:"website"`
	Description                string             `json:"description"`
	YearsInBusiness            *int               `json:"years_in_business"`
	LogoURL                    *string            `json:"logo_url"`
	Status                     VerificationStatus `gorm:"not null;default:'PENDING'" json:"status"`
	IsVerified                 bool               `gorm:"not null;default:false" json:"is_verified"`
	VerificationDate           *time.Time         `json:"verification_date"`
	CreatedAt                  time.Time          `json:"created_at"`
	UpdatedAt                  time.Time          `json:"updated_at"`
	DeletedAt                  gorm.DeletedAt     `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Supplier model
func (Supplier) TableName() string {
	return "suppliers"
}
