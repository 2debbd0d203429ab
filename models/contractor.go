package models

import (
	"time"

	"gorm.io/gorm"
)

// VerificationStatus tracks the verification state of a registered party
// (contractor or supplier).
type VerificationStatus string

const (
	VerificationPending   VerificationStatus = "PENDING"
	VerificationVerified  VerificationStatus = "VERIFIED"
	VerificationSuspended VerificationStatus = "SUSPENDED"
	VerificationRejected  VerificationStatus = "REJECTED"
)

// Contractor represents a construction contractor that requests quotations
// and places orders.
type Contractor struct {
	ID                         uint               `gorm:"primaryKey" json:"id"`
	Auth0ID                    string             `gorm:"uniqueIndex;not null" json:"auth0_id"` // Auth0 user ID (from 'sub' claim)
	CompanyName                string             `gorm:"not null" json:"company_name"`
	Email                      string             `gorm:"uniqueIndex;not null" json:"email"`
	ContactPerson              string             `gorm:"not null" json:"contact_person"`
	PhoneNumber                string             `json:"phone_number"`
	BusinessRegistrationNumber string             `json:"business_registration_number"`
	PhysicalAddress            string             `json:"physical_address"`
	Specialization             string             `json:"specialization"` // e.g. Residential, Commercial, Industrial
	YearsOfExperience          *int               `json:"years_of_experience"`
	LicenseNumber              string             `json:"license_number"`
	Status                     VerificationStatus `gorm:"not null;default:'PENDING'" json:"status"`
	IsVerified                 bool               `gorm:"not null;default:false" json:"is_verified"`
	VerificationDate           *time.Time         `json:"verification_date"`
	CreatedAt                  time.Time          `json:"created_at"`
	UpdatedAt                  time.Time          `json:"updated_at"`
	DeletedAt                  gorm.DeletedAt     `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Contractor model
func (Contractor) TableName() string {
	return "contractors"
}
