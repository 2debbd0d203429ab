package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timbua/procurement-api/config"
	"github.com/timbua/procurement-api/middleware"
	"github.com/timbua/procurement-api/models"
)

// CreateContractorRequest represents the request body for registering a
// contractor profile
type CreateContractorRequest struct {
	CompanyName                string `json:"company_name" binding:"required"`
	Email                      string `json:"email" binding:"required,email"`
	ContactPerson              string `json:"contact_person" binding:"required"`
	PhoneNumber                string `json:"phone_number"`
	BusinessRegistrationNumber string `json:"business_registration_number"`
	PhysicalAddress            string `json:"physical_address"`
	Specialization             string `json:"specialization"`
	YearsOfExperience          *int   `json:"years_of_experience"`
	LicenseNumber              string `json:"license_number"`
}

// CreateContractor handles POST /api/v1/contractors - registers the
// authenticated user as a contractor
func CreateContractor(c *gin.Context) {
	authID, err := middleware.GetAuthID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	var req CreateContractorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	db := config.GetDB()

	// One profile per identity
	var existing models.Contractor
	if err := db.Where("auth0_id = ?", authID).First(&existing).Error; err == nil {
		respondError(c, http.StatusConflict, "PROFILE_EXISTS", "A contractor profile already exists for this user")
		return
	}

	contractor := models.Contractor{
		Auth0ID:                    authID,
		CompanyName:                req.CompanyName,
		Email:                      req.Email,
		ContactPerson:              req.ContactPerson,
		PhoneNumber:                req.PhoneNumber,
		BusinessRegistrationNumber: req.BusinessRegistrationNumber,
		PhysicalAddress:            req.PhysicalAddress,
		Specialization:             req.Specialization,
		YearsOfExperience:          req.YearsOfExperience,
		LicenseNumber:              req.LicenseNumber,
		Status:                     models.VerificationPending,
	}

	if err := db.Create(&contractor).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create contractor")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    contractor,
	})
}

// GetAllContractors handles GET /api/v1/contractors
func GetAllContractors(c *gin.Context) {
	var contractors []models.Contractor
	if err := config.GetDB().Find(&contractors).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load contractors")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    contractors,
	})
}

// GetContractorByID handles GET /api/v1/contractors/:id
func GetContractorByID(c *gin.Context) {
	contractorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var contractor models.Contractor
	if err := config.GetDB().First(&contractor, contractorID).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Contractor not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    contractor,
	})
}

// VerifyContractor handles PUT /api/v1/contractors/:id/verify - marks a
// contractor as verified (admin scope)
func VerifyContractor(c *gin.Context) {
	contractorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()

	var contractor models.Contractor
	if err := db.First(&contractor, contractorID).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Contractor not found")
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":            models.VerificationVerified,
		"is_verified":       true,
		"verification_date": &now,
	}
	if err := db.Model(&contractor).Updates(updates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to verify contractor")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    contractor,
	})
}
