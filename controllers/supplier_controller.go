package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timbua/procurement-api/config"
	"github.com/timbua/procurement-api/middleware"
	"github.com/timbua/procurement-api/models"
)

// CreateSupplierRequest represents the request body for registering a
// supplier profile
type CreateSupplierRequest struct {
	CompanyName                string `json:"company_name" binding:"required"`
	BusinessRegistrationNumber string `json:"business_registration_number" binding:"required"`
	ContactPerson              string `json:"contact_person"`
	Email                      string `json:"email" binding:"required,email"`
	Phone                      string `json:"phone"`
	Website                    string `json:"website"`
	Description                string `json:"description"`
	YearsInBusiness            *int   `json:"years_in_business"`
}

// CreateSupplier handles POST /api/v1/suppliers - registers the
// authenticated user as a supplier
func CreateSupplier(c *gin.Context) {
	authID, err := middleware.GetAuthID(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "Could not extract user information")
		return
	}

	var req CreateSupplierRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	db := config.GetDB()

	// One profile per identity
	var existing models.Supplier
	if err := db.Where("auth0_id = ?", authID).First(&existing).Error; err == nil {
		respondError(c, http.StatusConflict, "PROFILE_EXISTS", "A supplier profile already exists for this user")
		return
	}

	supplier := models.Supplier{
		Auth0ID:                    authID,
		CompanyName:                req.CompanyName,
		BusinessRegistrationNumber: req.BusinessRegistrationNumber,
		ContactPerson:              req.ContactPerson,
		Email:                      req.Email,
		Phone:                      req.Phone,
		Website:                    req.Website,
		Description:                req.Description,
		YearsInBusiness:            req.YearsInBusiness,
		Status:                     models.VerificationPending,
	}

	if err := db.Create(&supplier).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to create supplier")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    supplier,
	})
}

// GetAllSuppliers handles GET /api/v1/suppliers
func GetAllSuppliers(c *gin.Context) {
	var suppliers []models.Supplier
	if err := config.GetDB().Find(&suppliers).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to load suppliers")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    suppliers,
	})
}

// GetSupplierByID handles GET /api/v1/suppliers/:id
func GetSupplierByID(c *gin.Context) {
	supplierID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var supplier models.Supplier
	if err := config.GetDB().First(&supplier, supplierID).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Supplier not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    supplier,
	})
}

// VerifySupplier handles PUT /api/v1/suppliers/:id/verify - marks a
// supplier as verified (admin scope)
func VerifySupplier(c *gin.Context) {
	supplierID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	db := config.GetDB()

	var supplier models.Supplier
	if err := db.First(&supplier, supplierID).Error; err != nil {
		respondError(c, http.StatusNotFound, "NOT_FOUND", "Supplier not found")
		return
	}

	now := time.Now()
	updates := map[string]interface{}{
		"status":            models.VerificationVerified,
		"is_verified":       true,
		"verification_date": &now,
	}
	if err := db.Model(&supplier).Updates(updates).Error; err != nil {
		respondError(c, http.StatusInternalServerError, "DATABASE_ERROR", "Failed to verify supplier")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    supplier,
	})
}
