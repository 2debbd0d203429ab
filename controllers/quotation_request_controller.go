package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timbua/procurement-api/services"
)

// CreateQuotationRequestRequest represents the request body for opening a
// quotation request
type CreateQuotationRequestRequest struct {
	ContractorID uint       `json:"contractor_id" binding:"required"`
	SiteID       *uint      `json:"site_id"`
	Material     string     `json:"material" binding:"required"`
	Quantity     float64    `json:"quantity" binding:"required,gt=0"`
	Unit         string     `json:"unit"`
	Deadline     *time.Time `json:"deadline"`
	SupplierIDs  []uint     `json:"supplier_ids" binding:"required,min=1"`
}

// CancelQuotationRequestRequest represents the request body for cancelling
// a quotation request
type CancelQuotationRequestRequest struct {
	Reason string `json:"reason"`
}

// AddSuppliersRequest represents the request body for inviting more
// suppliers to an existing request
type AddSuppliersRequest struct {
	SupplierIDs []uint `json:"supplier_ids" binding:"required,min=1"`
}

// CreateQuotationRequest handles POST /api/v1/quotation-requests
func CreateQuotationRequest(c *gin.Context) {
	var req CreateQuotationRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	request, err := services.CreateQuotationRequest(services.CreateQuotationRequestInput{
		ContractorID: req.ContractorID,
		SiteID:       req.SiteID,
		Material:     req.Material,
		Quantity:     req.Quantity,
		Unit:         req.Unit,
		Deadline:     req.Deadline,
		SupplierIDs:  req.SupplierIDs,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    request,
	})
}

// GetAllQuotationRequests handles GET /api/v1/quotation-requests
func GetAllQuotationRequests(c *gin.Context) {
	requests, err := services.GetAllRequests()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// GetQuotationRequestsByContractor handles GET /api/v1/quotation-requests/contractor/:contractorId
func GetQuotationRequestsByContractor(c *gin.Context) {
	contractorID, ok := parseIDParam(c, "contractorId")
	if !ok {
		return
	}

	requests, err := services.GetRequestsByContractor(contractorID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// GetQuotationRequestsForSupplier handles GET /api/v1/quotation-requests/supplier/:supplierId
func GetQuotationRequestsForSupplier(c *gin.Context) {
	supplierID, ok := parseIDParam(c, "supplierId")
	if !ok {
		return
	}

	requests, err := services.GetRequestsForSupplier(supplierID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    requests,
	})
}

// GetQuotationRequestByID handles GET /api/v1/quotation-requests/:id
func GetQuotationRequestByID(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	request, err := services.GetRequestByID(requestID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}

// CancelQuotationRequest handles PUT /api/v1/quotation-requests/:id/cancel
func CancelQuotationRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req CancelQuotationRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data")
		return
	}

	request, err := services.CancelRequest(requestID, req.Reason)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}

// AddSuppliersToQuotationRequest handles POST /api/v1/quotation-requests/:id/suppliers
func AddSuppliersToQuotationRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req AddSuppliersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	request, err := services.AddSuppliersToRequest(requestID, req.SupplierIDs)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}

// RemoveSupplierFromQuotationRequest handles DELETE /api/v1/quotation-requests/:id/suppliers/:supplierId
func RemoveSupplierFromQuotationRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	supplierID, ok := parseIDParam(c, "supplierId")
	if !ok {
		return
	}

	request, err := services.RemoveSupplierFromRequest(requestID, supplierID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    request,
	})
}
