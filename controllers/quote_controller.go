package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/timbua/procurement-api/services"
)

// SubmitQuoteRequest represents the request body for submitting a quote
type SubmitQuoteRequest struct {
	TotalAmount  float64 `json:"total_amount" binding:"required,gt=0"`
	DeliveryTime string  `json:"delivery_time"`
	Terms        string  `json:"terms"`
}

// SubmitQuote handles POST /api/v1/quotes/request/:requestId/supplier/:supplierId
func SubmitQuote(c *gin.Context) {
	requestID, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}
	supplierID, ok := parseIDParam(c, "supplierId")
	if !ok {
		return
	}

	var req SubmitQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	quote, err := services.SubmitQuote(requestID, supplierID, req.TotalAmount, req.DeliveryTime, req.Terms)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    quote,
	})
}

// GetQuotesByRequest handles GET /api/v1/quotes/request/:requestId
func GetQuotesByRequest(c *gin.Context) {
	requestID, ok := parseIDParam(c, "requestId")
	if !ok {
		return
	}

	quotes, err := services.GetQuotesByRequest(requestID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quotes,
	})
}

// GetQuotesBySupplier handles GET /api/v1/quotes/supplier/:supplierId
func GetQuotesBySupplier(c *gin.Context) {
	supplierID, ok := parseIDParam(c, "supplierId")
	if !ok {
		return
	}

	quotes, err := services.GetQuotesBySupplier(supplierID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quotes,
	})
}

// GetQuoteByID handles GET /api/v1/quotes/:id
func GetQuoteByID(c *gin.Context) {
	quoteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quote, err := services.GetQuoteByID(quoteID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quote,
	})
}

// AcceptQuote handles PUT /api/v1/quotes/:id/accept - accepts the quote,
// rejects its siblings, closes the request and generates the order in one
// transaction
func AcceptQuote(c *gin.Context) {
	quoteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quote, order, err := services.AcceptQuote(quoteID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"quote": quote,
			"order": order,
		},
	})
}

// RejectQuote handles PUT /api/v1/quotes/:id/reject
func RejectQuote(c *gin.Context) {
	quoteID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	quote, err := services.RejectQuote(quoteID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    quote,
	})
}
