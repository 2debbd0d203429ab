package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/timbua/procurement-api/models"
	"github.com/timbua/procurement-api/services"
)

// OrderItemRequest represents a single item line in an order request body
type OrderItemRequest struct {
	MaterialName   string  `json:"material_name" binding:"required"`
	MaterialCode   string  `json:"material_code"`
	Category       string  `json:"category"`
	Quantity       float64 `json:"quantity" binding:"required,gt=0"`
	Unit           string  `json:"unit"`
	UnitPrice      float64 `json:"unit_price" binding:"gte=0"`
	Specifications string  `json:"specifications"`
	Grade          string  `json:"grade"`
	Brand          string  `json:"brand"`
	TaxRate        float64 `json:"tax_rate"`
	Discount       float64 `json:"discount"`
}

// CreateOrderRequest represents the request body for creating an order
// directly, without an originating quotation request
type CreateOrderRequest struct {
	SupplierID           uint               `json:"supplier_id" binding:"required"`
	ContractorID         uint               `json:"contractor_id" binding:"required"`
	SiteID               *uint              `json:"site_id"`
	Items                []OrderItemRequest `json:"items" binding:"required,min=1,dive"`
	PaymentTerms         string             `json:"payment_terms"`
	DeliveryAddress      string             `json:"delivery_address"`
	DeliveryInstructions string             `json:"delivery_instructions"`
	ExpectedDeliveryDate *time.Time         `json:"expected_delivery_date"`
	Notes                string             `json:"notes"`
}

// UpdateOrderRequest represents the request body for updating an order's
// descriptive fields. Pointer fields distinguish "not sent" from "set to
// empty", so a partial update leaves the other fields alone.
type UpdateOrderRequest struct {
	DeliveryAddress      *string    `json:"delivery_address"`
	DeliveryInstructions *string    `json:"delivery_instructions"`
	ExpectedDeliveryDate *time.Time `json:"expected_delivery_date"`
	PaymentTerms         *string    `json:"payment_terms"`
	SpecialRequirements  *string    `json:"special_requirements"`
	Notes                *string    `json:"notes"`
}

// UpdateOrderStatusRequest represents the request body for an order status
// transition
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (r *OrderItemRequest) toModel() models.OrderItem {
	return models.OrderItem{
		MaterialName:   r.MaterialName,
		MaterialCode:   r.MaterialCode,
		Category:       r.Category,
		Quantity:       r.Quantity,
		Unit:           r.Unit,
		UnitPrice:      r.UnitPrice,
		Specifications: r.Specifications,
		Grade:          r.Grade,
		Brand:          r.Brand,
		TaxRate:        r.TaxRate,
		Discount:       r.Discount,
	}
}

// CreateOrder handles POST /api/v1/orders
func CreateOrder(c *gin.Context) {
	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	items := make([]models.OrderItem, 0, len(req.Items))
	for i := range req.Items {
		items = append(items, req.Items[i].toModel())
	}

	order := models.Order{
		SupplierID:           req.SupplierID,
		ContractorID:         req.ContractorID,
		SiteID:               req.SiteID,
		Items:                items,
		PaymentTerms:         req.PaymentTerms,
		DeliveryAddress:      req.DeliveryAddress,
		DeliveryInstructions: req.DeliveryInstructions,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		Notes:                req.Notes,
	}

	created, err := services.CreateOrder(&order)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    created,
	})
}

// CreateOrderFromQuote handles POST /api/v1/orders/from-quote/:quoteId
func CreateOrderFromQuote(c *gin.Context) {
	quoteID, ok := parseIDParam(c, "quoteId")
	if !ok {
		return
	}

	order, err := services.CreateOrderFromQuote(quoteID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"data":    order,
	})
}

// ConfirmPayment handles PUT /api/v1/orders/:id/confirm-payment
func ConfirmPayment(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := services.ConfirmPayment(orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message":         "Payment confirmed successfully.",
			"payment_status":  order.PaymentStatus,
			"order_reference": order.OrderReference,
			"payment_date":    order.PaymentDate,
		},
	})
}

// CancelOrder handles PUT /api/v1/orders/:id/cancel
func CancelOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := services.CancelOrder(orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data": gin.H{
			"message":         "Order cancelled successfully.",
			"status":          order.Status,
			"order_reference": order.OrderReference,
		},
	})
}

// UpdateOrderStatus handles PUT /api/v1/orders/:id/status
func UpdateOrderStatus(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	status, valid := models.ParseOrderStatus(req.Status)
	if !valid {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Unknown order status: "+req.Status)
		return
	}

	order, err := services.UpdateOrderStatus(orderID, status)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// GetAllOrders handles GET /api/v1/orders
func GetAllOrders(c *gin.Context) {
	orders, err := services.GetAllOrders()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrdersBySupplier handles GET /api/v1/orders/supplier/:supplierId
func GetOrdersBySupplier(c *gin.Context) {
	supplierID, ok := parseIDParam(c, "supplierId")
	if !ok {
		return
	}

	orders, err := services.GetOrdersBySupplier(supplierID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrdersByContractor handles GET /api/v1/orders/contractor/:contractorId
func GetOrdersByContractor(c *gin.Context) {
	contractorID, ok := parseIDParam(c, "contractorId")
	if !ok {
		return
	}

	orders, err := services.GetOrdersByContractor(contractorID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrdersBySite handles GET /api/v1/orders/site/:siteId
func GetOrdersBySite(c *gin.Context) {
	siteID, ok := parseIDParam(c, "siteId")
	if !ok {
		return
	}

	orders, err := services.GetOrdersBySite(siteID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetPendingPayments handles GET /api/v1/orders/pending-payments
func GetPendingPayments(c *gin.Context) {
	orders, err := services.GetPendingPayments()
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// GetOrderByID handles GET /api/v1/orders/:id
func GetOrderByID(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	order, err := services.GetOrderByID(orderID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// UpdateOrder handles PUT /api/v1/orders/:id
func UpdateOrder(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	order, err := services.UpdateOrder(orderID, services.OrderUpdateInput{
		DeliveryAddress:      req.DeliveryAddress,
		DeliveryInstructions: req.DeliveryInstructions,
		ExpectedDeliveryDate: req.ExpectedDeliveryDate,
		PaymentTerms:         req.PaymentTerms,
		SpecialRequirements:  req.SpecialRequirements,
		Notes:                req.Notes,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// AddOrderItem handles POST /api/v1/orders/:id/items
func AddOrderItem(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req OrderItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request data: "+err.Error())
		return
	}

	order, err := services.AddItemToOrder(orderID, req.toModel())
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}

// RemoveOrderItem handles DELETE /api/v1/orders/:id/items/:itemId
func RemoveOrderItem(c *gin.Context) {
	orderID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseIDParam(c, "itemId")
	if !ok {
		return
	}

	order, err := services.RemoveItemFromOrder(orderID, itemID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
