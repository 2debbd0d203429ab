package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/timbua/procurement-api/config"
	"github.com/timbua/procurement-api/models"
	"gorm.io/gorm"
)

// generateOrderReference produces a globally unique order reference. The
// timestamp keeps references roughly sortable; the uuid suffix makes
// collisions within the same millisecond impossible. The column's unique
// index is the hard guarantee.
func generateOrderReference() string {
	return fmt.Sprintf("ORD-%d-%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// CreateOrder creates an order directly, without an originating quotation
// request. Item totals and the order total are recomputed on the way in.
func CreateOrder(order *models.Order) (*models.Order, error) {
	if order.SupplierID == 0 || order.ContractorID == 0 {
		return nil, fmt.Errorf("%w: supplier and contractor are required", ErrValidation)
	}
	for i := range order.Items {
		if order.Items[i].Quantity <= 0 {
			return nil, fmt.Errorf("%w: item quantity must be greater than zero", ErrValidation)
		}
		if order.Items[i].UnitPrice < 0 {
			return nil, fmt.Errorf("%w: item unit price cannot be negative", ErrValidation)
		}
		order.Items[i].CalculateTotal()
	}

	order.OrderReference = generateOrderReference()
	order.OrderDate = time.Now()
	order.Status = models.OrderOrdered
	order.PaymentStatus = models.PaymentPending
	order.RecalculateTotal()

	if err := config.GetDB().Create(order).Error; err != nil {
		return nil, err
	}
	return GetOrderByID(order.ID)
}

// CreateOrderFromQuote generates the order for an already-accepted quote.
// The accept workflow calls buildOrderFromQuote inside its own transaction;
// this entry point covers the direct REST path and refuses to produce a
// second order for the same request.
func CreateOrderFromQuote(quoteID uint) (*models.Order, error) {
	db := config.GetDB()

	var order *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var quote models.Quote
		if err := tx.First(&quote, quoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: quote %d", ErrNotFound, quoteID)
			}
			return err
		}

		if quote.Status != models.QuoteAccepted {
			return fmt.Errorf("%w: quote %d is %s", ErrQuoteNotAccepted, quoteID, quote.Status)
		}

		var existing int64
		if err := tx.Model(&models.Order{}).
			Where("quotation_request_id = ?", quote.QuotationRequestID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: an order already exists for request %d", ErrAlreadyDecided, quote.QuotationRequestID)
		}

		var request models.QuotationRequest
		if err := tx.First(&request, quote.QuotationRequestID).Error; err != nil {
			return err
		}

		built, err := buildOrderFromQuote(tx, &quote, &request)
		if err != nil {
			return err
		}
		order = built
		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetOrderByID(order.ID)
}

// buildOrderFromQuote constructs and persists the single order derived from
// an accepted quote, inside the caller's transaction. One item is created
// from the request's material line, priced at the quoted total divided by
// the requested quantity.
func buildOrderFromQuote(tx *gorm.DB, quote *models.Quote, request *models.QuotationRequest) (*models.Order, error) {
	// Quantity is validated at request creation; a zero here would mean a
	// corrupted row, not bad input.
	if request.Quantity <= 0 {
		return nil, fmt.Errorf("%w: request %d has non-positive quantity", ErrValidation, request.ID)
	}

	item := models.OrderItem{
		MaterialName: request.Material,
		Quantity:     request.Quantity,
		Unit:         request.Unit,
		UnitPrice:    quote.TotalAmount / request.Quantity,
	}
	item.CalculateTotal()

	requestID := request.ID
	order := models.Order{
		OrderReference:       generateOrderReference(),
		QuotationRequestID:   &requestID,
		SupplierID:           quote.SupplierID,
		ContractorID:         request.ContractorID,
		SiteID:               request.SiteID,
		Items:                []models.OrderItem{item},
		Status:               models.OrderOrdered,
		PaymentStatus:        models.PaymentPending,
		OrderDate:            time.Now(),
		DeliveryInstructions: quote.Terms,
	}
	order.RecalculateTotal()

	if err := tx.Create(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// GetAllOrders returns every order with items and parties loaded.
func GetAllOrders() ([]models.Order, error) {
	var orders []models.Order
	err := config.GetDB().
		Preload("Items").
		Preload("Supplier").
		Preload("Contractor").
		Find(&orders).Error
	return orders, err
}

// GetOrdersBySupplier returns the orders placed with a supplier.
func GetOrdersBySupplier(supplierID uint) ([]models.Order, error) {
	var orders []models.Order
	err := config.GetDB().
		Preload("Items").
		Where("supplier_id = ?", supplierID).
		Find(&orders).Error
	return orders, err
}

// GetOrdersByContractor returns the orders placed by a contractor.
func GetOrdersByContractor(contractorID uint) ([]models.Order, error) {
	var orders []models.Order
	err := config.GetDB().
		Preload("Items").
		Where("contractor_id = ?", contractorID).
		Find(&orders).Error
	return orders, err
}

// GetOrdersBySite returns the orders destined for a construction site.
func GetOrdersBySite(siteID uint) ([]models.Order, error) {
	var orders []models.Order
	err := config.GetDB().
		Preload("Items").
		Where("site_id = ?", siteID).
		Find(&orders).Error
	return orders, err
}

// GetPendingPayments returns orders still awaiting payment.
func GetPendingPayments() ([]models.Order, error) {
	var orders []models.Order
	err := config.GetDB().
		Preload("Items").
		Where("payment_status = ?", models.PaymentPending).
		Find(&orders).Error
	return orders, err
}

// GetOrderByID returns a single order with items and parties loaded.
func GetOrderByID(orderID uint) (*models.Order, error) {
	var order models.Order
	err := config.GetDB().
		Preload("Items").
		Preload("Supplier").
		Preload("Contractor").
		First(&order, orderID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %d", ErrNotFound, orderID)
		}
		return nil, err
	}
	return &order, nil
}

// OrderUpdateInput carries the mutable descriptive fields of an order.
// Status, payment and item changes go through their dedicated operations.
// Nil fields are left untouched.
type OrderUpdateInput struct {
	DeliveryAddress      *string
	DeliveryInstructions *string
	ExpectedDeliveryDate *time.Time
	PaymentTerms         *string
	SpecialRequirements  *string
	Notes                *string
}

// UpdateOrder updates the descriptive fields of an order. Only the fields
// present in the input are written.
func UpdateOrder(orderID uint, input OrderUpdateInput) (*models.Order, error) {
	order, err := GetOrderByID(orderID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if input.DeliveryAddress != nil {
		updates["delivery_address"] = *input.DeliveryAddress
	}
	if input.DeliveryInstructions != nil {
		updates["delivery_instructions"] = *input.DeliveryInstructions
	}
	if input.ExpectedDeliveryDate != nil {
		updates["expected_delivery_date"] = input.ExpectedDeliveryDate
	}
	if input.PaymentTerms != nil {
		updates["payment_terms"] = *input.PaymentTerms
	}
	if input.SpecialRequirements != nil {
		updates["special_requirements"] = *input.SpecialRequirements
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return order, nil
	}

	if err := config.GetDB().Model(order).Updates(updates).Error; err != nil {
		return nil, err
	}

	return GetOrderByID(orderID)
}

// UpdateOrderStatus advances an order along its status graph. Reaching
// DELIVERED stamps the actual delivery date.
func UpdateOrderStatus(orderID uint, newStatus models.OrderStatus) (*models.Order, error) {
	db := config.GetDB()

	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if !order.Status.CanTransitionTo(newStatus) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, order.Status, newStatus)
		}

		updates := map[string]interface{}{"status": newStatus}
		if newStatus == models.OrderDelivered {
			now := time.Now()
			updates["actual_delivery_date"] = &now
		}
		return tx.Model(&order).Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}

	return GetOrderByID(orderID)
}

// ConfirmPayment records that an order has been paid in full and stamps the
// payment date.
func ConfirmPayment(orderID uint) (*models.Order, error) {
	db := config.GetDB()

	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if order.PaymentStatus == models.PaymentPaid {
			return fmt.Errorf("%w: order %d", ErrAlreadyPaid, orderID)
		}
		if order.Status == models.OrderCancelled {
			return fmt.Errorf("%w: order %d", ErrOrderCancelled, orderID)
		}

		now := time.Now()
		return tx.Model(&order).Updates(map[string]interface{}{
			"payment_status": models.PaymentPaid,
			"payment_date":   &now,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return GetOrderByID(orderID)
}

// CancelOrder cancels an order that has not yet been delivered or
// completed. Payment status is forced to CANCELLED as well, even over a
// prior PAID state.
func CancelOrder(orderID uint) (*models.Order, error) {
	db := config.GetDB()

	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if order.Status == models.OrderDelivered || order.Status == models.OrderCompleted {
			return fmt.Errorf("%w: cannot cancel order in status %s", ErrInvalidTransition, order.Status)
		}

		return tx.Model(&order).Updates(map[string]interface{}{
			"status":         models.OrderCancelled,
			"payment_status": models.PaymentCancelled,
		}).Error
	})
	if err != nil {
		return nil, err
	}

	return GetOrderByID(orderID)
}

// AddItemToOrder appends an item to an order and recomputes the total.
func AddItemToOrder(orderID uint, item models.OrderItem) (*models.Order, error) {
	if item.Quantity <= 0 {
		return nil, fmt.Errorf("%w: item quantity must be greater than zero", ErrValidation)
	}
	if item.UnitPrice < 0 {
		return nil, fmt.Errorf("%w: item unit price cannot be negative", ErrValidation)
	}

	db := config.GetDB()

	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if order.Status.IsImmutable() {
			return fmt.Errorf("%w: order %d is %s", ErrOrderImmutable, orderID, order.Status)
		}

		item.OrderID = order.ID
		item.CalculateTotal()
		if err := tx.Create(&item).Error; err != nil {
			return err
		}

		order.Items = append(order.Items, item)
		order.RecalculateTotal()
		return tx.Model(&order).Update("total_amount", order.TotalAmount).Error
	})
	if err != nil {
		return nil, err
	}

	return GetOrderByID(orderID)
}

// RemoveItemFromOrder removes an item from an order and recomputes the
// total.
func RemoveItemFromOrder(orderID, itemID uint) (*models.Order, error) {
	db := config.GetDB()

	err := db.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, orderID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: order %d", ErrNotFound, orderID)
			}
			return err
		}

		if order.Status.IsImmutable() {
			return fmt.Errorf("%w: order %d is %s", ErrOrderImmutable, orderID, order.Status)
		}

		found := false
		remaining := order.Items[:0]
		for _, existing := range order.Items {
			if existing.ID == itemID {
				found = true
				continue
			}
			remaining = append(remaining, existing)
		}
		if !found {
			return fmt.Errorf("%w: item %d on order %d", ErrNotFound, itemID, orderID)
		}

		if err := tx.Delete(&models.OrderItem{}, itemID).Error; err != nil {
			return err
		}

		order.Items = remaining
		order.RecalculateTotal()
		return tx.Model(&order).Update("total_amount", order.TotalAmount).Error
	})
	if err != nil {
		return nil, err
	}

	return GetOrderByID(orderID)
}
