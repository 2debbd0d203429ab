package models

import (
	"time"
)

// OrderStatus is the fulfilment state of an order.
type OrderStatus string

const (
	OrderDraft      OrderStatus = "DRAFT"
	OrderOrdered    OrderStatus = "ORDERED"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCompleted  OrderStatus = "COMPLETED"
	OrderCancelled  OrderStatus = "CANCELLED"
	OrderReturned   OrderStatus = "RETURNED"
)

// orderTransitions defines the legal status transitions for an order.
// CANCELLED and COMPLETED are absorbing; DELIVERED only advances to
// COMPLETED or RETURNED.
var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderDraft:      {OrderOrdered, OrderCancelled},
	OrderOrdered:    {OrderProcessing, OrderCancelled},
	OrderProcessing: {OrderShipped, OrderCancelled},
	OrderShipped:    {OrderDelivered, OrderCancelled},
	OrderDelivered:  {OrderCompleted, OrderReturned},
}

// ParseOrderStatus converts a string into a known OrderStatus.
func ParseOrderStatus(value string) (OrderStatus, bool) {
	switch OrderStatus(value) {
	case OrderDraft, OrderOrdered, OrderProcessing, OrderShipped,
		OrderDelivered, OrderCompleted, OrderCancelled, OrderReturned:
		return OrderStatus(value), true
	}
	return "", false
}

// CanTransitionTo reports whether the transition from s to next is legal.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsImmutable reports whether the order's item collection may no longer be
// modified.
func (s OrderStatus) IsImmutable() bool {
	switch s {
	case OrderCancelled, OrderDelivered, OrderCompleted, OrderReturned:
		return true
	}
	return false
}

// PaymentStatus is the payment state of an order.
type PaymentStatus string

const (
	PaymentPending       PaymentStatus = "PENDING_PAYMENT"
	PaymentPartiallyPaid PaymentStatus = "PARTIALLY_PAID"
	PaymentPaid          PaymentStatus = "PAID"
	PaymentOverdue       PaymentStatus = "OVERDUE"
	PaymentCancelled     PaymentStatus = "CANCELLED"
	PaymentRefunded      PaymentStatus = "REFUNDED"
)

// Order represents a purchase record, either generated from an accepted
// quote or created directly.
type Order struct {
	ID                   uint              `gorm:"primaryKey" json:"id"`
	OrderReference       string            `gorm:"uniqueIndex;not null" json:"order_reference"`
	QuotationRequestID   *uint             `gorm:"index" json:"quotation_request_id"` // set when generated from a quote
	SupplierID           uint              `gorm:"not null;index" json:"supplier_id"`
	Supplier             Supplier          `gorm:"foreignKey:SupplierID" json:"supplier"`
	ContractorID         uint              `gorm:"not null;index" json:"contractor_id"`
	Contractor           Contractor        `gorm:"foreignKey:ContractorID" json:"contractor"`
	SiteID               *uint             `gorm:"index" json:"site_id"`
	Items                []OrderItem       `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	TotalAmount          float64           `gorm:"not null" json:"total_amount"`
	Status               OrderStatus       `gorm:"not null;default:'ORDERED'" json:"status"`
	PaymentStatus        PaymentStatus     `gorm:"not null;default:'PENDING_PAYMENT'" json:"payment_status"`
	OrderDate            time.Time         `json:"order_date"`
	ExpectedDeliveryDate *time.Time        `json:"expected_delivery_date"`
	ActualDeliveryDate   *time.Time        `json:"actual_delivery_date"`
	PaymentDate          *time.Time        `json:"payment_date"`
	PaymentTerms         string            `json:"payment_terms"`
	DeliveryAddress      string            `json:"delivery_address"`
	DeliveryInstructions string            `json:"delivery_instructions"`
	SpecialRequirements  string            `json:"special_requirements"`
	Notes                string            `json:"notes"`
	CreatedAt            time.Time         `json:"created_at"`
	UpdatedAt            time.Time         `json:"updated_at"`
}

// TableName specifies the table name for the Order model
func (Order) TableName() string {
	return "orders"
}

// RecalculateTotal sets TotalAmount to the sum of the item totals.
// Must be called after every item add, remove or update.
func (o *Order) RecalculateTotal() {
	var total float64
	for i := range o.Items {
		total += o.Items[i].Total
	}
	o.TotalAmount = total
}
