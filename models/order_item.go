package models

import (
	"time"
)

// OrderItem is a single material line on an order. Total and TaxAmount are
// computed fields; CalculateTotal must be called whenever Quantity,
// UnitPrice, TaxRate or Discount changes.
type OrderItem struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrderID        uint      `gorm:"not null;index" json:"order_id"`
	MaterialName   string    `gorm:"not null" json:"material_name"`
	MaterialCode   string    `json:"material_code"`
	Category       string    `json:"category"`
	Quantity       float64   `gorm:"not null;check:quantity > 0" json:"quantity"`
	Unit           string    `json:"unit"`
	UnitPrice      float64   `gorm:"not null" json:"unit_price"`
	Specifications string    `json:"specifications"`
	Grade          string    `json:"grade"`
	Brand          string    `json:"brand"`
	TaxRate        float64   `gorm:"not null;default:0" json:"tax_rate"`  // percentage
	TaxAmount      float64   `gorm:"not null;default:0" json:"tax_amount"`
	Discount       float64   `gorm:"not null;default:0" json:"discount"` // percentage
	Total          float64   `gorm:"not null" json:"total"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName specifies the table name for the OrderItem model
func (OrderItem) TableName() string {
	return "order_items"
}

// CalculateTotal recomputes Total and TaxAmount:
// total = (quantity*unitPrice) * (1 - discount/100) * (1 + taxRate/100)
func (i *OrderItem) CalculateTotal() {
	subtotal := i.Quantity * i.UnitPrice
	discountAmount := subtotal * (i.Discount / 100)
	taxableAmount := subtotal - discountAmount
	tax := taxableAmount * (i.TaxRate / 100)

	i.Total = taxableAmount + tax
	i.TaxAmount = tax
}
