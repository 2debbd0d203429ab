package models

import (
	"time"
)

// QuoteStatus is the decision state of a submitted quote.
type QuoteStatus string

const (
	QuotePending  QuoteStatus = "PENDING"
	QuoteAccepted QuoteStatus = "ACCEPTED"
	QuoteRejected QuoteStatus = "REJECTED"
)

// IsDecided reports whether the quote has already been accepted or rejected.
func (s QuoteStatus) IsDecided() bool {
	return s == QuoteAccepted || s == QuoteRejected
}

// Quote represents a supplier's priced response to a quotation request.
// A supplier may submit at most one quote per request, and at most one
// quote per request may be accepted.
type Quote struct {
	ID                 uint        `gorm:"primaryKey" json:"id"`
	QuotationRequestID uint        `gorm:"not null;uniqueIndex:idx_quotes_request_supplier" json:"quotation_request_id"`
	SupplierID         uint        `gorm:"not null;uniqueIndex:idx_quotes_request_supplier" json:"supplier_id"`
	Supplier           Supplier    `gorm:"foreignKey:SupplierID" json:"supplier"`
	TotalAmount        float64     `gorm:"not null;check:total_amount > 0" json:"total_amount"`
	DeliveryTime       string      `json:"delivery_time"`
	Terms              string      `json:"terms"`
	SubmittedAt        time.Time   `json:"submitted_at"`
	Status             QuoteStatus `gorm:"not null;default:'PENDING'" json:"status"`
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the Quote model
func (Quote) TableName() string {
	return "quotes"
}
