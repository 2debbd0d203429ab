package models

import (
	"time"
)

// RequestStatus is the lifecycle state of a quotation request.
type RequestStatus string

const (
	RequestPending   RequestStatus = "PENDING"   // request created, waiting for quotes
	RequestQuoted    RequestStatus = "QUOTED"    // at least one quote received
	RequestAccepted  RequestStatus = "ACCEPTED"  // a quote was accepted, order created
	RequestCancelled RequestStatus = "CANCELLED" // request cancelled by the contractor
)

// requestTransitions defines the legal status transitions for a quotation
// request. ACCEPTED and CANCELLED are terminal.
var requestTransitions = map[RequestStatus][]RequestStatus{
	RequestPending: {RequestQuoted, RequestAccepted, RequestCancelled},
	RequestQuoted:  {RequestAccepted, RequestCancelled},
}

// CanTransitionTo reports whether the transition from s to next is legal.
func (s RequestStatus) CanTransitionTo(next RequestStatus) bool {
	for _, allowed := range requestTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transitions are possible from s.
func (s RequestStatus) IsTerminal() bool {
	return len(requestTransitions[s]) == 0
}

// AcceptsQuotes reports whether suppliers may still submit quotes.
func (s RequestStatus) AcceptsQuotes() bool {
	return s == RequestPending || s == RequestQuoted
}

// QuotationRequest represents a contractor's request for priced quotes on a
// material quantity, sent to an invited set of suppliers.
type QuotationRequest struct {
	ID               uint          `gorm:"primaryKey" json:"id"`
	ContractorID     uint          `gorm:"not null;index" json:"contractor_id"`
	Contractor       Contractor    `gorm:"foreignKey:ContractorID" json:"contractor"`
	SiteID           *uint         `json:"site_id"` // site where materials are needed
	Material         string        `gorm:"not null" json:"material"`
	Quantity         float64       `gorm:"not null;check:quantity > 0" json:"quantity"`
	Unit             string        `json:"unit"`
	Deadline         *time.Time    `json:"deadline"` // informational only, not enforced against submission
	Status           RequestStatus `gorm:"not null;default:'PENDING'" json:"status"`
	InvitedSuppliers []Supplier    `gorm:"many2many:quotation_request_suppliers" json:"invited_suppliers"`
	Quotes           []Quote       `gorm:"foreignKey:QuotationRequestID;constraint:OnDelete:CASCADE" json:"quotes,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`
}

// TableName specifies the table name for the QuotationRequest model
func (QuotationRequest) TableName() string {
	return "quotation_requests"
}

// IsInvited reports whether the supplier is in the request's invited set.
func (r *QuotationRequest) IsInvited(supplierID uint) bool {
	for _, s := range r.InvitedSuppliers {
		if s.ID == supplierID {
			return true
		}
	}
	return false
}
