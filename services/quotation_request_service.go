package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/timbua/procurement-api/config"
	"github.com/timbua/procurement-api/models"
	"gorm.io/gorm"
)

// CreateQuotationRequestInput carries the fields needed to open a new
// quotation request.
type CreateQuotationRequestInput struct {
	ContractorID uint
	SiteID       *uint
	Material     string
	Quantity     float64
	Unit         string
	Deadline     *time.Time
	SupplierIDs  []uint
}

// CreateQuotationRequest opens a new PENDING request owned by the contractor
// and invites the given suppliers.
func CreateQuotationRequest(input CreateQuotationRequestInput) (*models.QuotationRequest, error) {
	if input.Material == "" {
		return nil, fmt.Errorf("%w: material is required", ErrValidation)
	}
	if input.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be greater than zero", ErrValidation)
	}
	if len(input.SupplierIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one supplier must be invited", ErrValidation)
	}

	db := config.GetDB()

	var contractor models.Contractor
	if err := db.First(&contractor, input.ContractorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: contractor %d", ErrNotFound, input.ContractorID)
		}
		return nil, err
	}

	var suppliers []models.Supplier
	if err := db.Find(&suppliers, input.SupplierIDs).Error; err != nil {
		return nil, err
	}
	if len(suppliers) == 0 {
		return nil, fmt.Errorf("%w: no valid suppliers found for the provided IDs", ErrValidation)
	}

	request := models.QuotationRequest{
		ContractorID:     contractor.ID,
		SiteID:           input.SiteID,
		Material:         input.Material,
		Quantity:         input.Quantity,
		Unit:             input.Unit,
		Deadline:         input.Deadline,
		Status:           models.RequestPending,
		InvitedSuppliers: suppliers,
	}

	if err := db.Create(&request).Error; err != nil {
		return nil, err
	}

	return GetRequestByID(request.ID)
}

// GetAllRequests returns every quotation request with its related records.
func GetAllRequests() ([]models.QuotationRequest, error) {
	var requests []models.QuotationRequest
	err := config.GetDB().
		Preload("Contractor").
		Preload("InvitedSuppliers").
		Find(&requests).Error
	return requests, err
}

// GetRequestsByContractor returns the requests created by a contractor.
func GetRequestsByContractor(contractorID uint) ([]models.QuotationRequest, error) {
	var requests []models.QuotationRequest
	err := config.GetDB().
		Preload("Contractor").
		Preload("InvitedSuppliers").
		Where("contractor_id = ?", contractorID).
		Find(&requests).Error
	return requests, err
}

// GetRequestsForSupplier returns the requests a supplier was invited to.
func GetRequestsForSupplier(supplierID uint) ([]models.QuotationRequest, error) {
	var requests []models.QuotationRequest
	err := config.GetDB().
		Preload("Contractor").
		Preload("InvitedSuppliers").
		Joins("JOIN quotation_request_suppliers qrs ON qrs.quotation_request_id = quotation_requests.id").
		Where("qrs.supplier_id = ?", supplierID).
		Find(&requests).Error
	return requests, err
}

// GetRequestByID returns a single request with its invited suppliers,
// quotes and contractor loaded.
func GetRequestByID(requestID uint) (*models.QuotationRequest, error) {
	var request models.QuotationRequest
	err := config.GetDB().
		Preload("Contractor").
		Preload("InvitedSuppliers").
		Preload("Quotes").
		First(&request, requestID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: quotation request %d", ErrNotFound, requestID)
		}
		return nil, err
	}
	return &request, nil
}

// CancelRequest cancels a PENDING or QUOTED request. Quotes already
// submitted are left untouched; they simply become unacceptable because the
// request is terminal.
func CancelRequest(requestID uint, reason string) (*models.QuotationRequest, error) {
	unlock := requestLocks.lock(requestID)
	defer unlock.Unlock()

	db := config.GetDB()
	var request models.QuotationRequest

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: quotation request %d", ErrNotFound, requestID)
			}
			return err
		}

		if !request.Status.CanTransitionTo(models.RequestCancelled) {
			return fmt.Errorf("%w: cannot cancel request in status %s", ErrInvalidTransition, request.Status)
		}

		request.Status = models.RequestCancelled
		return tx.Model(&request).Update("status", models.RequestCancelled).Error
	})
	if err != nil {
		return nil, err
	}

	log.Printf("Quotation request %d cancelled: %s", requestID, reason)
	return &request, nil
}

// AddSuppliersToRequest invites additional suppliers to an existing request.
// Only permitted while the request is still accepting quotes; the check and
// the mutation run under the request's lock so an accept or cancel cannot
// slip in between them.
func AddSuppliersToRequest(requestID uint, supplierIDs []uint) (*models.QuotationRequest, error) {
	unlock := requestLocks.lock(requestID)
	defer unlock.Unlock()

	db := config.GetDB()

	err := db.Transaction(func(tx *gorm.DB) error {
		var request models.QuotationRequest
		if err := tx.Preload("InvitedSuppliers").First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: quotation request %d", ErrNotFound, requestID)
			}
			return err
		}

		if !request.Status.AcceptsQuotes() {
			return fmt.Errorf("%w: cannot modify invited suppliers of request in status %s", ErrInvalidTransition, request.Status)
		}

		var suppliers []models.Supplier
		if err := tx.Find(&suppliers, supplierIDs).Error; err != nil {
			return err
		}

		for _, supplier := range suppliers {
			if request.IsInvited(supplier.ID) {
				continue
			}
			if err := tx.Model(&request).Association("InvitedSuppliers").Append(&supplier); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetRequestByID(requestID)
}

// RemoveSupplierFromRequest removes a supplier from the invited set. A quote
// the supplier already submitted stays valid. Takes the same request lock as
// AddSuppliersToRequest.
func RemoveSupplierFromRequest(requestID, supplierID uint) (*models.QuotationRequest, error) {
	unlock := requestLocks.lock(requestID)
	defer unlock.Unlock()

	db := config.GetDB()

	err := db.Transaction(func(tx *gorm.DB) error {
		var request models.QuotationRequest
		if err := tx.First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: quotation request %d", ErrNotFound, requestID)
			}
			return err
		}

		if !request.Status.AcceptsQuotes() {
			return fmt.Errorf("%w: cannot modify invited suppliers of request in status %s", ErrInvalidTransition, request.Status)
		}

		var supplier models.Supplier
		if err := tx.First(&supplier, supplierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: supplier %d", ErrNotFound, supplierID)
			}
			return err
		}

		return tx.Model(&request).Association("InvitedSuppliers").Delete(&supplier)
	})
	if err != nil {
		return nil, err
	}

	return GetRequestByID(requestID)
}
