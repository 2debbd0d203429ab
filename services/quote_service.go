package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/timbua/procurement-api/config"
	"github.com/timbua/procurement-api/models"
	"gorm.io/gorm"
)

// SubmitQuote records a supplier's quote against a quotation request.
//
// The supplier must be in the request's invited set, may only quote once per
// request, and the request must still be accepting quotes. The quote insert
// and the request's PENDING→QUOTED transition happen in one transaction,
// under the request's lock, so no two submissions can each believe they are
// the first.
func SubmitQuote(requestID, supplierID uint, amount float64, deliveryTime, terms string) (*models.Quote, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("%w: quote amount must be greater than zero", ErrValidation)
	}

	unlock := requestLocks.lock(requestID)
	defer unlock.Unlock()

	db := config.GetDB()
	var quote models.Quote

	err := db.Transaction(func(tx *gorm.DB) error {
		var request models.QuotationRequest
		if err := tx.Preload("InvitedSuppliers").First(&request, requestID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: quotation request %d", ErrNotFound, requestID)
			}
			return err
		}

		var supplier models.Supplier
		if err := tx.First(&supplier, supplierID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: supplier %d", ErrNotFound, supplierID)
			}
			return err
		}

		if !request.Status.AcceptsQuotes() {
			return fmt.Errorf("%w: request is %s", ErrRequestNotAcceptingQuotes, request.Status)
		}

		if !request.IsInvited(supplierID) {
			return fmt.Errorf("%w: supplier %d, request %d", ErrNotInvited, supplierID, requestID)
		}

		var existing int64
		if err := tx.Model(&models.Quote{}).
			Where("quotation_request_id = ? AND supplier_id = ?", requestID, supplierID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return fmt.Errorf("%w: supplier %d, request %d", ErrDuplicateQuote, supplierID, requestID)
		}

		quote = models.Quote{
			QuotationRequestID: requestID,
			SupplierID:         supplierID,
			TotalAmount:        amount,
			DeliveryTime:       deliveryTime,
			Terms:              terms,
			SubmittedAt:        time.Now(),
			Status:             models.QuotePending,
		}
		if err := tx.Create(&quote).Error; err != nil {
			return err
		}

		// First quote ever recorded for the request advances it to QUOTED.
		if request.Status == models.RequestPending {
			if err := tx.Model(&request).Update("status", models.RequestQuoted).Error; err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return GetQuoteByID(quote.ID)
}

// GetQuotesByRequest returns all quotes submitted against a request.
func GetQuotesByRequest(requestID uint) ([]models.Quote, error) {
	var quotes []models.Quote
	err := config.GetDB().
		Preload("Supplier").
		Where("quotation_request_id = ?", requestID).
		Find(&quotes).Error
	return quotes, err
}

// GetQuotesBySupplier returns all quotes a supplier has submitted.
func GetQuotesBySupplier(supplierID uint) ([]models.Quote, error) {
	var quotes []models.Quote
	err := config.GetDB().
		Preload("Supplier").
		Where("supplier_id = ?", supplierID).
		Find(&quotes).Error
	return quotes, err
}

// GetQuoteByID returns a single quote with its supplier loaded.
func GetQuoteByID(quoteID uint) (*models.Quote, error) {
	var quote models.Quote
	err := config.GetDB().Preload("Supplier").First(&quote, quoteID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: quote %d", ErrNotFound, quoteID)
		}
		return nil, err
	}
	return &quote, nil
}

// RejectQuote marks a pending quote as rejected. An accepted quote cannot be
// rejected through this path.
func RejectQuote(quoteID uint) (*models.Quote, error) {
	db := config.GetDB()
	var quote models.Quote

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&quote, quoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: quote %d", ErrNotFound, quoteID)
			}
			return err
		}

		if quote.Status == models.QuoteAccepted {
			return fmt.Errorf("%w: quote %d is accepted", ErrAlreadyDecided, quoteID)
		}

		quote.Status = models.QuoteRejected
		return tx.Model(&quote).Update("status", models.QuoteRejected).Error
	})
	if err != nil {
		return nil, err
	}

	return GetQuoteByID(quote.ID)
}

// AcceptQuote accepts a pending quote and completes the quotation workflow
// as a single atomic unit: the quote becomes ACCEPTED, the owning request
// becomes ACCEPTED, every pending sibling quote becomes REJECTED, and
// exactly one order is generated from the accepted quote. If any step fails
// the transaction rolls back and no state change is observable.
//
// The request's lock serializes AcceptQuote against concurrent submissions,
// cancellations and competing accepts: of two accepts racing on sibling
// quotes, exactly one succeeds and the other fails with ErrAlreadyDecided.
func AcceptQuote(quoteID uint) (*models.Quote, *models.Order, error) {
	db := config.GetDB()

	// Resolve the owning request before taking its lock. The quote's
	// request id is immutable, so the pre-lock read cannot go stale.
	var probe models.Quote
	if err := db.First(&probe, quoteID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, fmt.Errorf("%w: quote %d", ErrNotFound, quoteID)
		}
		return nil, nil, err
	}

	unlock := requestLocks.lock(probe.QuotationRequestID)
	defer unlock.Unlock()

	var order *models.Order
	err := db.Transaction(func(tx *gorm.DB) error {
		var quote models.Quote
		if err := tx.First(&quote, quoteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: quote %d", ErrNotFound, quoteID)
			}
			return err
		}

		if quote.Status != models.QuotePending {
			return fmt.Errorf("%w: quote %d is %s", ErrAlreadyDecided, quoteID, quote.Status)
		}

		var request models.QuotationRequest
		if err := tx.First(&request, quote.QuotationRequestID).Error; err != nil {
			return err
		}

		// A request that is already accepted or cancelled can no longer
		// have a quote accepted against it.
		if !request.Status.CanTransitionTo(models.RequestAccepted) {
			return fmt.Errorf("%w: request %d is %s", ErrInvalidTransition, request.ID, request.Status)
		}

		if err := tx.Model(&quote).Update("status", models.QuoteAccepted).Error; err != nil {
			return err
		}
		quote.Status = models.QuoteAccepted

		if err := tx.Model(&request).Update("status", models.RequestAccepted).Error; err != nil {
			return err
		}

		// Reject all pending sibling quotes. Quotes already rejected are
		// left as they are.
		if err := tx.Model(&models.Quote{}).
			Where("quotation_request_id = ? AND id <> ? AND status = ?",
				request.ID, quote.ID, models.QuotePending).
			Update("status", models.QuoteRejected).Error; err != nil {
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
		return nil, nil, err
	}

	quote, err := GetQuoteByID(quoteID)
	if err != nil {
		return nil, nil, err
	}
	return quote, order, nil
}
