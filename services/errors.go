package services

import "errors"

// Business-rule errors returned by the procurement services. Controllers
// match these with errors.Is and map them to HTTP status codes. None of
// them are transient: callers should not retry on any of these.
var (
	// ErrNotFound indicates a request, quote, order or party does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrValidation indicates invalid input such as a non-positive quantity
	// or a missing required field.
	ErrValidation = errors.New("validation failed")

	// ErrInvalidTransition indicates a state machine violation.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrNotInvited indicates the supplier is not in the request's invited set.
	ErrNotInvited = errors.New("supplier is not invited to this quotation request")

	// ErrDuplicateQuote indicates the supplier already has a quote on the request.
	ErrDuplicateQuote = errors.New("supplier already submitted a quote for this request")

	// ErrRequestNotAcceptingQuotes indicates the request is accepted or cancelled.
	ErrRequestNotAcceptingQuotes = errors.New("quotation request is no longer accepting quotes")

	// ErrAlreadyDecided indicates the quote has already been accepted or rejected.
	ErrAlreadyDecided = errors.New("quote has already been decided")

	// ErrQuoteNotAccepted indicates an order was requested from a quote that
	// is not in the accepted state.
	ErrQuoteNotAccepted = errors.New("only accepted quotes can be converted to orders")

	// ErrOrderImmutable indicates the order's items may no longer be modified.
	ErrOrderImmutable = errors.New("order can no longer be modified")

	// ErrAlreadyPaid indicates payment was already confirmed for the order.
	ErrAlreadyPaid = errors.New("order is already paid")

	// ErrOrderCancelled indicates the operation is not allowed on a
	// cancelled order.
	ErrOrderCancelled = errors.New("order is cancelled")
)
