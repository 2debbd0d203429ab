package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/timbua/procurement-api/services"
)

// handleServiceError translates a service error into the API error envelope.
func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		respondError(c, http.StatusNotFound, "NOT_FOUND", err.Error())
	case errors.Is(err, services.ErrValidation):
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, services.ErrNotInvited):
		respondError(c, http.StatusForbidden, "NOT_INVITED", err.Error())
	case errors.Is(err, services.ErrDuplicateQuote):
		respondError(c, http.StatusConflict, "DUPLICATE_QUOTE", err.Error())
	case errors.Is(err, services.ErrRequestNotAcceptingQuotes):
		respondError(c, http.StatusConflict, "REQUEST_NOT_ACCEPTING_QUOTES", err.Error())
	case errors.Is(err, services.ErrAlreadyDecided):
		respondError(c, http.StatusConflict, "ALREADY_DECIDED", err.Error())
	case errors.Is(err, services.ErrQuoteNotAccepted):
		respondError(c, http.StatusConflict, "QUOTE_NOT_ACCEPTED", err.Error())
	case errors.Is(err, services.ErrInvalidTransition):
		respondError(c, http.StatusConflict, "INVALID_TRANSITION", err.Error())
	case errors.Is(err, services.ErrOrderImmutable):
		respondError(c, http.StatusConflict, "ORDER_IMMUTABLE", err.Error())
	case errors.Is(err, services.ErrAlreadyPaid):
		respondError(c, http.StatusConflict, "ALREADY_PAID", err.Error())
	case errors.Is(err, services.ErrOrderCancelled):
		respondError(c, http.StatusConflict, "ORDER_CANCELLED", err.Error())
	default:
		log.Printf("Unexpected service error: %v", err)
		respondError(c, http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred")
	}
}

// respondError writes the standard error envelope.
func respondError(c *gin.Context, status int, code, message string) {
	c.JSON(status, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

// parseIDParam parses a numeric path parameter, responding with a 400 when
// it is not a valid id. The second return value reports success.
func parseIDParam(c *gin.Context, name string) (uint, bool) {
	value, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "INVALID_ID", "Invalid "+name+" parameter")
		return 0, false
	}
	return uint(value), true
}
