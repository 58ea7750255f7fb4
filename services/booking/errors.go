package booking

import (
	"errors"
	"fmt"

	"rentwheels/models"
)

// Error codes returned by the booking engine. Conflicts and stale quotes are
// expected outcomes, returned as values and cheap to produce.
const (
	CodeInvalidRange    = "invalidRange"
	CodeNoBaseRate      = "noApplicableBaseRate"
	CodeConflict        = "conflict"
	CodeQuoteExpired    = "quoteExpired"
	CodeQuoteStale      = "quoteStale"
	CodeRuleEvaluation  = "ruleEvaluationError"
	CodeVehicleNotFound = "vehicleNotFound"
)

// EngineError is the structured failure type for quote and confirm attempts.
type EngineError struct {
	Code    string
	Message string

	// ConflictingReservationID is set for conflict errors.
	ConflictingReservationID string

	// FreshQuote carries a recomputed quote on staleness, so callers can
	// present the new price instead of silently charging a different one.
	FreshQuote *models.Quote
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewInvalidRangeError(msg string) error {
	return &EngineError{Code: CodeInvalidRange, Message: msg}
}

func NewNoBaseRateError(vehicleID string) error {
	return &EngineError{Code: CodeNoBaseRate, Message: fmt.Sprintf("no active base rate matches vehicle %s", vehicleID)}
}

func NewConflictError(reservationID string) error {
	return &EngineError{
		Code:                     CodeConflict,
		Message:                  "vehicle is no longer available for these dates",
		ConflictingReservationID: reservationID,
	}
}

func NewQuoteExpiredError(quoteID string) error {
	return &EngineError{Code: CodeQuoteExpired, Message: fmt.Sprintf("quote %s has expired", quoteID)}
}

func NewQuoteStaleError(fresh *models.Quote) error {
	return &EngineError{
		Code:       CodeQuoteStale,
		Message:    "price changed since this quote was issued, please review",
		FreshQuote: fresh,
	}
}

func NewVehicleNotFoundError(vehicleID string) error {
	return &EngineError{Code: CodeVehicleNotFound, Message: fmt.Sprintf("vehicle %s not found", vehicleID)}
}

// ErrorCode extracts the engine error code, or "" for foreign errors.
func ErrorCode(err error) string {
	var ee *EngineError
	if errors.As(err, &ee) {
		return ee.Code
	}
	return ""
}

// IsCode reports whether err is an EngineError with the given code.
func IsCode(err error, code string) bool {
	return ErrorCode(err) == code
}
