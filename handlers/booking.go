package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"rentwheels/services/booking"
	"rentwheels/utils"
)

// BookingHandler exposes the quote/confirm engine over HTTP.
type BookingHandler struct {
	engine booking.Engine
	logger *zap.Logger
}

func NewBookingHandler(engine booking.Engine, logger *zap.Logger) *BookingHandler {
	return &BookingHandler{engine: engine, logger: logger}
}

// parseInstant accepts RFC3339 timestamps or bare dates (interpreted as
// midnight UTC), matching what the booking pages send.
func parseInstant(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q, expected RFC3339 or yyyy-mm-dd", value)
}

// GetQuote handles GET /api/booking/quote?vehicleId=&from=&to=&promo=.
func (h *BookingHandler) GetQuote(c *gin.Context) {
	vehicleID := c.Query("vehicleId")
	if vehicleID == "" {
		utils.JSONError(c, http.StatusBadRequest, "missing vehicleId", "")
		return
	}
	from, err := parseInstant(c.Query("from"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid from", err.Error())
		return
	}
	to, err := parseInstant(c.Query("to"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid to", err.Error())
		return
	}

	quote, err := h.engine.Quote(c.Request.Context(), booking.QuoteRequest{
		VehicleID: vehicleID,
		Start:     from,
		End:       to,
		PromoCode: c.Query("promo"),
	})
	if err != nil {
		h.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"quoteId":           quote.ID,
		"dailyRate":         quote.DailyRate,
		"totalPrice":        quote.TotalPrice,
		"currency":          quote.Currency,
		"days":              quote.Days,
		"appliedRules":      quote.AppliedRuleIDs,
		"appliedPromotions": quote.AppliedPromotionIDs,
		"warnings":          quote.Warnings,
		"expiresAt":         quote.ExpiresAt,
	})
}

// ConfirmBooking handles POST /api/bookings.
func (h *BookingHandler) ConfirmBooking(c *gin.Context) {
	var input struct {
		QuoteID        string `json:"quoteId" binding:"required"`
		IdempotencyKey string `json:"idempotencyKey"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	reservationID, err := h.engine.Confirm(c.Request.Context(), input.QuoteID, input.IdempotencyKey)
	if err != nil {
		h.writeEngineError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"reservationId": reservationID})
}

// CancelBooking handles POST /api/bookings/:id/cancel.
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	if err := h.engine.Cancel(c.Request.Context(), c.Param("id")); err != nil {
		h.writeEngineError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// writeEngineError maps engine error codes onto the HTTP contract. Conflicts
// and stale quotes are routine outcomes, logged at most as info.
func (h *BookingHandler) writeEngineError(c *gin.Context, err error) {
	var ee *booking.EngineError
	if !errors.As(err, &ee) {
		h.logger.Error("booking engine failure", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
		return
	}

	switch ee.Code {
	case booking.CodeInvalidRange, booking.CodeNoBaseRate:
		c.JSON(http.StatusBadRequest, gin.H{"reason": ee.Message})
	case booking.CodeVehicleNotFound:
		c.JSON(http.StatusNotFound, gin.H{"reason": ee.Message})
	case booking.CodeConflict:
		c.JSON(http.StatusConflict, gin.H{
			"reason":                   "conflict",
			"message":                  ee.Message,
			"conflictingReservationId": ee.ConflictingReservationID,
		})
	case booking.CodeQuoteStale:
		body := gin.H{"reason": "stale", "message": ee.Message}
		if ee.FreshQuote != nil {
			body["freshQuote"] = ee.FreshQuote
		}
		c.JSON(http.StatusConflict, body)
	case booking.CodeQuoteExpired:
		c.JSON(http.StatusGone, gin.H{"reason": "expired", "message": ee.Message})
	default:
		h.logger.Error("unmapped engine error", zap.String("code", ee.Code), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal error", "")
	}
}
