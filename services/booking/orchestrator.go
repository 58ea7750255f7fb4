package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"rentwheels/models"
	"rentwheels/utils"
)

// Quote composes the availability check and rate resolution into a priced,
// time-limited offer. Purely read-based: it may see a slightly stale
// utilization snapshot, which Confirm re-validates.
func (e *DefaultEngine) Quote(ctx context.Context, req QuoteRequest) (*models.Quote, error) {
	now := e.now()
	if err := ValidateRange(req.Start, req.End, now); err != nil {
		return nil, err
	}

	vehicle, err := e.Vehicles.GetByID(ctx, req.VehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle == nil {
		return nil, NewVehicleNotFoundError(req.VehicleID)
	}

	if conflictID, ok := e.Intervals.Overlaps(req.VehicleID, req.Start, req.End); ok {
		return nil, NewConflictError(conflictID)
	}

	quote, err := e.price(ctx, vehicle, req, now)
	if err != nil {
		return nil, err
	}

	quote.ID = uuid.New().String()
	quote.CreatedAt = now
	quote.ExpiresAt = now.Add(e.QuoteTTL)
	if err := e.Quotes.Save(ctx, quote, e.QuoteTTL); err != nil {
		return nil, fmt.Errorf("failed to store quote: %w", err)
	}
	return quote, nil
}

// price snapshots the rule set, promotions and utilization and runs the rate
// resolver. Shared by Quote and by Confirm's staleness re-check.
func (e *DefaultEngine) price(ctx context.Context, vehicle *models.Vehicle, req QuoteRequest, now time.Time) (*models.Quote, error) {
	rules, err := e.Rules.ListActiveRules(ctx, vehicle.LocationID, vehicle.Category, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load pricing rules: %w", err)
	}
	promos, err := e.Rules.ListActivePromotions(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("failed to load promotions: %w", err)
	}

	rctx := RequestContext{
		Vehicle:     *vehicle,
		Start:       req.Start,
		End:         req.End,
		Now:         now,
		Utilization: vehicle.Utilization,
		Days:        durationDays(req.Start, req.End),
		PromoCode:   req.PromoCode,
	}
	return e.Resolver.Resolve(rctx, rules, promos)
}

// Confirm drives a booking attempt through Quoted -> Confirming ->
// {Reserved | Conflict | Stale}. Conflict and Stale are terminal for the
// attempt; the caller re-quotes and retries if it wants to.
func (e *DefaultEngine) Confirm(ctx context.Context, quoteID, idempotencyKey string) (string, error) {
	logger := utils.GetLogger()
	now := e.now()

	// A retried confirmation returns the original reservation, before any
	// quote expiry check: the first attempt already consumed the quote.
	if idempotencyKey != "" {
		if resID, ok, err := e.Idem.Get(ctx, idempotencyKey); err != nil {
			return "", err
		} else if ok {
			return resID, nil
		}
	}

	quote, err := e.Quotes.Get(ctx, quoteID)
	if err != nil {
		return "", err
	}
	if quote.Expired(now) {
		return "", NewQuoteExpiredError(quoteID)
	}

	if conflictID, ok := e.Intervals.Overlaps(quote.VehicleID, quote.Start, quote.End); ok {
		return "", NewConflictError(conflictID)
	}

	// Rules or promotions may have changed between quote and confirm. Never
	// silently charge a different price: hand back a fresh quote instead.
	vehicle, err := e.Vehicles.GetByID(ctx, quote.VehicleID)
	if err != nil {
		return "", err
	}
	if vehicle == nil {
		return "", NewVehicleNotFoundError(quote.VehicleID)
	}
	fresh, err := e.price(ctx, vehicle, QuoteRequest{
		VehicleID: quote.VehicleID,
		Start:     quote.Start,
		End:       quote.End,
		PromoCode: quote.PromoCode,
	}, now)
	if err != nil {
		return "", err
	}
	if quoteStale(quote, fresh) {
		fresh.ID = uuid.New().String()
		fresh.CreatedAt = now
		fresh.ExpiresAt = now.Add(e.QuoteTTL)
		if err := e.Quotes.Save(ctx, fresh, e.QuoteTTL); err != nil {
			logger.Error("failed to store replacement quote", zap.Error(err))
		}
		return "", NewQuoteStaleError(fresh)
	}

	res := &models.Reservation{
		VehicleID:  quote.VehicleID,
		QuoteID:    quote.ID,
		Start:      quote.Start,
		End:        quote.End,
		DailyRate:  quote.DailyRate,
		TotalPrice: quote.TotalPrice,
		Currency:   quote.Currency,
	}
	// Reserve re-checks overlap under the vehicle lock; of two concurrent
	// confirms for overlapping ranges exactly one lands here successfully.
	if err := e.Intervals.Reserve(ctx, res); err != nil {
		return "", err
	}
	if err := e.Intervals.Confirm(ctx, res.ID); err != nil {
		// Roll the hold back rather than strand the interval.
		if relErr := e.Intervals.Release(ctx, res.ID); relErr != nil {
			logger.Error("failed to release hold after confirm failure",
				zap.String("reservationID", res.ID), zap.Error(relErr))
		}
		return "", err
	}

	if idempotencyKey != "" {
		if err := e.Idem.Put(ctx, idempotencyKey, res.ID); err != nil {
			logger.Error("failed to record idempotency key",
				zap.String("reservationID", res.ID), zap.Error(err))
		}
	}
	if err := e.Quotes.Delete(ctx, quoteID); err != nil {
		logger.Warn("failed to drop consumed quote", zap.String("quoteID", quoteID), zap.Error(err))
	}

	if e.Reminders != nil {
		if err := e.Reminders.SchedulePickupReminder(ctx, res); err != nil {
			logger.Warn("failed to schedule pickup reminder",
				zap.String("reservationID", res.ID), zap.Error(err))
		}
	}

	logger.Info("reservation confirmed",
		zap.String("reservationID", res.ID),
		zap.String("vehicleID", res.VehicleID),
		zap.Float64("total", res.TotalPrice))
	return res.ID, nil
}

// Cancel releases the reservation's interval so the range can be rebooked.
func (e *DefaultEngine) Cancel(ctx context.Context, reservationID string) error {
	return e.Intervals.Release(ctx, reservationID)
}

// quoteStale compares the original quote with a recomputation under the
// current rule set. Any difference in price or in the applied rule/promotion
// sequence makes the original unservable.
func quoteStale(orig, fresh *models.Quote) bool {
	if orig.DailyRate != fresh.DailyRate || orig.TotalPrice != fresh.TotalPrice {
		return true
	}
	if !equalIDs(orig.AppliedRuleIDs, fresh.AppliedRuleIDs) {
		return true
	}
	return !equalIDs(orig.AppliedPromotionIDs, fresh.AppliedPromotionIDs)
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
