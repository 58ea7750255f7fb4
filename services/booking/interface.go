package booking

import (
	"context"
	"time"

	pricingRepo "rentwheels/database/repository/pricing"
	vehicleRepo "rentwheels/database/repository/vehicle"
	"rentwheels/models"
)

// QuoteRequest is a priced-availability request for one vehicle and range.
type QuoteRequest struct {
	VehicleID string
	Start     time.Time
	End       time.Time
	PromoCode string
}

// Engine is the booking engine entry point consumed by the HTTP handlers.
type Engine interface {
	// Quote validates the request, checks availability and resolves the rate.
	// It reserves nothing.
	Quote(ctx context.Context, req QuoteRequest) (*models.Quote, error)
	// Confirm re-validates the quote, atomically reserves the interval and
	// returns the reservation id. Repeats with the same idempotency key
	// return the original reservation id.
	Confirm(ctx context.Context, quoteID, idempotencyKey string) (string, error)
	// Cancel releases a reservation's interval.
	Cancel(ctx context.Context, reservationID string) error
}

// ReminderScheduler schedules pre-pickup reminders for confirmed
// reservations. Delivery is handled elsewhere.
type ReminderScheduler interface {
	SchedulePickupReminder(ctx context.Context, res *models.Reservation) error
}

// DefaultEngine wires the availability checker, rate resolver and interval
// store behind the Engine interface.
type DefaultEngine struct {
	Vehicles  vehicleRepo.VehicleRepository
	Rules     pricingRepo.PricingRuleRepository
	Intervals *IntervalStore
	Resolver  *RateResolver
	Quotes    QuoteStore
	Idem      IdempotencyStore
	QuoteTTL  time.Duration

	// Reminders is optional; nil disables pickup reminders.
	Reminders ReminderScheduler

	// Clock is overridable for tests; defaults to time.Now.
	Clock func() time.Time
}

func (e *DefaultEngine) now() time.Time {
	if e.Clock != nil {
		return e.Clock()
	}
	return time.Now()
}
