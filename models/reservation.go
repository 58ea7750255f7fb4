package models

import "time"

type ReservationStatus string

const (
	ReservationStatusHeld      ReservationStatus = "held"
	ReservationStatusConfirmed ReservationStatus = "confirmed"
	ReservationStatusCancelled ReservationStatus = "cancelled"
)

// Reservation occupies a half-open [Start, End) interval on one vehicle.
// For a given vehicle no two held/confirmed reservations may overlap once
// the turnaround buffer is applied.
type Reservation struct {
	ID        string            `bson:"id" json:"id"`
	VehicleID string            `bson:"vehicle_id" json:"vehicle_id"`
	QuoteID   string            `bson:"quote_id,omitempty" json:"quote_id,omitempty"`
	Start     time.Time         `bson:"start" json:"start"`
	End       time.Time         `bson:"end" json:"end"`
	Status    ReservationStatus `bson:"status" json:"status"`
	// Price snapshot from the confirmed quote; later rule changes never
	// reprice an existing reservation.
	DailyRate   float64   `bson:"daily_rate" json:"daily_rate"`
	TotalPrice  float64   `bson:"total_price" json:"total_price"`
	Currency    string    `bson:"currency" json:"currency"`
	CreatedAt   time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at" json:"updated_at"`
	CancelledAt *time.Time `bson:"cancelled_at,omitempty" json:"cancelled_at,omitempty"`
}

// Active reports whether the reservation still occupies its interval.
func (r *Reservation) Active() bool {
	return r.Status == ReservationStatusHeld || r.Status == ReservationStatusConfirmed
}
