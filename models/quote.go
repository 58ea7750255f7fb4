package models

import "time"

// Quote is a computed, time-limited price offer for one vehicle and date
// range. It is immutable once returned; confirmation re-validates it against
// the current rule set before committing a reservation.
type Quote struct {
	ID        string    `json:"id"`
	VehicleID string    `json:"vehicle_id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	Days      int       `json:"days"`

	DailyRate  float64 `json:"daily_rate"` // not independently rounded
	TotalPrice float64 `json:"total_price"`
	Currency   string  `json:"currency"`

	// PromoCode is the code the request carried, kept so confirmation can
	// re-price under identical inputs.
	PromoCode string `json:"promo_code,omitempty"`

	// Applied rule ids in application order, then promotion ids, so the
	// computation is replayable for auditing.
	AppliedRuleIDs      []string `json:"applied_rules"`
	AppliedPromotionIDs []string `json:"applied_promotions"`

	// Warnings carries operator-visible anomalies (skipped malformed rules,
	// price floored at zero). Never fails the quote.
	Warnings []string `json:"warnings,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the quote TTL has elapsed at the given instant.
func (q *Quote) Expired(now time.Time) bool {
	return !now.Before(q.ExpiresAt)
}
