package models

import "time"

// Promotion is a discount applied after rate resolution. Non-stackable
// promotions are exclusive; stackable ones combine additively up to the
// configured aggregate ceiling.
type Promotion struct {
	ID              string            `bson:"id" json:"id"`
	Code            string            `bson:"code,omitempty" json:"code,omitempty"` // empty for automatic promotions
	Automatic       bool              `bson:"automatic" json:"automatic"`
	DiscountPercent float64           `bson:"discount_percent" json:"discount_percent"`
	Stackable       bool              `bson:"stackable" json:"stackable"`
	ValidFrom       *time.Time        `bson:"valid_from,omitempty" json:"valid_from,omitempty"`
	ValidUntil      *time.Time        `bson:"valid_until,omitempty" json:"valid_until,omitempty"`
	UsageCount      int               `bson:"usage_count" json:"usage_count"`
	MaxUses         *int              `bson:"max_uses,omitempty" json:"max_uses,omitempty"`
	MinRentalDays   *int              `bson:"min_rental_days,omitempty" json:"min_rental_days,omitempty"`
	ValidDays       []time.Weekday    `bson:"valid_days,omitempty" json:"valid_days,omitempty"`
	CarCategories   []VehicleCategory `bson:"car_categories,omitempty" json:"car_categories,omitempty"`
	CreatedAt       time.Time         `bson:"created_at" json:"created_at"`
}
