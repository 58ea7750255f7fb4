package models

import "time"

// RuleKind discriminates pricing rule variants. The matcher and resolver
// switch exhaustively over these, so new kinds must be handled in both.
type RuleKind string

const (
	RuleKindBase     RuleKind = "base"
	RuleKindSeasonal RuleKind = "seasonal"
	RuleKindLocation RuleKind = "location"
	RuleKindDemand   RuleKind = "demand"
)

type RuleStatus string

const (
	RuleStatusActive    RuleStatus = "active"
	RuleStatusScheduled RuleStatus = "scheduled"
	RuleStatusExpired   RuleStatus = "expired"
)

// RuleConditions is the closed set of optional predicates a rule may carry.
// Absent (nil) conditions are vacuously true; present ones must all hold.
type RuleConditions struct {
	MinUtilization *float64       `bson:"min_utilization,omitempty" json:"min_utilization,omitempty"`
	MaxUtilization *float64       `bson:"max_utilization,omitempty" json:"max_utilization,omitempty"`
	DaysInAdvance  *int           `bson:"days_in_advance,omitempty" json:"days_in_advance,omitempty"`
	MinDuration    *int           `bson:"min_duration,omitempty" json:"min_duration,omitempty"` // rental length in days
	MaxDuration    *int           `bson:"max_duration,omitempty" json:"max_duration,omitempty"`
	Weekdays       []time.Weekday `bson:"weekdays,omitempty" json:"weekdays,omitempty"`
}

// PricingRule adjusts the rate for bookings it matches. Base rules carry an
// absolute daily amount; all other kinds carry a signed percentage (e.g. 15
// means +15%, -10 means -10%).
type PricingRule struct {
	ID         string     `bson:"id" json:"id"`
	Name       string     `bson:"name" json:"name"`
	Kind       RuleKind   `bson:"kind" json:"kind"`
	Status     RuleStatus `bson:"status" json:"status"`
	Priority   int        `bson:"priority" json:"priority"` // higher wins ties
	Adjustment float64    `bson:"adjustment" json:"adjustment"`

	// Optional validity window, half-open [ValidFrom, ValidUntil).
	ValidFrom  *time.Time `bson:"valid_from,omitempty" json:"valid_from,omitempty"`
	ValidUntil *time.Time `bson:"valid_until,omitempty" json:"valid_until,omitempty"`

	LocationID string            `bson:"location_id,omitempty" json:"location_id,omitempty"`
	Categories []VehicleCategory `bson:"categories,omitempty" json:"categories,omitempty"`
	Conditions RuleConditions    `bson:"conditions" json:"conditions"`

	// MatchEveryDay scopes window/weekday checks to every calendar day of the
	// rental instead of just the start date.
	MatchEveryDay bool `bson:"match_every_day" json:"match_every_day"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
}
