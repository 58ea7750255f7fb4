package pricingRepo

import (
	"context"
	"time"

	"rentwheels/models"
)

// PricingRuleRepository supplies rule and promotion records for evaluation.
// The engine does not own rule CRUD; the admin dashboard writes these records
// through its own persistence layer.
type PricingRuleRepository interface {
	// ListActiveRules returns rules that are active as of the given instant
	// and scoped to the location/category (or unscoped). Finer-grained
	// condition matching is the rule matcher's job.
	ListActiveRules(ctx context.Context, locationID string, category models.VehicleCategory, asOf time.Time) ([]models.PricingRule, error)
	ListActivePromotions(ctx context.Context, asOf time.Time) ([]models.Promotion, error)
}
