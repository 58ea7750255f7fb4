package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwheels/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func timePtr(t time.Time) *time.Time {
	return &t
}

func testContext() RequestContext {
	return RequestContext{
		Vehicle: models.Vehicle{
			ID:         "veh-1",
			Category:   models.CategorySUV,
			LocationID: "loc-nairobi",
			Currency:   "USD",
		},
		Start:       day(10), // a Wednesday
		End:         day(13),
		Now:         day(1),
		Utilization: 0.5,
		Days:        3,
	}
}

func activeRule(kind models.RuleKind) models.PricingRule {
	return models.PricingRule{
		ID:         "rule-1",
		Kind:       kind,
		Status:     models.RuleStatusActive,
		Adjustment: 10,
	}
}

func TestRuleMatchesVacuousConditions(t *testing.T) {
	// A rule with no conditions at all matches everything.
	ok, err := ruleMatches(activeRule(models.RuleKindSeasonal), testContext())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRuleMatchesRequiresActiveStatus(t *testing.T) {
	rule := activeRule(models.RuleKindSeasonal)
	rule.Status = models.RuleStatusScheduled

	ok, err := ruleMatches(rule, testContext())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRuleMatchesLocationScoping(t *testing.T) {
	rule := activeRule(models.RuleKindLocation)
	rule.LocationID = "loc-mombasa"

	ok, err := ruleMatches(rule, testContext())
	require.NoError(t, err)
	assert.False(t, ok)

	rule.LocationID = "loc-nairobi"
	ok, err = ruleMatches(rule, testContext())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRuleMatchesCategoryScoping(t *testing.T) {
	rule := activeRule(models.RuleKindSeasonal)
	rule.Categories = []models.VehicleCategory{models.CategoryExotic}

	ok, err := ruleMatches(rule, testContext())
	require.NoError(t, err)
	assert.False(t, ok)

	rule.Categories = append(rule.Categories, models.CategorySUV)
	ok, err = ruleMatches(rule, testContext())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRuleMatchesWindowAtStartDate(t *testing.T) {
	rule := activeRule(models.RuleKindSeasonal)
	rule.ValidFrom = timePtr(day(5))
	rule.ValidUntil = timePtr(day(12))

	// Start date inside the window matches even though the rental runs past
	// the window's end.
	ok, err := ruleMatches(rule, testContext())
	require.NoError(t, err)
	assert.True(t, ok)

	rule.ValidUntil = timePtr(day(10)) // half-open, start == until is outside
	ok, err = ruleMatches(rule, testContext())
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRuleMatchesEveryDayPolicy(t *testing.T) {
	rule := activeRule(models.RuleKindSeasonal)
	rule.MatchEveryDay = true
	rule.ValidFrom = timePtr(day(5))
	rule.ValidUntil = timePtr(day(12))

	// Rental covers June 10, 11 and 12; the 12th falls outside the window.
	ok, err := ruleMatches(rule, testContext())
	require.NoError(t, err)
	assert.False(t, ok)

	rule.ValidUntil = timePtr(day(13))
	ok, err = ruleMatches(rule, testContext())
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRuleMatchesWeekdayCondition(t *testing.T) {
	rctx := testContext()
	startDay := rctx.Start.Weekday()

	rule := activeRule(models.RuleKindDemand)
	rule.Conditions.Weekdays = []time.Weekday{startDay}
	ok, err := ruleMatches(rule, rctx)
	require.NoError(t, err)
	assert.True(t, ok)

	rule.Conditions.Weekdays = []time.Weekday{(startDay + 1) % 7}
	ok, err = ruleMatches(rule, rctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRuleMatchesUtilizationBounds(t *testing.T) {
	rctx := testContext() // utilization 0.5

	rule := activeRule(models.RuleKindDemand)
	rule.Conditions.MinUtilization = floatPtr(0.8)
	ok, err := ruleMatches(rule, rctx)
	require.NoError(t, err)
	assert.False(t, ok)

	rule.Conditions.MinUtilization = floatPtr(0.5)
	ok, err = ruleMatches(rule, rctx)
	require.NoError(t, err)
	assert.True(t, ok, "bounds are inclusive")

	rule.Conditions.MinUtilization = nil
	rule.Conditions.MaxUtilization = floatPtr(0.3)
	ok, err = ruleMatches(rule, rctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRuleMatchesAdvanceBooking(t *testing.T) {
	rctx := testContext() // booked 9 days ahead

	rule := activeRule(models.RuleKindDemand)
	rule.Conditions.DaysInAdvance = intPtr(7)
	ok, err := ruleMatches(rule, rctx)
	require.NoError(t, err)
	assert.True(t, ok)

	rule.Conditions.DaysInAdvance = intPtr(14)
	ok, err = ruleMatches(rule, rctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRuleMatchesDurationBounds(t *testing.T) {
	rctx := testContext() // 3 days

	rule := activeRule(models.RuleKindSeasonal)
	rule.Conditions.MinDuration = intPtr(3)
	rule.Conditions.MaxDuration = intPtr(3)
	ok, err := ruleMatches(rule, rctx)
	require.NoError(t, err)
	assert.True(t, ok)

	rule.Conditions.MinDuration = intPtr(4)
	rule.Conditions.MaxDuration = nil
	ok, err = ruleMatches(rule, rctx)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRuleMatchesRejectsMalformedRules(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.PricingRule)
	}{
		{"unknown kind", func(r *models.PricingRule) { r.Kind = "surge" }},
		{"location rule without location", func(r *models.PricingRule) {
			r.Kind = models.RuleKindLocation
			r.LocationID = ""
		}},
		{"base with non-positive amount", func(r *models.PricingRule) {
			r.Kind = models.RuleKindBase
			r.Adjustment = 0
		}},
		{"min utilization above max", func(r *models.PricingRule) {
			r.Conditions.MinUtilization = floatPtr(0.9)
			r.Conditions.MaxUtilization = floatPtr(0.1)
		}},
		{"min duration above max", func(r *models.PricingRule) {
			r.Conditions.MinDuration = intPtr(5)
			r.Conditions.MaxDuration = intPtr(2)
		}},
		{"negative advance window", func(r *models.PricingRule) {
			r.Conditions.DaysInAdvance = intPtr(-1)
		}},
		{"invalid weekday", func(r *models.PricingRule) {
			r.Conditions.Weekdays = []time.Weekday{time.Weekday(9)}
		}},
		{"empty validity window", func(r *models.PricingRule) {
			r.ValidFrom = timePtr(day(12))
			r.ValidUntil = timePtr(day(12))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rule := activeRule(models.RuleKindSeasonal)
			tc.mutate(&rule)
			_, err := ruleMatches(rule, testContext())
			assert.Error(t, err)
		})
	}
}

func activePromo() models.Promotion {
	return models.Promotion{
		ID:              "promo-1",
		Automatic:       true,
		DiscountPercent: 10,
	}
}

func TestPromotionMatchesAutomatic(t *testing.T) {
	assert.True(t, promotionMatches(activePromo(), testContext()))
}

func TestPromotionMatchesCodeGated(t *testing.T) {
	p := activePromo()
	p.Automatic = false
	p.Code = "SUMMER26"

	rctx := testContext()
	assert.False(t, promotionMatches(p, rctx), "code promo without the code must not apply")

	rctx.PromoCode = "SUMMER26"
	assert.True(t, promotionMatches(p, rctx))

	rctx.PromoCode = "WINTER26"
	assert.False(t, promotionMatches(p, rctx))
}

func TestPromotionMatchesWindowAgainstBookingTime(t *testing.T) {
	p := activePromo()
	p.ValidFrom = timePtr(day(5))
	p.ValidUntil = timePtr(day(8))

	// The window is checked against when the booking is made, not the rental
	// dates.
	rctx := testContext() // Now = June 1
	assert.False(t, promotionMatches(p, rctx))

	rctx.Now = day(6)
	assert.True(t, promotionMatches(p, rctx))
}

func TestPromotionMatchesUsageCap(t *testing.T) {
	p := activePromo()
	p.MaxUses = intPtr(100)
	p.UsageCount = 99
	assert.True(t, promotionMatches(p, testContext()))

	p.UsageCount = 100
	assert.False(t, promotionMatches(p, testContext()))
}

func TestPromotionMatchesMinRentalDays(t *testing.T) {
	p := activePromo()
	p.MinRentalDays = intPtr(4)
	assert.False(t, promotionMatches(p, testContext()))

	p.MinRentalDays = intPtr(3)
	assert.True(t, promotionMatches(p, testContext()))
}

func TestPromotionMatchesCategoryAndWeekday(t *testing.T) {
	rctx := testContext()

	p := activePromo()
	p.CarCategories = []models.VehicleCategory{models.CategorySedan}
	assert.False(t, promotionMatches(p, rctx))

	p.CarCategories = []models.VehicleCategory{models.CategorySUV}
	p.ValidDays = []time.Weekday{rctx.Start.Weekday()}
	assert.True(t, promotionMatches(p, rctx))

	p.ValidDays = []time.Weekday{(rctx.Start.Weekday() + 3) % 7}
	assert.False(t, promotionMatches(p, rctx))
}
