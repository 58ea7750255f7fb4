package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rentwheels/models"
)

func baseRule(id string, dailyAmount float64, priority int) models.PricingRule {
	return models.PricingRule{
		ID:         id,
		Kind:       models.RuleKindBase,
		Status:     models.RuleStatusActive,
		Priority:   priority,
		Adjustment: dailyAmount,
		CreatedAt:  day(1),
	}
}

func adjustRule(id string, kind models.RuleKind, percent float64, priority int) models.PricingRule {
	return models.PricingRule{
		ID:         id,
		Kind:       kind,
		Status:     models.RuleStatusActive,
		Priority:   priority,
		Adjustment: percent,
		CreatedAt:  day(1),
	}
}

func TestResolveSeasonalAndDemandStacking(t *testing.T) {
	// $200/day base, +15% seasonal at priority 5, -10% demand at priority 10,
	// three rental days. The higher-priority demand discount applies first,
	// then the seasonal surcharge: 200 * 0.90 * 1.15 = 207/day, 621 total.
	rr := NewRateResolver(0.5)
	rules := []models.PricingRule{
		baseRule("base-std", 200, 0),
		adjustRule("seasonal-summer", models.RuleKindSeasonal, 15, 5),
		adjustRule("demand-low", models.RuleKindDemand, -10, 10),
	}

	quote, err := rr.Resolve(testContext(), rules, nil)
	require.NoError(t, err)
	assert.InDelta(t, 207.0, quote.DailyRate, 1e-9)
	assert.Equal(t, 621.0, quote.TotalPrice)
	assert.Equal(t, []string{"base-std", "demand-low", "seasonal-summer"}, quote.AppliedRuleIDs)
	assert.Empty(t, quote.AppliedPromotionIDs)
	assert.Empty(t, quote.Warnings)
}

func TestResolvePriorityOrderPreserved(t *testing.T) {
	rr := NewRateResolver(0.5)
	rules := []models.PricingRule{
		baseRule("base-std", 100, 0),
		adjustRule("minus-five", models.RuleKindSeasonal, -5, 5),
		adjustRule("plus-ten", models.RuleKindDemand, 10, 10),
	}

	quote, err := rr.Resolve(testContext(), rules, nil)
	require.NoError(t, err)
	// 100 * 1.10 * 0.95
	assert.InDelta(t, 104.5, quote.DailyRate, 1e-9)
	assert.Equal(t, []string{"base-std", "plus-ten", "minus-five"}, quote.AppliedRuleIDs)
}

func TestResolveSingleBaseRuleWins(t *testing.T) {
	rr := NewRateResolver(0.5)
	rules := []models.PricingRule{
		baseRule("base-low", 80, 1),
		baseRule("base-high", 120, 9),
	}

	quote, err := rr.Resolve(testContext(), rules, nil)
	require.NoError(t, err)
	assert.Equal(t, 120.0, quote.DailyRate, "highest-priority base rule must win")
	assert.Equal(t, []string{"base-high"}, quote.AppliedRuleIDs)
}

func TestResolveBaseTieBreaksOnCreation(t *testing.T) {
	rr := NewRateResolver(0.5)
	older := baseRule("base-older", 100, 5)
	older.CreatedAt = day(1)
	newer := baseRule("base-newer", 110, 5)
	newer.CreatedAt = day(2)

	quote, err := rr.Resolve(testContext(), []models.PricingRule{older, newer}, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"base-newer"}, quote.AppliedRuleIDs)
}

func TestResolveNoBaseRate(t *testing.T) {
	rr := NewRateResolver(0.5)
	rules := []models.PricingRule{
		adjustRule("seasonal", models.RuleKindSeasonal, 15, 5),
	}

	_, err := rr.Resolve(testContext(), rules, nil)
	require.Error(t, err)
	assert.True(t, IsCode(err, CodeNoBaseRate))
}

func TestResolveSkipsMalformedRuleWithWarning(t *testing.T) {
	rr := NewRateResolver(0.5)
	broken := adjustRule("broken", "surge", 50, 99)
	rules := []models.PricingRule{baseRule("base-std", 100, 0), broken}

	quote, err := rr.Resolve(testContext(), rules, nil)
	require.NoError(t, err, "one malformed rule must not abort the quote")
	assert.Equal(t, 100.0, quote.DailyRate)
	assert.Equal(t, []string{"base-std"}, quote.AppliedRuleIDs)
	require.Len(t, quote.Warnings, 1)
	assert.Contains(t, quote.Warnings[0], "broken")
}

func TestResolveNonStackablePromotionIsExclusive(t *testing.T) {
	rr := NewRateResolver(0.5)
	rules := []models.PricingRule{baseRule("base-std", 100, 0)}
	promos := []models.Promotion{
		{ID: "p-big", Automatic: true, DiscountPercent: 25},
		{ID: "p-small", Automatic: true, DiscountPercent: 15},
		{ID: "p-stack", Automatic: true, DiscountPercent: 30, Stackable: true},
	}

	quote, err := rr.Resolve(testContext(), rules, promos)
	require.NoError(t, err)
	// 100 * 3 days * (1 - 0.25); the stackable 30% is shut out entirely.
	assert.Equal(t, 225.0, quote.TotalPrice)
	assert.Equal(t, []string{"p-big"}, quote.AppliedPromotionIDs)
}

func TestResolveStackablePromotionsCapped(t *testing.T) {
	rr := NewRateResolver(0.5)
	rules := []models.PricingRule{baseRule("base-std", 100, 0)}
	promos := []models.Promotion{
		{ID: "p-a", Automatic: true, DiscountPercent: 20, Stackable: true},
		{ID: "p-b", Automatic: true, DiscountPercent: 20, Stackable: true},
		{ID: "p-c", Automatic: true, DiscountPercent: 20, Stackable: true},
	}

	quote, err := rr.Resolve(testContext(), rules, promos)
	require.NoError(t, err)
	// 60% combined, capped at the 50% aggregate ceiling: 300 * 0.5.
	assert.Equal(t, 150.0, quote.TotalPrice)
	assert.Len(t, quote.AppliedPromotionIDs, 3)
}

func TestResolveStackableUnderCap(t *testing.T) {
	rr := NewRateResolver(0.5)
	rules := []models.PricingRule{baseRule("base-std", 100, 0)}
	promos := []models.Promotion{
		{ID: "p-a", Automatic: true, DiscountPercent: 10, Stackable: true},
		{ID: "p-b", Automatic: true, DiscountPercent: 20, Stackable: true},
	}

	quote, err := rr.Resolve(testContext(), rules, promos)
	require.NoError(t, err)
	assert.Equal(t, 210.0, quote.TotalPrice)
	// Larger discount listed first.
	assert.Equal(t, []string{"p-b", "p-a"}, quote.AppliedPromotionIDs)
}

func TestResolveFloorsNegativeTotal(t *testing.T) {
	rr := NewRateResolver(0.5)
	rules := []models.PricingRule{baseRule("base-std", 100, 0)}
	promos := []models.Promotion{
		{ID: "p-over", Automatic: true, DiscountPercent: 150},
	}

	quote, err := rr.Resolve(testContext(), rules, promos)
	require.NoError(t, err)
	assert.Equal(t, 0.0, quote.TotalPrice)
	require.NotEmpty(t, quote.Warnings)
	assert.Contains(t, quote.Warnings[0], "floored")
}

func TestResolveDeterministicAcrossInputOrder(t *testing.T) {
	rr := NewRateResolver(0.5)
	rules := []models.PricingRule{
		baseRule("base-std", 200, 0),
		adjustRule("seasonal", models.RuleKindSeasonal, 15, 5),
		adjustRule("demand", models.RuleKindDemand, -10, 10),
		adjustRule("weekend", models.RuleKindSeasonal, 5, 5),
	}
	promos := []models.Promotion{
		{ID: "p-a", Automatic: true, DiscountPercent: 10, Stackable: true},
		{ID: "p-b", Automatic: true, DiscountPercent: 10, Stackable: true},
	}

	first, err := rr.Resolve(testContext(), rules, promos)
	require.NoError(t, err)

	// Reverse the input slices; the resolved quote must be identical.
	reversedRules := make([]models.PricingRule, len(rules))
	for i, r := range rules {
		reversedRules[len(rules)-1-i] = r
	}
	reversedPromos := []models.Promotion{promos[1], promos[0]}

	second, err := rr.Resolve(testContext(), reversedRules, reversedPromos)
	require.NoError(t, err)

	assert.Equal(t, first.DailyRate, second.DailyRate)
	assert.Equal(t, first.TotalPrice, second.TotalPrice)
	assert.Equal(t, first.AppliedRuleIDs, second.AppliedRuleIDs)
	assert.Equal(t, first.AppliedPromotionIDs, second.AppliedPromotionIDs)
}

func TestResolveOnlyTotalIsRounded(t *testing.T) {
	rr := NewRateResolver(0.5)
	rules := []models.PricingRule{
		baseRule("base-std", 99.99, 0),
		adjustRule("seasonal", models.RuleKindSeasonal, 7, 5),
	}

	quote, err := rr.Resolve(testContext(), rules, nil)
	require.NoError(t, err)
	// Daily rate stays exact; only the final total is rounded to cents.
	assert.InDelta(t, 106.9893, quote.DailyRate, 1e-9)
	assert.Equal(t, 320.97, quote.TotalPrice)
}

func TestRoundHalfUpCents(t *testing.T) {
	assert.Equal(t, 1.0, roundHalfUpCents(1.004))
	assert.Equal(t, 1.01, roundHalfUpCents(1.006))
	// Exact halves round up, not to even.
	assert.Equal(t, 0.13, roundHalfUpCents(0.125))
	assert.Equal(t, 0.38, roundHalfUpCents(0.375))
	assert.Equal(t, -0.12, roundHalfUpCents(-0.125))
}

func TestSortRulesFullTieBreakChain(t *testing.T) {
	rules := []models.PricingRule{
		{ID: "a", Priority: 1, CreatedAt: day(1)},
		{ID: "b", Priority: 1, CreatedAt: day(1)},
		{ID: "c", Priority: 1, CreatedAt: day(2)},
		{ID: "d", Priority: 3, CreatedAt: day(1)},
	}
	sortRules(rules)

	got := make([]string, len(rules))
	for i, r := range rules {
		got[i] = r.ID
	}
	assert.Equal(t, []string{"d", "c", "b", "a"}, got)
}

func TestResolveDurationPinnedFromContext(t *testing.T) {
	rr := NewRateResolver(0.5)
	rctx := testContext()
	rctx.Days = 5
	rctx.End = rctx.Start.AddDate(0, 0, 5)

	quote, err := rr.Resolve(rctx, []models.PricingRule{baseRule("base-std", 50, 0)}, nil)
	require.NoError(t, err)
	assert.Equal(t, 250.0, quote.TotalPrice)
	assert.Equal(t, 5, quote.Days)
}
