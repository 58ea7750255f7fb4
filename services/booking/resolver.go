package booking

import (
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"rentwheels/models"
	"rentwheels/utils"
)

// RateResolver combines every matching pricing rule and promotion into one
// final daily and total rate. Identical inputs always produce an identical
// quote, including applied-rule order, so quotes are replayable.
type RateResolver struct {
	// MaxAggregateDiscount caps combined stackable promotion discounts,
	// expressed as a fraction (0.50 = 50%).
	MaxAggregateDiscount float64
}

func NewRateResolver(maxAggregateDiscount float64) *RateResolver {
	return &RateResolver{MaxAggregateDiscount: maxAggregateDiscount}
}

// Resolve prices the request. The returned quote has every pricing field
// populated; the orchestrator stamps identity and expiry.
func (rr *RateResolver) Resolve(rctx RequestContext, rules []models.PricingRule, promos []models.Promotion) (*models.Quote, error) {
	logger := utils.GetLogger()

	var warnings []string
	var baseRules, adjustRules []models.PricingRule
	for _, rule := range rules {
		ok, err := ruleMatches(rule, rctx)
		if err != nil {
			// Configuration defect in one rule must not abort the quote.
			logger.Warn("skipping malformed pricing rule",
				zap.String("ruleID", rule.ID), zap.Error(err))
			warnings = append(warnings, fmt.Sprintf("rule %s skipped: %v", rule.ID, err))
			continue
		}
		if !ok {
			continue
		}
		if rule.Kind == models.RuleKindBase {
			baseRules = append(baseRules, rule)
		} else {
			adjustRules = append(adjustRules, rule)
		}
	}

	if len(baseRules) == 0 {
		return nil, NewNoBaseRateError(rctx.Vehicle.ID)
	}

	// Exactly one base rule applies: highest priority wins, ties go to the
	// most recently created so the choice stays deterministic.
	sortRules(baseRules)
	base := baseRules[0]
	rate := base.Adjustment
	appliedRules := []string{base.ID}

	// Remaining adjustments stack multiplicatively in priority order, so the
	// applied order is significant and preserved for auditing.
	sortRules(adjustRules)
	for _, rule := range adjustRules {
		rate *= 1 + rule.Adjustment/100
		appliedRules = append(appliedRules, rule.ID)
	}

	gross := rate * float64(rctx.Days)

	discount, appliedPromos := rr.resolvePromotions(rctx, promos)
	total := gross * (1 - discount/100)

	total = roundHalfUpCents(total)
	if total < 0 {
		// Rule creation should have rejected this; never return a negative
		// charge, flag it for operators instead.
		logger.Warn("resolved price fell below zero, flooring",
			zap.String("vehicleID", rctx.Vehicle.ID), zap.Float64("total", total))
		warnings = append(warnings, "resolved total was negative and floored to zero")
		total = 0
	}

	return &models.Quote{
		VehicleID:           rctx.Vehicle.ID,
		Start:               rctx.Start,
		End:                 rctx.End,
		Days:                rctx.Days,
		DailyRate:           rate,
		TotalPrice:          total,
		Currency:            rctx.Vehicle.Currency,
		PromoCode:           rctx.PromoCode,
		AppliedRuleIDs:      appliedRules,
		AppliedPromotionIDs: appliedPromos,
		Warnings:            warnings,
	}, nil
}

// resolvePromotions returns the aggregate discount percentage and the ids of
// the promotions that produced it. A matching non-stackable promotion is
// exclusive: only the single largest one applies. Otherwise stackable
// discounts combine additively up to the configured ceiling.
func (rr *RateResolver) resolvePromotions(rctx RequestContext, promos []models.Promotion) (float64, []string) {
	var matched []models.Promotion
	for _, p := range promos {
		if promotionMatches(p, rctx) {
			matched = append(matched, p)
		}
	}
	if len(matched) == 0 {
		return 0, nil
	}

	var best *models.Promotion
	for i := range matched {
		p := &matched[i]
		if p.Stackable {
			continue
		}
		if best == nil || p.DiscountPercent > best.DiscountPercent ||
			(p.DiscountPercent == best.DiscountPercent && p.ID < best.ID) {
			best = p
		}
	}
	if best != nil {
		return best.DiscountPercent, []string{best.ID}
	}

	sort.SliceStable(matched, func(i, j int) bool {
		if matched[i].DiscountPercent != matched[j].DiscountPercent {
			return matched[i].DiscountPercent > matched[j].DiscountPercent
		}
		return matched[i].ID < matched[j].ID
	})

	ceiling := rr.MaxAggregateDiscount * 100
	var total float64
	var ids []string
	for _, p := range matched {
		total += p.DiscountPercent
		ids = append(ids, p.ID)
	}
	if total > ceiling {
		total = ceiling
	}
	return total, ids
}

// sortRules orders by priority descending; ties fall to the most recently
// created rule, then lexicographically greater id as a final deterministic
// tiebreak.
func sortRules(rules []models.PricingRule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Priority != rules[j].Priority {
			return rules[i].Priority > rules[j].Priority
		}
		if !rules[i].CreatedAt.Equal(rules[j].CreatedAt) {
			return rules[i].CreatedAt.After(rules[j].CreatedAt)
		}
		return rules[i].ID > rules[j].ID
	})
}

// roundHalfUpCents rounds to the smallest currency unit with half-up
// semantics. Only the final total is rounded; the daily rate is left exact
// to avoid drift across multi-day rentals.
func roundHalfUpCents(x float64) float64 {
	return math.Floor(x*100+0.5) / 100
}
