package booking

import (
	"fmt"
	"time"

	"rentwheels/models"
)

// RequestContext is the immutable input a rule or promotion is evaluated
// against. Utilization is snapshotted at quote time and never re-read
// mid-computation, so concurrent quotes cannot race on fleet state.
type RequestContext struct {
	Vehicle     models.Vehicle
	Start       time.Time
	End         time.Time
	Now         time.Time
	Utilization float64
	Days        int
	PromoCode   string
}

// ruleMatches evaluates every present condition of the rule against the
// context; absent conditions are vacuously true. Pure and deterministic.
// A malformed rule returns an error so the resolver can skip it without
// aborting the quote.
func ruleMatches(rule models.PricingRule, rctx RequestContext) (bool, error) {
	if err := validateRule(rule); err != nil {
		return false, err
	}

	if rule.Status != models.RuleStatusActive {
		return false, nil
	}
	if rule.LocationID != "" && rule.LocationID != rctx.Vehicle.LocationID {
		return false, nil
	}
	if len(rule.Categories) > 0 && !containsCategory(rule.Categories, rctx.Vehicle.Category) {
		return false, nil
	}

	// Window and weekday conditions are checked at the start date unless the
	// rule opts into every-day matching.
	if rule.MatchEveryDay {
		for i := 0; i < rctx.Days; i++ {
			day := rctx.Start.AddDate(0, 0, i)
			if !inWindow(rule.ValidFrom, rule.ValidUntil, day) {
				return false, nil
			}
			if len(rule.Conditions.Weekdays) > 0 && !containsWeekday(rule.Conditions.Weekdays, day.Weekday()) {
				return false, nil
			}
		}
	} else {
		if !inWindow(rule.ValidFrom, rule.ValidUntil, rctx.Start) {
			return false, nil
		}
		if len(rule.Conditions.Weekdays) > 0 && !containsWeekday(rule.Conditions.Weekdays, rctx.Start.Weekday()) {
			return false, nil
		}
	}

	cond := rule.Conditions
	if cond.MinUtilization != nil && rctx.Utilization < *cond.MinUtilization {
		return false, nil
	}
	if cond.MaxUtilization != nil && rctx.Utilization > *cond.MaxUtilization {
		return false, nil
	}
	if cond.DaysInAdvance != nil {
		lead := rctx.Start.Sub(rctx.Now)
		if lead < time.Duration(*cond.DaysInAdvance)*24*time.Hour {
			return false, nil
		}
	}
	if cond.MinDuration != nil && rctx.Days < *cond.MinDuration {
		return false, nil
	}
	if cond.MaxDuration != nil && rctx.Days > *cond.MaxDuration {
		return false, nil
	}

	return true, nil
}

// validateRule rejects condition data that cannot be evaluated coherently.
// Such rules are configuration defects: logged, skipped, surfaced as a
// warning, never fatal to the quote.
func validateRule(rule models.PricingRule) error {
	switch rule.Kind {
	case models.RuleKindBase, models.RuleKindSeasonal, models.RuleKindDemand:
	case models.RuleKindLocation:
		if rule.LocationID == "" {
			return fmt.Errorf("location rule %s has no location id", rule.ID)
		}
	default:
		return fmt.Errorf("rule %s has unknown kind %q", rule.ID, rule.Kind)
	}

	if rule.Kind == models.RuleKindBase && rule.Adjustment <= 0 {
		return fmt.Errorf("base rule %s has non-positive daily amount %.2f", rule.ID, rule.Adjustment)
	}

	cond := rule.Conditions
	if cond.MinUtilization != nil && cond.MaxUtilization != nil && *cond.MinUtilization > *cond.MaxUtilization {
		return fmt.Errorf("rule %s has min utilization above max", rule.ID)
	}
	if cond.MinDuration != nil && cond.MaxDuration != nil && *cond.MinDuration > *cond.MaxDuration {
		return fmt.Errorf("rule %s has min duration above max", rule.ID)
	}
	if cond.DaysInAdvance != nil && *cond.DaysInAdvance < 0 {
		return fmt.Errorf("rule %s has negative advance window", rule.ID)
	}
	for _, wd := range cond.Weekdays {
		if wd < time.Sunday || wd > time.Saturday {
			return fmt.Errorf("rule %s has invalid weekday %d", rule.ID, wd)
		}
	}
	if rule.ValidFrom != nil && rule.ValidUntil != nil && !rule.ValidFrom.Before(*rule.ValidUntil) {
		return fmt.Errorf("rule %s has an empty validity window", rule.ID)
	}
	return nil
}

// promotionMatches checks a promotion against the context. Code-based
// promotions only match when the request carries their code.
func promotionMatches(p models.Promotion, rctx RequestContext) bool {
	if !p.Automatic && (p.Code == "" || p.Code != rctx.PromoCode) {
		return false
	}
	if p.DiscountPercent <= 0 {
		return false
	}
	if !inWindow(p.ValidFrom, p.ValidUntil, rctx.Now) {
		return false
	}
	if p.MaxUses != nil && p.UsageCount >= *p.MaxUses {
		return false
	}
	if p.MinRentalDays != nil && rctx.Days < *p.MinRentalDays {
		return false
	}
	if len(p.ValidDays) > 0 && !containsWeekday(p.ValidDays, rctx.Start.Weekday()) {
		return false
	}
	if len(p.CarCategories) > 0 && !containsCategory(p.CarCategories, rctx.Vehicle.Category) {
		return false
	}
	return true
}

// inWindow checks membership in the half-open [from, until) window; nil
// bounds are open.
func inWindow(from, until *time.Time, t time.Time) bool {
	if from != nil && t.Before(*from) {
		return false
	}
	if until != nil && !t.Before(*until) {
		return false
	}
	return true
}

func containsCategory(set []models.VehicleCategory, c models.VehicleCategory) bool {
	for _, v := range set {
		if v == c {
			return true
		}
	}
	return false
}

func containsWeekday(set []time.Weekday, d time.Weekday) bool {
	for _, v := range set {
		if v == d {
			return true
		}
	}
	return false
}
