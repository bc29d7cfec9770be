package domain

import "time"

// Base prices per plan, in whole BRL.
const (
	basePriceEssential    = 120
	basePriceProfessional = 200
	basePricePremium      = 300

	surchargeComplexIllustration = 50
	surchargeAdvancedAnimations  = 30
)

// Required business days until delivery, per plan.
const (
	businessDaysEssential    = 5
	businessDaysProfessional = 7
	businessDaysPremium      = 10
)

// Price computes the order price from plan and details. An unknown plan
// falls back to the Essential base. Only Premium orders accrue the optional
// surcharges, which are independent of each other.
func Price(plan Plan, details Details) int {
	price := basePriceEssential
	switch plan {
	case PlanProfessional:
		price = basePriceProfessional
	case PlanPremium:
		price = basePricePremium
	}
	if plan == PlanPremium {
		if details.Flag(DetailComplexIllustration) {
			price += surchargeComplexIllustration
		}
		if details.Flag(DetailAdvancedAnimations) {
			price += surchargeAdvancedAnimations
		}
	}
	return price
}

// DeliveryBusinessDays returns the business-day count promised for plan.
// Unknown plans fall back to the Premium window, matching the original
// cascade where anything not Essential or Professional got ten days.
func DeliveryBusinessDays(plan Plan) int {
	switch plan {
	case PlanEssential:
		return businessDaysEssential
	case PlanProfessional:
		return businessDaysProfessional
	default:
		return businessDaysPremium
	}
}

// DeliveryDate walks forward from the given date one calendar day at a time,
// counting only weekdays, until the plan's business-day quota is met. The
// result is formatted YYYY-MM-DD and is never a Saturday or Sunday.
func DeliveryDate(plan Plan, from time.Time) string {
	required := DeliveryBusinessDays(plan)
	date := from
	for added := 0; added < required; {
		date = date.AddDate(0, 0, 1)
		if wd := date.Weekday(); wd != time.Saturday && wd != time.Sunday {
			added++
		}
	}
	return date.Format("2006-01-02")
}
