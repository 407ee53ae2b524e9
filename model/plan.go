package model

type Plan string

const (
	PlanMonthly  Plan = "monthly"
	PlanLifetime Plan = "lifetime"
	PlanUnknown  Plan = "unknown"
)

// Checkout amounts in euro cents. Amounts are matched against the
// pre-discount subtotal so that coupon codes and free trials still map to
// the right plan.
const (
	AmountMonthly  = 1499
	AmountLifetime = 3499
)

func PlanFromAmount(cents int64) Plan {
	switch cents {
	case AmountMonthly:
		return PlanMonthly
	case AmountLifetime:
		return PlanLifetime
	default:
		return PlanUnknown
	}
}

func (p Plan) IsValid() bool {
	return p == PlanMonthly || p == PlanLifetime
}
