// Package strategy computes local plan-based price previews. It performs no
// I/O and holds no state.
package strategy

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoPlan is returned when a computation is requested without a plan.
var ErrNoPlan = errors.New("strategy: no plan selected")

// Plan is one of the known pricing tiers.
type Plan string

// Known plans.
const (
	PlanVIP     Plan = "VIP"
	PlanStarter Plan = "STARTER"
	PlanPro     Plan = "PRO"
)

// multipliers maps each plan to the share of the amount the customer keeps.
var multipliers = map[Plan]decimal.Decimal{
	PlanVIP:     decimal.RequireFromString("0.98"),
	PlanStarter: decimal.RequireFromString("0.90"),
	PlanPro:     decimal.RequireFromString("0.95"),
}

// Plans returns the known plans in a stable order.
func Plans() []Plan {
	return []Plan{PlanVIP, PlanStarter, PlanPro}
}

// ParsePlan normalizes s and reports whether it names a known plan.
func ParsePlan(s string) (Plan, bool) {
	p := Plan(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := multipliers[p]
	return p, ok
}

// Apply returns amount after the plan's discount, rounded to cents. Unknown
// plans leave the amount unchanged.
func Apply(plan Plan, amount decimal.Decimal) (decimal.Decimal, error) {
	if plan == "" {
		return decimal.Decimal{}, ErrNoPlan
	}
	m, ok := multipliers[plan]
	if !ok {
		return amount.Round(2), nil
	}
	return amount.Mul(m).Round(2), nil
}

// Quote is Apply for a raw plan name.
func Quote(plan string, amount decimal.Decimal) (decimal.Decimal, error) {
	p, _ := ParsePlan(plan)
	return Apply(p, amount)
}
