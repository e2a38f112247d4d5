package engine

import (
	"fmt"
	"math"

	"github.com/sells-group/valuation-cli/internal/model"
)

// Discount percentages. Policy constants, not derived quantities.
const (
	illiquidityPct     = 15.0
	minorityStakePct   = 20.0
	keyPersonMediumPct = 10.0
	keyPersonHighPct   = 20.0
	litigationPct      = 10.0

	// Client-concentration discount ramps up past the threshold share and
	// is capped on its own before entering the product.
	concentrationThresholdPct = 30.0
	concentrationSlope        = 0.5
	concentrationCapPct       = 15.0

	// Aggregate ceiling: the naive multiplicative factor is clamped so the
	// combined discount never exceeds 45%.
	minDiscountFactor = 0.55
)

// applyDiscounts stacks the qualitative discounts on the pre-discount
// equity range. A nil QualitativeData applies no discounts at all. The
// discounts compose multiplicatively and the aggregate is clamped after
// computing the naive product, not per discount.
func applyDiscounts(q *model.QualitativeData, equity model.Range) (model.Range, []model.Discount) {
	if q == nil {
		return equity, nil
	}

	discounts := []model.Discount{{
		Name:       "Illiquidity",
		Percentage: illiquidityPct,
		Reason:     "Private, non-traded shares",
	}}

	if q.MinorityStake {
		discounts = append(discounts, model.Discount{
			Name:       "Minority stake",
			Percentage: minorityStakePct,
			Reason:     "Non-controlling interest without governance leverage",
		})
	}

	switch q.KeyPersonDependency {
	case model.KeyPersonMedium:
		discounts = append(discounts, model.Discount{
			Name:       "Key-person dependency",
			Percentage: keyPersonMediumPct,
			Reason:     "Business partially dependent on one individual",
		})
	case model.KeyPersonHigh:
		discounts = append(discounts, model.Discount{
			Name:       "Key-person dependency",
			Percentage: keyPersonHighPct,
			Reason:     "Business critically dependent on one individual",
		})
	}

	if q.TopClientSharePct > concentrationThresholdPct {
		pct := math.Min(
			(q.TopClientSharePct-concentrationThresholdPct)*concentrationSlope,
			concentrationCapPct,
		)
		discounts = append(discounts, model.Discount{
			Name:       "Client concentration",
			Percentage: pct,
			Reason: fmt.Sprintf("Top client represents %.0f%% of revenue",
				q.TopClientSharePct),
		})
	}

	if q.HasLitigation {
		discounts = append(discounts, model.Discount{
			Name:       "Litigation",
			Percentage: litigationPct,
			Reason:     "Ongoing or threatened litigation",
		})
	}

	factor := 1.0
	for _, d := range discounts {
		factor *= 1 - d.Percentage/100
	}
	if factor < minDiscountFactor {
		factor = minDiscountFactor
	}

	return equity.Scale(factor), discounts
}
