// Package engine implements the archetype-specific valuation calculator:
// EBITDA normalization, metric resolution, multiple-based blending, the
// net-debt bridge, the qualitative discount stack, and confidence scoring.
// The engine is a pure function of its inputs; it performs no I/O and holds
// no state beyond the injected multiples table.
package engine

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/multiples"
)

// Micro-enterprise EV cap: with no declared owner pay and revenue under the
// threshold, reported EBITDA absorbs an unpriced owner salary, so the EV is
// capped at one year of revenue. Policy carve-out, preserved literally.
const (
	microCapRevenueCeiling = 150_000
	microCapRevenueMult    = 1.0
)

// Calculator runs valuations against an immutable multiples table.
type Calculator struct {
	table *multiples.Table
}

// NewCalculator returns a Calculator bound to the given table.
func NewCalculator(table *multiples.Table) *Calculator {
	return &Calculator{table: table}
}

// Calculate produces the valuation result for one request. The only error
// condition is an archetype id absent from the reference table; incomplete
// financial data degrades the result (unavailable metrics, lower
// confidence) instead of failing.
func (c *Calculator) Calculate(a archetype.Archetype, fin model.FinancialData, qual *model.QualitativeData) (*model.ValuationResult, error) {
	entry, ok := c.table.Entry(a)
	if !ok {
		return nil, eris.Wrapf(ErrUnknownArchetype, "engine: calculate %q", a)
	}

	// Pre-revenue businesses short-circuit the whole pipeline: no
	// multiples, no adjustments, no discounts, confidence pinned to 0.
	// Only net cash is recognized as equity.
	if a == archetype.PreRevenue {
		nd := netDebt(a, fin)
		eq := math.Max(0, -nd)
		return &model.ValuationResult{
			Archetype:  a,
			Method:     a.Label(),
			EV:         model.Range{},
			NetDebt:    nd,
			Equity:     model.Range{Low: eq, Median: eq, High: eq},
			Confidence: 0,
		}, nil
	}

	normalized, adjustments := Normalize(fin.Revenue, fin.EBITDA, fin.Retraitements)
	metrics := resolveMetrics(a, fin, normalized)
	ev := blendRanges(a, entry, metrics)
	ev = applyMicroCap(a, fin, ev)

	nd := netDebt(a, fin)
	preDiscount := equityBridge(ev, nd)
	equity, discounts := applyDiscounts(qual, preDiscount)
	confidence := confidenceScore(a, fin, metrics, qual, adjustments)

	zap.L().Debug("engine: valuation computed",
		zap.String("archetype", string(a)),
		zap.Float64("normalized_ebitda", normalized),
		zap.Float64("ev_median", ev.Median),
		zap.Float64("net_debt", nd),
		zap.Float64("equity_median", equity.Median),
		zap.Int("adjustments", len(adjustments)),
		zap.Int("discounts", len(discounts)),
		zap.Int("confidence", confidence),
	)

	return &model.ValuationResult{
		Archetype:   a,
		Method:      a.Label(),
		EV:          ev,
		NetDebt:     nd,
		Equity:      equity,
		Adjustments: adjustments,
		Discounts:   discounts,
		Confidence:  confidence,
	}, nil
}

// applyMicroCap caps the micro-enterprise EV range when no owner pay was
// declared and revenue sits under the policy ceiling.
func applyMicroCap(a archetype.Archetype, fin model.FinancialData, ev model.Range) model.Range {
	if a != archetype.Micro {
		return ev
	}
	pay, declared := fin.Retraitements.DeclaredOwnerPay()
	if declared && pay > 0 {
		return ev
	}
	if fin.Revenue >= microCapRevenueCeiling {
		return ev
	}
	cap := fin.Revenue * microCapRevenueMult
	return model.Range{
		Low:    math.Min(ev.Low, cap),
		Median: math.Min(ev.Median, cap),
		High:   math.Min(ev.High, cap),
	}
}
