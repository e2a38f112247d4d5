package engine

import (
	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/multiples"
)

// sideRange applies one side's multiple bounds to its metric. The side is
// unavailable when the metric is non-positive or the bounds are the
// all-zero sentinel.
func sideRange(metric float64, b multiples.Bounds) (model.Range, bool) {
	if metric <= 0 || b.IsZero() {
		return model.Range{}, false
	}
	return model.Range{
		Low:    metric * b.Low,
		Median: metric * b.Median,
		High:   metric * b.High,
	}, true
}

// blendRanges produces the enterprise-value range. Blending is bound-wise
// over the two side ranges, never over the metrics themselves. When only
// one side is available the EV range is that side verbatim; when neither
// is, the EV range is zero.
func blendRanges(a archetype.Archetype, entry multiples.Entry, m metricSet) model.Range {
	primary, primaryOK := sideRange(m.primary, entry.Primary)
	secondary, secondaryOK := sideRange(m.secondary, entry.Secondary)

	wp, ws := a.Weights()
	// E-commerce policy carve-out: without a usable EBITDA side the
	// valuation collapses to a pure revenue multiple instead of halving.
	if a == archetype.Ecommerce && !secondaryOK {
		wp, ws = 100, 0
	}

	switch {
	case primaryOK && secondaryOK:
		blend := func(p, s float64) float64 {
			return (p*float64(wp) + s*float64(ws)) / float64(wp+ws)
		}
		return model.Range{
			Low:    blend(primary.Low, secondary.Low),
			Median: blend(primary.Median, secondary.Median),
			High:   blend(primary.High, secondary.High),
		}
	case primaryOK:
		return primary
	case secondaryOK:
		return secondary
	default:
		return model.Range{}
	}
}
