package engine

import (
	"math"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/model"
)

// metricSet holds the resolved primary and secondary valuation metrics for
// one request. A non-positive metric marks that side "unavailable" to the
// blender.
type metricSet struct {
	primary   float64
	secondary float64
}

// annualizedRecurring resolves annualized recurring revenue: declared ARR
// first, then MRR x 12.
func annualizedRecurring(fin model.FinancialData) float64 {
	if fin.ARR > 0 {
		return fin.ARR
	}
	if fin.MRR > 0 {
		return fin.MRR * 12
	}
	return 0
}

// resolveMetrics picks the primary/secondary metric values per archetype,
// using normalized EBITDA wherever the archetype is earnings-based. The
// switch is exhaustive over the closed archetype set.
func resolveMetrics(a archetype.Archetype, fin model.FinancialData, normEBITDA float64) metricSet {
	arr := annualizedRecurring(fin)

	switch a {
	case archetype.SaaSHyperGrowth:
		primary := arr
		if primary == 0 {
			primary = fin.Revenue
		}
		return metricSet{primary: primary, secondary: fin.Revenue}

	case archetype.SaaSMature:
		return metricSet{primary: normEBITDA, secondary: arr}

	case archetype.SaaSDeclining:
		return metricSet{primary: normEBITDA, secondary: fin.Revenue}

	case archetype.Marketplace:
		primary := fin.GTV
		if primary == 0 {
			primary = arr
		}
		if primary == 0 {
			primary = fin.Revenue
		}
		secondary := arr
		if secondary == 0 {
			secondary = fin.NetRevenue
		}
		if secondary == 0 {
			secondary = fin.Revenue
		}
		return metricSet{primary: primary, secondary: secondary}

	case archetype.Ecommerce:
		secondary := 0.0
		if normEBITDA > 0 {
			secondary = normEBITDA
		}
		return metricSet{primary: fin.Revenue, secondary: secondary}

	case archetype.AssetRental:
		primary := fin.TotalAssets
		if primary == 0 {
			primary = fin.BookEquity
		}
		secondary := 0.6 * fin.Revenue
		if normEBITDA > 0 {
			secondary = normEBITDA
		}
		return metricSet{primary: primary, secondary: secondary}

	case archetype.AssetOperating:
		primary := fin.TotalAssets
		if primary == 0 {
			primary = fin.BookEquity
		}
		secondary := 0.0
		if normEBITDA > 0 {
			secondary = normEBITDA
		}
		return metricSet{primary: primary, secondary: secondary}

	case archetype.StructuralDeficit:
		return metricSet{primary: fin.Revenue, secondary: math.Max(0, fin.BookEquity)}

	case archetype.Micro:
		primary := normEBITDA
		if primary <= 0 {
			primary = math.Max(0, fin.NetIncome)
		}
		return metricSet{primary: primary, secondary: fin.Revenue}

	case archetype.RecurringServices:
		return metricSet{primary: normEBITDA, secondary: fin.Revenue * fin.RecurringPct / 100}

	case archetype.LaborIntensive, archetype.Advisory, archetype.Retail,
		archetype.Wholesale, archetype.Industrial:
		return metricSet{primary: normEBITDA, secondary: fin.Revenue}

	case archetype.PreRevenue:
		// Short-circuited by the calculator before resolution.
		return metricSet{}
	}

	return metricSet{primary: normEBITDA, secondary: normEBITDA}
}
