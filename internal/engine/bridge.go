package engine

import (
	"math"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/model"
)

// netDebt computes financial debt plus the remaining finance-lease balance
// minus cash. The two asset-heavy archetypes already carry cash inside
// their asset-based primary metric, so cash is not subtracted a second
// time for them.
func netDebt(a archetype.Archetype, fin model.FinancialData) float64 {
	nd := fin.Debt + fin.Retraitements.LeaseBalance()
	if !a.AssetHeavy() {
		nd -= fin.Cash
	}
	return nd
}

// equityBridge converts an enterprise-value range to the pre-discount
// equity range. Equity is floored at zero per bound; it is never reported
// negative.
func equityBridge(ev model.Range, netDebt float64) model.Range {
	return model.Range{
		Low:    math.Max(0, ev.Low-netDebt),
		Median: math.Max(0, ev.Median-netDebt),
		High:   math.Max(0, ev.High-netDebt),
	}
}
