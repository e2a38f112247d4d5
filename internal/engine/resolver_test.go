package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/multiples"
)

func TestResolveMetrics_FallbackChains(t *testing.T) {
	tests := []struct {
		name          string
		a             archetype.Archetype
		fin           model.FinancialData
		normEBITDA    float64
		wantPrimary   float64
		wantSecondary float64
	}{
		{
			name: "hyper growth prefers ARR",
			a:    archetype.SaaSHyperGrowth,
			fin:  model.FinancialData{Revenue: 1_000_000, ARR: 800_000, MRR: 50_000},
			wantPrimary: 800_000, wantSecondary: 1_000_000,
		},
		{
			name: "hyper growth falls back to MRR x 12",
			a:    archetype.SaaSHyperGrowth,
			fin:  model.FinancialData{Revenue: 1_000_000, MRR: 50_000},
			wantPrimary: 600_000, wantSecondary: 1_000_000,
		},
		{
			name: "hyper growth falls back to revenue",
			a:    archetype.SaaSHyperGrowth,
			fin:  model.FinancialData{Revenue: 1_000_000},
			wantPrimary: 1_000_000, wantSecondary: 1_000_000,
		},
		{
			name: "marketplace GTV then ARR then revenue",
			a:    archetype.Marketplace,
			fin:  model.FinancialData{Revenue: 500_000, NetRevenue: 300_000},
			wantPrimary: 500_000, wantSecondary: 300_000,
		},
		{
			name: "marketplace with full data",
			a:    archetype.Marketplace,
			fin:  model.FinancialData{Revenue: 500_000, GTV: 8_000_000, ARR: 400_000},
			wantPrimary: 8_000_000, wantSecondary: 400_000,
		},
		{
			name: "mature recurring is EBITDA primary",
			a:    archetype.SaaSMature,
			fin:  model.FinancialData{Revenue: 2_000_000, ARR: 1_800_000},
			normEBITDA:  400_000,
			wantPrimary: 400_000, wantSecondary: 1_800_000,
		},
		{
			name: "ecommerce zeroes a negative EBITDA secondary",
			a:    archetype.Ecommerce,
			fin:  model.FinancialData{Revenue: 900_000},
			normEBITDA:  -20_000,
			wantPrimary: 900_000, wantSecondary: 0,
		},
		{
			name: "asset rental falls back to 60% of revenue",
			a:    archetype.AssetRental,
			fin:  model.FinancialData{Revenue: 1_000_000, TotalAssets: 4_000_000},
			normEBITDA:  -5_000,
			wantPrimary: 4_000_000, wantSecondary: 600_000,
		},
		{
			name: "asset operating zeroes a negative EBITDA secondary",
			a:    archetype.AssetOperating,
			fin:  model.FinancialData{BookEquity: 2_000_000},
			normEBITDA:  -5_000,
			wantPrimary: 2_000_000, wantSecondary: 0,
		},
		{
			name: "structural deficit floors equity at zero",
			a:    archetype.StructuralDeficit,
			fin:  model.FinancialData{Revenue: 3_000_000, BookEquity: -400_000},
			wantPrimary: 3_000_000, wantSecondary: 0,
		},
		{
			name: "micro prefers positive EBITDA",
			a:    archetype.Micro,
			fin:  model.FinancialData{Revenue: 250_000, NetIncome: 30_000},
			normEBITDA:  40_000,
			wantPrimary: 40_000, wantSecondary: 250_000,
		},
		{
			name: "micro falls back to net income when EBITDA negative",
			a:    archetype.Micro,
			fin:  model.FinancialData{Revenue: 250_000, NetIncome: 30_000},
			normEBITDA:  -10_000,
			wantPrimary: 30_000, wantSecondary: 250_000,
		},
		{
			name: "recurring services weights revenue by recurring share",
			a:    archetype.RecurringServices,
			fin:  model.FinancialData{Revenue: 1_000_000, RecurringPct: 70},
			normEBITDA:  150_000,
			wantPrimary: 150_000, wantSecondary: 700_000,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := resolveMetrics(tt.a, tt.fin, tt.normEBITDA)
			assert.Equal(t, tt.wantPrimary, m.primary, "primary")
			assert.Equal(t, tt.wantSecondary, m.secondary, "secondary")
		})
	}
}

func TestSideRange(t *testing.T) {
	bounds := multiples.Bounds{Metric: "ebitda", Low: 3, Median: 4, High: 5}

	r, ok := sideRange(100_000, bounds)
	assert.True(t, ok)
	assert.Equal(t, model.Range{Low: 300_000, Median: 400_000, High: 500_000}, r)

	_, ok = sideRange(0, bounds)
	assert.False(t, ok, "zero metric is unavailable")

	_, ok = sideRange(-5, bounds)
	assert.False(t, ok, "negative metric is unavailable")

	_, ok = sideRange(100_000, multiples.Bounds{Metric: "none"})
	assert.False(t, ok, "all-zero bounds are the non-multiple sentinel")
}

func TestBlendRanges_BoundWise(t *testing.T) {
	table := multiples.Default()
	entry, ok := table.Entry(archetype.Retail)
	assert.True(t, ok)

	// Both sides available: each bound blends independently.
	ev := blendRanges(archetype.Retail, entry, metricSet{primary: 120_000, secondary: 800_000})
	assert.InDelta(t, 324_000, ev.Low, 0.01)
	assert.InDelta(t, 456_000, ev.Median, 0.01)
	assert.InDelta(t, 654_000, ev.High, 0.01)

	// Only the secondary available: used verbatim.
	ev = blendRanges(archetype.Retail, entry, metricSet{secondary: 800_000})
	assert.InDelta(t, 240_000, ev.Low, 0.01)
	assert.InDelta(t, 640_000, ev.High, 0.01)

	// Neither available: zero range.
	ev = blendRanges(archetype.Retail, entry, metricSet{})
	assert.True(t, ev.IsZero())
}
