package archetype

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_PreRevenuePreemptsEverything(t *testing.T) {
	tests := []struct {
		name string
		in   DiagnosticInput
	}{
		{"zero revenue", DiagnosticInput{Revenue: 0, Sector: "saas", GrowthPct: 90, RecurringPct: 95, HasRecurringBilling: true}},
		{"negative revenue", DiagnosticInput{Revenue: -1, Sector: "commerce"}},
		{"biotech sector", DiagnosticInput{Revenue: 2_000_000, Sector: "biotech", EBITDA: 500_000}},
		{"deep tech sector", DiagnosticInput{Revenue: 500_000, Sector: "Deep Tech"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, PreRevenue, Classify(tt.in))
		})
	}
}

func TestClassify_LossMakingHyperGrowth(t *testing.T) {
	in := DiagnosticInput{
		Sector:              "saas",
		Revenue:             2_000_000,
		EBITDA:              -400_000,
		GrowthPct:           80,
		RecurringPct:        90,
		HasRecurringBilling: true,
	}
	assert.Equal(t, SaaSHyperGrowth, Classify(in))

	// Without the billing flag the P1 rule does not fire; the carve-out
	// for a declared saas sector needs recurring <= 60 so this falls to
	// the recurring-share route.
	in.HasRecurringBilling = false
	assert.Equal(t, RecurringServices, Classify(in))
}

func TestClassify_RealEstateSplit(t *testing.T) {
	in := DiagnosticInput{Sector: "immobilier", Revenue: 900_000, RecurringPct: 51}
	assert.Equal(t, AssetRental, Classify(in))

	// Exactly 50% recurring stays on the operating side.
	in.RecurringPct = 50
	assert.Equal(t, AssetOperating, Classify(in))

	// Accented label folds to the same keyword.
	in.Sector = "Foncière"
	in.RecurringPct = 80
	assert.Equal(t, AssetRental, Classify(in))
}

func TestClassify_MicroBoundary(t *testing.T) {
	base := DiagnosticInput{
		Sector:       "services",
		EBITDA:       50_000,
		GrowthPct:    10,
		RecurringPct: 20,
		PayrollPct:   10,
	}

	under := base
	under.Revenue = 299_999
	assert.Equal(t, Micro, Classify(under))

	at := base
	at.Revenue = 300_000
	assert.Equal(t, RecurringServices, Classify(at))
}

func TestClassify_MicroExcludesMarketplace(t *testing.T) {
	in := DiagnosticInput{Sector: "marketplace", Revenue: 120_000, GrowthPct: 30}
	assert.Equal(t, Marketplace, Classify(in))
}

func TestClassify_StructuralDeficit(t *testing.T) {
	in := DiagnosticInput{
		Sector:    "industrie",
		Revenue:   3_000_000,
		EBITDA:    -200_000,
		GrowthPct: 5,
	}
	assert.Equal(t, StructuralDeficit, Classify(in))

	// Growth at or above 20 is not a structural deficit.
	in.GrowthPct = 20
	assert.Equal(t, Industrial, Classify(in))
}

func TestClassify_LaborIntensiveBoundary(t *testing.T) {
	base := DiagnosticInput{
		Sector:       "services",
		Revenue:      900_000,
		EBITDA:       80_000,
		GrowthPct:    5,
		RecurringPct: 10,
	}

	at := base
	at.PayrollPct = 60
	assert.Equal(t, RecurringServices, Classify(at), "payroll of exactly 60 must not trigger the labor route")

	over := base
	over.PayrollPct = 61
	assert.Equal(t, LaborIntensive, Classify(over))
}

func TestClassify_LaborIntensiveSparesAdvisoryAndRetail(t *testing.T) {
	tests := []struct {
		sector string
		want   Archetype
	}{
		{"conseil", Advisory},
		{"restaurant", Retail},
		{"agence web", Advisory},
	}
	for _, tt := range tests {
		t.Run(tt.sector, func(t *testing.T) {
			in := DiagnosticInput{
				Sector:     tt.sector,
				Revenue:    800_000,
				EBITDA:     90_000,
				PayrollPct: 75,
			}
			assert.Equal(t, tt.want, Classify(in))
		})
	}
}

func TestClassify_RecurringBillingTiers(t *testing.T) {
	base := DiagnosticInput{
		Sector:              "logiciel saas",
		Revenue:             1_500_000,
		EBITDA:              150_000,
		HasRecurringBilling: true,
	}

	tests := []struct {
		name      string
		recurring float64
		growth    float64
		want      Archetype
	}{
		{"high recurring hyper growth", 85, 41, SaaSHyperGrowth},
		{"growth exactly 40 is mature", 85, 40, SaaSMature},
		{"growth just over 40 is hyper", 85, 40.01, SaaSHyperGrowth},
		{"growth exactly 5 is mature", 85, 5, SaaSMature},
		{"mid recurring low growth declining", 65, 4, SaaSDeclining},
		{"growth just under 5 declining", 85, 4.99, SaaSDeclining},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.RecurringPct = tt.recurring
			in.GrowthPct = tt.growth
			assert.Equal(t, tt.want, Classify(in))
		})
	}
}

func TestClassify_DeclaredSaaSCarveOut(t *testing.T) {
	// Self-declared subscription software with a conservative recurring
	// answer routes by growth instead of falling through to services.
	base := DiagnosticInput{
		Sector:       "saas",
		Revenue:      1_000_000,
		EBITDA:       100_000,
		RecurringPct: 30,
	}

	tests := []struct {
		name   string
		growth float64
		want   Archetype
	}{
		{"fast grower", 50, SaaSHyperGrowth},
		{"steady grower", 12, SaaSMature},
		{"shrinking", 2, SaaSDeclining},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := base
			in.GrowthPct = tt.growth
			assert.Equal(t, tt.want, Classify(in))

			// The carve-out holds with or without the billing flag.
			in.HasRecurringBilling = true
			assert.Equal(t, tt.want, Classify(in))
		})
	}
}

func TestClassify_SectorLiterals(t *testing.T) {
	tests := []struct {
		sector string
		want   Archetype
	}{
		{"marketplace", Marketplace},
		{"place de marché", Marketplace},
		{"e-commerce", Ecommerce},
		{"vente en ligne", Ecommerce},
		{"conseil", Advisory},
		{"expertise comptable", Advisory},
		{"industrie", Industrial},
		{"BTP", Industrial},
		{"boutique", Retail},
		{"services", RecurringServices},
	}
	for _, tt := range tests {
		t.Run(tt.sector, func(t *testing.T) {
			in := DiagnosticInput{Sector: tt.sector, Revenue: 600_000, EBITDA: 60_000, GrowthPct: 5}
			assert.Equal(t, tt.want, Classify(in))
		})
	}
}

func TestClassify_AdvisoryPrefixRule(t *testing.T) {
	// "agence seo" is not in the keyword list but shares the agency
	// prefix with listed entries.
	in := DiagnosticInput{Sector: "agence seo", Revenue: 500_000, EBITDA: 70_000}
	assert.Equal(t, Advisory, Classify(in))

	// A lead word outside the prefix list never matches the keyword rule;
	// the sector only reaches advisory through the terminal fallback.
	in.Sector = "entreprise de nettoyage"
	_, rule := ClassifyExplain(in)
	assert.Equal(t, "P6:fallback", rule)
}

func TestClassify_WholesaleIndustryCode(t *testing.T) {
	in := DiagnosticInput{
		Sector:       "distribution de fournitures",
		Revenue:      4_000_000,
		EBITDA:       300_000,
		IndustryCode: "4669B",
	}
	assert.Equal(t, Wholesale, Classify(in))
}

func TestClassify_StorefrontRoutesRetail(t *testing.T) {
	in := DiagnosticInput{
		Sector:        "vente de cycles",
		Revenue:       700_000,
		EBITDA:        60_000,
		HasStorefront: true,
	}
	assert.Equal(t, Retail, Classify(in))
}

func TestClassify_FallbackIsAdvisory(t *testing.T) {
	in := DiagnosticInput{Sector: "zzz inconnu", Revenue: 5_000_000, EBITDA: 400_000}
	assert.Equal(t, Advisory, Classify(in))
}

func TestClassify_TotalAndDeterministic(t *testing.T) {
	inputs := []DiagnosticInput{
		{},
		{Sector: "???", Revenue: -5},
		{Sector: "saas", Revenue: 1, GrowthPct: 1000, RecurringPct: 200, PayrollPct: 500},
		{Sector: "immobilier", Revenue: 1e12, RecurringPct: 50},
		{Sector: "restaurant", Revenue: 400_000, EBITDA: -10_000, PayrollPct: 90},
	}
	for _, in := range inputs {
		first := Classify(in)
		require.True(t, first.Valid(), "classifier returned unknown archetype %q", first)
		for i := 0; i < 3; i++ {
			assert.Equal(t, first, Classify(in))
		}
	}
}

func TestClassifyExplain_ReportsMatchedRule(t *testing.T) {
	a, rule := ClassifyExplain(DiagnosticInput{Revenue: 0})
	assert.Equal(t, PreRevenue, a)
	assert.Equal(t, "P1:pre-revenue", rule)

	a, rule = ClassifyExplain(DiagnosticInput{Sector: "nothing known", Revenue: 1_000_000})
	assert.Equal(t, Advisory, a)
	assert.Equal(t, "P6:fallback", rule)
}

func TestWeights_SumToHundred(t *testing.T) {
	for _, a := range All() {
		wp, ws := a.Weights()
		assert.Equal(t, 100, wp+ws, "weights for %s", a)
	}
}

func TestNormalizeSector(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"  SaaS  ", "saas"},
		{"Foncière", "fonciere"},
		{"Activités   Immobilières", "activites immobilieres"},
		{"COMMERCE DE DÉTAIL", "commerce de detail"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, normalizeSector(tt.in))
	}
}
