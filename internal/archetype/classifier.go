package archetype

import "strings"

// DiagnosticInput carries the signals the classifier routes on. It is
// consumed once; the calculator takes FinancialData instead.
type DiagnosticInput struct {
	Sector       string  `json:"sector" yaml:"sector"`
	Revenue      float64 `json:"revenue" yaml:"revenue"`
	EBITDA       float64 `json:"ebitda" yaml:"ebitda"`
	GrowthPct    float64 `json:"growth_pct" yaml:"growth_pct"`
	RecurringPct float64 `json:"recurring_pct" yaml:"recurring_pct"`
	PayrollPct   float64 `json:"payroll_pct" yaml:"payroll_pct"` // payroll as % of revenue

	HasStorefront       bool `json:"has_storefront,omitempty" yaml:"has_storefront,omitempty"`
	HasRecurringBilling bool `json:"has_recurring_billing,omitempty" yaml:"has_recurring_billing,omitempty"`

	IndustryCode string   `json:"industry_code,omitempty" yaml:"industry_code,omitempty"`
	Hints        []string `json:"hints,omitempty" yaml:"hints,omitempty"`
}

// Classification thresholds. Boundary direction is load-bearing: growth of
// exactly 40 is mature, not hyper; payroll of exactly 60 does not trigger
// the labor-intensive route; revenue of exactly 300 000 is not micro.
const (
	microRevenueCeiling   = 300_000
	deficitRevenueFloor   = 1_000_000
	hyperGrowthFloorPct   = 40
	matureGrowthFloorPct  = 5
	deficitGrowthCeilPct  = 20
	laborPayrollFloorPct  = 60
	recurringHighFloorPct = 80
	recurringMidFloorPct  = 60
	rentalRecurringPct    = 50
)

// Classify routes diagnostic signals to an archetype. It is total: every
// input maps to a known archetype, with Advisory as the terminal fallback.
func Classify(in DiagnosticInput) Archetype {
	a, _ := ClassifyExplain(in)
	return a
}

// ClassifyExplain is Classify plus the identifier of the rule that matched,
// for diagnostics output. Rules are evaluated in priority order; the first
// match wins and the order is part of the contract.
func ClassifyExplain(in DiagnosticInput) (Archetype, string) {
	sector := normalizeSector(in.Sector)

	// P1: pre-revenue pre-empts everything.
	if in.Revenue <= 0 || preRevenueSectors[sector] {
		return PreRevenue, "P1:pre-revenue"
	}
	if in.EBITDA < 0 && in.GrowthPct > hyperGrowthFloorPct && in.HasRecurringBilling {
		return SaaSHyperGrowth, "P1:loss-making-hyper-growth"
	}

	// P2: asset vehicles, then micro businesses.
	if realEstateSectors[sector] {
		if in.RecurringPct > rentalRecurringPct {
			return AssetRental, "P2:real-estate-rental"
		}
		return AssetOperating, "P2:real-estate-operating"
	}
	if in.Revenue < microRevenueCeiling && !marketplaceSectors[sector] {
		return Micro, "P2:micro"
	}

	// P3: structural loss-makers, then payroll-dominated businesses.
	// Advisory and retail sectors are structurally labor-heavy and keep
	// their own archetype.
	if in.EBITDA < 0 && in.GrowthPct < deficitGrowthCeilPct && in.Revenue > deficitRevenueFloor {
		return StructuralDeficit, "P3:structural-deficit"
	}
	if in.PayrollPct > laborPayrollFloorPct && !matchesAdvisory(sector) && !retailSectors[sector] {
		return LaborIntensive, "P3:labor-intensive"
	}

	// P4: recurring-billing businesses, split by recurring share and growth.
	if in.HasRecurringBilling {
		switch {
		case in.RecurringPct > recurringHighFloorPct && in.GrowthPct > hyperGrowthFloorPct:
			return SaaSHyperGrowth, "P4:hyper-growth"
		case in.RecurringPct > recurringHighFloorPct && in.GrowthPct >= matureGrowthFloorPct:
			return SaaSMature, "P4:mature"
		case in.RecurringPct > recurringMidFloorPct && in.GrowthPct < matureGrowthFloorPct:
			return SaaSDeclining, "P4:declining"
		}
	}
	// Carve-out: a self-declared subscription-software sector with a
	// conservative recurring answer still routes by growth instead of
	// falling through to the services rules.
	if saasSectors[sector] && in.RecurringPct <= recurringMidFloorPct {
		switch {
		case in.GrowthPct > hyperGrowthFloorPct:
			return SaaSHyperGrowth, "P4:declared-saas-hyper"
		case in.GrowthPct >= matureGrowthFloorPct:
			return SaaSMature, "P4:declared-saas-mature"
		default:
			return SaaSDeclining, "P4:declared-saas-declining"
		}
	}
	if marketplaceSectors[sector] {
		return Marketplace, "P4:marketplace"
	}
	if ecommerceSectors[sector] {
		return Ecommerce, "P4:ecommerce"
	}

	// P5: sector keyword routes.
	if matchesAdvisory(sector) {
		return Advisory, "P5:advisory-keyword"
	}
	if in.RecurringPct > recurringMidFloorPct {
		return RecurringServices, "P5:recurring-share"
	}
	if strings.HasPrefix(in.IndustryCode, wholesaleCodePrefix) {
		return Wholesale, "P5:wholesale-code"
	}
	if in.HasStorefront || retailSectors[sector] {
		return Retail, "P5:retail"
	}
	if industrialSectors[sector] {
		return Industrial, "P5:industrial"
	}
	if sector == "services" {
		return RecurringServices, "P5:generic-services"
	}

	// P6: terminal fallback.
	return Advisory, "P6:fallback"
}
