// Package archetype defines the closed set of valuation archetypes and the
// rule-based classifier that routes a business's diagnostic signals to one
// of them.
package archetype

// Archetype identifies one of the fixed valuation methodologies. The set is
// closed: the metric resolver, the weight table, and the multiples table all
// switch exhaustively over it.
type Archetype string

const (
	PreRevenue        Archetype = "pre_revenue"
	SaaSHyperGrowth   Archetype = "saas_hyper_growth"
	SaaSMature        Archetype = "saas_mature"
	SaaSDeclining     Archetype = "saas_declining"
	Marketplace       Archetype = "marketplace"
	Ecommerce         Archetype = "ecommerce"
	AssetRental       Archetype = "asset_heavy_rental"
	AssetOperating    Archetype = "asset_heavy_operating"
	Micro             Archetype = "micro_enterprise"
	StructuralDeficit Archetype = "structural_deficit"
	LaborIntensive    Archetype = "labor_intensive"
	Advisory          Archetype = "advisory"
	RecurringServices Archetype = "recurring_services"
	Retail            Archetype = "retail"
	Wholesale         Archetype = "wholesale"
	Industrial        Archetype = "industrial"
)

// All returns every archetype in a stable order.
func All() []Archetype {
	return []Archetype{
		PreRevenue,
		SaaSHyperGrowth,
		SaaSMature,
		SaaSDeclining,
		Marketplace,
		Ecommerce,
		AssetRental,
		AssetOperating,
		Micro,
		StructuralDeficit,
		LaborIntensive,
		Advisory,
		RecurringServices,
		Retail,
		Wholesale,
		Industrial,
	}
}

// Valid reports whether a is a known archetype.
func (a Archetype) Valid() bool {
	switch a {
	case PreRevenue, SaaSHyperGrowth, SaaSMature, SaaSDeclining,
		Marketplace, Ecommerce, AssetRental, AssetOperating,
		Micro, StructuralDeficit, LaborIntensive, Advisory,
		RecurringServices, Retail, Wholesale, Industrial:
		return true
	}
	return false
}

// Label returns the human-readable methodology name reported on results.
func (a Archetype) Label() string {
	switch a {
	case PreRevenue:
		return "Qualitative / DCF (pre-revenue)"
	case SaaSHyperGrowth:
		return "ARR multiple (hyper-growth recurring)"
	case SaaSMature:
		return "EBITDA multiple (mature recurring)"
	case SaaSDeclining:
		return "EBITDA multiple (declining recurring)"
	case Marketplace:
		return "GTV multiple (marketplace)"
	case Ecommerce:
		return "Revenue multiple (direct-to-consumer)"
	case AssetRental:
		return "Asset-based (rental real estate)"
	case AssetOperating:
		return "Asset-based (operating holding)"
	case Micro:
		return "Owner-earnings multiple (micro enterprise)"
	case StructuralDeficit:
		return "Distressed revenue multiple"
	case LaborIntensive:
		return "EBITDA multiple (labor-intensive services)"
	case Advisory:
		return "EBITDA multiple (advisory / professional services)"
	case RecurringServices:
		return "EBITDA multiple (recurring services)"
	case Retail:
		return "EBITDA multiple (retail)"
	case Wholesale:
		return "EBITDA multiple (wholesale / distribution)"
	case Industrial:
		return "EBITDA multiple (industrial)"
	}
	return string(a)
}

// Weights returns the primary/secondary blend weights for a. The pair always
// sums to 100. PreRevenue never reaches the blender; its weights are the
// 100/0 identity.
func (a Archetype) Weights() (primary, secondary int) {
	switch a {
	case PreRevenue:
		return 100, 0
	case SaaSHyperGrowth:
		return 70, 30
	case SaaSMature:
		return 60, 40
	case SaaSDeclining:
		return 70, 30
	case Marketplace:
		return 60, 40
	case Ecommerce:
		return 50, 50
	case AssetRental:
		return 80, 20
	case AssetOperating:
		return 80, 20
	case Micro:
		return 80, 20
	case StructuralDeficit:
		return 70, 30
	case LaborIntensive:
		return 75, 25
	case Advisory:
		return 70, 30
	case RecurringServices:
		return 65, 35
	case Retail:
		return 70, 30
	case Wholesale:
		return 70, 30
	case Industrial:
		return 70, 30
	}
	return 100, 0
}

// EBITDABased reports whether a values the business primarily on normalized
// EBITDA. Used by the confidence scorer.
func (a Archetype) EBITDABased() bool {
	switch a {
	case SaaSMature, SaaSDeclining, Micro, LaborIntensive, Advisory,
		RecurringServices, Retail, Wholesale, Industrial:
		return true
	}
	return false
}

// AssetHeavy reports whether a is one of the two asset-based archetypes,
// which embed cash in their primary metric and skip the cash leg of the
// net-debt bridge.
func (a Archetype) AssetHeavy() bool {
	return a == AssetRental || a == AssetOperating
}
