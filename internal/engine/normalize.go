package engine

import (
	"fmt"
	"math"

	"github.com/sells-group/valuation-cli/internal/model"
)

// Adjustment names. The confidence scorer matches on adjOwnerComp, so these
// are constants rather than inline literals.
const (
	adjOwnerComp     = "Owner compensation normalization"
	adjRelatedRent   = "Related-party rent normalization"
	adjFinanceLease  = "Finance lease add-back"
	adjOneOffExpense = "One-off expense add-back"
	adjOneOffIncome  = "One-off income removal"
	adjExcessFamily  = "Excess family compensation"
	adjUnpaidFamily  = "Unpaid family labor"
)

// normativePayBracket maps a revenue ceiling to the normative annual owner
// pay for that bracket.
type normativePayBracket struct {
	revenueCeiling float64
	pay            float64
}

// ownerPayBrackets is monotonic in revenue. Revenue at or above the top
// ceiling falls back to defaultNormativePay.
var ownerPayBrackets = []normativePayBracket{
	{250_000, 50_000},
	{500_000, 55_000},
	{1_000_000, 60_000},
	{2_000_000, 80_000},
	{5_000_000, 110_000},
	{10_000_000, 150_000},
	{20_000_000, 200_000},
}

const defaultNormativePay = 80_000

// materialityShare is the threshold under which owner-pay and rent gaps are
// ignored: a gap must exceed 10% of the normative/market value to produce
// an adjustment.
const materialityShare = 0.10

// NormativeOwnerPay returns the normative annual owner compensation for a
// revenue bracket.
func NormativeOwnerPay(revenue float64) float64 {
	for _, b := range ownerPayBrackets {
		if revenue < b.revenueCeiling {
			return b.pay
		}
	}
	return defaultNormativePay
}

// Normalize applies the declared retraitements to raw EBITDA and returns
// the normalized value with the itemized adjustment list. Adjustments are
// always emitted in canonical order: owner compensation, related-party
// rent, finance lease, one-off expense, one-off income, excess family pay,
// unpaid family labor.
func Normalize(revenue, rawEBITDA float64, r *model.Retraitements) (float64, []model.Adjustment) {
	if r == nil {
		return rawEBITDA, nil
	}

	var adjustments []model.Adjustment
	add := func(name string, impact float64, justification string) {
		adjustments = append(adjustments, model.Adjustment{
			Name:          name,
			Impact:        impact,
			Justification: justification,
		})
	}

	if r.OwnerCompensation != nil {
		normative := NormativeOwnerPay(revenue)
		gap := *r.OwnerCompensation - normative
		if math.Abs(gap) > materialityShare*normative {
			add(adjOwnerComp, gap, fmt.Sprintf(
				"Declared owner pay %.0f vs normative %.0f for the revenue bracket",
				*r.OwnerCompensation, normative))
		}
	}

	if r.RentPaidToOwner && r.RelatedPartyRent != nil && r.MarketRent != nil {
		gap := *r.RelatedPartyRent - *r.MarketRent
		if math.Abs(gap) > materialityShare**r.MarketRent {
			add(adjRelatedRent, gap, fmt.Sprintf(
				"Rent paid to related party %.0f vs market rate %.0f",
				*r.RelatedPartyRent, *r.MarketRent))
		}
	}

	if r.FinanceLeasePayment != nil && *r.FinanceLeasePayment != 0 {
		add(adjFinanceLease, *r.FinanceLeasePayment,
			"Annual finance-lease payment treated as financing, added back in full")
	}

	if r.OneOffExpense != nil && *r.OneOffExpense != 0 {
		add(adjOneOffExpense, *r.OneOffExpense,
			"Non-recurring expense added back in full")
	}

	if r.OneOffIncome != nil && *r.OneOffIncome != 0 {
		add(adjOneOffIncome, -*r.OneOffIncome,
			"Non-recurring income removed in full")
	}

	if r.ExcessFamilyPay != nil && *r.ExcessFamilyPay != 0 {
		add(adjExcessFamily, *r.ExcessFamilyPay,
			"Family compensation above market cost added back")
	}

	if r.UnpaidFamilyLabor != nil && *r.UnpaidFamilyLabor != 0 {
		add(adjUnpaidFamily, -*r.UnpaidFamilyLabor,
			"Unpaid or underpaid family labor restated at market cost")
	}

	normalized := rawEBITDA
	for _, a := range adjustments {
		normalized += a.Impact
	}
	return normalized, adjustments
}
