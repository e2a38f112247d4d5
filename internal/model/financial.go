package model

// FinancialData holds the per-request financial inputs to the calculator.
// Zero values on the optional metrics (ARR, MRR, GTV, NetRevenue,
// TotalAssets) mean "not provided"; the engine degrades gracefully instead
// of rejecting incomplete data.
type FinancialData struct {
	Revenue    float64 `json:"revenue" yaml:"revenue"`
	EBITDA     float64 `json:"ebitda" yaml:"ebitda"` // raw, pre-normalization
	NetIncome  float64 `json:"net_income" yaml:"net_income"`
	BookEquity float64 `json:"book_equity" yaml:"book_equity"`
	Cash       float64 `json:"cash" yaml:"cash"`
	Debt       float64 `json:"debt" yaml:"debt"`

	// Archetype-specific metrics, all optional.
	ARR         float64 `json:"arr,omitempty" yaml:"arr,omitempty"`                   // annualized recurring revenue
	MRR         float64 `json:"mrr,omitempty" yaml:"mrr,omitempty"`                   // monthly recurring revenue
	GTV         float64 `json:"gtv,omitempty" yaml:"gtv,omitempty"`                   // gross transaction volume
	NetRevenue  float64 `json:"net_revenue,omitempty" yaml:"net_revenue,omitempty"`   // take-rate revenue (marketplaces)
	TotalAssets float64 `json:"total_assets,omitempty" yaml:"total_assets,omitempty"` // asset-heavy archetypes

	GrowthPct    float64 `json:"growth_pct,omitempty" yaml:"growth_pct,omitempty"`
	RecurringPct float64 `json:"recurring_pct,omitempty" yaml:"recurring_pct,omitempty"`

	Retraitements *Retraitements `json:"retraitements,omitempty" yaml:"retraitements,omitempty"`
}

// Retraitements holds the structured EBITDA adjustment inputs declared by
// the seller. Pointer fields distinguish "not declared" from a declared
// zero, which matters for the owner-compensation rules.
type Retraitements struct {
	// Owner compensation as booked, compared against the normative pay
	// for the revenue bracket.
	OwnerCompensation *float64 `json:"owner_compensation,omitempty" yaml:"owner_compensation,omitempty"`

	// Rent paid to a related party, with its market-rate comparator.
	// Only normalized when RentPaidToOwner is set.
	RelatedPartyRent *float64 `json:"related_party_rent,omitempty" yaml:"related_party_rent,omitempty"`
	MarketRent       *float64 `json:"market_rent,omitempty" yaml:"market_rent,omitempty"`
	RentPaidToOwner  bool     `json:"rent_paid_to_owner,omitempty" yaml:"rent_paid_to_owner,omitempty"`

	// Finance leases: the annual payment is added back to EBITDA, the
	// remaining balance feeds the net-debt bridge.
	FinanceLeasePayment *float64 `json:"finance_lease_payment,omitempty" yaml:"finance_lease_payment,omitempty"`
	FinanceLeaseBalance *float64 `json:"finance_lease_balance,omitempty" yaml:"finance_lease_balance,omitempty"`

	OneOffExpense *float64 `json:"one_off_expense,omitempty" yaml:"one_off_expense,omitempty"`
	OneOffIncome  *float64 `json:"one_off_income,omitempty" yaml:"one_off_income,omitempty"`

	// Family labor paid above or below its market cost.
	ExcessFamilyPay   *float64 `json:"excess_family_pay,omitempty" yaml:"excess_family_pay,omitempty"`
	UnpaidFamilyLabor *float64 `json:"unpaid_family_labor,omitempty" yaml:"unpaid_family_labor,omitempty"`
}

// LeaseBalance returns the remaining finance-lease balance, or 0 when the
// retraitements (or the field) are absent.
func (r *Retraitements) LeaseBalance() float64 {
	if r == nil || r.FinanceLeaseBalance == nil {
		return 0
	}
	return *r.FinanceLeaseBalance
}

// DeclaredOwnerPay returns the declared owner compensation and whether it
// was declared at all.
func (r *Retraitements) DeclaredOwnerPay() (float64, bool) {
	if r == nil || r.OwnerCompensation == nil {
		return 0, false
	}
	return *r.OwnerCompensation, true
}
