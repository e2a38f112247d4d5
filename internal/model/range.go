// Package model defines the domain types shared across the valuation engine:
// financial inputs, EBITDA adjustments, qualitative discounts, and the final
// valuation result.
package model

// Range holds a low/median/high value triple. Every stage of the engine that
// produces a Range must keep Low <= Median <= High.
type Range struct {
	Low    float64 `json:"low"`
	Median float64 `json:"median"`
	High   float64 `json:"high"`
}

// Scale returns the range with every bound multiplied by f.
func (r Range) Scale(f float64) Range {
	return Range{Low: r.Low * f, Median: r.Median * f, High: r.High * f}
}

// Ordered reports whether Low <= Median <= High.
func (r Range) Ordered() bool {
	return r.Low <= r.Median && r.Median <= r.High
}

// IsZero reports whether all three bounds are zero.
func (r Range) IsZero() bool {
	return r.Low == 0 && r.Median == 0 && r.High == 0
}
