package model

import (
	"time"

	"github.com/sells-group/valuation-cli/internal/archetype"
)

// Adjustment is one normalization applied to raw EBITDA. Impact is signed:
// positive add-backs increase normalized EBITDA.
type Adjustment struct {
	Name          string  `json:"name"`
	Impact        float64 `json:"impact"`
	Justification string  `json:"justification"`
}

// Discount is one qualitative reduction applied to the equity range.
// Discounts compose multiplicatively, never additively.
type Discount struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Reason     string  `json:"reason"`
}

// ValuationResult is the terminal output of one valuation request.
type ValuationResult struct {
	Archetype   archetype.Archetype `json:"archetype"`
	Method      string              `json:"method"`
	EV          Range               `json:"enterprise_value"`
	NetDebt     float64             `json:"net_debt"`
	Equity      Range               `json:"equity_value"`
	Adjustments []Adjustment        `json:"adjustments,omitempty"`
	Discounts   []Discount          `json:"discounts,omitempty"`
	Confidence  int                 `json:"confidence"`
}

// Valuation is a persisted valuation run: the inputs, the chosen archetype,
// and the engine output, as saved by the store.
type Valuation struct {
	ID          string              `json:"id"`
	Company     string              `json:"company"`
	Archetype   archetype.Archetype `json:"archetype"`
	Financials  FinancialData       `json:"financials"`
	Qualitative *QualitativeData    `json:"qualitative,omitempty"`
	Result      ValuationResult     `json:"result"`
	CreatedAt   time.Time           `json:"created_at"`
}
