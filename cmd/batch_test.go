package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/engine"
	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/multiples"
	"github.com/sells-group/valuation-cli/internal/tabular"
)

func TestProcessBatch_PreservesInputOrder(t *testing.T) {
	calc := engine.NewCalculator(multiples.Default())

	companies := []tabular.CompanyInput{
		{
			Name:       "Boulangerie Martin",
			Diagnostic: archetype.DiagnosticInput{Sector: "boulangerie", Revenue: 800_000, EBITDA: 120_000, HasStorefront: true},
			Financials: model.FinancialData{Revenue: 800_000, EBITDA: 120_000},
		},
		{
			Name:       "Cabinet Leroy",
			Diagnostic: archetype.DiagnosticInput{Sector: "cabinet comptable", Revenue: 600_000, EBITDA: 90_000},
			Financials: model.FinancialData{Revenue: 600_000, EBITDA: 90_000},
		},
		{
			Name:       "Studio Naissant",
			Diagnostic: archetype.DiagnosticInput{Sector: "startup"},
			Financials: model.FinancialData{Cash: 100_000},
		},
	}

	vals, failed := processBatch(context.Background(), companies, 4, calc)
	require.Len(t, vals, 3)
	assert.Zero(t, failed)

	assert.Equal(t, "Boulangerie Martin", vals[0].Company)
	assert.Equal(t, archetype.Retail, vals[0].Archetype)
	assert.Equal(t, "Cabinet Leroy", vals[1].Company)
	assert.Equal(t, archetype.Advisory, vals[1].Archetype)
	assert.Equal(t, "Studio Naissant", vals[2].Company)
	assert.Equal(t, archetype.PreRevenue, vals[2].Archetype)
	assert.Equal(t, 0, vals[2].Result.Confidence)
}

func TestProcessBatch_EmptyInput(t *testing.T) {
	calc := engine.NewCalculator(multiples.Default())
	vals, failed := processBatch(context.Background(), nil, 2, calc)
	assert.Empty(t, vals)
	assert.Zero(t, failed)
}
