package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/model"
)

func newTestSQLiteStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")
	st, err := NewSQLite(dbPath)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func testValuation(company string, a archetype.Archetype) *model.Valuation {
	return &model.Valuation{
		Company:   company,
		Archetype: a,
		Financials: model.FinancialData{
			Revenue: 800_000,
			EBITDA:  120_000,
			Cash:    50_000,
			Debt:    30_000,
		},
		Qualitative: &model.QualitativeData{
			KeyPersonDependency: model.KeyPersonMedium,
		},
		Result: model.ValuationResult{
			Archetype:  a,
			Method:     a.Label(),
			EV:         model.Range{Low: 324_000, Median: 456_000, High: 654_000},
			NetDebt:    -20_000,
			Equity:     model.Range{Low: 344_000, Median: 476_000, High: 674_000},
			Confidence: 80,
		},
	}
}

func TestSQLite_SaveAndGetValuation(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	v := testValuation("Boulangerie Martin", archetype.Retail)
	require.NoError(t, st.SaveValuation(ctx, v))
	require.NotEmpty(t, v.ID)

	got, err := st.GetValuation(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, v.Company, got.Company)
	assert.Equal(t, archetype.Retail, got.Archetype)
	assert.Equal(t, v.Financials.Revenue, got.Financials.Revenue)
	require.NotNil(t, got.Qualitative)
	assert.Equal(t, model.KeyPersonMedium, got.Qualitative.KeyPersonDependency)
	assert.Equal(t, v.Result.EV, got.Result.EV)
	assert.Equal(t, v.Result.Confidence, got.Result.Confidence)
}

func TestSQLite_GetValuation_NotFound(t *testing.T) {
	st := newTestSQLiteStore(t)

	_, err := st.GetValuation(context.Background(), "nonexistent-id")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
}

func TestSQLite_SaveValuation_NilQualitative(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	v := testValuation("Atelier Dupont", archetype.Industrial)
	v.Qualitative = nil
	require.NoError(t, st.SaveValuation(ctx, v))

	got, err := st.GetValuation(ctx, v.ID)
	require.NoError(t, err)
	assert.Nil(t, got.Qualitative)
}

func TestSQLite_ListValuations_Filters(t *testing.T) {
	st := newTestSQLiteStore(t)
	ctx := context.Background()

	require.NoError(t, st.SaveValuation(ctx, testValuation("Boulangerie Martin", archetype.Retail)))
	require.NoError(t, st.SaveValuation(ctx, testValuation("Cabinet Leroy", archetype.Advisory)))
	require.NoError(t, st.SaveValuation(ctx, testValuation("Boulangerie Martin", archetype.Retail)))

	all, err := st.ListValuations(ctx, Filter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	retail, err := st.ListValuations(ctx, Filter{Archetype: archetype.Retail})
	require.NoError(t, err)
	assert.Len(t, retail, 2)

	byCompany, err := st.ListValuations(ctx, Filter{Company: "Cabinet Leroy"})
	require.NoError(t, err)
	require.Len(t, byCompany, 1)
	assert.Equal(t, archetype.Advisory, byCompany[0].Archetype)

	limited, err := st.ListValuations(ctx, Filter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), "oracle", "dsn", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown driver")
}

func TestOpen_DefaultsToSQLite(t *testing.T) {
	st, err := Open(context.Background(), "", filepath.Join(t.TempDir(), "v.db"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() }) //nolint:errcheck
	require.NoError(t, st.Migrate(context.Background()))
}
