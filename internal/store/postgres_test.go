package store

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/model"
)

// newMockPostgresStore creates a PostgresStore backed by pgxmock for unit testing.
func newMockPostgresStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	s := &PostgresStore{pool: mock}
	return s, mock
}

func TestPostgresStore_GetValuation_NotFound(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, company, archetype, financials, qualitative, result, created_at`).
		WithArgs("nonexistent-id").
		WillReturnError(pgx.ErrNoRows)

	_, err := s.GetValuation(context.Background(), "nonexistent-id")
	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_SaveValuation_Insert(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`INSERT INTO valuations`).
		WithArgs(pgxmock.AnyArg(), "Boulangerie Martin", "retail",
			pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg(), pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	v := &model.Valuation{
		Company:   "Boulangerie Martin",
		Archetype: archetype.Retail,
		Financials: model.FinancialData{
			Revenue: 800_000,
			EBITDA:  120_000,
		},
		Result: model.ValuationResult{
			Archetype: archetype.Retail,
			EV:        model.Range{Low: 324_000, Median: 456_000, High: 654_000},
		},
	}
	err := s.SaveValuation(context.Background(), v)
	require.NoError(t, err)
	assert.NotEmpty(t, v.ID, "save assigns an id")
	assert.False(t, v.CreatedAt.IsZero(), "save stamps created_at")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_ListValuations_FiltersByArchetype(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectQuery(`SELECT id, company, archetype, financials, qualitative, result, created_at`).
		WithArgs("retail", 100).
		WillReturnRows(pgxmock.NewRows([]string{
			"id", "company", "archetype", "financials", "qualitative", "result", "created_at",
		}))

	vals, err := s.ListValuations(context.Background(), Filter{Archetype: archetype.Retail})
	require.NoError(t, err)
	assert.Empty(t, vals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresStore_Migrate(t *testing.T) {
	s, mock := newMockPostgresStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS valuations`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
