package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/model"
)

// Pool is the pgxpool subset the store needs. pgxmock satisfies it, which
// keeps the postgres tests free of a live database.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool    Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS valuations (
	id          TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	company     TEXT NOT NULL,
	archetype   TEXT NOT NULL,
	financials  JSONB NOT NULL,
	qualitative JSONB,
	result      JSONB NOT NULL,
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_valuations_archetype ON valuations(archetype);
CREATE INDEX IF NOT EXISTS idx_valuations_company ON valuations(company);
CREATE INDEX IF NOT EXISTS idx_valuations_created_at ON valuations(created_at DESC);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) SaveValuation(ctx context.Context, v *model.Valuation) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	finJSON, err := json.Marshal(v.Financials)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal financials")
	}
	resultJSON, err := json.Marshal(v.Result)
	if err != nil {
		return eris.Wrap(err, "postgres: marshal result")
	}
	var qualJSON []byte
	if v.Qualitative != nil {
		qualJSON, err = json.Marshal(v.Qualitative)
		if err != nil {
			return eris.Wrap(err, "postgres: marshal qualitative")
		}
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO valuations (id, company, archetype, financials, qualitative, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		v.ID, v.Company, string(v.Archetype), finJSON, qualJSON, resultJSON, v.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert valuation")
}

func (s *PostgresStore) GetValuation(ctx context.Context, id string) (*model.Valuation, error) {
	var v model.Valuation
	var archetypeStr string
	var finJSON, resultJSON []byte
	var qualJSON *[]byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, company, archetype, financials, qualitative, result, created_at
		 FROM valuations WHERE id = $1`,
		id,
	).Scan(&v.ID, &v.Company, &archetypeStr, &finJSON, &qualJSON, &resultJSON, &v.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, eris.Wrapf(ErrNotFound, "postgres: %s", id)
		}
		return nil, eris.Wrapf(err, "postgres: get valuation %s", id)
	}

	v.Archetype = archetype.Archetype(archetypeStr)
	if err := json.Unmarshal(finJSON, &v.Financials); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal financials")
	}
	if qualJSON != nil {
		v.Qualitative = &model.QualitativeData{}
		if err := json.Unmarshal(*qualJSON, v.Qualitative); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal qualitative")
		}
	}
	if err := json.Unmarshal(resultJSON, &v.Result); err != nil {
		return nil, eris.Wrap(err, "postgres: unmarshal result")
	}
	return &v, nil
}

func (s *PostgresStore) ListValuations(ctx context.Context, filter Filter) ([]model.Valuation, error) {
	query := `SELECT id, company, archetype, financials, qualitative, result, created_at
	          FROM valuations WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Archetype != "" {
		query += fmt.Sprintf(` AND archetype = $%d`, argIdx)
		args = append(args, string(filter.Archetype))
		argIdx++
	}
	if filter.Company != "" {
		query += fmt.Sprintf(` AND company = $%d`, argIdx)
		args = append(args, filter.Company)
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
		argIdx++
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list valuations")
	}
	defer rows.Close()

	var vals []model.Valuation
	for rows.Next() {
		var v model.Valuation
		var archetypeStr string
		var finJSON, resultJSON []byte
		var qualJSON *[]byte

		if err := rows.Scan(&v.ID, &v.Company, &archetypeStr, &finJSON, &qualJSON, &resultJSON, &v.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan valuation")
		}
		v.Archetype = archetype.Archetype(archetypeStr)
		if err := json.Unmarshal(finJSON, &v.Financials); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal financials")
		}
		if qualJSON != nil {
			v.Qualitative = &model.QualitativeData{}
			if err := json.Unmarshal(*qualJSON, v.Qualitative); err != nil {
				return nil, eris.Wrap(err, "postgres: unmarshal qualitative")
			}
		}
		if err := json.Unmarshal(resultJSON, &v.Result); err != nil {
			return nil, eris.Wrap(err, "postgres: unmarshal result")
		}
		vals = append(vals, v)
	}
	return vals, eris.Wrap(rows.Err(), "postgres: list valuations iterate")
}
