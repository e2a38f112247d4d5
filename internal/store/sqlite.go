package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS valuations (
	id          TEXT PRIMARY KEY,
	company     TEXT NOT NULL,
	archetype   TEXT NOT NULL,
	financials  TEXT NOT NULL,
	qualitative TEXT,
	result      TEXT NOT NULL,
	created_at  DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_valuations_archetype ON valuations(archetype);
CREATE INDEX IF NOT EXISTS idx_valuations_company ON valuations(company);
CREATE INDEX IF NOT EXISTS idx_valuations_created_at ON valuations(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) SaveValuation(ctx context.Context, v *model.Valuation) error {
	if v.ID == "" {
		v.ID = uuid.New().String()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}

	finJSON, err := json.Marshal(v.Financials)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal financials")
	}
	resultJSON, err := json.Marshal(v.Result)
	if err != nil {
		return eris.Wrap(err, "sqlite: marshal result")
	}
	var qualJSON sql.NullString
	if v.Qualitative != nil {
		b, err := json.Marshal(v.Qualitative)
		if err != nil {
			return eris.Wrap(err, "sqlite: marshal qualitative")
		}
		qualJSON = sql.NullString{String: string(b), Valid: true}
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO valuations (id, company, archetype, financials, qualitative, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Company, string(v.Archetype), string(finJSON), qualJSON, string(resultJSON), v.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert valuation")
}

func (s *SQLiteStore) GetValuation(ctx context.Context, id string) (*model.Valuation, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, company, archetype, financials, qualitative, result, created_at
		 FROM valuations WHERE id = ?`,
		id,
	)
	return scanValuation(row)
}

func (s *SQLiteStore) ListValuations(ctx context.Context, filter Filter) ([]model.Valuation, error) {
	query := `SELECT id, company, archetype, financials, qualitative, result, created_at
	          FROM valuations WHERE 1=1`
	var args []any

	if filter.Archetype != "" {
		query += ` AND archetype = ?`
		args = append(args, string(filter.Archetype))
	}
	if filter.Company != "" {
		query += ` AND company = ?`
		args = append(args, filter.Company)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list valuations")
	}
	defer rows.Close()

	var vals []model.Valuation
	for rows.Next() {
		v, err := scanValuation(rows)
		if err != nil {
			return nil, err
		}
		vals = append(vals, *v)
	}
	return vals, eris.Wrap(rows.Err(), "sqlite: list valuations iterate")
}

type scannable interface {
	Scan(dest ...any) error
}

func scanValuation(row scannable) (*model.Valuation, error) {
	var v model.Valuation
	var archetypeStr, finJSON, resultJSON string
	var qualJSON sql.NullString

	err := row.Scan(&v.ID, &v.Company, &archetypeStr, &finJSON, &qualJSON, &resultJSON, &v.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.Wrap(ErrNotFound, "sqlite")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan valuation")
	}

	v.Archetype = archetype.Archetype(archetypeStr)
	if err := json.Unmarshal([]byte(finJSON), &v.Financials); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal financials")
	}
	if qualJSON.Valid {
		v.Qualitative = &model.QualitativeData{}
		if err := json.Unmarshal([]byte(qualJSON.String), v.Qualitative); err != nil {
			return nil, eris.Wrap(err, "sqlite: unmarshal qualitative")
		}
	}
	if err := json.Unmarshal([]byte(resultJSON), &v.Result); err != nil {
		return nil, eris.Wrap(err, "sqlite: unmarshal result")
	}
	return &v, nil
}
