package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/model"
)

// ErrNotFound is returned when a valuation id does not exist.
var ErrNotFound = eris.New("store: valuation not found")

// Filter specifies criteria for listing valuations.
type Filter struct {
	Archetype archetype.Archetype `json:"archetype,omitempty"`
	Company   string              `json:"company,omitempty"`
	Limit     int                 `json:"limit,omitempty"`
	Offset    int                 `json:"offset,omitempty"`
}

// Store defines the persistence interface for valuation runs.
type Store interface {
	SaveValuation(ctx context.Context, v *model.Valuation) error
	GetValuation(ctx context.Context, id string) (*model.Valuation, error)
	ListValuations(ctx context.Context, filter Filter) ([]model.Valuation, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}

// Open constructs a Store for the configured driver. Supported drivers are
// "sqlite" and "postgres".
func Open(ctx context.Context, driver, dsn string, poolCfg *PoolConfig) (Store, error) {
	switch driver {
	case "sqlite", "":
		return NewSQLite(dsn)
	case "postgres":
		return NewPostgres(ctx, dsn, poolCfg)
	default:
		return nil, eris.Errorf("store: unknown driver %q", driver)
	}
}
