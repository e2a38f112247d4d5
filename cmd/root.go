package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/valuation-cli/internal/config"
	"github.com/sells-group/valuation-cli/internal/multiples"
	"github.com/sells-group/valuation-cli/internal/store"
)

var cfg *config.Config

var multiplesPath string

var rootCmd = &cobra.Command{
	Use:   "valuation-cli",
	Short: "SMB valuation engine",
	Long:  "Classifies small businesses into valuation archetypes, normalizes EBITDA, and produces equity-value ranges from a reference multiples table.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initStore opens and migrates the configured store.
func initStore(ctx context.Context) (store.Store, error) {
	st, err := store.Open(ctx, cfg.Store.Driver, cfg.Store.DatabaseURL, cfg.Store.Pool)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close() //nolint:errcheck
		return nil, err
	}
	return st, nil
}

// loadTable resolves the multiples table: the --multiples flag wins over
// the configured path, and an empty path means the embedded default.
func loadTable() (*multiples.Table, error) {
	path := multiplesPath
	if path == "" {
		path = cfg.Multiples.Path
	}
	return multiples.Load(path)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&multiplesPath, "multiples", "", "path to a multiples table YAML (default: embedded table)")
}
