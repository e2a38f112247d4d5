package main

import (
	"context"
	"os"
	"os/signal"
	"sort"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/engine"
	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/tabular"
)

var (
	batchConcurrency int
	batchSave        bool
	batchOutput      string
	batchOutPath     string
)

var batchCmd = &cobra.Command{
	Use:   "batch <input-file>",
	Short: "Value companies from a CSV or XLSX file",
	Long:  "Classifies and values every row concurrently. One bad row is reported and skipped; it never aborts the batch.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if batchConcurrency > 0 {
			cfg.Batch.Concurrency = batchConcurrency
		}
		if err := cfg.Validate("batch"); err != nil {
			return err
		}

		companies, err := readCompaniesFile(args[0])
		if err != nil {
			return err
		}
		if len(companies) == 0 {
			zap.L().Info("no companies in input file")
			return nil
		}

		table, err := loadTable()
		if err != nil {
			return err
		}
		calc := engine.NewCalculator(table)

		vals, failed := processBatch(ctx, companies, cfg.Batch.Concurrency, calc)

		if batchSave && len(vals) > 0 {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			for i := range vals {
				if err := st.SaveValuation(ctx, &vals[i]); err != nil {
					return eris.Wrapf(err, "batch: save %s", vals[i].Company)
				}
			}
		}

		zap.L().Info("batch complete",
			zap.Int("succeeded", len(vals)),
			zap.Int64("failed", failed),
		)

		return writeBatchResults(vals)
	},
}

// processBatch values companies concurrently. A failed row is logged and
// counted; results come back in input order.
func processBatch(ctx context.Context, companies []tabular.CompanyInput, concurrency int, calc *engine.Calculator) ([]model.Valuation, int64) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var (
		mu     sync.Mutex
		byIdx  = make(map[int]model.Valuation, len(companies))
		failed atomic.Int64
	)

	for i, c := range companies {
		g.Go(func() error {
			if gctx.Err() != nil {
				failed.Add(1)
				return nil
			}

			log := zap.L().With(zap.String("company", c.Name))

			a := archetype.Classify(c.Diagnostic)
			result, err := calc.Calculate(a, c.Financials, c.Qualitative)
			if err != nil {
				failed.Add(1)
				log.Error("valuation failed", zap.Error(err))
				return nil // don't abort batch on individual failure
			}

			mu.Lock()
			byIdx[i] = model.Valuation{
				Company:     c.Name,
				Archetype:   a,
				Financials:  c.Financials,
				Qualitative: c.Qualitative,
				Result:      *result,
			}
			mu.Unlock()

			log.Info("valuation complete",
				zap.String("archetype", string(a)),
				zap.Float64("equity_median", result.Equity.Median),
				zap.Int("confidence", result.Confidence),
			)
			return nil
		})
	}
	_ = g.Wait()

	idxs := make([]int, 0, len(byIdx))
	for i := range byIdx {
		idxs = append(idxs, i)
	}
	sort.Ints(idxs)

	vals := make([]model.Valuation, 0, len(idxs))
	for _, i := range idxs {
		vals = append(vals, byIdx[i])
	}
	return vals, failed.Load()
}

func writeBatchResults(vals []model.Valuation) error {
	switch batchOutput {
	case "table", "":
		tabular.WriteResultsTable(os.Stdout, vals)
		return nil
	case "json":
		return tabular.WriteJSON(os.Stdout, vals)
	case "csv":
		return tabular.WriteResultsCSV(os.Stdout, vals)
	case "xlsx":
		if batchOutPath == "" {
			return eris.New("batch: --out is required for xlsx output")
		}
		return tabular.WriteResultsXLSX(batchOutPath, vals)
	default:
		return eris.Errorf("batch: unknown output format %q", batchOutput)
	}
}

func init() {
	batchCmd.Flags().IntVar(&batchConcurrency, "concurrency", 0, "max companies valued in parallel (default from config)")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "persist every valuation to the store")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "table", "output format (table, json, csv, xlsx)")
	batchCmd.Flags().StringVar(&batchOutPath, "out", "", "output file path (xlsx only)")
	rootCmd.AddCommand(batchCmd)
}
