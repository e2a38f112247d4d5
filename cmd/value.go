package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/engine"
	"github.com/sells-group/valuation-cli/internal/model"
	"github.com/sells-group/valuation-cli/internal/tabular"
)

var (
	valueArchetype string
	valueSave      bool
	valueOutput    string
)

var valueCmd = &cobra.Command{
	Use:   "value <input-file>",
	Short: "Value a single company",
	Long:  "Classifies (or takes --archetype), normalizes EBITDA, and prints the valuation range with its adjustment and discount trail.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if err := cfg.Validate("value"); err != nil {
			return err
		}

		c, err := readCompanyFile(args[0])
		if err != nil {
			return err
		}

		table, err := loadTable()
		if err != nil {
			return err
		}
		calc := engine.NewCalculator(table)

		a := archetype.Archetype(valueArchetype)
		if a == "" {
			a = archetype.Classify(c.Diagnostic)
		} else if !a.Valid() {
			return eris.Errorf("value: unknown archetype %q", valueArchetype)
		}

		result, err := calc.Calculate(a, c.Financials, c.Qualitative)
		if err != nil {
			return eris.Wrapf(err, "value %s", c.Name)
		}

		v := model.Valuation{
			Company:     c.Name,
			Archetype:   a,
			Financials:  c.Financials,
			Qualitative: c.Qualitative,
			Result:      *result,
		}

		if valueSave {
			st, err := initStore(ctx)
			if err != nil {
				return err
			}
			defer st.Close() //nolint:errcheck
			if err := st.SaveValuation(ctx, &v); err != nil {
				return err
			}
			zap.L().Info("valuation saved", zap.String("id", v.ID))
		}

		switch valueOutput {
		case "json":
			return tabular.WriteJSON(os.Stdout, v)
		case "table", "":
			tabular.WriteResultDetail(os.Stdout, v)
			return nil
		default:
			return eris.Errorf("value: unknown output format %q", valueOutput)
		}
	},
}

func init() {
	valueCmd.Flags().StringVar(&valueArchetype, "archetype", "", "skip classification and use this archetype")
	valueCmd.Flags().BoolVar(&valueSave, "save", false, "persist the valuation to the store")
	valueCmd.Flags().StringVarP(&valueOutput, "output", "o", "table", "output format (table, json)")
	rootCmd.AddCommand(valueCmd)
}
