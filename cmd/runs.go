package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/store"
	"github.com/sells-group/valuation-cli/internal/tabular"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect saved valuations",
	Long:  "Commands for listing and viewing valuations persisted with --save or through the API.",
}

// -- runs list --

var runsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved valuations",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		archetypeID, _ := cmd.Flags().GetString("archetype")
		company, _ := cmd.Flags().GetString("company")
		limit, _ := cmd.Flags().GetInt("limit")

		a := archetype.Archetype(archetypeID)
		if a != "" && !a.Valid() {
			return eris.Errorf("runs list: unknown archetype %q", archetypeID)
		}

		vals, err := st.ListValuations(ctx, store.Filter{
			Archetype: a,
			Company:   company,
			Limit:     limit,
		})
		if err != nil {
			return eris.Wrap(err, "runs list")
		}

		if len(vals) == 0 {
			fmt.Fprintln(os.Stderr, "No valuations found.")
			return nil
		}

		tabular.WriteResultsTable(os.Stdout, vals)
		return nil
	},
}

// -- runs show --

var runsShowCmd = &cobra.Command{
	Use:   "show <valuation-id>",
	Short: "Show the full detail of a saved valuation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		st, err := initStore(ctx)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		v, err := st.GetValuation(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "runs show")
		}

		return tabular.WriteJSON(os.Stdout, v)
	},
}

func init() {
	runsListCmd.Flags().String("archetype", "", "filter by archetype id")
	runsListCmd.Flags().String("company", "", "filter by company name")
	runsListCmd.Flags().Int("limit", 50, "max number of valuations to display")

	runsCmd.AddCommand(runsListCmd)
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}
