package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/sells-group/valuation-cli/internal/multiples"
	"github.com/sells-group/valuation-cli/internal/tabular"
)

var multiplesJSON bool

var multiplesCmd = &cobra.Command{
	Use:   "multiples",
	Short: "Show the reference multiples table",
	Long:  "Prints every archetype's primary and secondary multiple bounds with their provenance. Use --multiples to inspect an override file.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		table, err := loadTable()
		if err != nil {
			return err
		}

		if multiplesJSON {
			return tabular.WriteJSON(os.Stdout, table.Entries())
		}
		formatMultiples(os.Stdout, table)
		return nil
	},
}

func formatMultiples(out io.Writer, table *multiples.Table) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "ARCHETYPE\tMETRIC\tLOW\tMEDIAN\tHIGH\tSOURCE\tUPDATED")
	_, _ = fmt.Fprintln(w, "---------\t------\t---\t------\t----\t------\t-------")

	for _, a := range table.Archetypes() {
		e, _ := table.Entry(a)
		_, _ = fmt.Fprintf(w, "%s\t%s\t%.2f\t%.2f\t%.2f\t%s\t%s\n",
			a, e.Primary.Metric, e.Primary.Low, e.Primary.Median, e.Primary.High,
			e.Provenance.Source, e.Provenance.LastUpdated)
		if e.Secondary.Metric != "" {
			_, _ = fmt.Fprintf(w, "\t%s\t%.2f\t%.2f\t%.2f\t\t\n",
				e.Secondary.Metric, e.Secondary.Low, e.Secondary.Median, e.Secondary.High)
		}
	}
	_ = w.Flush()
}

func init() {
	multiplesCmd.Flags().BoolVar(&multiplesJSON, "json", false, "print the table as JSON")
	rootCmd.AddCommand(multiplesCmd)
}
