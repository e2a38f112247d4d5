package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/tabular"
)

var classifyExplain bool

var classifyCmd = &cobra.Command{
	Use:   "classify <input-file>",
	Short: "Classify a company into a valuation archetype",
	Long:  "Routes the diagnostic signals from a YAML or JSON input file through the archetype rules and prints the result.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := readCompanyFile(args[0])
		if err != nil {
			return err
		}

		a, rule := archetype.ClassifyExplain(c.Diagnostic)

		out := map[string]string{
			"company":   c.Name,
			"archetype": string(a),
			"method":    a.Label(),
		}
		if classifyExplain {
			out["rule"] = rule
		}
		return tabular.WriteJSON(os.Stdout, out)
	},
}

func init() {
	classifyCmd.Flags().BoolVar(&classifyExplain, "explain", false, "include the identifier of the rule that matched")
	rootCmd.AddCommand(classifyCmd)
}
