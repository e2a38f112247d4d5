package tabular

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/rotisserie/eris"

	"github.com/sells-group/valuation-cli/internal/model"
)

// WriteResultsTable writes a human-readable table of valuation results.
func WriteResultsTable(out io.Writer, vals []model.Valuation) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "COMPANY\tARCHETYPE\tEQUITY LOW\tEQUITY MEDIAN\tEQUITY HIGH\tCONFIDENCE")
	_, _ = fmt.Fprintln(w, "-------\t---------\t----------\t-------------\t-----------\t----------")

	for _, v := range vals {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%d\n",
			v.Company,
			v.Result.Archetype,
			formatAmount(v.Result.Equity.Low),
			formatAmount(v.Result.Equity.Median),
			formatAmount(v.Result.Equity.High),
			v.Result.Confidence,
		)
	}
	_ = w.Flush()
}

// WriteResultDetail writes one full valuation with its adjustment and
// discount trail.
func WriteResultDetail(out io.Writer, v model.Valuation) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintf(w, "Company:\t%s\n", v.Company)
	_, _ = fmt.Fprintf(w, "Archetype:\t%s\n", v.Result.Archetype)
	_, _ = fmt.Fprintf(w, "Method:\t%s\n", v.Result.Method)
	_, _ = fmt.Fprintf(w, "Enterprise value:\t%s / %s / %s\n",
		formatAmount(v.Result.EV.Low), formatAmount(v.Result.EV.Median), formatAmount(v.Result.EV.High))
	_, _ = fmt.Fprintf(w, "Net debt:\t%s\n", formatAmount(v.Result.NetDebt))
	_, _ = fmt.Fprintf(w, "Equity value:\t%s / %s / %s\n",
		formatAmount(v.Result.Equity.Low), formatAmount(v.Result.Equity.Median), formatAmount(v.Result.Equity.High))
	_, _ = fmt.Fprintf(w, "Confidence:\t%d/100\n", v.Result.Confidence)

	if len(v.Result.Adjustments) > 0 {
		_, _ = fmt.Fprintln(w, "\nEBITDA adjustments:")
		for _, a := range v.Result.Adjustments {
			sign := ""
			if a.Impact > 0 {
				sign = "+"
			}
			_, _ = fmt.Fprintf(w, "  %s\t%s%s\t%s\n", a.Name, sign, formatAmount(a.Impact), a.Justification)
		}
	}
	if len(v.Result.Discounts) > 0 {
		_, _ = fmt.Fprintln(w, "\nDiscounts:")
		for _, d := range v.Result.Discounts {
			_, _ = fmt.Fprintf(w, "  %s\t-%.0f%%\t%s\n", d.Name, d.Percentage, d.Reason)
		}
	}
	_ = w.Flush()
}

// WriteJSON writes any value as indented JSON.
func WriteJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return eris.Wrap(enc.Encode(v), "tabular: encode json")
}
