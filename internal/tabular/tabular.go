// Package tabular reads company inputs from CSV and XLSX files and writes
// valuation results as tables, CSV, JSON, and XLSX.
package tabular

import (
	"strconv"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/valuation-cli/internal/archetype"
	"github.com/sells-group/valuation-cli/internal/model"
)

// CompanyInput is one row of a batch file: the diagnostic signals for
// classification plus the financial and qualitative inputs for valuation.
type CompanyInput struct {
	Name        string                    `json:"name" yaml:"name"`
	Diagnostic  archetype.DiagnosticInput `json:"diagnostic" yaml:"diagnostic"`
	Financials  model.FinancialData       `json:"financials" yaml:"financials"`
	Qualitative *model.QualitativeData    `json:"qualitative,omitempty" yaml:"qualitative,omitempty"`
}

// columns maps recognized header names to row-parse actions. Unknown
// columns are ignored so exports with extra fields still load.
var columns = map[string]func(*CompanyInput, string) error{
	"company":               func(c *CompanyInput, v string) error { c.Name = v; return nil },
	"sector":                func(c *CompanyInput, v string) error { c.Diagnostic.Sector = v; return nil },
	"industry_code":         func(c *CompanyInput, v string) error { c.Diagnostic.IndustryCode = v; return nil },
	"revenue":               setFloat(func(c *CompanyInput, f float64) { c.Diagnostic.Revenue = f; c.Financials.Revenue = f }),
	"ebitda":                setFloat(func(c *CompanyInput, f float64) { c.Diagnostic.EBITDA = f; c.Financials.EBITDA = f }),
	"growth_pct":            setFloat(func(c *CompanyInput, f float64) { c.Diagnostic.GrowthPct = f; c.Financials.GrowthPct = f }),
	"recurring_pct":         setFloat(func(c *CompanyInput, f float64) { c.Diagnostic.RecurringPct = f; c.Financials.RecurringPct = f }),
	"payroll_pct":           setFloat(func(c *CompanyInput, f float64) { c.Diagnostic.PayrollPct = f }),
	"has_storefront":        setBool(func(c *CompanyInput, b bool) { c.Diagnostic.HasStorefront = b }),
	"has_recurring_billing": setBool(func(c *CompanyInput, b bool) { c.Diagnostic.HasRecurringBilling = b }),
	"net_income":            setFloat(func(c *CompanyInput, f float64) { c.Financials.NetIncome = f }),
	"book_equity":           setFloat(func(c *CompanyInput, f float64) { c.Financials.BookEquity = f }),
	"cash":                  setFloat(func(c *CompanyInput, f float64) { c.Financials.Cash = f }),
	"debt":                  setFloat(func(c *CompanyInput, f float64) { c.Financials.Debt = f }),
	"arr":                   setFloat(func(c *CompanyInput, f float64) { c.Financials.ARR = f }),
	"mrr":                   setFloat(func(c *CompanyInput, f float64) { c.Financials.MRR = f }),
	"gtv":                   setFloat(func(c *CompanyInput, f float64) { c.Financials.GTV = f }),
	"net_revenue":           setFloat(func(c *CompanyInput, f float64) { c.Financials.NetRevenue = f }),
	"total_assets":          setFloat(func(c *CompanyInput, f float64) { c.Financials.TotalAssets = f }),
	"key_person_dependency": func(c *CompanyInput, v string) error {
		if v == "" {
			return nil
		}
		dep := model.KeyPersonDependency(strings.ToLower(v))
		switch dep {
		case model.KeyPersonNone, model.KeyPersonMedium, model.KeyPersonHigh:
		default:
			return eris.Errorf("invalid key_person_dependency %q", v)
		}
		qual(c).KeyPersonDependency = dep
		return nil
	},
	"top_client_share_pct": setFloat(func(c *CompanyInput, f float64) {
		if f != 0 {
			qual(c).TopClientSharePct = f
		}
	}),
	"minority_stake": setBool(func(c *CompanyInput, b bool) {
		if b {
			qual(c).MinorityStake = true
		}
	}),
	"has_litigation": setBool(func(c *CompanyInput, b bool) {
		if b {
			qual(c).HasLitigation = true
		}
	}),
	"has_key_contracts": setBool(func(c *CompanyInput, b bool) {
		if b {
			qual(c).HasKeyContracts = true
		}
	}),
}

func qual(c *CompanyInput) *model.QualitativeData {
	if c.Qualitative == nil {
		c.Qualitative = &model.QualitativeData{}
	}
	return c.Qualitative
}

func setFloat(apply func(*CompanyInput, float64)) func(*CompanyInput, string) error {
	return func(c *CompanyInput, v string) error {
		f, err := parseFloat(v)
		if err != nil {
			return err
		}
		apply(c, f)
		return nil
	}
}

func setBool(apply func(*CompanyInput, bool)) func(*CompanyInput, string) error {
	return func(c *CompanyInput, v string) error {
		b, err := parseBool(v)
		if err != nil {
			return err
		}
		apply(c, b)
		return nil
	}
}

// parseFloat accepts empty cells as zero and tolerates French-style
// decimal commas and embedded spaces in exported numbers.
func parseFloat(v string) (float64, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	v = strings.ReplaceAll(v, " ", "")
	v = strings.ReplaceAll(v, " ", "")
	v = strings.ReplaceAll(v, ",", ".")
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "parse number %q", v)
	}
	return f, nil
}

func parseBool(v string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "false", "0", "no", "non":
		return false, nil
	case "true", "1", "yes", "oui":
		return true, nil
	default:
		return false, eris.Errorf("parse bool %q", v)
	}
}

// bindHeader maps each header cell to its parse action, normalizing case
// and surrounding space. The company column is required.
func bindHeader(header []string) ([]func(*CompanyInput, string) error, error) {
	binders := make([]func(*CompanyInput, string) error, len(header))
	hasCompany := false
	for i, h := range header {
		key := strings.ToLower(strings.TrimSpace(h))
		if key == "company" {
			hasCompany = true
		}
		binders[i] = columns[key] // nil for unrecognized columns
	}
	if !hasCompany {
		return nil, eris.New("tabular: header is missing the company column")
	}
	return binders, nil
}

// parseRow applies the column binders to one data row.
func parseRow(binders []func(*CompanyInput, string) error, row []string) (CompanyInput, error) {
	var c CompanyInput
	for i, cell := range row {
		if i >= len(binders) || binders[i] == nil {
			continue
		}
		if err := binders[i](&c, cell); err != nil {
			return CompanyInput{}, err
		}
	}
	if c.Name == "" {
		return CompanyInput{}, eris.New("tabular: row has no company name")
	}
	return c, nil
}
