package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/valuation-cli/internal/tabular"
)

// readCompanyFile loads one company input from a YAML or JSON file,
// picking the decoder by extension (YAML is the default).
func readCompanyFile(path string) (tabular.CompanyInput, error) {
	var c tabular.CompanyInput

	data, err := os.ReadFile(path)
	if err != nil {
		return c, eris.Wrapf(err, "read input %s", path)
	}

	if strings.HasSuffix(path, ".json") {
		if err := json.Unmarshal(data, &c); err != nil {
			return c, eris.Wrapf(err, "parse json %s", path)
		}
	} else {
		if err := yaml.Unmarshal(data, &c); err != nil {
			return c, eris.Wrapf(err, "parse yaml %s", path)
		}
	}

	if c.Name == "" {
		return c, eris.Errorf("input %s has no company name", path)
	}
	return c, nil
}

// readCompaniesFile loads a batch of company inputs from a CSV or XLSX file.
func readCompaniesFile(path string) ([]tabular.CompanyInput, error) {
	if strings.HasSuffix(path, ".xlsx") {
		return tabular.ReadCompaniesXLSX(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open input %s", path)
	}
	defer f.Close() //nolint:errcheck
	return tabular.ReadCompaniesCSV(f)
}
