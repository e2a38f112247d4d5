package tabular

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/sells-group/valuation-cli/internal/model"
)

// ReadCompaniesCSV parses a header-mapped CSV of company inputs. Column
// order is free; unrecognized columns are ignored.
func ReadCompaniesCSV(r io.Reader) ([]CompanyInput, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // allow variable fields

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("csv: empty file")
	}
	if err != nil {
		return nil, eris.Wrap(err, "csv: read header")
	}

	binders, err := bindHeader(header)
	if err != nil {
		return nil, err
	}

	var companies []CompanyInput
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrap(err, "csv: read row")
		}
		line++

		c, err := parseRow(binders, record)
		if err != nil {
			return nil, eris.Wrapf(err, "csv: line %d", line)
		}
		companies = append(companies, c)
	}
	return companies, nil
}

// resultColumns is the column layout shared by the CSV and XLSX result
// writers.
var resultColumns = []string{
	"company", "archetype", "method",
	"ev_low", "ev_median", "ev_high",
	"net_debt",
	"equity_low", "equity_median", "equity_high",
	"confidence",
}

func resultRow(v model.Valuation) []string {
	return []string{
		v.Company,
		string(v.Result.Archetype),
		v.Result.Method,
		formatAmount(v.Result.EV.Low),
		formatAmount(v.Result.EV.Median),
		formatAmount(v.Result.EV.High),
		formatAmount(v.Result.NetDebt),
		formatAmount(v.Result.Equity.Low),
		formatAmount(v.Result.Equity.Median),
		formatAmount(v.Result.Equity.High),
		strconv.Itoa(v.Result.Confidence),
	}
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', 0, 64)
}

// WriteResultsCSV writes valuation results in the result column layout.
func WriteResultsCSV(w io.Writer, vals []model.Valuation) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(resultColumns); err != nil {
		return eris.Wrap(err, "csv: write header")
	}
	for _, v := range vals {
		if err := writer.Write(resultRow(v)); err != nil {
			return eris.Wrapf(err, "csv: write row for %s", v.Company)
		}
	}
	writer.Flush()
	return eris.Wrap(writer.Error(), "csv: flush")
}
