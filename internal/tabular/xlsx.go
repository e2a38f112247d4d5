package tabular

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/valuation-cli/internal/model"
)

// ReadCompaniesXLSX parses company inputs from the first sheet of an XLSX
// file. The first row is the header and uses the same column names as the
// CSV reader.
func ReadCompaniesXLSX(path string) ([]CompanyInput, error) {
	f, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	if len(f.Sheets) == 0 {
		return nil, eris.Errorf("xlsx: %s has no sheets", path)
	}
	sheet := f.Sheets[0]
	if len(sheet.Rows) == 0 {
		return nil, eris.Errorf("xlsx: %s first sheet is empty", path)
	}

	binders, err := bindHeader(rowToStrings(sheet.Rows[0]))
	if err != nil {
		return nil, err
	}

	var companies []CompanyInput
	for i, row := range sheet.Rows[1:] {
		cells := rowToStrings(row)
		if blankRow(cells) {
			continue
		}
		c, err := parseRow(binders, cells)
		if err != nil {
			return nil, eris.Wrapf(err, "xlsx: row %d", i+2)
		}
		companies = append(companies, c)
	}
	return companies, nil
}

// WriteResultsXLSX writes valuation results to a single-sheet XLSX file.
func WriteResultsXLSX(path string, vals []model.Valuation) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet("Valuations")
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range resultColumns {
		header.AddCell().SetString(col)
	}
	for _, v := range vals {
		row := sheet.AddRow()
		for _, cell := range resultRow(v) {
			row.AddCell().SetString(cell)
		}
	}

	return eris.Wrapf(f.Save(path), "xlsx: save %s", path)
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cell.String()
	}
	return cells
}

func blankRow(cells []string) bool {
	for _, c := range cells {
		if c != "" {
			return false
		}
	}
	return true
}
