package xlsx

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"bikeshare/internal/core"
	"bikeshare/internal/dataset"
)

// Source reads the daily dataset from one sheet of an Excel workbook. The
// first row of the sheet is the header.
type Source struct {
	path  string
	sheet string
}

var _ dataset.Source = (*Source)(nil)

// New creates a workbook source. An empty sheet name selects the first sheet.
func New(path, sheet string) *Source {
	return &Source{path: path, sheet: sheet}
}

func (s *Source) Backend() string { return "xlsx" }

func (s *Source) Location() string {
	if s.sheet == "" {
		return s.path
	}
	return s.path + "#" + s.sheet
}

func (s *Source) Load(_ context.Context) ([]core.RentalRecord, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook %s has no sheets", s.path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheet)
	}
	return dataset.ParseTable(rows[0], rows[1:], 2)
}
