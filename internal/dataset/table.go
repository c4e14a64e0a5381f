package dataset

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"bikeshare/internal/core"
)

// Column names of the daily dataset.
const (
	ColDate   = "dteday"
	ColSeason = "season"
	ColYear   = "yr"
	ColMonth  = "mnth"
	ColCount  = "cnt"
)

// RequiredColumns must be present in every source's header.
var RequiredColumns = []string{ColSeason, ColYear, ColMonth, ColCount}

// ErrMissingColumn is returned when the header lacks a required column.
var ErrMissingColumn = errors.New("missing column")

// Columns holds the header index of each dataset column. Date is -1 when absent.
type Columns struct {
	Date, Season, Year, Month, Count int
}

// LocateColumns finds the dataset columns in a header row, ignoring case and
// surrounding whitespace.
func LocateColumns(header []string) (Columns, error) {
	idx := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))
		if _, dup := idx[name]; !dup {
			idx[name] = i
		}
	}

	var missing []string
	find := func(name string) int {
		i, ok := idx[name]
		if !ok {
			missing = append(missing, name)
			return -1
		}
		return i
	}
	cols := Columns{
		Season: find(ColSeason),
		Year:   find(ColYear),
		Month:  find(ColMonth),
		Count:  find(ColCount),
		Date:   -1,
	}
	if i, ok := idx[ColDate]; ok {
		cols.Date = i
	}
	if len(missing) > 0 {
		return Columns{}, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return cols, nil
}

// ParseTable converts a header plus data rows into records. firstLine is the
// 1-based line number of rows[0], used in MalformedRowError. Fully blank rows
// are skipped.
func ParseTable(header []string, rows [][]string, firstLine int) ([]core.RentalRecord, error) {
	cols, err := LocateColumns(header)
	if err != nil {
		return nil, err
	}

	out := make([]core.RentalRecord, 0, len(rows))
	for i, row := range rows {
		if blankRow(row) {
			continue
		}
		rec, err := cols.parseRow(row, firstLine+i)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

func (c Columns) parseRow(row []string, line int) (core.RentalRecord, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	intCell := func(i int, name string) (int64, error) {
		v := cell(i)
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			// Spreadsheet exports sometimes render integers as "3.0".
			if f, ferr := strconv.ParseFloat(v, 64); ferr == nil && f == float64(int64(f)) {
				return int64(f), nil
			}
			return 0, &core.MalformedRowError{Line: line, Column: name, Value: v, Err: err}
		}
		return n, nil
	}

	season, err := intCell(c.Season, ColSeason)
	if err != nil {
		return core.RentalRecord{}, err
	}
	year, err := intCell(c.Year, ColYear)
	if err != nil {
		return core.RentalRecord{}, err
	}
	month, err := intCell(c.Month, ColMonth)
	if err != nil {
		return core.RentalRecord{}, err
	}
	count, err := intCell(c.Count, ColCount)
	if err != nil {
		return core.RentalRecord{}, err
	}

	rec := core.RentalRecord{
		Season: core.SeasonCode(season),
		Year:   core.YearCode(year),
		Month:  core.MonthCode(month),
		Count:  count,
	}
	if c.Date >= 0 {
		if v := cell(c.Date); v != "" {
			d, err := core.ParseDate(v)
			if err != nil {
				return core.RentalRecord{}, &core.MalformedRowError{Line: line, Column: ColDate, Value: v, Err: err}
			}
			rec.Date = d
		}
	}
	if err := rec.Validate(); err != nil {
		return core.RentalRecord{}, &core.MalformedRowError{Line: line, Err: err}
	}
	return rec, nil
}

func blankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
