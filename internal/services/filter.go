package services

import (
	"fmt"

	"bikeshare/internal/core"
)

// Selection is the user's filter: one year and an optional set of months.
// An empty Months slice selects every month; DashboardService narrows that
// to the months present in the dataset.
type Selection struct {
	Year   core.YearCode
	Months []core.MonthCode
}

func (s Selection) Validate() error {
	if err := s.Year.Validate(); err != nil {
		return err
	}
	for _, m := range s.Months {
		if err := m.Validate(); err != nil {
			return fmt.Errorf("selection: %w", err)
		}
	}
	return nil
}

// Includes reports whether month passes the month filter.
func (s Selection) Includes(month core.MonthCode) bool {
	if len(s.Months) == 0 {
		return true
	}
	for _, m := range s.Months {
		if m == month {
			return true
		}
	}
	return false
}

// FilterSeasons keeps the season rows of the given year.
// A year with no rows yields an empty, non-nil slice.
func FilterSeasons(rows []core.SeasonSummary, year core.YearCode) []core.SeasonSummary {
	out := make([]core.SeasonSummary, 0, len(rows))
	for _, r := range rows {
		if r.Year == year {
			out = append(out, r)
		}
	}
	return out
}

// FilterMonths keeps the month rows matching the selection's year and months.
func FilterMonths(rows []core.MonthSummary, sel Selection) []core.MonthSummary {
	out := make([]core.MonthSummary, 0, len(rows))
	for _, r := range rows {
		if r.Year == sel.Year && sel.Includes(r.Month) {
			out = append(out, r)
		}
	}
	return out
}

// Extremes returns the rows with the largest and smallest totals.
// Ties go to the earliest row. An empty input returns core.ErrEmptySelection.
func Extremes[T core.Summary](rows []T) (hi T, lo T, err error) {
	if len(rows) == 0 {
		return hi, lo, core.ErrEmptySelection
	}
	hi, lo = rows[0], rows[0]
	for _, r := range rows[1:] {
		if r.TotalCount() > hi.TotalCount() {
			hi = r
		}
		if r.TotalCount() < lo.TotalCount() {
			lo = r
		}
	}
	return hi, lo, nil
}
