package services

import (
	"sort"

	"bikeshare/internal/core"
)

type seasonKey struct {
	season core.SeasonCode
	year   core.YearCode
}

type monthKey struct {
	month core.MonthCode
	year  core.YearCode
}

// SummarizeBySeason groups records by (season, year) and sums their counts.
// One row is returned per observed pair, ordered by season then year.
func SummarizeBySeason(records []core.RentalRecord) []core.SeasonSummary {
	totals := make(map[seasonKey]int64)
	for _, r := range records {
		totals[seasonKey{r.Season, r.Year}] += r.Count
	}

	out := make([]core.SeasonSummary, 0, len(totals))
	for k, total := range totals {
		out = append(out, core.SeasonSummary{Season: k.season, Year: k.year, Total: total})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Season != out[j].Season {
			return out[i].Season < out[j].Season
		}
		return out[i].Year < out[j].Year
	})
	return out
}

// SummarizeByMonth groups records by (month, year) and sums their counts.
//
// Months are treated as a full 1-12 category: every observed year gets all
// twelve months, with a zero total where no record exists. Rows are ordered
// by month then year.
func SummarizeByMonth(records []core.RentalRecord) []core.MonthSummary {
	totals := make(map[monthKey]int64)
	years := make(map[core.YearCode]struct{})
	for _, r := range records {
		totals[monthKey{r.Month, r.Year}] += r.Count
		years[r.Year] = struct{}{}
	}

	yearList := make([]core.YearCode, 0, len(years))
	for y := range years {
		yearList = append(yearList, y)
	}
	sort.Slice(yearList, func(i, j int) bool { return yearList[i] < yearList[j] })

	out := make([]core.MonthSummary, 0, 12*len(yearList))
	for _, m := range core.AllMonths() {
		for _, y := range yearList {
			out = append(out, core.MonthSummary{Month: m, Year: y, Total: totals[monthKey{m, y}]})
		}
	}
	return out
}

// Years returns the distinct year codes present in records, in first-seen order.
func Years(records []core.RentalRecord) []core.YearCode {
	seen := make(map[core.YearCode]struct{})
	var out []core.YearCode
	for _, r := range records {
		if _, ok := seen[r.Year]; ok {
			continue
		}
		seen[r.Year] = struct{}{}
		out = append(out, r.Year)
	}
	return out
}

// Months returns the distinct month codes present in records, in first-seen order.
func Months(records []core.RentalRecord) []core.MonthCode {
	seen := make(map[core.MonthCode]struct{})
	var out []core.MonthCode
	for _, r := range records {
		if _, ok := seen[r.Month]; ok {
			continue
		}
		seen[r.Month] = struct{}{}
		out = append(out, r.Month)
	}
	return out
}

// TotalCount sums the count column.
func TotalCount(records []core.RentalRecord) int64 {
	var total int64
	for _, r := range records {
		total += r.Count
	}
	return total
}
