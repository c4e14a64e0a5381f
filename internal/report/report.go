// Package report holds the JSON shapes shared by the HTTP API, the report
// command and the published report message.
package report

import (
	"time"

	"bikeshare/internal/core"
	"bikeshare/internal/services"
)

type SeasonRow struct {
	Season int    `json:"season"`
	Label  string `json:"label"`
	Year   int    `json:"year"`
	Total  int64  `json:"total"`
}

type MonthRow struct {
	Month int    `json:"month"`
	Label string `json:"label"`
	Year  int    `json:"year"`
	Total int64  `json:"total"`
}

type SeasonView struct {
	Year int         `json:"year"`
	Rows []SeasonRow `json:"rows"`
	Max  *SeasonRow  `json:"max,omitempty"`
	Min  *SeasonRow  `json:"min,omitempty"`
}

type MonthView struct {
	Year   int        `json:"year"`
	Months []int      `json:"months"`
	Rows   []MonthRow `json:"rows"`
	Max    *MonthRow  `json:"max,omitempty"`
	Min    *MonthRow  `json:"min,omitempty"`
}

type MonthOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

type OptionsView struct {
	Years       []int         `json:"years"`
	Months      []MonthOption `json:"months"`
	DefaultYear int           `json:"default_year"`
}

// Document is a full report for one selection.
type Document struct {
	Year        int        `json:"year"`
	Months      []int      `json:"months"`
	Records     int        `json:"records"`
	Total       int64      `json:"total"`
	Seasons     SeasonView `json:"seasons"`
	Monthly     MonthView  `json:"monthly"`
	GeneratedAt time.Time  `json:"generated_at"`
}

func seasonRow(s core.SeasonSummary) SeasonRow {
	return SeasonRow{Season: int(s.Season), Label: s.Season.Label(), Year: s.Year.CalendarYear(), Total: s.Total}
}

func monthRow(m core.MonthSummary) MonthRow {
	return MonthRow{Month: int(m.Month), Label: m.Month.Label(), Year: m.Year.CalendarYear(), Total: m.Total}
}

func monthInts(months []core.MonthCode) []int {
	out := make([]int, len(months))
	for i, m := range months {
		out[i] = int(m)
	}
	return out
}

func FromSeasonReport(r services.SeasonReport) SeasonView {
	v := SeasonView{Year: r.Year.CalendarYear(), Rows: make([]SeasonRow, len(r.Rows))}
	for i, row := range r.Rows {
		v.Rows[i] = seasonRow(row)
	}
	if r.Max != nil {
		hi, lo := seasonRow(*r.Max), seasonRow(*r.Min)
		v.Max, v.Min = &hi, &lo
	}
	return v
}

func FromMonthReport(r services.MonthReport) MonthView {
	v := MonthView{
		Year:   r.Selection.Year.CalendarYear(),
		Months: monthInts(r.Selection.Months),
		Rows:   make([]MonthRow, len(r.Rows)),
	}
	for i, row := range r.Rows {
		v.Rows[i] = monthRow(row)
	}
	if r.Max != nil {
		hi, lo := monthRow(*r.Max), monthRow(*r.Min)
		v.Max, v.Min = &hi, &lo
	}
	return v
}

func FromOptions(o services.Options) OptionsView {
	v := OptionsView{
		Years:       make([]int, len(o.Years)),
		Months:      make([]MonthOption, len(o.Months)),
		DefaultYear: o.DefaultYear.CalendarYear(),
	}
	for i, y := range o.Years {
		v.Years[i] = y.CalendarYear()
	}
	for i, m := range o.Months {
		v.Months[i] = MonthOption{Value: int(m), Label: m.Label()}
	}
	return v
}

// FromReport converts a service report, stamping it with now.
func FromReport(r services.Report, now time.Time) Document {
	return Document{
		Year:        r.Selection.Year.CalendarYear(),
		Months:      monthInts(r.Selection.Months),
		Records:     r.Records,
		Total:       r.Total,
		Seasons:     FromSeasonReport(r.Seasons),
		Monthly:     FromMonthReport(r.Months),
		GeneratedAt: now.UTC(),
	}
}
