package core

// SeasonSummary is the total rental count for one (season, year) pair.
type SeasonSummary struct {
	Season SeasonCode
	Year   YearCode
	Total  int64
}

// MonthSummary is the total rental count for one (month, year) pair.
type MonthSummary struct {
	Month MonthCode
	Year  YearCode
	Total int64
}

func (s SeasonSummary) TotalCount() int64  { return s.Total }
func (s SeasonSummary) YearCode() YearCode { return s.Year }
func (s SeasonSummary) Label() string      { return s.Season.Label() }

func (m MonthSummary) TotalCount() int64  { return m.Total }
func (m MonthSummary) YearCode() YearCode { return m.Year }
func (m MonthSummary) Label() string      { return m.Month.Label() }

// Summary is implemented by both summary row types.
type Summary interface {
	TotalCount() int64
	YearCode() YearCode
	Label() string
}
