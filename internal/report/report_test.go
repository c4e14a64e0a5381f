package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/core"
	"bikeshare/internal/services"
)

func TestFromSeasonReport(t *testing.T) {
	hi := core.SeasonSummary{Season: core.Fall, Year: 1, Total: 800}
	lo := core.SeasonSummary{Season: core.Spring, Year: 1, Total: 100}
	v := FromSeasonReport(services.SeasonReport{
		Year: 1,
		Rows: []core.SeasonSummary{lo, hi},
		Max:  &hi,
		Min:  &lo,
	})

	assert.Equal(t, 2012, v.Year)
	require.Len(t, v.Rows, 2)
	assert.Equal(t, SeasonRow{Season: 3, Label: "Fall", Year: 2012, Total: 800}, *v.Max)
	assert.Equal(t, "Spring", v.Min.Label)
}

func TestEmptyViewsOmitExtremes(t *testing.T) {
	v := FromMonthReport(services.MonthReport{Selection: services.Selection{Year: 0}, Rows: []core.MonthSummary{}})

	b, err := json.Marshal(v)
	require.NoError(t, err)
	s := string(b)
	assert.Contains(t, s, `"rows":[]`)
	assert.Contains(t, s, `"months":[]`)
	assert.False(t, strings.Contains(s, `"max"`), s)
}

func TestFromOptions(t *testing.T) {
	v := FromOptions(services.Options{
		Years:       []core.YearCode{0, 1},
		Months:      []core.MonthCode{1, 2},
		DefaultYear: 0,
	})
	assert.Equal(t, []int{2011, 2012}, v.Years)
	assert.Equal(t, MonthOption{Value: 2, Label: "February"}, v.Months[1])
	assert.Equal(t, 2011, v.DefaultYear)
}

func TestFromReport(t *testing.T) {
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.FixedZone("CET", 3600))
	doc := FromReport(services.Report{
		Selection: services.Selection{Year: 1, Months: []core.MonthCode{6}},
		Records:   731,
		Total:     3292679,
	}, now)

	assert.Equal(t, 2012, doc.Year)
	assert.Equal(t, []int{6}, doc.Months)
	assert.Equal(t, 731, doc.Records)
	assert.Equal(t, time.UTC, doc.GeneratedAt.Location())
	assert.True(t, doc.GeneratedAt.Equal(now))
}
