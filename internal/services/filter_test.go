package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/core"
	"bikeshare/internal/dataset"
)

func TestFilterSeasons(t *testing.T) {
	rows := SummarizeBySeason(dataset.SampleRecords())

	got := FilterSeasons(rows, 1)
	require.Len(t, got, 4)
	for _, r := range got {
		assert.Equal(t, core.YearCode(1), r.Year)
	}
}

func TestFilterUnknownYearIsEmpty(t *testing.T) {
	records := []core.RentalRecord{rec(core.Spring, 0, 1, 5)}

	seasons := FilterSeasons(SummarizeBySeason(records), 1)
	assert.NotNil(t, seasons)
	assert.Empty(t, seasons)

	months := FilterMonths(SummarizeByMonth(records), Selection{Year: 1})
	assert.NotNil(t, months)
	assert.Empty(t, months)
}

func TestEmptyMonthSelectionMatchesAllMonths(t *testing.T) {
	records := dataset.SampleRecords()
	rows := SummarizeByMonth(records)

	all := FilterMonths(rows, Selection{Year: 0, Months: Months(records)})
	none := FilterMonths(rows, Selection{Year: 0})
	assert.Equal(t, all, none)
	assert.Len(t, none, 12)
}

func TestFilterMonthsRestricts(t *testing.T) {
	rows := SummarizeByMonth(dataset.SampleRecords())

	got := FilterMonths(rows, Selection{Year: 1, Months: []core.MonthCode{12, 2}})
	require.Len(t, got, 2)
	assert.Equal(t, core.MonthCode(2), got[0].Month)
	assert.Equal(t, core.MonthCode(12), got[1].Month)
}

func TestSelectionValidate(t *testing.T) {
	tests := []struct {
		name    string
		sel     Selection
		wantErr error
	}{
		{"valid", Selection{Year: 1, Months: []core.MonthCode{1, 12}}, nil},
		{"no months", Selection{Year: 0}, nil},
		{"bad year", Selection{Year: 2}, core.ErrInvalidYear},
		{"bad month", Selection{Year: 0, Months: []core.MonthCode{0}}, core.ErrInvalidMonth},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sel.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExtremesEmpty(t *testing.T) {
	_, _, err := Extremes([]core.MonthSummary{})
	assert.ErrorIs(t, err, core.ErrEmptySelection)
}

func TestExtremesTiesGoToFirst(t *testing.T) {
	rows := []core.MonthSummary{
		{Month: 3, Year: 0, Total: 50},
		{Month: 4, Year: 0, Total: 10},
		{Month: 5, Year: 0, Total: 50},
		{Month: 6, Year: 0, Total: 10},
	}
	hi, lo, err := Extremes(rows)
	require.NoError(t, err)
	assert.Equal(t, core.MonthCode(3), hi.Month)
	assert.Equal(t, core.MonthCode(4), lo.Month)
}
