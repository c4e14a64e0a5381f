package dataset

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/core"
)

var dayHeader = []string{"instant", "dteday", "season", "yr", "mnth", "holiday", "cnt"}

func TestParseTable(t *testing.T) {
	rows := [][]string{
		{"1", "2011-01-01", "1", "0", "1", "0", "985"},
		{"", "", "", "", "", "", ""},
		{"2", "2011-01-02", "1", "0", "1", "0", "801"},
	}

	recs, err := ParseTable(dayHeader, rows, 2)
	require.NoError(t, err)
	require.Len(t, recs, 2)
	assert.Equal(t, core.RentalRecord{
		Date: core.NewDate(2011, 1, 1), Season: core.Spring, Year: 0, Month: 1, Count: 985,
	}, recs[0])
	assert.Equal(t, int64(801), recs[1].Count)
}

func TestParseTableHeaderIsCaseInsensitive(t *testing.T) {
	header := []string{"\ufeffSeason", " YR ", "Mnth", "CNT"}
	recs, err := ParseTable(header, [][]string{{"3", "1", "7", "8.0"}}, 2)
	require.NoError(t, err)
	require.Len(t, recs, 1)
	assert.Equal(t, core.Fall, recs[0].Season)
	assert.Equal(t, int64(8), recs[0].Count)
	assert.True(t, recs[0].Date.IsZero())
}

func TestParseTableMissingColumns(t *testing.T) {
	_, err := ParseTable([]string{"season", "yr"}, nil, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingColumn))
	assert.Contains(t, err.Error(), "mnth, cnt")
}

func TestParseTableMalformedRows(t *testing.T) {
	cases := []struct {
		name   string
		row    []string
		column string
	}{
		{"non numeric count", []string{"1", "2011-01-01", "1", "0", "1", "0", "many"}, ColCount},
		{"bad date", []string{"1", "01/01/2011", "1", "0", "1", "0", "5"}, ColDate},
		{"short row", []string{"1", "2011-01-01", "1"}, ColYear},
		{"season out of range", []string{"1", "2011-01-01", "7", "0", "1", "0", "5"}, ""},
		{"negative count", []string{"1", "2011-01-01", "1", "0", "1", "0", "-3"}, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseTable(dayHeader, [][]string{tc.row}, 5)
			var mr *core.MalformedRowError
			require.True(t, errors.As(err, &mr), "got %v", err)
			assert.Equal(t, 5, mr.Line)
			assert.Equal(t, tc.column, mr.Column)
		})
	}
}
