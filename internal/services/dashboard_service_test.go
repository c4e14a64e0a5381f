package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/core"
	"bikeshare/internal/dataset"
)

type stubLoader struct {
	calls   int32
	records []core.RentalRecord
	err     error
}

func (s *stubLoader) Load(context.Context) ([]core.RentalRecord, error) {
	atomic.AddInt32(&s.calls, 1)
	return s.records, s.err
}

func TestDashboardOptions(t *testing.T) {
	svc := NewDashboardService(&stubLoader{records: dataset.SampleRecords()})

	opts, err := svc.Options(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []core.YearCode{0, 1}, opts.Years)
	assert.Equal(t, core.AllMonths(), opts.Months)
	assert.Equal(t, core.YearCode(0), opts.DefaultYear)
	assert.Equal(t, Selection{Year: 0}, opts.DefaultSelection())
}

func TestDashboardSeasonReport(t *testing.T) {
	svc := NewDashboardService(&stubLoader{records: []core.RentalRecord{
		rec(core.Fall, 1, 7, 500),
		rec(core.Fall, 1, 8, 300),
		rec(core.Spring, 1, 1, 100),
	}})

	report, err := svc.SeasonReport(context.Background(), Selection{Year: 1})
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	require.NotNil(t, report.Max)
	assert.Equal(t, core.Fall, report.Max.Season)
	assert.Equal(t, int64(800), report.Max.Total)
	assert.Equal(t, core.Spring, report.Min.Season)
}

func TestDashboardUnknownYearHasNoExtremes(t *testing.T) {
	svc := NewDashboardService(&stubLoader{records: []core.RentalRecord{rec(core.Spring, 0, 1, 5)}})

	seasons, err := svc.SeasonReport(context.Background(), Selection{Year: 1})
	require.NoError(t, err)
	assert.Empty(t, seasons.Rows)
	assert.Nil(t, seasons.Max)
	assert.Nil(t, seasons.Min)

	months, err := svc.MonthReport(context.Background(), Selection{Year: 1})
	require.NoError(t, err)
	assert.Empty(t, months.Rows)
	assert.Nil(t, months.Max)
}

func TestDashboardMonthReport(t *testing.T) {
	svc := NewDashboardService(&stubLoader{records: dataset.SampleRecords()})

	report, err := svc.MonthReport(context.Background(), Selection{Year: 1, Months: []core.MonthCode{1, 6}})
	require.NoError(t, err)
	require.Len(t, report.Rows, 2)
	assert.Equal(t, core.MonthCode(6), report.Max.Month)
	assert.Equal(t, core.MonthCode(1), report.Min.Month)
	// 2*(2000+600) + 1 + 2
	assert.Equal(t, int64(5203), report.Max.Total)
}

func TestDashboardEmptyMonthSelectionUsesPresentMonths(t *testing.T) {
	records := []core.RentalRecord{
		rec(core.Spring, 0, 1, 10),
		rec(core.Summer, 0, 6, 20),
	}
	svc := NewDashboardService(&stubLoader{records: records})
	ctx := context.Background()

	all, err := svc.MonthReport(ctx, Selection{Year: 0})
	require.NoError(t, err)
	explicit, err := svc.MonthReport(ctx, Selection{Year: 0, Months: Months(records)})
	require.NoError(t, err)

	assert.Equal(t, explicit.Rows, all.Rows)
	require.Len(t, all.Rows, 2)
	assert.Equal(t, core.MonthCode(1), all.Min.Month)
	assert.Equal(t, int64(10), all.Min.Total)
	assert.Equal(t, core.MonthCode(6), all.Max.Month)
	assert.Empty(t, all.Selection.Months)

	// An explicitly chosen month without records still gets a zero row.
	feb, err := svc.MonthReport(ctx, Selection{Year: 0, Months: []core.MonthCode{2}})
	require.NoError(t, err)
	require.Len(t, feb.Rows, 1)
	assert.Equal(t, int64(0), feb.Rows[0].Total)
}

func TestDashboardRejectsInvalidSelection(t *testing.T) {
	loader := &stubLoader{records: dataset.SampleRecords()}
	svc := NewDashboardService(loader)

	_, err := svc.MonthReport(context.Background(), Selection{Year: 0, Months: []core.MonthCode{13}})
	assert.ErrorIs(t, err, core.ErrInvalidMonth)
	_, err = svc.SeasonReport(context.Background(), Selection{Year: 5})
	assert.ErrorIs(t, err, core.ErrInvalidYear)
	assert.Equal(t, int32(0), atomic.LoadInt32(&loader.calls))
}

func TestDashboardComputesOnce(t *testing.T) {
	loader := &stubLoader{records: dataset.SampleRecords()}
	svc := NewDashboardService(loader)

	for i := 0; i < 3; i++ {
		_, err := svc.Report(context.Background(), Selection{Year: 0})
		require.NoError(t, err)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&loader.calls))
}

func TestDashboardReport(t *testing.T) {
	records := dataset.SampleRecords()
	svc := NewDashboardService(&stubLoader{records: records})

	report, err := svc.Report(context.Background(), Selection{Year: 0})
	require.NoError(t, err)
	assert.Equal(t, len(records), report.Records)
	assert.Equal(t, TotalCount(records), report.Total)
	assert.Len(t, report.Seasons.Rows, 4)
	assert.Len(t, report.Months.Rows, 12)
}

func TestDashboardPropagatesLoadFailure(t *testing.T) {
	loader := &stubLoader{err: core.Unavailable("day.csv", errors.New("no such file"))}
	svc := NewDashboardService(loader)

	_, err := svc.Options(context.Background())
	assert.True(t, core.IsDataUnavailable(err))

	loader.err = nil
	loader.records = dataset.SampleRecords()
	_, err = svc.Options(context.Background())
	assert.NoError(t, err, "failed loads are not cached")
}

func TestDashboardEmptyDataset(t *testing.T) {
	svc := NewDashboardService(&stubLoader{records: []core.RentalRecord{}})
	_, err := svc.Options(context.Background())
	assert.True(t, core.IsDataUnavailable(err))
}
