package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"bikeshare/internal/core"
	applog "bikeshare/internal/log"
)

// RecordLoader supplies the full record set. *dataset.Loader satisfies it.
type RecordLoader interface {
	Load(ctx context.Context) ([]core.RentalRecord, error)
}

// Options lists the values offered by the year and month selectors.
// Both keep the order in which values first appear in the dataset.
type Options struct {
	Years       []core.YearCode
	Months      []core.MonthCode
	DefaultYear core.YearCode
}

// DefaultSelection is the first year with every month present in the
// dataset selected.
func (o Options) DefaultSelection() Selection {
	return Selection{Year: o.DefaultYear}
}

type SeasonReport struct {
	Year core.YearCode
	Rows []core.SeasonSummary
	// Max and Min are nil when Rows is empty.
	Max *core.SeasonSummary
	Min *core.SeasonSummary
}

type MonthReport struct {
	Selection Selection
	Rows      []core.MonthSummary
	Max       *core.MonthSummary
	Min       *core.MonthSummary
}

// Report bundles both views of one selection.
type Report struct {
	Selection Selection
	Seasons   SeasonReport
	Months    MonthReport
	Records   int
	Total     int64
}

type snapshot struct {
	records int
	total   int64
	options Options
	seasons []core.SeasonSummary
	months  []core.MonthSummary
}

// DashboardService runs the load, summarize, filter and extremes pipeline.
// Summaries are computed once per successfully loaded dataset.
type DashboardService struct {
	loader RecordLoader

	mu   sync.Mutex
	snap *snapshot
}

func NewDashboardService(loader RecordLoader) *DashboardService {
	return &DashboardService{loader: loader}
}

func (s *DashboardService) current(ctx context.Context) (*snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.snap != nil {
		return s.snap, nil
	}

	records, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, core.Unavailable("dataset", errors.New("no records"))
	}

	years := Years(records)
	snap := &snapshot{
		records: len(records),
		total:   TotalCount(records),
		options: Options{Years: years, Months: Months(records), DefaultYear: years[0]},
		seasons: SummarizeBySeason(records),
		months:  SummarizeByMonth(records),
	}
	slog.DebugContext(ctx, "Summaries computed",
		applog.FieldComponent, applog.ComponentAggregate,
		applog.FieldOperation, applog.OpSummary,
		"records", snap.records,
		"season_rows", len(snap.seasons),
		"month_rows", len(snap.months))

	s.snap = snap
	return snap, nil
}

// Options returns the selector values for the loaded dataset.
func (s *DashboardService) Options(ctx context.Context) (Options, error) {
	snap, err := s.current(ctx)
	if err != nil {
		return Options{}, err
	}
	return snap.options, nil
}

// SeasonReport returns the season totals of the selected year. Months in
// the selection do not restrict the season view.
func (s *DashboardService) SeasonReport(ctx context.Context, sel Selection) (SeasonReport, error) {
	if err := sel.Validate(); err != nil {
		return SeasonReport{}, err
	}
	snap, err := s.current(ctx)
	if err != nil {
		return SeasonReport{}, err
	}

	report := SeasonReport{Year: sel.Year, Rows: FilterSeasons(snap.seasons, sel.Year)}
	hi, lo, err := Extremes(report.Rows)
	switch {
	case errors.Is(err, core.ErrEmptySelection):
	case err != nil:
		return SeasonReport{}, fmt.Errorf("season extremes: %w", err)
	default:
		report.Max, report.Min = &hi, &lo
	}
	return report, nil
}

// MonthReport returns the month totals matching the selection. An empty
// month list stands for the months present in the dataset, not all twelve.
func (s *DashboardService) MonthReport(ctx context.Context, sel Selection) (MonthReport, error) {
	if err := sel.Validate(); err != nil {
		return MonthReport{}, err
	}
	snap, err := s.current(ctx)
	if err != nil {
		return MonthReport{}, err
	}

	filter := sel
	if len(filter.Months) == 0 {
		filter.Months = snap.options.Months
	}

	report := MonthReport{Selection: sel, Rows: FilterMonths(snap.months, filter)}
	hi, lo, err := Extremes(report.Rows)
	switch {
	case errors.Is(err, core.ErrEmptySelection):
	case err != nil:
		return MonthReport{}, fmt.Errorf("month extremes: %w", err)
	default:
		report.Max, report.Min = &hi, &lo
	}
	return report, nil
}

// Report builds both views for sel.
func (s *DashboardService) Report(ctx context.Context, sel Selection) (Report, error) {
	seasons, err := s.SeasonReport(ctx, sel)
	if err != nil {
		return Report{}, err
	}
	months, err := s.MonthReport(ctx, sel)
	if err != nil {
		return Report{}, err
	}

	snap, err := s.current(ctx)
	if err != nil {
		return Report{}, err
	}
	return Report{
		Selection: sel,
		Seasons:   seasons,
		Months:    months,
		Records:   snap.records,
		Total:     snap.total,
	}, nil
}
