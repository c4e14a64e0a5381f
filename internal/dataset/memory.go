package dataset

import (
	"context"
	"fmt"

	"bikeshare/internal/core"
)

// MemorySource serves a fixed record set. It backs tests and the "memory"
// backend used for local development.
type MemorySource struct {
	name    string
	records []core.RentalRecord
}

var _ Source = (*MemorySource)(nil)

func NewMemorySource(name string, records []core.RentalRecord) *MemorySource {
	return &MemorySource{name: name, records: append([]core.RentalRecord(nil), records...)}
}

func (s *MemorySource) Load(_ context.Context) ([]core.RentalRecord, error) {
	for i, r := range s.records {
		if err := r.Validate(); err != nil {
			return nil, &core.MalformedRowError{Line: i + 1, Err: err}
		}
	}
	return append([]core.RentalRecord(nil), s.records...), nil
}

func (s *MemorySource) Backend() string { return "memory" }

func (s *MemorySource) Location() string { return fmt.Sprintf("mem:%s", s.name) }

// SampleRecords returns a small two-year dataset covering every season.
func SampleRecords() []core.RentalRecord {
	var out []core.RentalRecord
	for y := core.YearCode(0); y <= 1; y++ {
		for m := 1; m <= 12; m++ {
			season := core.SeasonCode((m%12)/3 + 1)
			for d := 1; d <= 2; d++ {
				out = append(out, core.RentalRecord{
					Date:   core.NewDate(y.CalendarYear(), m, d),
					Season: season,
					Year:   y,
					Month:  core.MonthCode(m),
					Count:  int64(1000*(int(y)+1) + 100*m + d),
				})
			}
		}
	}
	return out
}
