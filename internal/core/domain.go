package core

import (
	"errors"
	"fmt"
	"time"
)

const (
	Spring SeasonCode = 1
	Summer SeasonCode = 2
	Fall   SeasonCode = 3
	Winter SeasonCode = 4
)

// BaseYear is the calendar year encoded by YearCode 0.
const BaseYear = 2011

type (
	// SeasonCode is the dataset's season category (1-4).
	SeasonCode int

	// YearCode is the dataset's year category (0-1).
	YearCode int

	// MonthCode is a calendar month (1-12).
	MonthCode int

	Date struct {
		time.Time
	}

	// RentalRecord is one day of the source dataset. Records are never
	// mutated once loaded.
	RentalRecord struct {
		Date   Date
		Season SeasonCode
		Year   YearCode
		Month  MonthCode
		Count  int64
	}
)

var (
	ErrInvalidSeason = errors.New("invalid season")
	ErrInvalidYear   = errors.New("invalid year")
	ErrInvalidMonth  = errors.New("invalid month")
	ErrInvalidCount  = errors.New("invalid count")
)

var seasonLabels = [...]string{"Spring", "Summer", "Fall", "Winter"}

var monthLabels = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func (s SeasonCode) Validate() error {
	if s < Spring || s > Winter {
		return fmt.Errorf("%w: %d", ErrInvalidSeason, int(s))
	}
	return nil
}

// Label returns the season name, or the numeric code if out of range.
func (s SeasonCode) Label() string {
	if s.Validate() != nil {
		return fmt.Sprintf("Season %d", int(s))
	}
	return seasonLabels[s-1]
}

func (s SeasonCode) String() string { return s.Label() }

func (y YearCode) Validate() error {
	if y < 0 || y > 1 {
		return fmt.Errorf("%w: %d", ErrInvalidYear, int(y))
	}
	return nil
}

// CalendarYear maps the year code to the calendar year it represents.
func (y YearCode) CalendarYear() int {
	return BaseYear + int(y)
}

func (y YearCode) String() string {
	return fmt.Sprintf("%d", y.CalendarYear())
}

// YearCodeFor converts a calendar year (e.g. 2012) to its code.
func YearCodeFor(calendarYear int) (YearCode, error) {
	y := YearCode(calendarYear - BaseYear)
	if err := y.Validate(); err != nil {
		return 0, err
	}
	return y, nil
}

func (m MonthCode) Validate() error {
	if m < 1 || m > 12 {
		return fmt.Errorf("%w: %d", ErrInvalidMonth, int(m))
	}
	return nil
}

// Label returns the English month name, or the numeric code if out of range.
func (m MonthCode) Label() string {
	if m.Validate() != nil {
		return fmt.Sprintf("Month %d", int(m))
	}
	return monthLabels[m-1]
}

// Short returns the three-letter month abbreviation.
func (m MonthCode) Short() string {
	return m.Label()[:3]
}

func (m MonthCode) String() string { return m.Label() }

// AllMonths returns the twelve month codes in calendar order.
func AllMonths() []MonthCode {
	out := make([]MonthCode, 12)
	for i := range out {
		out[i] = MonthCode(i + 1)
	}
	return out
}

// AllSeasons returns the four season codes in order.
func AllSeasons() []SeasonCode {
	return []SeasonCode{Spring, Summer, Fall, Winter}
}

// NewDate creates a new Date from year, month, day
func NewDate(year, month, day int) Date {
	return Date{Time: time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses the dataset's YYYY-MM-DD day format.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Date{}, err
	}
	return Date{Time: t}, nil
}

func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format("2006-01-02")
}

func (r RentalRecord) Validate() error {
	if err := r.Season.Validate(); err != nil {
		return err
	}
	if err := r.Year.Validate(); err != nil {
		return err
	}
	if err := r.Month.Validate(); err != nil {
		return err
	}
	if r.Count < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCount, r.Count)
	}
	return nil
}
