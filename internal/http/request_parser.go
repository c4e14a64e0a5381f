package http

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"bikeshare/internal/core"
	"bikeshare/internal/services"
)

// ParamError reports an unusable query parameter.
type ParamError struct {
	Param string
	Value string
	Err   error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("invalid %s %q: %v", e.Param, e.Value, e.Err)
}

func (e *ParamError) Unwrap() error { return e.Err }

// ParseSelection reads the year and month filters from a query string.
//
// year is a calendar year (2011, 2012); when absent defaultYear is used.
// month may be repeated or comma separated; no months means all months.
func ParseSelection(query url.Values, defaultYear core.YearCode) (services.Selection, error) {
	sel := services.Selection{Year: defaultYear}

	if v := strings.TrimSpace(query.Get("year")); v != "" {
		y, err := strconv.Atoi(v)
		if err != nil {
			return services.Selection{}, &ParamError{Param: "year", Value: v, Err: err}
		}
		code, err := core.YearCodeFor(y)
		if err != nil {
			return services.Selection{}, &ParamError{Param: "year", Value: v, Err: err}
		}
		sel.Year = code
	}

	seen := make(map[core.MonthCode]bool)
	for _, raw := range query["month"] {
		for _, part := range strings.Split(raw, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			m, err := strconv.Atoi(part)
			if err != nil {
				return services.Selection{}, &ParamError{Param: "month", Value: part, Err: err}
			}
			month := core.MonthCode(m)
			if err := month.Validate(); err != nil {
				return services.Selection{}, &ParamError{Param: "month", Value: part, Err: err}
			}
			if !seen[month] {
				seen[month] = true
				sel.Months = append(sel.Months, month)
			}
		}
	}

	return sel, nil
}

// SelectionQuery encodes sel back into query parameters.
func SelectionQuery(sel services.Selection) url.Values {
	q := url.Values{}
	q.Set("year", strconv.Itoa(sel.Year.CalendarYear()))
	for _, m := range sel.Months {
		q.Add("month", strconv.Itoa(int(m)))
	}
	return q
}
