package http

import (
	"bytes"
	"html/template"
	"net/http"

	applog "bikeshare/internal/log"
	"bikeshare/internal/report"
	"bikeshare/internal/services"
)

type yearOption struct {
	Value    int
	Selected bool
}

type monthOption struct {
	Value    int
	Label    string
	Selected bool
}

type dashboardPage struct {
	Years          []yearOption
	Months         []monthOption
	Year           int
	Seasons        report.SeasonView
	Monthly        report.MonthView
	SeasonChartURL template.URL
	MonthChartURL  template.URL
}

// handleIndex renders the dashboard for the selection in the query string.
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if s.templates == nil {
		s.logger.ErrorContext(r.Context(), "Templates not loaded", applog.FieldPath, r.URL.Path)
		http.Error(w, "templates not loaded", http.StatusInternalServerError)
		return
	}

	opts, err := s.dashboard.Options(r.Context())
	if err != nil {
		s.failPage(w, r, err)
		return
	}
	sel, err := ParseSelection(r.URL.Query(), opts.DefaultYear)
	if err != nil {
		s.failPage(w, r, err)
		return
	}

	seasons, err := s.dashboard.SeasonReport(r.Context(), sel)
	if err != nil {
		s.failPage(w, r, err)
		return
	}
	months, err := s.dashboard.MonthReport(r.Context(), sel)
	if err != nil {
		s.failPage(w, r, err)
		return
	}

	query := SelectionQuery(sel).Encode()
	page := dashboardPage{
		Years:          yearOptions(opts, sel),
		Months:         monthOptions(opts, sel),
		Year:           sel.Year.CalendarYear(),
		Seasons:        report.FromSeasonReport(seasons),
		Monthly:        report.FromMonthReport(months),
		SeasonChartURL: template.URL("/charts/seasons.png?" + query),
		MonthChartURL:  template.URL("/charts/months.png?" + query),
	}

	// Render to a buffer so a template error does not leave a half-written page.
	var buf bytes.Buffer
	if err := s.templates.ExecuteTemplate(&buf, "dashboard.html", page); err != nil {
		s.logger.ErrorContext(r.Context(), "Dashboard template execution failed", applog.FieldError, err.Error())
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) failPage(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.structured.LogError(r.Context(), "Dashboard render failed", err, applog.ComponentHTTP, applog.OpRender, nil)
	}
	http.Error(w, publicMessage(status, err), status)
}

func yearOptions(opts services.Options, sel services.Selection) []yearOption {
	out := make([]yearOption, len(opts.Years))
	for i, y := range opts.Years {
		out[i] = yearOption{Value: y.CalendarYear(), Selected: y == sel.Year}
	}
	return out
}

// monthOptions marks every month selected when the selection names none.
func monthOptions(opts services.Options, sel services.Selection) []monthOption {
	out := make([]monthOption, len(opts.Months))
	for i, m := range opts.Months {
		out[i] = monthOption{
			Value:    int(m),
			Label:    m.Label(),
			Selected: sel.Includes(m),
		}
	}
	return out
}
