package http

import (
	"net/http"

	applog "bikeshare/internal/log"
	"bikeshare/internal/report"
)

func (s *Server) handleOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := s.dashboard.Options(r.Context())
	if err != nil {
		s.fail(w, r, applog.OpLoad, err)
		return
	}
	NewJSONResponse().Body(report.FromOptions(opts)).Write(w)
}

// handleSeasons returns the season totals of the selected year.
func (s *Server) handleSeasons(w http.ResponseWriter, r *http.Request) {
	sel, err := s.parseSelection(r)
	if err != nil {
		s.fail(w, r, applog.OpFilter, err)
		return
	}

	rep, err := s.dashboard.SeasonReport(r.Context(), sel)
	if err != nil {
		s.fail(w, r, applog.OpSummary, err)
		return
	}
	NewJSONResponse().Body(report.FromSeasonReport(rep)).Write(w)
}

// handleMonths returns the month totals of the selected year and months.
func (s *Server) handleMonths(w http.ResponseWriter, r *http.Request) {
	sel, err := s.parseSelection(r)
	if err != nil {
		s.fail(w, r, applog.OpFilter, err)
		return
	}

	rep, err := s.dashboard.MonthReport(r.Context(), sel)
	if err != nil {
		s.fail(w, r, applog.OpSummary, err)
		return
	}

	fields := applog.NewFields().WithSelection(sel.Year, sel.Months).WithOperation(applog.OpFilter)
	fields[applog.FieldRows] = len(rep.Rows)
	applog.FromContext(r.Context()).DebugContext(r.Context(), "Month report built", fields.ToSlice()...)

	NewJSONResponse().Body(report.FromMonthReport(rep)).Write(w)
}
