package http

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"bikeshare/internal/chart"
	applog "bikeshare/internal/log"
)

const yAxisName = "Bike Rented"

func (s *Server) handleSeasonChart(w http.ResponseWriter, r *http.Request) {
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

	title := fmt.Sprintf("Bike Rentals by Season in %d", sel.Year.CalendarYear())
	s.writeChart(w, r, title, chart.SeasonBars(rep.Rows))
}

func (s *Server) handleMonthChart(w http.ResponseWriter, r *http.Request) {
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

	title := fmt.Sprintf("Bike Rentals by Month in %d", sel.Year.CalendarYear())
	s.writeChart(w, r, title, chart.MonthBars(rep.Rows))
}

func (s *Server) writeChart(w http.ResponseWriter, r *http.Request, title string, bars []chart.Bar) {
	var buf bytes.Buffer
	if err := chart.Render(&buf, title, yAxisName, bars); err != nil {
		s.fail(w, r, applog.OpRender, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.Header().Set("Cache-Control", "public, max-age=300")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}
