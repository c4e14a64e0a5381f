package http

import (
	"net/http"
	"strings"
	"time"

	applog "bikeshare/internal/log"
	"bikeshare/internal/services"
)

// handleHealth performs basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	NewJSONResponse().Body(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startTime).String(),
	}).Write(w)
}

// handleReady reports ready once templates are parsed and the dataset is loaded.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	status := "ready"
	httpStatus := http.StatusOK
	checks := make(map[string]string)

	if s.templates == nil {
		checks["templates"] = "failed: templates not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["templates"] = "ok"
	}

	if s.ready != nil && !s.ready() {
		checks["dataset"] = "not loaded"
		status = "not_ready"
		httpStatus = http.StatusServiceUnavailable
	} else {
		checks["dataset"] = "ok"
	}

	NewJSONResponse().Status(httpStatus).Body(map[string]interface{}{
		"status":    status,
		"checks":    checks,
		"timestamp": time.Now().Format(time.RFC3339),
	}).Write(w)
}

// parseSelection reads the filters of r. The dataset is only consulted for
// the default year when the request does not name one.
func (s *Server) parseSelection(r *http.Request) (services.Selection, error) {
	q := r.URL.Query()
	if strings.TrimSpace(q.Get("year")) != "" {
		return ParseSelection(q, 0)
	}
	opts, err := s.dashboard.Options(r.Context())
	if err != nil {
		return services.Selection{}, err
	}
	return ParseSelection(q, opts.DefaultYear)
}

// fail writes the JSON error for err, logging server-side failures.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.structured.LogError(r.Context(), "Request failed", err, applog.ComponentHTTP, op,
			applog.NewFields().WithRequestID(w.Header().Get("X-Request-ID")))
	}

	resp := ErrorResponse(status, publicMessage(status, err))
	if status == http.StatusServiceUnavailable {
		resp.Header("Retry-After", "30")
	}
	resp.Write(w)
}
