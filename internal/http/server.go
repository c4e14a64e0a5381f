package http

import (
	"context"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	applog "bikeshare/internal/log"
	"bikeshare/internal/services"
	appweb "bikeshare/web"
)

// Dashboard is the analytical surface the server renders.
// *services.DashboardService satisfies it.
type Dashboard interface {
	Options(ctx context.Context) (services.Options, error)
	SeasonReport(ctx context.Context, sel services.Selection) (services.SeasonReport, error)
	MonthReport(ctx context.Context, sel services.Selection) (services.MonthReport, error)
}

// Options configures a Server.
type Options struct {
	// RequestTimeout bounds every dashboard request. Zero disables it.
	RequestTimeout time.Duration
	// Ready reports whether the dataset has been loaded. Nil means always ready.
	Ready  func() bool
	Logger *applog.Logger
}

type Server struct {
	http.Server
	templates      *template.Template
	dashboard      Dashboard
	ready          func() bool
	requestTimeout time.Duration
	logger         *applog.Logger
	structured     *applog.StructuredLogger
	startTime      time.Time

	shutdownOnce sync.Once
}

// NewServer configures routes and templates, returning a ready-to-run http.Server.
func NewServer(addr string, dash Dashboard, opts Options) *Server {
	mux := http.NewServeMux()

	logger := opts.Logger
	if logger == nil {
		logger = applog.Default()
	}
	logger = logger.WithComponent(applog.ComponentHTTP)

	s := &Server{
		Server: http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
		},
		dashboard:      dash,
		ready:          opts.Ready,
		requestTimeout: opts.RequestTimeout,
		logger:         logger,
		structured:     applog.NewStructuredLogger(logger),
		startTime:      time.Now(),
	}

	// Parse embedded templates at startup.
	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		slog.Warn("Failed parsing templates", "error", err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("GET /{$}", s.withSecurityHeaders("/", s.handleIndex))
	mux.HandleFunc("GET /api/options", s.withSecurityHeaders("/api/options", s.handleOptions))
	mux.HandleFunc("GET /api/seasons", s.withSecurityHeaders("/api/seasons", s.handleSeasons))
	mux.HandleFunc("GET /api/months", s.withSecurityHeaders("/api/months", s.handleMonths))
	mux.HandleFunc("GET /charts/seasons.png", s.withSecurityHeaders("/charts/seasons.png", s.handleSeasonChart))
	mux.HandleFunc("GET /charts/months.png", s.withSecurityHeaders("/charts/months.png", s.handleMonthChart))
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	s.Handler = applog.Middleware(logger)(mux)

	return s
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
