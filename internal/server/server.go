// Package server serves karyotype renderings over HTTP.
//
// Routes:
//
//	GET /                  HTML page with mode buttons (?dataset=&mode=all,nrph)
//	GET /karyotype.svg     one SVG (?dataset=&mode=giesma)
//	GET /summary           JSON report (?dataset=)
//	GET /datasets          names available from the source
//	GET /healthz           liveness
//
// Datasets are loaded by name through the runner's source. Responses carry
// an ETag; rendered output is deterministic, so repeat requests revalidate
// with 304.
package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/karyoview/karyoview/pkg/buildinfo"
	"github.com/karyoview/karyoview/pkg/errors"
	"github.com/karyoview/karyoview/pkg/httputil"
	"github.com/karyoview/karyoview/pkg/karyotype"
	"github.com/karyoview/karyoview/pkg/pipeline"
)

const (
	requestTimeout  = 30 * time.Second
	shutdownTimeout = 5 * time.Second
)

// Config configures a Server.
type Config struct {
	Runner *pipeline.Runner

	// Base carries the drawing options applied to every request: geometry,
	// legend colors and title, and cache TTL. Its input fields are ignored.
	Base pipeline.Options

	// DefaultDataset is used when a request has no dataset parameter.
	DefaultDataset string

	// MaxAge sets Cache-Control on artifacts; zero omits the header.
	MaxAge time.Duration

	Logger *log.Logger
}

// Server is the HTTP front end of a pipeline runner.
type Server struct {
	cfg    Config
	logger *log.Logger
}

// New creates a server. A nil logger means log.Default().
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}
	cfg.Base.Dataset, cfg.Base.Path, cfg.Base.Name = nil, "", ""
	return &Server{cfg: cfg, logger: logger}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(requestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/datasets", s.handleDatasets)
	r.Get("/", s.handlePage)
	r.Get("/karyotype.svg", s.handleSVG)
	r.Get("/summary", s.handleSummary)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteError(w, s.logger, errors.New(errors.ErrCodeNotFound, "no route %s", r.URL.Path))
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"version": buildinfo.Version,
	})
}

func (s *Server) handleDatasets(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Runner.Source == nil {
		httputil.WriteError(w, s.logger, errors.New(errors.ErrCodeUnsupported, "no dataset source configured"))
		return
	}
	names, err := s.cfg.Runner.Source.List(r.Context())
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	if names == nil {
		names = []string{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string][]string{"datasets": names})
}

func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	modes, err := parseModes(r, karyotype.Modes)
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	s.serve(w, r, modes, pipeline.FormatHTML, "", "text/html; charset=utf-8")
}

func (s *Server) handleSVG(w http.ResponseWriter, r *http.Request) {
	m := karyotype.ModeAll
	if q := r.URL.Query().Get("mode"); q != "" {
		var err error
		if m, err = karyotype.ParseMode(q); err != nil {
			httputil.WriteError(w, s.logger, err)
			return
		}
	}
	s.serve(w, r, []karyotype.Mode{m}, pipeline.FormatSVG, m, "image/svg+xml")
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	modes, err := parseModes(r, karyotype.Modes)
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	s.serve(w, r, modes, pipeline.FormatJSON, "", "application/json")
}

// serve runs the pipeline for one format and writes the artifact. mode
// names the artifact of per-mode formats.
func (s *Server) serve(w http.ResponseWriter, r *http.Request, modes []karyotype.Mode, format string, mode karyotype.Mode, contentType string) {
	name := r.URL.Query().Get("dataset")
	if name == "" {
		name = s.cfg.DefaultDataset
	}
	if name == "" {
		httputil.WriteError(w, s.logger, errors.New(errors.ErrCodeInvalidInput, "dataset query parameter is required"))
		return
	}

	opts := s.cfg.Base
	opts.Name = name
	opts.Modes = modes
	opts.Formats = []string{format}
	opts.Logger = s.logger

	result, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		httputil.WriteError(w, s.logger, err)
		return
	}
	if format == pipeline.FormatSVG {
		w.Header().Set("X-Karyotype-Mode", string(result.Effective[mode]))
	}
	httputil.WriteArtifact(w, r, contentType, result.Artifacts[pipeline.ArtifactName(mode, format)], s.cfg.MaxAge)
}

// parseModes reads the comma-separated mode parameter, or def when absent.
func parseModes(r *http.Request, def []karyotype.Mode) ([]karyotype.Mode, error) {
	q := strings.TrimSpace(r.URL.Query().Get("mode"))
	if q == "" {
		return append([]karyotype.Mode(nil), def...), nil
	}
	return karyotype.ParseModes(q)
}

// logRequests logs one line per request at info level, or warn for
// responses of 400 and above.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		fields := []any{
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", middleware.GetReqID(r.Context()),
		}
		if status >= http.StatusBadRequest {
			s.logger.Warn("request", fields...)
		} else {
			s.logger.Info("request", fields...)
		}
	})
}
