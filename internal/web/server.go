// Package web serves the HTML front end. It renders the same pages as the
// TUI from the same accessors and page state machine.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/five82/motostats/internal/api"
	"github.com/five82/motostats/internal/site"
	"github.com/five82/motostats/internal/state"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// DefaultRequestTimeout bounds a single page request.
const DefaultRequestTimeout = 30 * time.Second

var pageNames = []string{"home", "riders", "races", "rider", "standings"}

// Options configures the HTML front end.
type Options struct {
	Fetcher        api.Fetcher
	Logger         *zap.Logger
	RequestTimeout time.Duration

	// ShowErrorDetail appends the backend's detail text to failure messages.
	ShowErrorDetail bool
}

// Server renders the site pages.
type Server struct {
	fetcher  api.Fetcher
	logger   *zap.Logger
	timeout  time.Duration
	pages    map[string]*template.Template
	pageOpts []state.PageOption
}

// New parses the embedded templates and returns a Server.
func New(opts Options) (*Server, error) {
	if opts.Fetcher == nil {
		return nil, fmt.Errorf("web: fetcher is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	timeout := opts.RequestTimeout
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		t, err := template.ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		pages[name] = t
	}

	s := &Server{
		fetcher: opts.Fetcher,
		logger:  logger,
		timeout: timeout,
		pages:   pages,
	}
	if opts.ShowErrorDetail {
		s.pageOpts = append(s.pageOpts, state.WithDetail(api.Detail))
	}
	return s, nil
}

// Handler returns the router with all routes and middleware mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(forwardRequestID)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(s.timeout))

	static, _ := fs.Sub(staticFS, "static")
	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	r.Get("/healthz", healthz)
	r.Get("/", s.home)
	r.Get("/riders", s.riders)
	r.Get("/riders/{id}", s.rider)
	r.Get("/races", s.races)
	r.Get("/standings", s.standings)
	return r
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// requestLogger logs one line per request through zap.
func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("remote", r.RemoteAddr),
				zap.String("request_id", middleware.GetReqID(r.Context())),
			)
		})
	}
}

// forwardRequestID hands chi's request id to the api client so backend calls
// carry the same X-Request-ID.
func forwardRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := middleware.GetReqID(r.Context()); id != "" {
			r = r.WithContext(api.ContextWithRequestID(r.Context(), id))
		}
		next.ServeHTTP(w, r)
	})
}

type layout struct {
	Title  string
	Brand  string
	Icon   string
	Footer string
	Nav    []site.NavItem
	Active site.Page
	Body   any
}

// render executes the page into a buffer first so a template error never
// leaves a half-written response.
func (s *Server) render(w http.ResponseWriter, status int, name, title string, active site.Page, body any) {
	var buf bytes.Buffer
	err := s.pages[name].ExecuteTemplate(&buf, "layout", layout{
		Title:  title,
		Brand:  site.BrandName,
		Icon:   site.BrandIcon,
		Footer: site.Footer,
		Nav:    site.Nav,
		Active: active,
		Body:   body,
	})
	if err != nil {
		s.logger.Error("render template", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
