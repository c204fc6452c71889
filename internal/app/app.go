package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/five82/motostats/internal/api"
	"github.com/five82/motostats/internal/config"
	"github.com/five82/motostats/internal/logging"
	"github.com/five82/motostats/internal/prefs"
	"github.com/five82/motostats/internal/ui"
	"github.com/five82/motostats/internal/web"
)

const shutdownTimeout = 15 * time.Second

// Options configure the motostats application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/motostats/prefs.toml
	Overrides  config.Overrides
}

// LogSink selects where the runtime logger writes.
type LogSink int

const (
	// LogToFile writes JSON lines to the configured log file.
	LogToFile LogSink = iota
	// LogToStderr writes console lines to stderr.
	LogToStderr
)

// Runtime holds the wired dependencies shared by every command.
type Runtime struct {
	Config config.Config
	Logger *zap.Logger
	Client *api.Client
}

// Open loads .env and the configuration, applies the overrides, and builds
// the logger and API client.
func Open(opts Options, sink LogSink) (*Runtime, error) {
	cfg, err := LoadConfig(opts)
	if err != nil {
		return nil, err
	}

	var logger *zap.Logger
	switch sink {
	case LogToStderr:
		logger, err = logging.Stderr(cfg.Level())
	default:
		logger, err = logging.File(cfg.LogFile, cfg.Level())
	}
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	client, err := NewClient(cfg, logger)
	if err != nil {
		_ = logger.Sync()
		return nil, fmt.Errorf("init api client: %w", err)
	}
	return &Runtime{Config: cfg, Logger: logger, Client: client}, nil
}

// Close flushes the logger.
func (r *Runtime) Close() {
	_ = r.Logger.Sync()
}

// LoadConfig resolves configuration in order: defaults, file, .env and
// environment, then command-line overrides.
func LoadConfig(opts Options) (config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return config.Config{}, err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return config.Config{}, fmt.Errorf("load config: %w", err)
	}
	cfg = cfg.Apply(opts.Overrides)
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// NewClient builds the API client with failure logging and, when enabled,
// request ids.
func NewClient(cfg config.Config, logger *zap.Logger) (*api.Client, error) {
	opts := api.Options{
		BaseURL:              cfg.APIURL,
		Timeout:              cfg.Timeout,
		ResponseInterceptors: []api.ResponseInterceptor{api.LoggingInterceptor(logger)},
	}
	if cfg.RequestIDs {
		opts.RequestInterceptors = []api.RequestInterceptor{api.WithRequestID()}
	}
	return api.New(opts)
}

// RunTUI boots the terminal UI until the user quits or ctx is cancelled.
func RunTUI(ctx context.Context, opts Options) error {
	rt, err := Open(opts, LogToFile)
	if err != nil {
		return err
	}
	defer rt.Close()

	userPrefs := loadPrefs(opts.PrefsPath, rt.Logger)
	rt.Logger.Info("starting tui",
		zap.String("api_url", rt.Client.BaseURL()),
		zap.Duration("timeout", rt.Client.Timeout()),
		zap.String("theme", userPrefs.Theme),
		zap.String("last_view", userPrefs.LastView),
	)

	return ui.Run(ui.Options{
		Context:         ctx,
		Fetcher:         rt.Client,
		Logger:          rt.Logger,
		APIURL:          rt.Client.BaseURL(),
		ThemeName:       userPrefs.Theme,
		PrefsPath:       opts.PrefsPath,
		StartView:       userPrefs.LastView,
		ShowErrorDetail: rt.Config.ShowErrorDetail,
	})
}

// loadPrefs returns the stored preferences, or the defaults when the file
// cannot be read.
func loadPrefs(path string, logger *zap.Logger) prefs.Prefs {
	p, err := prefs.Load(path)
	if err != nil {
		logger.Warn("load prefs, using defaults", zap.Error(err))
	}
	return p
}

// Serve runs the HTML front end until ctx is cancelled.
func Serve(ctx context.Context, opts Options) error {
	rt, err := Open(opts, LogToStderr)
	if err != nil {
		return err
	}
	defer rt.Close()

	site, err := web.New(web.Options{
		Fetcher:         rt.Client,
		Logger:          rt.Logger,
		ShowErrorDetail: rt.Config.ShowErrorDetail,
	})
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", rt.Config.Listen)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", rt.Config.Listen, err)
	}
	return serve(ctx, newServer(site.Handler(), rt.Logger), ln, rt.Logger)
}

func newServer(handler http.Handler, logger *zap.Logger) *http.Server {
	return &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      web.DefaultRequestTimeout + 5*time.Second,
		IdleTimeout:       120 * time.Second,
		ErrorLog:          zap.NewStdLog(logger),
	}
}

// serve runs server on ln and shuts it down gracefully once ctx is done.
func serve(ctx context.Context, server *http.Server, ln net.Listener, logger *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting server", zap.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		logger.Info("shutting down server", zap.Duration("timeout", shutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("force close server", zap.Error(closeErr))
			}
			return fmt.Errorf("graceful shutdown: %w", err)
		}
		logger.Info("server shutdown complete")
		return nil
	})

	return g.Wait()
}
