package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"go.uber.org/zap/zapcore"
)

// Config holds everything motostats reads at startup.
type Config struct {
	APIURL          string
	Timeout         time.Duration
	LogFile         string
	LogLevel        string
	Listen          string
	RequestIDs      bool
	ShowErrorDetail bool
}

const (
	defaultConfigPath = "~/.config/motostats/config.toml"
	defaultAPIURL     = "http://127.0.0.1:8000/api"
	defaultTimeout    = 10 * time.Second
	defaultLogFile    = "~/.local/share/motostats/motostats.log"
	defaultLogLevel   = "info"
	defaultListen     = "127.0.0.1:8080"
)

// Environment variables that override the config file.
const (
	EnvAPIURL   = "MOTOSTATS_API_URL"
	EnvTimeout  = "MOTOSTATS_TIMEOUT"
	EnvLogLevel = "MOTOSTATS_LOG_LEVEL"
	EnvListen   = "MOTOSTATS_LISTEN"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		APIURL:   defaultAPIURL,
		Timeout:  defaultTimeout,
		LogFile:  mustExpand(defaultLogFile),
		LogLevel: defaultLogLevel,
		Listen:   defaultListen,
	}
}

// LoadDotEnv loads KEY=value pairs from the given files (".env" when none are
// given) into the process environment. Variables already set are kept and
// missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// Load builds the configuration from defaults, the TOML file at path (the
// default location when empty) and MOTOSTATS_* environment variables, in that
// order. A missing file is not an error. The result is not validated; call
// Validate once command-line overrides have been applied.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()
	if err := cfg.mergeFile(resolved); err != nil {
		return Config{}, err
	}
	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL          string `toml:"api_url"`
		Timeout         string `toml:"timeout"`
		LogFile         string `toml:"log_file"`
		LogLevel        string `toml:"log_level"`
		Listen          string `toml:"listen"`
		RequestIDs      *bool  `toml:"request_ids"`
		ShowErrorDetail *bool  `toml:"show_error_detail"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(raw.Timeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("parse config: timeout: %w", err)
		}
		c.Timeout = d
	}
	if v := strings.TrimSpace(raw.LogFile); v != "" {
		c.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(raw.Listen); v != "" {
		c.Listen = v
	}
	if raw.RequestIDs != nil {
		c.RequestIDs = *raw.RequestIDs
	}
	if raw.ShowErrorDetail != nil {
		c.ShowErrorDetail = *raw.ShowErrorDetail
	}
	return nil
}

func (c *Config) applyEnvOverrides() error {
	if v := strings.TrimSpace(os.Getenv(EnvAPIURL)); v != "" {
		c.APIURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvTimeout)); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		c.Timeout = d
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		c.LogLevel = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvListen)); v != "" {
		c.Listen = v
	}
	return nil
}

// Overrides carries command-line values. Zero fields leave the config as is.
type Overrides struct {
	APIURL  string
	Timeout time.Duration
	Verbose bool
	Listen  string
}

// Apply returns a copy of c with the non-zero overrides applied.
func (c Config) Apply(o Overrides) Config {
	if v := strings.TrimSpace(o.APIURL); v != "" {
		c.APIURL = v
	}
	if o.Timeout > 0 {
		c.Timeout = o.Timeout
	}
	if o.Verbose {
		c.LogLevel = "debug"
	}
	if v := strings.TrimSpace(o.Listen); v != "" {
		c.Listen = v
	}
	return c
}

// Validate reports the first invalid field.
func (c Config) Validate() error {
	if strings.TrimSpace(c.APIURL) == "" {
		return fmt.Errorf("api_url is empty")
	}
	if _, err := url.Parse(c.APIURL); err != nil {
		return fmt.Errorf("api_url: %w", err)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := zapcore.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if strings.TrimSpace(c.Listen) == "" {
		return fmt.Errorf("listen is empty")
	}
	return nil
}

// Level returns the parsed log level, falling back to info.
func (c Config) Level() zapcore.Level {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil {
		return zapcore.InfoLevel
	}
	return level
}

// parseTimeout accepts Go durations ("10s", "1m30s") or a bare number of
// seconds.
func parseTimeout(v string) (time.Duration, error) {
	d, err := time.ParseDuration(v)
	if err != nil {
		secs, convErr := strconv.ParseFloat(v, 64)
		if convErr != nil {
			return 0, fmt.Errorf("invalid duration %q", v)
		}
		d = time.Duration(secs * float64(time.Second))
	}
	if d <= 0 {
		return 0, fmt.Errorf("duration must be positive, got %q", v)
	}
	return d, nil
}

// DefaultPath returns the expanded default config location.
func DefaultPath() string {
	return mustExpand(defaultConfigPath)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
