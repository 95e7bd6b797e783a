package config

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vango-dev/vbind/internal/errors"
	"github.com/vango-dev/vbind/pkg/keypath"
)

const (
	// JSONFileName is the name of the JSON configuration file.
	JSONFileName = "vbind.json"

	// YAMLFileName is the name of the YAML configuration file.
	YAMLFileName = "vbind.yaml"

	// DefaultPort is the default preview server port.
	DefaultPort = 4000

	// DefaultHost is the default preview server host.
	DefaultHost = "localhost"

	// DefaultSelector is the default mount target.
	DefaultSelector = "#app"

	// DefaultPollInterval is how often watched files are checked.
	DefaultPollInterval = 500 * time.Millisecond
)

// Config represents the complete vbind configuration.
type Config struct {
	// Compiler contains compile pass settings.
	Compiler CompilerConfig `json:"compiler,omitempty" yaml:"compiler,omitempty"`

	// Render contains HTML output settings.
	Render RenderConfig `json:"render,omitempty" yaml:"render,omitempty"`

	// Serve contains preview server settings.
	Serve ServeConfig `json:"serve,omitempty" yaml:"serve,omitempty"`

	// Log contains logger settings.
	Log LogConfig `json:"log,omitempty" yaml:"log,omitempty"`

	// Metrics contains Prometheus settings.
	Metrics MetricsConfig `json:"metrics,omitempty" yaml:"metrics,omitempty"`

	// Tracing contains OpenTelemetry settings.
	Tracing TracingConfig `json:"tracing,omitempty" yaml:"tracing,omitempty"`

	// configPath stores the path where the config was loaded from.
	configPath string
}

// CompilerConfig contains compile pass settings.
type CompilerConfig struct {
	// StripDirectives removes applied directive attributes from the output.
	StripDirectives bool `json:"stripDirectives,omitempty" yaml:"stripDirectives,omitempty"`

	// MissingKey is "error" (default) or "zero".
	MissingKey string `json:"missingKey,omitempty" yaml:"missingKey,omitempty"`

	// Selector is the mount target queried in the template.
	Selector string `json:"selector,omitempty" yaml:"selector,omitempty"`
}

// RenderConfig contains HTML output settings.
type RenderConfig struct {
	// Pretty enables indented output.
	Pretty bool `json:"pretty,omitempty" yaml:"pretty,omitempty"`

	// Indent is the indentation unit for pretty output.
	Indent string `json:"indent,omitempty" yaml:"indent,omitempty"`
}

// ServeConfig contains preview server settings.
type ServeConfig struct {
	// Host is the host to bind to.
	Host string `json:"host,omitempty" yaml:"host,omitempty"`

	// Port is the port to listen on.
	Port int `json:"port,omitempty" yaml:"port,omitempty"`

	// Watch reloads connected browsers when sources change.
	Watch bool `json:"watch,omitempty" yaml:"watch,omitempty"`

	// PollInterval is a duration string such as "500ms".
	PollInterval string `json:"pollInterval,omitempty" yaml:"pollInterval,omitempty"`
}

// LogConfig contains logger settings.
type LogConfig struct {
	// Level is debug, info, warn or error.
	Level string `json:"level,omitempty" yaml:"level,omitempty"`

	// Format is text or json.
	Format string `json:"format,omitempty" yaml:"format,omitempty"`
}

// MetricsConfig contains Prometheus settings.
type MetricsConfig struct {
	// Enabled exposes /metrics on the preview server.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// Namespace prefixes every metric name.
	Namespace string `json:"namespace,omitempty" yaml:"namespace,omitempty"`
}

// TracingConfig contains OpenTelemetry settings.
type TracingConfig struct {
	// Enabled creates a span per compile pass.
	Enabled bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`

	// TracerName is the instrumentation name of the tracer.
	TracerName string `json:"tracerName,omitempty" yaml:"tracerName,omitempty"`
}

// New creates a new Config with default values.
func New() *Config {
	return &Config{
		Compiler: CompilerConfig{
			MissingKey: keypath.MissingError.String(),
			Selector:   DefaultSelector,
		},
		Render: RenderConfig{
			Indent: "  ",
		},
		Serve: ServeConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			Watch:        true,
			PollInterval: DefaultPollInterval.String(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "vbind",
		},
		Tracing: TracingConfig{
			TracerName: "vbind",
		},
	}
}

// Load reads configuration from the specified directory.
// It looks for vbind.json first, then vbind.yaml and vbind.yml.
func Load(dir string) (*Config, error) {
	path, ok := find(dir)
	if !ok {
		return nil, errors.New("E030").
			WithDetail("No " + JSONFileName + " or " + YAMLFileName + " found in " + dir).
			WithSuggestion("Create " + JSONFileName + " or run without a config file to use the defaults")
	}
	return LoadFile(path)
}

// LoadOrDefault is like Load but returns the defaults when dir holds no
// configuration file.
func LoadOrDefault(dir string) (*Config, error) {
	if !Exists(dir) {
		return New(), nil
	}
	return Load(dir)
}

// LoadFile reads configuration from the specified file path. The format is
// chosen by extension.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New("E030").Wrap(err)
	}

	cfg := New()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, errors.New("E030").
			WithDetail("Failed to parse " + filepath.Base(path) + ": " + err.Error()).
			WithSuggestion("Check that " + filepath.Base(path) + " is valid")
	}

	cfg.configPath = path
	cfg.applyDefaults()

	return cfg, nil
}

// Path returns the path where the config was loaded from.
func (c *Config) Path() string {
	return c.configPath
}

// Dir returns the directory containing the config file.
func (c *Config) Dir() string {
	if c.configPath == "" {
		return ""
	}
	return filepath.Dir(c.configPath)
}

// applyDefaults fills in default values for fields a file left empty.
func (c *Config) applyDefaults() {
	d := New()
	if c.Compiler.MissingKey == "" {
		c.Compiler.MissingKey = d.Compiler.MissingKey
	}
	if c.Compiler.Selector == "" {
		c.Compiler.Selector = d.Compiler.Selector
	}
	if c.Render.Indent == "" {
		c.Render.Indent = d.Render.Indent
	}
	if c.Serve.Host == "" {
		c.Serve.Host = d.Serve.Host
	}
	if c.Serve.Port == 0 {
		c.Serve.Port = d.Serve.Port
	}
	if c.Serve.PollInterval == "" {
		c.Serve.PollInterval = d.Serve.PollInterval
	}
	if c.Log.Level == "" {
		c.Log.Level = d.Log.Level
	}
	if c.Log.Format == "" {
		c.Log.Format = d.Log.Format
	}
	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = d.Metrics.Namespace
	}
	if c.Tracing.TracerName == "" {
		c.Tracing.TracerName = d.Tracing.TracerName
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.New("E031").
			WithDetail("serve.port must be between 0 and 65535, got " + strconv.Itoa(c.Serve.Port))
	}
	if _, err := keypath.ParseMissingKey(c.Compiler.MissingKey); err != nil {
		return errors.New("E031").Wrap(err).
			WithSuggestion(`Set compiler.missingKey to "error" or "zero"`)
	}
	if _, err := parseLevel(c.Log.Level); err != nil {
		return errors.New("E031").Wrap(err).
			WithSuggestion(`Set log.level to "debug", "info", "warn" or "error"`)
	}
	switch strings.ToLower(c.Log.Format) {
	case "", "text", "json":
	default:
		return errors.New("E031").
			WithDetail("log.format must be text or json, got " + strconv.Quote(c.Log.Format))
	}
	if d, err := c.pollInterval(); err != nil || d <= 0 {
		return errors.New("E031").
			WithDetail("serve.pollInterval must be a positive duration, got " + strconv.Quote(c.Serve.PollInterval))
	}
	return nil
}

// ServeAddress returns the listen address of the preview server.
func (c *Config) ServeAddress() string {
	return c.Serve.Host + ":" + strconv.Itoa(c.Serve.Port)
}

// MissingKeyPolicy returns the parsed compiler.missingKey. Invalid values
// fall back to keypath.MissingError; Validate reports them.
func (c *Config) MissingKeyPolicy() keypath.MissingKey {
	m, _ := keypath.ParseMissingKey(c.Compiler.MissingKey)
	return m
}

// LogLevel returns the parsed log.level, defaulting to info.
func (c *Config) LogLevel() slog.Level {
	l, err := parseLevel(c.Log.Level)
	if err != nil {
		return slog.LevelInfo
	}
	return l
}

// PollInterval returns the parsed serve.pollInterval, defaulting to
// DefaultPollInterval.
func (c *Config) PollInterval() time.Duration {
	d, err := c.pollInterval()
	if err != nil || d <= 0 {
		return DefaultPollInterval
	}
	return d
}

func (c *Config) pollInterval() (time.Duration, error) {
	if c.Serve.PollInterval == "" {
		return DefaultPollInterval, nil
	}
	return time.ParseDuration(c.Serve.PollInterval)
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	err := l.UnmarshalText([]byte(s))
	return l, err
}

// Exists checks if a config file exists in the given directory.
func Exists(dir string) bool {
	_, ok := find(dir)
	return ok
}

func find(dir string) (string, bool) {
	for _, name := range []string{JSONFileName, YAMLFileName, "vbind.yml"} {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}
