// Package config loads the rogain driver configuration.
//
// Values come from three layers, later ones winning: struct-tag defaults,
// an optional YAML file, and environment variables (a .env file in the
// working directory is loaded first if present).
package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// Config holds all driver configuration.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// InputConfig describes the results page and its layout.
type InputConfig struct {
	// Path is the HTML results page to read
	Path string `yaml:"path" env:"ROGAIN_INPUT"`

	// MarkerAttr and MarkerValue identify team marker tables (default: width=1381px)
	MarkerAttr  string `yaml:"marker_attr" env:"ROGAIN_MARKER_ATTR" default:"width"`
	MarkerValue string `yaml:"marker_value" env:"ROGAIN_MARKER_VALUE" default:"1381px"`

	// LabelCell is the id of the cell holding the team name (default: c13)
	LabelCell string `yaml:"label_cell" env:"ROGAIN_LABEL_CELL" default:"c13"`

	// EndMarkers close a points row (default: META)
	EndMarkers []string `yaml:"end_markers" env:"ROGAIN_END_MARKERS" default:"META"`

	// Charset overrides the page's declared encoding, e.g. "windows-1252"
	Charset string `yaml:"charset" env:"ROGAIN_CHARSET"`
}

// OutputConfig selects the sinks written by the extract command.
type OutputConfig struct {
	// CSV is the file to write; "-" or empty writes to stdout
	CSV string `yaml:"csv" env:"ROGAIN_OUTPUT_CSV"`

	// SQLite is a database to append the run to; empty disables it
	SQLite string `yaml:"sqlite" env:"ROGAIN_OUTPUT_SQLITE"`
}

// ServerConfig holds HTTP feed settings.
type ServerConfig struct {
	Host string `yaml:"host" env:"ROGAIN_SERVER_HOST" default:"127.0.0.1"`
	Port int    `yaml:"port" env:"ROGAIN_SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `yaml:"read_timeout" env:"ROGAIN_SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"ROGAIN_SERVER_WRITE_TIMEOUT" default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"ROGAIN_SERVER_SHUTDOWN_TIMEOUT" default:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `yaml:"level" env:"ROGAIN_LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `yaml:"format" env:"ROGAIN_LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return c.Host + ":" + strconv.Itoa(c.Port)
}

// Encoding resolves Charset. It returns nil when the page encoding should
// be detected.
func (c *InputConfig) Encoding() (encoding.Encoding, error) {
	if c.Charset == "" {
		return nil, nil
	}
	enc, err := htmlindex.Get(c.Charset)
	if err != nil {
		return nil, fmt.Errorf("unknown charset %q: %w", c.Charset, err)
	}
	return enc, nil
}

// Validate checks the configuration and reports every problem at once.
func (c *Config) Validate() error {
	var errs []string

	if c.Input.MarkerAttr == "" {
		errs = append(errs, "ROGAIN_MARKER_ATTR must not be empty")
	}
	if c.Input.LabelCell == "" {
		errs = append(errs, "ROGAIN_LABEL_CELL must not be empty")
	}
	if _, err := c.Input.Encoding(); err != nil {
		errs = append(errs, fmt.Sprintf("ROGAIN_CHARSET: %v", err))
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("ROGAIN_SERVER_PORT (%d) must be 1-65535", c.Server.Port))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 {
		errs = append(errs, "server timeouts must be non-negative")
	}
	if c.Server.ShutdownTimeout <= 0 {
		errs = append(errs, "ROGAIN_SERVER_SHUTDOWN_TIMEOUT must be positive")
	}

	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Sprintf("ROGAIN_LOG_LEVEL (%q) must be debug, info, warn, or error", c.Logging.Level))
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		errs = append(errs, fmt.Sprintf("ROGAIN_LOG_FORMAT (%q) must be text or json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
