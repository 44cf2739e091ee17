package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Input.MarkerAttr != "width" || cfg.Input.MarkerValue != "1381px" {
		t.Errorf("marker = %s=%s, want width=1381px", cfg.Input.MarkerAttr, cfg.Input.MarkerValue)
	}
	if cfg.Input.LabelCell != "c13" {
		t.Errorf("Input.LabelCell = %q, want %q", cfg.Input.LabelCell, "c13")
	}
	if len(cfg.Input.EndMarkers) != 1 || cfg.Input.EndMarkers[0] != "META" {
		t.Errorf("Input.EndMarkers = %v, want [META]", cfg.Input.EndMarkers)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Server.ReadTimeout != 15*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want 15s", cfg.Server.ReadTimeout)
	}
	if cfg.Logging.Level != "info" || cfg.Logging.Format != "text" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rogain.yaml")
	yml := `input:
  path: results.html
  label_cell: c7
  end_markers: [META, FIN]
  charset: windows-1252
server:
  port: 9000
  shutdown_timeout: 3s
logging:
  format: json
`
	if err := os.WriteFile(path, []byte(yml), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ROGAIN_SERVER_PORT", "9090")
	t.Setenv("ROGAIN_LOG_LEVEL", "debug")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Input.Path != "results.html" || cfg.Input.LabelCell != "c7" {
		t.Errorf("Input = %+v", cfg.Input)
	}
	if strings.Join(cfg.Input.EndMarkers, ",") != "META,FIN" {
		t.Errorf("Input.EndMarkers = %v", cfg.Input.EndMarkers)
	}
	if cfg.Input.MarkerValue != "1381px" {
		t.Errorf("default lost under YAML: MarkerValue = %q", cfg.Input.MarkerValue)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want env override 9090", cfg.Server.Port)
	}
	if cfg.Server.ShutdownTimeout != 3*time.Second {
		t.Errorf("Server.ShutdownTimeout = %v, want 3s", cfg.Server.ShutdownTimeout)
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Errorf("Logging = %+v", cfg.Logging)
	}

	enc, err := cfg.Input.Encoding()
	if err != nil || enc == nil {
		t.Errorf("Encoding() = %v, %v", enc, err)
	}
}

func TestLoad_EnvList(t *testing.T) {
	t.Setenv("ROGAIN_END_MARKERS", " meta, fin ,")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if strings.Join(cfg.Input.EndMarkers, "|") != "meta|fin" {
		t.Errorf("Input.EndMarkers = %q", cfg.Input.EndMarkers)
	}
}

func TestLoad_InvalidEnv(t *testing.T) {
	t.Setenv("ROGAIN_SERVER_READ_TIMEOUT", "soon")

	if _, err := Load(""); err == nil || !strings.Contains(err.Error(), "ROGAIN_SERVER_READ_TIMEOUT") {
		t.Errorf("Load() error = %v, want mention of ROGAIN_SERVER_READ_TIMEOUT", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/rogain.yaml"); err == nil {
		t.Error("Load() expected error for missing file")
	}
}

func validConfig() *Config {
	return &Config{
		Input:   InputConfig{MarkerAttr: "width", MarkerValue: "1381px", LabelCell: "c13"},
		Server:  ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		mention string
	}{
		{"valid", func(*Config) {}, ""},
		{"invalid port", func(c *Config) { c.Server.Port = 99999 }, "ROGAIN_SERVER_PORT"},
		{"empty label cell", func(c *Config) { c.Input.LabelCell = "" }, "ROGAIN_LABEL_CELL"},
		{"unknown charset", func(c *Config) { c.Input.Charset = "klingon" }, "ROGAIN_CHARSET"},
		{"invalid log level", func(c *Config) { c.Logging.Level = "verbose" }, "ROGAIN_LOG_LEVEL"},
		{"invalid log format", func(c *Config) { c.Logging.Format = "xml" }, "ROGAIN_LOG_FORMAT"},
		{"zero shutdown", func(c *Config) { c.Server.ShutdownTimeout = 0 }, "ROGAIN_SERVER_SHUTDOWN_TIMEOUT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.mention == "" {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatal("Validate() expected error")
			}
			if !strings.Contains(err.Error(), tt.mention) {
				t.Errorf("error should mention %s: %v", tt.mention, err)
			}
		})
	}
}

func TestServerAddr(t *testing.T) {
	c := ServerConfig{Host: "0.0.0.0", Port: 8081}
	if c.Addr() != "0.0.0.0:8081" {
		t.Errorf("Addr() = %q", c.Addr())
	}
}
