package app

import (
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"proxylens/internal/rendezvous"
)

// Config holds runtime wiring options for building the app.
type Config struct {
	Directory string        `yaml:"directory"`  // rendezvous directory domain, e.g. rendezvous.mypico.org
	Scheme    string        `yaml:"scheme"`     // http for local dev servers, https otherwise
	Timeout   time.Duration `yaml:"timeout"`    // per rendezvous request
	LogLevel  string        `yaml:"log_level"`  // debug|info|warn|error
	LogFormat string        `yaml:"log_format"` // text|json
	QRPNG     string        `yaml:"qr_png"`     // optional PNG output for the pairing code

	HTTP *http.Client `yaml:"-"` // optional; defaults to a client with Timeout
}

// DefaultConfig returns the settings used when nothing overrides them.
func DefaultConfig() Config {
	return Config{
		Directory: rendezvous.DefaultDirectory,
		Scheme:    "https",
		Timeout:   30 * time.Second,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// LoadConfig layers defaults, the YAML file at path (if any) and PROXYLENS_*
// environment variables, then validates the result.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c *Config) applyEnv() error {
	c.Directory = getenv("PROXYLENS_DIRECTORY", c.Directory)
	c.Scheme = getenv("PROXYLENS_SCHEME", c.Scheme)
	c.LogLevel = getenv("PROXYLENS_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getenv("PROXYLENS_LOG_FORMAT", c.LogFormat)
	c.QRPNG = getenv("PROXYLENS_QR_PNG", c.QRPNG)
	if raw := strings.TrimSpace(os.Getenv("PROXYLENS_TIMEOUT")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("PROXYLENS_TIMEOUT must be a duration, got %q", raw)
		}
		c.Timeout = d
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Directory) == "" {
		return fmt.Errorf("directory is required")
	}
	if strings.Contains(c.Directory, "://") {
		return fmt.Errorf("directory must be a bare domain, got %q", c.Directory)
	}
	if c.Scheme != "http" && c.Scheme != "https" {
		return fmt.Errorf("scheme must be http(s), got %q", c.Scheme)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	return nil
}

// DirectoryURL is the base URL of the rendezvous directory.
func (c Config) DirectoryURL() string {
	return rendezvous.DirectoryURL(c.Scheme, c.Directory)
}

func getenv(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}
