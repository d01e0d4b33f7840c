// Package config loads httpforge's defaults (connection pool sizing, TLS
// posture, timeouts, logging) from an optional YAML file, falling back to
// the spec's built-in defaults when no file is given or a key is absent.
package config

import (
	"github.com/elastic/go-ucfg"
	"github.com/elastic/go-ucfg/yaml"

	"github.com/nullbyte-labs/httpforge/pkg/constants"
)

// PoolConfig mirrors §4.3's pool options.
type PoolConfig struct {
	MaxConnectionsPerHost int `config:"max_connections_per_host"`
	IdleTimeoutMs         int `config:"idle_timeout_ms"`
}

// TLSConfig mirrors §6's tls: {...} options block defaults.
type TLSConfig struct {
	RejectUnauthorized bool   `config:"reject_unauthorized"`
	MinVersion         string `config:"min_version"`
	MaxVersion         string `config:"max_version"`
}

// LoggingConfig controls internal/obs's zap setup.
type LoggingConfig struct {
	Level      string `config:"level"`
	JSON       bool   `config:"json"`
	File       string `config:"file"`
	MaxSizeMB  int    `config:"max_size_mb"`
	MaxBackups int    `config:"max_backups"`
	MaxAgeDays int    `config:"max_age_days"`
}

// App is the top-level config record unpacked from a loaded file.
type App struct {
	TimeoutMs int64         `config:"timeout_ms"`
	Pool      PoolConfig    `config:"pool"`
	TLS       TLSConfig     `config:"tls"`
	Logging   LoggingConfig `config:"logging"`
}

// Default returns the spec's built-in defaults, used when no config file is
// supplied.
func Default() App {
	return App{
		TimeoutMs: int64(constants.DefaultTimeout.Milliseconds()),
		Pool: PoolConfig{
			MaxConnectionsPerHost: constants.DefaultMaxConnectionsPerHost,
			IdleTimeoutMs:         int(constants.DefaultIdleTimeout.Milliseconds()),
		},
		TLS: TLSConfig{
			RejectUnauthorized: false,
			MinVersion:         "1.0",
			MaxVersion:         "1.3",
		},
		Logging: LoggingConfig{
			Level: "info",
			JSON:  true,
		},
	}
}

// Config wraps a ucfg.Config the way packetd-packetd's confengine package
// does, giving callers Has/Child/Unpack without exposing the ucfg API
// directly.
type Config struct {
	raw *ucfg.Config
}

// Load reads a YAML config file and unpacks it over the built-in defaults —
// keys absent from the file keep their default value.
func Load(path string) (App, error) {
	app := Default()
	if path == "" {
		return app, nil
	}

	raw, err := yaml.NewConfigWithFile(path, ucfg.PathSep("."))
	if err != nil {
		return app, err
	}

	if err := raw.Unpack(&app); err != nil {
		return app, err
	}
	return app, nil
}

// LoadBytes unpacks YAML content directly, for embedding defaults or
// testing without a filesystem round-trip.
func LoadBytes(b []byte) (App, error) {
	app := Default()
	if len(b) == 0 {
		return app, nil
	}

	raw, err := yaml.NewConfig(b)
	if err != nil {
		return app, err
	}
	if err := raw.Unpack(&app); err != nil {
		return app, err
	}
	return app, nil
}

// New wraps an already-parsed ucfg.Config, for callers that need Has/Child
// navigation beyond a single Unpack.
func New(raw *ucfg.Config) *Config { return &Config{raw: raw} }

// Has reports whether a dotted path is present.
func (c *Config) Has(path string) bool {
	ok, err := c.raw.Has(path, -1)
	if err != nil {
		return false
	}
	return ok
}

// Child returns the sub-config rooted at path.
func (c *Config) Child(path string) (*Config, error) {
	child, err := c.raw.Child(path, -1)
	if err != nil {
		return nil, err
	}
	return New(child), nil
}

// Unpack unpacks the whole config into to.
func (c *Config) Unpack(to interface{}) error {
	return c.raw.Unpack(to)
}
