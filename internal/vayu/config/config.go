package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	envPrefix = "VAYU_"

	defaultAddress        = ":8080"
	defaultBasePath       = "/"
	defaultEnvironment    = "Development"
	defaultLogLevel       = "info"
	defaultReadTimeout    = 10 * time.Second
	defaultWriteTimeout   = 30 * time.Second
	defaultIdleTimeout    = 60 * time.Second
	defaultShutdown       = 10 * time.Second
	defaultMountTTL       = 30 * time.Minute
	defaultSweepInterval  = time.Minute
	defaultCSRFCookieName = "vayu_csrf"
	defaultCSRFHeaderName = "X-CSRF-Token"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Config captures all runtime configuration organised by concern.
type Config struct {
	Server      ServerConfig  `koanf:"server"`
	Shell       ShellConfig   `koanf:"shell"`
	CSRF        CSRFConfig    `koanf:"csrf"`
	Log         LogConfig     `koanf:"log"`
	Content     ContentConfig `koanf:"content"`
	Environment string        `koanf:"environment"`
}

// ServerConfig configures HTTP server parameters.
type ServerConfig struct {
	Address         string        `koanf:"address"`
	BasePath        string        `koanf:"base_path"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// ShellConfig controls the in-memory mount registry.
type ShellConfig struct {
	MountTTL      time.Duration `koanf:"mount_ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
	// TokenKey signs mount tokens. Empty generates a per-process key.
	TokenKey string `koanf:"token_key"`
}

// CSRFConfig controls the double-submit cookie.
type CSRFConfig struct {
	CookieName   string `koanf:"cookie_name"`
	HeaderName   string `koanf:"header_name"`
	CookieSecure bool   `koanf:"cookie_secure"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level string `koanf:"level"`
}

// ContentConfig points page rendering at an optional markdown directory that
// overrides the embedded pages.
type ContentConfig struct {
	Dir string `koanf:"dir"`
}

// Default returns the configuration used when nothing is overridden.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Address:         defaultAddress,
			BasePath:        defaultBasePath,
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdown,
		},
		Shell: ShellConfig{
			MountTTL:      defaultMountTTL,
			SweepInterval: defaultSweepInterval,
		},
		CSRF: CSRFConfig{
			CookieName: defaultCSRFCookieName,
			HeaderName: defaultCSRFHeaderName,
		},
		Log:         LogConfig{Level: defaultLogLevel},
		Environment: defaultEnvironment,
	}
}

// Load reads defaults, then the optional YAML file at path, then VAYU_*
// environment overrides (VAYU_SERVER__ADDRESS -> server.address).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	cfg := Default()

	if path = strings.TrimSpace(path); path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("accessing config %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(envPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// envKey maps VAYU_SERVER__BASE_PATH to server.base_path. A double underscore
// separates sections so single underscores can stay inside key names.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, envPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// ValidationError is returned when configuration fields are missing or invalid.
type ValidationError struct {
	fields []string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed: missing or invalid fields [%s]", strings.Join(e.fields, ", "))
}

// Fields returns a copy of the invalid field list.
func (e *ValidationError) Fields() []string {
	out := make([]string, len(e.fields))
	copy(out, e.fields)
	return out
}

// Unwrap lets callers match ErrInvalidConfig.
func (e *ValidationError) Unwrap() error { return ErrInvalidConfig }

// Validate checks that the configuration contains usable values.
func (c *Config) Validate() error {
	var invalid []string
	if strings.TrimSpace(c.Server.Address) == "" {
		invalid = append(invalid, "server.address")
	}
	if bp := strings.TrimSpace(c.Server.BasePath); bp != "" && !strings.HasPrefix(bp, "/") {
		invalid = append(invalid, "server.base_path")
	}
	if c.Server.ReadTimeout <= 0 {
		invalid = append(invalid, "server.read_timeout")
	}
	if c.Server.WriteTimeout <= 0 {
		invalid = append(invalid, "server.write_timeout")
	}
	if c.Server.ShutdownTimeout <= 0 {
		invalid = append(invalid, "server.shutdown_timeout")
	}
	if c.Shell.MountTTL <= 0 {
		invalid = append(invalid, "shell.mount_ttl")
	}
	if c.Shell.SweepInterval <= 0 {
		invalid = append(invalid, "shell.sweep_interval")
	}
	if key := c.Shell.TokenKey; key != "" && len(key) < 32 {
		invalid = append(invalid, "shell.token_key")
	}
	if strings.TrimSpace(c.CSRF.CookieName) == "" {
		invalid = append(invalid, "csrf.cookie_name")
	}
	if strings.TrimSpace(c.CSRF.HeaderName) == "" {
		invalid = append(invalid, "csrf.header_name")
	}
	if len(invalid) == 0 {
		return nil
	}
	sort.Strings(invalid)
	return &ValidationError{fields: invalid}
}
