// Package conf holds the bootstrap configuration of the service.
//
// Configuration is layered: compiled-in defaults, then an optional YAML file,
// then environment variables prefixed with MOVIEDEX_. Nested keys in
// environment variables are separated by a double underscore, for example
// MOVIEDEX_METADATA__API_KEY sets metadata.api_key.
package conf

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "MOVIEDEX_"

// PathEnvVar overrides the config file path when no path is given to Load.
const PathEnvVar = EnvPrefix + "CONFIG"

// Bootstrap is the root configuration.
type Bootstrap struct {
	Server   Server   `koanf:"server"`
	Data     Data     `koanf:"data"`
	Auth     Auth     `koanf:"auth"`
	Metadata Metadata `koanf:"metadata"`
	Log      Log      `koanf:"log"`
}

type Server struct {
	HTTP HTTP `koanf:"http"`
}

type HTTP struct {
	Network   string        `koanf:"network"`
	Addr      string        `koanf:"addr"`
	Timeout   time.Duration `koanf:"timeout"`
	RateLimit RateLimit     `koanf:"rate_limit"`
}

// RateLimit configures the per client IP token bucket.
type RateLimit struct {
	Enabled bool    `koanf:"enabled"`
	RPS     float64 `koanf:"rps"`
	Burst   int     `koanf:"burst"`
}

type Data struct {
	Database Database `koanf:"database"`
	Redis    Redis    `koanf:"redis"`
}

// Database selects the storage engine. Driver is "postgres" or "sqlite".
type Database struct {
	Driver          string        `koanf:"driver"`
	Source          string        `koanf:"source"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	AutoMigrate     bool          `koanf:"auto_migrate"`
}

// Redis is optional. An empty Addr keeps locks and revoked tokens in process.
type Redis struct {
	Addr         string        `koanf:"addr"`
	Password     string        `koanf:"password"`
	DB           int           `koanf:"db"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	LockTTL      time.Duration `koanf:"lock_ttl"`
}

type Auth struct {
	Secret      string        `koanf:"secret"`
	TokenTTL    time.Duration `koanf:"token_ttl"`
	RememberTTL time.Duration `koanf:"remember_ttl"`
}

// Metadata configures the OMDb-compatible lookup service.
type Metadata struct {
	URL     string        `koanf:"url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`
	Breaker Breaker       `koanf:"breaker"`
}

// Breaker configures the circuit breaker in front of the metadata service.
type Breaker struct {
	MaxRequests  uint32        `koanf:"max_requests"`
	Interval     time.Duration `koanf:"interval"`
	Timeout      time.Duration `koanf:"timeout"`
	MinRequests  uint32        `koanf:"min_requests"`
	FailureRatio float64       `koanf:"failure_ratio"`
}

type Log struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Bootstrap {
	return &Bootstrap{
		Server: Server{
			HTTP: HTTP{
				Network: "tcp",
				Addr:    "0.0.0.0:8000",
				Timeout: 10 * time.Second,
				RateLimit: RateLimit{
					Enabled: true,
					RPS:     10,
					Burst:   20,
				},
			},
		},
		Data: Data{
			Database: Database{
				Driver:          "sqlite",
				Source:          "moviedex.db",
				MaxIdleConns:    10,
				MaxOpenConns:    100,
				ConnMaxLifetime: time.Hour,
				AutoMigrate:     true,
			},
			Redis: Redis{
				ReadTimeout:  200 * time.Millisecond,
				WriteTimeout: 200 * time.Millisecond,
				LockTTL:      30 * time.Second,
			},
		},
		Auth: Auth{
			TokenTTL:    24 * time.Hour,
			RememberTTL: 30 * 24 * time.Hour,
		},
		Metadata: Metadata{
			URL:     "http://www.omdbapi.com",
			Timeout: 5 * time.Second,
			Breaker: Breaker{
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  5,
				FailureRatio: 0.6,
			},
		},
		Log: Log{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path (or
// the file named by MOVIEDEX_CONFIG when path is empty) and the environment.
func Load(path string) (*Bootstrap, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(PathEnvVar)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	bc := &Bootstrap{}
	if err := k.Unmarshal("", bc); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if err := bc.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return bc, nil
}

// envKey maps MOVIEDEX_DATA__DATABASE__SOURCE to data.database.source.
func envKey(s string) string {
	if s == PathEnvVar {
		return ""
	}
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

// Validate reports the first configuration problem found.
func (b *Bootstrap) Validate() error {
	db := b.Data.Database
	switch db.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("data.database.driver: unsupported driver %q", db.Driver)
	}
	if strings.TrimSpace(db.Source) == "" {
		return errors.New("data.database.source is required")
	}
	if b.Auth.Secret == "" {
		return errors.New("auth.secret is required")
	}
	if b.Auth.TokenTTL <= 0 || b.Auth.RememberTTL <= 0 {
		return errors.New("auth token lifetimes must be positive")
	}
	if b.Metadata.URL == "" {
		return errors.New("metadata.url is required")
	}
	if b.Metadata.Timeout <= 0 {
		return errors.New("metadata.timeout must be positive")
	}
	if r := b.Metadata.Breaker.FailureRatio; r <= 0 || r > 1 {
		return fmt.Errorf("metadata.breaker.failure_ratio must be in (0,1], got %v", r)
	}
	if b.Server.HTTP.RateLimit.Enabled && (b.Server.HTTP.RateLimit.RPS <= 0 || b.Server.HTTP.RateLimit.Burst <= 0) {
		return errors.New("server.http.rate_limit needs positive rps and burst when enabled")
	}
	return nil
}
