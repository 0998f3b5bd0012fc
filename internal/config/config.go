// Package config assembles the application configuration.
//
// Values are layered: built-in defaults, then an optional YAML file named by
// CONFIG_FILE, then environment variables. Validate fails closed, so a bad
// value stops startup instead of silently running with a default.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"time"

	envcfg "factcheck-web/pkg/config"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Session backends.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// DefaultFactCheckBaseURL is the public deployment of the fact-check API.
const DefaultFactCheckBaseURL = "https://fact-check-api-32dx.onrender.com"

// Config is the root configuration of the web server and CLI.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	FactCheck FactCheckConfig `yaml:"factcheck"`
	Session   SessionConfig   `yaml:"session"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	CSP       CSPConfig       `yaml:"csp"`
	Fetcher   FetcherConfig   `yaml:"fetcher"`
	LogLevel  string          `yaml:"log_level"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	MaxBodyBytes    int64         `yaml:"max_body_bytes"`
	SwaggerEnabled  bool          `yaml:"swagger_enabled"`
}

// FactCheckConfig configures the upstream API client.
type FactCheckConfig struct {
	BaseURL string        `yaml:"base_url"`
	Timeout time.Duration `yaml:"timeout"`
	// RatePerSecond caps outgoing calls across all sessions. Zero disables it.
	RatePerSecond float64 `yaml:"rate_per_second"`
	Burst         int     `yaml:"burst"`
}

// SessionConfig selects and configures the session store.
type SessionConfig struct {
	Backend       string        `yaml:"backend"`
	TTL           time.Duration `yaml:"ttl"`
	SweepSchedule string        `yaml:"sweep_schedule"`
	RedisURL      string        `yaml:"redis_url"`
	KeyPrefix     string        `yaml:"key_prefix"`
	CookieSecure  bool          `yaml:"cookie_secure"`
}

// RateLimitConfig configures per-IP limiting of incoming requests.
type RateLimitConfig struct {
	Enabled           bool          `yaml:"enabled"`
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	Burst             int           `yaml:"burst"`
	TrustedProxies    []string      `yaml:"trusted_proxies"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"`
}

// CSPConfig toggles the Content-Security-Policy header.
type CSPConfig struct {
	Enabled    bool `yaml:"enabled"`
	ReportOnly bool `yaml:"report_only"`
}

// FetcherConfig configures article extraction for the review flow.
type FetcherConfig struct {
	Enabled        bool          `yaml:"enabled"`
	Timeout        time.Duration `yaml:"timeout"`
	MaxBodySize    int64         `yaml:"max_body_size"`
	MaxRedirects   int           `yaml:"max_redirects"`
	DenyPrivateIPs bool          `yaml:"deny_private_ips"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    150 * time.Second,
			ShutdownTimeout: 30 * time.Second,
			MaxBodyBytes:    1 << 20,
			SwaggerEnabled:  true,
		},
		FactCheck: FactCheckConfig{
			BaseURL:       DefaultFactCheckBaseURL,
			Timeout:       120 * time.Second,
			RatePerSecond: 5,
			Burst:         10,
		},
		Session: SessionConfig{
			Backend:       BackendMemory,
			TTL:           24 * time.Hour,
			SweepSchedule: "@every 10m",
			KeyPrefix:     "factcheck:session:",
		},
		RateLimit: RateLimitConfig{
			Enabled:           true,
			RequestsPerMinute: 30,
			Burst:             10,
			CleanupInterval:   5 * time.Minute,
		},
		CSP: CSPConfig{Enabled: true},
		Fetcher: FetcherConfig{
			Enabled:        true,
			Timeout:        10 * time.Second,
			MaxBodySize:    10 << 20,
			MaxRedirects:   5,
			DenyPrivateIPs: true,
		},
		LogLevel: "info",
	}
}

// Load builds the configuration from defaults, the YAML file at path (skipped
// when path is empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func (c *Config) mergeFile(path string) error {
	// #nosec G304 -- path comes from CONFIG_FILE or a CLI flag, not user input
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if envcfg.IsSet("PORT") {
		c.Server.Addr = ":" + envcfg.GetEnvString("PORT", "8080")
	}
	c.Server.Addr = envcfg.GetEnvString("ADDR", c.Server.Addr)
	c.Server.ReadTimeout = envcfg.GetEnvDuration("SERVER_READ_TIMEOUT", c.Server.ReadTimeout)
	c.Server.WriteTimeout = envcfg.GetEnvDuration("SERVER_WRITE_TIMEOUT", c.Server.WriteTimeout)
	c.Server.ShutdownTimeout = envcfg.GetEnvDuration("SERVER_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout)
	c.Server.MaxBodyBytes = int64(envcfg.GetEnvInt("SERVER_MAX_BODY_BYTES", int(c.Server.MaxBodyBytes)))
	c.Server.SwaggerEnabled = envcfg.GetEnvBool("SWAGGER_ENABLED", c.Server.SwaggerEnabled)

	c.FactCheck.BaseURL = envcfg.GetEnvString("FACTCHECK_BASE_URL", c.FactCheck.BaseURL)
	c.FactCheck.Timeout = envcfg.GetEnvDuration("FACTCHECK_TIMEOUT", c.FactCheck.Timeout)
	c.FactCheck.RatePerSecond = envcfg.GetEnvFloat("FACTCHECK_RATE_PER_SECOND", c.FactCheck.RatePerSecond)
	c.FactCheck.Burst = envcfg.GetEnvInt("FACTCHECK_BURST", c.FactCheck.Burst)

	c.Session.Backend = envcfg.GetEnvString("SESSION_BACKEND", c.Session.Backend)
	c.Session.TTL = envcfg.GetEnvDuration("SESSION_TTL", c.Session.TTL)
	c.Session.SweepSchedule = envcfg.GetEnvString("SESSION_SWEEP_SCHEDULE", c.Session.SweepSchedule)
	c.Session.RedisURL = envcfg.GetEnvString("REDIS_URL", c.Session.RedisURL)
	c.Session.KeyPrefix = envcfg.GetEnvString("SESSION_KEY_PREFIX", c.Session.KeyPrefix)
	c.Session.CookieSecure = envcfg.GetEnvBool("SESSION_COOKIE_SECURE", c.Session.CookieSecure)

	c.RateLimit.Enabled = envcfg.GetEnvBool("RATELIMIT_ENABLED", c.RateLimit.Enabled)
	c.RateLimit.RequestsPerMinute = envcfg.GetEnvInt("RATELIMIT_REQUESTS_PER_MINUTE", c.RateLimit.RequestsPerMinute)
	c.RateLimit.Burst = envcfg.GetEnvInt("RATELIMIT_BURST", c.RateLimit.Burst)
	c.RateLimit.TrustedProxies = envcfg.GetEnvStringList("RATELIMIT_TRUSTED_PROXIES", c.RateLimit.TrustedProxies)
	c.RateLimit.CleanupInterval = envcfg.GetEnvDuration("RATELIMIT_CLEANUP_INTERVAL", c.RateLimit.CleanupInterval)

	c.CSP.Enabled = envcfg.GetEnvBool("CSP_ENABLED", c.CSP.Enabled)
	c.CSP.ReportOnly = envcfg.GetEnvBool("CSP_REPORT_ONLY", c.CSP.ReportOnly)

	c.Fetcher.Enabled = envcfg.GetEnvBool("CONTENT_FETCH_ENABLED", c.Fetcher.Enabled)
	c.Fetcher.Timeout = envcfg.GetEnvDuration("CONTENT_FETCH_TIMEOUT", c.Fetcher.Timeout)
	c.Fetcher.MaxBodySize = int64(envcfg.GetEnvInt("CONTENT_FETCH_MAX_BODY_SIZE", int(c.Fetcher.MaxBodySize)))
	c.Fetcher.MaxRedirects = envcfg.GetEnvInt("CONTENT_FETCH_MAX_REDIRECTS", c.Fetcher.MaxRedirects)
	c.Fetcher.DenyPrivateIPs = envcfg.GetEnvBool("CONTENT_FETCH_DENY_PRIVATE_IPS", c.Fetcher.DenyPrivateIPs)

	c.LogLevel = envcfg.GetEnvString("LOG_LEVEL", c.LogLevel)
}

// Validate checks configuration correctness. All problems are reported together.
func (c *Config) Validate() error {
	var errs []error
	add := func(field string, err error) {
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", field, err))
		}
	}

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr: cannot be empty"))
	}
	add("server.read_timeout", envcfg.ValidatePositiveDuration(c.Server.ReadTimeout))
	add("server.shutdown_timeout", envcfg.ValidatePositiveDuration(c.Server.ShutdownTimeout))
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("server.max_body_bytes: must be positive"))
	}

	add("factcheck.base_url", validateBaseURL(c.FactCheck.BaseURL))
	add("factcheck.timeout", envcfg.ValidateDurationRange(c.FactCheck.Timeout, time.Second, 10*time.Minute))
	if c.FactCheck.RatePerSecond < 0 {
		errs = append(errs, errors.New("factcheck.rate_per_second: must be non-negative"))
	}
	if c.FactCheck.RatePerSecond > 0 && c.FactCheck.Burst < 1 {
		errs = append(errs, errors.New("factcheck.burst: must be at least 1 when rate limiting is on"))
	}
	if c.Server.WriteTimeout > 0 && c.Server.WriteTimeout <= c.FactCheck.Timeout {
		errs = append(errs, fmt.Errorf("server.write_timeout: %v must exceed factcheck.timeout %v", c.Server.WriteTimeout, c.FactCheck.Timeout))
	}

	switch c.Session.Backend {
	case BackendMemory:
		add("session.sweep_schedule", ValidateCronSchedule(c.Session.SweepSchedule))
	case BackendRedis:
		if c.Session.RedisURL == "" {
			errs = append(errs, errors.New("session.redis_url: required for redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("session.backend: unknown backend %q", c.Session.Backend))
	}
	add("session.ttl", envcfg.ValidateDurationRange(c.Session.TTL, time.Minute, 30*24*time.Hour))

	if c.RateLimit.Enabled {
		add("rate_limit.requests_per_minute", envcfg.ValidateIntRange(c.RateLimit.RequestsPerMinute, 1, 10000))
		add("rate_limit.cleanup_interval", envcfg.ValidatePositiveDuration(c.RateLimit.CleanupInterval))
	}

	if c.Fetcher.Enabled {
		add("fetcher.timeout", envcfg.ValidatePositiveDuration(c.Fetcher.Timeout))
		if c.Fetcher.MaxBodySize < 1024 || c.Fetcher.MaxBodySize > 100<<20 {
			errs = append(errs, fmt.Errorf("fetcher.max_body_size: %d outside [1KB, 100MB]", c.Fetcher.MaxBodySize))
		}
		add("fetcher.max_redirects", envcfg.ValidateIntRange(c.Fetcher.MaxRedirects, 0, 10))
	}

	return errors.Join(errs...)
}

func validateBaseURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme %q not allowed (only http/https)", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("missing host")
	}
	return nil
}

// ValidateCronSchedule accepts standard five-field expressions and
// descriptors such as "@every 10m" or "@hourly".
func ValidateCronSchedule(schedule string) error {
	if schedule == "" {
		return errors.New("invalid cron schedule: cannot be empty")
	}
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)
	if _, err := parser.Parse(schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", schedule, err)
	}
	return nil
}
