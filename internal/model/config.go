package model

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"
)

// Config is the complete DouEssay configuration
type Config struct {
	Grading     GradingConfig     `yaml:"grading" mapstructure:"grading"`
	Grammar     GrammarConfig     `yaml:"grammar" mapstructure:"grammar"`
	Fetch       FetchConfig       `yaml:"fetch" mapstructure:"fetch"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Server      ServerConfig      `yaml:"server" mapstructure:"server"`
	License     LicenseConfig     `yaml:"license" mapstructure:"license"`
	Logging     LoggingConfig     `yaml:"logging" mapstructure:"logging"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// GradingConfig controls the scoring pipeline
type GradingConfig struct {
	MinChars        int           `yaml:"min_chars" mapstructure:"min_chars"`               // Shorter essays take the fallback path
	DefaultGrade    int           `yaml:"default_grade" mapstructure:"default_grade"`       // Used when no grade is supplied
	Budget          time.Duration `yaml:"budget" mapstructure:"budget"`                     // Wall-clock budget per essay
	IncludeFeatures bool          `yaml:"include_features" mapstructure:"include_features"` // Attach raw features to results
}

// GrammarConfig configures the external grammar checker
type GrammarConfig struct {
	Enabled           bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint          string        `yaml:"endpoint" mapstructure:"endpoint"` // LanguageTool base URL
	Language          string        `yaml:"language" mapstructure:"language"`
	Timeout           time.Duration `yaml:"timeout" mapstructure:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	BurstSize         int           `yaml:"burst_size" mapstructure:"burst_size"`
	HTTPProxy         string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy        string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy           string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// FetchConfig configures downloading essays from URLs
type FetchConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	Insecure     bool          `yaml:"insecure" mapstructure:"insecure"`           // Skip TLS verification
	PerHostRate  float64       `yaml:"per_host_rate" mapstructure:"per_host_rate"` // Requests per second to one host
	HTTPProxy    string        `yaml:"http_proxy,omitempty" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy,omitempty" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy,omitempty" mapstructure:"no_proxy"`
}

// CacheConfig configures grammar result caching
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
	// MaxEntries bounds the in-memory layer; zero means unbounded
	MaxEntries int `yaml:"max_entries" mapstructure:"max_entries"`
}

// ConcurrencyConfig controls batch grading
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// ServerConfig configures the HTTP API
type ServerConfig struct {
	Addr           string        `yaml:"addr" mapstructure:"addr"`
	CORSOrigins    []string      `yaml:"cors_origins" mapstructure:"cors_origins"`
	RequestTimeout time.Duration `yaml:"request_timeout" mapstructure:"request_timeout"`
	MaxBodyBytes   int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RequireLicense bool          `yaml:"require_license" mapstructure:"require_license"`
}

// LicenseConfig selects the license/usage store backend
type LicenseConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"` // memory, sqlite
	DSN    string `yaml:"dsn" mapstructure:"dsn"`
}

// LoggingConfig configures the zap logger
type LoggingConfig struct {
	Mode  string `yaml:"mode" mapstructure:"mode"`   // development, production
	Level string `yaml:"level" mapstructure:"level"` // debug, info, warn, error
}

// OutputConfig controls report rendering
type OutputConfig struct {
	Verbose       bool `yaml:"verbose" mapstructure:"verbose"`
	IncludeFooter bool `yaml:"include_footer" mapstructure:"include_footer"`
}

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Grading: GradingConfig{
			MinChars:     100,
			DefaultGrade: int(DefaultGrade),
			Budget:       2 * time.Second,
		},
		Grammar: GrammarConfig{
			Enabled:           false,
			Endpoint:          "http://localhost:8081",
			Language:          "en-CA",
			Timeout:           5 * time.Second,
			RequestsPerSecond: 5,
			BurstSize:         5,
		},
		Fetch: FetchConfig{
			Timeout:      15 * time.Second,
			UserAgent:    "douessay/1.0",
			MaxBodyBytes: 2 << 20,
			PerHostRate:  2,
		},
		Cache: CacheConfig{
			Enabled:    true,
			Dir:        defaultCacheDir(),
			MemoryTTL:  1 * time.Hour,
			DiskTTL:    24 * time.Hour,
			MaxEntries: 4096,
		},
		Concurrency: ConcurrencyConfig{
			Workers: runtime.NumCPU(),
		},
		Server: ServerConfig{
			Addr:           ":8080",
			CORSOrigins:    []string{"http://localhost:3000"},
			RequestTimeout: 30 * time.Second,
			MaxBodyBytes:   1 << 20,
		},
		License: LicenseConfig{
			Driver: "memory",
		},
		Logging: LoggingConfig{
			Mode:  "development",
			Level: "info",
		},
		Output: OutputConfig{
			IncludeFooter: true,
		},
	}
}

// Validate reports every setting that would make grading or serving fail
func (c *Config) Validate() error {
	var errs []error
	if c.Grading.MinChars < 0 {
		errs = append(errs, fmt.Errorf("grading.min_chars must not be negative, got %d", c.Grading.MinChars))
	}
	if !GradeLevel(c.Grading.DefaultGrade).Valid() {
		errs = append(errs, fmt.Errorf("grading.default_grade must be %d-%d, got %d", MinGrade, MaxGrade, c.Grading.DefaultGrade))
	}
	if c.Grading.Budget <= 0 {
		errs = append(errs, fmt.Errorf("grading.budget must be positive, got %v", c.Grading.Budget))
	}
	if c.Grammar.Enabled {
		if u, err := url.Parse(c.Grammar.Endpoint); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			errs = append(errs, fmt.Errorf("grammar.endpoint must be an http(s) URL, got %q", c.Grammar.Endpoint))
		}
	}
	if c.Fetch.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("fetch.max_body_bytes must be positive, got %d", c.Fetch.MaxBodyBytes))
	}
	if c.Cache.MaxEntries < 0 {
		errs = append(errs, fmt.Errorf("cache.max_entries must not be negative, got %d", c.Cache.MaxEntries))
	}
	if c.Server.MaxBodyBytes <= 0 {
		errs = append(errs, fmt.Errorf("server.max_body_bytes must be positive, got %d", c.Server.MaxBodyBytes))
	}
	switch c.License.Driver {
	case "memory", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("license.driver must be memory or sqlite, got %q", c.License.Driver))
	}
	switch strings.ToLower(c.Logging.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("logging.level must be debug, info, warn or error, got %q", c.Logging.Level))
	}
	return errors.Join(errs...)
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "douessay-cache")
	}
	return filepath.Join(home, ".douessay", "cache")
}
