package model

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfigIsValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"negative min chars", func(c *Config) { c.Grading.MinChars = -1 }, "grading.min_chars"},
		{"grade out of range", func(c *Config) { c.Grading.DefaultGrade = 8 }, "grading.default_grade"},
		{"zero budget", func(c *Config) { c.Grading.Budget = 0 }, "grading.budget"},
		{"bad grammar endpoint", func(c *Config) {
			c.Grammar.Enabled = true
			c.Grammar.Endpoint = "localhost:8081"
		}, "grammar.endpoint"},
		{"zero fetch limit", func(c *Config) { c.Fetch.MaxBodyBytes = 0 }, "fetch.max_body_bytes"},
		{"negative cache bound", func(c *Config) { c.Cache.MaxEntries = -5 }, "cache.max_entries"},
		{"zero request limit", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "server.max_body_bytes"},
		{"unknown license driver", func(c *Config) { c.License.Driver = "postgres" }, "license.driver"},
		{"unknown log level", func(c *Config) { c.Logging.Level = "loud" }, "logging.level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Expected %s to be rejected", tt.want)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}

func TestConfigValidate_ReportsEveryProblem(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grading.Budget = -time.Second
	cfg.License.Driver = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Expected validation error")
	}
	if !strings.Contains(err.Error(), "grading.budget") || !strings.Contains(err.Error(), "license.driver") {
		t.Errorf("Expected both problems reported, got %v", err)
	}
}

func TestConfigValidate_DisabledGrammarIgnoresEndpoint(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Grammar.Endpoint = ""
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected disabled grammar checker to skip endpoint check, got %v", err)
	}
}
