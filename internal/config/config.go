// Copyright 2026 The flowrace Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads the CLI configuration, with precedence
// defaults < YAML file < environment variables. The Langflow API key
// is environment-only by default so that it stays out of config
// files.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// EnvAPIKey is the environment variable holding the Langflow API key.
const EnvAPIKey = "LANGFLOW_API_KEY"

// Config is the complete CLI configuration.
type Config struct {
	Langflow LangflowConfig `yaml:"langflow"`
	Race     RaceConfig     `yaml:"race"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LangflowConfig identifies the Langflow instance and the flows to
// race.
type LangflowConfig struct {
	// BaseURL is the flow run endpoint.
	BaseURL string `yaml:"base_url" env:"FLOWRACE_BASE_URL"`
	// APIKey authenticates against Langflow. It is normally supplied
	// via the LANGFLOW_API_KEY environment variable rather than the
	// config file.
	APIKey string `yaml:"api_key"`
	// Flows is the ordered list of flow ids to race. List order is
	// stagger order.
	Flows []string `yaml:"flows"`
	// CallTimeout bounds a single flow invocation. Zero means no
	// deadline.
	CallTimeout time.Duration `yaml:"call_timeout" env:"FLOWRACE_CALL_TIMEOUT"`
}

// RaceConfig tunes the staggered race.
type RaceConfig struct {
	// StaggerInterval is the delay between successive flow starts.
	StaggerInterval time.Duration `yaml:"stagger_interval" env:"FLOWRACE_STAGGER_INTERVAL"`
	// MaxAttempts is the total number of cohort attempts before the
	// race is declared exhausted.
	MaxAttempts int `yaml:"max_attempts" env:"FLOWRACE_MAX_ATTEMPTS"`
	// Cooldown is the unconditional wait between a failed attempt and
	// the next.
	Cooldown time.Duration `yaml:"cooldown" env:"FLOWRACE_COOLDOWN"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `yaml:"level" env:"FLOWRACE_LOG_LEVEL"`
	Format     string `yaml:"format" env:"FLOWRACE_LOG_FORMAT"`
	Output     string `yaml:"output" env:"FLOWRACE_LOG_OUTPUT"`
	FilePath   string `yaml:"file_path" env:"FLOWRACE_LOG_FILE"`
	MaxSize    int    `yaml:"max_size"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAge     int    `yaml:"max_age"`
}

// Default returns a Config with default values: the local Langflow
// instance, a 7 second stagger, 3 attempts with a 2 second cooldown,
// and console logging at info level.
func Default() *Config {
	return &Config{
		Langflow: LangflowConfig{
			BaseURL:     "http://localhost:7860/api/v1/run",
			CallTimeout: 2 * time.Minute,
		},
		Race: RaceConfig{
			StaggerInterval: 7 * time.Second,
			MaxAttempts:     3,
			Cooldown:        2 * time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Output: "stdout",
		},
	}
}

// Load builds the configuration from defaults, the YAML file at path
// (if path is non-empty and the file exists), and environment
// variable overrides, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv applies environment variable overrides. The override set
// is explicit rather than reflective: the config is small and an
// explicit list keeps the valid variables greppable.
func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvAPIKey); v != "" {
		c.Langflow.APIKey = v
	}
	if v := os.Getenv("FLOWRACE_BASE_URL"); v != "" {
		c.Langflow.BaseURL = v
	}
	overrides := []struct {
		name  string
		apply func(string) error
	}{
		{"FLOWRACE_CALL_TIMEOUT", durationVar(&c.Langflow.CallTimeout)},
		{"FLOWRACE_STAGGER_INTERVAL", durationVar(&c.Race.StaggerInterval)},
		{"FLOWRACE_COOLDOWN", durationVar(&c.Race.Cooldown)},
		{"FLOWRACE_MAX_ATTEMPTS", intVar(&c.Race.MaxAttempts)},
		{"FLOWRACE_LOG_LEVEL", stringVar(&c.Logging.Level)},
		{"FLOWRACE_LOG_FORMAT", stringVar(&c.Logging.Format)},
		{"FLOWRACE_LOG_OUTPUT", stringVar(&c.Logging.Output)},
		{"FLOWRACE_LOG_FILE", stringVar(&c.Logging.FilePath)},
	}
	for _, o := range overrides {
		v := os.Getenv(o.name)
		if v == "" {
			continue
		}
		if err := o.apply(v); err != nil {
			return fmt.Errorf("config: %s: %w", o.name, err)
		}
	}
	return nil
}

// Validate reports the first problem that would prevent the CLI from
// racing.
func (c *Config) Validate() error {
	if c.Langflow.APIKey == "" {
		return errors.New("config: no API key: set the " + EnvAPIKey + " environment variable")
	}
	if len(c.Langflow.Flows) == 0 {
		return errors.New("config: no flows configured")
	}
	if c.Race.StaggerInterval < 0 {
		return errors.New("config: negative stagger interval")
	}
	if c.Race.MaxAttempts < 1 {
		return errors.New("config: max attempts must be at least 1")
	}
	if c.Race.Cooldown < 0 {
		return errors.New("config: negative cooldown")
	}
	return nil
}

func durationVar(p *time.Duration) func(string) error {
	return func(v string) error {
		d, err := time.ParseDuration(v)
		if err != nil {
			return err
		}
		*p = d
		return nil
	}
}

func intVar(p *int) func(string) error {
	return func(v string) error {
		i, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		*p = i
		return nil
	}
}

func stringVar(p *string) func(string) error {
	return func(v string) error {
		*p = v
		return nil
	}
}
