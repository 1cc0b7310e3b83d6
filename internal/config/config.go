package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration for KostScope.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	AI        AIConfig        `yaml:"ai"`
	Mock      MockConfig      `yaml:"mock"`
	Snapshots SnapshotsConfig `yaml:"snapshots"`
}

type ServerConfig struct {
	Address string `yaml:"address"`
	Port    int    `yaml:"port"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"` // empty means in-memory
}

type AIConfig struct {
	Enabled bool     `yaml:"enabled"`
	Model   string   `yaml:"model"`
	Timeout Duration `yaml:"timeout"`
}

// Duration decodes YAML values like "30s" or "2m". A bare number is rejected;
// the unit is required.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	parsed, err := time.ParseDuration(value.Value)
	if err != nil {
		return fmt.Errorf("parsing duration %q: %w", value.Value, err)
	}
	*d = Duration(parsed)
	return nil
}

type MockConfig struct {
	Clusters int `yaml:"clusters"` // clusters created when seeding an empty store
}

type SnapshotsConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Schedule string `yaml:"schedule"` // cron expression for the daily cost snapshot
}

// DefaultConfig returns a Config with sensible defaults.
// The AI integration stays off unless ANTHROPIC_API_KEY is set.
func DefaultConfig() *Config {
	cfg := &Config{
		Server: ServerConfig{
			Address: "0.0.0.0",
			Port:    8001,
		},
		Database: DatabaseConfig{
			Path: "/data/kostscope.db",
		},
		AI: AIConfig{
			Enabled: false,
			Model:   "claude-sonnet-4-6",
			Timeout: Duration(30 * time.Second),
		},
		Mock: MockConfig{
			Clusters: 3,
		},
		Snapshots: SnapshotsConfig{
			Enabled:  true,
			Schedule: "0 0 * * *",
		},
	}

	cfg.applyEnvOverrides()
	return cfg
}

// LoadFromFile loads config from a YAML file, overlaying on defaults.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides fills in fields from environment variables so the binary
// remains deployable with nothing but env vars.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("KOSTSCOPE_DB_PATH"); v != "" {
		c.Database.Path = v
	}
	// The Anthropic client reads ANTHROPIC_API_KEY itself; its presence is
	// what turns the insight integration on.
	if os.Getenv("ANTHROPIC_API_KEY") != "" {
		c.AI.Enabled = true
	}
}

// Validate checks the config for errors.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Mock.Clusters < 1 {
		return fmt.Errorf("mock.clusters must be >= 1, got %d", c.Mock.Clusters)
	}
	if c.AI.Enabled && c.AI.Timeout <= 0 {
		return fmt.Errorf("ai.timeout must be positive, got %v", time.Duration(c.AI.Timeout))
	}
	if c.Snapshots.Enabled && c.Snapshots.Schedule == "" {
		return fmt.Errorf("snapshots.schedule is required when snapshots are enabled")
	}
	return nil
}
