package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/avior/infuser/internal/domain"
	"github.com/avior/infuser/internal/scheduler"
)

const (
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendJSONFile = "jsonfile"
)

type StoreConfig struct {
	Backend  string `yaml:"backend"`
	Path     string `yaml:"path"`
	RedisURL string `yaml:"redis_url"`
}

type ParameterRule struct {
	Match      string                   `yaml:"match"`
	Parameters []domain.CustomParameter `yaml:"parameters"`
}

type Config struct {
	DataDir        string          `yaml:"data_dir"`
	Store          StoreConfig     `yaml:"store"`
	DefaultWorker  string          `yaml:"default_worker"`
	TieBreak       string          `yaml:"tie_break"`
	LogLevel       string          `yaml:"log_level"`
	LogFormat      string          `yaml:"log_format"`
	Port           int             `yaml:"port"`
	APITokenHash   string          `yaml:"api_token_hash"`
	JournalPath    string          `yaml:"journal_path"`
	ParameterRules []ParameterRule `yaml:"parameter_rules"`
}

func defaults() *Config {
	return &Config{
		DataDir:   "/data",
		Store:     StoreConfig{Backend: BackendSQLite},
		TieBreak:  string(scheduler.TieBreakLegacy),
		LogLevel:  "info",
		LogFormat: "console",
		Port:      7890,
	}
}

// Load builds the configuration from defaults, the optional file at path and
// the environment, in that order. An empty path falls back to INFUSER_CONFIG.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path == "" {
		path = os.Getenv("INFUSER_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.fillPaths()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.DataDir = getEnv("INFUSER_DATA_DIR", c.DataDir)
	c.Store.Backend = getEnv("INFUSER_STORE", c.Store.Backend)
	c.Store.Path = getEnv("INFUSER_STORE_PATH", c.Store.Path)
	c.Store.RedisURL = getEnv("INFUSER_REDIS_URL", c.Store.RedisURL)
	c.DefaultWorker = getEnv("INFUSER_DEFAULT_WORKER", c.DefaultWorker)
	c.TieBreak = getEnv("INFUSER_TIE_BREAK", c.TieBreak)
	c.LogLevel = getEnv("LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("INFUSER_LOG_FORMAT", c.LogFormat)
	c.APITokenHash = getEnv("INFUSER_API_TOKEN_HASH", c.APITokenHash)
	c.JournalPath = getEnv("INFUSER_JOURNAL", c.JournalPath)

	port, err := strconv.Atoi(getEnv("PORT", strconv.Itoa(c.Port)))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}
	c.Port = port
	return nil
}

func (c *Config) fillPaths() {
	if c.Store.Path == "" {
		switch c.Store.Backend {
		case BackendSQLite:
			c.Store.Path = filepath.Join(c.DataDir, "infuser.db")
		case BackendJSONFile:
			c.Store.Path = c.DataDir
		}
	}
	if c.JournalPath == "" {
		c.JournalPath = filepath.Join(c.DataDir, "failed_submissions.jsonl")
	}
}

// Validate reports the first setting that would make submissions fail for
// every job.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.DefaultWorker) == "" {
		return &domain.Error{Kind: domain.KindConfiguration, Op: "config", Msg: "default_worker is required"}
	}

	switch c.Store.Backend {
	case BackendSQLite, BackendJSONFile:
	case BackendRedis:
		if c.Store.RedisURL == "" {
			return &domain.Error{Kind: domain.KindConfiguration, Op: "config", Msg: "store.redis_url is required for the redis backend"}
		}
	default:
		return &domain.Error{Kind: domain.KindConfiguration, Op: "config", Msg: fmt.Sprintf("unknown store backend %q", c.Store.Backend)}
	}

	if _, err := scheduler.ParseTieBreak(c.TieBreak); err != nil {
		return &domain.Error{Kind: domain.KindConfiguration, Op: "config", Err: err}
	}

	if c.Port <= 0 || c.Port > 65535 {
		return &domain.Error{Kind: domain.KindConfiguration, Op: "config", Msg: fmt.Sprintf("port %d out of range", c.Port)}
	}
	return nil
}

// SelectorTieBreak returns the parsed tie-break policy. Only valid after
// Validate succeeded.
func (c *Config) SelectorTieBreak() scheduler.TieBreak {
	tb, _ := scheduler.ParseTieBreak(c.TieBreak)
	return tb
}

// LoadRoster reads a worker roster file. The file holds either a list of
// workers or a mapping with a "workers" key.
func LoadRoster(path string) ([]domain.Worker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}

	var workers []domain.Worker
	if err := yaml.Unmarshal(data, &workers); err != nil {
		var wrapped struct {
			Workers []domain.Worker `yaml:"workers"`
		}
		if err2 := yaml.Unmarshal(data, &wrapped); err2 != nil {
			return nil, fmt.Errorf("parse roster %s: %w", path, errors.Join(err, err2))
		}
		workers = wrapped.Workers
	}

	for i, w := range workers {
		if strings.TrimSpace(w.Name) == "" {
			return nil, fmt.Errorf("roster %s: worker %d has no name", path, i+1)
		}
		if w.MaximumJobs < 0 {
			return nil, fmt.Errorf("roster %s: worker %q has negative maximum_jobs", path, w.Name)
		}
	}
	return workers, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
