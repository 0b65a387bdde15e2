package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/alexanderramin/studyplanner/internal/llm"
)

// Config holds process-level settings.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Logging  LoggingConfig  `yaml:"logging"`
	LLM      llm.LLMConfig  `yaml:"llm"`
}

type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// DatabaseConfig locates the schedule store. An empty path disables
// persistence.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // auto, console, json
}

func DefaultConfig() *Config {
	return &Config{
		Server:   ServerConfig{Addr: ":8080"},
		Database: DatabaseConfig{Path: DefaultDBPath()},
		Logging:  LoggingConfig{Level: "info", Format: "auto"},
		LLM:      llm.DefaultConfig(),
	}
}

// DefaultDBPath is ~/.studyplanner/studyplanner.db, or a relative path when
// the home directory is unknown.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".studyplanner", "studyplanner.db")
	}
	return filepath.Join(home, ".studyplanner", "studyplanner.db")
}

// DefaultPath is the config file read when none is given: $STUDYPLANNER_CONFIG
// or studyplanner.yaml in the working directory.
func DefaultPath() string {
	if p := os.Getenv("STUDYPLANNER_CONFIG"); p != "" {
		return p
	}
	return "studyplanner.yaml"
}

// Load reads path over the defaults, then applies environment overrides. A
// missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	if addr := os.Getenv("STUDYPLANNER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if path, ok := os.LookupEnv("STUDYPLANNER_DB"); ok {
		c.Database.Path = path
	}
	if level := os.Getenv("STUDYPLANNER_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("STUDYPLANNER_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	llm.ApplyEnv(&c.LLM)
}

var (
	validProviders = []llm.Provider{llm.ProviderGemini, llm.ProviderOllama}
	validFormats   = []string{"auto", "console", "json"}
)

// Validate rejects unknown providers and log formats. A missing API key is
// not a configuration error; calls fail when they are made.
func (c *Config) Validate() error {
	ok := false
	for _, p := range validProviders {
		if c.LLM.Provider == p {
			ok = true
		}
	}
	if !ok {
		return fmt.Errorf("invalid LLM provider: %s (valid: %v)", c.LLM.Provider, validProviders)
	}

	format := strings.ToLower(c.Logging.Format)
	for _, f := range validFormats {
		if format == f {
			return nil
		}
	}
	return fmt.Errorf("invalid log format: %s (valid: %v)", c.Logging.Format, validFormats)
}

// Save writes the config as YAML, creating the directory.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
