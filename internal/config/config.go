package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/goccy/go-yaml"
)

type Config struct {
	Transfer TransferConfig `yaml:"transfer"`
	Journal  JournalConfig  `yaml:"journal"`
	Logging  LoggingConfig  `yaml:"logging"`
}

type TransferConfig struct {
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	KnownHostsFile string        `yaml:"known_hosts_file"`
	MinFreeBytes   int64         `yaml:"min_free_bytes"`
}

type JournalConfig struct {
	// Path enables the run journal when set.
	Path string `yaml:"path"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// EnvConfigPath names the config file when no --config flag is given.
const EnvConfigPath = "SHUTTLE_CONFIG"

// Load reads the configuration file with environment variable expansion.
// An empty path falls back to $SHUTTLE_CONFIG; if neither names a file,
// defaults apply.
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = os.Getenv(EnvConfigPath)
	}

	config := defaults()
	if configPath == "" {
		return config, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables
	content := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(content), config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	if err := config.ensureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to create directories: %w", err)
	}

	return config, nil
}

func defaults() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Transfer.ConnectTimeout <= 0 {
		c.Transfer.ConnectTimeout = 30 * time.Second
	}
	if c.Transfer.KnownHostsFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		c.Transfer.KnownHostsFile = filepath.Join(home, ".shuttle", "known_hosts")
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func (c *Config) validate() error {
	if c.Transfer.MinFreeBytes < 0 {
		return fmt.Errorf("min_free_bytes cannot be negative")
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %s", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format: %s", c.Logging.Format)
	}
	return nil
}

func (c *Config) ensureDirectories() error {
	dirs := []string{
		filepath.Dir(c.Transfer.KnownHostsFile),
	}
	if c.Journal.Path != "" {
		dirs = append(dirs, filepath.Dir(c.Journal.Path))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
