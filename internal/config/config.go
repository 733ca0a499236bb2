package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. UNC_WORKERS.
const EnvPrefix = "UNC_"

// DefaultConfigFile is read when no --config flag is given and it exists.
const DefaultConfigFile = ".unc.yaml"

// NoNumbers disables numeric suffixing.
const NoNumbers = -1

// MaxNumberRange caps the numeric suffix range. At the cap a single
// case-sensitive record already yields about 18 million candidates.
const MaxNumberRange = 1_000_000

var (
	ErrNoInput          = errors.New("no input file specified")
	ErrInvalidNumbers   = errors.New("number range must be between -1 and 1000000")
	ErrInvalidWorkers   = errors.New("workers must be >= 0")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
)

var dotEnvLoaded sync.Once

// Config holds all uncreator configuration.
type Config struct {
	Run     RunConfig     `yaml:"run"`
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfig returns the default configuration. OutputPath is left empty;
// callers fill it with DefaultOutputPath when nothing else sets it.
func DefaultConfig() *Config {
	return &Config{
		Run: RunConfig{
			NumberRange:       NoNumbers,
			SubstitutionsPath: "common_substitutions.txt",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file, then applies UNC_* environment
// overrides. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case os.IsNotExist(err):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration as YAML. The file is replaced by rename, so a
// reader sees either the old or the new content.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace config %s: %w", path, err)
	}
	return nil
}

// applyEnvOverrides reads a .env file once per process, then overlays every
// UNC_* variable that is set.
func (c *Config) applyEnvOverrides() error {
	dotEnvLoaded.Do(func() {
		// .env is optional
		_ = godotenv.Load()
	})
	if err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix}); err != nil {
		return fmt.Errorf("failed to apply environment overrides: %w", err)
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.Run.Validate(); err != nil {
		return err
	}
	return c.Logging.Validate()
}

// DefaultOutputPath derives the output file name from a timestamp.
func DefaultOutputPath(now time.Time) string {
	return "usernames_" + now.Format("20060102-150405")
}
