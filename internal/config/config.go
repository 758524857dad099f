package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/cleared-dev/statements/internal/profile"
)

// FileName is the default config file name.
const FileName = "statements.yaml"

// Config represents statements.yaml.
type Config struct {
	Timezone       string            `yaml:"timezone"`
	HeaderRow      int               `yaml:"header_row"`
	DefaultProfile string            `yaml:"default_profile"`
	Server         ServerConfig      `yaml:"server"`
	Log            LogConfig         `yaml:"log"`
	Profiles       []profile.Profile `yaml:"profiles,omitempty"`
}

// ServerConfig controls the HTTP shell.
type ServerConfig struct {
	Addr         string        `yaml:"addr"`
	MaxUploadMB  int           `yaml:"max_upload_mb"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// LogConfig controls logger output.
type LogConfig struct {
	Level  string `yaml:"level"`  // zerolog level name
	Format string `yaml:"format"` // "console" or "json"
}

// Load reads a statements.yaml file from disk. Fields missing from the file
// keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// LoadOrDefault loads path if it exists and falls back to defaults
// otherwise. The environment overlay is applied either way.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults.
func Default() *Config {
	return &Config{
		Timezone:       "Europe/Berlin",
		HeaderRow:      0,
		DefaultProfile: profile.Standard,
		Server: ServerConfig{
			Addr:         ":8080",
			MaxUploadMB:  10,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// ApplyEnv overrides fields from the environment, loading a .env file
// from the working directory first if one exists.
func (c *Config) ApplyEnv() error {
	_ = godotenv.Load()

	if v := os.Getenv("STATEMENTS_TIMEZONE"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("STATEMENTS_HEADER_ROW"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("STATEMENTS_HEADER_ROW %q: %w", v, err)
		}
		c.HeaderRow = n
	}
	if v := os.Getenv("STATEMENTS_PROFILE"); v != "" {
		c.DefaultProfile = v
	}
	if v := os.Getenv("STATEMENTS_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("STATEMENTS_LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	return nil
}

// Validate checks that the config can be used.
func (c *Config) Validate() error {
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.HeaderRow < 0 {
		return fmt.Errorf("header_row must be >= 0, got %d", c.HeaderRow)
	}
	if c.Server.MaxUploadMB <= 0 {
		return fmt.Errorf("server.max_upload_mb must be > 0, got %d", c.Server.MaxUploadMB)
	}
	if _, err := c.Registry(); err != nil {
		return err
	}
	return nil
}

// Location loads the configured timezone.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Registry returns the built-in profiles plus the profiles defined in the
// config file. The default profile must exist in the result.
func (c *Config) Registry() (*profile.Registry, error) {
	reg := profile.DefaultRegistry()
	for _, p := range c.Profiles {
		if err := reg.Add(p); err != nil {
			return nil, fmt.Errorf("config profiles: %w", err)
		}
	}
	if !reg.Has(c.DefaultProfile) {
		return nil, fmt.Errorf("default_profile %q is not defined", c.DefaultProfile)
	}
	return reg, nil
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Server.MaxUploadMB) << 20
}
