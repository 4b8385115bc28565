// Package config provides configuration loading for launchboard.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/baiirun/launchboard/internal/db"
	"github.com/baiirun/launchboard/internal/remote"
	"github.com/baiirun/launchboard/internal/store"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the complete launchboard configuration.
type Config struct {
	Remote RemoteConfig `yaml:"remote"`
	Local  LocalConfig  `yaml:"local"`
	Launch LaunchConfig `yaml:"launch"`
	Log    LogConfig    `yaml:"log"`
}

// RemoteConfig points at the remote task collection.
type RemoteConfig struct {
	// BaseURL is the API origin, e.g. http://localhost:3000
	BaseURL string `yaml:"base_url" validate:"required,url"`
	// Collection is the path of the task collection under BaseURL
	Collection string `yaml:"collection" validate:"required"`
	// ListLimit caps how many tasks one list request asks for
	ListLimit int `yaml:"list_limit" validate:"min=1"`
	// Timeout bounds every remote request
	Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
}

// LocalConfig configures the fallback store.
type LocalConfig struct {
	Path string `yaml:"path" validate:"required"`
	Key  string `yaml:"key" validate:"required"`
}

// LaunchConfig sets the countdown target.
type LaunchConfig struct {
	// Date is the launch moment in local time
	Date string `yaml:"date" validate:"required"`
	// Now pins the countdown's idea of the current time; empty uses the clock
	Now string `yaml:"now,omitempty"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns a Config with the built-in defaults.
func DefaultConfig() *Config {
	// An unknown home directory leaves the path empty and Validate reports it.
	dbPath, _ := db.DefaultPath()
	return &Config{
		Remote: RemoteConfig{
			BaseURL:    "http://localhost:3000",
			Collection: remote.DefaultCollection,
			ListLimit:  1000,
			Timeout:    10 * time.Second,
		},
		Local: LocalConfig{
			Path: dbPath,
			Key:  store.DefaultKey,
		},
		Launch: LaunchConfig{
			Date: "2024-09-10T09:00:00",
		},
		Log: LogConfig{
			Level: "warn",
		},
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			fe := fieldErrs[0]
			return fmt.Errorf("%w: %s failed %q check", ErrInvalidConfig, yamlPath(fe.Namespace()), fe.Tag())
		}
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Launch.Time(); err != nil {
		return fmt.Errorf("%w: launch.date: %v", ErrInvalidConfig, err)
	}
	if _, err := c.Launch.Clock(); err != nil {
		return fmt.Errorf("%w: launch.now: %v", ErrInvalidConfig, err)
	}
	return nil
}

// yamlPath turns "Config.Remote.BaseURL" into "remote.baseurl".
func yamlPath(namespace string) string {
	_, rest, found := strings.Cut(namespace, ".")
	if !found {
		rest = namespace
	}
	return strings.ToLower(rest)
}

// LogLevel returns the parsed log level, defaulting to warn.
func (c *Config) LogLevel() logrus.Level {
	level, err := logrus.ParseLevel(c.Log.Level)
	if err != nil {
		return logrus.WarnLevel
	}
	return level
}

var launchLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// parseLocal parses an RFC 3339 timestamp, or a date with optional time
// in the local zone.
func parseLocal(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	for _, layout := range launchLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized time %q", s)
}

// Time returns the launch moment.
func (l LaunchConfig) Time() (time.Time, error) {
	return parseLocal(l.Date)
}

// Clock returns the countdown's clock: time.Now, or a fixed instant when
// Now is set.
func (l LaunchConfig) Clock() (func() time.Time, error) {
	if strings.TrimSpace(l.Now) == "" {
		return time.Now, nil
	}
	fixed, err := parseLocal(l.Now)
	if err != nil {
		return nil, err
	}
	return func() time.Time { return fixed }, nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// SaveToFile writes the configuration as YAML.
func (c *Config) SaveToFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Merge copies the non-zero values of other into c.
func (c *Config) Merge(other *Config) {
	if other == nil {
		return
	}

	if other.Remote.BaseURL != "" {
		c.Remote.BaseURL = other.Remote.BaseURL
	}
	if other.Remote.Collection != "" {
		c.Remote.Collection = other.Remote.Collection
	}
	if other.Remote.ListLimit != 0 {
		c.Remote.ListLimit = other.Remote.ListLimit
	}
	if other.Remote.Timeout != 0 {
		c.Remote.Timeout = other.Remote.Timeout
	}

	if other.Local.Path != "" {
		c.Local.Path = other.Local.Path
	}
	if other.Local.Key != "" {
		c.Local.Key = other.Local.Key
	}

	if other.Launch.Date != "" {
		c.Launch.Date = other.Launch.Date
	}
	if other.Launch.Now != "" {
		c.Launch.Now = other.Launch.Now
	}

	if other.Log.Level != "" {
		c.Log.Level = other.Log.Level
	}
}
