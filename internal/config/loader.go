package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	// UserConfigDir is the directory for the user config, relative to home
	UserConfigDir = ".config/launchboard"
	// UserConfigFile is the name of the user config file
	UserConfigFile = "config.yaml"
	// DotEnvFile is read from the working directory when present
	DotEnvFile = ".env"
)

// Environment variables that override the config file.
const (
	EnvEndpoint = "LAUNCHBOARD_ENDPOINT"
	EnvDB       = "LAUNCHBOARD_DB"
	EnvLogLevel = "LAUNCHBOARD_LOG_LEVEL"
	EnvNow      = "LAUNCHBOARD_NOW"
)

// Overrides carries command-line values; empty fields are ignored.
type Overrides struct {
	Endpoint string
	DBPath   string
	LogLevel string
}

// Loader handles configuration loading with layered precedence.
type Loader struct {
	logger *logrus.Logger
	lookup func(string) (string, bool)
	dotenv string
}

// NewLoader creates a loader that reads the process environment.
func NewLoader(logger *logrus.Logger) *Loader {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Loader{logger: logger, lookup: os.LookupEnv, dotenv: DotEnvFile}
}

// Load builds the configuration, each layer overriding the one before:
//  1. defaults
//  2. the config file (path, or the user config when path is empty)
//  3. .env and environment variables
//  4. overrides
//
// An explicit path must exist; a missing user config is fine.
func (l *Loader) Load(path string, overrides Overrides) (*Config, error) {
	config := DefaultConfig()

	explicit := path != ""
	if !explicit {
		path = UserConfigPath()
	}
	if path != "" {
		fileConfig, err := LoadFromFile(path)
		switch {
		case err == nil:
			l.logger.WithField("path", path).Debug("loaded config file")
			config.Merge(fileConfig)
		case explicit || !errors.Is(err, fs.ErrNotExist):
			return nil, err
		default:
			l.logger.WithField("path", path).Debug("no config file")
		}
	}

	l.loadDotEnv()
	l.applyEnv(config)
	config.Merge(&Config{
		Remote: RemoteConfig{BaseURL: overrides.Endpoint},
		Local:  LocalConfig{Path: overrides.DBPath},
		Log:    LogConfig{Level: overrides.LogLevel},
	})

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// loadDotEnv exports .env entries that are not already set.
func (l *Loader) loadDotEnv() {
	if l.dotenv == "" {
		return
	}
	if err := godotenv.Load(l.dotenv); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			l.logger.WithError(err).WithField("path", l.dotenv).Warn("failed to read env file")
		}
		return
	}
	l.logger.WithField("path", l.dotenv).Debug("loaded env file")
}

func (l *Loader) applyEnv(config *Config) {
	env := func(key string) string {
		if v, ok := l.lookup(key); ok {
			return v
		}
		return ""
	}
	config.Merge(&Config{
		Remote: RemoteConfig{BaseURL: env(EnvEndpoint)},
		Local:  LocalConfig{Path: env(EnvDB)},
		Launch: LaunchConfig{Now: env(EnvNow)},
		Log:    LogConfig{Level: env(EnvLogLevel)},
	})
}

// EnsureUserConfig writes the default config to the user config path
// unless a file is already there, and returns the path.
func (l *Loader) EnsureUserConfig() (string, error) {
	path := UserConfigPath()
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := DefaultConfig().SaveToFile(path); err != nil {
		return "", err
	}

	l.logger.WithField("path", path).Info("created default user config")
	return path, nil
}

// UserConfigPath returns ~/.config/launchboard/config.yaml, or "" when the
// home directory is unknown.
func UserConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}
