package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

const (
	// ProjectConfigFile is the name of the project-level config file
	ProjectConfigFile = "aquarium-opil.yaml"
	// UserConfigDir is the directory for user-level config
	UserConfigDir = ".config/aquarium-opil"
	// UserConfigFile is the name of the user-level config file
	UserConfigFile = "config.yaml"
	// EnvNATSURL overrides nats.url
	EnvNATSURL = "AQUARIUM_OPIL_NATS_URL"
)

// Loader handles configuration loading with layered precedence
type Loader struct {
	logger *slog.Logger

	// workDir is where the project config search starts (default: cwd)
	workDir string
	// homeDir holds the user config (default: os.UserHomeDir)
	homeDir string
	getenv  func(string) string
}

// LoaderOption configures a Loader
type LoaderOption func(*Loader)

// WithWorkDir starts the project config search in dir.
func WithWorkDir(dir string) LoaderOption {
	return func(l *Loader) { l.workDir = dir }
}

// WithHomeDir reads the user config below dir.
func WithHomeDir(dir string) LoaderOption {
	return func(l *Loader) { l.homeDir = dir }
}

// WithGetenv replaces os.Getenv.
func WithGetenv(getenv func(string) string) LoaderOption {
	return func(l *Loader) { l.getenv = getenv }
}

// NewLoader creates a new configuration loader
func NewLoader(logger *slog.Logger, opts ...LoaderOption) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Loader{logger: logger, getenv: os.Getenv}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load loads configuration with layered precedence:
// 1. Default config
// 2. User config (~/.config/aquarium-opil/config.yaml)
// 3. Project config (aquarium-opil.yaml in current or parent directories),
// or explicitPath when set
// 4. Environment variables
//
// It returns the config and the path of the project-level file it used,
// which is empty when none was found.
func (l *Loader) Load(explicitPath string) (*Config, string, error) {
	config := DefaultConfig()

	if userConfigPath := l.userConfigPath(); userConfigPath != "" {
		if userConfig, err := LoadLayer(userConfigPath); err == nil {
			l.logger.Debug("Loaded user config", slog.String("path", userConfigPath))
			config.Merge(userConfig)
		} else if !errors.Is(err, fs.ErrNotExist) {
			l.logger.Warn("Failed to load user config", slog.String("path", userConfigPath), slog.String("error", err.Error()))
		}
	}

	projectConfigPath := explicitPath
	if projectConfigPath == "" {
		projectConfigPath = l.FindProjectConfig()
	}
	if projectConfigPath != "" {
		projectConfig, err := LoadLayer(projectConfigPath)
		if err != nil {
			// An explicit --config must exist and parse.
			if explicitPath != "" {
				return nil, "", err
			}
			l.logger.Warn("Failed to load project config", slog.String("path", projectConfigPath), slog.String("error", err.Error()))
		} else {
			l.logger.Debug("Loaded project config", slog.String("path", projectConfigPath))
			config.Merge(projectConfig)
		}
	} else {
		l.logger.Debug("No project config found")
	}

	if natsURL := l.getenv(EnvNATSURL); natsURL != "" {
		config.NATS.URL = natsURL
		l.logger.Debug("NATS URL from environment", slog.String("url", natsURL))
	}

	if err := config.Validate(); err != nil {
		return nil, "", err
	}

	return config, projectConfigPath, nil
}

// EnsureProjectConfig writes a default project config into the work
// directory if none exists there and returns its path.
func (l *Loader) EnsureProjectConfig() (string, error) {
	path := filepath.Join(l.startDir(), ProjectConfigFile)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	if err := DefaultConfig().SaveToFile(path); err != nil {
		return "", err
	}

	l.logger.Info("Created default project config", slog.String("path", path))
	return path, nil
}

// userConfigPath returns the path to the user config file
func (l *Loader) userConfigPath() string {
	home := l.homeDir
	if home == "" {
		var err error
		if home, err = os.UserHomeDir(); err != nil {
			return ""
		}
	}
	return filepath.Join(home, UserConfigDir, UserConfigFile)
}

func (l *Loader) startDir() string {
	if l.workDir != "" {
		return l.workDir
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

// FindProjectConfig searches for aquarium-opil.yaml in the work directory
// and its parents.
func (l *Loader) FindProjectConfig() string {
	dir, err := filepath.Abs(l.startDir())
	if err != nil {
		return ""
	}

	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}
