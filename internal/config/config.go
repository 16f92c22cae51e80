package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"dario.cat/mergo"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultUserID    = "605976"
	DefaultStartYear = 2006
	DefaultBaseURL   = "https://api.bgm.tv"
)

// Config represents the application configuration
type Config struct {
	Bangumi  BangumiConfig  `yaml:"bangumi,omitempty"`
	Grid     GridConfig     `yaml:"grid,omitempty"`
	Export   ExportConfig   `yaml:"export,omitempty"`
	Analysis AnalysisConfig `yaml:"analysis,omitempty"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
}

// BangumiConfig contains settings for talking to the Bangumi API
type BangumiConfig struct {
	BaseURL string `yaml:"base_url,omitempty"`
	// Bangumi asks API consumers to identify themselves
	UserAgent string `yaml:"user_agent,omitempty"`
	// Optional personal access token.  Needed to see collections the user has marked private.
	AccessToken       string        `yaml:"access_token,omitempty"`
	Timeout           time.Duration `yaml:"timeout,omitempty"`
	RequestsPerSecond float64       `yaml:"requests_per_second,omitempty"`
}

// GridConfig contains the grid preferences, most of which are remembered between runs
type GridConfig struct {
	UserID    string `yaml:"user_id,omitempty"`
	StartYear int    `yaml:"start_year,omitempty"`
	Theme     string `yaml:"theme,omitempty"`
	// Pointers so an explicit false in the config file survives the merge over the defaults
	ExportProfile *bool `yaml:"export_profile,omitempty"`
	ExportChart   *bool `yaml:"export_chart,omitempty"`
}

// IncludeProfile reports whether the profile block should be part of exported images
func (g GridConfig) IncludeProfile() bool {
	return g.ExportProfile == nil || *g.ExportProfile
}

// IncludeChart reports whether the chart block should be part of exported images
func (g GridConfig) IncludeChart() bool {
	return g.ExportChart == nil || *g.ExportChart
}

// ExportConfig contains image export settings
type ExportConfig struct {
	Dir string `yaml:"dir,omitempty"`
	// Path to a Chrome/Chromium binary.  When empty one is located or downloaded automatically.
	BrowserBin string  `yaml:"browser_bin,omitempty"`
	Scale      float64 `yaml:"scale,omitempty"`
}

// AnalysisConfig contains settings for the taste analysis text service
type AnalysisConfig struct {
	APIKey string `yaml:"api_key,omitempty"`
	Model  string `yaml:"model,omitempty"`
}

// LoggingConfig contains log related settings
type LoggingConfig struct {
	Level    string `yaml:"level,omitempty"`
	FilePath string `yaml:"file_path,omitempty"`
}

// Load builds a configuration struct from multiple sources using these steps:
// 1. Create a base config with default values
// 2. If no config file exists on disk, save the default config to that location
// 3. Apply 'dynamic' properties.  Dynamic properties are those that are determined at runtime, for example log file location which is different per OS.
// 4. Load & merge the config file, overwriting any defaults with user-specified values
// 5. Load a .env file into the environment if one exists
// 6. Apply environment variable overrides
func Load() (*Config, error) {
	// 1. Start with base defaults
	cfg := createBaseDefaultConfig()

	configPath, err := getConfigPath()
	if err != nil {
		return nil, fmt.Errorf("unable to determine config file path: %w", err)
	}

	// 2. If no config file exists on disk, then write a default one
	if _, err := os.Stat(configPath); errors.Is(err, os.ErrNotExist) {
		// If there is an error saving the default config, then still let the application startup using the defaults.
		_ = save(cfg, configPath)
	}

	// 3. Apply dynamic defaults if necessary
	applyDynamicDefaults(cfg)

	// 4. Load the config from disk and merge it into the base defaults
	fileConfig, err := loadFromDisk(configPath)
	if err != nil {
		return nil, err
	}
	// Overrides the config with any values coming from the loaded file
	if err = mergo.Merge(cfg, fileConfig, mergo.WithOverride); err != nil {
		return nil, fmt.Errorf("error merging config loaded from disk: %w", err)
	}

	// 5. .env values never replace variables already present in the environment
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	// 6. Apply the environment variable overrides which take precedence
	if err := applyEnvVarOverrides(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDynamicDefaults sets runtime-determined default values for any properties that haven't been explicitly configured.
// Unlike static defaults, these values might change between runs based on the environment or system configuration.
func applyDynamicDefaults(cfg *Config) {
	cfg.Logging.FilePath = defaultLogFilePath()
	cfg.Export.Dir = defaultExportDir()
}

// loadFromDisk loads the YAML config from disk and returns the unmarshalled Config
func loadFromDisk(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("unable to read config file: %w", err)
	}

	cfg := &Config{}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("unable to parse config file: %w", err)
	}

	return cfg, nil
}

// loadDotEnv loads the file named by SEDAI_ENV_FILE, or ./.env, into the process environment
func loadDotEnv() error {
	path := os.Getenv("SEDAI_ENV_FILE")
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("unable to load env file %s: %w", path, err)
	}
	return nil
}

func save(cfg *Config, configPath string) error {
	// Create config dir if not exists
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(configPath, data, 0600)
}

// UpdateConfig reads the existing config, applies the update function, and saves it back to disk
func UpdateConfig(updateFn func(*Config)) error {
	configPath, err := getConfigPath()
	if err != nil {
		return fmt.Errorf("unable to determine config file path: %w", err)
	}

	cfg, err := loadFromDisk(configPath)
	if err != nil {
		return fmt.Errorf("error loading config file from disk: %w", err)
	}

	// Apply the updates
	updateFn(cfg)

	return save(cfg, configPath)
}

// getConfigPath returns the path to the config file.  Uses the environment variable override if present, else tries
// to use OS config location defaults.
func getConfigPath() (string, error) {
	configPath := os.Getenv("SEDAI_CONFIG_PATH")
	if configPath != "" {
		return configPath, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "sedai", "config.yaml"), nil
}

// createBaseDefaultConfig creates a config with all default values
func createBaseDefaultConfig() *Config {
	return &Config{
		Bangumi: BangumiConfig{
			BaseURL:           DefaultBaseURL,
			Timeout:           15 * time.Second,
			RequestsPerSecond: 2,
		},
		Grid: GridConfig{
			UserID:    DefaultUserID,
			StartYear: DefaultStartYear,
			Theme:     "default",
		},
		Export: ExportConfig{
			Scale: 2,
		},
		Analysis: AnalysisConfig{
			Model: "gemini-2.5-flash",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// defaultLogFilePath returns the path to the log file.  Tries to use expected OS location defaults.
func defaultLogFilePath() string {
	var basePath string
	homedir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to logging in the current directory if home directory cannot be determined
		return filepath.Join(".", "sedai.log")
	}

	switch runtime.GOOS {
	case "windows":
		// Windows:  %LOCALAPPDATA%\sedai\logs
		if appData := os.Getenv("LOCALAPPDATA"); appData != "" {
			basePath = filepath.Join(appData, "sedai", "logs")
		} else {
			basePath = filepath.Join(homedir, "AppData", "local", "sedai", "logs")
		}
	case "darwin":
		// macOS:  ~/Library/Logs/sedai
		basePath = filepath.Join(homedir, "Library", "Logs", "sedai")
	default:
		// Linux/BSD:  XDG_STATE_HOME
		if xdgState := os.Getenv("XDG_STATE_HOME"); xdgState != "" {
			basePath = filepath.Join(xdgState, "sedai", "logs")
		} else {
			basePath = filepath.Join(homedir, ".local", "state", "sedai", "logs")
		}
	}

	err = os.MkdirAll(basePath, 0700)
	if err != nil {
		// If we failed to create the directory, fallback to logging in the current directory
		return filepath.Join(".", "sedai.log")
	}
	return filepath.Join(basePath, "sedai.log")
}

// defaultExportDir returns where exported images are written when no directory is configured
func defaultExportDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		dir := filepath.Join(home, "Pictures")
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			return dir
		}
	}
	return "."
}
