package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestConfig(t *testing.T) string {
	t.Helper()

	tmpDir := t.TempDir()
	tmpConfigPath := filepath.Join(tmpDir, "config.yaml")
	setEnv(t, "SEDAI_CONFIG_PATH", tmpConfigPath)
	// Point the .env lookup somewhere empty so a stray file in the working directory can't leak in
	setEnv(t, "SEDAI_ENV_FILE", filepath.Join(tmpDir, "missing.env"))

	t.Cleanup(func() {
		cleanupEnvVars(t)
	})

	return tmpConfigPath
}

// TestConfigIntegration tests the config package with actual file operations
// This test uses a temporary directory to avoid interfering with real user configs
func TestConfigIntegration(t *testing.T) {
	// Test loading when no config exists (should create default)
	t.Run("LoadDefaultConfig", func(t *testing.T) {
		tmpConfigPath := setupTestConfig(t)
		config := loadConfig(t)

		// Verify default values
		assert.Equal(t, DefaultBaseURL, config.Bangumi.BaseURL)
		assert.Equal(t, 15*time.Second, config.Bangumi.Timeout)
		assert.Equal(t, DefaultUserID, config.Grid.UserID)
		assert.Equal(t, DefaultStartYear, config.Grid.StartYear)
		assert.Equal(t, "default", config.Grid.Theme)
		assert.True(t, config.Grid.IncludeProfile())
		assert.True(t, config.Grid.IncludeChart())
		assert.Equal(t, "gemini-2.5-flash", config.Analysis.Model)
		assert.Equal(t, "info", config.Logging.Level)
		assert.NotEmpty(t, config.Logging.FilePath)
		assert.NotEmpty(t, config.Export.Dir)

		// Verify file was created
		if _, err := os.Stat(tmpConfigPath); os.IsNotExist(err) {
			t.Errorf("Config file was not created at %s", tmpConfigPath)
		}

		// Load the file from disk to assert that the 'dynamic' configurations were not saved when the default config was written
		savedConfig, _ := loadFromDisk(tmpConfigPath)
		assert.Empty(t, savedConfig.Logging.FilePath)
		assert.Empty(t, savedConfig.Export.Dir)
	})

	// Test saving and loading custom values
	t.Run("SaveAndLoadConfig", func(t *testing.T) {
		tmpConfigPath := setupTestConfig(t)
		no := false
		customConfig := &Config{
			Bangumi: BangumiConfig{
				BaseURL:     "http://localhost:9000",
				AccessToken: "test-token",
				Timeout:     3 * time.Second,
			},
			Grid: GridConfig{
				UserID:        "sai",
				StartYear:     1999,
				Theme:         "miku",
				ExportProfile: &no,
			},
			Export: ExportConfig{
				Dir:   "/tmp/grids",
				Scale: 1,
			},
			Logging: LoggingConfig{
				Level:    "error",
				FilePath: "/var/log/sedai.log",
			},
		}

		saveConfig(t, customConfig, tmpConfigPath)
		loadedConfig := loadConfig(t)

		// Verify loaded values match what we saved
		assert.Equal(t, "http://localhost:9000", loadedConfig.Bangumi.BaseURL)
		assert.Equal(t, "test-token", loadedConfig.Bangumi.AccessToken)
		assert.Equal(t, 3*time.Second, loadedConfig.Bangumi.Timeout)
		assert.Equal(t, "sai", loadedConfig.Grid.UserID)
		assert.Equal(t, 1999, loadedConfig.Grid.StartYear)
		assert.Equal(t, "miku", loadedConfig.Grid.Theme)
		assert.False(t, loadedConfig.Grid.IncludeProfile(), "explicit false must survive the merge")
		assert.True(t, loadedConfig.Grid.IncludeChart())
		assert.Equal(t, "/tmp/grids", loadedConfig.Export.Dir)
		assert.Equal(t, "error", loadedConfig.Logging.Level)
		assert.Equal(t, "/var/log/sedai.log", loadedConfig.Logging.FilePath)
	})

	// Test invalid YAML handling
	t.Run("InvalidConfig", func(t *testing.T) {
		tmpConfigPath := setupTestConfig(t)
		// Write invalid YAML to the config file
		if err := os.WriteFile(tmpConfigPath, []byte("invalid: yaml: ["), 0600); err != nil {
			t.Fatalf("Failed to write invalid config: %v", err)
		}

		// Attempt to load the invalid config
		_, err := Load()
		if err == nil {
			t.Error("Expected error when loading invalid YAML, got nil")
		}
	})

	t.Run("EnvironmentVariableOverrides", func(t *testing.T) {
		setupTestConfig(t)

		setEnv(t, "SEDAI_CONFIG_BANGUMI_ACCESS_TOKEN", "test-token")
		setEnv(t, "SEDAI_CONFIG_BANGUMI_TIMEOUT", "4s")
		setEnv(t, "SEDAI_CONFIG_GRID_USER_ID", "42")
		setEnv(t, "SEDAI_CONFIG_GRID_START_YEAR", "2010")
		setEnv(t, "SEDAI_CONFIG_GRID_THEME", "eva")
		setEnv(t, "SEDAI_CONFIG_GRID_EXPORT_CHART", "false")
		setEnv(t, "SEDAI_CONFIG_ANALYSIS_API_KEY", "key")
		setEnv(t, "SEDAI_CONFIG_LOGGING_LEVEL", "warn")
		setEnv(t, "SEDAI_CONFIG_LOGGING_FILE_PATH", "/sedai.log")

		config := loadConfig(t)

		assert.Equal(t, "test-token", config.Bangumi.AccessToken)
		assert.Equal(t, 4*time.Second, config.Bangumi.Timeout)
		assert.Equal(t, "42", config.Grid.UserID)
		assert.Equal(t, 2010, config.Grid.StartYear)
		assert.Equal(t, "eva", config.Grid.Theme)
		assert.False(t, config.Grid.IncludeChart())
		assert.Equal(t, "key", config.Analysis.APIKey)
		assert.Equal(t, "warn", config.Logging.Level)
		assert.Equal(t, "/sedai.log", config.Logging.FilePath)

		// Remove the logging level override, then reload the config.
		// This ensures that the env var overrides were not persisted to disk.
		unsetEnv(t, "SEDAI_CONFIG_LOGGING_LEVEL")

		config = loadConfig(t)

		assert.Equal(t, "info", config.Logging.Level)
	})

	t.Run("InvalidEnvironmentVariable", func(t *testing.T) {
		setupTestConfig(t)
		setEnv(t, "SEDAI_CONFIG_GRID_START_YEAR", "two thousand")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SEDAI_CONFIG_GRID_START_YEAR")
	})

	t.Run("DotEnvFile", func(t *testing.T) {
		tmpConfigPath := setupTestConfig(t)
		envPath := filepath.Join(filepath.Dir(tmpConfigPath), "test.env")
		require.NoError(t, os.WriteFile(envPath, []byte("SEDAI_CONFIG_GRID_THEME=sakura\n"), 0600))
		setEnv(t, "SEDAI_ENV_FILE", envPath)

		config := loadConfig(t)
		assert.Equal(t, "sakura", config.Grid.Theme)
	})

	t.Run("ModifyConfig", func(t *testing.T) {
		setupTestConfig(t)
		config := loadConfig(t)

		assert.Equal(t, "default", config.Grid.Theme)

		err := UpdateConfig(func(config *Config) {
			config.Grid.Theme = "dark"
		})
		if err != nil {
			t.Fatalf("Failed to update config: %v", err)
		}

		// Reload the config and ensure it has the new value
		config = loadConfig(t)
		assert.Equal(t, "dark", config.Grid.Theme)
	})
}

func TestEnvVarHelpListsEveryOverride(t *testing.T) {
	help := EnvVarHelp()
	require.Len(t, help, len(supportedEnvVars))
	for _, entry := range help {
		assert.True(t, strings.HasPrefix(entry[0], "SEDAI_"), entry[0])
		assert.NotEmpty(t, entry[1])
	}
}

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	err := os.Setenv(key, value)
	if err != nil {
		t.Fatalf("Failed to set environment variable: %v", err)
	}
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	err := os.Unsetenv(key)
	if err != nil {
		t.Fatalf("Failed to unset environment variable: %v", err)
	}
}

func saveConfig(t *testing.T, config *Config, configPath string) {
	t.Helper()
	if err := save(config, configPath); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}
}

func loadConfig(t *testing.T) *Config {
	t.Helper()
	config, err := Load()
	if err != nil {
		t.Fatalf("Loading of config failed: %v", err)
	}
	return config
}

// Removes any env vars with the SEDAI_ prefix to ensure test isolation
func cleanupEnvVars(t *testing.T) {
	t.Helper()

	for _, envVar := range os.Environ() {
		if key := strings.Split(envVar, "=")[0]; strings.HasPrefix(key, "SEDAI_") {
			unsetEnv(t, key)
		}
	}
}
