package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type envVar struct {
	name  string
	desc  string
	apply func(*Config, string) error
}

var supportedEnvVars = []envVar{
	{
		// Only here for documentation purposes.  Does not override any values in the config as this environment variable
		// points to where the config should be loaded.  It is handled prior to loading the config.
		name:  "SEDAI_CONFIG_PATH",
		desc:  "Sets the path to the config file.  Default: OS-specific config directory",
		apply: func(c *Config, s string) error { return nil }, // Special case, no-op
	},
	{
		name:  "SEDAI_ENV_FILE",
		desc:  "Sets the path of a .env file to load before applying overrides.  Default: ./.env",
		apply: func(c *Config, s string) error { return nil }, // Special case, no-op
	},
	{
		name:  "SEDAI_CONFIG_BANGUMI_BASE_URL",
		desc:  "Sets the Bangumi API base URL.  Default: https://api.bgm.tv",
		apply: func(c *Config, s string) error { c.Bangumi.BaseURL = s; return nil },
	},
	{
		name:  "SEDAI_CONFIG_BANGUMI_USER_AGENT",
		desc:  "Sets the User-Agent sent to Bangumi.  Default: sedai/<version>",
		apply: func(c *Config, s string) error { c.Bangumi.UserAgent = s; return nil },
	},
	{
		name:  "SEDAI_CONFIG_BANGUMI_ACCESS_TOKEN",
		desc:  "Sets a Bangumi personal access token.  Default: None",
		apply: func(c *Config, s string) error { c.Bangumi.AccessToken = s; return nil },
	},
	{
		name: "SEDAI_CONFIG_BANGUMI_TIMEOUT",
		desc: "Sets the per-request timeout, e.g. 15s.  Default: 15s",
		apply: func(c *Config, s string) error {
			d, err := time.ParseDuration(s)
			if err != nil {
				return err
			}
			c.Bangumi.Timeout = d
			return nil
		},
	},
	{
		name: "SEDAI_CONFIG_BANGUMI_REQUESTS_PER_SECOND",
		desc: "Sets the maximum request rate against Bangumi.  Default: 2",
		apply: func(c *Config, s string) error {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return err
			}
			c.Bangumi.RequestsPerSecond = f
			return nil
		},
	},
	{
		name:  "SEDAI_CONFIG_GRID_USER_ID",
		desc:  "Sets the Bangumi user id or username loaded on startup.  Default: 605976",
		apply: func(c *Config, s string) error { c.Grid.UserID = s; return nil },
	},
	{
		name: "SEDAI_CONFIG_GRID_START_YEAR",
		desc: "Sets the first year of the grid.  Clamped to 1980..current year.  Default: 2006",
		apply: func(c *Config, s string) error {
			year, err := strconv.Atoi(s)
			if err != nil {
				return err
			}
			c.Grid.StartYear = year
			return nil
		},
	},
	{
		name:  "SEDAI_CONFIG_GRID_THEME",
		desc:  "Sets the colour theme.  One of: default, miku, sakura, eva, dark.  Default: default",
		apply: func(c *Config, s string) error { c.Grid.Theme = s; return nil },
	},
	{
		name: "SEDAI_CONFIG_GRID_EXPORT_PROFILE",
		desc: "Include the profile block in exported images.  Default: true",
		apply: func(c *Config, s string) error {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return err
			}
			c.Grid.ExportProfile = &b
			return nil
		},
	},
	{
		name: "SEDAI_CONFIG_GRID_EXPORT_CHART",
		desc: "Include the chart block in exported images.  Default: true",
		apply: func(c *Config, s string) error {
			b, err := strconv.ParseBool(s)
			if err != nil {
				return err
			}
			c.Grid.ExportChart = &b
			return nil
		},
	},
	{
		name:  "SEDAI_CONFIG_EXPORT_DIR",
		desc:  "Sets the directory exported images are written to.  Default: ~/Pictures if it exists, else .",
		apply: func(c *Config, s string) error { c.Export.Dir = s; return nil },
	},
	{
		name:  "SEDAI_CONFIG_EXPORT_BROWSER_BIN",
		desc:  "Sets the Chrome/Chromium binary used for image export.  Default: auto-detected",
		apply: func(c *Config, s string) error { c.Export.BrowserBin = s; return nil },
	},
	{
		name: "SEDAI_CONFIG_EXPORT_SCALE",
		desc: "Sets the device scale factor of exported images.  Default: 2",
		apply: func(c *Config, s string) error {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return err
			}
			c.Export.Scale = f
			return nil
		},
	},
	{
		name:  "SEDAI_CONFIG_ANALYSIS_API_KEY",
		desc:  "Sets the Gemini API key for taste analysis.  Default: None (analysis disabled)",
		apply: func(c *Config, s string) error { c.Analysis.APIKey = s; return nil },
	},
	{
		name:  "SEDAI_CONFIG_ANALYSIS_MODEL",
		desc:  "Sets the Gemini model for taste analysis.  Default: gemini-2.5-flash",
		apply: func(c *Config, s string) error { c.Analysis.Model = s; return nil },
	},
	{
		name:  "SEDAI_CONFIG_LOGGING_LEVEL",
		desc:  "Sets the logging level.  One of: trace, debug, info, warn, error.  Default: info",
		apply: func(c *Config, s string) error { c.Logging.Level = s; return nil },
	},
	{
		name:  "SEDAI_CONFIG_LOGGING_FILE_PATH",
		desc:  "Sets the logging file path.  Default: OS-specific",
		apply: func(c *Config, s string) error { c.Logging.FilePath = s; return nil },
	},
}

func applyEnvVarOverrides(c *Config) error {
	for _, envVar := range supportedEnvVars {
		if value := os.Getenv(envVar.name); value != "" {
			if err := envVar.apply(c, value); err != nil {
				return fmt.Errorf("invalid value for %s: %w", envVar.name, err)
			}
		}
	}
	return nil
}

// EnvVarHelp returns a description of every supported environment variable, in declaration order
func EnvVarHelp() [][2]string {
	help := make([][2]string, 0, len(supportedEnvVars))
	for _, envVar := range supportedEnvVars {
		help = append(help, [2]string{envVar.name, envVar.desc})
	}
	return help
}
