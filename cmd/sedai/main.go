package main

import (
	"fmt"
	"os"
	"time"

	"github.com/PizzaHomicide/sedai/internal/analysis"
	"github.com/PizzaHomicide/sedai/internal/config"
	"github.com/PizzaHomicide/sedai/internal/export"
	"github.com/PizzaHomicide/sedai/internal/log"
	"github.com/PizzaHomicide/sedai/internal/repository/bangumi"
	"github.com/PizzaHomicide/sedai/internal/service"
	"github.com/PizzaHomicide/sedai/internal/ui/tui"
	"github.com/PizzaHomicide/sedai/internal/version"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	userID    string
	startYear int
	themeKey  string
	timeout   time.Duration
	logStderr bool

	// Output flags
	noProfile bool
	noChart   bool
	outDir    string
	width     int

	cfg    *config.Config
	logger *log.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "sedai",
	Short: "Anime Sedai - your Bangumi anime generation grid",
	Long: `Anime Sedai draws the anime a Bangumi user has watched as a grid of years,
each title coloured by the score they gave it.

Run without arguments to start the interactive terminal UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		applyFlagOverrides(cmd, cfg)

		logConfig := log.Config{
			Level:    cfg.Logging.Level,
			FilePath: cfg.Logging.FilePath,
		}
		// The TUI owns the terminal, so it always logs to the file
		if logStderr && cmd != cmd.Root() {
			logConfig.Writer = cmd.ErrOrStderr()
		}
		logger, err = log.New(logConfig)
		if err != nil {
			return fmt.Errorf("failed to initialise logger: %w", err)
		}
		log.SetDefaultLogger(logger)

		log.Info("Starting up Sedai", "version", version.GetVersion(), "build_time", version.GetBuildTime(), "command", cmd.Name())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			log.Info("Sedai shutting down.  Goodbye!")
			logger.Close()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := tui.Run(cfg, newGridService(cfg), newAnalyzer(cmd), newExporter(cfg)); err != nil {
			log.Error("Unhandled error while running TUI", "error", err)
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "Bangumi user ID or username (default: from config)")
	rootCmd.PersistentFlags().IntVarP(&startYear, "start-year", "y", 0, "First year of the grid (default: from config)")
	rootCmd.PersistentFlags().StringVarP(&themeKey, "theme", "t", "", "Colour theme (default: from config)")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", 2*time.Minute, "Timeout for non-interactive commands")
	rootCmd.PersistentFlags().BoolVar(&logStderr, "log-stderr", false, "Log to stderr instead of the log file (non-interactive commands only)")

	for _, c := range []*cobra.Command{renderCmd, exportCmd} {
		c.Flags().BoolVar(&noProfile, "no-profile", false, "Leave out the profile block")
		c.Flags().BoolVar(&noChart, "no-chart", false, "Leave out the chart")
	}
	exportCmd.Flags().StringVarP(&outDir, "out", "o", "", "Directory to write the image to (default: from config)")
	renderCmd.Flags().IntVarP(&width, "width", "w", 120, "Width of the rendered grid in columns")

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(envCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// applyFlagOverrides lets explicitly set flags win over the config file and environment
func applyFlagOverrides(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("user") {
		c.Grid.UserID = userID
	}
	if flags.Changed("start-year") {
		c.Grid.StartYear = startYear
	}
	if flags.Changed("theme") {
		c.Grid.Theme = themeKey
	}
	if flags.Changed("no-profile") {
		include := !noProfile
		c.Grid.ExportProfile = &include
	}
	if flags.Changed("no-chart") {
		include := !noChart
		c.Grid.ExportChart = &include
	}
	if flags.Changed("out") {
		c.Export.Dir = outDir
	}
}

func newGridService(c *config.Config) *service.GridService {
	userAgent := c.Bangumi.UserAgent
	if userAgent == "" {
		userAgent = version.UserAgent()
	}

	client := bangumi.NewClient(bangumi.Options{
		BaseURL:           c.Bangumi.BaseURL,
		UserAgent:         userAgent,
		AccessToken:       c.Bangumi.AccessToken,
		Timeout:           c.Bangumi.Timeout,
		RequestsPerSecond: c.Bangumi.RequestsPerSecond,
	})

	return service.NewGridService(bangumi.NewUserRepository(client), bangumi.NewCollectionRepository(client))
}

func newAnalyzer(cmd *cobra.Command) analysis.Analyzer {
	return analysis.New(cmd.Context(), cfg.Analysis.APIKey, cfg.Analysis.Model)
}

func newExporter(c *config.Config) *export.Exporter {
	return export.NewExporter(c.Export.BrowserBin)
}
