package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PizzaHomicide/sedai/internal/config"
	"github.com/PizzaHomicide/sedai/internal/export"
	"github.com/PizzaHomicide/sedai/internal/log"
	"github.com/PizzaHomicide/sedai/internal/service"
	"github.com/PizzaHomicide/sedai/internal/theme"
	"github.com/PizzaHomicide/sedai/internal/ui/tui/components"
	"github.com/PizzaHomicide/sedai/internal/version"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the grid to the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		snapshot, err := loadGrid(ctx, newGridService(cfg), cfg)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), renderGrid(snapshot, cfg, width))
		return err
	},
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save the grid as a PNG image",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		snapshot, err := loadGrid(ctx, newGridService(cfg), cfg)
		if err != nil {
			return err
		}

		view := export.View{UserID: snapshot.Query.UserID, Profile: snapshot.Profile, Result: snapshot.Result}
		path, err := newExporter(cfg).Export(ctx, view, exportOptions(cfg), cfg.Export.Dir)
		if err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), path)
		return err
	},
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Ask an AI critic what the grid says about your taste",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := commandContext(cmd)
		defer cancel()

		snapshot, err := loadGrid(ctx, newGridService(cfg), cfg)
		if err != nil {
			return err
		}

		text := newAnalyzer(cmd).Analyze(ctx, snapshot.Result.Buckets)
		return printMarkdown(cmd.OutOrStdout(), text, width)
	},
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables that override the config file",
	Run: func(cmd *cobra.Command, args []string) {
		printEnvHelp(cmd.OutOrStdout())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// Overrides the root pre-run, there is nothing to configure
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), version.GetVersionInfo())
	},
}

// commandContext bounds a non-interactive command by --timeout
func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

// loadGrid runs the configured query to completion and fails unless it produced a grid
func loadGrid(ctx context.Context, svc *service.GridService, c *config.Config) (service.Snapshot, error) {
	userID := strings.TrimSpace(c.Grid.UserID)
	if userID == "" {
		return service.Snapshot{}, errors.New("no user given: pass --user or set grid.user_id in the config")
	}

	_, snapshot := svc.Run(ctx, service.Query{UserID: userID, StartYear: c.Grid.StartYear})
	if snapshot.State != service.StateReady {
		log.Warn("Query did not complete", "user_id", userID, "state", snapshot.State, "error", snapshot.Err)
		return snapshot, errors.New(snapshot.ErrMessage)
	}
	return snapshot, nil
}

// renderGrid draws a finished snapshot the same way the TUI grid view does, minus the interactive chrome
func renderGrid(snapshot service.Snapshot, c *config.Config, width int) string {
	t := theme.Get(c.Grid.Theme)
	result := snapshot.Result

	var sections []string
	if c.Grid.IncludeProfile() {
		sections = append(sections, components.ProfileHeader(snapshot.Profile, result.SummaryLine(), t, width))
	} else {
		sections = append(sections, lipgloss.NewStyle().Bold(true).Render(result.SummaryLine()))
	}

	sections = append(sections,
		components.Legend(t),
		components.Grid(result, components.GridOptions{Theme: t, Width: width}),
	)

	if c.Grid.IncludeChart() && result.Total > 0 {
		sections = append(sections, components.Chart(result.Chart, t, width))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func exportOptions(c *config.Config) export.Options {
	return export.Options{
		IncludeProfile: c.Grid.IncludeProfile(),
		IncludeChart:   c.Grid.IncludeChart(),
		Theme:          theme.Get(c.Grid.Theme),
		Scale:          c.Export.Scale,
	}
}

func printMarkdown(w io.Writer, md string, width int) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err == nil {
		if out, renderErr := renderer.Render(md); renderErr == nil {
			md = out
		}
	}
	_, err = fmt.Fprintln(w, md)
	return err
}

func printEnvHelp(w io.Writer) {
	for _, pair := range config.EnvVarHelp() {
		_, _ = fmt.Fprintf(w, "%-40s %s\n", pair[0], pair[1])
	}
}
