package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/applytrack/applytrack/internal/fixtures"
	"github.com/applytrack/applytrack/internal/mode/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Browse applications, network, timeline and analytics",
	Long: `Start the interactive dashboard. Filter applications with the status and
company dropdowns, switch tabs with 1-4 and press ctrl+x for the log overlay.`,
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, _ []string) error {
	cleanup, err := initLogging(nil)
	if err != nil {
		return err
	}
	defer cleanup()

	ds, err := loadFixtures()
	if err != nil {
		return err
	}

	zone.NewGlobal()
	defer zone.Close()

	model := dashboard.New(ds, dashboard.Options{
		Placeholder:   cfg.Dropdown.Placeholder,
		DropdownWidth: cfg.Dropdown.Width,
		Loader:        loader,
		FixturesDir:   cfg.Fixtures,
	})

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	watchFixtures(ctx, func(ds *fixtures.Dataset, err error) {
		p.Send(dashboard.FixturesReloadedMsg{Dataset: ds, Err: err})
	})

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running dashboard: %w", err)
	}
	return nil
}
