package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/applytrack/applytrack/internal/mode/playground"
)

var playgroundMarkup string

var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Interactive playground for the dropdown control",
	Long: `Launch a playground around a single dropdown. Edit the option markup and
press ctrl+s to replace the options, ctrl+d to destroy and rebuild the
control, and watch the source select, hidden input and form values update.`,
	RunE: runPlayground,
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
	playgroundCmd.Flags().StringVar(&playgroundMarkup, "markup", "", "file with <option>/<optgroup> markup to start from")
}

func runPlayground(_ *cobra.Command, _ []string) error {
	cleanup, err := initLogging(nil)
	if err != nil {
		return err
	}
	defer cleanup()

	opts := playground.Options{
		Placeholder: cfg.Dropdown.Placeholder,
		Width:       cfg.Dropdown.Width,
	}
	if playgroundMarkup != "" {
		data, err := os.ReadFile(playgroundMarkup)
		if err != nil {
			return fmt.Errorf("reading markup: %w", err)
		}
		opts.Markup = string(data)
	}

	zone.NewGlobal()
	defer zone.Close()

	p := tea.NewProgram(playground.New(opts), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running playground: %w", err)
	}
	return nil
}
