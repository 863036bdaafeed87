package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/applytrack/applytrack/internal/fixtures"
)

// ErrUnknownFormat is returned for --format values other than json and yaml.
var ErrUnknownFormat = errors.New("unknown format")

const sectionAll = "all"

var (
	dumpFormat  string
	dumpSection string
)

var dumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the loaded fixtures as JSON or YAML",
	Long: `Print the fixtures after loading and validation, either all of them or one
section (` + strings.Join(fixtures.Sections(), ", ") + `).`,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
	dumpCmd.Flags().StringVar(&dumpFormat, "format", "json", "output format: json or yaml")
	dumpCmd.Flags().StringVar(&dumpSection, "section", sectionAll, "section to print")
}

func runDump(cmd *cobra.Command, _ []string) error {
	cleanup, err := initLogging(nil)
	if err != nil {
		return err
	}
	defer cleanup()

	ds, err := loadFixtures()
	if err != nil {
		return err
	}
	return writeDump(cmd.OutOrStdout(), ds, dumpSection, dumpFormat)
}

func writeDump(w io.Writer, ds *fixtures.Dataset, section, format string) error {
	format = strings.ToLower(format)
	if !slices.Contains([]string{"json", "yaml", "yml"}, format) {
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	var v any = ds.Snapshot()
	if section != "" && section != sectionAll {
		s, err := ds.Section(section)
		if err != nil {
			return err
		}
		v = s
	}

	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	default:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	}
}
