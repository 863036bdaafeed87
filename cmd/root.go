// Package cmd wires the applytrack commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/applytrack/applytrack/internal/config"
	"github.com/applytrack/applytrack/internal/fixtures"
	"github.com/applytrack/applytrack/internal/log"
	"github.com/applytrack/applytrack/internal/paths"
	"github.com/applytrack/applytrack/internal/ui/styles"
)

// version is set at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

const logBufferSize = 500

var (
	cfgFile string
	cfg     config.Config
	v       = config.New()
)

// loader is shared by every command so reloads hit one cache.
var loader = fixtures.NewLoader(fixtures.DefaultTTL)

var rootCmd = &cobra.Command{
	Use:   "applytrack",
	Short: "Read-only job application tracking dashboard",
	Long: `applytrack renders demo job-application data (applications, network
contacts, timeline and analytics) in an interactive terminal dashboard.

Without a subcommand the dashboard starts. The data is read-only; premium
features are shown but ask for an upgrade.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runDashboard,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.Version = version

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&cfgFile, "config", "c", "", "config file (default ./config.yaml, then the user config dir)")
	pf.BoolP("debug", "d", false, "write debug logs to log_path")
	pf.StringP("fixtures", "f", "", "directory of fixture JSON files (default: embedded demo data)")
	pf.BoolP("watch", "w", false, "reload fixtures when files in --fixtures change")

	_ = v.BindPFlag(config.KeyDebug, pf.Lookup("debug"))
	_ = v.BindPFlag(config.KeyFixtures, pf.Lookup("fixtures"))
	_ = v.BindPFlag(config.KeyWatch, pf.Lookup("watch"))
}

// setup loads configuration and applies the theme before any command runs.
func setup(_ *cobra.Command, _ []string) error {
	loaded, err := config.Load(v, cfgFile, config.DefaultSearchPaths()...)
	if err != nil {
		return err
	}
	loaded.Fixtures = paths.ResolveFixturesDir(loaded.Fixtures)
	if err := styles.ApplyTheme(loaded.Theme); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}
	cfg = loaded
	return nil
}

// initLogging keeps an in-memory log for the overlay and, with --debug,
// writes to cfg.LogPath. fallback receives logs when --debug is off and
// the command has somewhere better than a file to put them.
func initLogging(fallback io.Writer) (func(), error) {
	cleanup := func() {}
	if cfg.Debug {
		c, err := log.InitWithTeaLog(cfg.LogPath, "applytrack", logBufferSize)
		if err != nil {
			return nil, fmt.Errorf("opening log %s: %w", cfg.LogPath, err)
		}
		cleanup = c
	} else {
		if fallback == nil {
			fallback = io.Discard
		}
		log.InitWriter(fallback, logBufferSize)
	}
	if level, ok := log.ParseLevel(cfg.LogLevel); ok {
		log.SetMinLevel(level)
	}
	log.Info(log.CatConfig, "starting", "version", version, "fixtures", fixturesSource())
	return cleanup, nil
}

func fixturesSource() string {
	if cfg.Fixtures == "" {
		return "embedded"
	}
	return cfg.Fixtures
}

func loadFixtures() (*fixtures.Dataset, error) {
	ds, err := loader.Load(cfg.Fixtures)
	if err != nil {
		return nil, fmt.Errorf("loading fixtures from %s: %w", fixturesSource(), err)
	}
	return ds, nil
}

// watchFixtures runs the fixtures watcher in the background when --watch is
// set. Embedded data cannot be watched; that is logged and ignored.
func watchFixtures(ctx context.Context, fn func(*fixtures.Dataset, error)) {
	if !cfg.Watch {
		return
	}
	go func() {
		err := loader.Watch(ctx, cfg.Fixtures, fixtures.DefaultDebounce, fn)
		switch {
		case errors.Is(err, fixtures.ErrNotWatchable):
			log.Warn(log.CatWatcher, "--watch ignored for embedded fixtures")
		case err != nil:
			log.ErrorErr(log.CatWatcher, "fixtures watcher stopped", err)
		}
	}()
}
