// Package config loads applytrack settings from a YAML file, APPLYTRACK_*
// environment variables and command-line flags, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/applytrack/applytrack/internal/log"
	"github.com/applytrack/applytrack/internal/tracing"
	"github.com/applytrack/applytrack/internal/ui/styles"
)

// EnvPrefix prefixes every environment override, e.g. APPLYTRACK_DEBUG.
const EnvPrefix = "APPLYTRACK"

// Keys shared with flag bindings.
const (
	KeyFixtures            = "fixtures"
	KeyWatch               = "watch"
	KeyDebug               = "debug"
	KeyLogPath             = "log_path"
	KeyLogLevel            = "log_level"
	KeyDropdownPlaceholder = "dropdown.placeholder"
	KeyDropdownWidth       = "dropdown.width"
	KeyServeAddr           = "serve.addr"
	KeyTracingExporter     = "tracing.exporter"
	KeyTracingFile         = "tracing.file"
	KeyTracingEndpoint     = "tracing.endpoint"
	KeyThemePreset         = "theme.preset"

	keyThemeColors = "theme.colors"
)

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the resolved application configuration.
type Config struct {
	Fixtures string             `mapstructure:"fixtures"`
	Watch    bool               `mapstructure:"watch"`
	Debug    bool               `mapstructure:"debug"`
	LogPath  string             `mapstructure:"log_path"`
	LogLevel string             `mapstructure:"log_level"`
	Dropdown DropdownConfig     `mapstructure:"dropdown"`
	Serve    ServeConfig        `mapstructure:"serve"`
	Tracing  TracingConfig      `mapstructure:"tracing"`
	Theme    styles.ThemeConfig `mapstructure:"-"`
}

// DropdownConfig holds defaults for dropdown filters.
type DropdownConfig struct {
	Placeholder string `mapstructure:"placeholder"`
	Width       int    `mapstructure:"width"`
}

// ServeConfig configures the read-only API server.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// TracingConfig selects where API request spans go.
type TracingConfig struct {
	Exporter string `mapstructure:"exporter"` // none, stdout, file or otlp
	File     string `mapstructure:"file"`
	Endpoint string `mapstructure:"endpoint"`
}

// Defaults returns the configuration used when nothing overrides it.
func Defaults() Config {
	return Config{
		LogPath:  "debug.log",
		LogLevel: "debug",
		Dropdown: DropdownConfig{
			Placeholder: "All statuses",
			Width:       26,
		},
		Serve: ServeConfig{Addr: "127.0.0.1:8787"},
		Tracing: TracingConfig{
			Exporter: tracing.ExporterNone,
			File:     "traces.jsonl",
			Endpoint: "localhost:4317",
		},
		Theme: styles.ThemeConfig{Preset: "default"},
	}
}

// New returns a viper instance with defaults and environment binding set up.
func New() *viper.Viper {
	v := viper.New()
	d := Defaults()
	v.SetDefault(KeyFixtures, d.Fixtures)
	v.SetDefault(KeyWatch, d.Watch)
	v.SetDefault(KeyDebug, d.Debug)
	v.SetDefault(KeyLogPath, d.LogPath)
	v.SetDefault(KeyLogLevel, d.LogLevel)
	v.SetDefault(KeyDropdownPlaceholder, d.Dropdown.Placeholder)
	v.SetDefault(KeyDropdownWidth, d.Dropdown.Width)
	v.SetDefault(KeyServeAddr, d.Serve.Addr)
	v.SetDefault(KeyTracingExporter, d.Tracing.Exporter)
	v.SetDefault(KeyTracingFile, d.Tracing.File)
	v.SetDefault(KeyTracingEndpoint, d.Tracing.Endpoint)
	v.SetDefault(KeyThemePreset, d.Theme.Preset)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// DefaultSearchPaths lists where config.yaml is looked for when no file is
// given: the working directory, then the user config directory.
func DefaultSearchPaths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "applytrack"))
	}
	return paths
}

// Load reads file, or config.yaml from searchPaths when file is empty, and
// unmarshals the merged settings. A missing searched-for file is not an
// error; a missing explicit file is.
func Load(v *viper.Viper, file string, searchPaths ...string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		for _, p := range searchPaths {
			v.AddConfigPath(p)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	} else {
		log.Debug(log.CatConfig, "loaded config", "file", v.ConfigFileUsed())
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Theme = styles.ThemeConfig{
		Preset: v.GetString(KeyThemePreset),
		Colors: themeColors(v.GetStringMap(keyThemeColors)),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// themeColors flattens the theme.colors table. Color tokens contain dots, and
// a file may spell them either quoted ("text.primary") or nested.
func themeColors(m map[string]any) map[string]string {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]string)
	var walk func(prefix string, m map[string]any)
	walk = func(prefix string, m map[string]any) {
		for k, v := range m {
			key := k
			if prefix != "" {
				key = prefix + "." + k
			}
			switch v := v.(type) {
			case map[string]any:
				walk(key, v)
			default:
				out[key] = fmt.Sprint(v)
			}
		}
	}
	walk("", m)
	return out
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if _, ok := log.ParseLevel(c.LogLevel); !ok {
		return fmt.Errorf("%w: log_level %q", ErrInvalidConfig, c.LogLevel)
	}
	if c.Dropdown.Width < 8 {
		return fmt.Errorf("%w: dropdown.width must be at least 8, got %d", ErrInvalidConfig, c.Dropdown.Width)
	}
	if err := styles.ValidateTheme(c.Theme); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Serve.Addr == "" {
		return fmt.Errorf("%w: serve.addr is empty", ErrInvalidConfig)
	}
	if !tracing.ValidExporter(c.Tracing.Exporter) {
		return fmt.Errorf("%w: tracing.exporter %q", ErrInvalidConfig, c.Tracing.Exporter)
	}
	return nil
}
