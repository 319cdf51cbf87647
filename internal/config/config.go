package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/geoterm/mapview-control/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App      app.Config
	Logging  Logging
	Features Features
	Flags    map[string]string
	Args     []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

type Features struct {
	Verbose bool
}

const (
	envConfigFile   = "MAPVIEW_CONTROL_CONFIG"
	envPortalDir    = "MAPVIEW_CONTROL_PORTAL_DIR"
	envWidth        = "MAPVIEW_CONTROL_WIDTH"
	envHeight       = "MAPVIEW_CONTROL_HEIGHT"
	envShowFooter   = "MAPVIEW_CONTROL_FOOTER"
	envRootMenu     = "MAPVIEW_CONTROL_ROOT_MENU"
	envVerbose      = "MAPVIEW_CONTROL_VERBOSE"
	envTrace        = "MAPVIEW_CONTROL_TRACE"
	envLogFile      = "MAPVIEW_CONTROL_LOG_FILE"
	envLegacyEvents = "MAPVIEW_CONTROL_LEGACY_EVENTS"
)

// fileConfig is the TOML schema. Pointer fields distinguish absent keys from
// zero values, so the file layer only fills gaps left by flags and env.
type fileConfig struct {
	PortalDir    *string `toml:"portal_dir"`
	Width        *int    `toml:"width"`
	Height       *int    `toml:"height"`
	Footer       *bool   `toml:"footer"`
	RootMenu     *string `toml:"root_menu"`
	Verbose      *bool   `toml:"verbose"`
	Trace        *bool   `toml:"trace"`
	LogFile      *string `toml:"log_file"`
	LegacyEvents *bool   `toml:"legacy_events"`
}

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Precedence is
// flags over environment over config file over built-in defaults.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("mapview-control", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	configPath := fs.String("config", envOrDefault(env, envConfigFile, ""), "path to a TOML config file")
	portalDir := fs.String("portal-dir", envOrDefault(env, envPortalDir, ""), "directory holding *.webmap.json documents")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	rootMenu := fs.String("root-menu", envOrDefault(env, envRootMenu, ""), "open this menu as the root (e.g. layer)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	verbose := fs.Bool("verbose", envOrBool(env, envVerbose, false), "print success messages for actions")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	legacyEvents := fs.Bool("legacy-events", envOrBool(env, envLegacyEvents, false), "deliver view-ready notifications in the legacy target shape")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	setFlags := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { setFlags[f.Name] = true })

	file, err := loadFile(*configPath)
	if err != nil {
		return Config{}, err
	}
	if file != nil {
		// The file layer sits below both flags and environment.
		overridden := func(flagName, envKey string) bool {
			if setFlags[flagName] {
				return true
			}
			_, ok := env[envKey]
			return ok
		}
		if file.PortalDir != nil && !overridden("portal-dir", envPortalDir) {
			*portalDir = *file.PortalDir
		}
		if file.Width != nil && !overridden("width", envWidth) {
			*width = *file.Width
		}
		if file.Height != nil && !overridden("height", envHeight) {
			*height = *file.Height
		}
		if file.Footer != nil && !overridden("footer", envShowFooter) {
			*footer = *file.Footer
		}
		if file.RootMenu != nil && !overridden("root-menu", envRootMenu) {
			*rootMenu = *file.RootMenu
		}
		if file.Verbose != nil && !overridden("verbose", envVerbose) {
			*verbose = *file.Verbose
		}
		if file.Trace != nil && !overridden("trace", envTrace) {
			*trace = *file.Trace
		}
		if file.LogFile != nil && !overridden("log-file", envLogFile) {
			*logFile = *file.LogFile
		}
		if file.LegacyEvents != nil && !overridden("legacy-events", envLegacyEvents) {
			*legacyEvents = *file.LegacyEvents
		}
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	cfg := Config{
		App: app.Config{
			PortalDir:    *portalDir,
			Width:        *width,
			Height:       *height,
			ShowFooter:   *footer,
			Verbose:      *verbose,
			RootMenu:     *rootMenu,
			LegacyEvents: *legacyEvents,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Features: Features{
			Verbose: *verbose,
		},
		Flags: map[string]string{
			"config":       *configPath,
			"portalDir":    *portalDir,
			"width":        strconv.Itoa(*width),
			"height":       strconv.Itoa(*height),
			"footer":       strconv.FormatBool(*footer),
			"rootMenu":     *rootMenu,
			"trace":        strconv.FormatBool(*trace),
			"verbose":      strconv.FormatBool(*verbose),
			"logFile":      *logFile,
			"legacyEvents": strconv.FormatBool(*legacyEvents),
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// loadFile reads the TOML config file. An empty path tries the conventional
// location and treats a missing file as no file at all; an explicit path must
// exist.
func loadFile(path string) (*fileConfig, error) {
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil
		}
		path = filepath.Join(home, ".config", "mapview-control", "config.toml")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("config file: %w", err)
	}
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return &fc, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 || cfg.App.Height < 0 {
		return fmt.Errorf("viewport dimensions must be >= 0")
	}
	if cfg.App.PortalDir != "" {
		info, err := os.Stat(cfg.App.PortalDir)
		if err != nil {
			return fmt.Errorf("portal dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("portal dir %s is not a directory", cfg.App.PortalDir)
		}
	}
	return nil
}
