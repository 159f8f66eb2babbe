package config

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"featboard/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envToolPath     = "FEATBOARD_TOOL_PATH"
	envToolOverride = "FEATBOARD_TOOL_OVERRIDE"
	envEditor       = "FEATBOARD_EDITOR"
	envWidth        = "FEATBOARD_WIDTH"
	envHeight       = "FEATBOARD_HEIGHT"
	envTrace        = "FEATBOARD_TRACE"
	envLogFile      = "FEATBOARD_LOG_FILE"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("featboard", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	toolPath := fs.String("tool-path", envOrDefault(env, envToolPath, ""), "directory searched for the feature tool binary")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if *width < 0 {
		return Config{}, fmt.Errorf("width must be >= 0 (got %d)", *width)
	}
	if *height < 0 {
		return Config{}, fmt.Errorf("height must be >= 0 (got %d)", *height)
	}

	// The explicit override wins over the discovery path, flag or not.
	resolvedTool := *toolPath
	if override := strings.TrimSpace(envOrDefault(env, envToolOverride, "")); override != "" {
		resolvedTool = override
	}

	cfg := Config{
		App: app.Config{
			ToolPath: resolvedTool,
			Editor:   resolveEditor(env),
			Width:    *width,
			Height:   *height,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"toolPath": resolvedTool,
			"width":    strconv.Itoa(*width),
			"height":   strconv.Itoa(*height),
			"trace":    strconv.FormatBool(*trace),
			"logFile":  *logFile,
		},
		Args: append([]string(nil), args...),
	}

	return cfg, nil
}

// resolveEditor picks the external editor program. An empty result means the
// inline editor handles edits instead.
func resolveEditor(env map[string]string) string {
	for _, key := range []string{envEditor, "VISUAL", "EDITOR"} {
		if v := strings.TrimSpace(envOrDefault(env, key, "")); v != "" {
			return v
		}
	}
	return ""
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
	// Additional validation hooks can be placed here as configuration evolves.
	return nil
}
