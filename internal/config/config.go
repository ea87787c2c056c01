// Package config reads and writes the ~/.storymaprc dotfile. The file holds
// KEY=value lines; environment variables override file values.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

const rcName = ".storymaprc"

// Config carries everything the host page used to hand the map component.
type Config struct {
	Path string

	// StoriesSource is a file path or an http(s) URL of the stories endpoint.
	StoriesSource string
	// BackendToken is sent as Authorization header to the stories endpoint.
	BackendToken string

	MapboxAccessToken string
	MapboxStyle       string
	LogoPath          string

	UserName  string
	UserEmail string

	LogLevel string

	// lines is the rc file as read; SaveSource rewrites only its source line.
	lines []string
	// parseErr is set when the rc file could not be parsed.
	parseErr error
}

// User is the signed-in user shown in the story card footer.
type User struct {
	Name  string
	Email string
}

func (c Config) User() User { return User{Name: c.UserName, Email: c.UserEmail} }

type binding struct {
	key string
	env string
	ptr func(*Config) *string
}

var bindings = []binding{
	{"STORIES_SOURCE", "STORYMAP_SOURCE", func(c *Config) *string { return &c.StoriesSource }},
	{"BACKEND_TOKEN", "STORYMAP_BACKEND_TOKEN", func(c *Config) *string { return &c.BackendToken }},
	{"MAPBOX_ACCESS_TOKEN", "MAPBOX_ACCESS_TOKEN", func(c *Config) *string { return &c.MapboxAccessToken }},
	{"MAPBOX_STYLE", "MAPBOX_STYLE", func(c *Config) *string { return &c.MapboxStyle }},
	{"LOGO_PATH", "STORYMAP_LOGO_PATH", func(c *Config) *string { return &c.LogoPath }},
	{"USER_NAME", "STORYMAP_USER_NAME", func(c *Config) *string { return &c.UserName }},
	{"USER_EMAIL", "STORYMAP_USER_EMAIL", func(c *Config) *string { return &c.UserEmail }},
	{"LOG_LEVEL", "STORYMAP_LOG_LEVEL", func(c *Config) *string { return &c.LogLevel }},
}

// DefaultPath returns ~/.storymaprc, or ./.storymaprc if there is no home.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return rcName
	}
	return filepath.Join(home, rcName)
}

// ErrUnparsed is returned by SaveSource when the rc file had errors on load.
var ErrUnparsed = errors.New("rc file could not be parsed; leaving it untouched")

// Load reads path and applies environment overrides. A missing file is
// reported as an error but the returned Config still carries env values.
func Load(path string) (Config, error) {
	cfg := Config{Path: path, MapboxStyle: "mapbox://styles/mapbox/streets-v12", LogLevel: "info"}

	data, err := os.ReadFile(path)
	if err == nil {
		cfg.lines = strings.Split(strings.TrimRight(string(data), "\n"), "\n")
		if err = parse(cfg.lines, &cfg); err != nil {
			cfg.parseErr = err
		}
	}
	applyEnv(&cfg)
	if err != nil {
		return cfg, fmt.Errorf("load %s: %w", path, err)
	}
	return cfg, nil
}

func parse(lines []string, cfg *Config) error {
	for i, raw := range lines {
		k, v, skip, err := splitLine(raw)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		if skip {
			continue
		}
		for _, b := range bindings {
			if b.key == k {
				*b.ptr(cfg) = v
			}
		}
	}
	return nil
}

// splitLine returns the upper-cased key and the unquoted value of one line.
func splitLine(raw string) (key, value string, skip bool, err error) {
	text := strings.TrimSpace(raw)
	if text == "" || strings.HasPrefix(text, "#") {
		return "", "", true, nil
	}
	k, v, ok := strings.Cut(text, "=")
	if !ok {
		return "", "", false, errors.New("expected KEY=value")
	}
	return strings.ToUpper(strings.TrimSpace(k)), strings.Trim(strings.TrimSpace(v), `"'`), false, nil
}

func applyEnv(cfg *Config) {
	for _, b := range bindings {
		if v := strings.TrimSpace(os.Getenv(b.env)); v != "" {
			*b.ptr(cfg) = v
		}
	}
}

// SaveSource records source as STORIES_SOURCE in the rc file cfg was loaded
// from. Every other line is written back as it was read, so values that
// came from the environment or flags never reach the file. A file that
// failed to parse is not touched.
func SaveSource(cfg Config, source string) error {
	if cfg.parseErr != nil {
		return fmt.Errorf("%w: %v", ErrUnparsed, cfg.parseErr)
	}
	const key = "STORIES_SOURCE"
	entry := key + "=" + source

	lines := slices.Clone(cfg.lines)
	if len(lines) == 0 {
		lines = []string{"# storymap configuration"}
	}
	replaced := false
	for i, raw := range lines {
		if k, _, skip, _ := splitLine(raw); !skip && k == key {
			lines[i] = entry
			replaced = true
		}
	}
	if !replaced {
		lines = append(lines, entry)
	}

	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(cfg.Path, []byte(strings.Join(lines, "\n")+"\n"), 0o600)
}
