// Package config loads CLI configuration in three layers: struct defaults,
// an optional YAML file, and FORMFOCUS_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/goliatone/go-formfocus/internal/logging"
	"github.com/goliatone/go-formfocus/pkg/scroll"
)

// EnvPrefix namespaces environment overrides, e.g. FORMFOCUS_LOG_LEVEL.
const EnvPrefix = "FORMFOCUS_"

// DefaultConfigPaths are tried in order when no explicit path is given.
var DefaultConfigPaths = []string{
	"formfocus.yaml",
	"formfocus.yml",
}

// Config is the full CLI configuration.
type Config struct {
	Log      LogConfig      `koanf:"log"`
	Geometry GeometryConfig `koanf:"geometry"`
	Terminal TerminalConfig `koanf:"terminal"`
}

// LogConfig mirrors logging.Config without the writer.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// GeometryConfig holds the scroll layout constants.
type GeometryConfig struct {
	FixedTopOffset    float64 `koanf:"fixed_top_offset"`
	ModalChromeHeight float64 `koanf:"modal_chrome_height"`
	RightOffset       float64 `koanf:"right_offset"`
}

// TerminalConfig sizes the terminal session's virtual viewport, in lines.
type TerminalConfig struct {
	ViewportRows int    `koanf:"viewport_rows"`
	FieldRows    int    `koanf:"field_rows"`
	OutputFormat string `koanf:"output_format"`
}

func defaultConfig() *Config {
	logDefaults := logging.DefaultConfig()
	return &Config{
		Log: LogConfig{
			Level:  logDefaults.Level,
			Format: logDefaults.Format,
		},
		Geometry: GeometryConfig{
			FixedTopOffset:    scroll.DefaultFixedTopOffset,
			ModalChromeHeight: scroll.DefaultModalChromeHeight,
			RightOffset:       scroll.DefaultRightOffset,
		},
		Terminal: TerminalConfig{
			ViewportRows: 12,
			FieldRows:    2,
			OutputFormat: "json",
		},
	}
}

// Load builds the configuration. An explicit path must exist; without one the
// DefaultConfigPaths are tried and skipped when missing.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("config: load defaults: %w", err)
	}

	configPath, err := resolvePath(path)
	if err != nil {
		return nil, err
	}
	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("config: %w", err)
		}
		return path, nil
	}
	for _, candidate := range DefaultConfigPaths {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", nil
}

// envTransformFunc maps FORMFOCUS_GEOMETRY_FIXED_TOP_OFFSET to
// geometry.fixed_top_offset: the first segment after the prefix names the
// section, the rest is the key.
func envTransformFunc(key string) string {
	trimmed := strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	section, rest, ok := strings.Cut(trimmed, "_")
	if !ok || rest == "" {
		return ""
	}
	switch section {
	case "log", "geometry", "terminal":
		return section + "." + rest
	default:
		return ""
	}
}

// Validate rejects settings the terminal session cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Terminal.ViewportRows <= 0 {
		errs = append(errs, errors.New("terminal.viewport_rows must be positive"))
	}
	if c.Terminal.FieldRows <= 0 {
		errs = append(errs, errors.New("terminal.field_rows must be positive"))
	}
	if c.Geometry.FixedTopOffset < 0 || c.Geometry.ModalChromeHeight < 0 {
		errs = append(errs, errors.New("geometry offsets must not be negative"))
	}
	if c.Geometry.RightOffset > 0 {
		errs = append(errs, errors.New("geometry.right_offset must not be positive"))
	}
	switch c.Terminal.OutputFormat {
	case "json", "form", "pretty":
	default:
		errs = append(errs, fmt.Errorf("terminal.output_format %q is not one of json, form, pretty", c.Terminal.OutputFormat))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// Logging converts the log section into a logging.Config.
func (c *Config) Logging() logging.Config {
	return logging.Config{
		Level:  c.Log.Level,
		Format: c.Log.Format,
		Caller: c.Log.Caller,
	}
}

// ScrollGeometry converts the geometry section into scroll constants.
func (c *Config) ScrollGeometry() scroll.Config {
	cfg := scroll.DefaultConfig()
	cfg.FixedTopOffset = c.Geometry.FixedTopOffset
	cfg.ModalChromeHeight = c.Geometry.ModalChromeHeight
	cfg.RightOffset = c.Geometry.RightOffset
	return cfg
}
