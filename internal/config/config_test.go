package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formfocus/internal/config"
	"github.com/goliatone/go-formfocus/pkg/scroll"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "warn" || cfg.Log.Format != "json" {
		t.Fatalf("log defaults = %+v", cfg.Log)
	}
	if diff := cmp.Diff(scroll.DefaultConfig(), cfg.ScrollGeometry()); diff != "" {
		t.Fatalf("geometry mismatch (-want +got):\n%s", diff)
	}
	if cfg.Terminal.ViewportRows != 12 || cfg.Terminal.OutputFormat != "json" {
		t.Fatalf("terminal defaults = %+v", cfg.Terminal)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	content := `
log:
  level: debug
geometry:
  fixed_top_offset: 56
terminal:
  viewport_rows: 20
  output_format: pretty
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	t.Setenv("FORMFOCUS_TERMINAL_VIEWPORT_ROWS", "8")
	t.Setenv("FORMFOCUS_GEOMETRY_MODAL_CHROME_HEIGHT", "70")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("file should set level, got %q", cfg.Log.Level)
	}
	if cfg.Geometry.FixedTopOffset != 56 || cfg.Geometry.ModalChromeHeight != 70 {
		t.Fatalf("geometry = %+v", cfg.Geometry)
	}
	if cfg.Terminal.ViewportRows != 8 {
		t.Fatalf("env should override file, viewport_rows = %d", cfg.Terminal.ViewportRows)
	}
	if cfg.Terminal.OutputFormat != "pretty" {
		t.Fatalf("output_format = %q", cfg.Terminal.OutputFormat)
	}
}

func TestLoad_FindsDefaultPath(t *testing.T) {
	dir := chdirTemp(t)
	if err := os.WriteFile(filepath.Join(dir, "formfocus.yaml"), []byte("log:\n  format: console\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Log.Format != "console" {
		t.Fatalf("format = %q", cfg.Log.Format)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := chdirTemp(t)

	if _, err := config.Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Fatalf("explicit missing file should fail")
	}

	t.Setenv("FORMFOCUS_TERMINAL_OUTPUT_FORMAT", "xml")
	t.Setenv("FORMFOCUS_GEOMETRY_RIGHT_OFFSET", "5")
	_, err := config.Load("")
	if err == nil {
		t.Fatalf("invalid settings should fail")
	}
	for _, want := range []string{"output_format", "right_offset"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}

func TestLogging(t *testing.T) {
	cfg := &config.Config{Log: config.LogConfig{Level: "info", Format: "console", Caller: true}}
	got := cfg.Logging()
	if got.Level != "info" || got.Format != "console" || !got.Caller {
		t.Fatalf("logging = %+v", got)
	}
}
