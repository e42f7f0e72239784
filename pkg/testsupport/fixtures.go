package testsupport

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-formfocus/pkg/form"
	pkgmodel "github.com/goliatone/go-formfocus/pkg/model"
)

// MustLoadFormModel loads a YAML form definition fixture.
func MustLoadFormModel(t *testing.T, path string) pkgmodel.FormModel {
	t.Helper()

	def, err := pkgmodel.LoadFile(path)
	if err != nil {
		t.Fatalf("load form model: %v", err)
	}
	return def
}

// MustLoadValues is LoadValues for tests.
func MustLoadValues(t *testing.T, path string) map[string]any {
	t.Helper()

	values, err := form.LoadValues(path)
	if err != nil {
		t.Fatalf("load values: %v", err)
	}
	return values
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}
