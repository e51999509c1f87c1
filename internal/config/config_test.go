package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "tsz.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	path := writeManifest(t, `target = "module"`)
	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !opts.IsModule() {
		t.Fatalf("IsModule() = false, want true")
	}
	if opts.MaxInferenceIterations != DefaultMaxInferenceIterations {
		t.Fatalf("MaxInferenceIterations = %d, want default %d", opts.MaxInferenceIterations, DefaultMaxInferenceIterations)
	}
	if opts.Strict {
		t.Fatalf("Strict = true, want false")
	}
}

func TestLoadOverrides(t *testing.T) {
	path := writeManifest(t, `
strict = true
no_implicit_any = true
target = "script"
max_inference_iterations = 10
`)
	opts, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !opts.Strict || !opts.NoImplicitAny {
		t.Fatalf("Strict/NoImplicitAny not set: %+v", opts)
	}
	if opts.IsModule() {
		t.Fatalf("IsModule() = true, want false for target = script")
	}
	if opts.MaxInferenceIterations != 10 {
		t.Fatalf("MaxInferenceIterations = %d, want 10", opts.MaxInferenceIterations)
	}
}

func TestLoadRejectsBadTarget(t *testing.T) {
	path := writeManifest(t, `target = "nonsense"`)
	if _, err := Load(path); err == nil {
		t.Fatalf("Load: want error for invalid target, got nil")
	}
}

func TestLoadRejectsNegativeIterationCap(t *testing.T) {
	path := writeManifest(t, `
target = "module"
max_inference_iterations = -1
`)
	if _, err := Load(path); err == nil {
		t.Fatalf("Load: want error for negative max_inference_iterations, got nil")
	}
}

func TestDefault(t *testing.T) {
	opts := Default()
	if opts.Target != "script" {
		t.Fatalf("Default().Target = %q, want \"script\"", opts.Target)
	}
	if opts.MaxInferenceIterations != DefaultMaxInferenceIterations {
		t.Fatalf("Default().MaxInferenceIterations = %d, want %d", opts.MaxInferenceIterations, DefaultMaxInferenceIterations)
	}
}
