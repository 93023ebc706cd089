package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Check.NoImplicitAny {
		t.Error("NoImplicitAny should default to off")
	}
	if cfg.Declarations.Emit {
		t.Error("declaration emission should default to off")
	}
	if cfg.Declarations.Cache.Path != ".sigil-cache.db" {
		t.Errorf("cache path = %q", cfg.Declarations.Cache.Path)
	}
}

func TestParseConfig(t *testing.T) {
	data := []byte(`
check:
  no_implicit_any: true
  suppress:
    - TS2451
declarations:
  emit: true
  cache:
    enabled: true
    path: custom.db
`)
	cfg, err := ParseConfig(data, "/proj/sigil.yaml")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if !cfg.Check.NoImplicitAny {
		t.Error("no_implicit_any not parsed")
	}
	if len(cfg.Check.Suppress) != 1 || cfg.Check.Suppress[0] != "TS2451" {
		t.Errorf("suppress = %v", cfg.Check.Suppress)
	}
	if !cfg.Declarations.Emit || !cfg.Declarations.Cache.Enabled {
		t.Errorf("declarations = %+v", cfg.Declarations)
	}
	if cfg.Declarations.Cache.Path != "custom.db" {
		t.Errorf("explicit cache path overridden: %q", cfg.Declarations.Cache.Path)
	}
}

func TestParseConfigDefaultsCachePath(t *testing.T) {
	cfg, err := ParseConfig([]byte("check:\n  no_implicit_any: true\n"), "/proj/sigil.yaml")
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	want := filepath.Join("/proj", ".sigil-cache.db")
	if cfg.Declarations.Cache.Path != want {
		t.Errorf("cache path = %q, want %q", cfg.Declarations.Cache.Path, want)
	}
}

func TestParseConfigRejectsBadYAML(t *testing.T) {
	if _, err := ParseConfig([]byte("check: ["), "sigil.yaml"); err == nil {
		t.Error("expected a parse error")
	}
}

// Keys from newer or older versions must not break loading.
func TestParseConfigToleratesUnknownKeys(t *testing.T) {
	data := []byte(`
check:
  no_implicit_any: true
  future_switch: true
formatter:
  width: 80
`)
	cfg, err := ParseConfig(data, "sigil.yaml")
	if err != nil {
		t.Fatalf("unknown keys should be ignored: %v", err)
	}
	if !cfg.Check.NoImplicitAny {
		t.Error("known keys should still be parsed")
	}
}

func TestSuppressed(t *testing.T) {
	opts := CheckOptions{Suppress: []string{"TS2451", "TS7005"}}
	if !opts.Suppressed("TS2451") {
		t.Error("TS2451 should be suppressed")
	}
	if opts.Suppressed("TS2322") {
		t.Error("TS2322 should not be suppressed")
	}
	if (CheckOptions{}).Suppressed("TS2451") {
		t.Error("empty suppress list should filter nothing")
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sigil.yaml")
	if err := os.WriteFile(path, []byte("declarations:\n  emit: true\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if !cfg.Declarations.Emit {
		t.Error("emit not parsed")
	}
	if want := filepath.Join(dir, ".sigil-cache.db"); cfg.Declarations.Cache.Path != want {
		t.Errorf("cache path = %q, want %q", cfg.Declarations.Cache.Path, want)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	want := filepath.Join(root, "sigil.yaml")
	if err := os.WriteFile(want, []byte(""), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig: %v", err)
	}
	if got != want {
		t.Errorf("FindConfig = %q, want %q", got, want)
	}
}

func TestFindConfigPrefersYamlSpelling(t *testing.T) {
	dir := t.TempDir()
	yaml := filepath.Join(dir, "sigil.yaml")
	yml := filepath.Join(dir, "sigil.yml")
	for _, p := range []string{yaml, yml} {
		if err := os.WriteFile(p, []byte(""), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	got, err := FindConfig(dir)
	if err != nil {
		t.Fatalf("FindConfig: %v", err)
	}
	if got != yaml {
		t.Errorf("FindConfig = %q, want %q", got, yaml)
	}
}
