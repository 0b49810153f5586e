package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/audi70r/gitcredit/internal/config"
)

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitcredit.toml")
	body := `
[identities.aliases]
"al@old.example" = "alice@x.com"
"Bobby" = "bob@x.com"

[display]
max_authors = 10
max_files = 25
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}

	wantAliases := map[string]string{
		"al@old.example": "alice@x.com",
		"Bobby":          "bob@x.com",
	}
	if diff := cmp.Diff(wantAliases, cfg.Identities.Aliases); diff != "" {
		t.Errorf("aliases mismatch (-want +got):\n%s", diff)
	}
	if cfg.Display.MaxAuthors != 10 || cfg.Display.MaxFiles != 25 {
		t.Errorf("display = %+v, want {10, 25}", cfg.Display)
	}
}

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if diff := cmp.Diff(config.Default(), cfg); diff != "" {
		t.Errorf("missing file config differs from defaults (-want +got):\n%s", diff)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitcredit.toml")
	body := `
[display]
max_authors = 5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() returned error: %v", err)
	}
	if cfg.Display.MaxAuthors != 5 {
		t.Errorf("MaxAuthors = %d, want 5", cfg.Display.MaxAuthors)
	}
	if cfg.Display.MaxFiles != 100 {
		t.Errorf("MaxFiles = %d, want default 100", cfg.Display.MaxFiles)
	}
	if cfg.Identities.Aliases == nil {
		t.Error("aliases map is nil, want empty map")
	}
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gitcredit.toml")
	if err := os.WriteFile(path, []byte("display = not toml"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := config.Load(path); err == nil {
		t.Error("Load() accepted malformed TOML")
	}
}
