package config

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DefaultFolder == "" {
		t.Error("default folder not set")
	}
	if len(cfg.SearchHistory) != 0 {
		t.Errorf("history = %v, want empty", cfg.SearchHistory)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := &Config{
		DefaultFolder: dir, // must exist to survive validation
		ViewerPath:    "/usr/bin/mupdf",
		SearchHistory: []string{"kitap", "machine learning"},
	}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DefaultFolder != dir || got.ViewerPath != "/usr/bin/mupdf" {
		t.Errorf("loaded %+v", got)
	}
	if len(got.SearchHistory) != 2 || got.SearchHistory[0] != "kitap" {
		t.Errorf("history = %v", got.SearchHistory)
	}
}

func TestLoadResetsVanishedFolder(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	cfg := &Config{DefaultFolder: filepath.Join(dir, "gone")}
	if err := cfg.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.DefaultFolder != defaults().DefaultFolder {
		t.Errorf("folder = %q, want default", got.DefaultFolder)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("default_folder: [oops"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestAddHistory(t *testing.T) {
	var cfg Config
	cfg.AddHistory("bir")
	cfg.AddHistory("iki")
	cfg.AddHistory("bir") // duplicate moves to the front
	cfg.AddHistory("")    // ignored

	want := []string{"bir", "iki"}
	if len(cfg.SearchHistory) != len(want) {
		t.Fatalf("history = %v, want %v", cfg.SearchHistory, want)
	}
	for i := range want {
		if cfg.SearchHistory[i] != want[i] {
			t.Errorf("history[%d] = %q, want %q", i, cfg.SearchHistory[i], want[i])
		}
	}
}

func TestAddHistoryCap(t *testing.T) {
	var cfg Config
	for i := 0; i < MaxHistory+20; i++ {
		cfg.AddHistory(fmt.Sprintf("term-%d", i))
	}
	if len(cfg.SearchHistory) != MaxHistory {
		t.Errorf("history length = %d, want %d", len(cfg.SearchHistory), MaxHistory)
	}
	if cfg.SearchHistory[0] != fmt.Sprintf("term-%d", MaxHistory+19) {
		t.Errorf("front = %q", cfg.SearchHistory[0])
	}
}
