package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func newFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("repaso", pflag.ContinueOnError)
	flags.String("db", "repaso.db", "")
	flags.String("repos", "repos", "")
	flags.String("deck", "", "")
	return flags
}

func TestLoadDefaultsFromFlags(t *testing.T) {
	flags := newFlags()
	if err := flags.Parse(nil); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DB != "repaso.db" || cfg.Repos != "repos" || cfg.Deck != "" {
		t.Errorf("cfg = %+v, want flag defaults", cfg)
	}
}

func TestLoadReadsYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repaso.yaml")
	content := "db: /data/cards.db\ndeck: spanish\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	flags := newFlags()
	if err := flags.Parse(nil); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DB != "/data/cards.db" {
		t.Errorf("DB = %q, want the file value", cfg.DB)
	}
	if cfg.Deck != "spanish" {
		t.Errorf("Deck = %q, want spanish", cfg.Deck)
	}
	// Keys absent from the file still come from flag defaults.
	if cfg.Repos != "repos" {
		t.Errorf("Repos = %q, want the flag default", cfg.Repos)
	}
}

func TestLoadFlagOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "repaso.yaml")
	if err := os.WriteFile(path, []byte("db: /data/cards.db\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	flags := newFlags()
	if err := flags.Parse([]string{"--db", "/override.db"}); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}

	cfg, err := Load(path, flags)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.DB != "/override.db" {
		t.Errorf("DB = %q, want the explicit flag to win", cfg.DB)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("REPASO_DECK", "frases")

	flags := newFlags()
	if err := flags.Parse(nil); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}

	cfg, err := Load("", flags)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Deck != "frases" {
		t.Errorf("Deck = %q, want the environment value", cfg.Deck)
	}
}

func TestLoadMissingFileIsFine(t *testing.T) {
	flags := newFlags()
	if err := flags.Parse(nil); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml"), flags); err != nil {
		t.Errorf("Load returned error for a missing config file: %v", err)
	}
}

func TestLoadValidatesRequiredFields(t *testing.T) {
	// Without a db value from any layer the config is rejected.
	flags := pflag.NewFlagSet("repaso", pflag.ContinueOnError)
	flags.String("deck", "", "")
	if err := flags.Parse(nil); err != nil {
		t.Fatalf("parsing flags: %v", err)
	}

	if _, err := Load("", flags); err == nil {
		t.Error("Load accepted a config with no db path")
	}
}
