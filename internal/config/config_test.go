package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config must be valid: %v", err)
	}
	if got := cfg.MessageLogCapacity(); got != 6 {
		t.Errorf("MessageLogCapacity() = %d, want 6", got)
	}
}

func TestLoad_FileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "umbrella.toml")
	content := `
seed = 42

[map]
max_rooms = 5

[fov]
algorithm = "shadow"

[storage]
driver = "SQLite"
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("UMBRELLA_SPELLS_HEAL_AMOUNT", "9")
	t.Setenv("UMBRELLA_MAP_MAX_ROOMS", "7")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Seed)
	}
	if cfg.Map.MaxRooms != 7 {
		t.Errorf("env must override file: MaxRooms = %d, want 7", cfg.Map.MaxRooms)
	}
	if cfg.Map.Width != 80 {
		t.Errorf("untouched defaults must survive: Width = %d", cfg.Map.Width)
	}
	if cfg.FOV.Algorithm != "SHADOW" {
		t.Errorf("Algorithm = %q, want SHADOW", cfg.FOV.Algorithm)
	}
	if cfg.Storage.Driver != "sqlite" {
		t.Errorf("Driver = %q, want sqlite", cfg.Storage.Driver)
	}
	if cfg.Spells.HealAmount != 9 {
		t.Errorf("HealAmount = %d, want 9", cfg.Spells.HealAmount)
	}
}

// Пример в корне репозитория должен совпадать с настройками по умолчанию
func TestLoad_ExampleMatchesDefault(t *testing.T) {
	cfg, err := Load(filepath.Join("..", "..", "config.example.toml"))
	if err != nil {
		t.Fatalf("Load(example) error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("example config drifted from Default() (-want +got):\n%s", diff)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"unknown fov", func(c *Config) { c.FOV.Algorithm = "PERMISSIVE" }},
		{"inverted rooms", func(c *Config) { c.Map.RoomMinSize, c.Map.RoomMaxSize = 10, 6 }},
		{"tiny map", func(c *Config) { c.Map.Width = 8 }},
		{"zero heal", func(c *Config) { c.Spells.HealAmount = 0 }},
		{"no message room", func(c *Config) { c.UI.PanelHeight = 1 }},
		{"unknown driver", func(c *Config) { c.Storage.Driver = "redis" }},
		{"empty slot", func(c *Config) { c.Storage.Slot = " " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
