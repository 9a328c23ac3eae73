package sandfall

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sandfall.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := writeConfig(t, `
width: 40
params:
  hazard_chance: 0.25
  diagonal: random
  floor_is_solid: false
`)
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	want := DefaultConfig()
	want.Width = 40
	want.Params.HazardChance = 0.25
	want.Params.Diagonal = DiagonalRandom
	want.Params.FloorIsSolid = false
	if cfg != want {
		t.Fatalf("config = %+v\nwant %+v", cfg, want)
	}
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	path := writeConfig(t, "params:\n  hazard_chance: 3\n")
	if _, err := LoadConfig(path); !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}

	path = writeConfig(t, "params:\n  diagonal: sideways\n")
	if _, err := LoadConfig(path); err == nil {
		t.Fatal("expected unknown diagonal policy to fail")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist, got %v", err)
	}
}

func TestConfigYAMLRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Height = 33
	cfg.Params.Diagonal = DiagonalRightFirst
	cfg.Params.CoyoteTicks = 3

	raw, err := cfg.YAML()
	if err != nil {
		t.Fatalf("YAML: %v", err)
	}
	loaded, err := LoadConfig(writeConfig(t, string(raw)))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if loaded != cfg {
		t.Fatalf("round trip = %+v\nwant %+v", loaded, cfg)
	}
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"narrow":        func(c *Config) { c.Width = 2 },
		"zero tps":      func(c *Config) { c.TPS = 0 },
		"negative gap":  func(c *Config) { c.Params.HazardInterval = -1 },
		"no fall speed": func(c *Config) { c.Params.MaxFallSpeed = 0 },
		"spawn below":   func(c *Config) { c.Params.SpawnRow = c.Height },
		"ledges":        func(c *Config) { c.Params.PlatformMinLen = 9; c.Params.PlatformMaxLen = 4 },
	}
	for name, mutate := range cases {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
			t.Fatalf("%s: expected ErrInvalidConfig, got %v", name, err)
		}
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}

func TestFromMap(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":              "24",
		"h":              "12",
		"seed":           "7",
		"diagonal":       "right",
		"hazard_chance":  "0.4",
		"coyote_ticks":   "2",
		"floor_is_solid": "false",
		"spawn_row":      "50",
	})
	if cfg.Width != 24 || cfg.Height != 12 || cfg.Seed != 7 {
		t.Fatalf("dimensions/seed = %dx%d/%d", cfg.Width, cfg.Height, cfg.Seed)
	}
	p := cfg.Params
	if p.Diagonal != DiagonalRightFirst || p.HazardChance != 0.4 || p.CoyoteTicks != 2 || p.FloorIsSolid {
		t.Fatalf("params = %+v", p)
	}
	if p.SpawnRow != 11 {
		t.Fatalf("spawn_row = %d, want clamped to 11", p.SpawnRow)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("FromMap produced invalid config: %v", err)
	}
}

func TestFromMapIgnoresMalformedValues(t *testing.T) {
	cfg := FromMap(map[string]string{
		"w":                "-5",
		"tps":              "fast",
		"hazard_chance":    "1.5",
		"gravity":          "-1",
		"max_fall_speed":   "0",
		"diagonal":         "up",
		"platform_min_len": "20",
	})
	def := DefaultConfig()
	if cfg.Width != def.Width || cfg.TPS != def.TPS {
		t.Fatalf("malformed dimensions applied: %+v", cfg)
	}
	p := cfg.Params
	if p.HazardChance != def.Params.HazardChance || p.Gravity != def.Params.Gravity || p.Diagonal != def.Params.Diagonal {
		t.Fatalf("malformed params applied: %+v", p)
	}
	if p.MaxFallSpeed != def.Params.MaxFallSpeed {
		t.Fatalf("max_fall_speed = %v, want default", p.MaxFallSpeed)
	}
	if p.PlatformMaxLen < p.PlatformMinLen {
		t.Fatalf("ledge bounds inverted: %d > %d", p.PlatformMinLen, p.PlatformMaxLen)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("FromMap produced invalid config: %v", err)
	}
}

func TestWithOverridesKeepsBase(t *testing.T) {
	base := DefaultConfig()
	base.Width = 30
	base.Params.Gravity = 0.2

	cfg := base.WithOverrides(map[string]string{"hazard_interval": "90"})
	if cfg.Width != 30 || cfg.Params.Gravity != 0.2 || cfg.Params.HazardInterval != 90 {
		t.Fatalf("overrides lost the base config: %+v", cfg)
	}
	if base.Params.HazardInterval != DefaultConfig().Params.HazardInterval {
		t.Fatal("WithOverrides modified its receiver")
	}
}
