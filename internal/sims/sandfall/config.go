package sandfall

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("sandfall: invalid config")

// Params holds the tunables of the automaton, the hazard schedule and the
// actor's physics. All durations are in ticks, speeds in cells per tick.
type Params struct {
	HazardInterval     int     `yaml:"hazard_interval"`
	HazardChance       float64 `yaml:"hazard_chance"`
	CompactionInterval int     `yaml:"compaction_interval"`

	Diagonal DiagonalPolicy `yaml:"diagonal"`

	Gravity      float64 `yaml:"gravity"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
	JumpSpeed    float64 `yaml:"jump_speed"`
	CoyoteTicks  int     `yaml:"coyote_ticks"`
	FloorIsSolid bool    `yaml:"floor_is_solid"`

	SandFillChance float64 `yaml:"sand_fill_chance"`
	SandLayerRows  int     `yaml:"sand_layer_rows"`
	PlatformCount  int     `yaml:"platform_count"`
	PlatformMinLen int     `yaml:"platform_min_len"`
	PlatformMaxLen int     `yaml:"platform_max_len"`
	SpawnRow       int     `yaml:"spawn_row"`
}

// Config controls the world dimensions, seeding and tick rate.
type Config struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Seed   int64 `yaml:"seed"`
	TPS    int   `yaml:"tps"`

	Params Params `yaml:"params"`
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  80,
		Height: 60,
		Seed:   1337,
		TPS:    60,
		Params: Params{
			HazardInterval:     600,
			HazardChance:       0.7,
			CompactionInterval: 1800,
			Diagonal:           DiagonalLeftFirst,
			Gravity:            0.08,
			MaxFallSpeed:       1,
			JumpSpeed:          1,
			CoyoteTicks:        8,
			FloorIsSolid:       true,
			SandFillChance:     0.55,
			SandLayerRows:      16,
			PlatformCount:      5,
			PlatformMinLen:     5,
			PlatformMaxLen:     12,
			SpawnRow:           4,
		},
	}
}

// Validate reports the first inconsistent setting.
func (c Config) Validate() error {
	p := c.Params
	switch {
	case c.Width < 3:
		return fmt.Errorf("%w: width %d, need at least 3", ErrInvalidConfig, c.Width)
	case c.Height < 3:
		return fmt.Errorf("%w: height %d, need at least 3", ErrInvalidConfig, c.Height)
	case c.TPS <= 0:
		return fmt.Errorf("%w: tps %d must be positive", ErrInvalidConfig, c.TPS)
	case p.HazardInterval < 0 || p.CompactionInterval < 0:
		return fmt.Errorf("%w: negative timer interval", ErrInvalidConfig)
	case p.HazardChance < 0 || p.HazardChance > 1:
		return fmt.Errorf("%w: hazard_chance %.3f outside [0,1]", ErrInvalidConfig, p.HazardChance)
	case p.SandFillChance < 0 || p.SandFillChance > 1:
		return fmt.Errorf("%w: sand_fill_chance %.3f outside [0,1]", ErrInvalidConfig, p.SandFillChance)
	case p.Gravity < 0 || p.JumpSpeed < 0:
		return fmt.Errorf("%w: gravity and jump_speed must not be negative", ErrInvalidConfig)
	case p.MaxFallSpeed <= 0:
		return fmt.Errorf("%w: max_fall_speed %.3f must be positive", ErrInvalidConfig, p.MaxFallSpeed)
	case p.CoyoteTicks < 0:
		return fmt.Errorf("%w: coyote_ticks %d must not be negative", ErrInvalidConfig, p.CoyoteTicks)
	case p.SpawnRow < 0 || p.SpawnRow >= c.Height:
		return fmt.Errorf("%w: spawn_row %d outside [0,%d)", ErrInvalidConfig, p.SpawnRow, c.Height)
	case p.PlatformMinLen > p.PlatformMaxLen:
		return fmt.Errorf("%w: platform_min_len %d exceeds platform_max_len %d", ErrInvalidConfig, p.PlatformMinLen, p.PlatformMaxLen)
	}
	return nil
}

// LoadConfig reads a YAML tuning file. Keys missing from the file keep their
// default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	raw, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("sandfall: load %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("sandfall: unmarshal %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("sandfall: %s: %w", path, err)
	}
	return cfg, nil
}

// YAML encodes the config in the format LoadConfig reads.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// MarshalYAML writes the policy by name.
func (p DiagonalPolicy) MarshalYAML() (interface{}, error) {
	return p.String(), nil
}

// UnmarshalYAML reads the policy by name.
func (p *DiagonalPolicy) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseDiagonalPolicy(name)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Malformed or out-of-range values are ignored.
func FromMap(cfg map[string]string) Config {
	return DefaultConfig().WithOverrides(cfg)
}

// WithOverrides returns a copy of c with the keys in cfg applied the way
// FromMap applies them.
func (c Config) WithOverrides(cfg map[string]string) Config {
	if cfg == nil {
		return c
	}
	p := &c.Params
	intAtLeast(cfg, "w", 3, &c.Width)
	intAtLeast(cfg, "h", 3, &c.Height)
	intAtLeast(cfg, "tps", 1, &c.TPS)
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	intAtLeast(cfg, "hazard_interval", 0, &p.HazardInterval)
	unitFloat(cfg, "hazard_chance", &p.HazardChance)
	intAtLeast(cfg, "compaction_interval", 0, &p.CompactionInterval)
	if v, ok := cfg["diagonal"]; ok {
		if parsed, err := ParseDiagonalPolicy(v); err == nil {
			p.Diagonal = parsed
		}
	}
	nonNegativeFloat(cfg, "gravity", &p.Gravity)
	nonNegativeFloat(cfg, "max_fall_speed", &p.MaxFallSpeed)
	nonNegativeFloat(cfg, "jump_speed", &p.JumpSpeed)
	intAtLeast(cfg, "coyote_ticks", 0, &p.CoyoteTicks)
	if v, ok := cfg["floor_is_solid"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			p.FloorIsSolid = parsed
		}
	}
	unitFloat(cfg, "sand_fill_chance", &p.SandFillChance)
	intAtLeast(cfg, "sand_layer_rows", 0, &p.SandLayerRows)
	intAtLeast(cfg, "platform_count", 0, &p.PlatformCount)
	intAtLeast(cfg, "platform_min_len", 0, &p.PlatformMinLen)
	intAtLeast(cfg, "platform_max_len", 0, &p.PlatformMaxLen)
	if p.PlatformMaxLen < p.PlatformMinLen {
		p.PlatformMaxLen = p.PlatformMinLen
	}
	intAtLeast(cfg, "spawn_row", 0, &p.SpawnRow)
	if p.SpawnRow >= c.Height {
		p.SpawnRow = c.Height - 1
	}
	if p.MaxFallSpeed == 0 {
		p.MaxFallSpeed = DefaultConfig().Params.MaxFallSpeed
	}
	return c
}

func intAtLeast(cfg map[string]string, key string, min int, dst *int) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= min {
			*dst = parsed
		}
	}
}

func nonNegativeFloat(cfg map[string]string, key string, dst *float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			*dst = parsed
		}
	}
}

func unitFloat(cfg map[string]string, key string, dst *float64) {
	if v, ok := cfg[key]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			*dst = parsed
		}
	}
}
