package sandfall

import (
	"strconv"

	"sandfall/internal/core"
)

// Parameters reports the active configuration grouped for the HUD.
func (w *World) Parameters() core.ParameterSnapshot {
	p := w.cfg.Params
	return core.ParameterSnapshot{Groups: []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.seed),
				intParam("tps", "Ticks per second", w.cfg.TPS),
			},
		},
		{
			Name: "Hazards",
			Params: []core.Parameter{
				intParam("hazard_interval", "Storm interval", p.HazardInterval),
				floatParam("hazard_chance", "Storm density", p.HazardChance),
				intParam("compaction_interval", "Erosion interval", p.CompactionInterval),
				{Key: "diagonal", Label: "Diagonal order", Type: core.ParamTypeString, Value: p.Diagonal.String()},
			},
		},
		{
			Name: "Actor",
			Params: []core.Parameter{
				floatParam("gravity", "Gravity", p.Gravity),
				floatParam("max_fall_speed", "Max fall speed", p.MaxFallSpeed),
				floatParam("jump_speed", "Jump speed", p.JumpSpeed),
				intParam("coyote_ticks", "Coyote ticks", p.CoyoteTicks),
				boolParam("floor_is_solid", "Solid floor", p.FloorIsSolid),
			},
		},
		{
			Name: "Terrain",
			Params: []core.Parameter{
				floatParam("sand_fill_chance", "Sand density", p.SandFillChance),
				intParam("sand_layer_rows", "Sand layer rows", p.SandLayerRows),
				intParam("platform_count", "Ledges", p.PlatformCount),
				intParam("platform_min_len", "Ledge length min", p.PlatformMinLen),
				intParam("platform_max_len", "Ledge length max", p.PlatformMaxLen),
				intParam("spawn_row", "Spawn row", p.SpawnRow),
			},
		},
	}}
}

// ParameterControls lists the tunables adjustable while the game runs.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "hazard_interval", Label: "Storm interval", Type: core.ParamTypeInt, Step: 60, Min: 0, HasMin: true},
		{Key: "hazard_chance", Label: "Storm density", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "compaction_interval", Label: "Erosion interval", Type: core.ParamTypeInt, Step: 300, Min: 0, HasMin: true},
		{Key: "gravity", Label: "Gravity", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "jump_speed", Label: "Jump speed", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, Max: 3, HasMin: true, HasMax: true},
		{Key: "coyote_ticks", Label: "Coyote ticks", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 60, HasMin: true, HasMax: true},
		{Key: "floor_is_solid", Label: "Solid floor", Type: core.ParamTypeBool},
	}
}

// SetIntParameter updates an integer tunable by key.
func (w *World) SetIntParameter(key string, value int) bool {
	p := w.cfg.Params
	switch key {
	case "hazard_interval":
		p.HazardInterval = value
	case "compaction_interval":
		p.CompactionInterval = value
	case "coyote_ticks":
		p.CoyoteTicks = value
	case "sand_layer_rows":
		p.SandLayerRows = value
	case "platform_count":
		p.PlatformCount = value
	default:
		return false
	}
	return w.ApplyParams(p) == nil
}

// SetFloatParameter updates a floating point tunable by key.
func (w *World) SetFloatParameter(key string, value float64) bool {
	p := w.cfg.Params
	switch key {
	case "hazard_chance":
		p.HazardChance = clampUnit(value)
	case "gravity":
		p.Gravity = value
	case "max_fall_speed":
		p.MaxFallSpeed = value
	case "jump_speed":
		p.JumpSpeed = value
	case "sand_fill_chance":
		p.SandFillChance = clampUnit(value)
	default:
		return false
	}
	return w.ApplyParams(p) == nil
}

// SetBoolParameter toggles a boolean tunable by key.
func (w *World) SetBoolParameter(key string, value bool) bool {
	if key != "floor_is_solid" {
		return false
	}
	p := w.cfg.Params
	p.FloorIsSolid = value
	return w.ApplyParams(p) == nil
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}
