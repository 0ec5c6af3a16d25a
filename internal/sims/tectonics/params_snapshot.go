package tectonics

import (
	"strconv"

	"lithos/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
				intParam("plates", "Plate count", params.PlateCount),
				floatParam("sea_level", "Sea level", params.SeaLevel),
			},
		},
		{
			Name: "Tectonics",
			Params: []core.Parameter{
				intParam("erosion_period", "Erosion period", params.ErosionPeriod),
				floatParam("aggregation_ratio", "Aggregation ratio", params.AggregationRatio),
				intParam("aggregation_count", "Aggregation count", params.AggregationCount),
				floatParam("subduction_transfer", "Subduction transfer", params.SubductionTransfer),
				floatParam("restart_speed", "Restart speed", params.RestartSpeed),
				intParam("max_cycles", "Max cycles", params.MaxCycles),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables adjustable from the HUD.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "erosion_period", Label: "Erosion period", Type: core.ParamTypeInt,
			Step: 5, Min: 1, Max: 200, HasMin: true, HasMax: true},
		{Key: "aggregation_ratio", Label: "Aggregation ratio", Type: core.ParamTypeFloat,
			Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "aggregation_count", Label: "Aggregation count", Type: core.ParamTypeInt,
			Step: 1, Min: 0, Max: 50, HasMin: true, HasMax: true},
		{Key: "subduction_transfer", Label: "Subduction transfer", Type: core.ParamTypeFloat,
			Step: 0.05, Min: 0, Max: 1, HasMin: true, HasMax: true},
	}
}

// SetIntParameter updates an integer tunable; it reports whether the key
// was recognized.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "erosion_period":
		if value < 1 {
			value = 1
		}
		w.cfg.Params.ErosionPeriod = value
	case "aggregation_count":
		if value < 0 {
			value = 0
		}
		w.cfg.Params.AggregationCount = value
	case "max_cycles":
		if value < 0 {
			value = 0
		}
		w.cfg.Params.MaxCycles = value
	default:
		return false
	}
	return true
}

// SetFloatParameter updates a float tunable; it reports whether the key
// was recognized. Values clamp to their valid range.
func (w *World) SetFloatParameter(key string, value float64) bool {
	clamp01 := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	switch key {
	case "aggregation_ratio":
		w.cfg.Params.AggregationRatio = clamp01(value)
	case "subduction_transfer":
		w.cfg.Params.SubductionTransfer = clamp01(value)
	case "sea_level":
		w.cfg.Params.SeaLevel = clamp01(value)
	case "restart_speed":
		if value < 0 {
			value = 0
		}
		w.cfg.Params.RestartSpeed = value
	default:
		return false
	}
	return true
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
