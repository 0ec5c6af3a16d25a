package tectonics

import "strconv"

// Params holds the tunable knobs of the tectonics simulation.
type Params struct {
	PlateCount int

	// SeaLevel is the fraction of the initial surface left as oceanic
	// crust.
	SeaLevel float64

	// ErosionPeriod is the number of ticks between erosion passes.
	ErosionPeriod int

	// AggregationRatio and AggregationCount decide when a battered
	// continent is folded onto the colliding plate.
	AggregationRatio float64
	AggregationCount int

	// SubductionTransfer is the fraction of sinking crust deposited onto
	// the overriding plate.
	SubductionTransfer float64

	// RestartSpeed is the mean plate speed below which the current cycle
	// ends and the crust is regathered into fresh plates.
	RestartSpeed float64
	MaxCycles    int

	NoiseOctaves     int
	NoisePersistence float64
}

// Config controls the tectonics simulation dimensions.
type Config struct {
	Width  int
	Height int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  256,
		Height: 256,
		Seed:   1337,
		Params: Params{
			PlateCount:         10,
			SeaLevel:           0.65,
			ErosionPeriod:      20,
			AggregationRatio:   0.5,
			AggregationCount:   5,
			SubductionTransfer: 0.25,
			RestartSpeed:       0.05,
			MaxCycles:          2,
			NoiseOctaves:       5,
			NoisePersistence:   0.55,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["plates"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.PlateCount = parsed
		}
	}
	if v, ok := cfg["sea_level"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.SeaLevel = parsed
		}
	}
	if v, ok := cfg["erosion_period"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.ErosionPeriod = parsed
		}
	}
	if v, ok := cfg["aggregation_ratio"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.AggregationRatio = parsed
		}
	}
	if v, ok := cfg["aggregation_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.AggregationCount = parsed
		}
	}
	if v, ok := cfg["subduction_transfer"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.Params.SubductionTransfer = parsed
		}
	}
	if v, ok := cfg["restart_speed"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.RestartSpeed = parsed
		}
	}
	if v, ok := cfg["max_cycles"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.MaxCycles = parsed
		}
	}
	return c
}
