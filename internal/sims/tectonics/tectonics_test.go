package tectonics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lithos/internal/plate"
	"lithos/pkg/core"
)

func TestResetDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 64
	cfg.Height = 64
	cfg.Seed = 99
	cfg.Params.PlateCount = 5

	world := NewWithConfig(cfg)
	world.Reset(0)

	initialHeights := append([]float32(nil), world.HeightField()...)
	initialOwners := append([]uint8(nil), world.PlateField()...)
	initialCells := append([]uint8(nil), world.Cells()...)
	require.NotEmpty(t, initialHeights)

	world.Step()
	world.Reset(0)

	assert.Equal(t, initialHeights, world.HeightField())
	assert.Equal(t, initialOwners, world.PlateField())
	assert.Equal(t, initialCells, world.Cells())

	// A different seed produces a different surface.
	world.Reset(777)
	assert.NotEqual(t, initialHeights, world.HeightField())
}

func TestStepKeepsWorldSane(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Width = 64
	cfg.Height = 64
	cfg.Params.PlateCount = 6
	cfg.Params.ErosionPeriod = 5

	world := NewWithConfig(cfg)
	world.Reset(1337)

	require.Positive(t, world.TotalMass())
	require.Positive(t, world.PlateCount())

	for step := 0; step < 40; step++ {
		world.Step()

		heights := world.HeightField()
		require.Len(t, heights, 64*64)
		for i, h := range heights {
			require.False(t, h < 0, "negative height at %d after step %d", i, step)
			require.False(t, h != h, "NaN height at %d after step %d", i, step)
		}
		require.Len(t, world.Cells(), 64*64)
		require.Positive(t, world.TotalMass())
		require.Positive(t, world.PlateCount())
	}
}

func TestGenerateHeightmapSeaLevel(t *testing.T) {
	rng := core.NewRNG(42)
	p := DefaultConfig().Params
	p.SeaLevel = 0.6

	hm := generateHeightmap(rng, 128, 128, p)
	require.Len(t, hm, 128*128)

	ocean := 0
	for _, h := range hm {
		require.Greater(t, h, float32(0))
		if h < continentalBase {
			ocean++
		}
	}
	frac := float64(ocean) / float64(len(hm))
	assert.InDelta(t, 0.6, frac, 0.05)
}

func TestPartitionPlatesCoversWorld(t *testing.T) {
	rng := core.NewRNG(7)
	owner := partitionPlates(rng, 32, 32, 6)
	require.Len(t, owner, 32*32)
	for _, o := range owner {
		assert.Less(t, int(o), 6)
	}
}

func TestWrappedExtent(t *testing.T) {
	used := make([]bool, 8)
	used[1] = true
	used[2] = true
	start, length := wrappedExtent(used, 8)
	assert.Equal(t, 1, start)
	assert.Equal(t, 2, length)

	// A run crossing the seam stays one interval.
	used = make([]bool, 8)
	used[7] = true
	used[0] = true
	start, length = wrappedExtent(used, 8)
	assert.Equal(t, 7, start)
	assert.Equal(t, 2, length)

	// Fully used axis.
	used = make([]bool, 4)
	for i := range used {
		used[i] = true
	}
	start, length = wrappedExtent(used, 4)
	assert.Equal(t, 0, start)
	assert.Equal(t, 4, length)
}

func TestBuildPlatesMassMatchesSurface(t *testing.T) {
	rng := core.NewRNG(3)
	p := DefaultConfig().Params
	hm := generateHeightmap(rng, 32, 32, p)
	owner := partitionPlates(rng, 32, 32, 4)

	plates, err := buildPlates(rng, hm, owner, 32, 32, 0, plate.WorldDim{W: 32, H: 32})
	require.NoError(t, err)

	var total float64
	for _, pl := range plates {
		total += pl.Mass()
	}
	var surface float64
	for _, h := range hm {
		surface += float64(h)
	}
	assert.InEpsilon(t, surface, total, 1e-3)
}

func TestFromMapOverrides(t *testing.T) {
	c := FromMap(map[string]string{
		"w":              "48",
		"h":              "24",
		"seed":           "5",
		"plates":         "3",
		"sea_level":      "0.4",
		"erosion_period": "7",
	})
	assert.Equal(t, 48, c.Width)
	assert.Equal(t, 24, c.Height)
	assert.Equal(t, int64(5), c.Seed)
	assert.Equal(t, 3, c.Params.PlateCount)
	assert.InDelta(t, 0.4, c.Params.SeaLevel, 1e-9)
	assert.Equal(t, 7, c.Params.ErosionPeriod)
}
