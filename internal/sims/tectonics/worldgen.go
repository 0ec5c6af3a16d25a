package tectonics

import (
	"sort"

	"github.com/aquilax/go-perlin"

	"lithos/internal/plate"
	"lithos/pkg/core"
)

const (
	// Crust thickness assigned to the initial ocean floor.
	oceanicBase = 0.1
	// Crust thickness at the continental shoreline; everything at or
	// above it belongs to a continent.
	continentalBase = plate.ContinentBase
)

// generateHeightmap builds the initial world surface from fractal perlin
// noise: cells under the sea-level quantile become thin oceanic crust,
// the rest continental crust growing with the noise value.
func generateHeightmap(rng *core.RNG, w, h int, p Params) []float32 {
	noise := perlin.NewPerlin(2, 2, 3, rng.Source().Int64())

	total := w * h
	raw := make([]float64, total)
	scale := float64(w) / 4
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			v := 0.0
			amp := 1.0
			freq := 1.0
			for o := 0; o < p.NoiseOctaves; o++ {
				v += amp * noise.Noise2D(float64(x)*freq/scale, float64(y)*freq/scale)
				amp *= p.NoisePersistence
				freq *= 2
			}
			raw[y*w+x] = v
		}
	}

	// The sea level is a quantile of the noise distribution, so the
	// requested land fraction holds regardless of the noise range.
	sorted := append([]float64(nil), raw...)
	sort.Float64s(sorted)
	idx := int(p.SeaLevel * float64(total))
	if idx >= total {
		idx = total - 1
	}
	sea := sorted[idx]
	max := sorted[total-1]
	span := max - sea
	if span <= 0 {
		span = 1
	}

	hm := make([]float32, total)
	for i, v := range raw {
		if v < sea {
			hm[i] = oceanicBase
		} else {
			hm[i] = continentalBase + float32((v-sea)/span)
		}
	}
	return hm
}

// partitionPlates assigns every world cell to one of n plates by toroidal
// Voronoi distance to random seed points.
func partitionPlates(rng *core.RNG, w, h, n int) []uint8 {
	type seed struct{ x, y int }
	seeds := make([]seed, n)
	for i := range seeds {
		seeds[i] = seed{x: rng.IntN(w), y: rng.IntN(h)}
	}

	owner := make([]uint8, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			best := 0
			bestDist := -1
			for i, s := range seeds {
				dx := x - s.x
				if dx < 0 {
					dx = -dx
				}
				if w-dx < dx {
					dx = w - dx
				}
				dy := y - s.y
				if dy < 0 {
					dy = -dy
				}
				if h-dy < dy {
					dy = h - dy
				}
				d := dx*dx + dy*dy
				if bestDist < 0 || d < bestDist {
					bestDist = d
					best = i
				}
			}
			owner[y*w+x] = uint8(best)
		}
	}
	return owner
}

// plateRect is one plate's minimal covering rectangle on the torus.
type plateRect struct {
	x0, y0 int
	w, h   int
}

// wrappedExtent finds the smallest circular interval covering the used
// positions on an axis of length n: the complement of the longest run of
// unused positions.
func wrappedExtent(used []bool, n int) (start, length int) {
	gapStart, gapLen := -1, 0
	bestStart, bestLen := -1, 0
	// Scan twice around so a gap crossing the seam is seen whole.
	for i := 0; i < 2*n; i++ {
		if !used[i%n] {
			if gapStart < 0 {
				gapStart = i
			}
			gapLen = i - gapStart + 1
			if gapLen > bestLen {
				bestStart, bestLen = gapStart, gapLen
			}
		} else {
			gapStart, gapLen = -1, 0
		}
	}
	if bestLen >= n {
		// Axis unused at all (empty plate) or fully free.
		return 0, n
	}
	if bestLen == 0 {
		return 0, n
	}
	return (bestStart + bestLen) % n, n - bestLen
}

// extractRect computes the covering rectangle of plate pi in the
// ownership map, allowing the rectangle to cross the world seam.
func extractRect(owner []uint8, w, h, pi int) plateRect {
	usedX := make([]bool, w)
	usedY := make([]bool, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if owner[y*w+x] == uint8(pi) {
				usedX[x] = true
				usedY[y] = true
			}
		}
	}
	x0, pw := wrappedExtent(usedX, w)
	y0, ph := wrappedExtent(usedY, h)
	return plateRect{x0: x0, y0: y0, w: pw, h: ph}
}

// buildPlates cuts the world heightmap into per-plate patches and
// constructs the plates.
func buildPlates(rng *core.RNG, hm []float32, owner []uint8, w, h int, age uint32, world plate.WorldDim) ([]*plate.Plate, error) {
	n := 0
	for _, o := range owner {
		if int(o) >= n {
			n = int(o) + 1
		}
	}

	plates := make([]*plate.Plate, 0, n)
	for pi := 0; pi < n; pi++ {
		r := extractRect(owner, w, h, pi)
		src := make([]float32, r.w*r.h)
		for y := 0; y < r.h; y++ {
			wy := (r.y0 + y) % h
			for x := 0; x < r.w; x++ {
				wx := (r.x0 + x) % w
				if owner[wy*w+wx] == uint8(pi) {
					src[y*r.w+x] = hm[wy*w+wx]
				}
			}
		}
		p, err := plate.NewPlate(rng.Source().Int64(), src,
			uint32(r.w), uint32(r.h), uint32(r.x0), uint32(r.y0), age, world)
		if err != nil {
			return nil, err
		}
		plates = append(plates, p)
	}
	return plates, nil
}
