package tectonics

import (
	"lithos/internal/core"
	"lithos/internal/plate"

	pcore "lithos/pkg/core"
)

const noOwner = 0xff

// World steps a set of crust plates drifting over a shared toroidal
// surface: the world-level driver around the per-plate engine.
type World struct {
	cfg Config

	w, h  int
	dim   plate.WorldDim
	rng   *pcore.RNG
	seed  int64
	tick  int
	cycle int

	plates []*plate.Plate

	hmap    []float32
	amap    []uint32
	imap    []uint8
	display []uint8
}

// conflict is one world cell claimed by two plates this tick.
type conflict struct {
	wx, wy uint32
	a, b   int
}

// New returns a tectonics simulation with the provided dimensions using
// defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a tectonics world configured from the provided
// options.
func NewWithConfig(cfg Config) *World {
	total := cfg.Width * cfg.Height
	if total < 0 {
		total = 0
	}
	return &World{
		cfg:     cfg,
		w:       cfg.Width,
		h:       cfg.Height,
		dim:     plate.WorldDim{W: uint32(cfg.Width), H: uint32(cfg.Height)},
		rng:     pcore.NewRNG(cfg.Seed),
		seed:    cfg.Seed,
		hmap:    make([]float32, total),
		amap:    make([]uint32, total),
		imap:    make([]uint8, total),
		display: make([]uint8, total),
	}
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "tectonics" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.w, H: w.h} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display }

// HeightField exposes the composited world heightmap.
func (w *World) HeightField() []float32 { return w.hmap }

// AgeField exposes the composited crust timestamps.
func (w *World) AgeField() []uint32 { return w.amap }

// PlateField exposes the per-cell owning plate index (0xff for none).
func (w *World) PlateField() []uint8 { return w.imap }

// PlateCount returns the number of live plates.
func (w *World) PlateCount() int { return len(w.plates) }

// TotalMass sums the tracked mass of every plate.
func (w *World) TotalMass() float64 {
	total := 0.0
	for _, p := range w.plates {
		total += p.Mass()
	}
	return total
}

// MeanSpeed averages the plate velocity magnitudes.
func (w *World) MeanSpeed() float64 {
	if len(w.plates) == 0 {
		return 0
	}
	total := 0.0
	for _, p := range w.plates {
		total += float64(p.Speed())
	}
	return total / float64(len(w.plates))
}

// Reset rebuilds the world from the seed: fresh noise surface, fresh
// plates, cycle and tick counters cleared.
func (w *World) Reset(seed int64) {
	if w.w == 0 || w.h == 0 {
		return
	}
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.seed = effective
	w.rng = pcore.NewRNG(effective)
	w.tick = 0
	w.cycle = 0

	hm := generateHeightmap(w.rng, w.w, w.h, w.cfg.Params)
	w.spawnPlates(hm, 0)
	w.composite()
	w.rebuildDisplay()
}

// spawnPlates partitions the given surface into fresh plates.
func (w *World) spawnPlates(hm []float32, age uint32) {
	owner := partitionPlates(w.rng, w.w, w.h, w.cfg.Params.PlateCount)
	plates, err := buildPlates(w.rng, hm, owner, w.w, w.h, age, w.dim)
	if err != nil {
		// Worldgen always hands plates valid patches; a failure here is
		// a bug, not bad input.
		panic(err)
	}
	w.plates = plates[:0]
	for _, p := range plates {
		if !p.IsEmpty() {
			w.plates = append(w.plates, p)
		}
	}
}

// Step advances the simulation by one tectonic tick.
func (w *World) Step() {
	if w.w == 0 || w.h == 0 || len(w.plates) == 0 {
		return
	}
	w.tick++

	// A spent cycle: gather the crust into a new generation of plates.
	if len(w.plates) < 2 ||
		(w.MeanSpeed() < w.cfg.Params.RestartSpeed && w.cycle < w.cfg.Params.MaxCycles) {
		w.restart()
	}

	if w.cfg.Params.ErosionPeriod > 0 && w.tick%w.cfg.Params.ErosionPeriod == 0 {
		for _, p := range w.plates {
			p.Erode(continentalBase)
		}
	}

	// Continent ids are re-derived lazily from the post-move heightmaps,
	// so the bookkeeping resets before anything moves.
	for _, p := range w.plates {
		p.ResetSegments()
	}
	for _, p := range w.plates {
		p.Move()
	}

	conflicts := w.composite()
	w.resolve(conflicts)
	w.dropEmptyPlates()
	w.rebuildDisplay()
}

// composite folds every plate's crust into the world maps, recording the
// cells where two plates overlap.
func (w *World) composite() []conflict {
	for i := range w.hmap {
		w.hmap[i] = 0
		w.amap[i] = 0
		w.imap[i] = noOwner
	}

	var conflicts []conflict
	for pi, p := range w.plates {
		heights, ages := p.Map()
		pw, ph := p.Width(), p.Height()
		left, top := uint32(p.Left()), uint32(p.Top())

		for y := uint32(0); y < ph; y++ {
			wy := (top + y) % w.dim.H
			for x := uint32(0); x < pw; x++ {
				i := y*pw + x
				if heights[i] <= 0 {
					continue
				}
				wx := (left + x) % w.dim.W
				wi := wy*w.dim.W + wx

				prev := w.imap[wi]
				if prev == noOwner {
					w.hmap[wi] = heights[i]
					w.amap[wi] = ages[i]
					w.imap[wi] = uint8(pi)
					continue
				}

				conflicts = append(conflicts, conflict{wx: wx, wy: wy, a: int(prev), b: pi})
				if heights[i] > w.hmap[wi] {
					w.hmap[wi] = heights[i]
					w.amap[wi] = ages[i]
					w.imap[wi] = uint8(pi)
				}
			}
		}
	}
	return conflicts
}

// resolve applies the collision protocol to every overlap: thin oceanic
// crust subducts under the thicker plate, continental crust collides and
// the plate whose colliding continent is smaller may aggregate that
// continent onto the other plate.
func (w *World) resolve(conflicts []conflict) {
	for _, c := range conflicts {
		pa, pb := w.plates[c.a], w.plates[c.b]
		ha := pa.Crust(c.wx, c.wy)
		hb := pb.Crust(c.wx, c.wy)
		if ha <= 0 || hb <= 0 {
			// An earlier conflict already moved this crust away.
			continue
		}

		if ha < continentalBase || hb < continentalBase {
			w.subduct(pa, pb, ha, hb, c.wx, c.wy)
			continue
		}

		areaA := pa.AddCollision(c.wx, c.wy)
		areaB := pb.AddCollision(c.wx, c.wy)

		small, big := pa, pb
		if areaB < areaA {
			small, big = pb, pa
		}

		count, ratio := small.CollisionInfo(c.wx, c.wy)
		if int(count) > w.cfg.Params.AggregationCount ||
			float64(ratio) > w.cfg.Params.AggregationRatio {
			small.AggregateCrust(big, c.wx, c.wy)
			continue
		}

		collMass := ha
		if hb < collMass {
			collMass = hb
		}
		pa.Collide(pb, c.wx, c.wy, collMass)
		pa.ApplyFriction(collMass)
		pb.ApplyFriction(collMass)
	}
}

// subduct sinks the thinner crust under the thicker plate, depositing a
// fraction of it inland on the overriding side.
func (w *World) subduct(pa, pb *plate.Plate, ha, hb float32, wx, wy uint32) {
	sink, ride := pa, pb
	sinkH := ha
	if hb < ha {
		sink, ride = pb, pa
		sinkH = hb
	}

	transfer := sinkH * float32(w.cfg.Params.SubductionTransfer)
	if transfer > 0 {
		ride.AddCrustBySubduction(wx, wy, transfer,
			sink.CrustTimestamp(wx, wy), sink.VelX(), sink.VelY())
	}
	sink.SetCrust(wx, wy, sinkH-transfer, uint32(w.tick))
}

// dropEmptyPlates removes plates whose crust is gone.
func (w *World) dropEmptyPlates() {
	live := w.plates[:0]
	for _, p := range w.plates {
		if !p.IsEmpty() {
			live = append(live, p)
		}
	}
	w.plates = live
}

// restart folds the composited surface into a fresh generation of plates.
func (w *World) restart() {
	w.cycle++
	surface := append([]float32(nil), w.hmap...)
	w.spawnPlates(surface, uint32(w.tick))
}

func init() {
	core.Register("tectonics", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return NewWithConfig(c)
	})
}
