package main

import (
	"flag"
	"fmt"
	"runtime"
	"sort"
	"sync"
	"time"

	"lithos/internal/sims/tectonics"
)

type paramSet struct {
	plateCount         int
	seaLevel           float64
	erosionPeriod      int
	aggregationRatio   float64
	subductionTransfer float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("plates=%d sea=%.2f erode=%d aggr=%.2f subd=%.2f",
		p.plateCount, p.seaLevel, p.erosionPeriod, p.aggregationRatio, p.subductionTransfer)
}

type scenarioResult struct {
	params paramSet

	landFraction float64
	massDrift    float64
	finalSpeed   float64
	plateCount   int
}

func main() {
	steps := flag.Int("steps", 200, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	size := flag.Int("size", 128, "world side length")
	flag.Parse()

	baseCfg := tectonics.DefaultConfig()
	baseCfg.Width = *size
	baseCfg.Height = *size

	plateOptions := []int{6, 10, 14}
	seaOptions := []float64{0.55, 0.65, 0.75}
	erosionOptions := []int{10, 20, 40}
	aggrOptions := []float64{0.3, 0.5}
	subdOptions := []float64{0.15, 0.25, 0.4}

	var sets []paramSet
	for _, plates := range plateOptions {
		for _, sea := range seaOptions {
			for _, erode := range erosionOptions {
				for _, aggr := range aggrOptions {
					for _, subd := range subdOptions {
						sets = append(sets, paramSet{
							plateCount:         plates,
							seaLevel:           sea,
							erosionPeriod:      erode,
							aggregationRatio:   aggr,
							subductionTransfer: subd,
						})
					}
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(baseCfg, params, *steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	start := time.Now()
	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}

	// The most earth-like outcomes sit near 30% land coverage.
	const targetLand = 0.3
	sort.Slice(all, func(i, j int) bool {
		di := all[i].landFraction - targetLand
		if di < 0 {
			di = -di
		}
		dj := all[j].landFraction - targetLand
		if dj < 0 {
			dj = -dj
		}
		return di < dj
	})
	elapsed := time.Since(start)

	fmt.Printf("\nTop 5 results (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i := 0; i < len(all) && i < 5; i++ {
		res := all[i]
		fmt.Printf("%2d) land=%.3f drift=%.4f speed=%.3f plates=%d params=%s\n",
			i+1, res.landFraction, res.massDrift, res.finalSpeed, res.plateCount, res.params)
	}
}

func runScenario(base tectonics.Config, params paramSet, steps int) scenarioResult {
	cfg := base
	cfg.Params.PlateCount = params.plateCount
	cfg.Params.SeaLevel = params.seaLevel
	cfg.Params.ErosionPeriod = params.erosionPeriod
	cfg.Params.AggregationRatio = params.aggregationRatio
	cfg.Params.SubductionTransfer = params.subductionTransfer

	world := tectonics.NewWithConfig(cfg)
	world.Reset(1337)

	startMass := world.TotalMass()
	for step := 0; step < steps; step++ {
		world.Step()
	}

	land := 0
	heights := world.HeightField()
	for _, h := range heights {
		if h >= 1 {
			land++
		}
	}

	drift := 0.0
	if startMass > 0 {
		drift = (world.TotalMass() - startMass) / startMass
	}

	return scenarioResult{
		params:       params,
		landFraction: float64(land) / float64(len(heights)),
		massDrift:    drift,
		finalSpeed:   world.MeanSpeed(),
		plateCount:   world.PlateCount(),
	}
}
