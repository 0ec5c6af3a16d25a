package tectonics

import "image/color"

// Display values are height bands: the first displayOceanBands entries of
// the palette are ocean depth, the remaining displayLandBands land
// elevation.
const (
	displayOceanBands = 8
	displayLandBands  = 24
	displayBands      = displayOceanBands + displayLandBands
)

var tectonicsPalette = buildTectonicsPalette()

// Palette exposes the color palette used for rendering the world surface.
func (w *World) Palette() []color.RGBA {
	return tectonicsPalette
}

func buildTectonicsPalette() []color.RGBA {
	palette := make([]color.RGBA, displayBands)
	deep := color.RGBA{R: 12, G: 28, B: 74, A: 255}
	shelf := color.RGBA{R: 38, G: 84, B: 148, A: 255}
	shore := color.RGBA{R: 96, G: 130, B: 74, A: 255}
	highland := color.RGBA{R: 152, G: 126, B: 86, A: 255}
	peak := color.RGBA{R: 240, G: 240, B: 244, A: 255}

	for i := 0; i < displayOceanBands; i++ {
		t := float64(i) / float64(displayOceanBands-1)
		palette[i] = lerpRGBA(deep, shelf, t)
	}
	for i := 0; i < displayLandBands; i++ {
		t := float64(i) / float64(displayLandBands-1)
		if t < 0.5 {
			palette[displayOceanBands+i] = lerpRGBA(shore, highland, t*2)
		} else {
			palette[displayOceanBands+i] = lerpRGBA(highland, peak, (t-0.5)*2)
		}
	}
	return palette
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	if t < 0 {
		t = 0
	}
	if t > 1 {
		t = 1
	}
	lerp := func(x, y uint8) uint8 {
		return uint8(float64(x) + (float64(y)-float64(x))*t + 0.5)
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: 255}
}

// rebuildDisplay maps the composited heightmap into palette bands. Land
// banding tracks the current maximum so mountains stay visible as crust
// piles up.
func (w *World) rebuildDisplay() {
	var maxLand float32
	for _, h := range w.hmap {
		if h > maxLand {
			maxLand = h
		}
	}
	landSpan := maxLand - continentalBase
	if landSpan <= 0 {
		landSpan = 1
	}

	for i, h := range w.hmap {
		if h < continentalBase {
			t := h / continentalBase
			band := int(t * float32(displayOceanBands))
			if band >= displayOceanBands {
				band = displayOceanBands - 1
			}
			w.display[i] = uint8(band)
			continue
		}
		t := (h - continentalBase) / landSpan
		band := int(t * float32(displayLandBands))
		if band >= displayLandBands {
			band = displayLandBands - 1
		}
		w.display[i] = uint8(displayOceanBands + band)
	}
}
