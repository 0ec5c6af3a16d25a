//go:build ebiten

package ui

import (
	"image/color"
	"math"

	"lithos/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	hsluv "github.com/hsluv/hsluv-go"
)

type heightFieldProvider interface {
	HeightField() []float32
}

type ageFieldProvider interface {
	AgeField() []uint32
}

type plateFieldProvider interface {
	PlateField() []uint8
	PlateCount() int
}

// Overlay draws optional debugging visuals on top of the base simulation:
// an elevation shading, a crust-age shading and a plate-ownership view.
type Overlay struct {
	sim   core.Sim
	scale int

	showElevation bool
	showAge       bool
	showPlates    bool

	img *ebiten.Image
	buf []byte

	plateColors []color.RGBA
}

// NewOverlay constructs a new overlay instance.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale}
}

// Update toggles the overlay views from the number keys.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit1) {
		o.showElevation = !o.showElevation
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit2) {
		o.showAge = !o.showAge
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDigit3) {
		o.showPlates = !o.showPlates
	}
}

// Draw renders the enabled overlay views onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	size := o.sim.Size()
	total := size.W * size.H
	if total <= 0 {
		return
	}
	if o.img == nil || o.img.Bounds().Dx() != size.W || o.img.Bounds().Dy() != size.H {
		o.img = ebiten.NewImage(size.W, size.H)
		o.buf = make([]byte, 4*total)
	}

	if o.showElevation {
		if provider, ok := o.sim.(heightFieldProvider); ok {
			o.drawElevation(screen, provider.HeightField(), total)
		}
	}
	if o.showAge {
		if provider, ok := o.sim.(ageFieldProvider); ok {
			o.drawAge(screen, provider.AgeField(), total)
		}
	}
	if o.showPlates {
		if provider, ok := o.sim.(plateFieldProvider); ok {
			o.drawPlates(screen, provider, total)
		}
	}
}

func (o *Overlay) drawElevation(screen *ebiten.Image, field []float32, total int) {
	if len(field) != total {
		return
	}
	minVal, maxVal := field[0], field[0]
	for _, v := range field {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	span := float64(maxVal - minVal)
	if span == 0 {
		span = 1
	}
	for i, v := range field {
		col := elevationColor(float64(v-minVal) / span)
		base := i * 4
		o.buf[base+0] = col.R
		o.buf[base+1] = col.G
		o.buf[base+2] = col.B
		o.buf[base+3] = col.A
	}
	o.flush(screen)
}

func (o *Overlay) drawAge(screen *ebiten.Image, field []uint32, total int) {
	if len(field) != total {
		return
	}
	var maxAge uint32
	for _, v := range field {
		if v > maxAge {
			maxAge = v
		}
	}
	if maxAge == 0 {
		maxAge = 1
	}
	for i, v := range field {
		// Young crust glows hot, old crust fades to dark blue.
		t := float64(v) / float64(maxAge)
		base := i * 4
		o.buf[base+0] = uint8(math.Round(40 + 200*t))
		o.buf[base+1] = uint8(math.Round(40 + 60*t))
		o.buf[base+2] = uint8(math.Round(120 - 80*t))
		o.buf[base+3] = 160
	}
	o.flush(screen)
}

func (o *Overlay) drawPlates(screen *ebiten.Image, provider plateFieldProvider, total int) {
	field := provider.PlateField()
	if len(field) != total {
		return
	}
	count := provider.PlateCount()
	if count <= 0 {
		return
	}
	if len(o.plateColors) != count {
		o.plateColors = writePlateColors(count)
	}
	for i, p := range field {
		base := i * 4
		if int(p) >= count {
			o.buf[base+0] = 0
			o.buf[base+1] = 0
			o.buf[base+2] = 0
			o.buf[base+3] = 0
			continue
		}
		col := o.plateColors[p]
		o.buf[base+0] = col.R
		o.buf[base+1] = col.G
		o.buf[base+2] = col.B
		o.buf[base+3] = 170
	}
	o.flush(screen)
}

func (o *Overlay) flush(screen *ebiten.Image) {
	o.img.WritePixels(o.buf)
	op := &ebiten.DrawImageOptions{}
	scale := o.scale
	if scale <= 0 {
		scale = 1
	}
	op.GeoM.Scale(float64(scale), float64(scale))
	screen.DrawImage(o.img, op)
}

// writePlateColors spreads plate hues evenly around the HSLuv wheel so
// neighbouring ids stay distinguishable.
func writePlateColors(count int) []color.RGBA {
	colors := make([]color.RGBA, count)
	for i := range colors {
		r, g, b := hsluv.HsluvToRGB(360*float64(i)/float64(count), 100, 55)
		colors[i] = color.RGBA{
			R: uint8(r * 0xff),
			G: uint8(g * 0xff),
			B: uint8(b * 0xff),
			A: 0xff,
		}
	}
	return colors
}

func elevationColor(t float64) color.RGBA {
	t = clamp01(t)
	stops := []struct {
		t   float64
		col color.RGBA
	}{
		{0.0, color.RGBA{R: 40, G: 60, B: 120, A: 150}},
		{0.25, color.RGBA{R: 70, G: 105, B: 160, A: 165}},
		{0.5, color.RGBA{R: 90, G: 150, B: 100, A: 185}},
		{0.75, color.RGBA{R: 190, G: 160, B: 80, A: 205}},
		{1.0, color.RGBA{R: 240, G: 235, B: 215, A: 215}},
	}
	for i := 1; i < len(stops); i++ {
		curr := stops[i]
		if t <= curr.t {
			prev := stops[i-1]
			span := curr.t - prev.t
			var local float64
			if span > 0 {
				local = (t - prev.t) / span
			}
			return lerpRGBA(prev.col, curr.col, clamp01(local))
		}
	}
	return stops[len(stops)-1].col
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	t = clamp01(t)
	lerp := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*t))
	}
	return color.RGBA{R: lerp(a.R, b.R), G: lerp(a.G, b.G), B: lerp(a.B, b.B), A: lerp(a.A, b.A)}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
