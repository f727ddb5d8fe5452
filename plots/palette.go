package plots

import (
	"image/color"
	"sort"
)

// rampStop pins a colour at a relative position in [0,1].
type rampStop struct {
	pos float64
	col color.RGBA
}

// ramp interpolates a fixed set of stops into a discrete palette. It
// implements gonum/plot's palette.Palette.
type ramp struct {
	colors []color.Color
}

func (r ramp) Colors() []color.Color { return r.colors }

func newRamp(stops []rampStop, n int) ramp {
	sort.Slice(stops, func(i, j int) bool { return stops[i].pos < stops[j].pos })
	colors := make([]color.Color, n)
	for i := range colors {
		pos := float64(i) / float64(n-1)
		colors[i] = rampAt(stops, pos)
	}
	return ramp{colors: colors}
}

func rampAt(stops []rampStop, pos float64) color.Color {
	if pos <= stops[0].pos {
		return stops[0].col
	}
	for i := 1; i < len(stops); i++ {
		if pos <= stops[i].pos {
			lo, hi := stops[i-1], stops[i]
			t := (pos - lo.pos) / (hi.pos - lo.pos)
			return color.RGBA{
				R: lerp(lo.col.R, hi.col.R, t),
				G: lerp(lo.col.G, hi.col.G, t),
				B: lerp(lo.col.B, hi.col.B, t),
				A: 255,
			}
		}
	}
	return stops[len(stops)-1].col
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t)
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

// Colour ramps for the three signals: browns through greens for
// vegetation, dry sand through deep blue for soil moisture, blue through
// white to red for temperature.
var (
	vegetationRamp = newRamp([]rampStop{
		{0.0, rgb(0xA1, 0x61, 0x18)},
		{0.2, rgb(0xE6, 0xC7, 0x8A)},
		{0.4, rgb(0xCE, 0xDB, 0x9C)},
		{0.7, rgb(0x50, 0xA7, 0x47)},
		{1.0, rgb(0x1E, 0x56, 0x31)},
	}, 256)

	soilMoistureRamp = newRamp([]rampStop{
		{0.0, rgb(0xEB, 0xE3, 0xD0)},
		{0.3, rgb(0xC5, 0xB7, 0x83)},
		{0.6, rgb(0x89, 0xA1, 0xC8)},
		{1.0, rgb(0x2F, 0x4F, 0x73)},
	}, 256)

	temperatureRamp = newRamp([]rampStop{
		{0.0, rgb(0x00, 0x22, 0xFF)},
		{0.3, rgb(0x55, 0xAA, 0xFF)},
		{0.5, rgb(0xFF, 0xFF, 0xFF)},
		{0.7, rgb(0xFF, 0xAA, 0x55)},
		{1.0, rgb(0xFF, 0x00, 0x00)},
	}, 256)
)
