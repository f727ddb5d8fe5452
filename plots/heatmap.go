// Package plots renders the pipeline's PNG artifacts: per-signal raster
// heat maps and per-field day-over-day summary panels.
package plots

import (
	"bytes"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"fieldstats/geogrid"
	"fieldstats/synth"
)

// rasterGrid adapts a raster to plotter.GridXYZ. gonum expects Y to grow
// with the row index while raster row 0 is the top edge, so rows are
// flipped here.
type rasterGrid struct {
	raster *geogrid.Raster
	gt     geogrid.GeoTransform
}

func (g rasterGrid) Dims() (c, r int) { return g.raster.Width(), g.raster.Height() }

func (g rasterGrid) X(c int) float64 {
	return g.gt.OriginX + (float64(c)+0.5)*g.gt.PixelWidth
}

func (g rasterGrid) Y(r int) float64 {
	return g.gt.OriginY - (float64(g.raster.Height()-r)-0.5)*math.Abs(g.gt.PixelHeight)
}

func (g rasterGrid) Z(c, r int) float64 {
	return g.raster.At(g.raster.Height()-1-r, c)
}

// valueRange returns the fixed display range for a signal: index signals
// render on [0,1], temperature on [0,30] degrees.
func valueRange(kind synth.Kind) (min, max float64) {
	if kind == synth.Temperature {
		return 0, 30
	}
	return 0, 1
}

func rampFor(kind synth.Kind) ramp {
	switch kind {
	case synth.SoilMoisture:
		return soilMoistureRamp
	case synth.Temperature:
		return temperatureRamp
	default:
		return vegetationRamp
	}
}

// Heatmap renders a raster as a PNG heat map with the signal's colour
// ramp and fixed value range.
func Heatmap(raster *geogrid.Raster, gt geogrid.GeoTransform, kind synth.Kind, title string) ([]byte, error) {
	hm := plotter.NewHeatMap(rasterGrid{raster: raster, gt: gt}, rampFor(kind))
	hm.Min, hm.Max = valueRange(kind)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Add(hm)

	wt, err := p.WriterTo(8*vg.Inch, 6*vg.Inch, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
