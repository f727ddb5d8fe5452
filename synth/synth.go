// Package synth produces synthetic daily rasters over a bounding box. Each
// signal is a seasonal sinusoid of day-of-year modulated by a spatial
// pattern plus Gaussian noise, reproducing the statistical texture of a
// vegetation index, soil moisture and surface temperature.
package synth

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"fieldstats/geogrid"
)

// Kind identifies a synthesized signal.
type Kind string

const (
	Vegetation   Kind = "vegetation"
	SoilMoisture Kind = "soil_moisture"
	Temperature  Kind = "temperature"
)

// ErrDimensionMismatch is returned when the soil moisture synthesizer is
// given a vegetation raster whose shape does not match the requested grid.
var ErrDimensionMismatch = errors.New("dependency raster dimensions do not match")

// Synthesizer generates rasters using a private random source so runs can
// be reproduced from a seed.
type Synthesizer struct {
	rng *rand.Rand
}

func New(seed int64) *Synthesizer {
	return &Synthesizer{rng: rand.New(rand.NewSource(seed))}
}

// Synthesize dispatches on kind. dep is only consulted for SoilMoisture,
// where it must be the vegetation raster of the same grid.
func (s *Synthesizer) Synthesize(kind Kind, bbox geogrid.BoundingBox, date time.Time, resolution float64, dep *geogrid.Raster) (*geogrid.Raster, geogrid.GeoTransform, error) {
	switch kind {
	case Vegetation:
		return s.Vegetation(bbox, date, resolution)
	case SoilMoisture:
		return s.SoilMoisture(bbox, date, dep, resolution)
	case Temperature:
		return s.Temperature(bbox, date, resolution)
	default:
		return nil, geogrid.GeoTransform{}, fmt.Errorf("unknown signal kind %q", kind)
	}
}

// Vegetation synthesizes a vegetation index raster with values in [0,1].
// The scene has a circular high-vigour region in the center, a low-vigour
// block in the top-left quadrant and a smoothly varying background.
func (s *Synthesizer) Vegetation(bbox geogrid.BoundingBox, date time.Time, resolution float64) (*geogrid.Raster, geogrid.GeoTransform, error) {
	width, height, err := geogrid.GridSize(bbox, resolution)
	if err != nil {
		return nil, geogrid.GeoTransform{}, err
	}
	raster, err := geogrid.NewRaster(width, height)
	if err != nil {
		return nil, geogrid.GeoTransform{}, err
	}

	doy := date.YearDay()
	base := 0.2 + 0.3*math.Max(0, math.Sin(float64(doy-80)*2*math.Pi/365))

	for row := 0; row < height; row++ {
		yRel := float64(row) / float64(height)
		for col := 0; col < width; col++ {
			xRel := float64(col) / float64(width)

			var landFactor, noiseLevel float64
			switch {
			case (xRel-0.5)*(xRel-0.5)+(yRel-0.5)*(yRel-0.5) < 0.1:
				landFactor, noiseLevel = 0.8, 0.05 // forested center
			case xRel < 0.3 && yRel < 0.3:
				landFactor, noiseLevel = 0.2, 0.05 // urban corner
			default:
				landFactor = 0.5 + 0.2*math.Sin(xRel*10)*math.Cos(yRel*8)
				noiseLevel = 0.1
			}
			v := base*landFactor + s.rng.NormFloat64()*noiseLevel
			raster.Set(row, col, clamp01(v))
		}
	}
	return raster, geogrid.NewGeoTransform(bbox, resolution), nil
}

// SoilMoisture synthesizes a soil moisture raster in [0,1]. Moisture tracks
// the vegetation raster cell by cell, so the two must share a grid.
func (s *Synthesizer) SoilMoisture(bbox geogrid.BoundingBox, date time.Time, vegetation *geogrid.Raster, resolution float64) (*geogrid.Raster, geogrid.GeoTransform, error) {
	width, height, err := geogrid.GridSize(bbox, resolution)
	if err != nil {
		return nil, geogrid.GeoTransform{}, err
	}
	if vegetation == nil || vegetation.Width() != width || vegetation.Height() != height {
		return nil, geogrid.GeoTransform{}, fmt.Errorf("%w: want %dx%d", ErrDimensionMismatch, width, height)
	}
	raster, err := geogrid.NewRaster(width, height)
	if err != nil {
		return nil, geogrid.GeoTransform{}, err
	}

	doy := date.YearDay()
	base := 0.3 + 0.2*math.Cos(float64(doy-30)*2*math.Pi/365)

	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			ndviFactor := 0.5 + 0.5*vegetation.At(row, col)
			v := base*ndviFactor + s.rng.NormFloat64()*0.08
			raster.Set(row, col, clamp01(v))
		}
	}
	return raster, geogrid.NewGeoTransform(bbox, resolution), nil
}

// Temperature synthesizes a surface temperature raster in degrees. Values
// are unbounded; a quadratic bowl centered at the relative position
// (0.7, 0.3) stands in for elevation-driven cooling.
func (s *Synthesizer) Temperature(bbox geogrid.BoundingBox, date time.Time, resolution float64) (*geogrid.Raster, geogrid.GeoTransform, error) {
	width, height, err := geogrid.GridSize(bbox, resolution)
	if err != nil {
		return nil, geogrid.GeoTransform{}, err
	}
	raster, err := geogrid.NewRaster(width, height)
	if err != nil {
		return nil, geogrid.GeoTransform{}, err
	}

	doy := date.YearDay()
	base := 15 + 10*math.Sin(float64(doy-80)*2*math.Pi/365)

	for row := 0; row < height; row++ {
		yRel := float64(row) / float64(height)
		for col := 0; col < width; col++ {
			xRel := float64(col) / float64(width)
			elevation := -5 * ((xRel-0.7)*(xRel-0.7) + (yRel-0.3)*(yRel-0.3))
			raster.Set(row, col, base+elevation+s.rng.NormFloat64())
		}
	}
	return raster, geogrid.NewGeoTransform(bbox, resolution), nil
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
