// Package zonal aggregates raster values over polygon boundaries: the
// descriptive statistics of every pixel whose center falls inside the
// polygon.
package zonal

import (
	"math"

	"github.com/sirupsen/logrus"

	"fieldstats/fields"
	"fieldstats/geogrid"
)

// Stats describes the raster values sampled inside one polygon. Min, Max,
// Mean and Std are only meaningful when Count > 0; serialization layers
// emit null sentinels for empty stats.
type Stats struct {
	Min   float64
	Max   float64
	Mean  float64
	Std   float64
	Count int
}

// Empty reports whether no pixel center fell inside the polygon.
func (s Stats) Empty() bool { return s.Count == 0 }

// Compute runs zonal statistics for one raster/polygon pair. The candidate
// pixel window is the polygon's bounding rectangle mapped through the
// transform and clamped to the raster; a polygon entirely outside the
// raster yields empty stats, not an error. Containment follows
// fields.Polygon.ContainsPoint (even-odd, half-open edges).
func Compute(raster *geogrid.Raster, gt geogrid.GeoTransform, polygon fields.Polygon) (Stats, error) {
	if err := polygon.Validate(); err != nil {
		return Stats{}, err
	}

	bound := polygon.Bound()
	pixelH := math.Abs(gt.PixelHeight)

	colMin := maxInt(0, int((bound.X.Lo-gt.OriginX)/gt.PixelWidth))
	rowMin := maxInt(0, int((gt.OriginY-bound.Y.Hi)/pixelH))
	colMax := minInt(raster.Width()-1, int((bound.X.Hi-gt.OriginX)/gt.PixelWidth))
	rowMax := minInt(raster.Height()-1, int((gt.OriginY-bound.Y.Lo)/pixelH))

	var vals []float64
	for row := rowMin; row <= rowMax; row++ {
		for col := colMin; col <= colMax; col++ {
			if polygon.ContainsPoint(gt.PixelCenter(row, col)) {
				vals = append(vals, raster.At(row, col))
			}
		}
	}
	if len(vals) == 0 {
		logrus.Debugf("no pixel centers inside polygon (window rows %d..%d cols %d..%d)", rowMin, rowMax, colMin, colMax)
		return Stats{}, nil
	}
	return Stats{
		Min:   Min(vals...),
		Max:   Max(vals...),
		Mean:  Mean(vals...),
		Std:   Std(vals...),
		Count: len(vals),
	}, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
