// Package geogrid holds the grid primitives shared by the synthesizers and
// the zonal statistics engine: a geographic bounding box, the affine
// transform between pixel indices and world coordinates, and a row-major
// raster of float64 samples.
package geogrid

import (
	"fmt"
	"math"

	"github.com/golang/geo/r2"
)

// BoundingBox is a flat rectangular extent in world coordinates.
type BoundingBox struct {
	MinX float64 `json:"minx" mapstructure:"minx"`
	MinY float64 `json:"miny" mapstructure:"miny"`
	MaxX float64 `json:"maxx" mapstructure:"maxx"`
	MaxY float64 `json:"maxy" mapstructure:"maxy"`
}

func NewBoundingBox(minX, minY, maxX, maxY float64) (BoundingBox, error) {
	b := BoundingBox{MinX: minX, MinY: minY, MaxX: maxX, MaxY: maxY}
	return b, b.Validate()
}

func (b BoundingBox) Validate() error {
	if !(b.MinX < b.MaxX) || !(b.MinY < b.MaxY) {
		return fmt.Errorf("degenerate bounding box (%v, %v, %v, %v)", b.MinX, b.MinY, b.MaxX, b.MaxY)
	}
	return nil
}

func (b BoundingBox) Width() float64  { return b.MaxX - b.MinX }
func (b BoundingBox) Height() float64 { return b.MaxY - b.MinY }

// Rect returns the box as a planar r2 rectangle.
func (b BoundingBox) Rect() r2.Rect {
	return r2.RectFromPoints(r2.Point{X: b.MinX, Y: b.MinY}, r2.Point{X: b.MaxX, Y: b.MaxY})
}

// GridSize returns the raster dimensions for a box at the given resolution,
// rounding the extent/resolution ratio to the nearest integer.
func GridSize(b BoundingBox, resolution float64) (width, height int, err error) {
	if err := b.Validate(); err != nil {
		return 0, 0, err
	}
	if resolution <= 0 {
		return 0, 0, fmt.Errorf("resolution must be positive, got %v", resolution)
	}
	width = int(math.Round(b.Width() / resolution))
	height = int(math.Round(b.Height() / resolution))
	if width < 1 || height < 1 {
		return 0, 0, fmt.Errorf("resolution %v larger than extent (%vx%v)", resolution, b.Width(), b.Height())
	}
	return width, height, nil
}

// GeoTransform maps pixel indices to world coordinates. Row 0 is the top
// (maximum Y) edge, so PixelHeight is stored negative, matching the GDAL
// six-element geotransform convention.
type GeoTransform struct {
	OriginX     float64
	OriginY     float64
	PixelWidth  float64
	PixelHeight float64
}

// NewGeoTransform anchors a transform at the box's top-left corner with
// square pixels of the given resolution.
func NewGeoTransform(b BoundingBox, resolution float64) GeoTransform {
	return GeoTransform{
		OriginX:     b.MinX,
		OriginY:     b.MaxY,
		PixelWidth:  resolution,
		PixelHeight: -resolution,
	}
}

// PixelCenter returns the world coordinate of the center of pixel (row, col).
func (gt GeoTransform) PixelCenter(row, col int) r2.Point {
	return r2.Point{
		X: gt.OriginX + (float64(col)+0.5)*gt.PixelWidth,
		Y: gt.OriginY - (float64(row)+0.5)*math.Abs(gt.PixelHeight),
	}
}

// PixelAt returns the (row, col) indices of the pixel containing the world
// coordinate. Indices are unclamped and may fall outside the raster.
func (gt GeoTransform) PixelAt(p r2.Point) (row, col int) {
	col = int((p.X - gt.OriginX) / gt.PixelWidth)
	row = int((gt.OriginY - p.Y) / math.Abs(gt.PixelHeight))
	return row, col
}

// GDAL returns the transform in the six-element layout used by godal.
func (gt GeoTransform) GDAL() [6]float64 {
	return [6]float64{gt.OriginX, gt.PixelWidth, 0, gt.OriginY, 0, gt.PixelHeight}
}

// Raster is a dense row-major grid of float64 samples. It is created once
// and treated as read-only after being filled.
type Raster struct {
	width  int
	height int
	values []float64
}

func NewRaster(width, height int) (*Raster, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("raster dimensions must be positive, got %dx%d", width, height)
	}
	return &Raster{width: width, height: height, values: make([]float64, width*height)}, nil
}

func (r *Raster) Width() int  { return r.width }
func (r *Raster) Height() int { return r.height }

func (r *Raster) At(row, col int) float64 {
	return r.values[row*r.width+col]
}

func (r *Raster) Set(row, col int, v float64) {
	r.values[row*r.width+col] = v
}

// Values exposes the backing row-major slice for bulk writes (GeoTIFF and
// plot rendering). Callers must not resize it.
func (r *Raster) Values() []float64 { return r.values }

// SameShape reports whether two rasters have identical dimensions.
func (r *Raster) SameShape(other *Raster) bool {
	return other != nil && r.width == other.width && r.height == other.height
}
