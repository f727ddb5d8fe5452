package geogrid

import (
	"math"
	"testing"

	"github.com/golang/geo/r2"
)

func TestGridSize(t *testing.T) {
	cases := []struct {
		bbox       BoundingBox
		resolution float64
		width      int
		height     int
	}{
		{BoundingBox{0, 0, 1, 1}, 0.5, 2, 2},
		{BoundingBox{0, 0, 1, 1}, 0.01, 100, 100},
		{BoundingBox{10, 45, 11, 46}, 0.01, 100, 100},
		{BoundingBox{0, 0, 2, 1}, 0.3, 7, 3},
	}
	for _, c := range cases {
		w, h, err := GridSize(c.bbox, c.resolution)
		if err != nil {
			t.Fatal(err)
		}
		if w != c.width || h != c.height {
			t.Errorf("GridSize(%v, %v) = %dx%d, want %dx%d", c.bbox, c.resolution, w, h, c.width, c.height)
		}
	}
}

func TestGridSizeInvalidInputs(t *testing.T) {
	if _, _, err := GridSize(BoundingBox{1, 0, 0, 1}, 0.1); err == nil {
		t.Error("expected error for degenerate bbox")
	}
	if _, _, err := GridSize(BoundingBox{0, 0, 1, 1}, 0); err == nil {
		t.Error("expected error for zero resolution")
	}
	if _, _, err := GridSize(BoundingBox{0, 0, 1, 1}, -0.5); err == nil {
		t.Error("expected error for negative resolution")
	}
	if _, _, err := GridSize(BoundingBox{0, 0, 1, 1}, 10); err == nil {
		t.Error("expected error when resolution exceeds the extent")
	}
}

func TestNewGeoTransform(t *testing.T) {
	bbox := BoundingBox{10, 45, 11, 46}
	gt := NewGeoTransform(bbox, 0.01)

	if gt.OriginX != 10 || gt.OriginY != 46 {
		t.Errorf("origin = (%v, %v), want (10, 46)", gt.OriginX, gt.OriginY)
	}
	if gt.PixelWidth != 0.01 || gt.PixelHeight != -0.01 {
		t.Errorf("pixel size = (%v, %v), want (0.01, -0.01)", gt.PixelWidth, gt.PixelHeight)
	}

	want := [6]float64{10, 0.01, 0, 46, 0, -0.01}
	if gt.GDAL() != want {
		t.Errorf("GDAL() = %v, want %v", gt.GDAL(), want)
	}
}

func TestPixelCenterRoundTrip(t *testing.T) {
	gt := NewGeoTransform(BoundingBox{0, 0, 1, 1}, 0.5)

	center := gt.PixelCenter(0, 0)
	if center.X != 0.25 || center.Y != 0.75 {
		t.Errorf("PixelCenter(0, 0) = %v, want (0.25, 0.75)", center)
	}

	for row := 0; row < 2; row++ {
		for col := 0; col < 2; col++ {
			r, c := gt.PixelAt(gt.PixelCenter(row, col))
			if r != row || c != col {
				t.Errorf("PixelAt(PixelCenter(%d, %d)) = (%d, %d)", row, col, r, c)
			}
		}
	}
}

func TestPixelAtOutsideGrid(t *testing.T) {
	gt := NewGeoTransform(BoundingBox{0, 0, 1, 1}, 0.5)
	row, col := gt.PixelAt(r2.Point{X: 5, Y: -5})
	if col != 10 || row != 12 {
		t.Errorf("PixelAt outside = (%d, %d), want unclamped (12, 10)", row, col)
	}
}

func TestRaster(t *testing.T) {
	r, err := NewRaster(3, 2)
	if err != nil {
		t.Fatal(err)
	}
	r.Set(1, 2, 7.5)
	if got := r.At(1, 2); got != 7.5 {
		t.Errorf("At(1, 2) = %v, want 7.5", got)
	}
	if got := r.At(0, 0); got != 0 {
		t.Errorf("At(0, 0) = %v, want 0", got)
	}
	if len(r.Values()) != 6 {
		t.Errorf("Values() has %d entries, want 6", len(r.Values()))
	}

	other, _ := NewRaster(3, 2)
	if !r.SameShape(other) {
		t.Error("rasters with equal dimensions should share a shape")
	}
	if r.SameShape(nil) {
		t.Error("nil raster must not match any shape")
	}

	if _, err := NewRaster(0, 2); err == nil {
		t.Error("expected error for zero width")
	}
}

func TestBoundingBoxRect(t *testing.T) {
	bbox := BoundingBox{10, 45, 11, 46}
	rect := bbox.Rect()
	if rect.X.Lo != 10 || rect.X.Hi != 11 || rect.Y.Lo != 45 || rect.Y.Hi != 46 {
		t.Errorf("Rect() = %v", rect)
	}
	if math.Abs(bbox.Width()-1) > 1e-12 || math.Abs(bbox.Height()-1) > 1e-12 {
		t.Errorf("extent = %vx%v, want 1x1", bbox.Width(), bbox.Height())
	}
}
