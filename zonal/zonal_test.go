package zonal

import (
	"math"
	"testing"

	"fieldstats/fields"
	"fieldstats/geogrid"
)

// countingRaster fills a 4x4 grid with 1..16 over the bbox (0,0,4,4).
func countingRaster(t *testing.T) (*geogrid.Raster, geogrid.GeoTransform) {
	t.Helper()
	raster, err := geogrid.NewRaster(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			raster.Set(row, col, float64(row*4+col+1))
		}
	}
	gt := geogrid.NewGeoTransform(geogrid.BoundingBox{MinX: 0, MinY: 0, MaxX: 4, MaxY: 4}, 1)
	return raster, gt
}

func rectPolygon(minX, minY, maxX, maxY float64) fields.Polygon {
	return fields.Polygon{
		{X: minX, Y: minY}, {X: maxX, Y: minY}, {X: maxX, Y: maxY}, {X: minX, Y: maxY},
	}
}

func TestComputeFullExtent(t *testing.T) {
	raster, gt := countingRaster(t)
	// Slightly oversized so every pixel center is strictly interior.
	stats, err := Compute(raster, gt, rectPolygon(-1, -1, 5, 5))
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 16 {
		t.Fatalf("count = %d, want 16", stats.Count)
	}
	if stats.Min != 1 || stats.Max != 16 {
		t.Errorf("min/max = %v/%v, want 1/16", stats.Min, stats.Max)
	}
	if math.Abs(stats.Mean-8.5) > 1e-12 {
		t.Errorf("mean = %v, want 8.5", stats.Mean)
	}
}

func TestComputeOutsideExtent(t *testing.T) {
	raster, gt := countingRaster(t)
	for _, polygon := range []fields.Polygon{
		rectPolygon(10, 10, 12, 12),
		rectPolygon(-5, -5, -1, -1),
		rectPolygon(10, 0, 12, 4),
	} {
		stats, err := Compute(raster, gt, polygon)
		if err != nil {
			t.Fatal(err)
		}
		if !stats.Empty() || stats.Count != 0 {
			t.Errorf("polygon %v: count = %d, want 0", polygon, stats.Count)
		}
	}
}

func TestComputeSinglePixel(t *testing.T) {
	raster, err := geogrid.NewRaster(2, 2)
	if err != nil {
		t.Fatal(err)
	}
	raster.Set(0, 0, 0.42)
	raster.Set(0, 1, 0.1)
	raster.Set(1, 0, 0.2)
	raster.Set(1, 1, 0.3)
	gt := geogrid.NewGeoTransform(geogrid.BoundingBox{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}, 0.5)

	// Covers only the top-left pixel center at (0.25, 0.75).
	stats, err := Compute(raster, gt, rectPolygon(0.2, 0.7, 0.3, 0.8))
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 1 {
		t.Fatalf("count = %d, want 1", stats.Count)
	}
	if stats.Min != 0.42 || stats.Max != 0.42 || stats.Mean != 0.42 {
		t.Errorf("min/max/mean = %v/%v/%v, want 0.42", stats.Min, stats.Max, stats.Mean)
	}
	if stats.Std != 0 {
		t.Errorf("std of a single pixel = %v, want 0", stats.Std)
	}
}

func TestComputePartialOverlap(t *testing.T) {
	raster, gt := countingRaster(t)
	// Left half: columns 0 and 1, centers at x = 0.5 and 1.5.
	stats, err := Compute(raster, gt, rectPolygon(-1, -1, 2, 5))
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 8 {
		t.Fatalf("count = %d, want 8", stats.Count)
	}
	want := (1.0 + 2 + 5 + 6 + 9 + 10 + 13 + 14) / 8
	if math.Abs(stats.Mean-want) > 1e-12 {
		t.Errorf("mean = %v, want %v", stats.Mean, want)
	}
}

func TestComputeIsPure(t *testing.T) {
	raster, gt := countingRaster(t)
	polygon := rectPolygon(0.2, 0.2, 3.7, 2.9)
	first, err := Compute(raster, gt, polygon)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Compute(raster, gt, polygon)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Errorf("repeated runs differ: %+v vs %+v", first, second)
	}
}

func TestComputeRejectsBadPolygon(t *testing.T) {
	raster, gt := countingRaster(t)
	if _, err := Compute(raster, gt, fields.Polygon{{X: 0, Y: 0}, {X: 1, Y: 1}}); err == nil {
		t.Error("expected error for degenerate polygon")
	}
}

func TestComputeTriangle(t *testing.T) {
	raster, gt := countingRaster(t)
	// Right triangle over the lower-left corner. The four centers landing
	// exactly on the hypotenuse (x+y = 4) fall outside under the half-open
	// edge convention, leaving the six strictly interior centers.
	triangle := fields.Polygon{{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 0, Y: 4}}
	stats, err := Compute(raster, gt, triangle)
	if err != nil {
		t.Fatal(err)
	}
	if stats.Count != 6 {
		t.Errorf("count = %d, want 6", stats.Count)
	}
}
