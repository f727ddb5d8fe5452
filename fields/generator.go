package fields

import (
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/golang/geo/r2"

	"fieldstats/geogrid"
)

// Crops is the crop-type vocabulary drawn from when generating fields.
var Crops = []string{"Corn", "Wheat", "Soybeans", "Barley", "Potatoes", "Alfalfa", "Rice"}

// Planting dates are drawn from this fixed window.
var (
	plantingStart = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	plantingEnd   = time.Date(2024, time.April, 30, 0, 0, 0, 0, time.UTC)
)

// Generator produces randomized rectangular fields inside a bounding box.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(seed int64) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Generate creates count fields. Each is a rectangle sized by a uniform
// fraction of the box extent in [minSize, maxSize], centered uniformly in
// the inner 60% of the box and rotated by a uniform angle in [0°, 90°).
func (g *Generator) Generate(bbox geogrid.BoundingBox, count int, minSize, maxSize float64) ([]Field, error) {
	if err := bbox.Validate(); err != nil {
		return nil, err
	}
	if count < 0 {
		return nil, fmt.Errorf("field count must be non-negative, got %d", count)
	}
	if minSize <= 0 || maxSize > 1 || minSize > maxSize {
		return nil, fmt.Errorf("size fractions must satisfy 0 < min <= max <= 1, got [%v, %v]", minSize, maxSize)
	}

	plantingDays := int(plantingEnd.Sub(plantingStart).Hours() / 24)
	flds := make([]Field, count)
	for i := range flds {
		cx := bbox.MinX + (0.2+0.6*g.rng.Float64())*bbox.Width()
		cy := bbox.MinY + (0.2+0.6*g.rng.Float64())*bbox.Height()
		size := minSize + g.rng.Float64()*(maxSize-minSize)
		fw := size * bbox.Width()
		fh := size * bbox.Height()
		angle := g.rng.Float64() * 90 * math.Pi / 180

		center := r2.Point{X: cx, Y: cy}
		rect := Polygon{
			{X: cx - fw/2, Y: cy - fh/2},
			{X: cx + fw/2, Y: cy - fh/2},
			{X: cx + fw/2, Y: cy + fh/2},
			{X: cx - fw/2, Y: cy + fh/2},
		}

		crop := Crops[g.rng.Intn(len(Crops))]
		planted := plantingStart.AddDate(0, 0, g.rng.Intn(plantingDays+1))

		flds[i] = Field{
			ID:           fmt.Sprintf("field%d", i+1),
			Name:         fmt.Sprintf("%s Field %d", crop, i+1),
			CropType:     crop,
			PlantingDate: planted,
			Boundary:     rect.RotateAround(center, angle),
		}
	}
	return flds, nil
}
