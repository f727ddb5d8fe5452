// Package fields models agricultural field polygons with crop metadata and
// generates randomized field sets when no stored definitions exist.
package fields

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang/geo/r2"
)

// DateLayout is the calendar date format used in field definitions and
// output artifacts.
const DateLayout = "2006-01-02"

// Field is one polygon with its farming metadata.
type Field struct {
	ID           string
	Name         string
	CropType     string
	PlantingDate time.Time
	Boundary     Polygon
}

// DaysSincePlanting returns the whole days elapsed between the planting
// date and the given date. Negative before planting.
func (f Field) DaysSincePlanting(date time.Time) int {
	return int(date.Sub(f.PlantingDate).Hours() / 24)
}

// fieldRecord is the stored JSON shape: coordinates as bare pairs so the
// definitions file stays readable and language-neutral.
type fieldRecord struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	CropType      string       `json:"crop_type"`
	PlantingDate  string       `json:"planting_date"`
	PolygonCoords [][2]float64 `json:"polygon_coords"`
}

// MarshalFields encodes a field set as a JSON array of records.
func MarshalFields(flds []Field) ([]byte, error) {
	records := make([]fieldRecord, len(flds))
	for i, f := range flds {
		coords := make([][2]float64, len(f.Boundary))
		for j, v := range f.Boundary {
			coords[j] = [2]float64{v.X, v.Y}
		}
		records[i] = fieldRecord{
			ID:            f.ID,
			Name:          f.Name,
			CropType:      f.CropType,
			PlantingDate:  f.PlantingDate.Format(DateLayout),
			PolygonCoords: coords,
		}
	}
	return json.Marshal(records)
}

// UnmarshalFields decodes a stored field definition set, validating each
// polygon and planting date.
func UnmarshalFields(data []byte) ([]Field, error) {
	var records []fieldRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decoding field definitions: %w", err)
	}
	flds := make([]Field, len(records))
	for i, rec := range records {
		planted, err := time.Parse(DateLayout, rec.PlantingDate)
		if err != nil {
			return nil, fmt.Errorf("field %s: bad planting date %q: %w", rec.ID, rec.PlantingDate, err)
		}
		boundary := make(Polygon, len(rec.PolygonCoords))
		for j, c := range rec.PolygonCoords {
			boundary[j] = r2.Point{X: c[0], Y: c[1]}
		}
		if err := boundary.Validate(); err != nil {
			return nil, fmt.Errorf("field %s: %w", rec.ID, err)
		}
		flds[i] = Field{
			ID:           rec.ID,
			Name:         rec.Name,
			CropType:     rec.CropType,
			PlantingDate: planted,
			Boundary:     boundary,
		}
	}
	return flds, nil
}
