package statsio

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
)

var fieldDayHeader = []string{
	"field_id", "field_name", "crop_type", "date", "days_since_planting",
	"ndvi_min", "ndvi_max", "ndvi_mean", "ndvi_std", "ndvi_count",
	"soil_moisture_min", "soil_moisture_max", "soil_moisture_mean", "soil_moisture_std", "soil_moisture_count",
	"temperature_min", "temperature_max", "temperature_mean", "temperature_std", "temperature_count",
}

// MarshalRecordsCSV encodes field-day records with a header row. Null stat
// columns are written as empty cells.
func MarshalRecordsCSV(records []FieldDayRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(fieldDayHeader); err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := []string{
			rec.FieldID, rec.FieldName, rec.CropType, rec.Date, strconv.Itoa(rec.DaysSincePlanting),
			fcell(rec.NDVIMin), fcell(rec.NDVIMax), fcell(rec.NDVIMean), fcell(rec.NDVIStd), strconv.Itoa(rec.NDVICount),
			fcell(rec.SoilMoistureMin), fcell(rec.SoilMoistureMax), fcell(rec.SoilMoistureMean), fcell(rec.SoilMoistureStd), strconv.Itoa(rec.SoilMoistureCount),
			fcell(rec.TemperatureMin), fcell(rec.TemperatureMax), fcell(rec.TemperatureMean), fcell(rec.TemperatureStd), strconv.Itoa(rec.TemperatureCount),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

// UnmarshalRecordsCSV parses a field-day CSV produced by
// MarshalRecordsCSV. The change stage uses it to read the previous day's
// artifact back.
func UnmarshalRecordsCSV(data []byte) ([]FieldDayRecord, error) {
	r := csv.NewReader(bytes.NewReader(data))
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parsing records csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("records csv is empty")
	}
	if got := strings.Join(rows[0], ","); got != strings.Join(fieldDayHeader, ",") {
		return nil, fmt.Errorf("unexpected csv header %q", got)
	}

	records := make([]FieldDayRecord, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(fieldDayHeader) {
			return nil, fmt.Errorf("row has %d columns, want %d", len(row), len(fieldDayHeader))
		}
		rec := FieldDayRecord{FieldID: row[0], FieldName: row[1], CropType: row[2], Date: row[3]}
		if rec.DaysSincePlanting, err = strconv.Atoi(row[4]); err != nil {
			return nil, fmt.Errorf("field %s: bad days_since_planting: %w", rec.FieldID, err)
		}
		cells := row[5:]
		groups := []struct {
			min, max, mean, std **float64
			count               *int
		}{
			{&rec.NDVIMin, &rec.NDVIMax, &rec.NDVIMean, &rec.NDVIStd, &rec.NDVICount},
			{&rec.SoilMoistureMin, &rec.SoilMoistureMax, &rec.SoilMoistureMean, &rec.SoilMoistureStd, &rec.SoilMoistureCount},
			{&rec.TemperatureMin, &rec.TemperatureMax, &rec.TemperatureMean, &rec.TemperatureStd, &rec.TemperatureCount},
		}
		for gi, g := range groups {
			base := gi * 5
			for i, dst := range []**float64{g.min, g.max, g.mean, g.std} {
				if *dst, err = parseCell(cells[base+i]); err != nil {
					return nil, fmt.Errorf("field %s: %w", rec.FieldID, err)
				}
			}
			if *g.count, err = strconv.Atoi(cells[base+4]); err != nil {
				return nil, fmt.Errorf("field %s: bad count: %w", rec.FieldID, err)
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

var changeHeader = []string{
	"field_id", "field_name", "crop_type", "date", "days_since_planting",
	"ndvi_mean", "ndvi_mean_prev", "ndvi_mean_change", "ndvi_mean_pct_change",
	"soil_moisture_mean", "soil_moisture_mean_prev", "soil_moisture_mean_change", "soil_moisture_mean_pct_change",
	"temperature_mean", "temperature_mean_prev", "temperature_mean_change",
	"growth_rate",
}

// MarshalChangesCSV encodes day-over-day change records.
func MarshalChangesCSV(records []ChangeRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(changeHeader); err != nil {
		return nil, err
	}
	for _, rec := range records {
		row := []string{
			rec.FieldID, rec.FieldName, rec.CropType, rec.Date, strconv.Itoa(rec.DaysSincePlanting),
			fcell(rec.NDVIMean), fcell(rec.NDVIMeanPrev), fcell(rec.NDVIMeanChange), fcell(rec.NDVIMeanPctChange),
			fcell(rec.SoilMoistureMean), fcell(rec.SoilMoistureMeanPrev), fcell(rec.SoilMoistureMeanChange), fcell(rec.SoilMoistureMeanPctChange),
			fcell(rec.TemperatureMean), fcell(rec.TemperatureMeanPrev), fcell(rec.TemperatureMeanChange),
			fcell(rec.GrowthRate),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func fcell(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'g', -1, 64)
}

func parseCell(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil, fmt.Errorf("bad float cell %q: %w", s, err)
	}
	return &v, nil
}
