package statsio

import (
	"time"

	"fieldstats/fields"
	"fieldstats/zonal"
)

// FieldDayRecord is one field's statistics for one date, flattened the way
// the tabular artifacts lay it out. Stat columns are pointers so that
// empty zonal stats serialize as nulls rather than zeros.
type FieldDayRecord struct {
	FieldID           string `json:"field_id" parquet:"field_id"`
	FieldName         string `json:"field_name" parquet:"field_name"`
	CropType          string `json:"crop_type" parquet:"crop_type"`
	Date              string `json:"date" parquet:"date"`
	DaysSincePlanting int    `json:"days_since_planting" parquet:"days_since_planting"`

	NDVIMin   *float64 `json:"ndvi_min" parquet:"ndvi_min,optional"`
	NDVIMax   *float64 `json:"ndvi_max" parquet:"ndvi_max,optional"`
	NDVIMean  *float64 `json:"ndvi_mean" parquet:"ndvi_mean,optional"`
	NDVIStd   *float64 `json:"ndvi_std" parquet:"ndvi_std,optional"`
	NDVICount int      `json:"ndvi_count" parquet:"ndvi_count"`

	SoilMoistureMin   *float64 `json:"soil_moisture_min" parquet:"soil_moisture_min,optional"`
	SoilMoistureMax   *float64 `json:"soil_moisture_max" parquet:"soil_moisture_max,optional"`
	SoilMoistureMean  *float64 `json:"soil_moisture_mean" parquet:"soil_moisture_mean,optional"`
	SoilMoistureStd   *float64 `json:"soil_moisture_std" parquet:"soil_moisture_std,optional"`
	SoilMoistureCount int      `json:"soil_moisture_count" parquet:"soil_moisture_count"`

	TemperatureMin   *float64 `json:"temperature_min" parquet:"temperature_min,optional"`
	TemperatureMax   *float64 `json:"temperature_max" parquet:"temperature_max,optional"`
	TemperatureMean  *float64 `json:"temperature_mean" parquet:"temperature_mean,optional"`
	TemperatureStd   *float64 `json:"temperature_std" parquet:"temperature_std,optional"`
	TemperatureCount int      `json:"temperature_count" parquet:"temperature_count"`
}

// NewFieldDayRecord flattens one field's three zonal stats into the
// tabular record shape.
func NewFieldDayRecord(f fields.Field, date time.Time, ndvi, soil, temp zonal.Stats) FieldDayRecord {
	rec := FieldDayRecord{
		FieldID:           f.ID,
		FieldName:         f.Name,
		CropType:          f.CropType,
		Date:              date.Format(fields.DateLayout),
		DaysSincePlanting: f.DaysSincePlanting(date),
		NDVICount:         ndvi.Count,
		SoilMoistureCount: soil.Count,
		TemperatureCount:  temp.Count,
	}
	rec.NDVIMin, rec.NDVIMax, rec.NDVIMean, rec.NDVIStd = statPtrs(ndvi)
	rec.SoilMoistureMin, rec.SoilMoistureMax, rec.SoilMoistureMean, rec.SoilMoistureStd = statPtrs(soil)
	rec.TemperatureMin, rec.TemperatureMax, rec.TemperatureMean, rec.TemperatureStd = statPtrs(temp)
	return rec
}

func statPtrs(s zonal.Stats) (min, max, mean, std *float64) {
	if s.Empty() {
		return nil, nil, nil, nil
	}
	return ptr(s.Min), ptr(s.Max), ptr(s.Mean), ptr(s.Std)
}

func ptr(v float64) *float64 { return &v }

// ChangeRecord is the day-over-day comparison of one field's mean metrics.
// Percent changes are reported as 0 when the previous mean is 0, and the
// growth rate as 0 when days since planting is 0, instead of dividing.
type ChangeRecord struct {
	FieldID           string `json:"field_id"`
	FieldName         string `json:"field_name"`
	CropType          string `json:"crop_type"`
	Date              string `json:"date"`
	DaysSincePlanting int    `json:"days_since_planting"`

	NDVIMean          *float64 `json:"ndvi_mean"`
	NDVIMeanPrev      *float64 `json:"ndvi_mean_prev"`
	NDVIMeanChange    *float64 `json:"ndvi_mean_change"`
	NDVIMeanPctChange *float64 `json:"ndvi_mean_pct_change"`

	SoilMoistureMean          *float64 `json:"soil_moisture_mean"`
	SoilMoistureMeanPrev      *float64 `json:"soil_moisture_mean_prev"`
	SoilMoistureMeanChange    *float64 `json:"soil_moisture_mean_change"`
	SoilMoistureMeanPctChange *float64 `json:"soil_moisture_mean_pct_change"`

	TemperatureMean       *float64 `json:"temperature_mean"`
	TemperatureMeanPrev   *float64 `json:"temperature_mean_prev"`
	TemperatureMeanChange *float64 `json:"temperature_mean_change"`

	GrowthRate *float64 `json:"growth_rate"`
}

// NewChangeRecord merges a field's current record with the previous day's.
func NewChangeRecord(cur, prev FieldDayRecord) ChangeRecord {
	rec := ChangeRecord{
		FieldID:           cur.FieldID,
		FieldName:         cur.FieldName,
		CropType:          cur.CropType,
		Date:              cur.Date,
		DaysSincePlanting: cur.DaysSincePlanting,

		NDVIMean:     cur.NDVIMean,
		NDVIMeanPrev: prev.NDVIMean,

		SoilMoistureMean:     cur.SoilMoistureMean,
		SoilMoistureMeanPrev: prev.SoilMoistureMean,

		TemperatureMean:     cur.TemperatureMean,
		TemperatureMeanPrev: prev.TemperatureMean,
	}
	rec.NDVIMeanChange = diff(cur.NDVIMean, prev.NDVIMean)
	rec.NDVIMeanPctChange = pctChange(cur.NDVIMean, prev.NDVIMean)
	rec.SoilMoistureMeanChange = diff(cur.SoilMoistureMean, prev.SoilMoistureMean)
	rec.SoilMoistureMeanPctChange = pctChange(cur.SoilMoistureMean, prev.SoilMoistureMean)
	rec.TemperatureMeanChange = diff(cur.TemperatureMean, prev.TemperatureMean)

	if rec.NDVIMeanChange != nil {
		rate := 0.0
		if cur.DaysSincePlanting != 0 {
			rate = *rec.NDVIMeanChange / float64(cur.DaysSincePlanting)
		}
		rec.GrowthRate = &rate
	}
	return rec
}

func diff(cur, prev *float64) *float64 {
	if cur == nil || prev == nil {
		return nil
	}
	return ptr(*cur - *prev)
}

func pctChange(cur, prev *float64) *float64 {
	d := diff(cur, prev)
	if d == nil {
		return nil
	}
	if *prev == 0 {
		return ptr(0)
	}
	return ptr(*d / *prev * 100)
}
