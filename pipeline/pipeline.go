// Package pipeline wires the daily stages together: synthesize the three
// rasters for a date, run zonal statistics for every field, persist the
// tabular and plot artifacts, and compare consecutive days.
package pipeline

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"fieldstats/fields"
	"fieldstats/geogrid"
	"fieldstats/plots"
	"fieldstats/statsio"
	"fieldstats/synth"
	"fieldstats/zonal"
)

// Config carries one run's parameters. Zero values are not usable; fill
// from flags/viper and validate through Pipeline.
type Config struct {
	BBox          geogrid.BoundingBox
	Resolution    float64
	FieldCount    int
	MinFieldSize  float64
	MaxFieldSize  float64
	Seed          int64
	ExportGeoTIFF bool
}

// Pipeline runs the daily stages against one artifact store.
type Pipeline struct {
	store *statsio.Store
	cfg   Config
}

func New(store *statsio.Store, cfg Config) (*Pipeline, error) {
	if err := cfg.BBox.Validate(); err != nil {
		return nil, err
	}
	if cfg.Resolution <= 0 {
		return nil, fmt.Errorf("resolution must be positive, got %v", cfg.Resolution)
	}
	return &Pipeline{store: store, cfg: cfg}, nil
}

const fieldDefsObject = "field_definitions.json"

func dataObject(date time.Time, ext string) string {
	return fmt.Sprintf("fieldstats_data_%s.%s", date.Format(fields.DateLayout), ext)
}

func changesObject(date time.Time) string {
	return fmt.Sprintf("fieldstats_changes_%s.csv", date.Format(fields.DateLayout))
}

// RunDaily executes the per-date stage and returns the records it
// persisted. A date with no planted field in the extent produces no
// artifacts and no error.
func (p *Pipeline) RunDaily(date time.Time) ([]statsio.FieldDayRecord, error) {
	logrus.Infof("processing date %s", date.Format(fields.DateLayout))

	allFields, err := p.loadOrGenerateFields()
	if err != nil {
		return nil, err
	}

	var active []fields.Field
	for _, f := range allFields {
		if f.Boundary.Intersects(p.cfg.BBox.Rect()) && !f.PlantingDate.After(date) {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		logrus.Info("no fields to process")
		return nil, nil
	}
	logrus.Infof("processing %d of %d fields", len(active), len(allFields))

	// Seed folded with the date so rerunning one partition reproduces its
	// rasters without making every date identical.
	s := synth.New(p.cfg.Seed + date.Unix()/86400)
	ndvi, gt, err := s.Vegetation(p.cfg.BBox, date, p.cfg.Resolution)
	if err != nil {
		return nil, err
	}
	soil, _, err := s.SoilMoisture(p.cfg.BBox, date, ndvi, p.cfg.Resolution)
	if err != nil {
		return nil, err
	}
	temp, _, err := s.Temperature(p.cfg.BBox, date, p.cfg.Resolution)
	if err != nil {
		return nil, err
	}

	records := make([]statsio.FieldDayRecord, 0, len(active))
	for _, f := range active {
		ndviStats, err := zonal.Compute(ndvi, gt, f.Boundary)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.ID, err)
		}
		soilStats, err := zonal.Compute(soil, gt, f.Boundary)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.ID, err)
		}
		tempStats, err := zonal.Compute(temp, gt, f.Boundary)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", f.ID, err)
		}
		records = append(records, statsio.NewFieldDayRecord(f, date, ndviStats, soilStats, tempStats))
	}

	if err := p.persistRecords(date, records); err != nil {
		return nil, err
	}
	if err := p.persistPlots(date, ndvi, soil, temp, gt); err != nil {
		return nil, err
	}
	if p.cfg.ExportGeoTIFF {
		rasters := map[synth.Kind]*geogrid.Raster{
			synth.Vegetation:   ndvi,
			synth.SoilMoisture: soil,
			synth.Temperature:  temp,
		}
		for kind, raster := range rasters {
			if err := p.persistGeoTIFF(date, kind, raster, gt); err != nil {
				return nil, err
			}
		}
	}
	logrus.Info("daily data and plots saved")
	return records, nil
}

// loadOrGenerateFields loads stored field definitions, generating and
// persisting a fresh set when none exist yet.
func (p *Pipeline) loadOrGenerateFields() ([]fields.Field, error) {
	data, err := p.store.Get(fieldDefsObject)
	switch {
	case err == nil:
		flds, err := fields.UnmarshalFields(data)
		if err != nil {
			return nil, err
		}
		logrus.Infof("loaded %d fields", len(flds))
		return flds, nil
	case errors.Is(err, statsio.ErrNotFound):
		gen := fields.NewGenerator(p.cfg.Seed)
		flds, err := gen.Generate(p.cfg.BBox, p.cfg.FieldCount, p.cfg.MinFieldSize, p.cfg.MaxFieldSize)
		if err != nil {
			return nil, err
		}
		data, err := fields.MarshalFields(flds)
		if err != nil {
			return nil, err
		}
		if err := p.store.Put(fieldDefsObject, data); err != nil {
			return nil, err
		}
		logrus.Infof("generated %d fields", len(flds))
		return flds, nil
	default:
		return nil, err
	}
}

func (p *Pipeline) persistRecords(date time.Time, records []statsio.FieldDayRecord) error {
	csvData, err := statsio.MarshalRecordsCSV(records)
	if err != nil {
		return err
	}
	if err := p.store.Put(dataObject(date, "csv"), csvData); err != nil {
		return err
	}

	jsonData, err := statsio.MarshalRecordsJSON(records)
	if err != nil {
		return err
	}
	if err := p.store.Put(dataObject(date, "json"), jsonData); err != nil {
		return err
	}

	parquetData, err := statsio.MarshalRecordsParquet(records)
	if err != nil {
		return err
	}
	return p.store.Put(dataObject(date, "parquet"), parquetData)
}

func (p *Pipeline) persistPlots(date time.Time, ndvi, soil, temp *geogrid.Raster, gt geogrid.GeoTransform) error {
	day := date.Format(fields.DateLayout)
	for _, item := range []struct {
		raster *geogrid.Raster
		kind   synth.Kind
		title  string
		object string
	}{
		{ndvi, synth.Vegetation, "NDVI " + day, fmt.Sprintf("plots/ndvi_%s.png", day)},
		{soil, synth.SoilMoisture, "Soil Moisture " + day, fmt.Sprintf("plots/soil_%s.png", day)},
		{temp, synth.Temperature, "Temperature " + day, fmt.Sprintf("plots/temp_%s.png", day)},
	} {
		png, err := plots.Heatmap(item.raster, gt, item.kind, item.title)
		if err != nil {
			return err
		}
		if err := p.store.Put(item.object, png); err != nil {
			return err
		}
	}
	return nil
}

// persistGeoTIFF routes a raster through GDAL on a temp file, then moves
// the bytes into the store.
func (p *Pipeline) persistGeoTIFF(date time.Time, kind synth.Kind, raster *geogrid.Raster, gt geogrid.GeoTransform) error {
	tmp, err := os.CreateTemp("", "fieldstats-*.tif")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		return err
	}
	defer func() {
		if err := os.Remove(tmpPath); err != nil {
			logrus.Error(err)
		}
	}()

	if err := statsio.WriteGeoTIFF(tmpPath, raster, gt); err != nil {
		return err
	}
	data, err := os.ReadFile(tmpPath)
	if err != nil {
		return err
	}
	object := fmt.Sprintf("rasters/%s_%s.tif", kind, date.Format(fields.DateLayout))
	return p.store.Put(object, data)
}
