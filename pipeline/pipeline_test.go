package pipeline

import (
	"testing"
	"time"

	"fieldstats/geogrid"
	"fieldstats/statsio"
)

func testConfig() Config {
	return Config{
		BBox:         geogrid.BoundingBox{MinX: 10, MinY: 45, MaxX: 11, MaxY: 46},
		Resolution:   0.01,
		FieldCount:   5,
		MinFieldSize: 0.05,
		MaxFieldSize: 0.15,
		Seed:         42,
	}
}

func mustPipeline(t *testing.T, store *statsio.Store) *Pipeline {
	t.Helper()
	p, err := New(store, testConfig())
	if err != nil {
		t.Fatal(err)
	}
	return p
}

// May 1st is after the whole planting window, so every generated field is
// active.
var runDate = time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)

func TestNewValidatesConfig(t *testing.T) {
	store := statsio.NewMemStore()
	cfg := testConfig()
	cfg.Resolution = 0
	if _, err := New(store, cfg); err == nil {
		t.Error("expected error for zero resolution")
	}
	cfg = testConfig()
	cfg.BBox = geogrid.BoundingBox{MinX: 1, MinY: 0, MaxX: 0, MaxY: 1}
	if _, err := New(store, cfg); err == nil {
		t.Error("expected error for degenerate bbox")
	}
}

func TestRunDaily(t *testing.T) {
	store := statsio.NewMemStore()
	p := mustPipeline(t, store)

	records, err := p.RunDaily(runDate)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 5 {
		t.Fatalf("got %d records, want 5", len(records))
	}
	for _, rec := range records {
		if rec.Date != "2024-05-01" {
			t.Errorf("record date = %q, want 2024-05-01", rec.Date)
		}
		if rec.DaysSincePlanting < 1 {
			t.Errorf("field %s: days since planting = %d, want >= 1", rec.FieldID, rec.DaysSincePlanting)
		}
		if rec.NDVICount == 0 {
			t.Errorf("field %s: no pixels inside its polygon", rec.FieldID)
		}
		if rec.NDVIMean != nil && (*rec.NDVIMean < 0 || *rec.NDVIMean > 1) {
			t.Errorf("field %s: ndvi mean %v outside [0, 1]", rec.FieldID, *rec.NDVIMean)
		}
	}

	for _, object := range []string{
		"field_definitions.json",
		"fieldstats_data_2024-05-01.csv",
		"fieldstats_data_2024-05-01.json",
		"fieldstats_data_2024-05-01.parquet",
		"plots/ndvi_2024-05-01.png",
		"plots/soil_2024-05-01.png",
		"plots/temp_2024-05-01.png",
	} {
		exists, err := store.Exists(object)
		if err != nil {
			t.Fatal(err)
		}
		if !exists {
			t.Errorf("artifact %s was not written", object)
		}
	}
}

func TestRunDailyReusesStoredFields(t *testing.T) {
	store := statsio.NewMemStore()
	p := mustPipeline(t, store)

	first, err := p.RunDaily(runDate)
	if err != nil {
		t.Fatal(err)
	}
	second, err := p.RunDaily(runDate.AddDate(0, 0, 1))
	if err != nil {
		t.Fatal(err)
	}
	if len(first) != len(second) {
		t.Fatalf("field counts differ between runs: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].FieldID != second[i].FieldID {
			t.Errorf("field ids differ between runs: %s vs %s", first[i].FieldID, second[i].FieldID)
		}
	}
}

func TestRunDailyBeforePlanting(t *testing.T) {
	store := statsio.NewMemStore()
	p := mustPipeline(t, store)

	// Before the planting window opens no field qualifies.
	records, err := p.RunDaily(time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatal(err)
	}
	if records != nil {
		t.Errorf("got %d records, want none", len(records))
	}
	exists, err := store.Exists("fieldstats_data_2023-06-01.csv")
	if err != nil {
		t.Fatal(err)
	}
	if exists {
		t.Error("no artifacts should be written when no field is active")
	}
}

func TestRunChanges(t *testing.T) {
	store := statsio.NewMemStore()
	p := mustPipeline(t, store)

	if _, err := p.RunDaily(runDate); err != nil {
		t.Fatal(err)
	}
	nextDate := runDate.AddDate(0, 0, 1)
	if _, err := p.RunDaily(nextDate); err != nil {
		t.Fatal(err)
	}

	changes, err := p.RunChanges(nextDate)
	if err != nil {
		t.Fatal(err)
	}
	if len(changes) != 5 {
		t.Fatalf("got %d change records, want 5", len(changes))
	}
	for _, rec := range changes {
		if rec.NDVIMeanChange == nil {
			t.Errorf("field %s: missing ndvi change", rec.FieldID)
		}
		if rec.GrowthRate == nil {
			t.Errorf("field %s: missing growth rate", rec.FieldID)
		}
	}

	exists, err := store.Exists("fieldstats_changes_2024-05-02.csv")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("change table was not written")
	}
	exists, err = store.Exists("plots/field_summary_field1_2024-05-02.png")
	if err != nil {
		t.Fatal(err)
	}
	if !exists {
		t.Error("field summary plot was not written")
	}
}

func TestRunChangesNoPreviousDay(t *testing.T) {
	store := statsio.NewMemStore()
	p := mustPipeline(t, store)

	if _, err := p.RunDaily(runDate); err != nil {
		t.Fatal(err)
	}
	changes, err := p.RunChanges(runDate)
	if err != nil {
		t.Fatal(err)
	}
	if changes != nil {
		t.Errorf("got %d change records without a previous day, want none", len(changes))
	}
}

func TestRunChangesNoCurrentDay(t *testing.T) {
	store := statsio.NewMemStore()
	p := mustPipeline(t, store)
	if _, err := p.RunChanges(runDate); err == nil {
		t.Error("expected error when the current day's table is missing")
	}
}

func TestLoadBounds(t *testing.T) {
	store := statsio.NewMemStore()

	if _, err := LoadBounds(store); err == nil {
		t.Error("expected not-found error for empty store")
	}

	if err := store.Put(BoundsObject, []byte(`{"minx":0,"miny":0,"maxx":2,"maxy":3}`)); err != nil {
		t.Fatal(err)
	}
	bbox, err := LoadBounds(store)
	if err != nil {
		t.Fatal(err)
	}
	if bbox.MaxX != 2 || bbox.MaxY != 3 {
		t.Errorf("bounds = %+v", bbox)
	}

	if err := store.Put(BoundsObject, []byte(`{"minx":5,"miny":0,"maxx":2,"maxy":3}`)); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadBounds(store); err == nil {
		t.Error("expected error for degenerate stored bounds")
	}
}
