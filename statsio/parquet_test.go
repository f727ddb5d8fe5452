package statsio

import (
	"testing"
	"time"

	"fieldstats/zonal"
)

func TestRecordsParquetRoundTrip(t *testing.T) {
	date := time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)
	records := []FieldDayRecord{
		sampleRecord(date, 0.5),
		NewFieldDayRecord(sampleField(), date, zonal.Stats{}, zonal.Stats{}, zonal.Stats{}),
	}

	data, err := MarshalRecordsParquet(records)
	if err != nil {
		t.Fatal(err)
	}
	decoded, err := ReadRecordsParquet(data)
	if err != nil {
		t.Fatal(err)
	}
	if len(decoded) != 2 {
		t.Fatalf("decoded %d records, want 2", len(decoded))
	}
	if decoded[0].FieldID != "field1" || decoded[0].Date != "2024-05-01" {
		t.Errorf("identity columns changed: %+v", decoded[0])
	}
	if decoded[0].NDVIMean == nil || *decoded[0].NDVIMean != 0.5 {
		t.Errorf("ndvi mean = %v, want 0.5", decoded[0].NDVIMean)
	}
	if decoded[1].NDVIMean != nil {
		t.Error("optional column must come back nil for empty stats")
	}
}
