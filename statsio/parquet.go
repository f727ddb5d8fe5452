package statsio

import (
	"bytes"

	"github.com/parquet-go/parquet-go"
)

// MarshalRecordsParquet encodes field-day records as a snappy-compressed
// parquet file. The schema comes from the FieldDayRecord struct tags.
func MarshalRecordsParquet(records []FieldDayRecord) ([]byte, error) {
	var buf bytes.Buffer
	schema := parquet.SchemaOf(new(FieldDayRecord))
	writer := parquet.NewGenericWriter[FieldDayRecord](&buf, schema, parquet.Compression(&parquet.Snappy))
	if _, err := writer.Write(records); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ReadRecordsParquet reads a parquet artifact back into records.
func ReadRecordsParquet(data []byte) ([]FieldDayRecord, error) {
	return parquet.Read[FieldDayRecord](bytes.NewReader(data), int64(len(data)))
}
