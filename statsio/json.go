package statsio

import "encoding/json"

// MarshalRecordsJSON encodes field-day records as a JSON array, matching
// the CSV artifact column for column. Empty stats appear as null.
func MarshalRecordsJSON(records []FieldDayRecord) ([]byte, error) {
	return json.Marshal(records)
}

// UnmarshalRecordsJSON parses records written by MarshalRecordsJSON.
func UnmarshalRecordsJSON(data []byte) ([]FieldDayRecord, error) {
	var records []FieldDayRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}
