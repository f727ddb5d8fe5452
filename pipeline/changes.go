package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"fieldstats/fields"
	"fieldstats/plots"
	"fieldstats/statsio"
)

// RunChanges compares the given date's persisted records with the previous
// day's and writes the change table plus a summary panel per field. A
// missing previous day is logged and skipped, not an error; a missing
// current day is an error since the daily stage should have run first.
func (p *Pipeline) RunChanges(date time.Time) ([]statsio.ChangeRecord, error) {
	curData, err := p.store.Get(dataObject(date, "csv"))
	if err != nil {
		return nil, fmt.Errorf("current day's records: %w", err)
	}
	current, err := statsio.UnmarshalRecordsCSV(curData)
	if err != nil {
		return nil, err
	}

	prevDate := date.AddDate(0, 0, -1)
	prevData, err := p.store.Get(dataObject(prevDate, "csv"))
	if errors.Is(err, statsio.ErrNotFound) {
		logrus.Info("no previous-day data; nothing to compare")
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	previous, err := statsio.UnmarshalRecordsCSV(prevData)
	if err != nil {
		return nil, err
	}

	prevByID := make(map[string]statsio.FieldDayRecord, len(previous))
	for _, rec := range previous {
		prevByID[rec.FieldID] = rec
	}

	var changes []statsio.ChangeRecord
	for _, cur := range current {
		prev, ok := prevByID[cur.FieldID]
		if !ok {
			continue
		}
		changes = append(changes, statsio.NewChangeRecord(cur, prev))
	}
	if len(changes) == 0 {
		logrus.Info("no matching fields between days")
		return nil, nil
	}

	csvData, err := statsio.MarshalChangesCSV(changes)
	if err != nil {
		return nil, err
	}
	if err := p.store.Put(changesObject(date), csvData); err != nil {
		return nil, err
	}
	logrus.Info("change-analysis table saved")

	day := date.Format(fields.DateLayout)
	for _, rec := range changes {
		png, err := plots.FieldSummary(rec)
		if err != nil {
			return nil, err
		}
		object := fmt.Sprintf("plots/field_summary_%s_%s.png", rec.FieldID, day)
		if err := p.store.Put(object, png); err != nil {
			return nil, err
		}
	}
	logrus.Info("plots and change analysis saved")
	return changes, nil
}
