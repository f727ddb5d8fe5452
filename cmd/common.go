package cmd

import (
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"fieldstats/fields"
	"fieldstats/geogrid"
	"fieldstats/pipeline"
	"fieldstats/statsio"
)

// storeFrom opens the artifact store at the first positional argument,
// defaulting to ./data.
func storeFrom(args []string) *statsio.Store {
	root := "data"
	if len(args) > 0 {
		root = args[0]
	}
	return statsio.NewDirStore(root)
}

// resolveBBox prefers a bounds.json object in the store over the
// configured defaults.
func resolveBBox(store *statsio.Store) (geogrid.BoundingBox, error) {
	bbox, err := pipeline.LoadBounds(store)
	if err == nil {
		logrus.Infof("using stored bounds %+v", bbox)
		return bbox, nil
	}
	if !errors.Is(err, statsio.ErrNotFound) {
		return geogrid.BoundingBox{}, err
	}
	return geogrid.NewBoundingBox(
		viper.GetFloat64("bbox.minx"),
		viper.GetFloat64("bbox.miny"),
		viper.GetFloat64("bbox.maxx"),
		viper.GetFloat64("bbox.maxy"),
	)
}

// parseDate parses a --date flag value, defaulting to today (UTC).
func parseDate(flag string) (time.Time, error) {
	if flag == "" {
		now := time.Now().UTC()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Parse(fields.DateLayout, flag)
}
