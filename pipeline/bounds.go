package pipeline

import (
	"encoding/json"
	"fmt"

	"fieldstats/geogrid"
	"fieldstats/statsio"
)

// BoundsObject is the store name of the optional bounding-box override, a
// JSON record with the four numeric extents.
const BoundsObject = "bounds.json"

// LoadBounds reads a stored bounding box. Returns statsio.ErrNotFound
// (wrapped) when none is stored, so callers can fall back to configured
// defaults.
func LoadBounds(store *statsio.Store) (geogrid.BoundingBox, error) {
	data, err := store.Get(BoundsObject)
	if err != nil {
		return geogrid.BoundingBox{}, err
	}
	var bbox geogrid.BoundingBox
	if err := json.Unmarshal(data, &bbox); err != nil {
		return geogrid.BoundingBox{}, fmt.Errorf("decoding %s: %w", BoundsObject, err)
	}
	if err := bbox.Validate(); err != nil {
		return geogrid.BoundingBox{}, fmt.Errorf("%s: %w", BoundsObject, err)
	}
	return bbox, nil
}
