package statsio

import (
	"errors"

	"github.com/airbusgeo/godal"

	"fieldstats/geogrid"
)

// WriteGeoTIFF writes a raster as a single-band float64 GeoTIFF at path on
// the OS filesystem. GDAL has no notion of the store's filesystem
// abstraction, so callers hand the bytes to a Store afterwards if the
// artifact belongs there.
func WriteGeoTIFF(path string, raster *geogrid.Raster, gt geogrid.GeoTransform) (err error) {
	godal.RegisterAll()

	ds, err := godal.Create(godal.GTiff, path, 1, godal.Float64, raster.Width(), raster.Height())
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, ds.Close())
	}()

	if err := ds.SetGeoTransform(gt.GDAL()); err != nil {
		return err
	}
	band := ds.Bands()[0]
	return band.Write(0, 0, raster.Values(), raster.Width(), raster.Height())
}
