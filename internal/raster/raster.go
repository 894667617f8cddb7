/*
Copyright © 2024 the MOLASSES authors.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package raster is the GDAL-backed collaborator that satisfies the
// molasses.Band contract (spec §6): it opens a DEM, translates GDAL's
// geotransform convention into the core's, and reads/writes single-band
// float32 rasters.
package raster

import (
	"fmt"

	"github.com/airbusgeo/godal"

	"github.com/spatialmodel/molasses"
)

func init() {
	godal.RegisterAll()
}

// Dataset wraps an open GDAL raster and the geotransform translated
// into the core's convention.
type Dataset struct {
	ds         *godal.Dataset
	gt         molasses.GeoTransform
	projection string
}

// Open opens path with GDAL and translates its geotransform from
// GDAL's (origin_x, pixel_w, 0, top_y, 0, -pixel_h) form into the
// core's (origin_x, pixel_w, n_cols, origin_y, n_rows, pixel_h) form
// (spec §6). origin_y is the DEM's lower-left northing, derived from
// top_y and the pixel height and row count.
func Open(path string) (*Dataset, error) {
	ds, err := godal.Open(path)
	if err != nil {
		return nil, fmt.Errorf("molasses: opening DEM %q: %w", path, err)
	}
	raw, err := ds.GeoTransform()
	if err != nil {
		ds.Close()
		return nil, fmt.Errorf("molasses: reading geotransform of %q: %w", path, err)
	}
	structure := ds.Structure()
	pixelH := -raw[5]
	nRows := float64(structure.SizeY)
	gt := molasses.GeoTransform{
		OriginX: raw[0],
		PixelW:  raw[1],
		NCols:   float64(structure.SizeX),
		OriginY: raw[3] - nRows*pixelH,
		NRows:   nRows,
		PixelH:  pixelH,
	}
	return &Dataset{ds: ds, gt: gt, projection: ds.Projection()}, nil
}

// GeoTransform returns the DEM's geotransform in the core's convention.
func (d *Dataset) GeoTransform() molasses.GeoTransform { return d.gt }

// Projection returns the DEM's projection string, opaque to the core.
func (d *Dataset) Projection() string { return d.projection }

// Close releases the underlying GDAL dataset.
func (d *Dataset) Close() { d.ds.Close() }

// Band returns the i'th (1-indexed, per GDAL convention) band of the
// dataset as a molasses.Band, translating row order so that row 0 is
// always the southernmost row (spec §6: core row i = raster row
// n_rows-1-i).
func (d *Dataset) Band(i int) (molasses.Band, error) {
	bands := d.ds.Bands()
	if i < 1 || i > len(bands) {
		return nil, fmt.Errorf("molasses: band %d does not exist", i)
	}
	return &band{b: bands[i-1], nRows: d.gt.Rows(), nCols: d.gt.Cols()}, nil
}

type band struct {
	b             godal.Band
	nRows, nCols int
}

// ReadRow implements molasses.Band, reading core row r from raster row
// nRows-1-r.
func (b *band) ReadRow(r int, buf []float32) error {
	rasterRow := b.nRows - 1 - r
	return b.b.Read(0, rasterRow, buf, b.nCols, 1)
}

// CreateFloat32 writes a single-band float32 raster at path with the
// given geotransform and projection. rows is in core row order (rows[i]
// is core row i, southernmost first); the raster is written top-down
// (GDAL raster row 0 = northernmost), per spec §6, so GDAL row r
// receives rows[n_rows-1-r], the inverse of the translation
// Band.ReadRow performs on input.
func CreateFloat32(path string, gt molasses.GeoTransform, projection string, rows [][]float32) error {
	nRows, nCols := gt.Rows(), gt.Cols()
	if len(rows) != nRows {
		return fmt.Errorf("molasses: CreateFloat32: got %d rows, want %d", len(rows), nRows)
	}
	ds, err := godal.Create(godal.GTiff, path, 1, godal.Float32, nCols, nRows)
	if err != nil {
		return fmt.Errorf("molasses: creating raster %q: %w", path, err)
	}
	defer ds.Close()

	raw := [6]float64{gt.OriginX, gt.PixelW, 0, gt.OriginY + float64(nRows)*gt.PixelH, 0, -gt.PixelH}
	if err := ds.SetGeoTransform(raw); err != nil {
		return fmt.Errorf("molasses: setting geotransform on %q: %w", path, err)
	}
	if projection != "" {
		if err := ds.SetProjection(projection); err != nil {
			return fmt.Errorf("molasses: setting projection on %q: %w", path, err)
		}
	}

	bands := ds.Bands()
	buf := make([]float32, nCols)
	for r := 0; r < nRows; r++ {
		// rows is ordered core-row-ascending (southernmost first); GDAL
		// raster row r corresponds to core row nRows-1-r, same inversion
		// as Band.ReadRow.
		copy(buf, rows[nRows-1-r])
		if err := bands[0].Write(0, r, buf, nCols, 1); err != nil {
			return fmt.Errorf("molasses: writing raster row %d of %q: %w", r, path, err)
		}
	}
	return nil
}
