package molasses

import "math"

// GeoTransform describes the DEM raster in the core's own convention:
// origin is the lower-left corner of the grid and PixelH is a positive
// row height (see spec §3). This is distinct from the GDAL six-tuple
// that the raster collaborator (internal/raster) reads off disk; the
// collaborator is responsible for the conversion described in §6.
type GeoTransform struct {
	OriginX float64 // easting of the lower-left corner
	PixelW  float64 // pixel width, meters
	NCols   float64 // number of columns, carried as a float but integral
	OriginY float64 // northing of the lower-left corner
	NRows   float64 // number of rows, carried as a float but integral
	PixelH  float64 // pixel height, meters, positive
}

// Cols returns NCols as an int.
func (g GeoTransform) Cols() int { return int(g.NCols) }

// Rows returns NRows as an int.
func (g GeoTransform) Rows() int { return int(g.NRows) }

// PixelArea returns the area of one cell in square meters.
func (g GeoTransform) PixelArea() float64 { return g.PixelW * g.PixelH }

// RowCol converts a (easting, northing) pair to a (row, col) index. Row
// 0 is the southernmost row, consistent with Origin being the
// lower-left corner.
func (g GeoTransform) RowCol(easting, northing float64) (row, col int) {
	col = int(math.Floor((easting - g.OriginX) / g.PixelW))
	row = int(math.Floor((northing - g.OriginY) / g.PixelH))
	return row, col
}

// EastingNorthing converts a (row, col) index to the (easting, northing)
// of the cell's center.
func (g GeoTransform) EastingNorthing(row, col int) (easting, northing float64) {
	easting = g.OriginX + (float64(col)+0.5)*g.PixelW
	northing = g.OriginY + (float64(row)+0.5)*g.PixelH
	return
}

// InBounds reports whether (row, col) lies within the grid.
func (g GeoTransform) InBounds(row, col int) bool {
	return row >= 0 && row < g.Rows() && col >= 0 && col < g.Cols()
}
