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

// Package molassesio writes the ASCII, raster, and CSV outputs a
// MOLASSES run produces (spec §6): per-event flow and hit maps in
// ASCII and raster form, and a cumulative stats CSV summarizing every
// event. Raster writes delegate to internal/raster; everything else is
// plain tab/comma-separated text, so it stays on the standard library
// the way the rest of the ambient stack does not need a dedicated
// serialization library for a handful of fixed-width columns.
package molassesio

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/spatialmodel/molasses"
	"github.com/spatialmodel/molasses/internal/raster"
)

// WriteASCIIFlowMap writes the per-event flow map (spec §6): a header
// naming the event's volume, pulse volume, residual, and vents,
// followed by one tab-separated line per inundated cell.
func WriteASCIIFlowMap(path string, flow molasses.LavaFlow, g *molasses.GridStore) error {
	f, err := os.Create(path)
	if err != nil {
		return molasses.NewError(molasses.IoFailure, "creating "+path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintln(w, "# VOLUME PULSE RESIDUAL VENTS")
	fmt.Fprintf(w, "# %g %g %g", flow.VolumeToErupt, flow.PulseVolume, flow.Residual)
	for _, v := range flow.Vents {
		fmt.Fprintf(w, " %g %g", v.Easting, v.Northing)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "# EAST NORTH THICKNESS NEW_ELEV ORIG_ELEV")

	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			cell := g.At(row, col)
			thickness := cell.Thickness()
			if thickness <= 0 {
				continue
			}
			east, north := g.GT.EastingNorthing(row, col)
			fmt.Fprintf(w, "%g\t%g\t%g\t%g\t%g\n", east, north, thickness, cell.EffElev, cell.DemElev)
		}
	}
	return w.Flush()
}

// WriteASCIIHitMap writes one "east north hit_count" line per cell
// that has ever been inundated (spec §6).
func WriteASCIIHitMap(path string, g *molasses.GridStore) error {
	f, err := os.Create(path)
	if err != nil {
		return molasses.NewError(molasses.IoFailure, "creating "+path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			cell := g.At(row, col)
			if cell.HitCount == 0 {
				continue
			}
			east, north := g.GT.EastingNorthing(row, col)
			fmt.Fprintf(w, "%g %g %d\n", east, north, cell.HitCount)
		}
	}
	return w.Flush()
}

// gridRows extracts a row-major, core-row-ordered float32 buffer from
// g using extract, ready for raster.CreateFloat32.
func gridRows(g *molasses.GridStore, extract func(*molasses.DataCell) float32) [][]float32 {
	rows := make([][]float32, g.Rows())
	for r := 0; r < g.Rows(); r++ {
		row := make([]float32, g.Cols())
		for c := 0; c < g.Cols(); c++ {
			row[c] = extract(g.At(r, c))
		}
		rows[r] = row
	}
	return rows
}

// WriteRasterFlowMap writes a single-band float32 raster of the current
// lava thickness (eff_elev - dem_elev) per cell (spec §6), i.e. the
// thickness left by the most recent run.
func WriteRasterFlowMap(path string, g *molasses.GridStore, projection string) error {
	rows := gridRows(g, func(c *molasses.DataCell) float32 { return float32(c.Thickness()) })
	return raster.CreateFloat32(path, g.GT, projection, rows)
}

// WriteRasterHitMap writes a single-band float32 raster of per-cell
// cumulative hit counts.
func WriteRasterHitMap(path string, g *molasses.GridStore, projection string) error {
	rows := gridRows(g, func(c *molasses.DataCell) float32 { return float32(c.HitCount) })
	return raster.CreateFloat32(path, g.GT, projection, rows)
}

// WriteRasterPostDEM writes the post-event surface elevation
// (eff_elev), used for byte-identical round-trip verification against
// a subsequent load_topography (spec §8).
func WriteRasterPostDEM(path string, g *molasses.GridStore, projection string) error {
	rows := gridRows(g, func(c *molasses.DataCell) float32 { return float32(c.EffElev) })
	return raster.CreateFloat32(path, g.GT, projection, rows)
}

// WriteRasterPreDEM writes the original bare-ground elevation
// (dem_elev).
func WriteRasterPreDEM(path string, g *molasses.GridStore, projection string) error {
	rows := gridRows(g, func(c *molasses.DataCell) float32 { return float32(c.DemElev) })
	return raster.CreateFloat32(path, g.GT, projection, rows)
}

// statsHeader is the fixed leading column set of the stats CSV (spec §6);
// "Vents" expands to a variable number of Easting/Northing column pairs.
var statsHeader = []string{
	"Event", "Runtime(s)", "Hit", "Volume(km^3)", "Volume-Erupted(km^3)",
	"Cells-Inundated", "Area-Inundated(km^2)", "Pulse-volume(m^3)", "Residual(m)",
}

const (
	sqMetersPerKm   = 1e6
	cubicMetersPerKm3 = 1e9
)

// WriteStatsCSV writes the cumulative per-event stats file (spec §6).
// Volumes and area are converted to km-scale units except pulse volume
// (m^3) and residual (m), which stay in their native units.
func WriteStatsCSV(path string, allStats []*molasses.FlowStats) error {
	f, err := os.Create(path)
	if err != nil {
		return molasses.NewError(molasses.IoFailure, "creating "+path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)

	maxVents := 0
	for _, s := range allStats {
		if len(s.Vents) > maxVents {
			maxVents = len(s.Vents)
		}
	}
	header := append([]string{}, statsHeader...)
	for i := 0; i < maxVents; i++ {
		header = append(header, fmt.Sprintf("Vent%d-East", i+1), fmt.Sprintf("Vent%d-North", i+1))
	}
	if err := w.Write(header); err != nil {
		return molasses.NewError(molasses.IoFailure, "writing stats header", err)
	}

	for _, s := range allStats {
		record := []string{
			strconv.Itoa(s.EventID),
			strconv.FormatFloat(s.RuntimeSeconds, 'g', -1, 64),
			strconv.FormatBool(s.Hit),
			strconv.FormatFloat(s.VolumeToErupt/cubicMetersPerKm3, 'g', -1, 64),
			strconv.FormatFloat(s.VolumeErupted/cubicMetersPerKm3, 'g', -1, 64),
			strconv.Itoa(s.CellsInundated),
			strconv.FormatFloat(s.AreaInundated/sqMetersPerKm, 'g', -1, 64),
			strconv.FormatFloat(s.PulseVolume, 'g', -1, 64),
			strconv.FormatFloat(s.Residual, 'g', -1, 64),
		}
		for _, v := range s.Vents {
			record = append(record, strconv.FormatFloat(v.Easting, 'g', -1, 64), strconv.FormatFloat(v.Northing, 'g', -1, 64))
		}
		for len(record) < len(header) {
			record = append(record, "")
		}
		if err := w.Write(record); err != nil {
			return molasses.NewError(molasses.IoFailure, "writing stats record", err)
		}
	}
	w.Flush()
	return w.Error()
}
