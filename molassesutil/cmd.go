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

// Package molassesutil wires the MOLASSES command-line interface: it
// parses a configuration file, loads the DEM, runs every configured
// event and replication, and writes the outputs the configuration
// requests (spec §6). The CLI surface is a single cobra command whose
// RunE parses the arguments and hands them to Run, which loads the
// configuration and runs the simulation.
package molassesutil

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/spatialmodel/molasses"
	"github.com/spatialmodel/molasses/internal/config"
	"github.com/spatialmodel/molasses/internal/molassesio"
	"github.com/spatialmodel/molasses/internal/raster"
)

// RootCmd is the molasses command: `molasses <config> [start_run]`.
var RootCmd = &cobra.Command{
	Use:   "molasses <config> [start_run]",
	Short: "A cellular-automata lava flow inundation simulator.",
	Long: `MOLASSES evolves a digital elevation model cell by cell, injecting
lava at configured vents in discrete pulses and redistributing it to
downhill neighbors until each event's volume is spent.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		startRun := 0
		if len(args) == 2 {
			n, err := fmt.Sscanf(args[1], "%d", &startRun)
			if err != nil || n != 1 {
				return fmt.Errorf("molasses: start_run %q is not an integer", args[1])
			}
		}
		return Run(args[0], startRun)
	},
	SilenceUsage: true,
}

func init() {
	RootCmd.SetOut(os.Stdout)
	RootCmd.SetErr(os.Stderr)
}

// status emits the one-word completion token spec §6 requires after
// every file write.
func status() { fmt.Println("OK") }

// Run loads cfgPath, executes every configured event RUNS times
// starting from startRun, and writes the requested outputs. A
// non-nil error here should abort the program with a nonzero exit
// code (spec §7): it is returned for initialization-stage failures,
// for any error RunEvent returns (invalid vents, inconsistent sampling
// ranges, active-list exhaustion, invariant violations), and for
// failed output writes. A flow reaching the DEM edge is not returned;
// it is recorded in that run's stats (OffMap) and logged.
func Run(cfgPath string, startRun int) error {
	in, err := config.Parse(cfgPath)
	if err != nil {
		return err
	}

	dem, err := raster.Open(in.DEMFile)
	if err != nil {
		return err
	}
	defer dem.Close()

	gt := dem.GeoTransform()
	grid := molasses.NewGridStore(gt)

	demBand, err := dem.Band(1)
	if err != nil {
		return err
	}
	if err := grid.LoadTopography(demBand); err != nil {
		return err
	}

	if in.ResidualPath != "" {
		residualDS, err := raster.Open(in.ResidualPath)
		if err != nil {
			return err
		}
		band, err := residualDS.Band(1)
		if err != nil {
			residualDS.Close()
			return err
		}
		err = grid.LoadResidualBand(band)
		residualDS.Close()
		if err != nil {
			return err
		}
	} else {
		grid.SetResidual(in.Residual)
	}

	if in.ElevUncertPath != "" {
		uncertDS, err := raster.Open(in.ElevUncertPath)
		if err != nil {
			return err
		}
		band, err := uncertDS.Band(1)
		if err != nil {
			uncertDS.Close()
			return err
		}
		err = grid.LoadUncertaintyBand(band)
		uncertDS.Close()
		if err != nil {
			return err
		}
	} else if in.ElevUncert != 0 {
		grid.LoadUncertaintyScalar(in.ElevUncert)
	}

	if in.HasAOI {
		aoi := molasses.AOI{Easting: in.AOIEasting, Northing: in.AOINorthing, Radius: in.AOIRadius}
		aoi.Mark(grid)
	}

	events, err := config.ParseEventsFile(in.EventsFile)
	if err != nil {
		return err
	}

	if in.RasterPreDEM != "" {
		if err := molassesio.WriteRasterPreDEM(in.RasterPreDEM, grid, dem.Projection()); err != nil {
			return err
		}
		status()
	}

	rng := molasses.NewRNG()
	runner := molasses.NewEventRunner(grid, rng, in.Mode, in.Policy, in.CreateFlowField)

	runs := in.Runs
	if runs < 1 {
		runs = 1
	}

	var allStats []*molasses.FlowStats
	for eventID, vents := range events {
		for run := startRun; run < startRun+runs; run++ {
			stats, err := runner.RunEvent(eventID, run, vents, in.FlowParams)
			if err != nil {
				return err
			}
			allStats = append(allStats, stats)

			if in.ASCIIFlowMap != "" {
				path := indexedPath(in.ASCIIFlowMap, eventID, run)
				if err := molassesio.WriteASCIIFlowMap(path, molasses.LavaFlow{
					Vents: stats.Vents, VolumeToErupt: stats.VolumeToErupt,
					PulseVolume: stats.PulseVolume, Residual: stats.Residual,
				}, grid); err != nil {
					return err
				}
				status()
			}
			if in.ASCIIHitMap != "" {
				if err := molassesio.WriteASCIIHitMap(indexedPath(in.ASCIIHitMap, eventID, run), grid); err != nil {
					return err
				}
				status()
			}
			if in.RasterFlowMap != "" {
				if err := molassesio.WriteRasterFlowMap(indexedPath(in.RasterFlowMap, eventID, run), grid, dem.Projection()); err != nil {
					return err
				}
				status()
			}
			if in.RasterHitMap != "" {
				if err := molassesio.WriteRasterHitMap(indexedPath(in.RasterHitMap, eventID, run), grid, dem.Projection()); err != nil {
					return err
				}
				status()
			}
		}
	}

	if in.RasterPostDEM != "" {
		if err := molassesio.WriteRasterPostDEM(in.RasterPostDEM, grid, dem.Projection()); err != nil {
			return err
		}
		status()
	}
	if in.StatsFile != "" {
		if err := molassesio.WriteStatsCSV(in.StatsFile, allStats); err != nil {
			return err
		}
		status()
	}

	return nil
}

// indexedPath suffixes a configured output path with the event and run
// number it belongs to, so that per-event ASCII/raster outputs from
// different events and runs don't overwrite one another.
func indexedPath(base string, eventID, run int) string {
	return fmt.Sprintf("%s.%d.%d", base, eventID, run)
}
