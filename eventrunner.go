package molasses

import (
	"math"
	"time"

	"github.com/sirupsen/logrus"
)

// FlowStats accumulates the per-event counters the stats file and
// hit/flow maps are built from (spec §3, §6).
type FlowStats struct {
	EventID        int
	Run            int
	RuntimeSeconds float64
	Hit            bool // true if the AOI was inundated during this run
	OffMap         bool // true if the flow ran off the edge of the DEM
	PulseCount     int
	VolumeToErupt  float64 // m^3
	VolumeErupted  float64 // m^3
	CellsInundated int
	AreaInundated  float64 // m^2
	PulseVolume    float64 // m^3
	Residual       float64 // m
	Vents          []Vent
}

// conservationTolerance is the maximum acceptable absolute difference
// between erupted and requested volume before it is logged as a
// breach (spec §4.10, §8 I3).
const conservationTolerance = 1e-8

// EventRunner is the top-level state machine described in spec §4.10:
// INIT -> SAMPLE_PARAMS -> PLACE_VENTS -> PULSE_LOOP -> SUMMARIZE -> EMIT.
// It owns the grid and active list for the lifetime of a simulation
// and is reused across events and runs; per spec §3 and §5, the grid
// and active list are each allocated once and reset between runs
// rather than reallocated.
type EventRunner struct {
	Grid   *GridStore
	RNG    *RNG
	Mode   NeighborMode
	Policy Policy
	// KeepFlowField selects the reset_for_new_run policy applied at the
	// start of every event (spec §4.1).
	KeepFlowField bool
	Log           *logrus.Logger

	al       *ActiveList
	prevFlow LavaFlow
}

// NewEventRunner allocates the active list once for the lifetime of
// the simulation, sized per spec §3 (min(rows*cols, 10^7)).
func NewEventRunner(g *GridStore, rng *RNG, mode NeighborMode, policy Policy, keepFlowField bool) *EventRunner {
	log := logrus.New()
	return &EventRunner{
		Grid:          g,
		RNG:           rng,
		Mode:          mode,
		Policy:        policy,
		KeepFlowField: keepFlowField,
		Log:           log,
		al:            NewActiveList(g.Rows(), g.Cols()),
	}
}

// RunEvent runs one full event (one replication, i.e. one "run" in
// spec terminology) for the given vents and sampling configuration,
// returning its summary statistics. A VentOutOfGrid, VentSubmarine, or
// ParamOutOfRange condition is fatal and aborts the program (the
// caller should treat a non-nil error here as such, per spec §4.11);
// an OffGrid condition during the pulse loop is not fatal - it ends
// the run early with stats.OffMap set and a nil error.
func (er *EventRunner) RunEvent(eventID, runNum int, vents []Vent, params FlowParamConfig) (*FlowStats, error) {
	start := time.Now()

	// INIT
	er.Grid.ResetForNewRun(er.KeepFlowField)
	er.al.Clear()

	// PLACE_VENTS (validated before sampling is recorded, so a bad
	// vent aborts before any grid mutation other than the reset above)
	ventsCopy := make([]Vent, len(vents))
	copy(ventsCopy, vents)
	if err := ValidateVents(er.Grid, ventsCopy); err != nil {
		return nil, err
	}

	// SAMPLE_PARAMS
	for _, r := range []ParamRange{params.Residual, params.TotalVolume, params.PulseVolume} {
		if r.Min > r.Max {
			return nil, newErr(ParamOutOfRange, "sampling range has min greater than max", nil)
		}
	}
	flow := SampleFlowParams(er.Grid, er.RNG, params, er.prevFlow)
	flow.Vents = ventsCopy

	stats := &FlowStats{
		EventID:       eventID,
		Run:           runNum,
		VolumeToErupt: flow.VolumeToErupt,
		PulseVolume:   flow.PulseVolume,
		Residual:      flow.Residual,
		Vents:         ventsCopy,
	}

	// PULSE_LOOP
	for flow.CurrentVolume > 0 {
		vent := flow.CurrentVent()
		if er.al.Len() == 0 {
			if _, err := er.al.Push(vent.Row, vent.Col); err != nil {
				return nil, err
			}
		} else {
			er.al.SetRowCol(0, vent.Row, vent.Col)
		}
		er.Grid.At(vent.Row, vent.Col).Active = 0

		Pulser(er.Grid, er.al, &flow)
		stats.PulseCount++

		result, err := Distribute(er.Grid, er.al, er.RNG, er.Mode, er.Policy)
		if err != nil {
			if side, ok := IsOffGrid(err); ok {
				stats.OffMap = true
				er.Log.WithFields(logrus.Fields{"event": eventID, "run": runNum, "side": side}).
					Warn("flow reached the edge of the DEM; ending run early")
				break
			}
			return nil, err
		}
		if result == ResultAoiHit {
			stats.Hit = true
		}

		flow.AdvanceVent()
	}

	// SUMMARIZE
	pixelArea := er.Grid.GT.PixelArea()
	var volumeErupted, areaInundated float64
	var cellsInundated int
	for row := 0; row < er.Grid.Rows(); row++ {
		for col := 0; col < er.Grid.Cols(); col++ {
			cell := er.Grid.At(row, col)
			thickness := cell.Thickness()
			if thickness > 0 {
				cellsInundated++
				volumeErupted += thickness * pixelArea
				cell.HitCount++
			}
		}
	}
	areaInundated = float64(cellsInundated) * pixelArea

	if stats.OffMap {
		// The flow ran off the edge of the DEM before spending its
		// volume; its stats report no erupted volume and no inundated
		// area (spec §8 scenario 4). The hit counts incremented above
		// are kept.
		volumeErupted, areaInundated, cellsInundated = 0, 0, 0
	}

	stats.VolumeErupted = volumeErupted
	stats.CellsInundated = cellsInundated
	stats.AreaInundated = areaInundated

	if diff := math.Abs(volumeErupted - flow.VolumeToErupt); diff > conservationTolerance && !stats.OffMap {
		er.Log.WithFields(logrus.Fields{
			"event": eventID, "run": runNum, "requested": flow.VolumeToErupt,
			"erupted": volumeErupted, "diff": diff,
		}).Warn("mass conservation breach")
	}

	stats.RuntimeSeconds = time.Since(start).Seconds()
	er.prevFlow = flow

	return stats, nil
}
