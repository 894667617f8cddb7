package molasses

import (
	"fmt"
	"strconv"
	"strings"
)

// Vent is one eruption point, given in ground coordinates and resolved
// to a grid index via the DEM's GeoTransform (spec §3).
type Vent struct {
	Easting, Northing float64
	Row, Col          int
}

// LavaFlow is the mutable state of one active flow: the vents it
// erupts from, and its volume bookkeeping (spec §3).
type LavaFlow struct {
	Vents         []Vent
	VolumeToErupt float64
	CurrentVolume float64 // remaining volume to erupt
	PulseVolume   float64
	Residual      float64

	currentVentIdx int
}

// NumVents returns the number of vents in the flow.
func (f *LavaFlow) NumVents() int { return len(f.Vents) }

// CurrentVent returns the vent that should receive the next pulse.
func (f *LavaFlow) CurrentVent() Vent { return f.Vents[f.currentVentIdx] }

// AdvanceVent rotates to the next vent, round-robin, ahead of the next
// pulse (spec §4.8).
func (f *LavaFlow) AdvanceVent() {
	f.currentVentIdx = (f.currentVentIdx + 1) % len(f.Vents)
}

// ParseEventLine parses one events-file line into a list of vents
// (spec §6): whitespace-separated "easting,northing" pairs. At least
// one pair is required.
func ParseEventLine(line string) ([]Vent, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil, newErr(ConfigMalformed, "event line has no vents", nil)
	}
	vents := make([]Vent, 0, len(fields))
	for _, f := range fields {
		parts := strings.Split(f, ",")
		if len(parts) != 2 {
			return nil, newErr(ConfigMalformed, fmt.Sprintf("malformed vent coordinate %q", f), nil)
		}
		e, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
		if err != nil {
			return nil, newErr(ConfigMalformed, fmt.Sprintf("malformed easting %q", parts[0]), err)
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			return nil, newErr(ConfigMalformed, fmt.Sprintf("malformed northing %q", parts[1]), err)
		}
		vents = append(vents, Vent{Easting: e, Northing: n})
	}
	return vents, nil
}

// ValidateVents resolves each vent's (row, col) from the GeoTransform
// and checks that it lies strictly inside the DEM and above sea level
// (spec §4.8). It mutates vents in place.
func ValidateVents(g *GridStore, vents []Vent) error {
	for i := range vents {
		row, col := g.GT.RowCol(vents[i].Easting, vents[i].Northing)
		if !g.GT.InBounds(row, col) {
			return newErr(VentOutOfGrid, fmt.Sprintf("vent (%g,%g) is outside the DEM", vents[i].Easting, vents[i].Northing), nil)
		}
		if g.At(row, col).DemElev < 0 {
			return newErr(VentSubmarine, fmt.Sprintf("vent (%g,%g) is below sea level", vents[i].Easting, vents[i].Northing), nil)
		}
		vents[i].Row, vents[i].Col = row, col
	}
	return nil
}
