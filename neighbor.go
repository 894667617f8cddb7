package molasses

import "math"

var sqrt2 = math.Sqrt(2)

// Neighbor describes one eligible recipient of a donor cell's excess
// lava (spec §4.4).
type Neighbor struct {
	Row, Col int
	ElevDiff float64 // donor.EffElev - neighbor.EffElev, normalized for diagonals

	// parentBit is the ParentCoder bit the Distributor must stamp onto
	// this neighbor once it accepts a donation: the direction, relative
	// to the neighbor, in which the donor cell lies.
	parentBit uint8
}

// NeighborMode selects between cardinal (4-neighbor) and Moore
// (8-neighbor) selection.
type NeighborMode int

// The two neighbor selection modes (spec §4.4).
const (
	Cardinal NeighborMode = iota
	Moore
)

// offset describes one of the eight possible neighbor positions
// relative to a center cell, and the ParentCoder bit that position
// corresponds to (the direction of the neighbor *relative to the
// center*, per the table in spec §4.3).
type offset struct {
	dRow, dCol int
	bit        uint8
	side       Side // only meaningful for the four cardinal offsets
}

// cardinalOffsets lists the four cardinal offsets in South-North-
// West-East check order, so that a vent placed in a grid corner
// reports the same side when more than one edge is breached at once.
// A cardinal neighbor falling outside the grid is a fatal off-grid
// condition (spec §4.4).
var cardinalOffsets = [4]offset{
	{-1, 0, ParentSouth, South},
	{1, 0, ParentNorth, North},
	{0, -1, ParentWest, West},
	{0, 1, ParentEast, East},
}

// diagonalOffsets lists the four diagonal offsets, coded as the OR of
// their two cardinal components (spec §4.3: SE=3, SW=9, NE=6, NW=12).
var diagonalOffsets = [4]offset{
	{1, 1, ParentNorth | ParentEast, 0},
	{1, -1, ParentNorth | ParentWest, 0},
	{-1, 1, ParentSouth | ParentEast, 0},
	{-1, -1, ParentSouth | ParentWest, 0},
}

// oppositeBit returns the ParentCoder bit for the opposite direction
// of bit, used to translate "direction of neighbor relative to
// center" into "direction of center relative to neighbor" when
// stamping the neighbor's own parentcode.
func oppositeBit(bit uint8) uint8 {
	var out uint8
	if bit&ParentNorth != 0 {
		out |= ParentSouth
	}
	if bit&ParentSouth != 0 {
		out |= ParentNorth
	}
	if bit&ParentEast != 0 {
		out |= ParentWest
	}
	if bit&ParentWest != 0 {
		out |= ParentEast
	}
	return out
}

// NeighborSelector returns the eligible neighbors of the cell at
// (r, c): in bounds, not already a parent of the center cell, and
// strictly lower than the center (spec §4.4).
//
// If any of the four cardinal neighbors would fall outside the grid,
// selection fails immediately with an OffGrid error naming the side
// that was breached; this is a fatal run-end condition, not merely an
// ineligible neighbor.
func NeighborSelector(g *GridStore, r, c int, mode NeighborMode) ([]Neighbor, error) {
	center := g.At(r, c)
	var out []Neighbor

	for _, off := range cardinalOffsets {
		nr, nc := r+off.dRow, c+off.dCol
		if !g.GT.InBounds(nr, nc) {
			return nil, offGridErr(off.side)
		}
		if center.HasParent(off.bit) {
			continue
		}
		neighbor := g.At(nr, nc)
		if center.EffElev <= neighbor.EffElev {
			continue
		}
		out = append(out, Neighbor{
			Row: nr, Col: nc,
			ElevDiff:  center.EffElev - neighbor.EffElev,
			parentBit: oppositeBit(off.bit),
		})
	}

	if mode == Moore {
		for _, off := range diagonalOffsets {
			nr, nc := r+off.dRow, c+off.dCol
			if !g.GT.InBounds(nr, nc) {
				// Diagonal neighbors aren't covered by the mandatory
				// cardinal boundary check; an out-of-bounds diagonal is
				// simply ineligible.
				continue
			}
			if center.HasParent(off.bit) {
				continue
			}
			neighbor := g.At(nr, nc)
			if center.EffElev <= neighbor.EffElev {
				continue
			}
			out = append(out, Neighbor{
				Row: nr, Col: nc,
				ElevDiff:  (center.EffElev - neighbor.EffElev) / sqrt2,
				parentBit: oppositeBit(off.bit),
			})
		}
	}

	return out, nil
}
