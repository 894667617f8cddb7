package molasses

import "testing"

func TestAOIMarksStrictlyInsideDisk(t *testing.T) {
	g := buildGrid(5, 5, func(r, c int) float64 { return 0 })
	AOI{Easting: 2.5, Northing: 2.5, Radius: 1}.Mark(g)

	if !g.At(2, 2).AOI {
		t.Error("center cell not marked, want AOI = true")
	}
	// Diagonal neighbor is at distance sqrt(2) > 1, outside the disk.
	if g.At(1, 1).AOI {
		t.Error("diagonal neighbor at distance sqrt(2) marked, want AOI = false (outside radius 1)")
	}
	// Cell center exactly on the boundary (distance == radius) is not
	// strictly inside and must not be marked.
	g2 := buildGrid(5, 5, func(r, c int) float64 { return 0 })
	AOI{Easting: 2.5, Northing: 2.5, Radius: 1}.Mark(g2)
	if g2.At(3, 2).AOI {
		t.Error("cell exactly at the boundary distance was marked, want false (strict <)")
	}
}
