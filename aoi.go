package molasses

// AOI is a user-specified disk; the engine records whether any cell
// inside it becomes active during a run (FlowStats.Hit, spec §3, §4.9).
type AOI struct {
	Easting, Northing, Radius float64
}

// Mark sets the AOI flag on every cell whose center lies strictly
// inside the disk (spec §4.9).
func (a AOI) Mark(g *GridStore) {
	r2 := a.Radius * a.Radius
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			e, n := g.GT.EastingNorthing(row, col)
			de, dn := e-a.Easting, n-a.Northing
			if de*de+dn*dn < r2 {
				g.At(row, col).AOI = true
			}
		}
	}
}
