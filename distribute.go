package molasses

// Policy selects one of the two distribution strategies, chosen once
// per event from configuration (spec §9 DESIGN NOTES: modeled as a
// tagged variant rather than a runtime-swapped function pointer).
type Policy int

// The two distribution policies (spec §4.6).
const (
	// PolicyEqualSplit divides a donor cell's excess evenly among its
	// eligible neighbors, overwrites each neighbor's parentcode, and
	// discards the pulse's wavefront from the active list once the
	// scan completes.
	PolicyEqualSplit Policy = iota
	// PolicySlopeProportional divides a donor cell's excess in
	// proportion to the elevation difference to each neighbor,
	// OR-accumulates parentcodes, and preserves the active list across
	// pulses so the emerging flow front can keep growing.
	PolicySlopeProportional
)

// Result reports the outcome of one Distribute pass.
type Result int

// The two non-error outcomes of a Distribute pass (spec §4.6).
const (
	ResultOK Result = iota
	ResultAoiHit
)

// Distribute performs one pass over the active list, donating each
// above-residual cell's excess lava to its eligible downhill
// neighbors and growing the active list with newly-activated cells
// (spec §4.6). It returns ResultAoiHit if any cell that became active
// during this pass lies in the area of interest, or an OffGrid /
// InvariantViolation error if the run must end.
func Distribute(g *GridStore, al *ActiveList, rng *RNG, mode NeighborMode, policy Policy) (Result, error) {
	result := ResultOK
	startLen := al.Len()
	var appended []int

	for i := 0; i < al.Len(); i++ {
		if policy == PolicyEqualSplit && i >= startLen {
			// Equal-split processes only the entries present when the
			// pass started, with no persistent frontier: cells appended
			// during this pass do not donate in it, and they are dropped
			// from the list again once the pass ends (below).
			break
		}

		row, col := al.Get(i)
		donor := g.At(row, col)

		excess := donor.Excess()
		if excess <= 0 {
			continue
		}

		neighbors, err := NeighborSelector(g, row, col, mode)
		if err != nil {
			return result, err
		}
		if len(neighbors) == 0 {
			continue
		}

		rng.Shuffle(len(neighbors), func(i, j int) {
			neighbors[i], neighbors[j] = neighbors[j], neighbors[i]
		})

		shares, err := distributeShares(excess, neighbors, policy)
		if err != nil {
			return result, err
		}

		for k, n := range neighbors {
			neighbor := g.At(n.Row, n.Col)
			switch policy {
			case PolicyEqualSplit:
				neighbor.SetParent(n.parentBit)
			case PolicySlopeProportional:
				neighbor.AddParent(n.parentBit)
			}
			neighbor.EffElev += shares[k]

			if neighbor.Active == NotActive && neighbor.Thickness() > neighbor.Residual {
				idx, pushErr := al.Push(n.Row, n.Col)
				if pushErr != nil {
					return result, pushErr
				}
				neighbor.Active = idx
				appended = append(appended, idx)
				if neighbor.AOI {
					result = ResultAoiHit
				}
			}
		}

		donor.EffElev -= excess
	}

	if policy == PolicyEqualSplit {
		for _, idx := range appended {
			row, col := al.Get(idx)
			g.At(row, col).Active = NotActive
		}
		al.Truncate(startLen)
	}

	return result, nil
}

// distributeShares computes each neighbor's share of a donor's
// excess under the given policy (spec §4.6).
func distributeShares(excess float64, neighbors []Neighbor, policy Policy) ([]float64, error) {
	shares := make([]float64, len(neighbors))
	switch policy {
	case PolicyEqualSplit:
		share := excess / float64(len(neighbors))
		for k := range shares {
			shares[k] = share
		}
	case PolicySlopeProportional:
		var sum float64
		for _, n := range neighbors {
			sum += n.ElevDiff
		}
		if sum <= 0 {
			return nil, newErr(InvariantViolation, "sum of elevation differences to eligible neighbors is non-positive", nil)
		}
		for k, n := range neighbors {
			shares[k] = excess * n.ElevDiff / sum
		}
	}
	return shares, nil
}
