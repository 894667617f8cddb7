package molasses

// maxActiveListCap is the hard ceiling on ActiveList capacity (spec §4.2, §5).
const maxActiveListCap = 10_000_000

// rowCol is one entry of an ActiveList.
type rowCol struct {
	Row, Col int
}

// ActiveList is a growable, ordered sequence of (row, col) indices
// currently holding above-residual lava (spec §3, §4.2). Order is
// significant: the Distributor scans by increasing index so that,
// under the slope-proportional policy, cells appended during a scan
// are processed in the same pass. The equal-split policy scans only
// the entries present when the pass starts.
type ActiveList struct {
	entries []rowCol
	length  int
}

// NewActiveList allocates a list with initial capacity
// min(rows*cols, 10^7).
func NewActiveList(rows, cols int) *ActiveList {
	capacity := rows * cols
	if capacity > maxActiveListCap {
		capacity = maxActiveListCap
	}
	if capacity < 1 {
		capacity = 1
	}
	return &ActiveList{entries: make([]rowCol, capacity)}
}

// Clear sets the logical length to 0 without releasing capacity.
func (a *ActiveList) Clear() { a.length = 0 }

// Truncate sets the logical length back to n, discarding any entries
// appended past it. Used by the equal-split distribution policy to
// drop the wavefront it grew during one pulse (spec §4.6).
func (a *ActiveList) Truncate(n int) { a.length = n }

// Len returns the current logical length.
func (a *ActiveList) Len() int { return a.length }

// Get returns the (row, col) at index i.
func (a *ActiveList) Get(i int) (row, col int) {
	e := a.entries[i]
	return e.Row, e.Col
}

// SetRowCol overwrites the entry at index i, conventionally used to
// overwrite index 0 with the current vent before each pulse.
func (a *ActiveList) SetRowCol(i, row, col int) {
	a.entries[i] = rowCol{row, col}
}

// Push appends (row, col) and returns its new index, growing capacity
// by doubling if the list is full. It returns an OutOfMemory error if
// capacity cannot grow past maxActiveListCap.
func (a *ActiveList) Push(row, col int) (int, error) {
	if a.length == len(a.entries) {
		if len(a.entries) >= maxActiveListCap {
			return 0, newErr(OutOfMemory, "active list capacity exhausted", nil)
		}
		newCap := len(a.entries) * 2
		if newCap > maxActiveListCap {
			newCap = maxActiveListCap
		}
		grown := make([]rowCol, newCap)
		copy(grown, a.entries)
		a.entries = grown
	}
	idx := a.length
	a.entries[idx] = rowCol{row, col}
	a.length++
	return idx, nil
}
