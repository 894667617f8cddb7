package molasses

import "testing"

type fakeBand struct {
	rows [][]float32
}

func (f *fakeBand) ReadRow(row int, buf []float32) error {
	copy(buf, f.rows[row])
	return nil
}

func TestLoadTopography(t *testing.T) {
	g := NewGridStore(flatGT(2, 2))
	band := &fakeBand{rows: [][]float32{{1, 2}, {3, 4}}}
	if err := g.LoadTopography(band); err != nil {
		t.Fatalf("LoadTopography: %v", err)
	}
	want := [][]float32{{1, 2}, {3, 4}}
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			cell := g.At(r, c)
			if float32(cell.DemElev) != want[r][c] || float32(cell.EffElev) != want[r][c] {
				t.Errorf("cell (%d,%d) = (%v,%v), want %v", r, c, cell.DemElev, cell.EffElev, want[r][c])
			}
		}
	}
}

func TestResetForNewRunDiscardsFlowFieldByDefault(t *testing.T) {
	g := buildGrid(2, 2, func(r, c int) float64 { return 10 })
	g.At(0, 0).EffElev = 15
	g.At(0, 0).Active = 0
	g.At(0, 0).ParentCode = ParentSouth
	g.At(0, 0).HitCount = 3

	g.ResetForNewRun(false)

	c := g.At(0, 0)
	if c.EffElev != 10 {
		t.Errorf("EffElev = %v, want 10 (reset to DemElev)", c.EffElev)
	}
	if c.DemElev != 10 {
		t.Errorf("DemElev = %v, want unchanged at 10", c.DemElev)
	}
	if c.Active != NotActive {
		t.Errorf("Active = %v, want NotActive", c.Active)
	}
	if c.ParentCode != 0 {
		t.Errorf("ParentCode = %v, want 0", c.ParentCode)
	}
	if c.HitCount != 3 {
		t.Errorf("HitCount = %v, want unchanged at 3 (persists across runs)", c.HitCount)
	}
}

func TestResetForNewRunKeepsFlowField(t *testing.T) {
	g := buildGrid(2, 2, func(r, c int) float64 { return 10 })
	g.At(0, 0).EffElev = 15

	g.ResetForNewRun(true)

	c := g.At(0, 0)
	if c.DemElev != 15 {
		t.Errorf("DemElev = %v, want 15 (accumulated lava becomes the new ground)", c.DemElev)
	}
	if c.EffElev != 15 {
		t.Errorf("EffElev = %v, want 15", c.EffElev)
	}
}

func TestSetResidual(t *testing.T) {
	g := NewGridStore(flatGT(2, 2))
	g.SetResidual(0.5)
	for r := 0; r < 2; r++ {
		for c := 0; c < 2; c++ {
			if g.At(r, c).Residual != 0.5 {
				t.Errorf("cell (%d,%d) Residual = %v, want 0.5", r, c, g.At(r, c).Residual)
			}
		}
	}
}
