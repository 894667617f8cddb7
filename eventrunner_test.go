package molasses

import "testing"

func flatFlowConfig(total, pulse, residual float64) FlowParamConfig {
	return FlowParamConfig{
		Residual:    ParamRange{Min: residual, Max: residual},
		TotalVolume: ParamRange{Min: total, Max: total},
		PulseVolume: ParamRange{Min: pulse, Max: pulse},
	}
}

func TestRunEventSingleCellNoSpread(t *testing.T) {
	// Scenario 1: 3x3 flat grid of elevation 100, vent at center,
	// pulse = total = 0.4 m^3, residual = 1, cell size 1x1.
	g := buildGrid(3, 3, func(r, c int) float64 { return 100 })
	runner := NewEventRunner(g, NewRNGFromSeed(1), Cardinal, PolicyEqualSplit, false)

	vents := []Vent{{Easting: 1.5, Northing: 1.5}}
	stats, err := runner.RunEvent(0, 0, vents, flatFlowConfig(0.4, 0.4, 1))
	if err != nil {
		t.Fatalf("RunEvent: %v", err)
	}

	if got := g.At(1, 1).EffElev; got != 100.4 {
		t.Errorf("center eff_elev = %v, want 100.4", got)
	}
	if stats.CellsInundated != 1 {
		t.Errorf("CellsInundated = %d, want 1", stats.CellsInundated)
	}
	if stats.VolumeErupted < 0.4-conservationTolerance || stats.VolumeErupted > 0.4+conservationTolerance {
		t.Errorf("VolumeErupted = %v, want 0.4 within %v", stats.VolumeErupted, conservationTolerance)
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if r == 1 && c == 1 {
				continue
			}
			if g.At(r, c).Thickness() != 0 {
				t.Errorf("cell (%d,%d) was inundated; want only the center touched", r, c)
			}
		}
	}
}

func TestRunEventOffGridTermination(t *testing.T) {
	// Scenario 4: 5x5 flat grid, vent at (0,0); any positive volume
	// must end the run with OffMap set and zero volume erupted.
	g := buildGrid(5, 5, func(r, c int) float64 { return 0 })
	runner := NewEventRunner(g, NewRNGFromSeed(1), Cardinal, PolicyEqualSplit, false)

	vents := []Vent{{Easting: 0.5, Northing: 0.5}}
	stats, err := runner.RunEvent(0, 0, vents, flatFlowConfig(4, 4, 0))
	if err != nil {
		t.Fatalf("RunEvent: %v", err)
	}
	if !stats.OffMap {
		t.Error("OffMap = false, want true")
	}
	if stats.VolumeErupted != 0 {
		t.Errorf("VolumeErupted = %v, want 0", stats.VolumeErupted)
	}
}

func TestRunEventZeroVolumeLeavesGridUnchanged(t *testing.T) {
	g := buildGrid(3, 3, func(r, c int) float64 { return 50 })
	runner := NewEventRunner(g, NewRNGFromSeed(1), Cardinal, PolicyEqualSplit, false)

	vents := []Vent{{Easting: 1.5, Northing: 1.5}}
	if _, err := runner.RunEvent(0, 0, vents, flatFlowConfig(0, 0, 0)); err != nil {
		t.Fatalf("RunEvent: %v", err)
	}
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			if g.At(r, c).EffElev != 50 {
				t.Errorf("cell (%d,%d) eff_elev = %v, want unchanged at 50", r, c, g.At(r, c).EffElev)
			}
		}
	}
}

func TestPulseLoopMultiVentRoundRobin(t *testing.T) {
	// Scenario 6: two vents, total = 10, pulse = 1; across 10 pulses
	// each vent should receive exactly 5 units, ignoring order. The
	// loop below drives Pulser and AdvanceVent the way RunEvent's pulse
	// loop does, without distribution, so each vent keeps its deposits.
	g := buildGrid(7, 7, func(r, c int) float64 { return 0 })
	flow := LavaFlow{
		Vents:         []Vent{{Row: 3, Col: 1}, {Row: 3, Col: 5}},
		VolumeToErupt: 10,
		CurrentVolume: 10,
		PulseVolume:   1,
	}
	al := NewActiveList(7, 7)
	pulseArea := g.GT.PixelArea()

	pulses := 0
	for flow.CurrentVolume > 0 {
		vent := flow.CurrentVent()
		al.Clear()
		al.Push(vent.Row, vent.Col)
		Pulser(g, al, &flow)
		flow.AdvanceVent()
		pulses++
	}

	if pulses != 10 {
		t.Fatalf("pulses = %d, want 10", pulses)
	}
	if flow.CurrentVolume != 0 {
		t.Errorf("CurrentVolume = %v, want 0", flow.CurrentVolume)
	}
	v1 := g.At(3, 1).Thickness() / pulseArea
	v2 := g.At(3, 5).Thickness() / pulseArea
	if v1 != 5 || v2 != 5 {
		t.Errorf("vent volumes = (%v, %v), want (5, 5)", v1, v2)
	}
}

func TestRunEventKeepsGridAllocationAcrossRuns(t *testing.T) {
	g := buildGrid(3, 3, func(r, c int) float64 { return 100 })
	runner := NewEventRunner(g, NewRNGFromSeed(1), Cardinal, PolicyEqualSplit, false)
	if runner.Grid != g {
		t.Fatal("NewEventRunner did not retain the caller's GridStore")
	}

	vents := []Vent{{Easting: 1.5, Northing: 1.5}}
	if _, err := runner.RunEvent(0, 0, vents, flatFlowConfig(0.4, 0.4, 1)); err != nil {
		t.Fatalf("first RunEvent: %v", err)
	}
	if _, err := runner.RunEvent(0, 1, vents, flatFlowConfig(0.4, 0.4, 1)); err != nil {
		t.Fatalf("second RunEvent: %v", err)
	}
	// ResetForNewRun restores eff_elev to dem_elev between runs (flow
	// field not retained), so the second run reaches the same state.
	if got := g.At(1, 1).EffElev; got != 100.4 {
		t.Errorf("center eff_elev after second run = %v, want 100.4", got)
	}
}
