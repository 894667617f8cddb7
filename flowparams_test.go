package molasses

import "testing"

func TestParamRangeKeepsPriorWhenMinMaxZero(t *testing.T) {
	p := ParamRange{}
	v, keep := p.sample(NewRNGFromSeed(1), 42)
	if !keep {
		t.Error("keep = false, want true (min == max == 0)")
	}
	if v != 42 {
		t.Errorf("v = %v, want 42 (the prior value)", v)
	}
}

func TestParamRangeUniformWithinBounds(t *testing.T) {
	p := ParamRange{Min: 10, Max: 20}
	rng := NewRNGFromSeed(1)
	for i := 0; i < 50; i++ {
		v, keep := p.sample(rng, 0)
		if keep {
			t.Fatal("keep = true, want false (non-degenerate range)")
		}
		if v < 10 || v > 20 {
			t.Errorf("sample %v outside [10, 20]", v)
		}
	}
}

func TestParamRangeLogNormalWithinBounds(t *testing.T) {
	p := ParamRange{Min: 1, Max: 1000, LogMean: 2, LogStd: 0.5}
	rng := NewRNGFromSeed(1)
	for i := 0; i < 50; i++ {
		v, keep := p.sample(rng, 0)
		if keep {
			t.Fatal("keep = true, want false")
		}
		if v < 1 || v > 1000 {
			t.Errorf("sample %v outside [1, 1000]", v)
		}
	}
}

func TestSampleFlowParamsOverwritesResidualWhenSampled(t *testing.T) {
	g := buildGrid(2, 2, func(r, c int) float64 { return 0 })
	g.At(0, 0).Residual = 99 // pre-existing, should be overwritten

	cfg := FlowParamConfig{
		Residual:    ParamRange{Min: 3, Max: 3},
		TotalVolume: ParamRange{Min: 5, Max: 5},
		PulseVolume: ParamRange{Min: 1, Max: 1},
	}
	flow := SampleFlowParams(g, NewRNGFromSeed(1), cfg, LavaFlow{})

	if flow.Residual != 3 {
		t.Errorf("flow.Residual = %v, want 3", flow.Residual)
	}
	if g.At(0, 0).Residual != 3 {
		t.Errorf("grid residual = %v, want 3 (overwritten)", g.At(0, 0).Residual)
	}
	if flow.VolumeToErupt != 5 || flow.CurrentVolume != 5 {
		t.Errorf("VolumeToErupt/CurrentVolume = %v/%v, want 5/5", flow.VolumeToErupt, flow.CurrentVolume)
	}
}

func TestSampleFlowParamsKeepsGridResidualWhenRangeDegenerate(t *testing.T) {
	g := buildGrid(2, 2, func(r, c int) float64 { return 0 })
	g.At(0, 0).Residual = 7 // e.g. loaded from a RESIDUAL raster

	cfg := FlowParamConfig{
		Residual:    ParamRange{}, // min == max == 0: keep prior
		TotalVolume: ParamRange{Min: 5, Max: 5},
		PulseVolume: ParamRange{Min: 1, Max: 1},
	}
	SampleFlowParams(g, NewRNGFromSeed(1), cfg, LavaFlow{Residual: 0})

	if g.At(0, 0).Residual != 7 {
		t.Errorf("grid residual = %v, want 7 (left untouched)", g.At(0, 0).Residual)
	}
}
