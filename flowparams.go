package molasses

import "math"

// ParamRange describes one of the three per-event sampling ranges
// (residual, total volume, pulse volume) as configured (spec §4.7).
type ParamRange struct {
	Min, Max        float64
	LogMean, LogStd float64
}

// sample draws one value per the rules in spec §4.7:
//   - if Min == Max == 0, keep is true and the prior value should be kept.
//   - else if LogMean > 0 and LogStd > 0 and both Min, Max > 0, draw from a
//     truncated normal on log10 scale, retrying until the draw falls in
//     [log10 Min, log10 Max].
//   - else draw uniformly from [Min, Max].
func (p ParamRange) sample(rng *RNG, prior float64) (value float64, keep bool) {
	if p.Min == 0 && p.Max == 0 {
		return prior, true
	}
	if p.LogMean > 0 && p.LogStd > 0 && p.Min > 0 && p.Max > 0 {
		logMin, logMax := math.Log10(p.Min), math.Log10(p.Max)
		for {
			draw := rng.Normal(p.LogMean, p.LogStd)
			if draw >= logMin && draw <= logMax {
				return math.Pow(10, draw), false
			}
		}
	}
	return rng.Uniform(p.Min, p.Max), false
}

// FlowParamConfig holds the three configured sampling ranges for one
// event (spec §4.7, populated from the KEY = VALUE configuration).
type FlowParamConfig struct {
	Residual    ParamRange
	TotalVolume ParamRange
	PulseVolume ParamRange
}

// SampleFlowParams draws residual, total volume, and pulse volume for
// the next event, writes the grid's per-cell residual, and
// initializes the flow's volume bookkeeping (spec §4.7). prior holds
// the previous event's values, reused for any range that is
// configured to "keep".
//
// When residual sampling reports keep (min == max == 0), the grid's
// existing per-cell residual is left untouched rather than overwritten
// with the repeated scalar prior: this is what lets a RESIDUAL raster
// loaded at startup survive into events that don't configure a
// sampling range of their own.
func SampleFlowParams(g *GridStore, rng *RNG, cfg FlowParamConfig, prior LavaFlow) LavaFlow {
	residual, keepResidual := cfg.Residual.sample(rng, prior.Residual)
	totalVolume, _ := cfg.TotalVolume.sample(rng, prior.VolumeToErupt)
	pulseVolume, _ := cfg.PulseVolume.sample(rng, prior.PulseVolume)

	if !keepResidual {
		g.SetResidual(residual)
	}

	return LavaFlow{
		Residual:      residual,
		VolumeToErupt: totalVolume,
		CurrentVolume: totalVolume,
		PulseVolume:   pulseVolume,
	}
}
