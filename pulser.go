package molasses

// Pulser delivers one pulse of lava to the cell currently at
// ActiveList index 0 (the vent the EventRunner placed there for this
// pulse), then decrements the flow's remaining volume (spec §4.5).
//
// It is a no-op if the flow has no volume left to erupt.
func Pulser(g *GridStore, al *ActiveList, flow *LavaFlow) {
	if flow.CurrentVolume <= 0 {
		return
	}
	row, col := al.Get(0)
	take := flow.PulseVolume
	if take > flow.CurrentVolume {
		take = flow.CurrentVolume
	}
	thickness := take / g.GT.PixelArea()
	g.At(row, col).EffElev += thickness
	flow.CurrentVolume -= take
}
