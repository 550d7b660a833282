// Package analysis tracks coherent vortices in a vorticity field.
//
//   - [Centroid]: ω-weighted centre of the positive or negative part
//   - [Track]: per-frame centroid history of both signs
//   - [TrackToASCII]: the recorded paths drawn on a character canvas
//
// # Following a pair
//
//	var tr analysis.Track
//	for k := 0; k < 20; k++ {
//	    sim.Step(0.8)
//	    tr.Record(sim.Frame(), sim.Grid(), sim.Snapshot())
//	}
//	pos, neg := tr.Displacement()
package analysis
