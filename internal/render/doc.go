// Package render turns vorticity fields into pictures.
//
// Fields are normalised with [MinMax] (the full range maps onto the palette)
// or [Symmetric] (zero sits in the middle, useful with the diverging "rdbu"
// palette). The same palette drives three outputs:
//
//   - [Image]: one paletted pixel block per cell, optionally overlaid with
//     velocity arrows by [DrawArrows]
//   - [GIFRecorder]: frames collected from a running simulation
//   - [Terminal]: half-block characters coloured with lipgloss
package render
