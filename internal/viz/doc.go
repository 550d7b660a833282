// Package viz is the interactive terminal front end.
//
//   - [App]: preset, resolution and boundary picker that starts a session
//   - [Model]: the live view of one running simulation
//
// The field is drawn with half-block characters (two cells per character)
// next to a panel of diagnostics and an enstrophy plot.
//
// # Controls
//
//	Click        - Inject positive vorticity
//	Shift/Right  - Inject negative vorticity
//	Space        - Pause/Resume
//	R            - Reset to the preset
//	Up/Down      - Viscosity
//	Left/Right   - Time step
//	G            - Toggle GIF recording
//	?            - Show help overlay
//
// # Recording
//
// G starts collecting frames and G again writes them to GIFPath
// (vortsim.gif by default) using the current palette.
package viz
